package chunking

import (
	"strings"
)

// RecursiveChunker 递归字符切分器。
// 依次尝试分隔符 "\n\n" → "\n" → " " → ""，优先保持段落完整；
// 段落过长时用更细的分隔符继续切，最终按 chunkSize 合并并保留 chunkOverlap 的重叠。
// 长度按 rune 计数，中文等多字节字符不会被截断。
type RecursiveChunker struct {
	ChunkSize    int
	ChunkOverlap int
	separators   []string
}

// NewRecursiveChunker 创建切分器，size/overlap 非法时回落到 800/100
func NewRecursiveChunker(size, overlap int) *RecursiveChunker {
	if size <= 0 {
		size = 800
	}
	if overlap < 0 {
		overlap = 100
	}
	if overlap >= size {
		overlap = size / 2
	}
	return &RecursiveChunker{
		ChunkSize:    size,
		ChunkOverlap: overlap,
		separators:   []string{"\n\n", "\n", " ", ""},
	}
}

// Chunk 将文本切分为多个片段
func (c *RecursiveChunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	return c.splitText(text, c.separators)
}

func (c *RecursiveChunker) splitText(text string, separators []string) []string {
	var finalChunks []string

	// 选择第一个在文本中出现的分隔符，剩余的留给递归
	separator := separators[len(separators)-1]
	var newSeparators []string
	for i, s := range separators {
		if s == "" {
			separator = s
			break
		}
		if strings.Contains(text, s) {
			separator = s
			newSeparators = separators[i+1:]
			break
		}
	}

	splits := splitKeepSeparator(text, separator)

	// 短片段攒起来合并，长片段用更细的分隔符递归切
	var goodSplits []string
	for _, s := range splits {
		if runeLen(s) < c.ChunkSize {
			goodSplits = append(goodSplits, s)
			continue
		}
		if len(goodSplits) > 0 {
			finalChunks = append(finalChunks, c.mergeSplits(goodSplits)...)
			goodSplits = nil
		}
		if len(newSeparators) == 0 {
			finalChunks = append(finalChunks, s)
		} else {
			finalChunks = append(finalChunks, c.splitText(s, newSeparators)...)
		}
	}
	if len(goodSplits) > 0 {
		finalChunks = append(finalChunks, c.mergeSplits(goodSplits)...)
	}

	return finalChunks
}

// mergeSplits 将相邻短片段合并到不超过 ChunkSize，
// 产出新块时回退保留不超过 ChunkOverlap 的尾部作为下一块的开头
func (c *RecursiveChunker) mergeSplits(splits []string) []string {
	var docs []string
	var current []string
	total := 0

	for _, d := range splits {
		dLen := runeLen(d)
		if total+dLen > c.ChunkSize && len(current) > 0 {
			if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
				docs = append(docs, doc)
			}
			// 从头部弹出，直到剩余部分不超过 overlap 且能容纳新片段
			for total > c.ChunkOverlap || (total+dLen > c.ChunkSize && total > 0) {
				total -= runeLen(current[0])
				current = current[1:]
			}
		}
		current = append(current, d)
		total += dLen
	}
	if doc := strings.TrimSpace(strings.Join(current, "")); doc != "" {
		docs = append(docs, doc)
	}

	return docs
}

// splitKeepSeparator 按分隔符切分并把分隔符保留在后继片段的开头；
// 空分隔符时按单个字符切分
func splitKeepSeparator(text, separator string) []string {
	var splits []string
	if separator == "" {
		for _, r := range text {
			splits = append(splits, string(r))
		}
	} else {
		parts := strings.Split(text, separator)
		for i, p := range parts {
			if i == 0 {
				splits = append(splits, p)
			} else {
				splits = append(splits, separator+p)
			}
		}
	}

	out := splits[:0]
	for _, s := range splits {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func runeLen(s string) int {
	return len([]rune(s))
}
