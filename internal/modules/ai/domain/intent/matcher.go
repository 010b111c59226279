package intent

import (
	"strings"
)

// HistoryMessage 意图匹配可见的最小消息视图
type HistoryMessage struct {
	Role    string
	Content string
}

// MatchResult 意图匹配结果
type MatchResult struct {
	Category   string
	Confidence float64
}

// contextReferences 指代前文的短语，命中则尝试沿用上文话题
var contextReferences = []string{"what about", "tell me more", "more about", "and", "also"}

// MatchIntent 将用户消息匹配到意图类别。
//
// 匹配顺序：
// 1) 空消息直接兜底
// 2) 按关键词计数打分，confidence = min(0.9, 0.5 + matches*0.2)
// 3) 多词短语与情绪类的特判优先级更高，直接覆盖打分结果
func MatchIntent(query string) MatchResult {
	queryLower := strings.ToLower(strings.TrimSpace(query))

	if queryLower == "" {
		return MatchResult{Category: CategoryFallback, Confidence: 0.3}
	}

	best := MatchResult{Category: CategoryFallback, Confidence: 0.0}
	for _, c := range Categories {
		if c.Name == CategoryFallback || len(c.Keywords) == 0 {
			continue
		}
		matches := 0
		for _, kw := range c.Keywords {
			if strings.Contains(queryLower, kw) {
				matches++
			}
		}
		if matches > 0 {
			confidence := 0.5 + float64(matches)*0.2
			if confidence > 0.9 {
				confidence = 0.9
			}
			if confidence > best.Confidence {
				best = MatchResult{Category: c.Name, Confidence: confidence}
			}
		}
	}

	if strings.Contains(queryLower, "get started") || strings.Contains(queryLower, "how to start") {
		return MatchResult{Category: CategoryGettingStarted, Confidence: 0.95}
	}

	if strings.Contains(queryLower, "thank") {
		return MatchResult{Category: CategoryThanks, Confidence: 0.95}
	}

	for _, w := range []string{"bye", "goodbye", "see you later"} {
		if strings.Contains(queryLower, w) {
			return MatchResult{Category: CategoryGoodbye, Confidence: 0.95}
		}
	}

	for _, w := range FrustrationKeywords {
		if strings.Contains(queryLower, w) {
			return MatchResult{Category: CategoryComplaint, Confidence: 0.9}
		}
	}

	for _, t := range LeadIntentTriggers {
		if strings.Contains(queryLower, t) {
			return MatchResult{Category: CategoryLeadCapture, Confidence: 0.85}
		}
	}

	return best
}

// DetectContextCategory 判断本条消息是否在指代前文话题。
// 若消息含指代短语，则在最近两轮对话的机器人回复里反向查找话题类别；
// 找不到返回空串。
func DetectContextCategory(query string, history []HistoryMessage) string {
	if len(history) < 2 {
		return ""
	}

	queryLower := strings.ToLower(query)

	hasReference := false
	for _, ref := range contextReferences {
		if strings.Contains(queryLower, ref) {
			hasReference = true
			break
		}
	}
	if !hasReference {
		return ""
	}

	recent := history
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}

	for i := len(recent) - 1; i >= 0; i-- {
		msg := recent[i]
		if msg.Role != "assistant" {
			continue
		}
		content := strings.ToLower(msg.Content)
		for _, c := range Categories {
			keywords := c.Keywords
			if len(keywords) > 3 {
				keywords = keywords[:3]
			}
			for _, kw := range keywords {
				if strings.Contains(content, kw) {
					return c.Name
				}
			}
		}
	}

	return ""
}

// ShouldCaptureLead 判断消息是否表达了希望被联系的意向
func ShouldCaptureLead(query string) bool {
	queryLower := strings.ToLower(query)
	for _, t := range LeadIntentTriggers {
		if strings.Contains(queryLower, t) {
			return true
		}
	}
	return false
}
