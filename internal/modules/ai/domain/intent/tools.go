package intent

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// contactKeywords 留资意向关键词（比 LeadIntentTriggers 更宽）
var contactKeywords = []string{
	"contact", "reach out", "get in touch", "call me",
	"email me", "sign up", "register", "interested",
	"demo", "pricing", "quote", "sales",
}

// LeadIntent 留资意向检测结果
type LeadIntent struct {
	HasLeadIntent       bool
	ExtractedEmail      string
	ExtractedPhone      string
	ShouldAskForContact bool
}

// DetectLeadIntent 检测消息中的留资意向，并抽取邮箱/电话
func DetectLeadIntent(message string) LeadIntent {
	messageLower := strings.ToLower(message)

	hasIntent := false
	for _, kw := range contactKeywords {
		if strings.Contains(messageLower, kw) {
			hasIntent = true
			break
		}
	}

	email := emailPattern.FindString(message)
	phone := phonePattern.FindString(message)

	return LeadIntent{
		HasLeadIntent:       hasIntent,
		ExtractedEmail:      email,
		ExtractedPhone:      phone,
		ShouldAskForContact: hasIntent && email == "" && phone == "",
	}
}

// ShouldEscalate 判断是否应转人工：明确要求转人工，或回复置信度过低
func ShouldEscalate(message string, confidence float64) bool {
	messageLower := strings.ToLower(message)
	for _, kw := range EscalationKeywords {
		if strings.Contains(messageLower, kw) {
			return true
		}
	}
	return confidence < 0.5
}
