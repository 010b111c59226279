package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchIntentEmptyQuery(t *testing.T) {
	m := MatchIntent("")
	assert.Equal(t, CategoryFallback, m.Category)
	assert.InDelta(t, 0.3, m.Confidence, 1e-9)

	m = MatchIntent("   ")
	assert.Equal(t, CategoryFallback, m.Category)
	assert.InDelta(t, 0.3, m.Confidence, 1e-9)
}

func TestMatchIntentGreeting(t *testing.T) {
	m := MatchIntent("hello there")
	assert.Equal(t, CategoryGreetings, m.Category)
	assert.GreaterOrEqual(t, m.Confidence, 0.5)
}

func TestMatchIntentKeywordScoring(t *testing.T) {
	// 命中 "how much" 和 "cost" 两个关键词
	m := MatchIntent("how much does it cost")
	assert.Equal(t, CategoryPricing, m.Category)
	assert.InDelta(t, 0.9, m.Confidence, 1e-9)

	// 单个关键词
	m = MatchIntent("what integrations do you support")
	assert.Equal(t, CategoryIntegration, m.Category)
}

func TestMatchIntentConfidenceCapped(t *testing.T) {
	// 大量关键词命中也不超过 0.9
	m := MatchIntent("price pricing cost pay payment plan subscription fee")
	assert.Equal(t, CategoryPricing, m.Category)
	assert.InDelta(t, 0.9, m.Confidence, 1e-9)
}

func TestMatchIntentThanksOverride(t *testing.T) {
	m := MatchIntent("thanks so much")
	assert.Equal(t, CategoryThanks, m.Category)
	assert.InDelta(t, 0.95, m.Confidence, 1e-9)

	m = MatchIntent("thank you, that helped")
	assert.Equal(t, CategoryThanks, m.Category)
	assert.InDelta(t, 0.95, m.Confidence, 1e-9)
}

func TestMatchIntentGoodbyeOverride(t *testing.T) {
	m := MatchIntent("ok goodbye")
	assert.Equal(t, CategoryGoodbye, m.Category)
	assert.InDelta(t, 0.95, m.Confidence, 1e-9)

	m = MatchIntent("see you later")
	assert.Equal(t, CategoryGoodbye, m.Category)
}

func TestMatchIntentGettingStartedOverride(t *testing.T) {
	m := MatchIntent("how do I get started")
	assert.Equal(t, CategoryGettingStarted, m.Category)
	assert.InDelta(t, 0.95, m.Confidence, 1e-9)
}

func TestMatchIntentFrustrationOverride(t *testing.T) {
	m := MatchIntent("this is terrible, I'm so frustrated")
	assert.Equal(t, CategoryComplaint, m.Category)
	assert.InDelta(t, 0.9, m.Confidence, 1e-9)
}

func TestMatchIntentLeadTriggerOverride(t *testing.T) {
	m := MatchIntent("I want to sign up")
	assert.Equal(t, CategoryLeadCapture, m.Category)
	assert.InDelta(t, 0.85, m.Confidence, 1e-9)
}

func TestMatchIntentNoMatch(t *testing.T) {
	m := MatchIntent("xyzzy quux frobnicate")
	assert.Equal(t, CategoryFallback, m.Category)
	assert.InDelta(t, 0.0, m.Confidence, 1e-9)
}

func TestDetectContextCategoryNeedsHistory(t *testing.T) {
	assert.Equal(t, "", DetectContextCategory("tell me more", nil))
	assert.Equal(t, "", DetectContextCategory("tell me more", []HistoryMessage{
		{Role: "user", Content: "hello"},
	}))
}

func TestDetectContextCategoryFollowsTopic(t *testing.T) {
	history := []HistoryMessage{
		{Role: "user", Content: "what do your plans look like"},
		{Role: "assistant", Content: "Our Starter plan costs $49 per month with a free trial."},
	}
	got := DetectContextCategory("tell me more about that", history)
	assert.Equal(t, CategoryPricing, got)
}

func TestDetectContextCategoryNoReferencePhrase(t *testing.T) {
	history := []HistoryMessage{
		{Role: "user", Content: "what do your plans look like"},
		{Role: "assistant", Content: "Our Starter plan costs $49 per month."},
	}
	assert.Equal(t, "", DetectContextCategory("what is your refund policy", history))
}

func TestShouldCaptureLead(t *testing.T) {
	assert.True(t, ShouldCaptureLead("I'd like to schedule a call"))
	assert.True(t, ShouldCaptureLead("please reach out to me"))
	assert.False(t, ShouldCaptureLead("what time is it"))
}

func TestCategoryByNameFallsBack(t *testing.T) {
	c := CategoryByName("no_such_category")
	assert.Equal(t, CategoryFallback, c.Name)
	assert.NotEmpty(t, c.Responses)

	c = CategoryByName(CategoryGreetings)
	assert.Equal(t, CategoryGreetings, c.Name)
}
