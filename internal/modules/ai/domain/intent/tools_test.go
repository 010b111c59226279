package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLeadIntentExtractsEmail(t *testing.T) {
	li := DetectLeadIntent("you can email me at john.doe+test@example.co.uk")
	assert.True(t, li.HasLeadIntent)
	assert.Equal(t, "john.doe+test@example.co.uk", li.ExtractedEmail)
	assert.Empty(t, li.ExtractedPhone)
	assert.False(t, li.ShouldAskForContact)
}

func TestDetectLeadIntentExtractsPhone(t *testing.T) {
	for _, raw := range []string{"555-123-4567", "555.123.4567", "5551234567"} {
		li := DetectLeadIntent("call me at " + raw)
		assert.Equal(t, raw, li.ExtractedPhone, "input %q", raw)
		assert.True(t, li.HasLeadIntent)
		assert.False(t, li.ShouldAskForContact)
	}
}

func TestDetectLeadIntentAsksForContact(t *testing.T) {
	li := DetectLeadIntent("I'm interested in your product")
	assert.True(t, li.HasLeadIntent)
	assert.Empty(t, li.ExtractedEmail)
	assert.Empty(t, li.ExtractedPhone)
	assert.True(t, li.ShouldAskForContact)
}

func TestDetectLeadIntentNoIntent(t *testing.T) {
	li := DetectLeadIntent("what is the weather like")
	assert.False(t, li.HasLeadIntent)
	assert.False(t, li.ShouldAskForContact)
}

func TestDetectLeadIntentEmailWithoutKeyword(t *testing.T) {
	// 只给邮箱也要能抽取，但没有意向关键词时不算意向
	li := DetectLeadIntent("foo@bar.com")
	assert.Equal(t, "foo@bar.com", li.ExtractedEmail)
	assert.False(t, li.HasLeadIntent)
	assert.False(t, li.ShouldAskForContact)
}

func TestShouldEscalateOnKeyword(t *testing.T) {
	assert.True(t, ShouldEscalate("let me talk to a human", 0.9))
	assert.True(t, ShouldEscalate("I need a real person", 0.9))
}

func TestShouldEscalateOnLowConfidence(t *testing.T) {
	assert.True(t, ShouldEscalate("what about quantum computing", 0.3))
	assert.False(t, ShouldEscalate("how much does it cost", 0.9))
}
