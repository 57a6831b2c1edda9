package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPartnerIDMarkers(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantID      string
		wantPattern string
	}{
		{"partnerId colon", "request failed, partnerId: 1234567 already present", "1234567", "partnerId"},
		{"partnerId equals", `body was {"partnerId"="7654321"}`, "7654321", "partnerId"},
		{"partner_id", "partner_id: 9876543 is linked", "9876543", "partner_id"},
		{"partner id spaced", "the partner id 1122334 conflicts", "1122334", "partner_id"},
		{"partner program", "AI Cloud Partner Program ID is 5556667 for this directory", "5556667", "partner program id"},
		{"associated", "Associated PartnerID was 6667778", "6667778", "associated partnerid"},
		{"already linked", "tenant already linked to 7778889", "7778889", "already linked"},
		{"existing partner", "an existing partner (8889990) is present", "8889990", "existing partner"},
		{"current partner", "current partner is 9990001", "9990001", "current partner"},
		{"conflict", "Conflict with 1002003", "1002003", "conflict"},
		{"management partner", "management partner 2003004 found", "2003004", "management partner"},
		{"generic partner", "a partner numbered 3004005 exists", "3004005", "partner"},
		{"bare number", "error code 77 ref 4005006 try later", "4005006", "bare number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, pattern, ok := extractPartnerID(tt.text)
			assert.True(t, ok)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantPattern, pattern)
		})
	}
}

func TestExtractPartnerIDPriority(t *testing.T) {
	// The anchored marker must win over earlier-positioned loose text.
	text := "conflict with 1111111 because partnerId: 2222222 exists"
	id, pattern, ok := extractPartnerID(text)
	assert.True(t, ok)
	assert.Equal(t, "2222222", id)
	assert.Equal(t, "partnerId", pattern)
}

func TestExtractPartnerIDNoMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"eleven digits", "trace id 12345678901 unrelated"},
		{"five digits", "error 12345"},
		{"no digits", "nothing to see here"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := extractPartnerID(tt.text)
			assert.False(t, ok)
		})
	}
}
