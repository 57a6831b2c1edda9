package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFailureOutcomeSplitsOnFirstColon(t *testing.T) {
	o := failureOutcome(nil, "1234567", "consent_required: admin must approve")
	assert.Equal(t, "consent_required", o.ErrorKind)
	assert.Equal(t, "admin must approve", o.ErrorMessage)
	assert.False(t, o.Success)
	assert.False(t, o.Timestamp.IsZero())
}

func TestFailureOutcomeNoColon(t *testing.T) {
	o := failureOutcome(nil, "1234567", "something broke")
	assert.Equal(t, "something broke", o.ErrorKind)
	assert.Equal(t, "something broke", o.ErrorMessage)
}

func TestFailureOutcomeOnlyFirstColonSplits(t *testing.T) {
	o := failureOutcome(nil, "1234567", "Conflict: partner 7654321: already linked")
	assert.Equal(t, "Conflict", o.ErrorKind)
	assert.Equal(t, "partner 7654321: already linked", o.ErrorMessage)
}

func TestValidatePartnerID(t *testing.T) {
	valid := []string{"123456", "1234567", "0000000000", "999999"}
	for _, id := range valid {
		assert.True(t, ValidatePartnerID(id), "expected %q to be valid", id)
	}

	invalid := []string{"", "12345", "12345678901", "12a4567", " 123456", "123456 ", "123-4567"}
	for _, id := range invalid {
		assert.False(t, ValidatePartnerID(id), "expected %q to be invalid", id)
	}
}

func TestSetObservedLink(t *testing.T) {
	tenant := &Tenant{ID: "t1"}

	tenant.setObservedLink("1234567")
	assert.True(t, tenant.HasPartnerLink)
	if assert.NotNil(t, tenant.CurrentPartnerLink) {
		assert.Equal(t, "1234567", *tenant.CurrentPartnerLink)
	}

	tenant.setObservedLink("")
	assert.False(t, tenant.HasPartnerLink)
	assert.Nil(t, tenant.CurrentPartnerLink)
}
