package identity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAcquireError(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"consent code", "AADSTS65001: user has not consented", KindConsentRequired},
		{"consent keyword", "invalid_grant: consent_required", KindConsentRequired},
		{"admin approval", "Need admin approval before you can access", KindConsentRequired},
		{"mfa code", "AADSTS50076: multi-factor authentication required", KindMFARequired},
		{"mfa keyword", "user must use multifactor authentication", KindMFARequired},
		{"basic action", "AADSTS50158: External security challenge was not satisfied", KindBasicAction},
		{"generic interaction", "AADSTS50058: silent sign-in failed", KindUIRequired},
		{"cache miss", "no token found", KindUIRequired},
		{"expired grant", "invalid_grant: the refresh token has expired", KindUIRequired},
		{"transport", "dial tcp 1.2.3.4:443: i/o timeout", KindException},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyAcquireError(errors.New(tt.text)))
		})
	}
}

func TestClassifyPriorityConsentBeatsMFA(t *testing.T) {
	// A single error mentioning both must classify as consent: it cannot
	// be satisfied by the current user, so it must win over MFA.
	err := errors.New("AADSTS65001: consent required; AADSTS50076: mfa required")
	assert.Equal(t, KindConsentRequired, classifyAcquireError(err))
}

func TestAdminConsentURL(t *testing.T) {
	url := adminConsentURL("client-123", "tenant-456")
	assert.Equal(t, "https://login.microsoftonline.com/tenant-456/adminconsent?client_id=client-123", url)

	url = adminConsentURL("client-123", "")
	assert.Equal(t, "https://login.microsoftonline.com/organizations/adminconsent?client_id=client-123", url)
}
