package identity

import (
	"fmt"
	"strings"
)

// Error kinds produced by token acquisition. These are stable strings:
// the link layer and the UI both key their behavior off them.
const (
	KindNotAuthenticated = "not_authenticated"
	KindNoAccounts       = "no_accounts"
	KindConsentRequired  = "consent_required"
	KindMFARequired      = "mfa_required"
	KindBasicAction      = "basic_action"
	KindUIRequired       = "ui_required"
	KindException        = "exception"
)

// TokenResult is the outcome of a single token acquisition attempt.
// Immutable once constructed. ActionURL is only set for consent_required
// and carries the admin-consent URL an administrator must visit.
type TokenResult struct {
	Success      bool
	AccessToken  string
	ErrorKind    string
	ErrorMessage string
	ActionURL    string
}

func successResult(token string) TokenResult {
	return TokenResult{Success: true, AccessToken: token}
}

func failureResult(kind, message string) TokenResult {
	return TokenResult{ErrorKind: kind, ErrorMessage: message}
}

// Indicator sets for classifying a failed silent acquisition. Matching is
// case-insensitive against the full error text, which for Entra errors
// contains both the AADSTS code and the description.
var (
	consentIndicators = []string{
		"aadsts65001",
		"consent_required",
		"admin consent",
		"need admin approval",
	}
	mfaIndicators = []string{
		"aadsts50076",
		"aadsts50079",
		"aadsts50074",
		"multi-factor",
		"multifactor",
		"mfa",
		"strong authentication",
	}
	basicActionIndicators = []string{
		"aadsts50158",
		"basic_action",
		"external security challenge",
	}
	uiRequiredIndicators = []string{
		"aadsts50058",
		"aadsts50057",
		"aadsts70008",
		"aadsts700082",
		"interaction_required",
		"interaction required",
		"invalid_grant",
		"login_required",
		"login required",
		"no token found",
		"token expired",
		"refresh token has expired",
		"ui_required",
	}
)

func containsAny(text string, indicators []string) bool {
	for _, ind := range indicators {
		if strings.Contains(text, ind) {
			return true
		}
	}
	return false
}

// classifyAcquireError maps a silent-acquisition failure to an error
// kind. Priority matters: consent beats MFA beats the basic-action
// challenge beats the generic interaction-required bucket. Anything that
// carries no interaction indicator at all is an exception.
func classifyAcquireError(err error) string {
	text := strings.ToLower(err.Error())
	switch {
	case containsAny(text, consentIndicators):
		return KindConsentRequired
	case containsAny(text, mfaIndicators):
		return KindMFARequired
	case containsAny(text, basicActionIndicators):
		return KindBasicAction
	case containsAny(text, uiRequiredIndicators):
		return KindUIRequired
	default:
		return KindException
	}
}

// adminConsentURL builds the URL an administrator must visit to grant
// consent for the application in the given tenant.
func adminConsentURL(clientID, tenantID string) string {
	if tenantID == "" {
		tenantID = "organizations"
	}
	return fmt.Sprintf("https://login.microsoftonline.com/%s/adminconsent?client_id=%s", tenantID, clientID)
}
