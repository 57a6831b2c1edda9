package partner

import (
	"context"
	"errors"
	"fmt"

	"github.com/entraops/palctl/internal/identity"
	"github.com/entraops/palctl/internal/logger"
	"github.com/entraops/palctl/pkg/armclient"
)

// TokenSource supplies tenant-scoped access tokens and the current
// session. Implemented by identity.Authenticator.
type TokenSource interface {
	Session() identity.Session
	GetAccessToken(ctx context.Context, scopes []string, tenantID string, allowInteractive bool) identity.TokenResult
}

// PartnerAPI is the slice of the management API the engine drives.
// Implemented by armclient.Client.
type PartnerAPI interface {
	ListTenants(ctx context.Context, token string) ([]armclient.Tenant, error)
	GetPartner(ctx context.Context, token string) (string, error)
	PutPartner(ctx context.Context, token, partnerID string) error
	DeletePartner(ctx context.Context, token, partnerID string) error
}

// AuthChallengeError is returned by CheckLink when token acquisition
// failed. It carries the token layer's classification so callers can
// decide whether to escalate.
type AuthChallengeError struct {
	Kind    string
	Message string
}

func (e *AuthChallengeError) Error() string {
	return e.Kind + ": " + e.Message
}

// ValidatePartnerID reports whether id is a well-formed partner
// identifier: non-empty, all ASCII digits, length 6 to 10.
func ValidatePartnerID(id string) bool {
	if len(id) < 6 || len(id) > 10 {
		return false
	}
	for _, c := range id {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Reconciler performs the create/verify/conflict-resolve protocol for a
// single tenant's partner link.
type Reconciler struct {
	auth   TokenSource
	api    PartnerAPI
	scopes []string
}

// NewReconciler builds a Reconciler acquiring tokens for the given scope
// set.
func NewReconciler(auth TokenSource, api PartnerAPI, scopes []string) *Reconciler {
	return &Reconciler{auth: auth, api: api, scopes: scopes}
}

// CheckLink reads the tenant's currently linked partner identifier and
// records it on the tenant. Returns "" when no link exists. Token
// failures surface as *AuthChallengeError.
func (r *Reconciler) CheckLink(ctx context.Context, tenant *Tenant, allowInteractive bool) (string, error) {
	tok := r.auth.GetAccessToken(ctx, r.scopes, tenant.ID, allowInteractive)
	if !tok.Success {
		return "", &AuthChallengeError{Kind: tok.ErrorKind, Message: tok.ErrorMessage}
	}
	existing, err := r.api.GetPartner(ctx, tok.AccessToken)
	if err != nil {
		return "", err
	}
	tenant.setObservedLink(existing)
	return existing, nil
}

// Link links partnerID to the tenant. The protocol: validate, pre-check
// the existing link, create, and on conflict resolve against what the
// server actually holds. Whatever happens, the tenant's observed link is
// updated to the last server-side value actually read.
func (r *Reconciler) Link(ctx context.Context, partnerID string, tenant *Tenant) Outcome {
	if !r.auth.Session().Authenticated {
		return failureOutcomeKind(tenant, partnerID, identity.KindNotAuthenticated, "not signed in", "")
	}
	if !ValidatePartnerID(partnerID) {
		return failureOutcomeKind(tenant, partnerID, KindValidation,
			fmt.Sprintf("partner ID %q is invalid: must be 6 to 10 digits", partnerID), "")
	}

	// Mandatory pre-check: never write when the desired link already
	// exists, and surface a pre-existing different link without touching
	// the server. A failed pre-check (no silent token, read error) falls
	// through to the write path.
	if existing, err := r.CheckLink(ctx, tenant, false); err == nil && existing != "" {
		if existing == partnerID {
			return successOutcome(tenant, partnerID, "already linked")
		}
		return failureOutcomeKind(tenant, partnerID, KindConflict,
			fmt.Sprintf("tenant is already linked to partner ID %s", existing), existing)
	}

	tok := r.auth.GetAccessToken(ctx, r.scopes, tenant.ID, true)
	if !tok.Success {
		return failureOutcomeKind(tenant, partnerID, tok.ErrorKind, tok.ErrorMessage, tok.ActionURL)
	}

	var outcome Outcome
	err := r.api.PutPartner(ctx, tok.AccessToken, partnerID)
	switch {
	case err == nil:
		tenant.setObservedLink(partnerID)
		return successOutcome(tenant, partnerID, "")
	case isConflict(err):
		logger.Debug("partner link conflict", "tenant", tenant.ID, "error", err)
		outcome = r.resolveConflict(ctx, tok.AccessToken, partnerID, tenant, err)
	default:
		outcome = failureOutcome(tenant, partnerID, err.Error())
	}

	// A write may have partially succeeded or raced with another writer:
	// re-read and upgrade the outcome if the link now matches.
	if !outcome.Success {
		if current, err := r.api.GetPartner(ctx, tok.AccessToken); err == nil && current == partnerID {
			logger.Debug("link verified after failed attempt", "tenant", tenant.ID)
			tenant.setObservedLink(partnerID)
			outcome = successOutcome(tenant, partnerID, "link verified after failed attempt")
		}
	}
	return outcome
}

// resolveConflict determines which partner the tenant is actually linked
// to: a follow-up read first, then the pattern cascade over the raw
// error text.
func (r *Reconciler) resolveConflict(ctx context.Context, token, partnerID string, tenant *Tenant, conflictErr error) Outcome {
	existing, err := r.api.GetPartner(ctx, token)
	if err == nil && existing != "" {
		tenant.setObservedLink(existing)
		if existing == partnerID {
			return successOutcome(tenant, partnerID, "already linked")
		}
		return failureOutcomeKind(tenant, partnerID, KindConflict,
			fmt.Sprintf("tenant is already linked to partner ID %s", existing), existing)
	}

	if id, pattern, ok := extractPartnerID(conflictErr.Error()); ok {
		logger.Debug("extracted partner id from error text",
			"tenant", tenant.ID, "pattern", pattern, "id", id)
		tenant.setObservedLink(id)
		if id == partnerID {
			return successOutcome(tenant, partnerID, "already linked")
		}
		return failureOutcomeKind(tenant, partnerID, KindConflict,
			fmt.Sprintf("tenant is already linked to partner ID %s", id), id)
	}

	tenant.setObservedLink("")
	return failureOutcomeKind(tenant, partnerID, KindLinkedUnknown,
		"tenant is linked but the existing partner ID could not be determined", "")
}

// Unlink removes the tenant's partner link. It reads the current link
// with a default-tenant token and deletes whatever identifier it finds.
func (r *Reconciler) Unlink(ctx context.Context, tenant *Tenant) Outcome {
	if !r.auth.Session().Authenticated {
		return failureOutcomeKind(tenant, "", identity.KindNotAuthenticated, "not signed in", "")
	}

	tok := r.auth.GetAccessToken(ctx, r.scopes, "", true)
	if !tok.Success {
		return failureOutcomeKind(tenant, "", tok.ErrorKind, tok.ErrorMessage, tok.ActionURL)
	}

	existing, err := r.api.GetPartner(ctx, tok.AccessToken)
	if err != nil {
		return failureOutcome(tenant, "", err.Error())
	}
	if existing == "" {
		return failureOutcomeKind(tenant, "", KindNoLink, "no partner link found", "")
	}

	if err := r.api.DeletePartner(ctx, tok.AccessToken, existing); err != nil {
		return failureOutcome(tenant, existing, err.Error())
	}

	if tenant != nil {
		tenant.setObservedLink("")
	}
	return successOutcome(tenant, existing, "unlinked")
}

func isConflict(err error) bool {
	var apiErr *armclient.APIError
	return errors.As(err, &apiErr) && apiErr.IsConflict()
}
