package partner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/entraops/palctl/internal/identity"
	"github.com/entraops/palctl/internal/logger"
)

// defaultCheckTimeout bounds how long discovery waits for a single
// tenant's link check before asking the caller whether to keep waiting.
const defaultCheckTimeout = 5 * time.Second

// AuthFailureFunc is consulted when a tenant's link check hits an
// authentication challenge. Returning true skips the tenant; false
// retries the check once with interactive authentication allowed.
type AuthFailureFunc func(tenantID, errorKind, errorMessage string) bool

// TimeoutFunc is consulted when a tenant's link check has not completed
// within the bounded wait. Returning true skips the tenant; false keeps
// waiting. The in-flight check is never cancelled either way.
type TimeoutFunc func(tenantID string) bool

// Discovery lists the tenants visible to the signed-in principal and
// enriches each with its currently observed partner link.
type Discovery struct {
	auth         TokenSource
	api          PartnerAPI
	reconciler   *Reconciler
	scopes       []string
	checkTimeout time.Duration

	// promptMu serializes user-facing decision callbacks so at most one
	// prompt is ever in flight.
	promptMu sync.Mutex
}

// NewDiscovery builds a Discovery with the default per-check timeout.
func NewDiscovery(auth TokenSource, api PartnerAPI, reconciler *Reconciler, scopes []string) *Discovery {
	return &Discovery{
		auth:         auth,
		api:          api,
		reconciler:   reconciler,
		scopes:       scopes,
		checkTimeout: defaultCheckTimeout,
	}
}

// SetCheckTimeout overrides the bounded wait for per-tenant checks.
func (d *Discovery) SetCheckTimeout(timeout time.Duration) {
	d.checkTimeout = timeout
}

type checkResult struct {
	skipped bool
	err     error
}

// Discover enumerates tenants, following pagination until exhausted, and
// performs the read-only link check on each. A failing check never drops
// a tenant unless a callback explicitly says to skip it; tenants whose
// check errors out are included with no observed link.
func (d *Discovery) Discover(ctx context.Context, onAuthFailure AuthFailureFunc, onTimeout TimeoutFunc) ([]*Tenant, error) {
	tok := d.auth.GetAccessToken(ctx, d.scopes, "", true)
	if !tok.Success {
		return nil, fmt.Errorf("failed to authenticate for tenant discovery: %s: %s", tok.ErrorKind, tok.ErrorMessage)
	}

	listed, err := d.api.ListTenants(ctx, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	logger.Info("discovered tenants", "count", len(listed))

	tenants := make([]*Tenant, 0, len(listed))
	for _, item := range listed {
		tenant := &Tenant{
			ID:          item.TenantID,
			DisplayName: item.DisplayName,
			Domain:      item.DefaultDomain,
		}

		skip := d.checkWithTimeout(ctx, tenant, onAuthFailure, onTimeout)
		if skip {
			logger.Debug("skipping tenant after failed check", "tenant", tenant.ID)
			continue
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

// checkWithTimeout runs the link check in the background and races it
// against the bounded wait. The timer losing only surfaces a skip or
// keep-waiting decision; the check itself always runs to completion.
func (d *Discovery) checkWithTimeout(ctx context.Context, tenant *Tenant, onAuthFailure AuthFailureFunc, onTimeout TimeoutFunc) (skip bool) {
	done := make(chan checkResult, 1)
	go func() {
		done <- d.checkTenant(ctx, tenant, onAuthFailure)
	}()

	for {
		select {
		case result := <-done:
			if result.err != nil {
				// Enrichment failure: keep the tenant, with no link.
				logger.Debug("tenant link check failed", "tenant", tenant.ID, "error", result.err)
			}
			return result.skipped
		case <-time.After(d.checkTimeout):
			if onTimeout == nil {
				continue
			}
			d.promptMu.Lock()
			skip := onTimeout(tenant.ID)
			d.promptMu.Unlock()
			if skip {
				return true
			}
		}
	}
}

// checkTenant performs the read-only link check, consulting the
// auth-failure callback on a challenge. Role and guest enrichment comes
// from the tenant-scoped token's claims.
func (d *Discovery) checkTenant(ctx context.Context, tenant *Tenant, onAuthFailure AuthFailureFunc) checkResult {
	d.enrichFromToken(ctx, tenant)

	_, err := d.reconciler.CheckLink(ctx, tenant, false)
	if err == nil {
		return checkResult{}
	}

	var challenge *AuthChallengeError
	if !errors.As(err, &challenge) {
		return checkResult{err: err}
	}

	if onAuthFailure == nil {
		return checkResult{err: challenge}
	}

	d.promptMu.Lock()
	skip := onAuthFailure(tenant.ID, challenge.Kind, challenge.Message)
	d.promptMu.Unlock()
	if skip {
		return checkResult{skipped: true}
	}

	// One retry with interactive authentication allowed.
	if _, err := d.reconciler.CheckLink(ctx, tenant, true); err != nil {
		return checkResult{err: err}
	}
	return checkResult{}
}

// enrichFromToken fills role and guest information from a silently
// acquired tenant-scoped token, when one is available.
func (d *Discovery) enrichFromToken(ctx context.Context, tenant *Tenant) {
	tok := d.auth.GetAccessToken(ctx, d.scopes, tenant.ID, false)
	if !tok.Success {
		return
	}
	roles, isGuest := identity.InspectToken(tok.AccessToken)
	tenant.UserRoles = roles
	tenant.IsGuestUser = isGuest
}
