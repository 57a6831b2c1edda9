package identity

import (
	"context"
	"fmt"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"

	"github.com/entraops/palctl/internal/logger"
)

// Config holds the static identity configuration. A malformed Config is
// the one fatal failure mode in this package: New returns an error and
// the process should not continue.
type Config struct {
	ClientID    string
	Authority   string
	RedirectURI string
	Scopes      []string
}

// Authenticator is the token acquisition state machine. It owns the live
// Session (two states: unauthenticated and authenticated; sign-in and
// sign-out move between them) and converts token requests for a scope
// set and tenant into either a token or a classified TokenResult.
// GetAccessToken never changes session state.
type Authenticator struct {
	client   TokenClient
	clientID string
	scopes   []string
	sessions sessionStore
}

// New builds an Authenticator over the MSAL public client.
func New(cfg Config) (*Authenticator, error) {
	client, err := NewMSALClient(cfg.ClientID, cfg.Authority, cfg.RedirectURI)
	if err != nil {
		return nil, err
	}
	return NewWithClient(cfg, client), nil
}

// NewWithClient builds an Authenticator with a caller-supplied
// TokenClient. Used by tests and by anything that needs to intercept the
// identity provider.
func NewWithClient(cfg Config, client TokenClient) *Authenticator {
	return &Authenticator{
		client:   client,
		clientID: cfg.ClientID,
		scopes:   cfg.Scopes,
	}
}

// Session returns a copy of the current session.
func (a *Authenticator) Session() Session {
	return a.sessions.get()
}

// Subscribe registers a listener for session-change events. The channel
// is buffered; the publisher never blocks on it.
func (a *Authenticator) Subscribe() <-chan Session {
	return a.sessions.subscribe()
}

// SignInInteractive signs in, trying silent acquisition against any
// cached account first and falling back to a browser challenge when the
// authority demands interaction. A non-empty tenantID targets sign-in at
// that tenant instead of the configured authority's default. Failure of
// both paths leaves the session unauthenticated; no error crosses this
// boundary.
func (a *Authenticator) SignInInteractive(ctx context.Context, tenantID string) Session {
	if sess, ok := a.trySilent(ctx, tenantID); ok {
		return sess
	}

	result, err := a.client.AcquireInteractive(ctx, a.scopes, tenantID, "", "")
	if err != nil {
		logger.Warn("interactive sign-in failed", "error", err)
		a.sessions.reset()
		return a.sessions.get()
	}
	return a.adoptResult(result)
}

// SignInWithDeviceCode signs in via the device-code flow. The display
// callback is invoked exactly once with the user code and verification
// URL before the call blocks waiting for the user to complete the flow.
func (a *Authenticator) SignInWithDeviceCode(ctx context.Context, tenantID string, display func(userCode, verificationURL string)) Session {
	result, err := a.client.AcquireDeviceCode(ctx, a.scopes, tenantID, display)
	if err != nil {
		logger.Warn("device code sign-in failed", "error", err)
		a.sessions.reset()
		return a.sessions.get()
	}
	return a.adoptResult(result)
}

// TrySignInSilently attempts sign-in from the cached account without any
// prompt. On any failure, including interaction-required, it returns the
// current (possibly unauthenticated) session.
func (a *Authenticator) TrySignInSilently(ctx context.Context) Session {
	if sess, ok := a.trySilent(ctx, ""); ok {
		return sess
	}
	return a.sessions.get()
}

func (a *Authenticator) trySilent(ctx context.Context, tenantID string) (Session, bool) {
	accounts, err := a.client.Accounts(ctx)
	if err != nil || len(accounts) == 0 {
		return Session{}, false
	}
	result, err := a.client.AcquireSilent(ctx, a.scopes, accounts[0], tenantID)
	if err != nil {
		logger.Debug("silent sign-in failed", "error", err)
		return Session{}, false
	}
	return a.adoptResult(result), true
}

// SignOut removes every cached account and resets the session. It always
// succeeds from the caller's point of view; removal failures are logged
// and swallowed.
func (a *Authenticator) SignOut(ctx context.Context) {
	accounts, err := a.client.Accounts(ctx)
	if err != nil {
		logger.Warn("failed to enumerate accounts during sign-out", "error", err)
	}
	for _, account := range accounts {
		if err := a.client.RemoveAccount(ctx, account); err != nil {
			logger.Warn("failed to remove cached account", "account", account.PreferredUsername, "error", err)
		}
	}
	a.sessions.reset()
}

// GetAccessToken acquires an access token for the given scope set and
// tenant. It tries silently first; on an interaction-required failure it
// classifies the error and, where the classification allows it, performs
// at most one interactive escalation. The session record is never
// modified, whatever tenant the token is for.
func (a *Authenticator) GetAccessToken(ctx context.Context, scopes []string, tenantID string, allowInteractive bool) TokenResult {
	if !a.sessions.get().Authenticated {
		return failureResult(KindNotAuthenticated, "not signed in")
	}

	accounts, err := a.client.Accounts(ctx)
	if err != nil {
		return failureResult(KindException, err.Error())
	}
	if len(accounts) == 0 {
		return failureResult(KindNoAccounts, "no cached accounts available")
	}

	result, err := a.client.AcquireSilent(ctx, scopes, accounts[0], tenantID)
	if err == nil {
		return successResult(result.AccessToken)
	}

	kind := classifyAcquireError(err)
	logger.Debug("silent token acquisition failed",
		"tenant", tenantID, "kind", kind, "error", err)

	switch kind {
	case KindConsentRequired:
		// Consent cannot be satisfied by the current user, so there is
		// no interactive fallback. Hand back the admin-consent URL.
		url := adminConsentURL(a.clientID, tenantID)
		r := failureResult(KindConsentRequired,
			fmt.Sprintf("administrator consent required; an administrator must visit %s", url))
		r.ActionURL = url
		return r

	case KindMFARequired:
		if !allowInteractive {
			return failureResult(KindMFARequired, err.Error())
		}
		// One automatic escalation: a fresh interactive prompt scoped to
		// the tenant, with no cached account so the user picks one.
		retry, retryErr := a.client.AcquireInteractive(ctx, scopes, tenantID, "", "")
		if retryErr != nil {
			return failureResult(KindMFARequired,
				fmt.Sprintf("multi-factor authentication required: %s", retryErr))
		}
		return successResult(retry.AccessToken)

	case KindBasicAction:
		// Requires an out-of-band user action (for example a password
		// reset or terms-of-use acceptance); retrying here cannot help.
		return failureResult(KindBasicAction, err.Error())

	case KindUIRequired:
		if !allowInteractive {
			return failureResult(KindUIRequired, err.Error())
		}
		retry, retryErr := a.client.AcquireInteractive(ctx, scopes, tenantID, "", "")
		if retryErr != nil {
			return failureResult(KindUIRequired,
				fmt.Sprintf("%s; interactive fallback failed: %s", err, retryErr))
		}
		return successResult(retry.AccessToken)

	default:
		return failureResult(KindException, err.Error())
	}
}

// InteractiveAuth forces an interactive challenge for the given tenant
// regardless of cache state. Used as an explicit, user-initiated
// escalation after automatic handling has not helped.
func (a *Authenticator) InteractiveAuth(ctx context.Context, tenantID string) TokenResult {
	result, err := a.client.AcquireInteractive(ctx, a.scopes, tenantID, "", "")
	if err != nil {
		return failureResult(classifyAcquireError(err), err.Error())
	}
	return successResult(result.AccessToken)
}

// HandleMfaChallenge forces a login prompt with MFA-oriented hints: the
// current principal as login hint plus an optional domain hint. Meant as
// a second, more forceful attempt after GetAccessToken's automatic MFA
// retry has already failed once.
func (a *Authenticator) HandleMfaChallenge(ctx context.Context, tenantID, domainHint string) TokenResult {
	loginHint := a.sessions.get().PrincipalName
	result, err := a.client.AcquireInteractive(ctx, a.scopes, tenantID, loginHint, domainHint)
	if err != nil {
		return failureResult(KindMFARequired, err.Error())
	}
	return successResult(result.AccessToken)
}

// adoptResult installs a new authenticated session from an auth result.
func (a *Authenticator) adoptResult(result public.AuthResult) Session {
	claims := parseTokenClaims(result.AccessToken)

	sess := Session{
		Authenticated: true,
		PrincipalName: result.Account.PreferredUsername,
		DisplayName:   result.IDToken.Name,
		HomeTenantID:  result.IDToken.TenantID,
		LastAuthTime:  nowFunc(),
		TokenExpiry:   result.ExpiresOn,
	}
	if sess.PrincipalName == "" {
		sess.PrincipalName = claims.PrincipalName
	}
	if sess.DisplayName == "" {
		sess.DisplayName = claims.Name
	}
	if sess.HomeTenantID == "" {
		sess.HomeTenantID = claims.TenantID
	}
	if sess.TokenExpiry.IsZero() {
		sess.TokenExpiry = claims.Expiry
	}

	a.sessions.set(sess)
	logger.Info("signed in", "principal", sess.PrincipalName, "tenant", sess.HomeTenantID)
	return sess
}
