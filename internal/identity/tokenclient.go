package identity

import (
	"context"
	"fmt"

	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/public"
)

// TokenClient is the slice of the identity provider the Authenticator
// needs: list cached accounts, acquire tokens silently, interactively, or
// via device code, and remove accounts. The browser and device-code flows
// themselves are opaque; callers only supply the scope set, the target
// tenant, and optional hints.
type TokenClient interface {
	Accounts(ctx context.Context) ([]public.Account, error)
	AcquireSilent(ctx context.Context, scopes []string, account public.Account, tenantID string) (public.AuthResult, error)
	AcquireInteractive(ctx context.Context, scopes []string, tenantID, loginHint, domainHint string) (public.AuthResult, error)
	AcquireDeviceCode(ctx context.Context, scopes []string, tenantID string, display func(userCode, verificationURL string)) (public.AuthResult, error)
	RemoveAccount(ctx context.Context, account public.Account) error
}

// msalClient adapts the MSAL public client to TokenClient.
type msalClient struct {
	client      public.Client
	redirectURI string
}

// NewMSALClient builds a TokenClient over the MSAL public client
// application. The token cache is the library's in-memory cache keyed by
// account; nothing is persisted locally.
func NewMSALClient(clientID, authority, redirectURI string) (TokenClient, error) {
	client, err := public.New(clientID, public.WithAuthority(authority))
	if err != nil {
		return nil, fmt.Errorf("failed to create public client application: %w", err)
	}
	return &msalClient{client: client, redirectURI: redirectURI}, nil
}

func (m *msalClient) Accounts(ctx context.Context) ([]public.Account, error) {
	return m.client.Accounts(ctx)
}

func (m *msalClient) AcquireSilent(ctx context.Context, scopes []string, account public.Account, tenantID string) (public.AuthResult, error) {
	opts := []public.AcquireSilentOption{public.WithSilentAccount(account)}
	if tenantID != "" {
		opts = append(opts, public.WithTenantID(tenantID))
	}
	return m.client.AcquireTokenSilent(ctx, scopes, opts...)
}

func (m *msalClient) AcquireInteractive(ctx context.Context, scopes []string, tenantID, loginHint, domainHint string) (public.AuthResult, error) {
	opts := []public.AcquireInteractiveOption{public.WithRedirectURI(m.redirectURI)}
	if tenantID != "" {
		opts = append(opts, public.WithTenantID(tenantID))
	}
	if loginHint != "" {
		opts = append(opts, public.WithLoginHint(loginHint))
	}
	if domainHint != "" {
		opts = append(opts, public.WithDomainHint(domainHint))
	}
	return m.client.AcquireTokenInteractive(ctx, scopes, opts...)
}

func (m *msalClient) AcquireDeviceCode(ctx context.Context, scopes []string, tenantID string, display func(userCode, verificationURL string)) (public.AuthResult, error) {
	var opts []public.AcquireByDeviceCodeOption
	if tenantID != "" {
		opts = append(opts, public.WithTenantID(tenantID))
	}
	dc, err := m.client.AcquireTokenByDeviceCode(ctx, scopes, opts...)
	if err != nil {
		return public.AuthResult{}, err
	}
	if display != nil {
		display(dc.Result.UserCode, dc.Result.VerificationURL)
	}
	return dc.AuthenticationResult(ctx)
}

func (m *msalClient) RemoveAccount(ctx context.Context, account public.Account) error {
	return m.client.RemoveAccount(ctx, account)
}
