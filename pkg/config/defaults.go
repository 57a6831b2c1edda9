package config

import "time"

const (
	// DefaultClientID is the well-known Azure CLI public client. It is
	// pre-consented for the management API in most tenants, which keeps
	// first-run friction low; organizations can register their own app
	// and override it.
	DefaultClientID = "04b07795-8ddb-461a-bbee-02f9e1bf7b46"

	// DefaultAuthority signs in work accounts from any organization.
	DefaultAuthority = "https://login.microsoftonline.com/organizations"

	// DefaultRedirectURI is the loopback redirect for the interactive
	// browser flow.
	DefaultRedirectURI = "http://localhost:8400"

	// DefaultEndpoint is the public Azure Management API root.
	DefaultEndpoint = "https://management.azure.com"

	// DefaultScope requests the management API with the application's
	// statically consented permissions.
	DefaultScope = "https://management.azure.com/.default"

	// DefaultCheckTimeout bounds the per-tenant link check.
	DefaultCheckTimeout = 5 * time.Second
)

// Default returns a configuration populated with defaults.
func Default() *Config {
	return &Config{
		Auth: AuthConfig{
			ClientID:    DefaultClientID,
			Authority:   DefaultAuthority,
			RedirectURI: DefaultRedirectURI,
		},
		API: APIConfig{
			Endpoint:     DefaultEndpoint,
			Scope:        DefaultScope,
			CheckTimeout: DefaultCheckTimeout,
		},
		Logging: LoggingConfig{
			Level:  "INFO",
			Format: "text",
		},
	}
}
