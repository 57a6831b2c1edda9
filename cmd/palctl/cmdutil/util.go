// Package cmdutil provides shared wiring for palctl commands.
package cmdutil

import (
	"context"
	"fmt"

	"github.com/entraops/palctl/internal/cli/prompt"
	"github.com/entraops/palctl/internal/identity"
	"github.com/entraops/palctl/internal/partner"
	"github.com/entraops/palctl/pkg/armclient"
	"github.com/entraops/palctl/pkg/config"
)

// Engine bundles the wired-up components commands operate on.
type Engine struct {
	Config       *config.Config
	Auth         *identity.Authenticator
	ARM          *armclient.Client
	Reconciler   *partner.Reconciler
	Orchestrator *partner.Orchestrator
	Discovery    *partner.Discovery
}

// NewEngine builds the engine from configuration. A failure here means
// the static configuration is unusable and the process should exit.
func NewEngine(cfg *config.Config) (*Engine, error) {
	auth, err := identity.New(identity.Config{
		ClientID:    cfg.Auth.ClientID,
		Authority:   cfg.Auth.Authority,
		RedirectURI: cfg.Auth.RedirectURI,
		Scopes:      cfg.Scopes(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize authentication: %w", err)
	}

	arm := armclient.New(cfg.API.Endpoint)
	reconciler := partner.NewReconciler(auth, arm, cfg.Scopes())
	discovery := partner.NewDiscovery(auth, arm, reconciler, cfg.Scopes())
	if cfg.API.CheckTimeout > 0 {
		discovery.SetCheckTimeout(cfg.API.CheckTimeout)
	}

	return &Engine{
		Config:       cfg,
		Auth:         auth,
		ARM:          arm,
		Reconciler:   reconciler,
		Orchestrator: partner.NewOrchestrator(reconciler),
		Discovery:    discovery,
	}, nil
}

// RequireSession ensures a signed-in session, attempting a silent
// sign-in from the cache first.
func (e *Engine) RequireSession(ctx context.Context) (identity.Session, error) {
	sess := e.Auth.Session()
	if sess.Authenticated {
		return sess, nil
	}
	sess = e.Auth.TrySignInSilently(ctx)
	if !sess.Authenticated {
		return sess, fmt.Errorf("not signed in. Run 'palctl login' first")
	}
	return sess, nil
}

// HandleAbort converts a prompt abort into a quiet, friendly error.
func HandleAbort(err error) error {
	if prompt.IsAborted(err) {
		return fmt.Errorf("aborted")
	}
	return err
}
