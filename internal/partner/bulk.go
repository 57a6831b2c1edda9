package partner

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/entraops/palctl/internal/logger"
)

// ProgressFunc receives batch progress: how many tenants have completed,
// the batch size, and the tenant currently being processed.
type ProgressFunc func(completed, total int, current *Tenant)

// Orchestrator sequences the Reconciler over a list of tenants. Tenants
// are processed strictly one at a time: the management API is
// rate-limited and sequential processing keeps progress reporting
// deterministic.
type Orchestrator struct {
	reconciler *Reconciler
	limiter    *rate.Limiter
}

// NewOrchestrator builds an Orchestrator pacing link attempts at roughly
// one per second.
func NewOrchestrator(reconciler *Reconciler) *Orchestrator {
	return &Orchestrator{
		reconciler: reconciler,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// newOrchestratorWithLimiter is used by tests to remove the pacing delay.
func newOrchestratorWithLimiter(reconciler *Reconciler, limiter *rate.Limiter) *Orchestrator {
	return &Orchestrator{reconciler: reconciler, limiter: limiter}
}

// LinkMany links partnerID to every tenant in order. One tenant's
// failure never aborts the batch: the result always holds exactly one
// outcome per input tenant, in input order. Progress is reported before
// each tenant and once more on completion.
func (o *Orchestrator) LinkMany(ctx context.Context, partnerID string, tenants []*Tenant, progress ProgressFunc) []Outcome {
	total := len(tenants)
	outcomes := make([]Outcome, 0, total)

	var last *Tenant
	for i, tenant := range tenants {
		if progress != nil {
			progress(i, total, tenant)
		}

		if err := o.limiter.Wait(ctx); err != nil {
			logger.Debug("pacing wait interrupted", "error", err)
		}

		outcome := o.reconciler.Link(ctx, partnerID, tenant)
		outcomes = append(outcomes, outcome)
		if !outcome.Success {
			logger.Warn("link attempt failed",
				"tenant", tenant.ID, "kind", outcome.ErrorKind, "message", outcome.ErrorMessage)
		}
		last = tenant
	}

	if progress != nil && total > 0 {
		progress(total, total, last)
	}

	logger.Info("batch link complete", "total", total, "succeeded", CountSuccesses(outcomes))
	return outcomes
}

// CountSuccesses returns the number of successful outcomes in a batch.
func CountSuccesses(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Success {
			n++
		}
	}
	return n
}
