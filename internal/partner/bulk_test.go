package partner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func newTestOrchestrator(api *fakeAPI) *Orchestrator {
	r, _ := newTestReconciler(api)
	return newOrchestratorWithLimiter(r, rate.NewLimiter(rate.Inf, 1))
}

func TestLinkManyReturnsOutcomePerTenantInOrder(t *testing.T) {
	// First tenant conflicts with an existing different link, the rest
	// link cleanly. The batch must not short-circuit.
	api := &fakeAPI{gets: []string{"1111111", "", "", ""}}
	o := newTestOrchestrator(api)
	tenants := []*Tenant{{ID: "t1"}, {ID: "t2"}, {ID: "t3"}}

	outcomes := o.LinkMany(context.Background(), "7654321", tenants, nil)

	require.Len(t, outcomes, 3)
	assert.Equal(t, "t1", outcomes[0].Tenant.ID)
	assert.Equal(t, "t2", outcomes[1].Tenant.ID)
	assert.Equal(t, "t3", outcomes[2].Tenant.ID)
	assert.False(t, outcomes[0].Success)
	assert.True(t, outcomes[1].Success)
	assert.True(t, outcomes[2].Success)
	assert.Equal(t, 2, CountSuccesses(outcomes))
}

func TestLinkManyProgressReporting(t *testing.T) {
	api := &fakeAPI{gets: []string{""}}
	o := newTestOrchestrator(api)
	tenants := []*Tenant{{ID: "t1"}, {ID: "t2"}}

	type call struct {
		completed, total int
		tenantID         string
	}
	var calls []call
	o.LinkMany(context.Background(), "7654321", tenants, func(completed, total int, current *Tenant) {
		calls = append(calls, call{completed, total, current.ID})
	})

	require.Len(t, calls, 3)
	assert.Equal(t, call{0, 2, "t1"}, calls[0])
	assert.Equal(t, call{1, 2, "t2"}, calls[1])
	assert.Equal(t, call{2, 2, "t2"}, calls[2], "final progress update reports completion")
}

func TestLinkManyEmptyBatch(t *testing.T) {
	o := newTestOrchestrator(&fakeAPI{})

	called := false
	outcomes := o.LinkMany(context.Background(), "7654321", nil, func(int, int, *Tenant) {
		called = true
	})

	assert.Empty(t, outcomes)
	assert.False(t, called)
}

func TestLinkManyEndToEndMixedBatch(t *testing.T) {
	// Tenant A already holds the requested link, tenant B has none:
	// both end up successful with the same observed link.
	api := &fakeAPI{gets: []string{"7654321", ""}}
	o := newTestOrchestrator(api)
	a := &Tenant{ID: "tenant-a"}
	b := &Tenant{ID: "tenant-b"}

	outcomes := o.LinkMany(context.Background(), "7654321", []*Tenant{a, b}, nil)

	require.Len(t, outcomes, 2)
	assert.True(t, outcomes[0].Success)
	assert.Equal(t, "already linked", outcomes[0].Details)
	assert.True(t, outcomes[1].Success)
	require.NotNil(t, a.CurrentPartnerLink)
	require.NotNil(t, b.CurrentPartnerLink)
	assert.Equal(t, "7654321", *a.CurrentPartnerLink)
	assert.Equal(t, "7654321", *b.CurrentPartnerLink)
}
