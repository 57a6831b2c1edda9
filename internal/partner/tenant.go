// Package partner implements the partner-link reconciliation engine: the
// per-tenant link/conflict-resolution protocol, the sequential bulk
// orchestration loop, and tenant discovery with link enrichment.
package partner

// Tenant is a directory the signed-in principal can reach, enriched with
// its currently observed partner link. CurrentPartnerLink reflects the
// last value actually read from or reported by the server, never a value
// the engine merely attempted to write.
type Tenant struct {
	ID             string
	DisplayName    string
	Domain         string
	IsGuestUser    bool
	UserRoles      []string
	HasPartnerLink bool
	// CurrentPartnerLink is nil when no link has been observed.
	CurrentPartnerLink *string
}

// setObservedLink records the partner identifier observed server-side.
// An empty id clears the link.
func (t *Tenant) setObservedLink(id string) {
	if id == "" {
		t.HasPartnerLink = false
		t.CurrentPartnerLink = nil
		return
	}
	t.HasPartnerLink = true
	t.CurrentPartnerLink = &id
}

// Label returns a human-readable identifier for the tenant.
func (t *Tenant) Label() string {
	if t.DisplayName != "" {
		return t.DisplayName
	}
	return t.ID
}
