package armclient

import (
	"context"
	"fmt"
)

// Tenant is a directory visible to the signed-in principal as returned
// by the tenant listing endpoint.
type Tenant struct {
	TenantID       string   `json:"tenantId"`
	DisplayName    string   `json:"displayName"`
	DefaultDomain  string   `json:"defaultDomain"`
	TenantCategory string   `json:"tenantCategory"`
	Domains        []string `json:"domains"`
}

type tenantListPage struct {
	Value    []Tenant `json:"value"`
	NextLink string   `json:"nextLink"`
}

// ListTenants returns every tenant the token's principal can see,
// following nextLink pagination until exhausted.
func (c *Client) ListTenants(ctx context.Context, token string) ([]Tenant, error) {
	url := fmt.Sprintf("%s/tenants?api-version=%s", c.baseURL, tenantsAPIVersion)

	var tenants []Tenant
	for url != "" {
		var page tenantListPage
		if err := c.get(ctx, url, token, &page); err != nil {
			return nil, fmt.Errorf("failed to list tenants: %w", err)
		}
		tenants = append(tenants, page.Value...)
		url = page.NextLink
	}
	return tenants, nil
}
