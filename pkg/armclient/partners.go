package armclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// partnerResource is one management-partner object. The partnerId shows
// up either at the top level or nested under properties depending on the
// API path and version.
type partnerResource struct {
	PartnerID  string `json:"partnerId"`
	Properties struct {
		PartnerID string `json:"partnerId"`
	} `json:"properties"`
}

func (p partnerResource) id() string {
	if p.PartnerID != "" {
		return p.PartnerID
	}
	return p.Properties.PartnerID
}

// GetPartner returns the partner identifier currently linked for the
// token's tenant, or "" when no link exists. The endpoint may answer
// with a single object, an array, or a value-wrapped list; all three
// shapes are accepted.
func (c *Client) GetPartner(ctx context.Context, token string) (string, error) {
	url := fmt.Sprintf("%s%s?api-version=%s", c.baseURL, partnersPath, partnersAPIVersion)

	var raw json.RawMessage
	if err := c.get(ctx, url, token, &raw); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsNotFound() {
			return "", nil
		}
		return "", fmt.Errorf("failed to read partner link: %w", err)
	}
	return decodePartnerID(raw), nil
}

func decodePartnerID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var single partnerResource
	if err := json.Unmarshal(raw, &single); err == nil && single.id() != "" {
		return single.id()
	}

	var list []partnerResource
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, p := range list {
			if p.id() != "" {
				return p.id()
			}
		}
	}

	var wrapped struct {
		Value []partnerResource `json:"value"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil {
		for _, p := range wrapped.Value {
			if p.id() != "" {
				return p.id()
			}
		}
	}

	return ""
}

// PutPartner creates or updates the partner link for the token's tenant.
// The operation is an idempotent upsert: repeating it with the same
// identifier is a no-op on the server side.
func (c *Client) PutPartner(ctx context.Context, token, partnerID string) error {
	url := fmt.Sprintf("%s%s/%s?api-version=%s", c.baseURL, partnersPath, partnerID, partnersAPIVersion)
	body := map[string]any{
		"properties": map[string]string{"partnerId": partnerID},
	}
	return c.put(ctx, url, token, body, nil)
}

// DeletePartner removes the partner link for the token's tenant.
func (c *Client) DeletePartner(ctx context.Context, token, partnerID string) error {
	url := fmt.Sprintf("%s%s/%s?api-version=%s", c.baseURL, partnersPath, partnerID, partnersAPIVersion)
	return c.delete(ctx, url, token)
}
