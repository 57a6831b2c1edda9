package armclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSetsHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("x-ms-client-request-id"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.get(context.Background(), server.URL+"/x", "test-token", nil)
	require.NoError(t, err)
}

func TestDoParsesARMErrorEnvelope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprint(w, `{"error":{"code":"Conflict","message":"partner 1234567 is already linked"}}`)
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.get(context.Background(), server.URL+"/x", "tok", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "Conflict", apiErr.Code)
	assert.True(t, apiErr.IsConflict())
	assert.Equal(t, "Conflict: partner 1234567 is already linked", apiErr.Error())
}

func TestDoNonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprint(w, "upstream unavailable")
	}))
	defer server.Close()

	client := New(server.URL)
	err := client.get(context.Background(), server.URL+"/x", "tok", nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream unavailable", apiErr.Message)
	assert.Empty(t, apiErr.Code)
}

func TestListTenantsFollowsNextLink(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2020-01-01", r.URL.Query().Get("api-version"))
		page := tenantListPage{}
		if r.URL.Path == "/tenants" {
			page.Value = []Tenant{{TenantID: "t1", DisplayName: "Contoso"}}
			page.NextLink = server.URL + "/tenants-page2?api-version=2020-01-01"
		} else {
			page.Value = []Tenant{{TenantID: "t2", DisplayName: "Fabrikam"}}
		}
		_ = json.NewEncoder(w).Encode(page)
	}))
	defer server.Close()

	client := New(server.URL)
	tenants, err := client.ListTenants(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, tenants, 2)
	assert.Equal(t, "t1", tenants[0].TenantID)
	assert.Equal(t, "t2", tenants[1].TenantID)
}

func TestAPIErrorPredicates(t *testing.T) {
	assert.True(t, (&APIError{StatusCode: 401}).IsAuthError())
	assert.True(t, (&APIError{StatusCode: 403}).IsAuthError())
	assert.False(t, (&APIError{StatusCode: 409}).IsAuthError())
	assert.True(t, (&APIError{StatusCode: 404}).IsNotFound())
	assert.True(t, (&APIError{Code: "PartnerAlreadyLinked"}).IsConflict())
	assert.True(t, (&APIError{Code: "LinkedPartnerConflict"}).IsConflict())
	assert.False(t, (&APIError{Code: "BadRequest"}).IsConflict())
}
