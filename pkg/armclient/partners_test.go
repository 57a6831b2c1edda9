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

func TestGetPartnerShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"top-level id", `{"partnerId":"1234567"}`, "1234567"},
		{"nested in properties", `{"id":"/providers/..","properties":{"partnerId":"7654321"}}`, "7654321"},
		{"array", `[{"properties":{"partnerId":"1111111"}}]`, "1111111"},
		{"value wrapper", `{"value":[{"partnerId":"2222222"}]}`, "2222222"},
		{"empty object", `{}`, ""},
		{"empty array", `[]`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/providers/Microsoft.ManagementPartner/partners", r.URL.Path)
				assert.Equal(t, "2018-02-01", r.URL.Query().Get("api-version"))
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			got, err := New(server.URL).GetPartner(context.Background(), "tok")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetPartnerNotFoundMeansNoLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"error":{"code":"NotFound","message":"no partner found"}}`)
	}))
	defer server.Close()

	got, err := New(server.URL).GetPartner(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPutPartnerRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/providers/Microsoft.ManagementPartner/partners/1234567", r.URL.Path)

		var body struct {
			Properties struct {
				PartnerID string `json:"partnerId"`
			} `json:"properties"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "1234567", body.Properties.PartnerID)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := New(server.URL).PutPartner(context.Background(), "tok", "1234567")
	require.NoError(t, err)
}

func TestDeletePartner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/providers/Microsoft.ManagementPartner/partners/1234567", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := New(server.URL).DeletePartner(context.Background(), "tok", "1234567")
	require.NoError(t, err)
}
