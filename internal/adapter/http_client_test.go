package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/medvault/go-med-vault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.Handler) DirectoryAPI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHTTPDirectoryAdapter(HTTPClientConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	})
}

func TestGetPatient_Success(t *testing.T) {
	want := &models.Patient{ID: "pat-1", FirstName: "Ada", PublicKey: "aabb"}

	api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/patient/pat-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(want)
	}))

	got, err := api.GetPatient(context.Background(), "pat-1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestGetPatient_NotFoundMapped(t *testing.T) {
	api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such patient", http.StatusNotFound)
	}))

	_, err := api.GetPatient(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateHealthcareParty_SendsBodyAndDecodesRevision(t *testing.T) {
	api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/hcparty/", r.URL.Path)

		var hcp models.HealthcareParty
		require.NoError(t, json.NewDecoder(r.Body).Decode(&hcp))
		assert.Equal(t, "hcp-1", hcp.ID)

		hcp.Rev = "2-abc"
		_ = json.NewEncoder(w).Encode(&hcp)
	}))

	updated, err := api.UpdateHealthcareParty(context.Background(), &models.HealthcareParty{ID: "hcp-1", Rev: "1-abc"})
	require.NoError(t, err)
	assert.Equal(t, "2-abc", updated.Rev)
}

func TestUpdatePatient_ConflictMapped(t *testing.T) {
	api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "document update conflict", http.StatusConflict)
	}))

	_, err := api.UpdatePatient(context.Background(), &models.Patient{ID: "pat-1"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestGetHcPartyKeysForDelegate_DecodesMap(t *testing.T) {
	api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/hcparty/keys/del-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"owner-a": "00aa",
			"owner-b": "00bb",
		})
	}))

	keys, err := api.GetHcPartyKeysForDelegate(context.Background(), "del-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"owner-a": "00aa", "owner-b": "00bb"}, keys)
}

func TestAuthTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(&models.Device{ID: "dev-1"})
	}))
	t.Cleanup(srv.Close)

	api := NewHTTPDirectoryAdapter(HTTPClientConfig{BaseURL: srv.URL, AuthToken: "tok-123"})

	_, err := api.GetDevice(context.Background(), "dev-1")
	require.NoError(t, err)
}

func TestMapHTTPError_StatusTable(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusBadRequest, want: ErrBadRequest},
		{status: http.StatusUnauthorized, want: ErrUnauthorized},
		{status: http.StatusForbidden, want: ErrForbidden},
		{status: http.StatusNotFound, want: ErrNotFound},
		{status: http.StatusConflict, want: ErrConflict},
		{status: http.StatusInternalServerError, want: ErrInternalServerError},
		{status: http.StatusBadGateway, want: ErrBadGateway},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			api := newTestAdapter(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", tt.status)
			}))

			_, err := api.GetDevice(context.Background(), "dev-1")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
