package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/medvault/go-med-vault/models"
)

// HTTPClientConfig carries the settings of the REST directory client.
type HTTPClientConfig struct {
	// BaseURL is the backend root, e.g. "https://backend.example.com".
	BaseURL string
	// AuthToken is an optional bearer token attached to every request.
	AuthToken string
	// Timeout bounds each outbound request.
	Timeout time.Duration
}

type httpDirectoryAdapter struct {
	client *resty.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPDirectoryAdapter constructs the HTTP/REST implementation of
// [DirectoryAPI] on top of a shared resty client.
func NewHTTPDirectoryAdapter(cfg HTTPClientConfig) DirectoryAPI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	cli := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout)

	return &httpDirectoryAdapter{client: cli, token: strings.TrimSpace(cfg.AuthToken)}
}

// SetToken replaces the bearer token attached to subsequent requests.
func (h *httpDirectoryAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpDirectoryAdapter) authedRequest(ctx context.Context) *resty.Request {
	h.mu.RLock()
	token := h.token
	h.mu.RUnlock()

	req := h.client.R().SetContext(ctx)
	if token != "" {
		req.SetAuthToken(token)
	}
	return req
}

// GetPatient implements [PatientAPI].
func (h *httpDirectoryAdapter) GetPatient(ctx context.Context, id string) (*models.Patient, error) {
	resp, err := h.authedRequest(ctx).Get("/api/patient/" + id)
	if err != nil {
		return nil, fmt.Errorf("get patient request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var patient models.Patient
	if err = json.Unmarshal(resp.Body(), &patient); err != nil {
		return nil, fmt.Errorf("decode patient response: %w", err)
	}
	return &patient, nil
}

// UpdatePatient implements [PatientAPI].
func (h *httpDirectoryAdapter) UpdatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(patient).
		Put("/api/patient/")
	if err != nil {
		return nil, fmt.Errorf("update patient request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var updated models.Patient
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return nil, fmt.Errorf("decode updated patient response: %w", err)
	}
	return &updated, nil
}

// GetPatientHcPartyKeysForDelegate implements [PatientAPI].
func (h *httpDirectoryAdapter) GetPatientHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error) {
	resp, err := h.authedRequest(ctx).Get("/api/patient/keys/" + delegateID)
	if err != nil {
		return nil, fmt.Errorf("get patient keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	keys := map[string]string{}
	if err = json.Unmarshal(resp.Body(), &keys); err != nil {
		return nil, fmt.Errorf("decode patient keys response: %w", err)
	}
	return keys, nil
}

// GetDevice implements [DeviceAPI].
func (h *httpDirectoryAdapter) GetDevice(ctx context.Context, id string) (*models.Device, error) {
	resp, err := h.authedRequest(ctx).Get("/api/device/" + id)
	if err != nil {
		return nil, fmt.Errorf("get device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var device models.Device
	if err = json.Unmarshal(resp.Body(), &device); err != nil {
		return nil, fmt.Errorf("decode device response: %w", err)
	}
	return &device, nil
}

// UpdateDevice implements [DeviceAPI].
func (h *httpDirectoryAdapter) UpdateDevice(ctx context.Context, device *models.Device) (*models.Device, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(device).
		Put("/api/device/")
	if err != nil {
		return nil, fmt.Errorf("update device request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var updated models.Device
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return nil, fmt.Errorf("decode updated device response: %w", err)
	}
	return &updated, nil
}

// GetHealthcareParty implements [HealthcarePartyAPI].
func (h *httpDirectoryAdapter) GetHealthcareParty(ctx context.Context, id string) (*models.HealthcareParty, error) {
	resp, err := h.authedRequest(ctx).Get("/api/hcparty/" + id)
	if err != nil {
		return nil, fmt.Errorf("get hcparty request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var hcp models.HealthcareParty
	if err = json.Unmarshal(resp.Body(), &hcp); err != nil {
		return nil, fmt.Errorf("decode hcparty response: %w", err)
	}
	return &hcp, nil
}

// UpdateHealthcareParty implements [HealthcarePartyAPI].
func (h *httpDirectoryAdapter) UpdateHealthcareParty(ctx context.Context, hcp *models.HealthcareParty) (*models.HealthcareParty, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(hcp).
		Put("/api/hcparty/")
	if err != nil {
		return nil, fmt.Errorf("update hcparty request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var updated models.HealthcareParty
	if err = json.Unmarshal(resp.Body(), &updated); err != nil {
		return nil, fmt.Errorf("decode updated hcparty response: %w", err)
	}
	return &updated, nil
}

// GetHcPartyKeysForDelegate implements [HealthcarePartyAPI].
func (h *httpDirectoryAdapter) GetHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error) {
	resp, err := h.authedRequest(ctx).Get("/api/hcparty/keys/" + delegateID)
	if err != nil {
		return nil, fmt.Errorf("get hcparty keys request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	keys := map[string]string{}
	if err = json.Unmarshal(resp.Body(), &keys); err != nil {
		return nil, fmt.Errorf("decode hcparty keys response: %w", err)
	}
	return keys, nil
}
