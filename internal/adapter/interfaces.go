// SPDX-License-Identifier: Apache-2.0

// Package adapter provides transport-layer abstractions for communicating
// with the medical record backend.
//
// The engine consumes three resolution/persistence contracts, one per data
// owner variant ([PatientAPI], [DeviceAPI], [HealthcarePartyAPI]), plus the
// delegate key-listing endpoints used to prime the pairwise-key cache. The
// package ships an HTTP/REST implementation built on resty
// ([NewHTTPDirectoryAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrNotFound] for 404, [ErrConflict] for 409).
package adapter

import (
	"context"

	"github.com/medvault/go-med-vault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/directory_api_mock.go -package=mock

// PatientAPI resolves and persists patient data owners.
type PatientAPI interface {
	// GetPatient fetches the patient with the given id. Returns a wrapped
	// [ErrNotFound] if the backend does not know the id.
	GetPatient(ctx context.Context, id string) (*models.Patient, error)

	// UpdatePatient persists the patient and returns the stored value with
	// its new revision. Returns a wrapped [ErrConflict] on a revision clash.
	UpdatePatient(ctx context.Context, patient *models.Patient) (*models.Patient, error)

	// GetPatientHcPartyKeysForDelegate returns, for every patient that
	// delegated something to delegateID, the hc-party key ciphertext
	// encrypted for the delegate: delegator id → hex RSA ciphertext.
	GetPatientHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error)
}

// DeviceAPI resolves and persists device data owners.
type DeviceAPI interface {
	// GetDevice fetches the device with the given id. Returns a wrapped
	// [ErrNotFound] if the backend does not know the id.
	GetDevice(ctx context.Context, id string) (*models.Device, error)

	// UpdateDevice persists the device and returns the stored value with its
	// new revision.
	UpdateDevice(ctx context.Context, device *models.Device) (*models.Device, error)
}

// HealthcarePartyAPI resolves and persists healthcare-party data owners.
type HealthcarePartyAPI interface {
	// GetHealthcareParty fetches the healthcare party with the given id.
	// Returns a wrapped [ErrNotFound] if the backend does not know the id.
	GetHealthcareParty(ctx context.Context, id string) (*models.HealthcareParty, error)

	// UpdateHealthcareParty persists the party and returns the stored value
	// with its new revision.
	UpdateHealthcareParty(ctx context.Context, hcp *models.HealthcareParty) (*models.HealthcareParty, error)

	// GetHcPartyKeysForDelegate returns, for every healthcare party that
	// delegated something to delegateID, the hc-party key ciphertext
	// encrypted for the delegate: delegator id → hex RSA ciphertext.
	GetHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error)
}

// DirectoryAPI bundles the three owner contracts; the HTTP implementation
// satisfies all of them over one client.
type DirectoryAPI interface {
	PatientAPI
	DeviceAPI
	HealthcarePartyAPI
}
