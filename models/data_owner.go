// SPDX-License-Identifier: Apache-2.0

package models

// DataOwnerType tags the concrete variant behind a [DataOwner] value so that
// callers can dispatch persistence to the correct collaborator.
type DataOwnerType string

const (
	// DataOwnerPatient marks a [Patient] data owner.
	DataOwnerPatient DataOwnerType = "patient"
	// DataOwnerDevice marks a [Device] data owner.
	DataOwnerDevice DataOwnerType = "device"
	// DataOwnerHcp marks a [HealthcareParty] data owner.
	DataOwnerHcp DataOwnerType = "hcp"
)

// DataOwner is the shared capability surface of the three owner variants
// (patient, device, healthcare party). A data owner can hold an RSA public
// key, pairwise symmetric keys towards other owners, and Shamir partitions of
// its own private key held by notaries.
//
// Sensitive fields never contain plaintext key material: HcPartyKeys values
// are RSA ciphertexts and PrivateKeyShamirPartitions values are AES
// ciphertexts, all hex-encoded.
type DataOwner interface {
	// GetID returns the stable opaque identifier of the owner.
	GetID() string

	// GetPublicKey returns the hex-encoded SPKI DER RSA public key, or an
	// empty string if the owner has not published one. An absent public key
	// blocks pairwise key generation to and from this owner.
	GetPublicKey() string

	// GetParentID returns the id of the owner's organisational parent, or an
	// empty string. Only healthcare parties model a hierarchy; the other
	// variants always return "".
	GetParentID() string

	// GetHcPartyKeys returns the pairwise key map of the owner:
	// counterpart owner id → [ownerEncryptedKey, counterpartEncryptedKey],
	// both hex-encoded RSA ciphertexts of the same AES-256 key.
	GetHcPartyKeys() map[string][2]string

	// SetHcPartyKey records the pairwise key ciphertext pair for the given
	// counterpart, allocating the map if needed.
	SetHcPartyKey(delegateID string, pair [2]string)

	// GetShamirPartitions returns notary owner id → hex AES ciphertext of one
	// Shamir share of this owner's private key.
	GetShamirPartitions() map[string]string

	// SetShamirPartition records the encrypted share held by the given
	// notary, allocating the map if needed.
	SetShamirPartition(notaryID, encryptedShare string)
}

// Patient is a person whose medical records are stored in the system. A
// patient is a full data owner: it can hold keys and receive delegations.
type Patient struct {
	// ID is the stable unique identifier of the patient.
	ID string `json:"id"`

	// Rev is the opaque revision returned by the persistence collaborator.
	// It must be carried back unchanged on updates.
	Rev string `json:"rev,omitempty"`

	// FirstName is the given name. Non-sensitive, may be shown in UI.
	FirstName string `json:"firstName,omitempty"`

	// LastName is the family name. Non-sensitive, may be shown in UI.
	LastName string `json:"lastName,omitempty"`

	// PublicKey is the hex-encoded SPKI DER RSA public key of the patient,
	// empty if none has been published.
	PublicKey string `json:"publicKey,omitempty"`

	// HcPartyKeys maps a counterpart owner id to the pair
	// [ownerEncryptedKey, counterpartEncryptedKey] of hex RSA ciphertexts
	// protecting the shared AES key.
	HcPartyKeys map[string][2]string `json:"hcPartyKeys,omitempty"`

	// PrivateKeyShamirPartitions maps a notary owner id to the hex AES
	// ciphertext of one Shamir share of this patient's private key.
	PrivateKeyShamirPartitions map[string]string `json:"privateKeyShamirPartitions,omitempty"`
}

// GetID implements [DataOwner].
func (p *Patient) GetID() string { return p.ID }

// GetPublicKey implements [DataOwner].
func (p *Patient) GetPublicKey() string { return p.PublicKey }

// GetParentID implements [DataOwner]. Patients have no hierarchy.
func (p *Patient) GetParentID() string { return "" }

// GetHcPartyKeys implements [DataOwner].
func (p *Patient) GetHcPartyKeys() map[string][2]string { return p.HcPartyKeys }

// SetHcPartyKey implements [DataOwner].
func (p *Patient) SetHcPartyKey(delegateID string, pair [2]string) {
	if p.HcPartyKeys == nil {
		p.HcPartyKeys = make(map[string][2]string)
	}
	p.HcPartyKeys[delegateID] = pair
}

// GetShamirPartitions implements [DataOwner].
func (p *Patient) GetShamirPartitions() map[string]string { return p.PrivateKeyShamirPartitions }

// SetShamirPartition implements [DataOwner].
func (p *Patient) SetShamirPartition(notaryID, encryptedShare string) {
	if p.PrivateKeyShamirPartitions == nil {
		p.PrivateKeyShamirPartitions = make(map[string]string)
	}
	p.PrivateKeyShamirPartitions[notaryID] = encryptedShare
}

// Device is a medical or personal device acting on behalf of its user. It is
// a full data owner without an organisational hierarchy.
type Device struct {
	// ID is the stable unique identifier of the device.
	ID string `json:"id"`

	// Rev is the opaque revision returned by the persistence collaborator.
	Rev string `json:"rev,omitempty"`

	// Name is a human-readable device label.
	Name string `json:"name,omitempty"`

	// SerialNumber identifies the physical device.
	SerialNumber string `json:"serialNumber,omitempty"`

	// PublicKey is the hex-encoded SPKI DER RSA public key, empty if none.
	PublicKey string `json:"publicKey,omitempty"`

	// HcPartyKeys maps a counterpart owner id to the hex RSA ciphertext pair
	// protecting the shared AES key.
	HcPartyKeys map[string][2]string `json:"hcPartyKeys,omitempty"`

	// PrivateKeyShamirPartitions maps a notary owner id to the hex AES
	// ciphertext of one Shamir share of this device's private key.
	PrivateKeyShamirPartitions map[string]string `json:"privateKeyShamirPartitions,omitempty"`
}

// GetID implements [DataOwner].
func (d *Device) GetID() string { return d.ID }

// GetPublicKey implements [DataOwner].
func (d *Device) GetPublicKey() string { return d.PublicKey }

// GetParentID implements [DataOwner]. Devices have no hierarchy.
func (d *Device) GetParentID() string { return "" }

// GetHcPartyKeys implements [DataOwner].
func (d *Device) GetHcPartyKeys() map[string][2]string { return d.HcPartyKeys }

// SetHcPartyKey implements [DataOwner].
func (d *Device) SetHcPartyKey(delegateID string, pair [2]string) {
	if d.HcPartyKeys == nil {
		d.HcPartyKeys = make(map[string][2]string)
	}
	d.HcPartyKeys[delegateID] = pair
}

// GetShamirPartitions implements [DataOwner].
func (d *Device) GetShamirPartitions() map[string]string { return d.PrivateKeyShamirPartitions }

// SetShamirPartition implements [DataOwner].
func (d *Device) SetShamirPartition(notaryID, encryptedShare string) {
	if d.PrivateKeyShamirPartitions == nil {
		d.PrivateKeyShamirPartitions = make(map[string]string)
	}
	d.PrivateKeyShamirPartitions[notaryID] = encryptedShare
}

// HealthcareParty is a professional or an organisation. It is the only owner
// variant that can have a ParentID, modelling the organisational hierarchy
// used when climbing delegations.
type HealthcareParty struct {
	// ID is the stable unique identifier of the healthcare party.
	ID string `json:"id"`

	// Rev is the opaque revision returned by the persistence collaborator.
	Rev string `json:"rev,omitempty"`

	// Name is the display name of the party or organisation.
	Name string `json:"name,omitempty"`

	// ParentID is the id of the parent healthcare party (e.g. the hospital a
	// practitioner belongs to), or empty for a top-level party.
	ParentID string `json:"parentId,omitempty"`

	// PublicKey is the hex-encoded SPKI DER RSA public key, empty if none.
	PublicKey string `json:"publicKey,omitempty"`

	// HcPartyKeys maps a counterpart owner id to the hex RSA ciphertext pair
	// protecting the shared AES key.
	HcPartyKeys map[string][2]string `json:"hcPartyKeys,omitempty"`

	// PrivateKeyShamirPartitions maps a notary owner id to the hex AES
	// ciphertext of one Shamir share of this party's private key.
	PrivateKeyShamirPartitions map[string]string `json:"privateKeyShamirPartitions,omitempty"`

	// Options is a free-form preference map. The engine uses it to carry the
	// encrypted keychain certificate and its validity date.
	Options map[string]string `json:"options,omitempty"`
}

// GetID implements [DataOwner].
func (h *HealthcareParty) GetID() string { return h.ID }

// GetPublicKey implements [DataOwner].
func (h *HealthcareParty) GetPublicKey() string { return h.PublicKey }

// GetParentID implements [DataOwner].
func (h *HealthcareParty) GetParentID() string { return h.ParentID }

// GetHcPartyKeys implements [DataOwner].
func (h *HealthcareParty) GetHcPartyKeys() map[string][2]string { return h.HcPartyKeys }

// SetHcPartyKey implements [DataOwner].
func (h *HealthcareParty) SetHcPartyKey(delegateID string, pair [2]string) {
	if h.HcPartyKeys == nil {
		h.HcPartyKeys = make(map[string][2]string)
	}
	h.HcPartyKeys[delegateID] = pair
}

// GetShamirPartitions implements [DataOwner].
func (h *HealthcareParty) GetShamirPartitions() map[string]string {
	return h.PrivateKeyShamirPartitions
}

// SetShamirPartition implements [DataOwner].
func (h *HealthcareParty) SetShamirPartition(notaryID, encryptedShare string) {
	if h.PrivateKeyShamirPartitions == nil {
		h.PrivateKeyShamirPartitions = make(map[string]string)
	}
	h.PrivateKeyShamirPartitions[notaryID] = encryptedShare
}
