// SPDX-License-Identifier: Apache-2.0

package models

// Delegation is one encrypted access grant attached to an entity. Key is the
// hex-encoded AES ciphertext of the UTF-8 string "<entityId>:<secretId>",
// encrypted under the pairwise key shared between Owner and DelegatedTo.
//
// The same encoding carries three different payloads depending on the map the
// entry lives in: a secret foreign key id (delegations), the parent entity's
// real id (cryptedForeignKeys) or a content secret id (encryptionKeys).
type Delegation struct {
	// Owner is the id of the data owner that created the entry.
	Owner string `json:"owner"`

	// DelegatedTo is the id of the data owner the entry grants access to.
	DelegatedTo string `json:"delegatedTo"`

	// Key is the hex-encoded AES ciphertext of "<entityId>:<secretId>".
	Key string `json:"key"`
}

// DelegationTable maps a delegate owner id to the delegation entries visible
// to it. Entries from different owners may coexist under the same delegate id
// (redundant delegation by multiple parties).
type DelegationTable map[string][]Delegation

// Clone returns a deep copy of the table. Codec operations never mutate their
// input entities; they clone, extend and return.
func (t DelegationTable) Clone() DelegationTable {
	if t == nil {
		return nil
	}
	out := make(DelegationTable, len(t))
	for delegateID, entries := range t {
		cp := make([]Delegation, len(entries))
		copy(cp, entries)
		out[delegateID] = cp
	}
	return out
}

// Encryptable is the generic encrypted-entity contract: any record exposing
// an id and the three parallel delegation tables is operable by the
// delegation codec without knowledge of its other fields.
type Encryptable interface {
	GetID() string
	GetDelegations() DelegationTable
	GetCryptedForeignKeys() DelegationTable
	GetEncryptionKeys() DelegationTable
	SetDelegations(DelegationTable)
	SetCryptedForeignKeys(DelegationTable)
	SetEncryptionKeys(DelegationTable)
}

// EncryptedRecord is a minimal [Encryptable] implementation. Domain entities
// embed it to become operable by the delegation codec.
type EncryptedRecord struct {
	// ID is the real id of the entity.
	ID string `json:"id"`

	// Delegations carries the secret-foreign-key grants (SPK).
	Delegations DelegationTable `json:"delegations,omitempty"`

	// CryptedForeignKeys carries the encrypted parent references (CFK).
	CryptedForeignKeys DelegationTable `json:"cryptedForeignKeys,omitempty"`

	// EncryptionKeys carries the content-key grants (EK).
	EncryptionKeys DelegationTable `json:"encryptionKeys,omitempty"`

	// SecretForeignKeys holds the plaintext secret foreign keys of the
	// parents of this entity, used for indexed lookup. They are secret ids,
	// not real ids, so they may be stored in indexable fields.
	SecretForeignKeys []string `json:"secretForeignKeys,omitempty"`
}

// GetID implements [Encryptable].
func (r *EncryptedRecord) GetID() string { return r.ID }

// GetDelegations implements [Encryptable].
func (r *EncryptedRecord) GetDelegations() DelegationTable { return r.Delegations }

// GetCryptedForeignKeys implements [Encryptable].
func (r *EncryptedRecord) GetCryptedForeignKeys() DelegationTable { return r.CryptedForeignKeys }

// GetEncryptionKeys implements [Encryptable].
func (r *EncryptedRecord) GetEncryptionKeys() DelegationTable { return r.EncryptionKeys }

// SetDelegations implements [Encryptable].
func (r *EncryptedRecord) SetDelegations(t DelegationTable) { r.Delegations = t }

// SetCryptedForeignKeys implements [Encryptable].
func (r *EncryptedRecord) SetCryptedForeignKeys(t DelegationTable) { r.CryptedForeignKeys = t }

// SetEncryptionKeys implements [Encryptable].
func (r *EncryptedRecord) SetEncryptionKeys(t DelegationTable) { r.EncryptionKeys = t }
