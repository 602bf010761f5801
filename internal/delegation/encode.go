// SPDX-License-Identifier: Apache-2.0

package delegation

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/models"
)

// ObjectDelegations is the result of [Codec.InitObjectDelegations]: the
// freshly initialised tables for a new entity, its secret id and the secret
// foreign keys to store on the entity.
type ObjectDelegations struct {
	Delegations        models.DelegationTable
	CryptedForeignKeys models.DelegationTable
	SecretForeignKeys  []string
	SecretID           string
}

// ExtendedDelegations is the result of
// [Codec.ExtendDelegationsAndCryptedForeignKeys]: the child's tables with
// the new delegate woven in.
type ExtendedDelegations struct {
	Delegations        models.DelegationTable
	CryptedForeignKeys models.DelegationTable
	SecretID           string
}

// EncryptionKeysResult is the result of [Codec.InitEncryptionKeys] and
// [Codec.AppendEncryptionKeys]. SecretID echoes the content secret id so
// chained calls need no extra decryption.
type EncryptionKeysResult struct {
	EncryptionKeys models.DelegationTable
	SecretID       string
}

// InitObjectDelegations initialises the delegation tables of a freshly
// created entity for ownerID.
//
// A fresh secret id is generated and encrypted as a self delegation (owner
// delegating to itself is the degenerate pairwise relationship used for
// self-encryption). When parent is non-nil the parent's real id is encrypted
// as a crypted foreign key, and parentSecretID (the parent's secret foreign
// key, when the caller knows it) is passed through into SecretForeignKeys.
func (c *Codec) InitObjectDelegations(ctx context.Context, record models.Encryptable, parent models.Encryptable, ownerID, parentSecretID string) (*ObjectDelegations, error) {
	if err := requireParam("InitObjectDelegations", "record.id", record.GetID(), ownerID); err != nil {
		return nil, err
	}
	if err := requireParam("InitObjectDelegations", "ownerId", ownerID, record.GetID()); err != nil {
		return nil, err
	}

	secretUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("init delegations for %s: %w", record.GetID(), err)
	}
	secretID := secretUUID.String()

	selfKey, err := c.selfKey(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("init delegations for %s: %w", record.GetID(), err)
	}

	spkEntry, err := c.encryptEntry(selfKey, ownerID, ownerID, record.GetID(), secretID)
	if err != nil {
		return nil, fmt.Errorf("init delegations for %s: %w", record.GetID(), err)
	}

	out := &ObjectDelegations{
		Delegations: models.DelegationTable{ownerID: []models.Delegation{spkEntry}},
		SecretID:    secretID,
	}
	if parentSecretID != "" {
		out.SecretForeignKeys = []string{parentSecretID}
	}

	if parent != nil {
		cfkEntry, err := c.encryptEntry(selfKey, ownerID, ownerID, record.GetID(), parent.GetID())
		if err != nil {
			return nil, fmt.Errorf("init delegations for %s: %w", record.GetID(), err)
		}
		out.CryptedForeignKeys = models.DelegationTable{ownerID: []models.Delegation{cfkEntry}}
	}

	return out, nil
}

// ExtendDelegationsAndCryptedForeignKeys grants delegateID access to child's
// secret foreign key secretID on behalf of ownerID, and (when parent is
// non-nil) to the encrypted parent reference.
//
// Existing entries for the delegate are merged by decrypted payload so
// repeated calls are idempotent: a payload already present keeps its
// original ciphertext. Self-authored entries that no longer decrypt are
// pruned; entries authored by other owners are preserved untouched.
func (c *Codec) ExtendDelegationsAndCryptedForeignKeys(ctx context.Context, child, parent models.Encryptable, ownerID, delegateID, secretID string) (*ExtendedDelegations, error) {
	method := "ExtendDelegationsAndCryptedForeignKeys"
	if err := requireParam(method, "child.id", child.GetID(), ownerID, delegateID, secretID); err != nil {
		return nil, err
	}
	if err := requireParam(method, "ownerId", ownerID, child.GetID()); err != nil {
		return nil, err
	}
	if err := requireParam(method, "delegateId", delegateID, child.GetID()); err != nil {
		return nil, err
	}
	if err := requireParam(method, "secretId", secretID, child.GetID()); err != nil {
		return nil, err
	}

	ownerKey, err := c.ownerKey(ctx, ownerID, delegateID)
	if err != nil {
		return nil, fmt.Errorf("extend delegations for %s: %w", child.GetID(), err)
	}

	delegations := child.GetDelegations().Clone()
	if delegations == nil {
		delegations = models.DelegationTable{}
	}
	merged, err := c.mergeEntries(ownerKey, delegations[delegateID], ownerID, delegateID, child.GetID(), secretID)
	if err != nil {
		return nil, fmt.Errorf("extend delegations for %s: %w", child.GetID(), err)
	}
	delegations[delegateID] = merged

	out := &ExtendedDelegations{
		Delegations:        delegations,
		CryptedForeignKeys: child.GetCryptedForeignKeys().Clone(),
		SecretID:           secretID,
	}

	if parent != nil {
		cfks := out.CryptedForeignKeys
		if cfks == nil {
			cfks = models.DelegationTable{}
		}
		mergedCFKs, err := c.mergeEntries(ownerKey, cfks[delegateID], ownerID, delegateID, child.GetID(), parent.GetID())
		if err != nil {
			return nil, fmt.Errorf("extend crypted foreign keys for %s: %w", child.GetID(), err)
		}
		cfks[delegateID] = mergedCFKs
		out.CryptedForeignKeys = cfks
	}

	return out, nil
}

// InitEncryptionKeys initialises the encryption-keys table of a freshly
// created entity: a new content secret id encrypted as a self delegation.
func (c *Codec) InitEncryptionKeys(ctx context.Context, record models.Encryptable, ownerID string) (*EncryptionKeysResult, error) {
	if err := requireParam("InitEncryptionKeys", "record.id", record.GetID(), ownerID); err != nil {
		return nil, err
	}
	if err := requireParam("InitEncryptionKeys", "ownerId", ownerID, record.GetID()); err != nil {
		return nil, err
	}

	secretUUID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("init encryption keys for %s: %w", record.GetID(), err)
	}
	secretID := secretUUID.String()

	selfKey, err := c.selfKey(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("init encryption keys for %s: %w", record.GetID(), err)
	}

	entry, err := c.encryptEntry(selfKey, ownerID, ownerID, record.GetID(), secretID)
	if err != nil {
		return nil, fmt.Errorf("init encryption keys for %s: %w", record.GetID(), err)
	}

	return &EncryptionKeysResult{
		EncryptionKeys: models.DelegationTable{ownerID: []models.Delegation{entry}},
		SecretID:       secretID,
	}, nil
}

// AppendEncryptionKeys grants delegateID access to the content secret id
// secretID of record, merging with the delegate's existing entries exactly
// like ExtendDelegationsAndCryptedForeignKeys does.
func (c *Codec) AppendEncryptionKeys(ctx context.Context, record models.Encryptable, ownerID, delegateID, secretID string) (*EncryptionKeysResult, error) {
	method := "AppendEncryptionKeys"
	if err := requireParam(method, "record.id", record.GetID(), ownerID, delegateID); err != nil {
		return nil, err
	}
	if err := requireParam(method, "secretId", secretID, record.GetID(), ownerID, delegateID); err != nil {
		return nil, err
	}

	ownerKey, err := c.ownerKey(ctx, ownerID, delegateID)
	if err != nil {
		return nil, fmt.Errorf("append encryption keys for %s: %w", record.GetID(), err)
	}

	encryptionKeys := record.GetEncryptionKeys().Clone()
	if encryptionKeys == nil {
		encryptionKeys = models.DelegationTable{}
	}
	merged, err := c.mergeEntries(ownerKey, encryptionKeys[delegateID], ownerID, delegateID, record.GetID(), secretID)
	if err != nil {
		return nil, fmt.Errorf("append encryption keys for %s: %w", record.GetID(), err)
	}
	encryptionKeys[delegateID] = merged

	return &EncryptionKeysResult{EncryptionKeys: encryptionKeys, SecretID: secretID}, nil
}

// AddDelegationsAndEncryptionKeys is the combined child update: it extends
// the child's delegations and crypted foreign keys with
// secretDelegationKey (when non-empty) and its encryption keys with
// secretEncryptionKey (when non-empty), then folds the results back into
// child with a conservative per-(owner, delegatedTo) merge: an existing
// entry survives unless a new entry covers the same delegator→delegate
// pair. The updated child is returned.
func (c *Codec) AddDelegationsAndEncryptionKeys(ctx context.Context, parent, child models.Encryptable, ownerID, delegateID, secretDelegationKey, secretEncryptionKey string) (models.Encryptable, error) {
	if err := requireParam("AddDelegationsAndEncryptionKeys", "child.id", child.GetID(), ownerID, delegateID); err != nil {
		return nil, err
	}

	if secretDelegationKey != "" {
		extended, err := c.ExtendDelegationsAndCryptedForeignKeys(ctx, child, parent, ownerID, delegateID, secretDelegationKey)
		if err != nil {
			return nil, err
		}
		child.SetDelegations(mergeConservative(child.GetDelegations(), extended.Delegations))
		child.SetCryptedForeignKeys(mergeConservative(child.GetCryptedForeignKeys(), extended.CryptedForeignKeys))
	}

	if secretEncryptionKey != "" {
		appended, err := c.AppendEncryptionKeys(ctx, child, ownerID, delegateID, secretEncryptionKey)
		if err != nil {
			return nil, err
		}
		child.SetEncryptionKeys(mergeConservative(child.GetEncryptionKeys(), appended.EncryptionKeys))
	}

	return child, nil
}

// mergeConservative folds src into dest. For every delegate present in src
// the new entries win, but dest entries for a (owner, delegatedTo) pair no
// src entry covers are kept. Delegates absent from src are untouched.
func mergeConservative(dest, src models.DelegationTable) models.DelegationTable {
	out := dest.Clone()
	if out == nil {
		out = models.DelegationTable{}
	}
	for delegateID, srcEntries := range src {
		kept := make([]models.Delegation, 0, len(srcEntries))
		kept = append(kept, srcEntries...)
		for _, d := range out[delegateID] {
			covered := false
			for _, s := range srcEntries {
				if s.Owner == d.Owner && s.DelegatedTo == d.DelegatedTo {
					covered = true
					break
				}
			}
			if !covered {
				kept = append(kept, d)
			}
		}
		out[delegateID] = kept
	}
	return out
}

// selfKey returns the owner's degenerate self pairwise key, creating it on
// first use.
func (c *Codec) selfKey(ctx context.Context, ownerID string) (keymanager.DelegatorAndKeys, error) {
	return c.ownerKey(ctx, ownerID, ownerID)
}

// ownerKey returns the owner-side pairwise key towards delegateID, creating
// and persisting it on first use.
func (c *Codec) ownerKey(ctx context.Context, ownerID, delegateID string) (keymanager.DelegatorAndKeys, error) {
	resolved, err := c.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return keymanager.DelegatorAndKeys{}, err
	}
	_, dk, err := c.keys.GetOrCreateHcPartyKey(ctx, resolved.Owner, delegateID)
	return dk, err
}

// encryptEntry builds one delegation entry under key.
func (c *Codec) encryptEntry(key keymanager.DelegatorAndKeys, ownerID, delegateID, entityID, secretID string) (models.Delegation, error) {
	blob, err := c.cipher.EncryptAES(key.Key, payload(entityID, secretID))
	if err != nil {
		return models.Delegation{}, fmt.Errorf("encrypt delegation entry: %w", err)
	}
	return models.Delegation{Owner: ownerID, DelegatedTo: delegateID, Key: hex.EncodeToString(blob)}, nil
}

// mergeEntries merges the delegate's existing entries with a new entry for
// payload(entityID, secretID), deduplicating by decrypted payload.
//
// Only entries authored by ownerID are decrypted (we hold no key for the
// others). Self-authored entries that fail to decrypt are pruned; foreign
// entries are preserved under a synthetic unique fingerprint so they never
// collide.
func (c *Codec) mergeEntries(key keymanager.DelegatorAndKeys, existing []models.Delegation, ownerID, delegateID, entityID, secretID string) ([]models.Delegation, error) {
	newPayload := string(payload(entityID, secretID))

	seen := make(map[string]bool, len(existing)+1)
	merged := make([]models.Delegation, 0, len(existing)+1)
	for _, d := range existing {
		if d.Key == "" || d.Owner != ownerID {
			// Foreign entry: keep verbatim, fingerprint never collides.
			merged = append(merged, d)
			continue
		}

		fingerprint, err := c.decryptEntryPayload(key, d)
		if err != nil {
			c.log.Debug().
				Str("owner", d.Owner).
				Str("delegatedTo", d.DelegatedTo).
				Str("entityId", entityID).
				Msg("pruning undecryptable self-authored delegation entry")
			continue
		}
		if seen[fingerprint] {
			continue
		}
		seen[fingerprint] = true
		merged = append(merged, d)
	}

	if !seen[newPayload] {
		entry, err := c.encryptEntry(key, ownerID, delegateID, entityID, secretID)
		if err != nil {
			return nil, err
		}
		merged = append(merged, entry)
	}

	return merged, nil
}

func (c *Codec) decryptEntryPayload(key keymanager.DelegatorAndKeys, d models.Delegation) (string, error) {
	blob, err := hex.DecodeString(d.Key)
	if err != nil {
		return "", fmt.Errorf("decode delegation entry: %w", err)
	}
	cleartext, err := c.cipher.DecryptAES(key.Key, blob)
	if err != nil {
		return "", fmt.Errorf("decrypt delegation entry: %w", err)
	}
	return string(cleartext), nil
}
