// SPDX-License-Identifier: Apache-2.0

package delegation

import (
	"context"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/models"
)

// ExtractedKeys is the outcome of a hierarchy extraction: the secret ids
// recovered and the id of the owner level they were found at (the topmost
// visited owner when the climb found nothing).
type ExtractedKeys struct {
	ExtractedKeys []string
	OwnerID       string
}

// LevelKeys is one hierarchy level in an [Codec.ExtractSFKsHierarchy]
// result.
type LevelKeys struct {
	OwnerID       string
	ExtractedKeys []string
}

// ExtractDelegationsSFKs recovers the secret foreign keys of record visible
// to ownerID, climbing the ownership hierarchy when the owner itself holds
// no entries.
func (c *Codec) ExtractDelegationsSFKs(ctx context.Context, record models.Encryptable, ownerID string) (ExtractedKeys, error) {
	if err := requireParam("ExtractDelegationsSFKs", "record.id", record.GetID(), ownerID); err != nil {
		return ExtractedKeys{}, err
	}
	return c.ExtractKeysFromHierarchy(ctx, record.GetID(), record.GetDelegations(), ownerID)
}

// ExtractCryptedFKs recovers the parent entity ids of record visible to
// ownerID from its crypted foreign keys.
func (c *Codec) ExtractCryptedFKs(ctx context.Context, record models.Encryptable, ownerID string) (ExtractedKeys, error) {
	if err := requireParam("ExtractCryptedFKs", "record.id", record.GetID(), ownerID); err != nil {
		return ExtractedKeys{}, err
	}
	return c.ExtractKeysFromHierarchy(ctx, record.GetID(), record.GetCryptedForeignKeys(), ownerID)
}

// ExtractEncryptionKeys recovers the content secret ids of record visible
// to ownerID from its encryption keys.
func (c *Codec) ExtractEncryptionKeys(ctx context.Context, record models.Encryptable, ownerID string) (ExtractedKeys, error) {
	if err := requireParam("ExtractEncryptionKeys", "record.id", record.GetID(), ownerID); err != nil {
		return ExtractedKeys{}, err
	}
	return c.ExtractKeysFromHierarchy(ctx, record.GetID(), record.GetEncryptionKeys(), ownerID)
}

// ExtractKeysFromHierarchy decrypts the secret ids held in table for
// ownerID.
//
// When the owner's own slot is empty the climb moves to the owner's parent,
// level by level, until a populated slot or an owner without a parent is
// reached. The returned OwnerID identifies the level that answered; after a
// fruitless climb it is the topmost visited owner, even though that owner
// holds no entries.
func (c *Codec) ExtractKeysFromHierarchy(ctx context.Context, entityID string, table models.DelegationTable, ownerID string) (ExtractedKeys, error) {
	if err := requireParam("ExtractKeysFromHierarchy", "entityId", entityID, ownerID); err != nil {
		return ExtractedKeys{}, err
	}
	if err := requireParam("ExtractKeysFromHierarchy", "ownerId", ownerID, entityID); err != nil {
		return ExtractedKeys{}, err
	}

	current := ownerID
	for {
		if entries := table[current]; len(entries) > 0 {
			keys, err := c.extractAtLevel(ctx, entityID, current, entries)
			if err != nil {
				return ExtractedKeys{}, err
			}
			return ExtractedKeys{ExtractedKeys: keys, OwnerID: current}, nil
		}

		resolved, err := c.resolver.Resolve(ctx, current)
		if err != nil {
			return ExtractedKeys{}, fmt.Errorf("extract keys for %s: %w", entityID, err)
		}
		parentID := resolved.Owner.GetParentID()
		if parentID == "" {
			return ExtractedKeys{OwnerID: current}, nil
		}
		current = parentID
	}
}

// ExtractSFKsHierarchy recovers the secret foreign keys of record at every
// level of ownerID's ownership hierarchy, bottom-up: the owner first, then
// each ancestor. Levels without entries appear with an empty key list.
func (c *Codec) ExtractSFKsHierarchy(ctx context.Context, record models.Encryptable, ownerID string) ([]LevelKeys, error) {
	if err := requireParam("ExtractSFKsHierarchy", "record.id", record.GetID(), ownerID); err != nil {
		return nil, err
	}

	table := record.GetDelegations()
	var levels []LevelKeys
	current := ownerID
	for {
		keys, err := c.extractAtLevel(ctx, record.GetID(), current, table[current])
		if err != nil {
			return nil, err
		}
		levels = append(levels, LevelKeys{OwnerID: current, ExtractedKeys: keys})

		resolved, err := c.resolver.Resolve(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("extract hierarchy keys for %s: %w", record.GetID(), err)
		}
		parentID := resolved.Owner.GetParentID()
		if parentID == "" {
			return levels, nil
		}
		current = parentID
	}
}

// ExtractPreferredSFK picks the secret foreign key of record to attach new
// children under, as ownerID.
//
// With confidential set it returns a key visible at exactly one hierarchy
// level (not shared with ancestors), so children remain hidden from the rest
// of the organisation; otherwise the first key of the lowest populated level
// is returned. The empty string means no suitable key exists.
func (c *Codec) ExtractPreferredSFK(ctx context.Context, record models.Encryptable, ownerID string, confidential bool) (string, error) {
	levels, err := c.ExtractSFKsHierarchy(ctx, record, ownerID)
	if err != nil {
		return "", err
	}

	if !confidential {
		for _, level := range levels {
			if len(level.ExtractedKeys) > 0 {
				return level.ExtractedKeys[0], nil
			}
		}
		return "", nil
	}

	for _, level := range levels {
		for _, key := range level.ExtractedKeys {
			shared := false
			for _, other := range levels {
				if other.OwnerID != level.OwnerID && slices.Contains(other.ExtractedKeys, key) {
					shared = true
					break
				}
			}
			if !shared {
				return key, nil
			}
		}
	}
	return "", nil
}

// DecryptKeysInDelegations decrypts the pairwise keys needed to open the
// given delegation entries as ownerID (the delegate side). When the entry
// list is empty and fallbackOnParent is set, the owner's parent is tried
// instead.
func (c *Codec) DecryptKeysInDelegations(ctx context.Context, ownerID string, entries []models.Delegation, fallbackOnParent bool) ([]keymanager.DelegatorAndKeys, error) {
	if len(entries) == 0 && fallbackOnParent {
		resolved, err := c.resolver.Resolve(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if parentID := resolved.Owner.GetParentID(); parentID != "" {
			return c.DecryptKeysInDelegations(ctx, parentID, entries, false)
		}
	}

	return c.keys.DecryptKeysForDelegators(ctx, delegatorsOf(entries), ownerID)
}

// extractAtLevel decrypts the entries sitting at one hierarchy level
// (levelID's slot) and collects their secret ids.
//
// Per-entry failures are logged and the entry excluded; the level degrades
// to a smaller correct result. A payload naming a different entity id is an
// anomaly left by historical entity merges: it is reported as such, and its
// secret id is still returned.
func (c *Codec) extractAtLevel(ctx context.Context, entityID, levelID string, entries []models.Delegation) ([]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	delegatorKeys, err := c.keys.DecryptKeysForDelegators(ctx, delegatorsOf(entries), levelID)
	if err != nil {
		return nil, fmt.Errorf("extract keys for %s at %s: %w", entityID, levelID, err)
	}
	keyByDelegator := make(map[string][]byte, len(delegatorKeys))
	for _, dk := range delegatorKeys {
		keyByDelegator[dk.DelegatorID] = dk.Key
	}

	var out []string
	for _, d := range entries {
		key, ok := keyByDelegator[d.Owner]
		if !ok {
			continue // pairwise key unavailable, already logged by the key manager
		}

		secretID, err := c.openEntry(key, entityID, d)
		if err != nil {
			c.log.Debug().Err(err).
				Str("event", "decrypt_failed").
				Str("entityId", entityID).
				Str("owner", d.Owner).
				Str("delegatedTo", d.DelegatedTo).
				Msg("skipping undecryptable delegation entry")
			continue
		}
		out = append(out, secretID)
	}
	return out, nil
}

// openEntry decrypts one entry and returns its embedded secret id.
func (c *Codec) openEntry(key []byte, entityID string, d models.Delegation) (string, error) {
	blob, err := hex.DecodeString(d.Key)
	if err != nil {
		return "", fmt.Errorf("decode delegation entry: %w", err)
	}
	cleartext, err := c.cipher.DecryptAES(key, blob)
	if err != nil {
		return "", err
	}
	embeddedID, secretID, found := splitPayload(cleartext)
	if !found {
		return "", fmt.Errorf("malformed delegation payload")
	}
	if embeddedID != entityID {
		c.log.Warn().
			Str("event", "delegation_id_mismatch").
			Str("entityId", entityID).
			Str("embeddedId", embeddedID).
			Str("owner", d.Owner).
			Str("delegatedTo", d.DelegatedTo).
			Msg("delegation payload names another entity, keeping its secret id")
	}
	return secretID, nil
}

// delegatorsOf returns the distinct entry owners in order of first
// appearance.
func delegatorsOf(entries []models.Delegation) []string {
	var out []string
	for _, d := range entries {
		if !slices.Contains(out, d.Owner) {
			out = append(out, d.Owner)
		}
	}
	return out
}
