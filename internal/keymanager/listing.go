// SPDX-License-Identifier: Apache-2.0

package keymanager

import (
	"context"
	"fmt"
	"maps"
	"time"
)

// cachedListing is a memoized delegate key listing: delegator id →
// delegate-encrypted pairwise key ciphertext (hex). done is closed once the
// fields are final. fetchedAt bounds force refreshes.
type cachedListing struct {
	done      chan struct{}
	keys      map[string]string
	err       error
	fetchedAt time.Time
}

// ListKeysForDelegate returns every pairwise key ciphertext other owners
// created towards delegateID, merged from the patient and healthcare-party
// collaborators (the healthcare-party listing wins on a delegator id
// collision). Results are cached per delegate; force bypasses the cache, but
// at most once per the manager's minimum refresh interval.
func (m *Manager) ListKeysForDelegate(ctx context.Context, delegateID string, force bool) (map[string]string, error) {
	m.mu.Lock()
	if c, ok := m.listings[delegateID]; ok {
		refreshable := force && time.Since(c.fetchedAt) >= m.minListingRefresh
		if !refreshable {
			m.mu.Unlock()
			select {
			case <-c.done:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			return c.keys, c.err
		}
	}
	c := &cachedListing{done: make(chan struct{}), fetchedAt: time.Now()}
	m.listings[delegateID] = c
	m.mu.Unlock()

	c.keys, c.err = m.fetchKeysForDelegate(ctx, delegateID)
	if c.err != nil {
		m.mu.Lock()
		if m.listings[delegateID] == c {
			delete(m.listings, delegateID)
		}
		m.mu.Unlock()
	}
	close(c.done)

	return c.keys, c.err
}

func (m *Manager) fetchKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error) {
	patientKeys, err := m.listing.GetPatientHcPartyKeysForDelegate(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("list keys for delegate %s: patients: %w", delegateID, err)
	}
	hcpKeys, err := m.listing.GetHcPartyKeysForDelegate(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("list keys for delegate %s: healthcare parties: %w", delegateID, err)
	}

	merged := make(map[string]string, len(patientKeys)+len(hcpKeys))
	maps.Copy(merged, patientKeys)
	maps.Copy(merged, hcpKeys)
	return merged, nil
}

// primeListing inserts a freshly generated key into the delegate's cached
// listing, if one is populated, so the delegate sees the new delegator
// without a backend round trip.
func (m *Manager) primeListing(delegateID, delegatorID, delegateEncryptedKey string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.listings[delegateID]
	if !ok {
		return
	}
	select {
	case <-c.done:
	default:
		return // still fetching; the fetch result will include the new key or a later refresh will
	}
	if c.err != nil {
		return
	}

	// Replace the entry rather than mutating the map callers may still be
	// reading.
	keys := maps.Clone(c.keys)
	keys[delegatorID] = delegateEncryptedKey
	next := &cachedListing{done: make(chan struct{}), keys: keys, fetchedAt: c.fetchedAt}
	close(next.done)
	m.listings[delegateID] = next
}

// DecryptKeysForDelegators decrypts, with delegateID's private key, the
// pairwise keys each of the given delegators created towards the delegate.
//
// Delegators absent from the cached listing trigger one forced refresh
// (respecting the minimum refresh interval) before being reported missing.
// Per-delegator decryption failures are logged and skipped; the returned
// slice holds the keys that could be recovered, in delegator order.
func (m *Manager) DecryptKeysForDelegators(ctx context.Context, delegatorIDs []string, delegateID string) ([]DelegatorAndKeys, error) {
	listing, err := m.ListKeysForDelegate(ctx, delegateID, false)
	if err != nil {
		return nil, err
	}

	missing := false
	for _, delegatorID := range delegatorIDs {
		if _, ok := listing[delegatorID]; !ok {
			missing = true
			break
		}
	}
	if missing {
		listing, err = m.ListKeysForDelegate(ctx, delegateID, true)
		if err != nil {
			return nil, err
		}
	}

	var out []DelegatorAndKeys
	for _, delegatorID := range delegatorIDs {
		cipherHex, ok := listing[delegatorID]
		if !ok {
			m.log.Debug().
				Str("delegatorId", delegatorID).
				Str("delegateId", delegateID).
				Msg("no hc-party key listed for delegator")
			continue
		}
		dk, err := m.DecryptHcPartyKey(ctx, delegatorID, delegateID, cipherHex, false)
		if err != nil {
			m.log.Warn().Err(err).
				Str("delegatorId", delegatorID).
				Str("delegateId", delegateID).
				Msg("skipping undecryptable hc-party key")
			continue
		}
		out = append(out, dk)
	}
	return out, nil
}
