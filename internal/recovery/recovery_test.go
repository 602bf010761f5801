// SPDX-License-Identifier: Apache-2.0

package recovery

import (
	"context"
	"encoding/hex"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvault/go-med-vault/internal/adapter"
	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/internal/directory"
	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/models"
)

// fakeDirectory is an in-memory adapter.DirectoryAPI holding healthcare
// parties only.
type fakeDirectory struct {
	mu   sync.Mutex
	hcps map[string]*models.HealthcareParty
}

func (f *fakeDirectory) GetPatient(_ context.Context, id string) (*models.Patient, error) {
	return nil, fmt.Errorf("patient %s: %w", id, adapter.ErrNotFound)
}

func (f *fakeDirectory) UpdatePatient(_ context.Context, p *models.Patient) (*models.Patient, error) {
	return nil, fmt.Errorf("patient %s: %w", p.ID, adapter.ErrNotFound)
}

func (f *fakeDirectory) GetDevice(_ context.Context, id string) (*models.Device, error) {
	return nil, fmt.Errorf("device %s: %w", id, adapter.ErrNotFound)
}

func (f *fakeDirectory) UpdateDevice(_ context.Context, d *models.Device) (*models.Device, error) {
	return nil, fmt.Errorf("device %s: %w", d.ID, adapter.ErrNotFound)
}

func (f *fakeDirectory) GetHealthcareParty(_ context.Context, id string) (*models.HealthcareParty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if h, ok := f.hcps[id]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("hcp %s: %w", id, adapter.ErrNotFound)
}

func (f *fakeDirectory) UpdateHealthcareParty(_ context.Context, hcp *models.HealthcareParty) (*models.HealthcareParty, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	hcp.Rev = hcp.Rev + "+"
	f.hcps[hcp.ID] = hcp
	return hcp, nil
}

func (f *fakeDirectory) GetPatientHcPartyKeysForDelegate(context.Context, string) (map[string]string, error) {
	return map[string]string{}, nil
}

func (f *fakeDirectory) GetHcPartyKeysForDelegate(_ context.Context, delegateID string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string)
	for id, h := range f.hcps {
		if pair, ok := h.HcPartyKeys[delegateID]; ok {
			out[id] = pair[1]
		}
	}
	return out, nil
}

type memKeys struct {
	mu    sync.Mutex
	pairs map[string]models.KeyPair
}

func (s *memKeys) GetKeyPair(_ context.Context, ownerID string) (models.KeyPair, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	kp, ok := s.pairs[ownerID]
	if !ok {
		return models.KeyPair{}, fmt.Errorf("owner %s: no key pair", ownerID)
	}
	return kp, nil
}

func (s *memKeys) SaveKeyPair(_ context.Context, ownerID string, kp models.KeyPair) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pairs[ownerID] = kp
	return nil
}

func (s *memKeys) drop(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs, ownerID)
}

type fixture struct {
	cipher   crypto.CipherProvider
	dir      *fakeDirectory
	store    *memKeys
	resolver *directory.Resolver
	keys     *keymanager.Manager
	recovery *Manager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cipher := crypto.NewProvider()
	dir := &fakeDirectory{hcps: make(map[string]*models.HealthcareParty)}
	store := &memKeys{pairs: make(map[string]models.KeyPair)}
	resolver := directory.NewResolver(dir, logger.Nop())
	keys := keymanager.NewManager(cipher, resolver, store, dir, time.Nanosecond, logger.Nop())
	return &fixture{
		cipher:   cipher,
		dir:      dir,
		store:    store,
		resolver: resolver,
		keys:     keys,
		recovery: NewManager(cipher, resolver, keys, store, logger.Nop()),
	}
}

func (f *fixture) addHcp(t *testing.T, id string) {
	t.Helper()
	priv, err := f.cipher.GenerateRSAKeyPair()
	require.NoError(t, err)
	pubDER, err := f.cipher.ExportRSAPublicKey(&priv.PublicKey)
	require.NoError(t, err)
	privDER, err := f.cipher.ExportRSAPrivateKey(priv)
	require.NoError(t, err)
	require.NoError(t, f.store.SaveKeyPair(context.Background(), id, models.KeyPair{
		PublicKey:  hex.EncodeToString(pubDER),
		PrivateKey: hex.EncodeToString(privDER),
	}))
	f.dir.hcps[id] = &models.HealthcareParty{ID: id, PublicKey: hex.EncodeToString(pubDER)}
}

func TestSplitAndReconstruct_MultipleNotaries(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "n1")
	f.addHcp(t, "n2")
	f.addHcp(t, "n3")

	owner, err := f.recovery.SplitAmongNotaries(context.Background(), "owner", []string{"n1", "n2", "n3"}, 2)
	require.NoError(t, err)
	assert.Len(t, owner.GetShamirPartitions(), 3)

	// The owner loses its local key; the notaries cooperate.
	f.store.drop("owner")
	f.keys.EmptyCaches("owner")

	err = f.recovery.ReconstructFromNotaries(context.Background(), "owner", []string{"n1", "n2", "n3"}, 2)
	require.NoError(t, err)

	ok, err := f.recovery.VerifyPrivateKey(context.Background(), "owner")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReconstruct_ThresholdSubsetSuffices(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "n1")
	f.addHcp(t, "n2")
	f.addHcp(t, "n3")

	_, err := f.recovery.SplitAmongNotaries(context.Background(), "owner", []string{"n1", "n2", "n3"}, 2)
	require.NoError(t, err)

	f.store.drop("owner")
	f.keys.EmptyCaches("owner")

	err = f.recovery.ReconstructFromNotaries(context.Background(), "owner", []string{"n1", "n3"}, 2)
	require.NoError(t, err)

	ok, err := f.recovery.VerifyPrivateKey(context.Background(), "owner")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReconstruct_InsufficientShares(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "n1")
	f.addHcp(t, "n2")
	f.addHcp(t, "n3")

	_, err := f.recovery.SplitAmongNotaries(context.Background(), "owner", []string{"n1", "n2", "n3"}, 3)
	require.NoError(t, err)

	f.store.drop("owner")
	f.keys.EmptyCaches("owner")
	// Two notaries are unreachable: their private keys are gone too.
	f.store.drop("n2")
	f.store.drop("n3")
	f.keys.EmptyCaches("n2")
	f.keys.EmptyCaches("n3")

	err = f.recovery.ReconstructFromNotaries(context.Background(), "owner", []string{"n1", "n2", "n3"}, 0)
	assert.ErrorIs(t, err, ErrInsufficientShares)
}

func TestSplitAndReconstruct_SingleNotary(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "notary")

	owner, err := f.recovery.SplitAmongNotaries(context.Background(), "owner", []string{"notary"}, 0)
	require.NoError(t, err)
	assert.Len(t, owner.GetShamirPartitions(), 1)

	f.store.drop("owner")
	f.keys.EmptyCaches("owner")

	err = f.recovery.ReconstructFromNotaries(context.Background(), "owner", []string{"notary"}, 0)
	require.NoError(t, err)

	ok, err := f.recovery.VerifyPrivateKey(context.Background(), "owner")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSplit_SkipsNotaryWithoutPublicKey(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "good")
	f.dir.hcps["bad"] = &models.HealthcareParty{ID: "bad"} // never published a key

	owner, err := f.recovery.SplitAmongNotaries(context.Background(), "owner", []string{"good", "bad"}, 2)
	require.NoError(t, err)

	partitions := owner.GetShamirPartitions()
	assert.Contains(t, partitions, "good")
	assert.NotContains(t, partitions, "bad")
}

func TestVerifyPrivateKey_WrongKey(t *testing.T) {
	f := newFixture(t)
	f.addHcp(t, "owner")
	f.addHcp(t, "impostor")

	// Swap in the impostor's private key under the owner's id.
	impostorKP, err := f.store.GetKeyPair(context.Background(), "impostor")
	require.NoError(t, err)
	require.NoError(t, f.store.SaveKeyPair(context.Background(), "owner", impostorKP))

	ok, err := f.recovery.VerifyPrivateKey(context.Background(), "owner")
	require.NoError(t, err)
	assert.False(t, ok)
}
