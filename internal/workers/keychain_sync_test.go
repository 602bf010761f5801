// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/internal/service"
)

// countingSyncer counts SyncKeychainCertificate calls.
type countingSyncer struct {
	calls atomic.Int64
	err   error
}

func (s *countingSyncer) SyncKeychainCertificate(context.Context, string) (service.KeychainStatus, error) {
	s.calls.Add(1)
	return service.KeychainStatus{Local: true, Remote: true}, s.err
}

func TestKeychainSyncWorker_SyncsPeriodically(t *testing.T) {
	syncer := &countingSyncer{}
	w := NewKeychainSyncWorker(syncer, "hcp-1", time.Millisecond, logger.Nop())

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 2
	}, time.Second, time.Millisecond)
}

func TestKeychainSyncWorker_StopEndsLoop(t *testing.T) {
	syncer := &countingSyncer{}
	w := NewKeychainSyncWorker(syncer, "hcp-1", time.Millisecond, logger.Nop())

	w.Start(context.Background())
	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 1
	}, time.Second, time.Millisecond)

	w.Stop()
	after := syncer.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, after, syncer.calls.Load())
}

func TestKeychainSyncWorker_ContextCancelEndsLoop(t *testing.T) {
	syncer := &countingSyncer{}
	w := NewKeychainSyncWorker(syncer, "hcp-1", time.Millisecond, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 1
	}, time.Second, time.Millisecond)

	cancel()
	// Stop still returns promptly after the context ended the loop.
	w.Stop()
}

func TestKeychainSyncWorker_StopWithoutStart(t *testing.T) {
	w := NewKeychainSyncWorker(&countingSyncer{}, "hcp-1", time.Millisecond, logger.Nop())

	// Should not panic or block.
	w.Stop()
}

func TestKeychainSyncWorker_SyncErrorKeepsLooping(t *testing.T) {
	syncer := &countingSyncer{err: assert.AnError}
	w := NewKeychainSyncWorker(syncer, "hcp-1", time.Millisecond, logger.Nop())

	w.Start(context.Background())
	defer w.Stop()

	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 3
	}, time.Second, time.Millisecond)
}

func TestKeychainSyncWorker_DefaultInterval(t *testing.T) {
	w := NewKeychainSyncWorker(&countingSyncer{}, "hcp-1", 0, logger.Nop())
	assert.Equal(t, DefaultSyncInterval, w.interval)
}

func TestKeychainSyncWorker_RunStartsLoop(t *testing.T) {
	syncer := &countingSyncer{}
	w := NewKeychainSyncWorker(syncer, "hcp-1", time.Millisecond, logger.Nop())

	var _ Worker = w
	w.Run()
	defer w.Stop()

	require.Eventually(t, func() bool {
		return syncer.calls.Load() >= 1
	}, time.Second, time.Millisecond)
}
