// SPDX-License-Identifier: Apache-2.0

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/medvault/go-med-vault/internal/logger"
)

// DefaultSyncInterval is used when a keychain sync worker is started with a
// zero or negative interval.
const DefaultSyncInterval = 5 * time.Minute

// KeychainSyncWorker periodically reconciles the owner's keychain
// certificate via a [KeychainSyncer]. The worker is idle until Start or Run
// is called.
type KeychainSyncWorker struct {
	syncer   KeychainSyncer
	ownerID  string
	interval time.Duration
	log      *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewKeychainSyncWorker creates a worker that syncs ownerID's keychain
// certificate every interval.
func NewKeychainSyncWorker(syncer KeychainSyncer, ownerID string, interval time.Duration, log *logger.Logger) *KeychainSyncWorker {
	if interval <= 0 {
		interval = DefaultSyncInterval
	}
	return &KeychainSyncWorker{
		syncer:   syncer,
		ownerID:  ownerID,
		interval: interval,
		log:      log,
	}
}

// Run implements [Worker]. It starts the sync loop with a background
// context; use Stop to end it.
func (w *KeychainSyncWorker) Run() {
	w.Start(context.Background())
}

// Start stops any previously running loop, then launches a background
// goroutine that syncs the keychain certificate every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (w *KeychainSyncWorker) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-loopCtx.Done():
				return
			case <-t.C:
				w.syncOnce(loopCtx)
			}
		}
	}()
}

// Stop cancels the background goroutine's context and blocks until the
// goroutine has fully exited. Safe to call when the worker is not running
// (no-op in that case).
func (w *KeychainSyncWorker) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

func (w *KeychainSyncWorker) syncOnce(ctx context.Context) {
	status, err := w.syncer.SyncKeychainCertificate(ctx, w.ownerID)
	if err != nil {
		w.log.Warn().Err(err).
			Str("func", "KeychainSyncWorker.syncOnce").
			Str("ownerId", w.ownerID).
			Msg("keychain certificate sync failed")
		return
	}
	w.log.Debug().
		Str("func", "KeychainSyncWorker.syncOnce").
		Str("ownerId", w.ownerID).
		Bool("local", status.Local).
		Bool("remote", status.Remote).
		Msg("keychain certificate sync pass")
}
