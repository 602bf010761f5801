// Package workers provides abstractions for managing and running
// background workers in the engine.
// It defines the Worker interface, a Workers aggregate that allows running
// multiple workers in a unified way, and the keychain certificate sync
// worker.
package workers

import (
	"context"

	"github.com/medvault/go-med-vault/internal/service"
)

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to block for the duration of their work
// or spawn goroutines internally.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run() {
//	    // start background processing
//	}
type Worker interface {
	Run()
}

// KeychainSyncer reconciles an owner's keychain certificate between the
// directory record and the local key store. *service.CryptoService
// satisfies it.
type KeychainSyncer interface {
	SyncKeychainCertificate(ctx context.Context, ownerID string) (service.KeychainStatus, error)
}
