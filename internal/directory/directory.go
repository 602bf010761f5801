// SPDX-License-Identifier: Apache-2.0

// Package directory resolves data owner ids to their concrete variant
// (patient, device or healthcare party) and caches the results for the
// lifetime of the engine instance.
//
// An owner id carries no type information, so [Resolver.Resolve] probes the
// backend variant by variant until one answers. Concurrent resolutions of the
// same id are coalesced into a single backend round trip; failed resolutions
// are never cached.
package directory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/medvault/go-med-vault/internal/adapter"
	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/models"
)

// ErrOwnerNotFound is returned by [Resolver.Resolve] when no owner variant
// answers for the requested id.
var ErrOwnerNotFound = errors.New("data owner not found")

// Resolved pairs a fetched data owner with its concrete variant tag so that
// callers can dispatch persistence without type switches of their own.
type Resolved struct {
	Owner models.DataOwner
	Type  models.DataOwnerType
}

// lookup is one in-flight or completed resolution. done is closed once owner,
// ownerType and err are final.
type lookup struct {
	done      chan struct{}
	owner     models.DataOwner
	ownerType models.DataOwnerType
	err       error
}

// Resolver is a read-through cache over the three owner endpoints of a
// [adapter.DirectoryAPI].
//
// State is per Resolver instance. The zero value is not usable; construct
// with [NewResolver].
type Resolver struct {
	api adapter.DirectoryAPI
	log *logger.Logger

	mu      sync.Mutex
	lookups map[string]*lookup
}

// NewResolver returns a Resolver backed by api.
func NewResolver(api adapter.DirectoryAPI, log *logger.Logger) *Resolver {
	return &Resolver{
		api:     api,
		log:     log,
		lookups: make(map[string]*lookup),
	}
}

// Resolve returns the data owner with the given id, probing the patient,
// device and healthcare party endpoints in that order. The first successful
// answer is cached; later calls for the same id return the cached value
// without touching the backend.
//
// When several goroutines resolve the same uncached id concurrently, only one
// performs the backend probes; the others wait for its outcome. A failed
// probe sequence is not cached, so the next call retries.
//
// Returns a wrapped [ErrOwnerNotFound] when every variant answers "not
// found". Transport-level failures abort the probe sequence and are returned
// as-is.
func (r *Resolver) Resolve(ctx context.Context, ownerID string) (Resolved, error) {
	r.mu.Lock()
	if l, ok := r.lookups[ownerID]; ok {
		r.mu.Unlock()
		select {
		case <-l.done:
		case <-ctx.Done():
			return Resolved{}, ctx.Err()
		}
		if l.err != nil {
			return Resolved{}, l.err
		}
		return Resolved{Owner: l.owner, Type: l.ownerType}, nil
	}

	l := &lookup{done: make(chan struct{})}
	r.lookups[ownerID] = l
	r.mu.Unlock()

	l.owner, l.ownerType, l.err = r.fetch(ctx, ownerID)
	if l.err != nil {
		// Drop the entry before waking waiters so a later call retries.
		r.mu.Lock()
		delete(r.lookups, ownerID)
		r.mu.Unlock()
	}
	close(l.done)

	if l.err != nil {
		return Resolved{}, l.err
	}
	return Resolved{Owner: l.owner, Type: l.ownerType}, nil
}

// fetch probes the backend variant by variant until one answers for ownerID.
func (r *Resolver) fetch(ctx context.Context, ownerID string) (models.DataOwner, models.DataOwnerType, error) {
	patient, err := r.api.GetPatient(ctx, ownerID)
	switch {
	case err == nil:
		return patient, models.DataOwnerPatient, nil
	case !errors.Is(err, adapter.ErrNotFound):
		return nil, "", fmt.Errorf("resolve owner %s as patient: %w", ownerID, err)
	}

	device, err := r.api.GetDevice(ctx, ownerID)
	switch {
	case err == nil:
		return device, models.DataOwnerDevice, nil
	case !errors.Is(err, adapter.ErrNotFound):
		return nil, "", fmt.Errorf("resolve owner %s as device: %w", ownerID, err)
	}

	hcp, err := r.api.GetHealthcareParty(ctx, ownerID)
	switch {
	case err == nil:
		return hcp, models.DataOwnerHcp, nil
	case !errors.Is(err, adapter.ErrNotFound):
		return nil, "", fmt.Errorf("resolve owner %s as healthcare party: %w", ownerID, err)
	}

	r.log.Debug().Str("ownerId", ownerID).Msg("owner unknown to all variants")
	return nil, "", fmt.Errorf("owner %s: %w", ownerID, ErrOwnerNotFound)
}

// Put persists owner through the endpoint matching its variant and replaces
// the cached entry with the stored value (carrying the new revision).
func (r *Resolver) Put(ctx context.Context, owner models.DataOwner) (Resolved, error) {
	var (
		stored    models.DataOwner
		ownerType models.DataOwnerType
		err       error
	)
	switch v := owner.(type) {
	case *models.Patient:
		ownerType = models.DataOwnerPatient
		stored, err = r.api.UpdatePatient(ctx, v)
	case *models.Device:
		ownerType = models.DataOwnerDevice
		stored, err = r.api.UpdateDevice(ctx, v)
	case *models.HealthcareParty:
		ownerType = models.DataOwnerHcp
		stored, err = r.api.UpdateHealthcareParty(ctx, v)
	default:
		return Resolved{}, fmt.Errorf("put owner %s: unsupported variant %T", owner.GetID(), owner)
	}
	if err != nil {
		return Resolved{}, fmt.Errorf("put owner %s: %w", owner.GetID(), err)
	}

	l := &lookup{done: make(chan struct{}), owner: stored, ownerType: ownerType}
	close(l.done)
	r.mu.Lock()
	r.lookups[stored.GetID()] = l
	r.mu.Unlock()

	return Resolved{Owner: stored, Type: ownerType}, nil
}

// Cache replaces the cached entry for owner without a backend round trip.
// It is used after a collaborator returns an updated owner as a side effect
// of another call.
func (r *Resolver) Cache(owner models.DataOwner, ownerType models.DataOwnerType) {
	l := &lookup{done: make(chan struct{}), owner: owner, ownerType: ownerType}
	close(l.done)
	r.mu.Lock()
	r.lookups[owner.GetID()] = l
	r.mu.Unlock()
}

// Invalidate drops the cached entry for ownerID, forcing the next Resolve to
// hit the backend.
func (r *Resolver) Invalidate(ownerID string) {
	r.mu.Lock()
	delete(r.lookups, ownerID)
	r.mu.Unlock()
}

// EmptyCache drops every cached entry.
func (r *Resolver) EmptyCache() {
	r.mu.Lock()
	r.lookups = make(map[string]*lookup)
	r.mu.Unlock()
}
