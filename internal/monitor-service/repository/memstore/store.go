// Package memstore keeps the health catalog, events, snapshots and outages in
// process memory. It backs the "memory" storage driver used for local runs
// and tests. Every unit of work holds the store lock for its whole duration,
// so ingestion is fully serialized and a failed unit of work is undone in
// reverse order.
package memstore

import (
	"GameHub_Monitor/internal/monitor-service/model"
	"GameHub_Monitor/internal/monitor-service/repository"
	"context"
	"fmt"
	"sync"
	"time"
)

type snapshotKey struct {
	serverID    string
	windowStart int64
	windowSize  string
}

type Store struct {
	mu sync.Mutex

	servers   map[string]model.Server
	codes     map[string]string
	events    []model.HealthEvent
	snapshots map[snapshotKey]model.HealthSnapshot
	outages   []model.Outage
	locks     map[string]time.Time

	nextEventID    int64
	nextSnapshotID int64
	nextOutageID   int64
	catalogWrites  int64

	now func() time.Time
}

type txLog struct {
	undo []func()
}

func (l *txLog) push(fn func()) {
	l.undo = append(l.undo, fn)
}

func (l *txLog) rollback() {
	for i := len(l.undo) - 1; i >= 0; i-- {
		l.undo[i]()
	}
}

// view is a repository handle. tx is nil outside a unit of work, in which case
// each call locks the store and commits on its own.
type view struct {
	store *Store
	tx    *txLog
}

func (v view) run(fn func(log *txLog) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	log := &txLog{}
	if err := fn(log); err != nil {
		log.rollback()
		return err
	}
	return nil
}

func (v view) repositories() repository.Repositories {
	return repository.Repositories{
		Servers:   serverRepository{v},
		Events:    eventRepository{v},
		Snapshots: snapshotRepository{v},
		Outages:   outageRepository{v},
	}
}

// Repositories returns auto-committing repositories for the read path.
func (s *Store) Repositories() repository.Repositories {
	return view{store: s}.repositories()
}

func (s *Store) Do(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("UnitOfWork.Do: %w", err)
	}
	log := &txLog{}
	if err := fn(view{store: s, tx: log}.repositories()); err != nil {
		log.rollback()
		return fmt.Errorf("UnitOfWork.Do: %w", err)
	}
	return nil
}

// TryLock is the in-process counterpart of the redis sync lock.
func (s *Store) TryLock(_ context.Context, name string, ttl time.Duration) (func(ctx context.Context) error, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	if expiresAt, held := s.locks[name]; held && now.Before(expiresAt) {
		return func(context.Context) error { return nil }, false, nil
	}
	expiresAt := now.Add(ttl)
	s.locks[name] = expiresAt
	release := func(context.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.locks[name].Equal(expiresAt) {
			delete(s.locks, name)
		}
		return nil
	}
	return release, true, nil
}

// CatalogWrites reports how many server rows were created or updated.
func (s *Store) CatalogWrites() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.catalogWrites
}

func New() *Store {
	return &Store{
		servers:   make(map[string]model.Server),
		codes:     make(map[string]string),
		snapshots: make(map[snapshotKey]model.HealthSnapshot),
		locks:     make(map[string]time.Time),
		now:       time.Now,
	}
}

var (
	_ repository.UnitOfWork         = (*Store)(nil)
	_ repository.SyncLockRepository = (*Store)(nil)
)
