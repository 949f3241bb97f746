// Package dataset holds the working data set in memory: the current ledger
// snapshot and the active rules configuration. The dashboard is single-family
// and stateless across restarts; imports replace the snapshot wholesale.
package dataset

import (
	"sync"
	"time"

	"github.com/alixwilliam/finplan/internal/domain/ledger"
	"github.com/alixwilliam/finplan/internal/domain/rules"
)

// Store is a concurrency-safe holder for the active snapshot and config.
type Store struct {
	mu        sync.RWMutex
	snapshot  ledger.Snapshot
	config    rules.Config
	updatedAt time.Time
}

// NewStore creates a store seeded with the default rules configuration and an
// empty snapshot.
func NewStore() *Store {
	return &Store{config: rules.Default()}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() ledger.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ledger.Snapshot{
		Transactions: append([]ledger.Transaction(nil), s.snapshot.Transactions...),
		Projects:     append([]ledger.Project(nil), s.snapshot.Projects...),
	}
}

// Config returns the active rules configuration.
func (s *Store) Config() rules.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SetConfig replaces the active rules configuration.
func (s *Store) SetConfig(cfg rules.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.updatedAt = time.Now().UTC()
}

// ReplaceTransactions swaps in a new transaction ledger, keeping projects.
func (s *Store) ReplaceTransactions(txs []ledger.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Transactions = txs
	s.updatedAt = time.Now().UTC()
}

// ReplaceProjects swaps in a new project list, keeping transactions.
func (s *Store) ReplaceProjects(projects []ledger.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Projects = projects
	s.updatedAt = time.Now().UTC()
}

// ReplaceSnapshot swaps in a whole new snapshot.
func (s *Store) ReplaceSnapshot(snap ledger.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snap
	s.updatedAt = time.Now().UTC()
}

// UpdatedAt reports when the store last changed. Zero if never.
func (s *Store) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// IsEmpty reports whether there is no data loaded at all.
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.snapshot.Transactions) == 0 && len(s.snapshot.Projects) == 0
}
