package memory

import (
	"context"
	"strconv"
	"sync"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

// Store backs the repos when no database is configured, so it is hit by
// concurrent observe reads and round writes. Round writes run under the
// tx manager's exclusive lock; repo methods called outside a tx take the
// lock themselves, and a ctx marker tells them the lock is already held.
type Store struct {
	mu        sync.RWMutex
	matches   map[string]*worms.Map
	execution map[string]ports.CommandExecutionRecord
	events    map[string][]worms.DomainEvent
}

func NewStore() *Store {
	return &Store{
		matches:   make(map[string]*worms.Map),
		execution: make(map[string]ports.CommandExecutionRecord),
		events:    make(map[string][]worms.DomainEvent),
	}
}

type txKeyType struct{}

var txKey = txKeyType{}

func withTx(ctx context.Context) context.Context {
	return context.WithValue(ctx, txKey, true)
}

func inTx(ctx context.Context) bool {
	held, _ := ctx.Value(txKey).(bool)
	return held
}

// readLock returns the matching unlock, or a no-op when the tx lock is
// already held.
func (s *Store) readLock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *Store) writeLock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func execKey(matchID string, playerID int, key string) string {
	return matchID + "::" + strconv.Itoa(playerID) + "::" + key
}

// SeedMatch stores a clone so callers keep ownership of their map.
func (s *Store) SeedMatch(m *worms.Map) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.matches[m.MatchID] = m.Clone()
}
