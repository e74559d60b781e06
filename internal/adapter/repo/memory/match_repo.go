package memory

import (
	"context"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

type MatchRepo struct {
	store *Store
}

func NewMatchRepo(store *Store) MatchRepo {
	return MatchRepo{store: store}
}

func (r MatchRepo) GetByMatchID(ctx context.Context, matchID string) (*worms.Map, error) {
	defer r.store.readLock(ctx)()

	m, ok := r.store.matches[matchID]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return m.Clone(), nil
}

func (r MatchRepo) SaveWithVersion(ctx context.Context, m *worms.Map, expectedVersion int64) error {
	defer r.store.writeLock(ctx)()

	current, ok := r.store.matches[m.MatchID]
	if !ok {
		if expectedVersion != 0 {
			return ports.ErrConflict
		}
		r.store.matches[m.MatchID] = m.Clone()
		return nil
	}
	if current.Version != expectedVersion {
		return ports.ErrConflict
	}
	r.store.matches[m.MatchID] = m.Clone()
	return nil
}
