package memory

import (
	"context"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"
)

type EventRepo struct {
	store *Store
}

func NewEventRepo(store *Store) EventRepo {
	return EventRepo{store: store}
}

func (r EventRepo) Append(ctx context.Context, matchID string, events []worms.DomainEvent) error {
	defer r.store.writeLock(ctx)()

	r.store.events[matchID] = append(r.store.events[matchID], events...)
	return nil
}

func (r EventRepo) ListByMatchID(ctx context.Context, matchID string, limit int) ([]worms.DomainEvent, error) {
	defer r.store.readLock(ctx)()

	events, ok := r.store.events[matchID]
	if !ok || len(events) == 0 {
		return nil, ports.ErrNotFound
	}
	// Newest first, matching the persistent repo.
	out := make([]worms.DomainEvent, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		out = append(out, events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
