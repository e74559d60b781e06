package memory

import (
	"context"

	"wormsarena/internal/app/ports"
)

type CommandExecutionRepo struct {
	store *Store
}

func NewCommandExecutionRepo(store *Store) CommandExecutionRepo {
	return CommandExecutionRepo{store: store}
}

func (r CommandExecutionRepo) GetByIdempotencyKey(ctx context.Context, matchID string, playerID int, key string) (*ports.CommandExecutionRecord, error) {
	defer r.store.readLock(ctx)()

	rec, ok := r.store.execution[execKey(matchID, playerID, key)]
	if !ok {
		return nil, ports.ErrNotFound
	}
	out := rec
	return &out, nil
}

func (r CommandExecutionRepo) SaveExecution(ctx context.Context, execution ports.CommandExecutionRecord) error {
	defer r.store.writeLock(ctx)()

	k := execKey(execution.MatchID, execution.PlayerID, execution.IdempotencyKey)
	if _, exists := r.store.execution[k]; exists {
		return ports.ErrConflict
	}
	r.store.execution[k] = execution
	return nil
}
