package ports

import (
	"context"
	"time"

	"wormsarena/internal/domain/worms"
)

type RoundResult struct {
	ResultCode    string              `json:"result_code"`
	Round         int                 `json:"round"`
	CurrentWormID int                 `json:"current_worm_id"`
	Events        []worms.DomainEvent `json:"events"`
}

type CommandExecutionRecord struct {
	MatchID        string
	PlayerID       int
	IdempotencyKey string
	CommandType    string
	Round          int
	Result         RoundResult
	AppliedAt      time.Time
}

type MatchRepository interface {
	GetByMatchID(ctx context.Context, matchID string) (*worms.Map, error)
	SaveWithVersion(ctx context.Context, m *worms.Map, expectedVersion int64) error
}

type CommandExecutionRepository interface {
	GetByIdempotencyKey(ctx context.Context, matchID string, playerID int, key string) (*CommandExecutionRecord, error)
	SaveExecution(ctx context.Context, execution CommandExecutionRecord) error
}

type EventRepository interface {
	Append(ctx context.Context, matchID string, events []worms.DomainEvent) error
	ListByMatchID(ctx context.Context, matchID string, limit int) ([]worms.DomainEvent, error)
}

type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
