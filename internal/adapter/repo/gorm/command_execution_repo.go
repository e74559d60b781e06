package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wormsarena/internal/app/ports"

	"gorm.io/gorm"
)

type CommandExecutionRepo struct {
	db *gorm.DB
}

func NewCommandExecutionRepo(db *gorm.DB) CommandExecutionRepo {
	return CommandExecutionRepo{db: db}
}

func (r CommandExecutionRepo) GetByIdempotencyKey(ctx context.Context, matchID string, playerID int, key string) (*ports.CommandExecutionRecord, error) {
	var row CommandExecution
	err := getDBFromCtx(ctx, r.db).
		Where("match_id = ? AND player_id = ? AND idempotency_key = ?", matchID, playerID, key).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}

	var result ports.RoundResult
	if len(row.Result) > 0 {
		if err := json.Unmarshal(row.Result, &result); err != nil {
			return nil, fmt.Errorf("decode execution result: %w", err)
		}
	}
	return &ports.CommandExecutionRecord{
		MatchID:        row.MatchID,
		PlayerID:       row.PlayerID,
		IdempotencyKey: row.IdempotencyKey,
		CommandType:    row.CommandType,
		Round:          row.Round,
		Result:         result,
		AppliedAt:      row.AppliedAt,
	}, nil
}

func (r CommandExecutionRepo) SaveExecution(ctx context.Context, execution ports.CommandExecutionRecord) error {
	b, err := json.Marshal(execution.Result)
	if err != nil {
		return fmt.Errorf("encode execution result: %w", err)
	}
	row := CommandExecution{
		MatchID:        execution.MatchID,
		PlayerID:       execution.PlayerID,
		IdempotencyKey: execution.IdempotencyKey,
		CommandType:    execution.CommandType,
		Round:          execution.Round,
		Result:         b,
		AppliedAt:      execution.AppliedAt,
	}
	return getDBFromCtx(ctx, r.db).Create(&row).Error
}
