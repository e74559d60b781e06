package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"

	"gorm.io/gorm"
)

type MatchRepo struct {
	db *gorm.DB
}

func NewMatchRepo(db *gorm.DB) MatchRepo {
	return MatchRepo{db: db}
}

func (r MatchRepo) GetByMatchID(ctx context.Context, matchID string) (*worms.Map, error) {
	var row Match
	if err := getDBFromCtx(ctx, r.db).Where("match_id = ?", matchID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	var m worms.Map
	if err := json.Unmarshal(row.State, &m); err != nil {
		return nil, fmt.Errorf("decode match state: %w", err)
	}
	m.Version = row.Version
	return &m, nil
}

func (r MatchRepo) SaveWithVersion(ctx context.Context, m *worms.Map, expectedVersion int64) error {
	db := getDBFromCtx(ctx, r.db)
	state, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode match state: %w", err)
	}

	if expectedVersion == 0 {
		row := Match{
			MatchID:      m.MatchID,
			State:        state,
			CurrentRound: m.CurrentRound,
			Version:      m.Version,
		}
		return db.Create(&row).Error
	}

	res := db.Model(&Match{}).
		Where("match_id = ? AND version = ?", m.MatchID, expectedVersion).
		Updates(map[string]any{
			"state":         state,
			"current_round": m.CurrentRound,
			"version":       m.Version,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ports.ErrConflict
	}
	return nil
}
