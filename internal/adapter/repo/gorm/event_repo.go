package gormrepo

import (
	"context"
	"encoding/json"

	"wormsarena/internal/app/ports"
	"wormsarena/internal/domain/worms"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return EventRepo{db: db}
}

func (r EventRepo) Append(ctx context.Context, matchID string, events []worms.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}
	rows := make([]RoundEvent, 0, len(events))
	for _, e := range events {
		b, _ := json.Marshal(e.Payload)
		rows = append(rows, RoundEvent{
			MatchID:    matchID,
			Type:       e.Type,
			Round:      e.Round,
			OccurredAt: e.OccurredAt,
			Payload:    b,
		})
	}
	return getDBFromCtx(ctx, r.db).Create(&rows).Error
}

func (r EventRepo) ListByMatchID(ctx context.Context, matchID string, limit int) ([]worms.DomainEvent, error) {
	rows := []RoundEvent{}
	query := getDBFromCtx(ctx, r.db).
		Where(&RoundEvent{MatchID: matchID}).
		Clauses(clause.OrderBy{
			Columns: []clause.OrderByColumn{{Column: clause.Column{Name: "occurred_at"}, Desc: true}},
		})
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ports.ErrNotFound
	}

	out := make([]worms.DomainEvent, 0, len(rows))
	for _, row := range rows {
		var payload map[string]any
		if len(row.Payload) > 0 {
			_ = json.Unmarshal(row.Payload, &payload)
		}
		out = append(out, worms.DomainEvent{
			Type:       row.Type,
			Round:      row.Round,
			OccurredAt: row.OccurredAt,
			Payload:    payload,
		})
	}
	return out, nil
}
