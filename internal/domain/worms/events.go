package worms

import "time"

const (
	EventWormMoved       = "worm_moved"
	EventCellDug         = "cell_dug"
	EventWormDamaged     = "worm_damaged"
	EventWormDied        = "worm_died"
	EventDidNothing      = "did_nothing"
	EventPowerupConsumed = "powerup_consumed"
	EventRoundAdvanced   = "round_advanced"
)

type DomainEvent struct {
	Type       string         `json:"type"`
	Round      int            `json:"round"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload"`
}

func NewEvent(eventType string, round int, at time.Time, payload map[string]any) DomainEvent {
	if payload == nil {
		payload = map[string]any{}
	}
	return DomainEvent{Type: eventType, Round: round, OccurredAt: at, Payload: payload}
}
