package gormrepo

import "time"

// Match persists the whole canonical match graph as one jsonb document
// with an optimistic-locking version column alongside.
type Match struct {
	MatchID      string `gorm:"primaryKey;column:match_id"`
	State        []byte `gorm:"type:jsonb"`
	CurrentRound int
	Version      int64
	UpdatedAt    time.Time
}

type RoundEvent struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	MatchID    string `gorm:"index"`
	Type       string
	Round      int
	OccurredAt time.Time
	Payload    []byte `gorm:"type:jsonb"`
}

type CommandExecution struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	MatchID        string `gorm:"uniqueIndex:idx_command_key"`
	PlayerID       int    `gorm:"uniqueIndex:idx_command_key"`
	IdempotencyKey string `gorm:"uniqueIndex:idx_command_key"`
	CommandType    string
	Round          int
	Result         []byte `gorm:"type:jsonb"`
	AppliedAt      time.Time
}
