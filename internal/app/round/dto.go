package round

import "wormsarena/internal/domain/worms"

type CommandType string

const (
	CommandMove    CommandType = "move"
	CommandDig     CommandType = "dig"
	CommandShoot   CommandType = "shoot"
	CommandNothing CommandType = "nothing"
)

// Command is a single pre-validated, pre-resolved order for the acting
// player's current worm. Conflict resolution between players happens
// before it gets here.
type Command struct {
	Type       CommandType  `json:"type"`
	Target     *worms.Point `json:"target,omitempty"`
	TargetWorm *worms.Ref   `json:"target_worm,omitempty"`
}

type Request struct {
	MatchID        string
	PlayerID       int
	IdempotencyKey string
	Command        Command
}

type Response struct {
	MatchID       string              `json:"match_id"`
	Round         int                 `json:"round"`
	CurrentWormID int                 `json:"current_worm_id"`
	ResultCode    string              `json:"result_code"`
	Events        []worms.DomainEvent `json:"events"`
}
