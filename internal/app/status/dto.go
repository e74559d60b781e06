package status

type Request struct {
	MatchID string
}

type Response struct {
	MatchID      string         `json:"match_id"`
	CurrentRound int            `json:"current_round"`
	MaxRounds    int            `json:"max_rounds"`
	Finished     bool           `json:"finished"`
	WinnerID     int            `json:"winner_id,omitempty"`
	Players      []PlayerStatus `json:"players"`
}

type PlayerStatus struct {
	ID          int `json:"id"`
	Score       int `json:"score"`
	Health      int `json:"health"`
	WormsAlive  int `json:"worms_alive"`
	WormsInTeam int `json:"worms_in_team"`
}
