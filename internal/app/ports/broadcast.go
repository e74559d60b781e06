package ports

// MatchBroadcaster pushes the post-round match state to spectators.
// Implementations must not block the round pipeline.
type MatchBroadcaster interface {
	BroadcastMatch(matchID string, state any)
}
