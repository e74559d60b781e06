package ws

import (
	"encoding/json"
	"testing"

	"wormsarena/internal/app/ports"
)

var _ ports.MatchBroadcaster = (*Hub)(nil)

func TestBroadcastMatch_Envelope(t *testing.T) {
	h := NewHub()
	h.BroadcastMatch("match-1", map[string]int{"currentRound": 4})

	select {
	case data := <-h.broadcast:
		var env matchEnvelope
		if err := json.Unmarshal(data, &env); err != nil {
			t.Fatalf("unmarshal envelope: %v", err)
		}
		if env.Type != "match_state" || env.MatchID != "match-1" {
			t.Fatalf("envelope mismatch: %+v", env)
		}
	default:
		t.Fatalf("no message queued")
	}
}

func TestBroadcastMatch_DropsWhenFull(t *testing.T) {
	h := NewHub()
	for i := 0; i < cap(h.broadcast)+10; i++ {
		h.BroadcastMatch("match-1", i)
	}
	if len(h.broadcast) != cap(h.broadcast) {
		t.Fatalf("queue length = %d, cap = %d", len(h.broadcast), cap(h.broadcast))
	}
}

func TestBroadcastMatch_UnmarshalableStateIsIgnored(t *testing.T) {
	h := NewHub()
	h.BroadcastMatch("match-1", func() {})
	if len(h.broadcast) != 0 {
		t.Fatalf("unmarshalable state queued anyway")
	}
}
