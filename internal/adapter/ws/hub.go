package ws

import (
	"encoding/json"
	"log"
)

// Hub fans the post-round match state out to connected spectators.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	clients    map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.clients[c] = true
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				c.sendRaw(msg)
			}
		}
	}
}

type matchEnvelope struct {
	Type    string `json:"type"`
	MatchID string `json:"match_id"`
	State   any    `json:"state"`
}

// BroadcastMatch satisfies ports.MatchBroadcaster. It never blocks the
// round pipeline: with a full buffer the update is dropped.
func (h *Hub) BroadcastMatch(matchID string, state any) {
	data, err := json.Marshal(matchEnvelope{Type: "match_state", MatchID: matchID, State: state})
	if err != nil {
		log.Printf("ws: marshal match state: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
	}
}
