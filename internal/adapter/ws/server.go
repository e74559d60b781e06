package ws

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// Serve runs the spectator endpoint on its own listener, separate from
// the agent API.
func Serve(hub *Hub, addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/spectate", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("ws upgrade: %v", err)
			return
		}
		c := newClient(hub, conn)
		hub.register <- c
		go c.writePump()
		go c.readPump()
	})
	return http.ListenAndServe(addr, mux)
}
