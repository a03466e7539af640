package websocket

import (
	"github.com/gofiber/websocket/v2"
)

// ServeWs attaches a connection to the hub for the given topics and blocks
// until the peer disconnects.
func ServeWs(hub *Hub, c *websocket.Conn, topics []string) {
	client := &Client{Hub: hub, Conn: c, Topics: topics, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	// Allow collection of memory referenced by the caller by doing all work in
	// new goroutines.
	go client.writePump()
	client.readPump() // Run readPump in current goroutine (handler)
}
