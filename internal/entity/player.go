package entity

import "time"

const (
	TransportTCP       = "tcp"
	TransportWebSocket = "websocket"
)

// Player is a single connected client. Players carry no game state, the board is shared by everyone.
type Player struct {
	ID          string    `json:"id"`
	RemoteAddr  string    `json:"remote_addr,omitempty"`
	Transport   string    `json:"transport,omitempty"`
	ConnectedAt time.Time `json:"connected_at"`
}
