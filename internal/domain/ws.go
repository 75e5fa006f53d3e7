package domain

// WsEvent is the envelope for everything pushed to websocket clients.
// Channel "" broadcasts to every connected client.
type WsEvent struct {
	Channel string `json:"channel,omitempty"`
	Event   string `json:"event"`
	Payload any    `json:"payload,omitempty"`
}
