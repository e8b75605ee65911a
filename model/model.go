package model

import "encoding/json"

// Message types used on the websocket wire. Client-originated and
// server-originated messages share one envelope; Type selects which
// fields are meaningful.
const (
	TypeSession         = "session"
	TypeJoinRoom        = "join-room"
	TypeViewerJoined    = "viewer-joined"
	TypePresenterJoined = "presenter-joined"
	TypeMemberLeft      = "member-left"
	TypeSignal          = "signal"
	TypeError           = "error-message"
)

type Message struct {
	Type      string          `json:"type"`
	Room      string          `json:"room,omitempty"`
	Presenter bool            `json:"presenter,omitempty"`
	To        string          `json:"to,omitempty"`
	From      string          `json:"from,omitempty"` // for inbound messages server re-assigns this based on websocket session
	Session   string          `json:"session,omitempty"`
	Signal    json.RawMessage `json:"signal,omitempty"` // opaque handshake data, never inspected
	Text      string          `json:"text,omitempty"`
}

type Wire struct {
	RX chan Message
	TX chan Message
}

func NewWire() Wire {
	return Wire{
		RX: make(chan Message),
		TX: make(chan Message),
	}
}
