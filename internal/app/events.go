package app

import "chatz/internal/domain"

// Wire event names. Inbound names follow the client protocol verbatim.
const (
	EventJoinRoom       = "joinRoom"
	EventSendMessage    = "send_message"
	EventJoinSuccess    = "join_success"
	EventUserJoined     = "user_joined"
	EventUserLeft       = "user_left"
	EventReceiveMessage = "receive_message"
	EventError          = "error"
)

// JoinSuccessEvent acknowledges the requesting connection's own join.
type JoinSuccessEvent struct {
	Type string `json:"type"`
}

// PresenceEvent notifies existing members that someone joined or left.
type PresenceEvent struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

// MessageEvent fans a chat message out to a room, sender included.
type MessageEvent struct {
	Type string `json:"type"`
	domain.Message
}

// ErrorEvent reports a rejected request back to the submitting connection.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}
