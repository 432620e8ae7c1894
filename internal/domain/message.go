package domain

// Message is a chat message as it travels between room members.
// The author and room are taken from the payload as submitted; the relay
// does not rewrite them against the sender's binding.
type Message struct {
	RoomID RoomID `json:"roomId"`
	Body   string `json:"message"`
	Author string `json:"author"`
}
