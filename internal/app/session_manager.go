package app

import (
	"errors"

	"github.com/rs/zerolog/log"

	"chatz/internal/core"
	"chatz/internal/domain"
)

var (
	ErrNotConnected  = errors.New("session not connected")
	ErrAlreadyJoined = errors.New("already joined a room")
	ErrNotJoined     = errors.New("join a room first")
	ErrNameTaken     = errors.New("username already taken in this room")
)

// SessionManager enforces the connection lifecycle protocol: it is the
// only component that mutates the room registry, and it translates
// transport events into registry mutations and router fan-outs.
//
// Per session: Unjoined -> Joined -> Closed. A second join while Joined
// and a message while Unjoined are both rejected with an error; the
// session keeps its state either way.
type SessionManager struct {
	registry *core.Registry
	table    *SessionTable
	router   *Router
	policy   Policy
}

func NewSessionManager(registry *core.Registry, table *SessionTable, router *Router, policy Policy) *SessionManager {
	return &SessionManager{registry: registry, table: table, router: router, policy: policy}
}

// Connect registers a fresh transport endpoint in the Unjoined state.
func (m *SessionManager) Connect(sid core.SessionID, conn core.SignalConnection) {
	m.table.Bind(sid, conn)
}

// Join validates the request, adds the member to the registry, notifies
// the existing members and only then acknowledges the joiner. Rejections
// leave the registry untouched.
func (m *SessionManager) Join(sid core.SessionID, username, roomID string) error {
	sess, ok := m.table.View(sid)
	if !ok {
		return ErrNotConnected
	}
	if sess.State == StateJoined {
		return ErrAlreadyJoined
	}

	user, err := domain.NewUser(username)
	if err != nil {
		return err
	}
	room, err := domain.NewRoomID(roomID)
	if err != nil {
		return err
	}

	// The check-and-insert is atomic inside the registry, so two
	// connections racing for the same name cannot both win.
	if !m.registry.AddMember(room, user.Username) {
		return ErrNameTaken
	}
	if !m.table.SetJoined(sid, user, room) {
		// Session evicted between the lookup and the bind; hand the
		// name back so it does not leak in the registry.
		m.registry.RemoveMember(room, user.Username)
		return ErrNotConnected
	}

	res := m.router.Broadcast(room, PresenceEvent{Type: EventUserJoined, Username: user.Username}, sid)
	m.applyPolicy(room, res)
	m.router.Unicast(sid, JoinSuccessEvent{Type: EventJoinSuccess})

	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Str("room", string(room)).Str("username", user.Username).Msg("join")
	return nil
}

// Message fans msg out to every member of the payload's room, the sender
// included. The payload is trusted as submitted; the relay does not
// re-validate author or room against the session's binding.
func (m *SessionManager) Message(sid core.SessionID, msg domain.Message) error {
	sess, ok := m.table.View(sid)
	if !ok {
		return ErrNotConnected
	}
	if sess.State != StateJoined {
		return ErrNotJoined
	}

	res := m.router.Broadcast(msg.RoomID, MessageEvent{Type: EventReceiveMessage, Message: msg}, "")
	m.applyPolicy(msg.RoomID, res)
	return nil
}

// Disconnect reclaims the session's registry state and notifies the
// remaining members. Safe to call more than once; only the first call
// does anything.
func (m *SessionManager) Disconnect(sid core.SessionID) {
	sess, ok := m.table.Remove(sid)
	if !ok {
		return
	}
	if sess.State != StateJoined {
		return
	}

	m.registry.RemoveMember(sess.Room, sess.User.Username)
	res := m.router.Broadcast(sess.Room, PresenceEvent{Type: EventUserLeft, Username: sess.User.Username}, sid)
	m.applyPolicy(sess.Room, res)

	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Str("room", string(sess.Room)).Msg("disconnected")
}

func (m *SessionManager) applyPolicy(room domain.RoomID, res core.PublishResult) {
	if m.policy == nil {
		return
	}
	for _, sid := range res.Dropped {
		switch m.policy.OnDeliveryFailure(room, sid) {
		case KickSession:
			if sess, ok := m.table.View(sid); ok {
				m.Disconnect(sid)
				sess.Conn.Close()
			}
		case NoAction, DropEvent:
		}
	}
}
