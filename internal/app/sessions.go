package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"chatz/internal/core"
	"chatz/internal/domain"
)

type SessionState int

const (
	StateUnjoined SessionState = iota
	StateJoined
	StateClosed
)

// Session is the per-connection state record: identity, bound room and
// lifecycle state. Fields change only through SessionTable transitions.
type Session struct {
	SID   core.SessionID
	Conn  core.SignalConnection
	User  *domain.User
	Room  domain.RoomID
	State SessionState
}

type peerSnap struct {
	SID  core.SessionID
	Conn core.SignalConnection
}

// SessionTable tracks every connected endpoint and which room it is bound
// to. The Broadcast Router reads it; only SessionManager transitions
// mutate it.
type SessionTable struct {
	mu    sync.RWMutex
	bySID map[core.SessionID]*Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{bySID: make(map[core.SessionID]*Session)}
}

// Bind registers a new transport endpoint in the Unjoined state.
func (t *SessionTable) Bind(sid core.SessionID, conn core.SignalConnection) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bySID[sid] = &Session{SID: sid, Conn: conn, State: StateUnjoined}
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("bound session")
}

// View returns a value copy of the session record.
func (t *SessionTable) View(sid core.SessionID) (Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.bySID[sid]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// SetJoined binds identity and room on a successful join.
func (t *SessionTable) SetJoined(sid core.SessionID, user *domain.User, room domain.RoomID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.bySID[sid]
	if !ok {
		return false
	}
	s.User = user
	s.Room = room
	s.State = StateJoined
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Str("room", string(room)).Str("username", user.Username).Msg("session joined")
	return true
}

// Remove marks the session Closed, drops it from the table and returns its
// final view. A removed session processes no further events.
func (t *SessionTable) Remove(sid core.SessionID) (Session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.bySID[sid]
	if !ok {
		return Session{}, false
	}
	delete(t.bySID, sid)
	snap := *s
	s.State = StateClosed
	log.Info().Str("module", "app.sessions").Str("sid", string(sid)).Msg("session closed")
	return snap, true
}

// Peers snapshots the endpoints currently bound to room.
func (t *SessionTable) Peers(room domain.RoomID) []peerSnap {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]peerSnap, 0, len(t.bySID))
	for sid, s := range t.bySID {
		if s.State == StateJoined && s.Room == room {
			out = append(out, peerSnap{SID: sid, Conn: s.Conn})
		}
	}
	return out
}

func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.bySID)
}
