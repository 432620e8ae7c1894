package core

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"chatz/internal/domain"
)

// RoomInfo is a read-only view for APIs (no member identities).
type RoomInfo struct {
	Name        domain.RoomID `json:"name"`
	MemberCount int           `json:"member_count"`
}

// Registry is the process-wide map from room id to member names.
// It is the sole source of truth for membership. Rooms are created on the
// first AddMember and deleted in the same critical section that empties
// them, so the map never holds a room with an empty member set.
type Registry struct {
	mu    sync.Mutex
	rooms map[domain.RoomID]map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[domain.RoomID]map[string]struct{})}
}

// ensure returns the member set for room, creating it if absent.
// Callers must hold r.mu.
func (r *Registry) ensure(room domain.RoomID) map[string]struct{} {
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[string]struct{})
		r.rooms[room] = members
	}
	return members
}

// AddMember inserts name into the room's member set, creating the room if
// needed. Returns false when the name was already present (set semantics,
// the re-add is a no-op).
func (r *Registry) AddMember(room domain.RoomID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := r.ensure(room)
	if _, ok := members[name]; ok {
		return false
	}
	members[name] = struct{}{}
	log.Info().Str("module", "core.registry").Str("room", string(room)).Str("name", name).Msg("member added")
	return true
}

// RemoveMember removes name from the room if present; when the set becomes
// empty the room entry is deleted in the same step. Unknown room or name
// is a no-op, not an error.
func (r *Registry) RemoveMember(room domain.RoomID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.rooms[room]
	if !ok {
		return
	}
	if _, ok := members[name]; !ok {
		return
	}
	delete(members, name)
	if len(members) == 0 {
		delete(r.rooms, room)
		log.Info().Str("module", "core.registry").Str("room", string(room)).Msg("room emptied and removed")
		return
	}
	log.Info().Str("module", "core.registry").Str("room", string(room)).Str("name", name).Msg("member removed")
}

// Members returns a sorted snapshot of the room's member names, empty when
// the room does not exist.
func (r *Registry) Members(room domain.RoomID) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := lo.Keys(r.rooms[room])
	sort.Strings(names)
	return names
}

func (r *Registry) MemberCount(room domain.RoomID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[room])
}

// Rooms returns a snapshot of all active rooms for the HTTP API.
func (r *Registry) Rooms() []RoomInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RoomInfo, 0, len(r.rooms))
	for name, members := range r.rooms {
		out = append(out, RoomInfo{Name: name, MemberCount: len(members)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len reports the number of active rooms.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}
