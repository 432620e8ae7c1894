package app

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"chatz/internal/core"
	"chatz/internal/domain"
	"chatz/internal/metrics"
)

// Router fans outbound events out to the members of a room. Delivery is
// fire-and-forget per recipient: an unreachable endpoint never fails the
// whole broadcast and never blocks the others.
type Router struct {
	table *SessionTable
}

func NewRouter(table *SessionTable) *Router {
	return &Router{table: table}
}

// Broadcast marshals v once and hands it to every endpoint bound to room,
// skipping exclude when non-empty.
func (r *Router) Broadcast(room domain.RoomID, v any, exclude core.SessionID) core.PublishResult {
	res := core.PublishResult{}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("broadcast marshal")
		return res
	}
	for _, peer := range r.table.Peers(room) {
		if peer.SID == exclude {
			continue
		}
		if err := peer.Conn.TrySend(b); err != nil {
			res.Dropped = append(res.Dropped, peer.SID)
			metrics.DroppedDeliveries.Inc()
			continue
		}
		res.SentTo++
	}
	log.Debug().Str("module", "app.router").Str("room", string(room)).Int("sent_to", res.SentTo).Int("dropped", len(res.Dropped)).Msg("broadcast result")
	return res
}

// Unicast sends v to a single session, dropping it on failure.
func (r *Router) Unicast(sid core.SessionID, v any) {
	s, ok := r.table.View(sid)
	if !ok {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Str("module", "app.router").Msg("unicast marshal")
		return
	}
	if err := s.Conn.TrySend(b); err != nil {
		metrics.DroppedDeliveries.Inc()
	}
}
