package signal

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"chatz/internal/app"
	"chatz/internal/core"
	"chatz/internal/domain"
	"chatz/internal/metrics"
)

var validate = validator.New()

func (ctl *ChatWSController) sendError(c *WsSignalConn, msg string) {
	ctl.sendJSON(c, app.ErrorEvent{Type: app.EventError, Error: msg})
}

func (ctl *ChatWSController) handleJoinRoom(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	type joinPayload struct {
		Type     string `json:"type"`
		Username string `json:"username" validate:"required"`
		RoomID   string `json:"roomId" validate:"required"`
	}
	var p joinPayload
	if err := json.Unmarshal(data, &p); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad join payload")
		ctl.sendError(conn, "bad_payload")
		return
	}
	if err := validate.Struct(p); err != nil {
		ctl.sendError(conn, "username and roomId are required")
		return
	}

	log.Info().Str("module", "signal").Str("sid", string(sid)).Str("room", p.RoomID).Msg("joinRoom")
	if err := ctl.Sessions.Join(sid, p.Username, p.RoomID); err != nil {
		ctl.sendError(conn, err.Error())
		return
	}
}

func (ctl *ChatWSController) handleSendMessage(
	sid core.SessionID,
	conn *WsSignalConn,
	data []byte,
) {
	if !ctl.limiter.Allow(sid) {
		ctl.sendError(conn, "rate limit exceeded")
		return
	}

	var msg domain.Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("bad message payload")
		ctl.sendError(conn, "bad_payload")
		return
	}

	if err := ctl.Sessions.Message(sid, msg); err != nil {
		ctl.sendError(conn, err.Error())
		return
	}
	metrics.Messages.Inc()
}
