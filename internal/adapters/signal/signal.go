package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"chatz/internal/app"
	"chatz/internal/config"
	"chatz/internal/core"
	"chatz/internal/metrics"
)

var ErrBackpressure = errors.New("backpressure")

type ChatWSController struct {
	Sessions *app.SessionManager
	cfg      *config.Config
	limiter  *SessionRateLimiter
	upgrader websocket.Upgrader
}

func NewChatWSController(cfg *config.Config, sessions *app.SessionManager) *ChatWSController {
	ctl := &ChatWSController{
		Sessions: sessions,
		cfg:      cfg,
		limiter:  NewSessionRateLimiter(cfg.RateLimit.Messages, cfg.RateLimit.Interval),
	}
	ctl.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), cfg.AllowedOrigins)
		},
	}
	return ctl
}

// originAllowed accepts requests without an Origin header (non-browser
// clients) and any origin when the list contains "*".
func originAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}

type WsSignalConn struct {
	conn *websocket.Conn
	send chan core.Frame

	mu     sync.RWMutex
	closed bool
}

func (c *WsSignalConn) TrySend(f core.Frame) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- f:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *WsSignalConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

func (ctl *ChatWSController) HandleSignal(ctx context.Context, c *gin.Context) {
	token := c.GetString("client_token")
	// The cookie token only labels the browser. Two tabs (or a reconnect
	// racing a lingering socket) must not share relay state, so every
	// websocket gets its own session id.
	sid := core.SessionID(token + ":" + uuid.NewString())
	log.Info().Str("module", "signal").Str("token", token).Str("sid", string(sid)).Msg("new WS connection")

	ws, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws upgrade")
		return
	}

	conn := &WsSignalConn{
		conn: ws,
		send: make(chan core.Frame, ctl.cfg.SendBuffer),
	}

	ctl.Sessions.Connect(sid, conn)
	metrics.Connections.Inc()

	ctx, cancel := context.WithCancel(ctx)
	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, cancel, sid, conn)
}
