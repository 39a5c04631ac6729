package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"loan-calculator/domain"
	"loan-calculator/service"
)

const (
	wsReadLimit    = 4096
	wsWriteTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// CalculatorSocket streams re-rendered views for live slider changes. Without
// a session query parameter the connection owns a fresh calculator that is
// discarded on disconnect; with one, changes go to that stored session.
type CalculatorSocket struct {
	calculators *service.CalculatorService
	logger      *slog.Logger
}

func NewCalculatorSocket(calculators *service.CalculatorService, logger *slog.Logger) *CalculatorSocket {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalculatorSocket{calculators: calculators, logger: logger}
}

func (h *CalculatorSocket) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := r.URL.Query().Get("session")

	state := service.NewState()
	if sessionID != "" {
		var err error
		state, err = h.calculators.State(ctx, sessionID)
		if err != nil {
			writeError(w, r, err)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(wsReadLimit)
	h.logger.Debug("calculator socket connected", "remote", r.RemoteAddr, "session", sessionID)
	defer func() {
		h.logger.Debug("calculator socket disconnected", "remote", r.RemoteAddr)
		conn.Close()
	}()

	if err := h.write(conn, service.Render(state)); err != nil {
		return
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Warn("websocket read failed", "error", err)
			}
			return
		}

		var change domain.FieldChange
		if err := json.Unmarshal(msg, &change); err != nil {
			if err := h.write(conn, errorResponse{Error: "invalid message"}); err != nil {
				return
			}
			continue
		}

		var reply any
		if sessionID != "" {
			view, err := h.calculators.Update(ctx, sessionID, change)
			if err != nil {
				reply = errorResponse{Error: err.Error()}
			} else {
				reply = view
			}
		} else {
			next, err := service.Apply(state, change.Field, change.Value)
			if err != nil {
				reply = errorResponse{Error: err.Error()}
			} else {
				state = next
				reply = service.Render(state)
			}
		}

		if err := h.write(conn, reply); err != nil {
			return
		}
	}
}

func (h *CalculatorSocket) write(conn *websocket.Conn, v any) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(v); err != nil {
		h.logger.Warn("websocket write failed", "error", err)
		return err
	}
	return nil
}
