package ws

import (
	"encoding/json"
	"net/http"

	"log/slog"

	"github.com/phamchuong05/mangmaytinh/internal/chat"
)

// Handler bridges websocket connections and the chat coordinator: it reads
// frames on the connection goroutine, runs auth there, and enqueues
// everything else as typed events.
type Handler struct {
	log  *slog.Logger
	chat *chat.Server
	auth *chat.AuthGateway
}

func NewHandler(logger *slog.Logger, srv *chat.Server, gateway *chat.AuthGateway) *Handler {
	return &Handler{log: logger, chat: srv, auth: gateway}
}

// ServeWS handles one client connection for its whole lifetime. The closing
// Disconnect always runs, so leave side effects are never skipped.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	conn, err := Accept(w, r)
	if err != nil {
		h.log.Error("ws.accept", "err", err)
		return
	}

	c := NewConn(conn)
	sess := h.chat.Connect(c)
	go c.WriteLoop(ctx)
	h.log.Info("ws.connected", "session", sess.ID())

	for {
		payload, ok := c.Read(ctx)
		if !ok {
			break
		}
		h.dispatch(r, sess, c, payload)
	}

	h.chat.Disconnect(sess)
	_ = c.Close()
}

func (h *Handler) dispatch(r *http.Request, sess *chat.Session, c *Conn, payload []byte) {
	var env chat.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		h.log.Debug("ws.frame_malformed", "session", sess.ID(), "err", err)
		return
	}

	switch env.Event {
	case chat.EventRegister:
		var req chat.RegisterRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.log.Debug("ws.register_malformed", "session", sess.ID(), "err", err)
			return
		}
		if err := h.auth.Register(r.Context(), req); err != nil {
			c.Send(chat.EventRegisterStatus, chat.RegisterStatus{Success: false, Message: err.Error()})
			return
		}
		c.Send(chat.EventRegisterStatus, chat.RegisterStatus{Success: true, Message: "registered successfully"})

	case chat.EventLogin:
		var req chat.LoginRequest
		if err := json.Unmarshal(env.Data, &req); err != nil {
			h.log.Debug("ws.login_malformed", "session", sess.ID(), "err", err)
			return
		}
		u, err := h.auth.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			c.Send(chat.EventLoginStatus, chat.LoginStatus{Success: false, Message: err.Error()})
			return
		}
		h.chat.BindLogin(sess, u.Username, u.AvatarPath)

	case chat.EventRoomList:
		h.chat.RequestRoomList(sess)

	case chat.EventJoinRoom:
		var name string
		// Absent or null payload means back to the lobby.
		_ = json.Unmarshal(env.Data, &name)
		h.chat.JoinRoom(sess, name)

	case chat.EventChatMessage:
		var text string
		if err := json.Unmarshal(env.Data, &text); err != nil {
			h.log.Debug("ws.chat_malformed", "session", sess.ID(), "err", err)
			return
		}
		h.chat.PostChat(sess, text)

	default:
		h.log.Debug("ws.event_unknown", "session", sess.ID(), "event", env.Event)
	}
}
