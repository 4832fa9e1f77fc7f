package chat

import (
	"context"
	"log/slog"

	"github.com/phamchuong05/mangmaytinh/pkg/metrics"
)

// Server is the coordinator: one goroutine drains the event channel and
// applies every session, room, and registry mutation in arrival order. That
// gives each room a single total order of joins, leaves, and posts, and makes
// a room switch atomic from the client's point of view.
type Server struct {
	log   *slog.Logger
	rooms *Registry

	events   chan event
	sessions map[*Session]struct{}
}

func NewServer(logger *slog.Logger, rooms *Registry) *Server {
	return &Server{
		log:      logger,
		rooms:    rooms,
		events:   make(chan event, 256),
		sessions: map[*Session]struct{}{},
	}
}

// Run drains the event channel until ctx is cancelled. Call it in its own
// goroutine; everything else enqueues.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case e := <-s.events:
			s.handle(e)
		}
	}
}

// Connect registers a fresh session for a client sink.
func (s *Server) Connect(c Client) *Session {
	sess := newSession(c)
	s.events <- connectEvent{sess: sess}
	return sess
}

// BindLogin attaches a verified identity to the session. Credential checking
// already happened on the connection goroutine; the coordinator only binds
// and replies, so bcrypt work never stalls broadcasts.
func (s *Server) BindLogin(sess *Session, username, avatar string) {
	s.events <- loginBound{sess: sess, username: username, avatar: avatar}
}

// RequestRoomList replies with the current room names, to the requester only.
func (s *Server) RequestRoomList(sess *Session) {
	s.events <- roomListRequest{sess: sess}
}

// JoinRoom moves the session into the named room, leaving any previous one.
// An empty name returns the session to the lobby.
func (s *Server) JoinRoom(sess *Session, name string) {
	s.events <- joinRoom{sess: sess, name: name}
}

// PostChat broadcasts a chat message to the session's current room.
func (s *Server) PostChat(sess *Session, text string) {
	s.events <- chatPost{sess: sess, text: text}
}

// Disconnect runs the terminal transition for a session. The enqueue blocks
// rather than drops: leave side effects are guaranteed, not best-effort.
func (s *Server) Disconnect(sess *Session) {
	s.events <- disconnect{sess: sess}
}

func (s *Server) handle(e event) {
	switch ev := e.(type) {
	case connectEvent:
		s.sessions[ev.sess] = struct{}{}
		metrics.ActiveSessions.Inc()

	case loginBound:
		if ev.sess.authenticated() {
			// Username binds exactly once per connection.
			ev.sess.client.Send(EventLoginStatus, LoginStatus{Success: false, Message: "already logged in"})
			return
		}
		ev.sess.username = ev.username
		ev.sess.avatar = ev.avatar
		ev.sess.client.Send(EventLoginStatus, LoginStatus{Success: true, Username: ev.username})
		ev.sess.client.Send(EventRoomList, s.rooms.List())
		metrics.LoginsTotal.Inc()
		s.log.Info("session.login", "session", ev.sess.id, "user", ev.username)

	case roomListRequest:
		ev.sess.client.Send(EventRoomList, s.rooms.List())

	case joinRoom:
		s.handleJoin(ev.sess, ev.name)

	case chatPost:
		if !ev.sess.authenticated() || ev.sess.room == "" {
			// Out-of-state chat frames are dropped without a reply.
			s.log.Debug("chat.dropped", "session", ev.sess.id)
			return
		}
		rm := s.rooms.Lookup(ev.sess.room)
		if rm == nil {
			s.log.Warn("chat.room_missing", "session", ev.sess.id, "room", ev.sess.room)
			return
		}
		if _, err := rm.Post(ev.sess, ev.text); err != nil {
			s.log.Warn("chat.post", "session", ev.sess.id, "room", ev.sess.room, "err", err)
			return
		}
		metrics.MessagesTotal.Inc()

	case disconnect:
		if _, ok := s.sessions[ev.sess]; !ok {
			return
		}
		delete(s.sessions, ev.sess)
		s.leaveCurrent(ev.sess)
		metrics.ActiveSessions.Dec()
		s.log.Info("session.closed", "session", ev.sess.id)
	}
}

func (s *Server) handleJoin(sess *Session, name string) {
	if !sess.authenticated() {
		s.log.Debug("join.dropped", "session", sess.id)
		return
	}
	s.leaveCurrent(sess)
	if name == "" {
		// Back to the lobby, nothing to join.
		return
	}
	rm := s.rooms.GetOrCreate(name)
	history := rm.Join(sess)
	sess.room = name
	sess.client.Send(EventRoomJoined, RoomJoined{RoomName: name, History: history})
	metrics.Rooms.Set(float64(s.rooms.Len()))
	s.log.Info("room.joined", "room", name, "user", sess.username)
}

// leaveCurrent removes the session from its room, if any, with the leave
// broadcast. Room membership and sess.room change together.
func (s *Server) leaveCurrent(sess *Session) {
	if sess.room == "" {
		return
	}
	if rm := s.rooms.Lookup(sess.room); rm != nil {
		rm.Leave(sess)
	}
	sess.room = ""
}
