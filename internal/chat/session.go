package chat

import "github.com/google/uuid"

// Client is the outbound side of a connection. Send must not block; the
// websocket implementation queues onto a buffered channel and drops when the
// peer cannot keep up.
type Client interface {
	Send(event string, data any)
}

// Session is the server-side state of one live connection. All fields except
// the immutable id and client are owned by the coordinator loop and must not
// be touched from other goroutines.
type Session struct {
	id     string
	client Client

	username string // set once by a successful login, empty before
	avatar   string
	room     string // current room name, empty in the lobby
}

func newSession(c Client) *Session {
	return &Session{id: uuid.NewString(), client: c}
}

// ID returns the opaque connection identifier.
func (s *Session) ID() string { return s.id }

func (s *Session) authenticated() bool { return s.username != "" }
