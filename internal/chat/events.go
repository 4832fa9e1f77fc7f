package chat

import "encoding/json"

// Inbound event names.
const (
	EventRegister    = "register"
	EventLogin       = "login"
	EventRoomList    = "room_list"
	EventJoinRoom    = "join_room"
	EventChatMessage = "chat message"
)

// Outbound event names. EventRoomList and EventChatMessage are used in both
// directions.
const (
	EventRegisterStatus = "register_status"
	EventLoginStatus    = "login_status"
	EventRoomJoined     = "room_joined"
)

// Envelope is the wire frame: one event name plus its JSON payload.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	AvatarFile string `json:"avatarFile,omitempty"` // base64-encoded image bytes
	FileName   string `json:"fileName,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterStatus struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LoginStatus struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
}

type RoomJoined struct {
	RoomName string    `json:"roomName"`
	History  []Message `json:"history"`
}

// Message kinds.
const (
	MessageChat   = "chat"
	MessageStatus = "status"
)

// Message is a single room message. Status messages carry no sender or
// avatar; they are broadcast but never recorded in room history.
type Message struct {
	Type   string `json:"type"`
	Sender string `json:"sender,omitempty"`
	Avatar string `json:"avatar,omitempty"`
	Text   string `json:"text"`
}

// event is the closed set of inbound coordinator events. Connection
// goroutines enqueue them; the Server.Run loop applies them one at a time,
// which serializes every mutation of sessions, rooms, and the registry.
type event interface{ isEvent() }

type connectEvent struct{ sess *Session }

// loginBound is enqueued after the AuthGateway has verified credentials on
// the connection goroutine. The coordinator binds the identity and replies.
type loginBound struct {
	sess     *Session
	username string
	avatar   string
}

type roomListRequest struct{ sess *Session }

type joinRoom struct {
	sess *Session
	name string // empty means return to the lobby
}

type chatPost struct {
	sess *Session
	text string
}

type disconnect struct{ sess *Session }

func (connectEvent) isEvent()    {}
func (loginBound) isEvent()      {}
func (roomListRequest) isEvent() {}
func (joinRoom) isEvent()        {}
func (chatPost) isEvent()        {}
func (disconnect) isEvent()      {}
