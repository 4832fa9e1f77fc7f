package chat

import (
	"errors"
	"sync"
)

// ErrNotAMember is returned by Post when the session is not in the room.
// Defensive: the coordinator only posts on behalf of members.
var ErrNotAMember = errors.New("not a member of this room")

// Room is a named broadcast group. Members and history are guarded together
// by one mutex so a broadcast never sees a half-updated member set and no
// append to history is lost.
type Room struct {
	name  string
	limit int // history cap, 0 = unbounded

	mu      sync.RWMutex
	members map[*Session]struct{}
	history []Message
}

func newRoom(name string, limit int) *Room {
	return &Room{name: name, limit: limit, members: map[*Session]struct{}{}}
}

func (r *Room) Name() string { return r.name }

// Join adds the session and returns a snapshot of the history for replay.
// Every other member gets a joined status; the joiner does not.
func (r *Room) Join(s *Session) []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[s] = struct{}{}
	note := Message{Type: MessageStatus, Text: s.username + " joined"}
	for m := range r.members {
		if m != s {
			m.client.Send(EventChatMessage, note)
		}
	}
	snap := make([]Message, len(r.history))
	copy(snap, r.history)
	return snap
}

// Leave removes the session and tells the remaining members. Leaving a room
// you are not in is a no-op, so a double disconnect never broadcasts twice.
func (r *Room) Leave(s *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[s]; !ok {
		return false
	}
	delete(r.members, s)
	note := Message{Type: MessageStatus, Text: s.username + " left"}
	for m := range r.members {
		m.client.Send(EventChatMessage, note)
	}
	return true
}

// Post appends a chat message to the history and broadcasts it to every
// member, sender included, so the client renders its own messages through
// the same path as everyone else's.
func (r *Room) Post(s *Session, text string) (Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[s]; !ok {
		return Message{}, ErrNotAMember
	}
	msg := Message{Type: MessageChat, Sender: s.username, Avatar: s.avatar, Text: text}
	r.history = append(r.history, msg)
	if r.limit > 0 && len(r.history) > r.limit {
		r.history = r.history[len(r.history)-r.limit:]
	}
	for m := range r.members {
		m.client.Send(EventChatMessage, msg)
	}
	return msg, nil
}

// History returns a copy of the recorded messages in broadcast order.
func (r *Room) History() []Message {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snap := make([]Message, len(r.history))
	copy(snap, r.history)
	return snap
}

// Size returns the current member count.
func (r *Room) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}

func (r *Room) has(s *Session) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.members[s]
	return ok
}
