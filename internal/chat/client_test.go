package chat

import (
	"io"
	"sync"

	"log/slog"
)

// fakeClient records everything sent to a session.
type fakeClient struct {
	mu    sync.Mutex
	sends []sent
}

type sent struct {
	event string
	data  any
}

func (f *fakeClient) Send(event string, data any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = append(f.sends, sent{event: event, data: data})
}

func (f *fakeClient) all() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sent, len(f.sends))
	copy(out, f.sends)
	return out
}

// messages returns the chat-message payloads received so far.
func (f *fakeClient) messages() []Message {
	var out []Message
	for _, s := range f.all() {
		if s.event == EventChatMessage {
			out = append(out, s.data.(Message))
		}
	}
	return out
}

func (f *fakeClient) count(event string) int {
	n := 0
	for _, s := range f.all() {
		if s.event == event {
			n++
		}
	}
	return n
}

func (f *fakeClient) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sends = nil
}

func newTestSession(username string) (*Session, *fakeClient) {
	fc := &fakeClient{}
	sess := newSession(fc)
	sess.username = username
	sess.avatar = "/uploads/" + username + ".png"
	return sess, fc
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
