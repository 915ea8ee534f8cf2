package realtime

import (
	"errors"
	"sync"
	"testing"
)

// fakeConn records pushed payloads; it stands in for a websocket connection.
type fakeConn struct {
	mu       sync.Mutex
	payloads []interface{}
	fail     bool
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("write failed")
	}
	f.payloads = append(f.payloads, v)
	return nil
}

func (f *fakeConn) received() []interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]interface{}, len(f.payloads))
	copy(out, f.payloads)
	return out
}

func TestBroadcastRoomTargetsOnlySubscribers(t *testing.T) {
	hub := NewHub()

	connA := &fakeConn{}
	connB := &fakeConn{}
	clientA := hub.Register(connA)
	clientB := hub.Register(connB)

	// A watches room 42, B watches room 7.
	hub.Join(clientA, 42)
	hub.Join(clientB, 7)

	hub.BroadcastRoom(42, "hello 42")

	if got := connA.received(); len(got) != 1 || got[0] != "hello 42" {
		t.Errorf("client A received %v, want [hello 42]", got)
	}
	if got := connB.received(); len(got) != 0 {
		t.Errorf("client B received %v, want nothing", got)
	}
}

func TestBroadcastRoomSurvivesFailedWrite(t *testing.T) {
	hub := NewHub()

	bad := &fakeConn{fail: true}
	good := &fakeConn{}
	hub.Join(hub.Register(bad), 1)
	hub.Join(hub.Register(good), 1)

	hub.BroadcastRoom(1, "payload")

	if got := good.received(); len(got) != 1 {
		t.Errorf("healthy client received %d payloads, want 1", len(got))
	}
}

func TestPushUserChannel(t *testing.T) {
	hub := NewHub()

	conn := &fakeConn{}
	client := hub.Register(conn)
	hub.Subscribe(client, "user-1")

	if !hub.HasUser("user-1") {
		t.Fatalf("HasUser(user-1) = false after subscribe")
	}
	if hub.HasUser("user-2") {
		t.Fatalf("HasUser(user-2) = true, want false")
	}

	hub.PushUser("user-1", "ping")
	hub.PushUser("user-2", "nope")

	if got := conn.received(); len(got) != 1 || got[0] != "ping" {
		t.Errorf("received %v, want [ping]", got)
	}
}

func TestUnregisterDropsAllSubscriptions(t *testing.T) {
	hub := NewHub()

	conn := &fakeConn{}
	client := hub.Register(conn)
	hub.Join(client, 5)
	hub.Subscribe(client, "user-1")

	hub.Unregister(client)

	hub.BroadcastRoom(5, "after")
	hub.PushUser("user-1", "after")

	if got := conn.received(); len(got) != 0 {
		t.Errorf("received %v after unregister, want nothing", got)
	}
	if hub.HasUser("user-1") {
		t.Errorf("HasUser(user-1) = true after unregister")
	}
}

func TestResubscribeMovesUserChannel(t *testing.T) {
	hub := NewHub()

	conn := &fakeConn{}
	client := hub.Register(conn)
	hub.Subscribe(client, "user-1")
	hub.Subscribe(client, "user-2")

	if hub.HasUser("user-1") {
		t.Errorf("old channel still registered after resubscribe")
	}
	hub.PushUser("user-2", "ping")
	if got := conn.received(); len(got) != 1 {
		t.Errorf("received %d payloads on new channel, want 1", len(got))
	}
}
