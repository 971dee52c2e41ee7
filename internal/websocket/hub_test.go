package websocket

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
)

func testHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// testClient registers a bare client without a network connection; the
// send channel stands in for the wire.
func testClient(h *Hub, householdID int64) *Client {
	c := &Client{hub: h, householdID: householdID, send: make(chan []byte, sendBufferSize)}
	h.register(c)
	return c
}

func TestBroadcastScopedToHousehold(t *testing.T) {
	hub := testHub()
	home := testClient(hub, 1)
	other := testClient(hub, 2)

	hub.Broadcast(Event{Type: EventTaskCompleted, TaskID: 42, HouseholdID: 1})

	select {
	case data := <-home.send:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != EventTaskCompleted || ev.TaskID != 42 || ev.HouseholdID != 1 {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("same-household client received nothing")
	}

	select {
	case <-other.send:
		t.Error("other household received the event")
	default:
	}
}

func TestBroadcastSkipsFullClients(t *testing.T) {
	hub := testHub()
	c := testClient(hub, 1)

	// Fill the buffer, then broadcast once more; it must not block.
	for i := 0; i < sendBufferSize; i++ {
		c.send <- []byte("x")
	}
	hub.Broadcast(Event{Type: EventTaskCreated, TaskID: 1, HouseholdID: 1})

	if n := len(c.send); n != sendBufferSize {
		t.Errorf("buffered = %d, want %d", n, sendBufferSize)
	}
}

func TestRegisterUnregister(t *testing.T) {
	hub := testHub()
	c := testClient(hub, 1)
	if n := hub.ClientCount(); n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}

	hub.unregister(c)
	if n := hub.ClientCount(); n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
	if _, ok := <-c.send; ok {
		t.Error("send channel still open after unregister")
	}

	// Unregistering twice is harmless
	hub.unregister(c)
}
