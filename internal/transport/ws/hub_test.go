package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestHubBroadcastsToSurveyWatchers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	watcher := &Connection{SurveyID: "s1", OwnerID: "o1", Send: make(chan []byte, 1), Hub: hub}
	other := &Connection{SurveyID: "s2", OwnerID: "o2", Send: make(chan []byte, 1), Hub: hub}
	hub.Register(watcher)
	hub.Register(other)

	hub.BroadcastToWatchers("s1", string(MsgResponseReceived), map[string]string{"responseId": "r1"})

	select {
	case data := <-watcher.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal broadcast: %v", err)
		}
		if msg.Type != MsgResponseReceived {
			t.Fatalf("expected %s, got %s", MsgResponseReceived, msg.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("watcher did not receive broadcast")
	}

	select {
	case <-other.Send:
		t.Fatal("watcher of another survey received the broadcast")
	default:
	}

	hub.Unregister(watcher)
	select {
	case _, ok := <-watcher.Send:
		if ok {
			t.Fatal("expected send channel closed after unregister")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after unregister")
	}
}

func TestHubStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	hub := NewHub()

	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("hub did not stop on context cancellation")
	}
}
