package socket

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func receive(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("bad message: %v", err)
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

func TestHub_SendToUserReachesEveryTab(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	tab1 := &Client{ID: "a", UserID: "u1", Hub: hub, Send: make(chan []byte, 4)}
	tab2 := &Client{ID: "b", UserID: "u1", Hub: hub, Send: make(chan []byte, 4)}
	other := &Client{ID: "c", UserID: "u2", Hub: hub, Send: make(chan []byte, 4)}
	hub.register <- tab1
	hub.register <- tab2
	hub.register <- other

	NewBroadcaster(hub).SendToast("u1", "success", "Project created successfully")

	for _, c := range []*Client{tab1, tab2} {
		msg := receive(t, c)
		if msg.Type != MessageToast || msg.Payload["message"] != "Project created successfully" {
			t.Fatalf("unexpected message: %+v", msg)
		}
	}
	select {
	case <-other.Send:
		t.Fatal("other users must not receive the toast")
	case <-time.After(50 * time.Millisecond):
	}

	if !hub.IsUserOnline("u1") || hub.ConnectedClients() != 3 {
		t.Fatalf("unexpected hub state: %d clients", hub.ConnectedClients())
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{ID: "a", UserID: "u1", Hub: hub, Send: make(chan []byte, 1)}
	hub.register <- c
	hub.unregister <- c

	select {
	case _, ok := <-c.Send:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel was not closed")
	}
	if hub.IsUserOnline("u1") {
		t.Fatal("user should be offline")
	}
}

func TestBroadcaster_ListReloaded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{ID: "a", UserID: "u1", Hub: hub, Send: make(chan []byte, 1)}
	hub.register <- c

	NewBroadcaster(hub).ListReloaded("u1", "tasks", "5")
	msg := receive(t, c)
	if msg.Type != MessageListReloaded || msg.Payload["list"] != "tasks" || msg.Payload["scope"] != "5" {
		t.Fatalf("unexpected message: %+v", msg)
	}
}

func TestHub_UnregisterAfterStopDoesNotBlock(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub()
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	c := &Client{ID: "a", UserID: "u1", Hub: hub, Send: make(chan []byte, 1)}
	if !hub.Register(c) {
		t.Fatal("register on a running hub failed")
	}
	cancel()
	<-stopped

	returned := make(chan struct{})
	go func() {
		hub.Unregister(c)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Unregister blocked after the hub stopped")
	}

	if hub.Register(&Client{ID: "b", UserID: "u2", Hub: hub, Send: make(chan []byte, 1)}) {
		t.Fatal("register after stop should report false")
	}
}

func TestHub_StalledClientIsDroppedWithoutBlocking(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub()
	go hub.Run(ctx)

	c := &Client{ID: "a", UserID: "u1", Hub: hub, Send: make(chan []byte)}
	hub.Register(c)
	hub.SendToUser("u1", MessageToast, map[string]interface{}{"message": "hi"})

	deadline := time.Now().Add(time.Second)
	for hub.IsUserOnline("u1") {
		if time.Now().After(deadline) {
			t.Fatal("stalled client was not dropped")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
