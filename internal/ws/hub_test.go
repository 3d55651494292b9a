package ws

import (
	"encoding/json"
	"testing"
	"time"
)

// mockClient creates a client for testing without a real WebSocket connection
func mockClient(hub *Hub) *Client {
	return &Client{
		hub:  hub,
		send: make(chan []byte, 256),
	}
}

func TestHubRegistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	// Register client
	hub.register <- client

	// Give hub time to process
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if !hub.clients[client] {
		t.Fatal("client not registered")
	}
}

func TestHubUnregistration(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := mockClient(hub)

	// Register client
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	// Unregister client
	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if hub.clients[client] {
		t.Fatal("client still registered after unregister")
	}

	// Send channel should be closed
	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected send channel to be closed")
		}
	default:
		t.Fatal("send channel not closed")
	}
}

func TestBroadcastToAllClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client1 := mockClient(hub)
	client2 := mockClient(hub)
	client3 := mockClient(hub)

	// Register all clients
	hub.register <- client1
	hub.register <- client2
	hub.register <- client3
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast("order.created", map[string]string{"order_id": "test-123"})

	// All three clients should receive the message
	clients := []*Client{client1, client2, client3}
	for i, client := range clients {
		select {
		case msg := <-client.send:
			var received Event
			if err := json.Unmarshal(msg, &received); err != nil {
				t.Fatalf("client%d: failed to unmarshal: %v", i+1, err)
			}
			if received.Type != "order.created" {
				t.Errorf("client%d: expected type 'order.created', got '%s'", i+1, received.Type)
			}
			var payload map[string]string
			if err := json.Unmarshal(received.Payload, &payload); err != nil {
				t.Fatalf("client%d: failed to unmarshal payload: %v", i+1, err)
			}
			if payload["order_id"] != "test-123" {
				t.Errorf("client%d: unexpected payload: %s", i+1, received.Payload)
			}
		case <-time.After(100 * time.Millisecond):
			t.Fatalf("client%d did not receive message", i+1)
		}
	}
}

func TestBroadcastWithNoClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Should not block or panic with nobody connected
	hub.Broadcast("order.updated", map[string]string{"status": "ready"})
	time.Sleep(10 * time.Millisecond)
}

func TestSlowClientDropped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A client whose buffer is already full
	slow := &Client{hub: hub, send: make(chan []byte)}
	fast := mockClient(hub)

	hub.register <- slow
	hub.register <- fast
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast("order.updated", map[string]string{"status": "preparing"})

	// Fast client still gets the event
	select {
	case <-fast.send:
	case <-time.After(100 * time.Millisecond):
		t.Fatal("fast client did not receive message")
	}

	time.Sleep(10 * time.Millisecond)
	hub.mu.RLock()
	defer hub.mu.RUnlock()
	if hub.clients[slow] {
		t.Fatal("slow client should have been dropped")
	}
}
