package sse

import (
	"encoding/json"
	"testing"
)

func TestHub_PublishProjectUpdate(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{ID: "c1", UserID: "user_1", Events: make(chan Event, 1)}
	hub.Register(client)

	hub.PublishProjectUpdate("proj_1", "rev_up")

	event := <-client.Events
	if event.EventType != "project_update" {
		t.Fatalf("Expected project_update, got %s", event.EventType)
	}
	var data map[string]string
	if err := json.Unmarshal([]byte(event.Data), &data); err != nil {
		t.Fatalf("Event data is not JSON: %v", err)
	}
	if data["project_id"] != "proj_1" || data["action"] != "rev_up" {
		t.Errorf("Unexpected data %v", data)
	}
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{ID: "c1", Events: make(chan Event, 1)}
	hub.Register(client)

	hub.PublishProjectUpdate("p", "a")
	hub.PublishProjectUpdate("p", "b")

	if len(client.Events) != 1 {
		t.Fatalf("Expected 1 buffered event, got %d", len(client.Events))
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub(nil)
	client := &Client{ID: "c1", Events: make(chan Event, 1)}
	hub.Register(client)
	hub.Unregister("c1")
	hub.Unregister("c1")

	if hub.ClientCount() != 0 {
		t.Fatalf("Expected no clients, got %d", hub.ClientCount())
	}
	if _, ok := <-client.Events; ok {
		t.Fatal("Expected closed channel")
	}
}
