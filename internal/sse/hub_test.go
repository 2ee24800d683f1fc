package sse

import "testing"

func TestHubBroadcastAndDrop(t *testing.T) {
	h := NewHub()
	fast := &Client{ID: "fast", Events: make(chan Event, 4)}
	full := &Client{ID: "full", Events: make(chan Event)} // no buffer, nobody reading
	h.Register(fast)
	h.Register(full)

	h.PublishLeadCreated("lead-1", "iPhone 14")
	h.PublishPickupCreated("pick-1", "iPhone 14", 17480)

	if got := len(fast.Events); got != 2 {
		t.Fatalf("fast client should have 2 events, got %d", got)
	}
	ev := <-fast.Events
	if ev.Type != "lead.created" {
		t.Fatalf("want lead.created first, got %s", ev.Type)
	}

	h.Unregister("full")
	h.Unregister("fast")
	if h.Count() != 0 {
		t.Fatalf("want 0 clients after unregister, got %d", h.Count())
	}
	// Broadcasting with no clients must not panic.
	h.PublishLeadCreated("lead-2", "XPS 13")
}
