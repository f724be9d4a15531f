package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"doneapp/internal/core/port"
)

// Center keeps the pending alert requests and fires calendar alerts when
// their time arrives. Region alerts have no fire time of their own; they stay
// pending until removed.
type Center struct {
	mu         sync.Mutex
	pending    map[string]port.AlertRequest
	authorized bool
	sink       port.AlertSink
	now        func() time.Time
}

func NewCenter(sink port.AlertSink, authorized bool) *Center {
	return NewCenterWithClock(sink, authorized, time.Now)
}

func NewCenterWithClock(sink port.AlertSink, authorized bool, clock func() time.Time) *Center {
	return &Center{
		pending:    map[string]port.AlertRequest{},
		authorized: authorized,
		sink:       sink,
		now:        clock,
	}
}

// Add registers an alert request, replacing any pending request with the same
// ID. Without permission the request is dropped silently.
func (c *Center) Add(ctx context.Context, req port.AlertRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.authorized {
		slog.Debug("Alert permission not granted, dropping request", "id", req.ID)
		return nil
	}

	c.pending[req.ID] = req

	return nil
}

func (c *Center) Remove(ids ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range ids {
		delete(c.pending, id)
	}
}

func (c *Center) Pending() []port.AlertRequest {
	c.mu.Lock()
	defer c.mu.Unlock()

	requests := make([]port.AlertRequest, 0, len(c.pending))
	for _, req := range c.pending {
		requests = append(requests, req)
	}

	return requests
}

func (c *Center) Authorized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.authorized
}

// SetAuthorized flips the permission state. Alerts added while permission was
// denied are gone; callers reschedule after granting.
func (c *Center) SetAuthorized(authorized bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.authorized = authorized
}

// Run delivers due calendar alerts every interval until the context ends.
func (c *Center) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick(ctx)
		}
	}
}

// Tick fires every calendar alert whose time has passed. Fired alerts are
// one-shot and leave the pending set.
func (c *Center) Tick(ctx context.Context) {
	now := c.now()

	c.mu.Lock()
	var due []port.AlertRequest
	for id, req := range c.pending {
		if req.FireAt != nil && !req.FireAt.After(now) {
			due = append(due, req)
			delete(c.pending, id)
		}
	}
	c.mu.Unlock()

	for _, req := range due {
		c.sink.Deliver(ctx, req)
	}
}
