// Package session holds the observable session state that replaces the
// provider-owned auth listener: whoever owns the cell publishes session
// changes, and subscribers see the single source of truth.
package session

import (
	"sync"
)

type Session struct {
	UserID int
	UID    string
	Email  string
	Token  string
}

// Authenticated reports whether the session identifies a signed-in user.
func (s *Session) Authenticated() bool {
	return s != nil && s.UID != ""
}

// Cell is a small state cell: Get returns the current session, Set replaces
// it and notifies every subscriber. A nil session means signed out.
type Cell struct {
	mu      sync.RWMutex
	current *Session
	subs    map[int]chan *Session
	nextID  int
	closed  bool
}

func NewCell() *Cell {
	return &Cell{
		subs: make(map[int]chan *Session),
	}
}

func (c *Cell) Get() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.current
}

func (c *Cell) Set(s *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.current = s

	for _, ch := range c.subs {
		// Drop the stale value if the subscriber has not drained yet.
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Subscribe registers a listener for session changes. The returned cancel
// function detaches the listener; it is safe to call more than once.
func (c *Cell) Subscribe() (<-chan *Session, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++

	ch := make(chan *Session, 1)
	c.subs[id] = ch

	cancel := func() {
		c.mu.Lock()
		defer c.mu.Unlock()

		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}

	return ch, cancel
}

// Close tears down all subscriptions. Further Sets are ignored.
func (c *Cell) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.closed = true

	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}
