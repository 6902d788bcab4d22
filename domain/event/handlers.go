package event

import "sync"

// Handler Each kind of event has his own handler
// Based on the Chain of responsibility pattern
type Handler interface {
	Handle(event Event)
}

// Counter counts events per type, shared by handlers and read by the health endpoint.
type Counter struct {
	mu     sync.RWMutex
	counts map[Type]uint64
}

func NewCounter() *Counter {
	return &Counter{counts: make(map[Type]uint64)}
}

func (c *Counter) Increment(eventType Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[eventType]++
}

func (c *Counter) Get(eventType Type) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[eventType]
}
