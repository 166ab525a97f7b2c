package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight deduplicates concurrent calls for the same key.
//
// A finished call is unregistered before its waiters are released, so a caller
// arriving after completion always starts a new execution.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	wg  sync.WaitGroup
	val any
	err error
}

// Do runs fn once per key among concurrent callers. shared reports whether the
// result came from another caller's execution.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (val any, err error, shared bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}

	if c, ok := g.calls[key]; ok {
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := g.register(key)
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err, false
}

// DoFresh always runs fn, taking over the key from any pending call so later
// Do callers join this execution. The superseded call keeps serving its own waiters.
func (g *SingleFlight) DoFresh(key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}
	c := g.register(key)
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err
}

// Pending reports whether a call is registered for key.
func (g *SingleFlight) Pending(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, ok := g.calls[key]
	return ok
}

// register must be called with g.mu held.
func (g *SingleFlight) register(key string) *call {
	c := &call{}
	c.wg.Add(1)
	g.calls[key] = c
	return c
}

func (g *SingleFlight) run(key string, c *call, fn func() (any, error)) {
	defer func() {
		if r := recover(); r != nil {
			c.val = nil
			c.err = fmt.Errorf("singleflight %q panicked: %v", key, r)
		}

		g.mu.Lock()
		if g.calls[key] == c {
			delete(g.calls, key)
		}
		g.mu.Unlock()

		c.wg.Done()
	}()

	c.val, c.err = fn()
}
