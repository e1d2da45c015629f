package edterm

import (
	"errors"
	"sync"
)

// Handle identifies a live editor instance. Handles are never reused
// within a process: once destroyed, a handle stays invalid forever and
// operations through it degrade to no-ops and zero results instead of
// reaching a recycled instance.
type Handle uint64

// Errors returned by New.
var (
	// ErrNilEngine reports a New call without an engine.
	ErrNilEngine = errors.New("edterm: engine is nil")

	// ErrNilWindow reports a New call without a window to bind to.
	ErrNilWindow = errors.New("edterm: window is nil")
)

// handleTable maps live handles to their instances. It is safe for
// concurrent create and destroy; serializing calls into any single
// instance remains the host's responsibility.
type handleTable struct {
	mu   sync.RWMutex
	next Handle
	live map[Handle]*editor
}

var handles = &handleTable{live: make(map[Handle]*editor)}

// add registers an instance under a fresh handle.
func (t *handleTable) add(ed *editor) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.next++
	t.live[t.next] = ed
	return t.next
}

// get returns the instance for a handle, or nil if the handle is not
// live.
func (t *handleTable) get(h Handle) *editor {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.live[h]
}

// remove unregisters a handle and returns its instance, or nil if the
// handle was not live.
func (t *handleTable) remove(h Handle) *editor {
	t.mu.Lock()
	defer t.mu.Unlock()

	ed := t.live[h]
	delete(t.live, h)
	return ed
}

// count returns the number of live instances.
func (t *handleTable) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.live)
}
