// Package reactive holds the change-notification primitive that stands in for
// implicit re-rendering: state owners call Notify after a mutation and view
// bindings Watch for it.
package reactive

import "sync"

// Notifier fans a change signal out to its watchers.
type Notifier struct {
	mu       sync.Mutex
	watchers map[uint64]func()
	nextID   uint64
}

// Watch registers fn and returns a func that cancels it.
func (n *Notifier) Watch(fn func()) (cancel func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.watchers == nil {
		n.watchers = make(map[uint64]func())
	}
	n.nextID++
	id := n.nextID
	n.watchers[id] = fn

	return func() {
		n.mu.Lock()
		delete(n.watchers, id)
		n.mu.Unlock()
	}
}

// Notify calls every watcher. Watchers run outside the lock so they may
// cancel themselves.
func (n *Notifier) Notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.watchers))
	for _, fn := range n.watchers {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Watchers reports how many watchers are registered.
func (n *Notifier) Watchers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.watchers)
}
