package service

import (
	"sync"

	"github.com/altech-app/cloudsync/models"
)

// notifier fans sync events out to subscribed listeners. Listener panics are
// not recovered; listeners are expected to be short and non-blocking since
// they run on the sync goroutine.
type notifier struct {
	mu        sync.Mutex
	nextID    int
	listeners map[int]func(models.SyncEvent)
}

func newNotifier() *notifier {
	return &notifier{listeners: make(map[int]func(models.SyncEvent))}
}

// Subscribe registers fn and returns a handle that removes it. The handle is
// idempotent: the second and later calls find nothing to remove.
func (n *notifier) Subscribe(fn func(models.SyncEvent)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.listeners[id] = fn
	n.mu.Unlock()

	return func() {
		n.mu.Lock()
		delete(n.listeners, id)
		n.mu.Unlock()
	}
}

// Notify delivers event to every listener registered at the time of the call.
func (n *notifier) Notify(event models.SyncEvent) {
	n.mu.Lock()
	fns := make([]func(models.SyncEvent), 0, len(n.listeners))
	for _, fn := range n.listeners {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(event)
	}
}
