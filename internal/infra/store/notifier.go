package store

import (
	"sync"

	"storefront/internal/domain/repository"
)

type subscription struct {
	key string
	fn  func(repository.StoreChange)
}

// notifier fans store changes out to subscribers.
type notifier struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]subscription
}

func newNotifier() *notifier {
	return &notifier{subs: make(map[int]subscription)}
}

// Subscribe registers fn for key, or for every key when key is empty.
func (n *notifier) Subscribe(key string, fn func(repository.StoreChange)) func() {
	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = subscription{key: key, fn: fn}
	n.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
		})
	}
}

func (n *notifier) publish(change repository.StoreChange) {
	n.mu.RLock()
	targets := make([]func(repository.StoreChange), 0, len(n.subs))
	for _, sub := range n.subs {
		if sub.key == "" || sub.key == change.Key {
			targets = append(targets, sub.fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
}
