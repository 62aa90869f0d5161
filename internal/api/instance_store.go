package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/terraincognita07/paycharts/internal/charts"
)

const janitorInterval = time.Minute

type instanceStore struct {
	mu        sync.Mutex
	instances map[string]*charts.Instance
	ttl       time.Duration
}

func newInstanceStore(ttl time.Duration) *instanceStore {
	return &instanceStore{
		instances: make(map[string]*charts.Instance),
		ttl:       ttl,
	}
}

func (store *instanceStore) add(instance *charts.Instance) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.instances[instance.ID()] = instance
}

func (store *instanceStore) get(id string) (*charts.Instance, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	instance, ok := store.instances[id]
	return instance, ok
}

// remove unmounts and forgets the instance. The unmount runs outside the store
// lock because it may wait on the instance's own mutex.
func (store *instanceStore) remove(id string) bool {
	store.mu.Lock()
	instance, ok := store.instances[id]
	delete(store.instances, id)
	store.mu.Unlock()

	if ok {
		instance.Unmount()
	}
	return ok
}

func (store *instanceStore) count() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.instances)
}

// sweep unmounts every instance idle for longer than the TTL.
func (store *instanceStore) sweep(now time.Time) []string {
	if store.ttl <= 0 {
		return nil
	}

	store.mu.Lock()
	expired := []*charts.Instance{}
	for id, instance := range store.instances {
		if now.Sub(instance.LastActive()) > store.ttl {
			expired = append(expired, instance)
			delete(store.instances, id)
		}
	}
	store.mu.Unlock()

	ids := make([]string, 0, len(expired))
	for _, instance := range expired {
		instance.Unmount()
		ids = append(ids, instance.ID())
	}
	return ids
}

func (store *instanceStore) start(ctx context.Context, interval time.Duration) {
	if store.ttl <= 0 {
		return
	}
	if interval <= 0 {
		interval = janitorInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if ids := store.sweep(now); len(ids) > 0 {
					log.Printf("unmounted %d idle chart instances", len(ids))
				}
			}
		}
	}()
}

func (store *instanceStore) closeAll() {
	store.mu.Lock()
	instances := store.instances
	store.instances = make(map[string]*charts.Instance)
	store.mu.Unlock()

	for _, instance := range instances {
		instance.Unmount()
	}
}
