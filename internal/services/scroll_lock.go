package services

import "sync"

// ScrollLock is a reference-counted claim on a host page's scrolling. The page
// stays locked while at least one holder remains.
type ScrollLock struct {
	mu       sync.Mutex
	holders  int
	onChange func(locked bool)
}

func NewScrollLock(onChange func(locked bool)) *ScrollLock {
	return &ScrollLock{onChange: onChange}
}

// Acquire takes one hold and returns its release function. Calling release more
// than once has no further effect.
func (lock *ScrollLock) Acquire() func() {
	lock.mu.Lock()
	lock.holders++
	becameLocked := lock.holders == 1
	callback := lock.onChange
	lock.mu.Unlock()

	if becameLocked && callback != nil {
		callback(true)
	}

	var once sync.Once
	return func() {
		once.Do(lock.release)
	}
}

func (lock *ScrollLock) release() {
	lock.mu.Lock()
	if lock.holders == 0 {
		lock.mu.Unlock()
		return
	}
	lock.holders--
	becameUnlocked := lock.holders == 0
	callback := lock.onChange
	lock.mu.Unlock()

	if becameUnlocked && callback != nil {
		callback(false)
	}
}

func (lock *ScrollLock) Locked() bool {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.holders > 0
}

func (lock *ScrollLock) Holders() int {
	lock.mu.Lock()
	defer lock.mu.Unlock()
	return lock.holders
}

// ScrollLocks hands out one ScrollLock per host page id. A page's entry lives
// while at least one chart instance is attached to it.
type ScrollLocks struct {
	mu    sync.Mutex
	pages map[string]*pageLock
}

type pageLock struct {
	lock     *ScrollLock
	attached int
}

func NewScrollLocks() *ScrollLocks {
	return &ScrollLocks{pages: map[string]*pageLock{}}
}

// Attach returns the page's lock and a detach function. Once every attached
// caller has detached the entry is dropped, so a later Attach for the same page
// starts from an unlocked lock. Calling detach more than once has no further
// effect.
func (locks *ScrollLocks) Attach(pageID string) (*ScrollLock, func()) {
	locks.mu.Lock()
	defer locks.mu.Unlock()

	entry, ok := locks.pages[pageID]
	if !ok {
		entry = &pageLock{lock: NewScrollLock(nil)}
		locks.pages[pageID] = entry
	}
	entry.attached++

	var once sync.Once
	return entry.lock, func() {
		once.Do(func() { locks.detach(pageID, entry) })
	}
}

func (locks *ScrollLocks) detach(pageID string, entry *pageLock) {
	locks.mu.Lock()
	defer locks.mu.Unlock()

	entry.attached--
	if entry.attached > 0 {
		return
	}
	if current, ok := locks.pages[pageID]; ok && current == entry {
		delete(locks.pages, pageID)
	}
}

func (locks *ScrollLocks) Lookup(pageID string) (*ScrollLock, bool) {
	locks.mu.Lock()
	defer locks.mu.Unlock()

	entry, ok := locks.pages[pageID]
	if !ok {
		return nil, false
	}
	return entry.lock, true
}

// Len reports how many pages currently have attached instances.
func (locks *ScrollLocks) Len() int {
	locks.mu.Lock()
	defer locks.mu.Unlock()
	return len(locks.pages)
}
