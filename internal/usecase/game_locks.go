package usecase

import "sync"

// gameLocks hands out one mutex per game id and forgets it once nobody holds or waits on it.
type gameLocks struct {
	mu    sync.Mutex
	locks map[string]*gameLock
}

type gameLock struct {
	sync.Mutex
	refs int
}

func newGameLocks() *gameLocks {
	return &gameLocks{
		locks: make(map[string]*gameLock),
	}
}

// lock blocks until the game is free and returns the matching unlock.
func (that *gameLocks) lock(id string) func() {
	that.mu.Lock()
	entry, ok := that.locks[id]
	if !ok {
		entry = &gameLock{}
		that.locks[id] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.Lock()

	return func() {
		entry.Unlock()

		that.mu.Lock()
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, id)
		}
		that.mu.Unlock()
	}
}

func (that *gameLocks) size() int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.locks)
}
