package api

import "sync"

// roomLockSet serializes message posts per chatroom so that broadcast order
// always matches persisted-write order within a room. Locks are created
// lazily and never removed; the set grows with the number of rooms posted to,
// which is bounded by the chatroom table.
type roomLockSet struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newRoomLockSet() *roomLockSet {
	return &roomLockSet{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for the given room and returns the unlock function.
func (r *roomLockSet) Lock(roomId string) func() {
	r.mu.Lock()
	l, ok := r.locks[roomId]
	if !ok {
		l = &sync.Mutex{}
		r.locks[roomId] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}
