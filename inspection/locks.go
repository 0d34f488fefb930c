package inspection

import "sync"

// lotLocks hands out one mutex per lot id. Every workflow operation runs its
// read-modify-write cycle under the lot's lock, so two bulk operations on the
// same lot can never interleave and drop each other's item changes.
type lotLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func newLotLocks() *lotLocks {
	return &lotLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *lotLocks) get(lotID int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[lotID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[lotID] = m
	}
	return m
}
