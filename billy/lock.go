package billy

import "sync"

// lockTable emulates exclusive, non-blocking advisory write locks for file
// systems that do not provide them.
type lockTable struct {
	mu     sync.Mutex
	locked map[string]struct{}
}

func newLockTable() *lockTable {
	return &lockTable{locked: make(map[string]struct{})}
}

// tryLock acquires name without waiting. It returns false if another
// writer holds it.
func (t *lockTable) tryLock(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, held := t.locked[name]; held {
		return false
	}
	t.locked[name] = struct{}{}
	return true
}

func (t *lockTable) unlock(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.locked, name)
}
