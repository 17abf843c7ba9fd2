package parser

import "sync"

// Interner pools identifier names so that every occurrence of a name shares
// one string. Flux programs repeat a small vocabulary heavily (r, tables,
// _value, _time, column names), so a package parsed with a shared interner
// keeps a single copy of each.
//
// An Interner is safe for concurrent use, which lets the loader parse the
// files of a package in parallel against one pool.
type Interner struct {
	mu   sync.Mutex
	pool map[string]string
}

// NewInterner creates an interner with room for capacity names.
func NewInterner(capacity int) *Interner {
	return &Interner{
		pool: make(map[string]string, capacity),
	}
}

// Intern returns the canonical copy of s.
func (i *Interner) Intern(s string) string {
	i.mu.Lock()
	defer i.mu.Unlock()
	if interned, ok := i.pool[s]; ok {
		return interned
	}
	i.pool[s] = s
	return s
}

// Size returns the number of unique names in the pool.
func (i *Interner) Size() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.pool)
}

// Reset empties the pool.
func (i *Interner) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.pool = make(map[string]string)
}
