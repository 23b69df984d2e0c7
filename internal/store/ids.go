package store

import (
	"sync"
	"time"
)

// idGenerator issues record ids. Ids are epoch milliseconds, bumped past
// the previous value when two creations land in the same millisecond, so
// they stay unique within the process and sort by creation order.
type idGenerator struct {
	mu   sync.Mutex
	last int64
}

// Next returns a fresh id, strictly greater than any previously issued.
func (g *idGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
