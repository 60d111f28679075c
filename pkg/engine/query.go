package engine

import (
	"github.com/aretw0/ramp/pkg/domain"
)

// Cursor is a lazy, finite, restartable iterator over query results in
// page/line/column order. Colors are evaluated on demand during iteration,
// not when the cursor is created.
//
// Usage follows the bufio.Scanner shape:
//
//	cur := eng.Query(domain.PatternPage(0))
//	for cur.Next() {
//		entry := cur.Entry()
//		...
//	}
//	if err := cur.Err(); err != nil { ... }
type Cursor struct {
	e     *Engine
	addrs []domain.Address
	pos   int
	cur   domain.Entry
	err   error
}

// Query returns a cursor over every occupied address matching the pattern.
// The address set is snapshotted at call time; colors are read live.
func (e *Engine) Query(p domain.Pattern) *Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var addrs []domain.Address
	for _, addr := range e.g.Addresses() {
		if p.Contains(addr) {
			addrs = append(addrs, addr)
		}
	}
	return &Cursor{e: e, addrs: addrs}
}

// Next advances to the next entry. It returns false at the end of the
// sequence or on the first evaluation error.
func (c *Cursor) Next() bool {
	if c.err != nil {
		return false
	}
	for c.pos < len(c.addrs) {
		addr := c.addrs[c.pos]
		c.pos++

		entry, ok, err := c.e.readEntry(addr)
		if err != nil {
			c.err = err
			return false
		}
		if !ok {
			// Removed between snapshot and read; skip it.
			continue
		}
		c.cur = entry
		return true
	}
	return false
}

// readEntry evaluates one address under the read lock.
func (e *Engine) readEntry(addr domain.Address) (domain.Entry, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	el, ok := e.g.Get(addr)
	if !ok {
		return domain.Entry{}, false, nil
	}
	color, err := e.ev.ValueOf(addr)
	if err != nil {
		return domain.Entry{}, false, err
	}
	return domain.Entry{Address: addr, Color: color, Order: el.Order()}, true, nil
}

// Entry returns the current entry. Valid only after a true Next.
func (c *Cursor) Entry() domain.Entry {
	return c.cur
}

// Err returns the first evaluation error encountered, if any.
func (c *Cursor) Err() error {
	return c.err
}

// Reset restarts the cursor at the beginning of its snapshot.
func (c *Cursor) Reset() {
	c.pos = 0
	c.err = nil
	c.cur = domain.Entry{}
}
