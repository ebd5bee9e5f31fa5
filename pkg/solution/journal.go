package solution

import (
	"slices"

	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
)

// Removing an edge and inserting it back at the same position restores the route but not
// necessarily the order of the edge's taker list, which decides who inherits the credit later.
// While a transaction is open every edit through the Candidate is journaled so that Rollback
// restores the exact previous state.

type undoRecord struct {
	vehicle  int
	at       int
	inserted bool

	// removals only
	edge   da.EdgeID
	takers []int
}

// Savepoint marks a position in the journal of an open transaction.
type Savepoint int

// Begin opens a (possibly nested) transaction.
func (c *Candidate) Begin() Savepoint {
	c.txDepth++
	return Savepoint(len(c.journal))
}

// Commit keeps every edit made since sp. The journal is dropped once the outermost transaction
// commits.
func (c *Candidate) Commit(sp Savepoint) {
	c.txDepth--
	if c.txDepth == 0 {
		c.journal = c.journal[:0]
	}
}

// Rollback undoes every edit made since sp and closes the transaction.
func (c *Candidate) Rollback(sp Savepoint) {
	for len(c.journal) > int(sp) {
		rec := c.journal[len(c.journal)-1]
		c.journal = c.journal[:len(c.journal)-1]

		r := c.routes[rec.vehicle]
		if rec.inserted {
			r.Remove(rec.at)
			continue
		}
		r.edges = slices.Insert(r.edges, rec.at, rec.edge)
		c.takers.restore(rec.edge, rec.takers)
	}
	c.txDepth--
	if c.txDepth == 0 {
		c.journal = c.journal[:0]
	}
}

func (c *Candidate) InTransaction() bool {
	return c.txDepth > 0
}
