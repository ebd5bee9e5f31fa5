package solver

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/lintang-b-s/ucarpp/pkg/solution"
)

// progressObserver writes one line per accepted move:
//
//	profit ( p1 p2 ... pM ) cost ( c1 ... cM ) demand ( d1 ... dM )
//
// It is shared by every solver created with the same WithProgress option.
type progressObserver struct {
	mu sync.Mutex
	w  io.Writer
}

func newProgressObserver(w io.Writer) *progressObserver {
	return &progressObserver{w: w}
}

func (p *progressObserver) observe(c *solution.Candidate) {
	if p == nil {
		return
	}
	var profit, cost, demand strings.Builder
	for v := 0; v < c.NumberOfVehicles(); v++ {
		vc, vd, vp := c.TotalsOf(v)
		fmt.Fprintf(&profit, "%d ", vp)
		fmt.Fprintf(&cost, "%d ", vc)
		fmt.Fprintf(&demand, "%d ", vd)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "profit ( %s) cost ( %s) demand ( %s)\n", profit.String(), cost.String(), demand.String())
}
