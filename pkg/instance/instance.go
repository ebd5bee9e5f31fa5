package instance

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/ucarpp/pkg"
	da "github.com/lintang-b-s/ucarpp/pkg/datastructure"
	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
)

type EdgeRecord struct {
	Src    int `validate:"gte=0"`
	Dst    int `validate:"gte=0,nefield=Src"`
	Cost   int `validate:"gte=0"`
	Demand int `validate:"gte=0"`
	Profit int `validate:"gte=0"`
}

// Instance is a parsed problem file. Vertices are 0-based.
type Instance struct {
	Name        string       `validate:"required"`
	NumVertices int          `validate:"gte=1"`
	Capacity    int          `validate:"gte=0"`
	TimeLimit   int          `validate:"gte=0"`
	Depot       int          `validate:"gte=0,ltfield=NumVertices"`
	Edges       []EdgeRecord `validate:"dive"`
}

var (
	reName      = regexp.MustCompile(`^(?:NUMBER|NAME)\s*:\s*(\S+)`)
	reVertices  = regexp.MustCompile(`NUMBER OF VERTICES\s*:\s*(\d+)`)
	reEdges     = regexp.MustCompile(`NUMBER OF EDGES\s*:\s*(\d+)`)
	reCapacity  = regexp.MustCompile(`CAPACITY\s*:\s*(\d+)`)
	reTimeLimit = regexp.MustCompile(`TIME LIMIT\s*:\s*(\d+)`)
	reEdgeList  = regexp.MustCompile(`LIST OF EDGES\s*:`)
	reEdge      = regexp.MustCompile(`\(\s*(\d+)\s*,\s*(\d+)\s*\)\s*cost\s+(\d+)\s+demand\s+(\d+)\s+profit\s+([0-9.]+)`)
	reDepot     = regexp.MustCompile(`DEPOT\s*:\s*(\d+)`)
)

// ReadInstance opens filename, transparently decompressing it when it ends in .bz2.
func ReadInstance(filename string) (*Instance, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}
	return Parse(r)
}

/*
Parse reads an instance in the line format

	NUMBER: name.dat
	NUMBER OF VERTICES: n
	NUMBER OF EDGES: m
	CAPACITY: Q
	TIME LIMIT: T
	LIST OF EDGES:
	(u,v) cost c demand d profit p     (m lines, 1-based vertices)
	DEPOT: d

Profits written with decimals are rounded to the nearest integer.
*/
func Parse(r io.Reader) (*Instance, error) {
	br := bufio.NewReader(r)
	inst := &Instance{}

	var err error
	if inst.Name, err = matchLine(br, reName, "name"); err != nil {
		return nil, err
	}
	if inst.NumVertices, err = matchInt(br, reVertices, "number of vertices"); err != nil {
		return nil, err
	}
	numEdges, err := matchInt(br, reEdges, "number of edges")
	if err != nil {
		return nil, err
	}
	if inst.Capacity, err = matchInt(br, reCapacity, "capacity"); err != nil {
		return nil, err
	}
	if inst.TimeLimit, err = matchInt(br, reTimeLimit, "time limit"); err != nil {
		return nil, err
	}
	if _, err = nextMatch(br, reEdgeList, "edge list header"); err != nil {
		return nil, err
	}

	inst.Edges = make([]EdgeRecord, 0, numEdges)
	for i := 0; i < numEdges; i++ {
		sm, err := nextMatch(br, reEdge, fmt.Sprintf("edge %d", i+1))
		if err != nil {
			return nil, err
		}
		e, err := parseEdge(sm)
		if err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "edge %d", i+1)
		}
		inst.Edges = append(inst.Edges, e)
	}

	depot, err := matchInt(br, reDepot, "depot")
	if err != nil {
		return nil, err
	}
	inst.Depot = depot - 1

	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func parseEdge(sm []string) (EdgeRecord, error) {
	ints := make([]int, 4)
	for i := range ints {
		n, err := strconv.Atoi(sm[i+1])
		if err != nil {
			return EdgeRecord{}, err
		}
		ints[i] = n
	}
	profit, err := strconv.ParseFloat(sm[5], 64)
	if err != nil {
		return EdgeRecord{}, err
	}
	return EdgeRecord{
		Src:    ints[0] - 1,
		Dst:    ints[1] - 1,
		Cost:   ints[2],
		Demand: ints[3],
		Profit: int(math.Round(profit)),
	}, nil
}

// nextMatch returns the submatches of the next non-blank line, which must match re.
func nextMatch(br *bufio.Reader, re *regexp.Regexp, what string) ([]string, error) {
	for {
		line, err := util.ReadLine(br)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, util.WrapErrorf(err, util.ErrBadParamInput, "unexpected end of file reading %s", what)
			}
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		sm := re.FindStringSubmatch(line)
		if sm == nil {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "reading %s: malformed line %q", what, line)
		}
		return sm, nil
	}
}

func matchLine(br *bufio.Reader, re *regexp.Regexp, what string) (string, error) {
	sm, err := nextMatch(br, re, what)
	if err != nil {
		return "", err
	}
	return sm[1], nil
}

func matchInt(br *bufio.Reader, re *regexp.Regexp, what string) (int, error) {
	s, err := matchLine(br, re, what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, util.WrapErrorf(err, util.ErrBadParamInput, "reading %s", what)
	}
	return n, nil
}

func (inst *Instance) Validate() error {
	if err := util.ValidateStruct(inst); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid instance %s", inst.Name)
	}
	for i, e := range inst.Edges {
		if e.Src >= inst.NumVertices || e.Dst >= inst.NumVertices {
			return util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d: vertex out of range [1,%d]",
				i+1, inst.NumVertices)
		}
	}
	return nil
}

// Modified applies the "MDF" variant of the benchmark: fixed capacity and time limit.
func (inst *Instance) Modified() {
	inst.Capacity = pkg.MDF_CAPACITY
	inst.TimeLimit = pkg.MDF_TIME_LIMIT
}

func (inst *Instance) Limits() solution.Limits {
	return solution.Limits{Capacity: inst.Capacity, TimeBudget: inst.TimeLimit}
}

// BuildGraph stores every edge in a new graph and completes its metric closure.
func (inst *Instance) BuildGraph() (*da.Graph, error) {
	g := da.NewGraph(inst.NumVertices)
	for i, e := range inst.Edges {
		if _, err := g.AddEdge(e.Src, e.Dst, e.Cost, e.Demand, e.Profit); err != nil {
			return nil, util.WrapErrorf(err, util.ErrBadParamInput, "instance %s: edge %d", inst.Name, i+1)
		}
	}
	g.CompleteClosure()
	return g, nil
}

// WriteInstance writes inst in the format read by Parse, bzip2 compressed when filename ends in
// .bz2.
func WriteInstance(filename string, inst *Instance) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if strings.HasSuffix(filename, ".bz2") {
		bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		defer bz.Close()
		w = bz
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "NUMBER: %s\n", inst.Name)
	fmt.Fprintf(bw, "NUMBER OF VERTICES: %d\n", inst.NumVertices)
	fmt.Fprintf(bw, "NUMBER OF EDGES: %d\n", len(inst.Edges))
	fmt.Fprintf(bw, "CAPACITY: %d\n", inst.Capacity)
	fmt.Fprintf(bw, "TIME LIMIT: %d\n", inst.TimeLimit)
	fmt.Fprintln(bw, "LIST OF EDGES:")
	for _, e := range inst.Edges {
		fmt.Fprintf(bw, "(%d,%d) cost %d demand %d profit %d\n", e.Src+1, e.Dst+1, e.Cost, e.Demand, e.Profit)
	}
	fmt.Fprintf(bw, "DEPOT: %d\n", inst.Depot+1)
	return bw.Flush()
}
