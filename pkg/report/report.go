package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/lintang-b-s/ucarpp/pkg/solution"
	"github.com/lintang-b-s/ucarpp/pkg/util"
	"gopkg.in/yaml.v3"
)

const (
	FORMAT_TEXT = "text"
	FORMAT_YAML = "yaml"
	FORMAT_JSON = "json"
)

// Service is an edge collected by a vehicle, in the direction the vehicle traverses it. 1-based.
type Service struct {
	From   int `json:"from" yaml:"from"`
	To     int `json:"to" yaml:"to"`
	Demand int `json:"demand" yaml:"demand"`
	Profit int `json:"profit" yaml:"profit"`
}

type Route struct {
	Vehicle  int       `json:"vehicle" yaml:"vehicle"`
	Profit   int       `json:"profit" yaml:"profit"`
	Cost     int       `json:"cost" yaml:"cost"`
	Load     int       `json:"load" yaml:"load"`
	Vertices []int     `json:"vertices" yaml:"vertices"`
	Services []Service `json:"services" yaml:"services"`
}

type Report struct {
	Instance string  `json:"instance" yaml:"instance"`
	RunID    string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Strategy string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Seed     uint64  `json:"seed" yaml:"seed"`
	Vehicles int     `json:"vehicles" yaml:"vehicles"`
	Profit   int     `json:"profit" yaml:"profit"`
	Cost     int     `json:"cost" yaml:"cost"`
	Demand   int     `json:"demand" yaml:"demand"`
	Routes   []Route `json:"routes" yaml:"routes"`
}

// Meta describes the run that produced a candidate.
type Meta struct {
	Instance string
	RunID    string
	Strategy string
	Seed     uint64
}

// New summarizes c. Vertex numbers are converted back to the 1-based numbering of instance files.
func New(c *solution.Candidate, meta Meta) *Report {
	cost, demand, profit := c.Totals()
	rep := &Report{
		Instance: meta.Instance,
		RunID:    meta.RunID,
		Strategy: meta.Strategy,
		Seed:     meta.Seed,
		Vehicles: c.NumberOfVehicles(),
		Profit:   profit,
		Cost:     cost,
		Demand:   demand,
		Routes:   make([]Route, c.NumberOfVehicles()),
	}

	g := c.GetGraph()
	for v := range rep.Routes {
		r := c.Route(v)
		vc, vd, vp := r.Totals()
		route := Route{
			Vehicle:  v + 1,
			Profit:   vp,
			Cost:     vc,
			Load:     vd,
			Vertices: make([]int, 0, r.Size()+1),
			Services: make([]Service, 0),
		}
		vertices := r.Vertices()
		for _, u := range vertices {
			route.Vertices = append(route.Vertices, u+1)
		}
		for i := 0; i < r.Size(); i++ {
			e := g.GetEdgeByID(r.EdgeAt(i))
			if !r.IsCredited(i) || !e.IsProfitable() {
				continue
			}
			route.Services = append(route.Services, Service{
				From:   vertices[i] + 1,
				To:     vertices[i+1] + 1,
				Demand: e.GetDemand(),
				Profit: e.GetProfit(),
			})
		}
		rep.Routes[v] = route
	}
	return rep
}

func (r *Report) WriteText(w io.Writer) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Solution of Problem %s - Number of Vehicles: %d\n\n", r.Instance, r.Vehicles)
	fmt.Fprintf(&sb, "Total Profit: %d\n\n", r.Profit)
	fmt.Fprintf(&sb, "Total Cost: %d\n\n", r.Cost)
	for _, route := range r.Routes {
		fmt.Fprintf(&sb, "\nRoute %d Details:\n", route.Vehicle)

		sb.WriteString("\nServices Sequence:\n")
		for _, s := range route.Services {
			fmt.Fprintf(&sb, "(%d,%d) ", s.From, s.To)
		}
		sb.WriteString("\n")

		sb.WriteString("\nVertex Sequence:\n")
		for i, u := range route.Vertices {
			if i > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%d", u)
		}
		sb.WriteString("\n\n")

		fmt.Fprintf(&sb, "Profit: %d\n", route.Profit)
		fmt.Fprintf(&sb, "Cost: %d\n", route.Cost)
		fmt.Fprintf(&sb, "Load: %d\n\n", route.Load)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// Write dispatches on format: text, yaml or json.
func (r *Report) Write(w io.Writer, format string) error {
	switch format {
	case FORMAT_TEXT, "":
		return r.WriteText(w)
	case FORMAT_YAML:
		return r.WriteYAML(w)
	case FORMAT_JSON:
		return r.WriteJSON(w)
	}
	return util.WrapErrorf(nil, util.ErrBadParamInput, "unknown report format %q", format)
}
