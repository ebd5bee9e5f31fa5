package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ucarpp"

// SearchMetrics counts what the neighborhood search does. A nil *SearchMetrics is valid and
// records nothing.
type SearchMetrics struct {
	iterations        *prometheus.CounterVec
	acceptedMoves     *prometheus.CounterVec
	newOptima         *prometheus.CounterVec
	operatorCalls     *prometheus.CounterVec
	reconnectFailures prometheus.Counter
	bestProfit        prometheus.Gauge
	invariantFailures prometheus.Counter
	creditHandovers   prometheus.Counter
}

func NewSearchMetrics(reg prometheus.Registerer) (*SearchMetrics, error) {
	m := &SearchMetrics{
		iterations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_iterations_total",
			Help:      "Neighborhood search iterations, by strategy.",
		}, []string{"strategy"}),
		acceptedMoves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_accepted_moves_total",
			Help:      "Iterations whose candidate replaced the base solution, by strategy.",
		}, []string{"strategy"}),
		newOptima: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_new_optima_total",
			Help:      "Iterations that improved the best solution found so far, by strategy.",
		}, []string{"strategy"}),
		operatorCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operator_calls_total",
			Help:      "Route mutation operator calls, by operator and outcome.",
		}, []string{"operator", "outcome"}),
		reconnectFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconnect_failures_total",
			Help:      "Holes for which no feasible reconnection was found.",
		}),
		bestProfit: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "best_profit",
			Help:      "Profit of the best solution of the last finished run.",
		}),
		invariantFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invariant_violations_total",
			Help:      "Infeasible or open routes found at a round boundary.",
		}),
		creditHandovers: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "credit_handovers_total",
			Help:      "Edge service credits moved to another vehicle by rebalancing.",
		}),
	}

	for _, c := range []prometheus.Collector{m.iterations, m.acceptedMoves, m.newOptima, m.operatorCalls,
		m.reconnectFailures, m.bestProfit, m.invariantFailures, m.creditHandovers} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *SearchMetrics) Iteration(strategy string) {
	if m == nil {
		return
	}
	m.iterations.WithLabelValues(strategy).Inc()
}

func (m *SearchMetrics) Accepted(strategy string, newOptimum bool) {
	if m == nil {
		return
	}
	m.acceptedMoves.WithLabelValues(strategy).Inc()
	if newOptimum {
		m.newOptima.WithLabelValues(strategy).Inc()
	}
}

func (m *SearchMetrics) Operator(name string, ok bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if ok {
		outcome = "applied"
	}
	m.operatorCalls.WithLabelValues(name, outcome).Inc()
}

func (m *SearchMetrics) ReconnectFailed() {
	if m == nil {
		return
	}
	m.reconnectFailures.Inc()
}

func (m *SearchMetrics) InvariantViolated() {
	if m == nil {
		return
	}
	m.invariantFailures.Inc()
}

func (m *SearchMetrics) CreditHandover() {
	if m == nil {
		return
	}
	m.creditHandovers.Inc()
}

func (m *SearchMetrics) SetBestProfit(profit int) {
	if m == nil {
		return
	}
	m.bestProfit.Set(float64(profit))
}

// WriteToFile dumps every metric gathered by g in the text exposition format.
func WriteToFile(filename string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(filename, g)
}
