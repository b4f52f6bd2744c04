// Aggregates simulation-wide timing statistics for final reporting.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics summarizes a Result: entity counts, flow/wait/service time
// statistics, and per-station utilization. Useful for evaluating system
// performance and for quick regression checks without diffing full tables.
type Metrics struct {
	AdmittedEntities int
	FinishedEntities int

	MeanFlowTime float64
	P50FlowTime  float64
	P95FlowTime  float64

	MeanWaitingTime float64
	MaxWaitingTime  float64
	MeanActivity    float64

	Utilization map[string]float64 // station name → utilization
}

// Summarize computes aggregate metrics from a Result. Quantiles use the
// empirical distribution of finished entities only.
func Summarize(r *Result) *Metrics {
	m := &Metrics{Utilization: make(map[string]float64)}
	if r == nil {
		return m
	}

	m.AdmittedEntities = len(r.Entities)

	flows := make([]float64, 0, len(r.Entities))
	waits := make([]float64, 0, len(r.Entities))
	activities := make([]float64, 0, len(r.Entities))
	for _, e := range r.Entities {
		if !e.Departed {
			continue
		}
		m.FinishedEntities++
		flows = append(flows, e.FlowTime())
		w := e.WaitingTime()
		waits = append(waits, w)
		if w > m.MaxWaitingTime {
			m.MaxWaitingTime = w
		}
		activities = append(activities, e.ActivityTime())
	}

	if len(flows) > 0 {
		m.MeanFlowTime = stat.Mean(flows, nil)
		m.MeanWaitingTime = stat.Mean(waits, nil)
		m.MeanActivity = stat.Mean(activities, nil)

		sort.Float64s(flows)
		m.P50FlowTime = stat.Quantile(0.5, stat.Empirical, flows, nil)
		m.P95FlowTime = stat.Quantile(0.95, stat.Empirical, flows, nil)
	}

	for _, st := range r.Stations {
		m.Utilization[st.Name] = st.Utilization
	}
	return m
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Admitted Entities    : %d\n", m.AdmittedEntities)
	fmt.Printf("Finished Entities    : %d\n", m.FinishedEntities)
	if m.FinishedEntities > 0 {
		fmt.Printf("Average Flow Time    : %.2f\n", m.MeanFlowTime)
		fmt.Printf("P50/P95 Flow Time    : %.2f / %.2f\n", m.P50FlowTime, m.P95FlowTime)
		fmt.Printf("Average Waiting Time : %.2f\n", m.MeanWaitingTime)
		fmt.Printf("Max Waiting Time     : %.2f\n", m.MaxWaitingTime)
		fmt.Printf("Average Service Time : %.2f\n", m.MeanActivity)
	}

	names := make([]string, 0, len(m.Utilization))
	for name := range m.Utilization {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("Utilization [%s]: %.2f%%\n", name, m.Utilization[name]*100)
	}
}
