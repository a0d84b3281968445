package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Setter is an interface for prometheus metrics to improve unit-testability.
type Setter interface {
	Set(m float64)
}

// LabeledSetter is a Setter partitioned by a single label.
type LabeledSetter interface {
	Set(label string, m float64)
}

type gaugeVecSetter struct {
	vec *prometheus.GaugeVec
}

func (g gaugeVecSetter) Set(label string, m float64) {
	g.vec.WithLabelValues(label).Set(m)
}

// ByCalendar sets CalendarBusinessDays partitioned by calendar name.
var ByCalendar LabeledSetter = gaugeVecSetter{vec: CalendarBusinessDays}

// CalendarSizes is what ObserveCatalog needs from a calendar directory.
type CalendarSizes interface {
	Sizes() map[string]int
}

// ObserveCatalog publishes the number of calendars and the size of each one.
func ObserveCatalog(total Setter, perCalendar LabeledSetter, dir CalendarSizes) {
	sizes := dir.Sizes()
	total.Set(float64(len(sizes)))
	for name, n := range sizes {
		perCalendar.Set(name, float64(n))
	}
}
