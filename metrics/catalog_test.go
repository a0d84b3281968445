package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alpacahq/bizcal/metrics"
)

type mockMetricsSetter struct {
	value float64
}

func (m *mockMetricsSetter) Set(v float64) {
	m.value = v
}

type mockLabeledSetter map[string]float64

func (m mockLabeledSetter) Set(label string, v float64) {
	m[label] = v
}

type mockDirectory map[string]int

func (m mockDirectory) Sizes() map[string]int {
	return m
}

func TestObserveCatalog(t *testing.T) {
	t.Parallel()
	tests := map[string]struct {
		dir      mockDirectory
		expTotal float64
		expSizes mockLabeledSetter
	}{
		"empty": {
			dir:      mockDirectory{},
			expTotal: 0,
			expSizes: mockLabeledSetter{},
		},
		"two calendars": {
			dir:      mockDirectory{"NYSE": 252, "EMPTY": 0},
			expTotal: 2,
			expSizes: mockLabeledSetter{"NYSE": 252, "EMPTY": 0},
		},
	}
	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			total := &mockMetricsSetter{value: -1}
			sizes := mockLabeledSetter{}
			metrics.ObserveCatalog(total, sizes, tt.dir)
			assert.Equal(t, tt.expTotal, total.value)
			assert.Equal(t, tt.expSizes, sizes)
		})
	}
}

func TestByCalendar(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() { metrics.ByCalendar.Set("TEST", 3) })
}
