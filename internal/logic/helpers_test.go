package logic

import "github.com/openmohaa/coach-api/internal/models"

type fixedSource float64

func (f fixedSource) Score(MetricSpec) float64 { return float64(f) }

// uniformMetrics returns the default metric shape with every value set to v.
func uniformMetrics(v float64) models.MetricSet {
	m := make(models.MetricSet)
	for _, spec := range DefaultMetricSpecs {
		if m[spec.Category] == nil {
			m[spec.Category] = make(map[string]float64)
		}
		m[spec.Category][spec.Name] = v
	}
	return m
}
