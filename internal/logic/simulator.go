package logic

import (
	"math"
	"math/rand/v2"
	"sync"

	"github.com/openmohaa/coach-api/internal/models"
)

// MetricSpec declares a metric and the band its simulated score is drawn from.
type MetricSpec struct {
	Category models.Category
	Name     string
	Min      float64
	Max      float64
}

func (s MetricSpec) clamp(v float64) float64 {
	return math.Min(s.Max, math.Max(s.Min, v))
}

// DefaultMetricSpecs is the fixed metric shape of every match.
var DefaultMetricSpecs = []MetricSpec{
	{models.CategoryAim, "accuracy", 0.50, 0.95},
	{models.CategoryAim, "reaction_time", 0.40, 0.90},
	{models.CategoryAim, "recoil_control", 0.30, 0.85},
	{models.CategoryAim, "headshot_percentage", 0.10, 0.60},

	{models.CategoryPositioning, "cover_usage", 0.40, 0.90},
	{models.CategoryPositioning, "movement_efficiency", 0.30, 0.85},
	{models.CategoryPositioning, "zone_awareness", 0.50, 0.95},
	{models.CategoryPositioning, "rotation_timing", 0.40, 0.90},

	{models.CategoryDecisionMaking, "engagement_choices", 0.30, 0.80},
	{models.CategoryDecisionMaking, "item_management", 0.40, 0.90},
	{models.CategoryDecisionMaking, "tactical_planning", 0.30, 0.85},
	{models.CategoryDecisionMaking, "team_coordination", 0.20, 0.70},
}

// RandomSource is a placeholder ScoreSource. It draws uniformly from each
// metric's band and knows nothing about the match being "analyzed".
type RandomSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource returns a deterministic source for the given seed.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewUnseededRandomSource returns a source seeded from the runtime's entropy.
func NewUnseededRandomSource() *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

func (s *RandomSource) Score(spec MetricSpec) float64 {
	s.mu.Lock()
	f := s.rng.Float64()
	s.mu.Unlock()

	v := spec.Min + f*(spec.Max-spec.Min)
	return math.Round(v*100) / 100
}

// Simulator fills a MetricSet from a ScoreSource.
type Simulator struct {
	specs  []MetricSpec
	source ScoreSource
}

func NewSimulator(source ScoreSource, specs []MetricSpec) *Simulator {
	if specs == nil {
		specs = DefaultMetricSpecs
	}
	return &Simulator{specs: specs, source: source}
}

// Simulate samples every metric independently. Values are clamped into their band.
func (s *Simulator) Simulate() models.MetricSet {
	metrics := make(models.MetricSet, len(models.ScoredCategories))
	for _, spec := range s.specs {
		if metrics[spec.Category] == nil {
			metrics[spec.Category] = make(map[string]float64)
		}
		metrics[spec.Category][spec.Name] = spec.clamp(s.source.Score(spec))
	}
	return metrics
}

func (s *Simulator) Specs() []MetricSpec {
	return s.specs
}

func findSpec(specs []MetricSpec, category models.Category, name string) (MetricSpec, bool) {
	for _, spec := range specs {
		if spec.Category == category && spec.Name == name {
			return spec, true
		}
	}
	return MetricSpec{}, false
}
