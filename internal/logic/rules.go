package logic

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openmohaa/coach-api/internal/models"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rule emits a recommendation when a metric falls below a threshold.
type Rule struct {
	Category    models.Category `yaml:"category" json:"category"`
	Metric      string          `yaml:"metric" json:"metric"`
	Below       float64         `yaml:"below" json:"below"`
	HighBelow   float64         `yaml:"high_below" json:"high_below"`
	Priority    models.Priority `yaml:"priority" json:"priority"`
	Title       string          `yaml:"title" json:"title"`
	Description string          `yaml:"description" json:"description"`
}

// Evaluate returns the rule's recommendation if it fires for metrics.
// A metric missing from the set never fires.
func (r Rule) Evaluate(metrics models.MetricSet) (models.Recommendation, bool) {
	value, ok := metrics[r.Category][r.Metric]
	if !ok || value >= r.Below {
		return models.Recommendation{}, false
	}

	priority := r.Priority
	if value < r.HighBelow {
		priority = models.PriorityHigh
	}

	return models.Recommendation{
		Category:    r.Category,
		Title:       r.Title,
		Description: r.Description,
		Priority:    priority,
	}, true
}

// GeneralTier is a category-agnostic recommendation selected by overall score.
// A nil Below matches any score.
type GeneralTier struct {
	Below       *float64        `yaml:"below,omitempty" json:"below,omitempty"`
	Priority    models.Priority `yaml:"priority" json:"priority"`
	Title       string          `yaml:"title" json:"title"`
	Description string          `yaml:"description" json:"description"`
}

func (g GeneralTier) matches(overall float64) bool {
	return g.Below == nil || overall < *g.Below
}

func (g GeneralTier) recommendation() models.Recommendation {
	return models.Recommendation{
		Category:    models.CategoryGeneral,
		Title:       g.Title,
		Description: g.Description,
		Priority:    g.Priority,
	}
}

// RuleTable is the full, ordered recommendation policy.
type RuleTable struct {
	Rules   []Rule        `yaml:"rules" json:"rules"`
	General []GeneralTier `yaml:"general" json:"general"`
}

// ParseRuleTable decodes and validates a YAML rule table against specs.
func ParseRuleTable(data []byte, specs []MetricSpec) (*RuleTable, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var table RuleTable
	if err := dec.Decode(&table); err != nil {
		return nil, fmt.Errorf("decode rule table: %w", err)
	}
	if err := table.Validate(specs); err != nil {
		return nil, err
	}
	return &table, nil
}

// LoadRuleFile reads a rule table from disk. An empty path yields the embedded default.
func LoadRuleFile(path string, specs []MetricSpec) (*RuleTable, error) {
	if path == "" {
		return ParseRuleTable(defaultRulesYAML, specs)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}
	return ParseRuleTable(data, specs)
}

// DefaultRuleTable returns the embedded rule table. It panics if the
// embedded file is broken, which is a build defect.
func DefaultRuleTable() *RuleTable {
	table, err := ParseRuleTable(defaultRulesYAML, DefaultMetricSpecs)
	if err != nil {
		panic(err)
	}
	return table
}

// Validate checks every rule against the known metric specs and makes sure
// the general tiers always yield exactly one recommendation.
func (t *RuleTable) Validate(specs []MetricSpec) error {
	var errs []error

	for i, r := range t.Rules {
		if !r.Category.Valid() {
			errs = append(errs, fmt.Errorf("rule %d: unknown category %q", i, r.Category))
		} else if _, ok := findSpec(specs, r.Category, r.Metric); !ok {
			errs = append(errs, fmt.Errorf("rule %d: unknown metric %s.%s", i, r.Category, r.Metric))
		}
		if r.HighBelow < 0 || r.HighBelow > r.Below || r.Below > 1 {
			errs = append(errs, fmt.Errorf("rule %d: thresholds must satisfy 0 <= high_below <= below <= 1", i))
		}
		if !r.Priority.Valid() {
			errs = append(errs, fmt.Errorf("rule %d: invalid priority %q", i, r.Priority))
		}
		if r.Title == "" {
			errs = append(errs, fmt.Errorf("rule %d: title is required", i))
		}
	}

	if len(t.General) == 0 {
		errs = append(errs, errors.New("at least one general tier is required"))
	}
	prev := -1.0
	for i, g := range t.General {
		last := i == len(t.General)-1
		switch {
		case last && g.Below != nil:
			errs = append(errs, fmt.Errorf("general tier %d: last tier must not have a threshold", i))
		case !last && g.Below == nil:
			errs = append(errs, fmt.Errorf("general tier %d: only the last tier may omit its threshold", i))
		case g.Below != nil && *g.Below <= prev:
			errs = append(errs, fmt.Errorf("general tier %d: thresholds must be increasing", i))
		}
		if g.Below != nil {
			prev = *g.Below
		}
		if !g.Priority.Valid() {
			errs = append(errs, fmt.Errorf("general tier %d: invalid priority %q", i, g.Priority))
		}
		if g.Title == "" {
			errs = append(errs, fmt.Errorf("general tier %d: title is required", i))
		}
	}

	return errors.Join(errs...)
}

// general returns the tier matching overall. Validate guarantees one exists.
func (t *RuleTable) general(overall float64) GeneralTier {
	for _, g := range t.General {
		if g.matches(overall) {
			return g
		}
	}
	return t.General[len(t.General)-1]
}
