package logic

import "github.com/openmohaa/coach-api/internal/models"

// Engine turns a MetricSet into recommendations using a RuleTable.
type Engine struct {
	table *RuleTable
}

func NewEngine(table *RuleTable) *Engine {
	if table == nil {
		table = DefaultRuleTable()
	}
	return &Engine{table: table}
}

func (e *Engine) Table() *RuleTable {
	return e.table
}

// Recommend evaluates every rule in declaration order, then appends exactly
// one general recommendation chosen by the overall score.
func (e *Engine) Recommend(metrics models.MetricSet) ([]models.Recommendation, error) {
	overall, err := metrics.Overall()
	if err != nil {
		return nil, err
	}

	recs := make([]models.Recommendation, 0, len(e.table.Rules)+1)
	for _, rule := range e.table.Rules {
		if rec, ok := rule.Evaluate(metrics); ok {
			recs = append(recs, rec)
		}
	}

	recs = append(recs, e.table.general(overall).recommendation())
	return recs, nil
}
