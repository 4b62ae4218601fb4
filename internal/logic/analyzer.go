package logic

import (
	"time"

	"github.com/openmohaa/coach-api/internal/models"
)

// Analyzer produces a complete AnalysisResult. The metrics it reports are
// simulated; there is no gameplay capture behind them.
type Analyzer struct {
	simulator *Simulator
	engine    *Engine
	now       func() time.Time
}

func NewAnalyzer(simulator *Simulator, engine *Engine) *Analyzer {
	return &Analyzer{simulator: simulator, engine: engine, now: time.Now}
}

// Analyze simulates a MetricSet and runs it through the rule engine.
func (a *Analyzer) Analyze(matchID, gameMode, mapName string) (*models.AnalysisResult, error) {
	return a.AnalyzeMetrics(matchID, gameMode, mapName, a.simulator.Simulate())
}

// AnalyzeMetrics runs the rule engine and summary over an existing MetricSet.
func (a *Analyzer) AnalyzeMetrics(matchID, gameMode, mapName string, metrics models.MetricSet) (*models.AnalysisResult, error) {
	recs, err := a.engine.Recommend(metrics)
	if err != nil {
		return nil, err
	}
	summary, err := Summarize(metrics, recs, gameMode, mapName)
	if err != nil {
		return nil, err
	}

	return &models.AnalysisResult{
		MatchID:         matchID,
		AnalysisTime:    a.now().UTC(),
		Metrics:         metrics,
		Recommendations: recs,
		Summary:         summary,
	}, nil
}

func (a *Analyzer) Engine() *Engine {
	return a.engine
}
