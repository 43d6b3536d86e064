package engine

import (
	"fmt"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/metrics"
)

// Weights of the three confidence terms. Each term defaults to a neutral 0.5
// when its source collection is empty.
const (
	taskWeight        = 0.4
	strategyWeight    = 0.3
	performanceWeight = 0.3
)

// aggregate combines task-, strategy-, and performance-level signals into one
// confidence scalar and the run's insights. With zero tasks the run reports a
// neutral 0.5 without consulting the other collections.
func (e *Engine) aggregate(
	tasks []*core.LearningTask,
	applied []*core.Strategy,
	events []core.OutcomeEvent,
	records []*core.PerformanceRecord,
) core.LearningResult {
	if len(tasks) == 0 {
		return core.LearningResult{
			Success:    true,
			Insights:   []string{},
			Confidence: 0.5,
			AdaptationMetrics: core.AdaptationMetrics{
				Performance: 0.5,
				Stability:   0.5,
				Flexibility: 0.5,
				Efficiency:  0.5,
			},
		}
	}

	taskEff := make([]float64, 0, len(tasks))
	taskStability := make([]float64, 0, len(tasks))
	for _, t := range tasks {
		taskEff = append(taskEff, t.Efficiency())
		taskStability = append(taskStability, t.Performance["stability"])
	}

	stratConf := make([]float64, 0, len(applied))
	for _, s := range applied {
		stratConf = append(stratConf, s.Confidence)
	}

	perfEff := make([]float64, 0, len(records))
	for _, r := range records {
		perfEff = append(perfEff, r.Efficiency())
	}

	confidence := metrics.Clamp01(
		taskWeight*metrics.Mean(taskEff, 0.5) +
			strategyWeight*metrics.Mean(stratConf, 0.5) +
			performanceWeight*metrics.Mean(perfEff, 0.5))

	// Tasks touched by at least one event.
	touched := make(map[string]bool, len(events))
	for _, ev := range events {
		touched[ev.EventTaskID()] = true
	}
	flexibility := float64(len(touched)) / float64(len(tasks))

	return core.LearningResult{
		Success:      true,
		Insights:     e.buildInsights(tasks, applied, events, records),
		Confidence:   confidence,
		Improvements: buildImprovements(tasks, records),
		AdaptationMetrics: core.AdaptationMetrics{
			Performance: metrics.Mean(perfEff, 0.5),
			Stability:   metrics.Mean(taskStability, 0.5),
			Flexibility: flexibility,
			Efficiency:  metrics.Mean(taskEff, 0.5),
		},
	}
}

// buildImprovements reports the tasks whose evaluated efficiency beat their
// extraction-time baseline.
func buildImprovements(tasks []*core.LearningTask, records []*core.PerformanceRecord) []core.Improvement {
	baselines := make(map[string]float64, len(tasks))
	for _, t := range tasks {
		baselines[t.ID] = t.Efficiency()
	}

	var improvements []core.Improvement
	for _, rec := range records {
		base, ok := baselines[rec.TaskID]
		if !ok {
			continue
		}
		gain := rec.Efficiency() - base
		if gain <= 0 {
			continue
		}
		improvements = append(improvements, core.Improvement{
			Type:      string(rec.StrategyType),
			Magnitude: gain,
			Description: fmt.Sprintf("%s strategy lifted efficiency by %.1f%%",
				humanize(string(rec.StrategyType)), gain*100),
		})
	}
	return improvements
}
