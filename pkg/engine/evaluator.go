package engine

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/metrics"
)

// evaluate derives the per-task performance record from the task baseline,
// the strategy's confidence, and the run's events for that task. The record
// overwrites any prior record for the task id.
func (e *Engine) evaluate(task *core.LearningTask, strategy *core.Strategy, events []core.OutcomeEvent) *core.PerformanceRecord {
	impact := 1.0
	if e.spec.EventImpact != nil && len(events) > 0 {
		impact = e.spec.EventImpact(events)
	}

	final := metrics.Clamp01(task.Efficiency() * strategy.Confidence * impact)

	m := map[string]float64{
		"efficiency": final,
	}
	for name, ratio := range e.spec.DerivedMetrics {
		m[name] = metrics.Clamp01(final * ratio)
	}

	record := &core.PerformanceRecord{
		TaskID:       task.ID,
		StrategyType: strategy.Type,
		Metrics:      m,
	}

	for _, event := range events {
		switch ev := event.(type) {
		case *core.AdaptationEvent:
			record.Adaptations++
		case *core.DriftDetection:
			if ev.Type != core.NoDrift {
				record.DriftsDetected++
			}
		case *core.QueryResult:
			record.SamplesQueried += len(ev.SelectedSamples)
		}
	}

	_ = e.performances.Put(task.ID, record)
	if e.journal != nil {
		_ = e.journal.Put(task.ID, record)
	}
	return record
}
