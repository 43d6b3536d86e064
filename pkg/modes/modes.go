// Package modes declares the built-in learning modes. Each mode is a
// declarative specification consumed by the generic engine; the numeric
// heuristics here are simulated stand-ins with the same contract a real
// detector would have.
package modes

import (
	"time"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
)

func init() {
	register := core.GetModeRegistry()
	_ = register.Register(ActiveName, Active)
	_ = register.Register(OnlineName, Online)
	_ = register.Register(AdaptiveName, Adaptive)
	_ = register.Register(MetaName, Meta)
	_ = register.Register(TransferName, Transfer)
	_ = register.Register(ReinforcementName, Reinforcement)
}

// newAdaptationEvent draws one adaptation event with a uniform sub-type.
// Severity above 0.5 marks the adaptation as required.
func newAdaptationEvent(id string, task *core.LearningTask, r core.RandSource) (core.OutcomeEvent, error) {
	idx, err := r.IntN(len(core.AdaptationTypes))
	if err != nil {
		return nil, err
	}
	severity, err := core.DrawSeverity(r)
	if err != nil {
		return nil, err
	}
	confidence, err := core.DrawEventConfidence(r)
	if err != nil {
		return nil, err
	}

	return &core.AdaptationEvent{
		ID:                 id,
		TaskID:             task.ID,
		Type:               core.AdaptationTypes[idx],
		Severity:           severity,
		Confidence:         confidence,
		AdaptationRequired: severity > 0.5,
		DetectedAt:         time.Now(),
	}, nil
}

// minEfficiency builds the common "task efficiency above threshold"
// eligibility predicate.
func minEfficiency(threshold float64) core.Predicate {
	return func(task *core.LearningTask) bool {
		return task.Efficiency() > threshold
	}
}

func minStability(threshold float64) core.Predicate {
	return func(task *core.LearningTask) bool {
		return task.Performance["stability"] > threshold
	}
}
