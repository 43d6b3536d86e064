package modes

import (
	"time"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

// OnlineName identifies the online (streaming) learning mode.
const OnlineName = "online_learning"

// Online learning task types.
const (
	StreamingClassification core.TaskType = "streaming_classification"
	IncrementalRegression   core.TaskType = "incremental_regression"
	AdaptiveClustering      core.TaskType = "adaptive_clustering"
	ConceptTracking         core.TaskType = "concept_tracking"
)

// Online learning strategy types.
const (
	IncrementalSGD  core.StrategyType = "incremental_sgd"
	SlidingWindow   core.StrategyType = "sliding_window"
	EnsemblePruning core.StrategyType = "ensemble_pruning"
	DriftAwareReset core.StrategyType = "drift_aware_reset"
)

// Online builds the streaming mode: experiences are treated as a stream and
// strategies watch for distribution drift. Drift degrades efficiency.
func Online() core.ModeSpec {
	return core.ModeSpec{
		Name:         OnlineName,
		Prefix:       "ol",
		Algorithm:    "incremental_learning",
		FallbackType: StreamingClassification,
		ShapeTypes: map[core.PayloadShape]core.TaskType{
			core.ShapeText:     StreamingClassification,
			core.ShapeNumeric:  IncrementalRegression,
			core.ShapeSequence: AdaptiveClustering,
		},
		ControlType: ConceptTracking,
		Strategies: func() []*core.Strategy {
			return []*core.Strategy{
				{
					ID:         "ol-sgd",
					Name:       "Incremental SGD",
					Type:       IncrementalSGD,
					Confidence: 0.75,
					Parameters: map[string]float64{"learning_rate": 0.05},
					Eligible:   minEfficiency(0.3),
				},
				{
					ID:         "ol-window",
					Name:       "Sliding Window",
					Type:       SlidingWindow,
					Confidence: 0.7,
					Parameters: map[string]float64{"window_size": 256},
				},
				{
					ID:         "ol-ensemble",
					Name:       "Ensemble Pruning",
					Type:       EnsemblePruning,
					Confidence: 0.65,
					Parameters: map[string]float64{"ensemble_size": 8},
					Eligible:   minStability(0.5),
				},
				{
					ID:         "ol-reset",
					Name:       "Drift-Aware Reset",
					Type:       DriftAwareReset,
					Confidence: 0.6,
					Parameters: map[string]float64{"reset_threshold": 0.4},
					Eligible:   minEfficiency(0.1),
				},
			}
		},
		SelectBest: func(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
			// Unstable streams need the reset strategy; stable ones keep cheap
			// incremental updates.
			if task.Performance["stability"] < 0.4 {
				return engine.FirstOfType(candidates, DriftAwareReset)
			}
			if task.Performance["complexity"] > 0.7 {
				return engine.FirstOfType(candidates, EnsemblePruning)
			}
			return engine.FirstOfType(candidates, IncrementalSGD)
		},
		EventThreshold: 0.5,
		NewEvent:       newDriftDetection,
		EventImpact: func(events []core.OutcomeEvent) float64 {
			// Any real drift degrades efficiency until the learner catches up.
			for _, ev := range events {
				if drift, ok := ev.(*core.DriftDetection); ok && drift.Type != core.NoDrift {
					return 0.85
				}
			}
			return 1.0
		},
		DerivedMetrics: map[string]float64{
			"drift_handling":   0.9,
			"adaptation_speed": 0.8,
		},
	}
}

// newDriftDetection draws one drift detection with a uniform sub-type.
func newDriftDetection(id string, task *core.LearningTask, strategy *core.Strategy, r core.RandSource) (core.OutcomeEvent, error) {
	idx, err := r.IntN(len(core.DriftTypes))
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

	driftType := core.DriftTypes[idx]
	return &core.DriftDetection{
		ID:                 id,
		TaskID:             task.ID,
		Type:               driftType,
		Severity:           severity,
		Confidence:         confidence,
		AdaptationRequired: driftType != core.NoDrift && severity > 0.5,
		DetectedAt:         time.Now(),
	}, nil
}
