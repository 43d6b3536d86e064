package modes

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

// TransferName identifies the transfer learning mode.
const TransferName = "transfer_learning"

// Transfer learning task types.
const (
	DomainAdaptation core.TaskType = "domain_adaptation"
	FeatureTransfer  core.TaskType = "feature_transfer"
	InstanceTransfer core.TaskType = "instance_transfer"
	ModelTransfer    core.TaskType = "model_transfer"
)

// Transfer learning strategy types.
const (
	FineTuning        core.StrategyType = "fine_tuning"
	FeatureExtraction core.StrategyType = "feature_extraction"
	DomainAdversarial core.StrategyType = "domain_adversarial"
)

// Transfer builds the transfer learning mode.
func Transfer() core.ModeSpec {
	return core.ModeSpec{
		Name:         TransferName,
		Prefix:       "tl",
		Algorithm:    "domain_transfer",
		FallbackType: DomainAdaptation,
		ShapeTypes: map[core.PayloadShape]core.TaskType{
			core.ShapeText:     FeatureTransfer,
			core.ShapeNumeric:  InstanceTransfer,
			core.ShapeSequence: ModelTransfer,
		},
		ControlType: DomainAdaptation,
		Strategies: func() []*core.Strategy {
			return []*core.Strategy{
				{
					ID:         "tl-finetune",
					Name:       "Fine Tuning",
					Type:       FineTuning,
					Confidence: 0.8,
					Parameters: map[string]float64{"frozen_layers": 4},
					Eligible:   minEfficiency(0.3),
				},
				{
					ID:         "tl-features",
					Name:       "Feature Extraction",
					Type:       FeatureExtraction,
					Confidence: 0.7,
					Parameters: map[string]float64{"projection_dim": 128},
				},
				{
					ID:         "tl-adversarial",
					Name:       "Domain Adversarial",
					Type:       DomainAdversarial,
					Confidence: 0.65,
					Parameters: map[string]float64{"lambda": 0.3},
					Eligible:   minStability(0.3),
				},
			}
		},
		SelectBest: func(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
			// Large domain gaps (high complexity) call for adversarial
			// alignment; otherwise fine-tune.
			if task.Performance["complexity"] > 0.6 {
				return engine.FirstOfType(candidates, DomainAdversarial)
			}
			if task.Performance["accuracy"] < 0.4 {
				return engine.FirstOfType(candidates, FeatureExtraction)
			}
			return engine.FirstOfType(candidates, FineTuning)
		},
		EventThreshold: 0.45,
		NewEvent: func(id string, task *core.LearningTask, strategy *core.Strategy, r core.RandSource) (core.OutcomeEvent, error) {
			return newAdaptationEvent(id, task, r)
		},
		EventImpact: func(events []core.OutcomeEvent) float64 {
			// Transferred structure compounds with the target task.
			return 1.1
		},
		DerivedMetrics: map[string]float64{
			"transfer_gain": 0.9,
		},
	}
}
