package modes

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

// AdaptiveName identifies the adaptive learning mode.
const AdaptiveName = "adaptive_learning"

// Adaptive learning task types.
const (
	ParameterAdaptation    core.TaskType = "parameter_adaptation"
	ArchitectureAdaptation core.TaskType = "architecture_adaptation"
	StrategyAdaptation     core.TaskType = "strategy_adaptation"
	EnvironmentAdaptation  core.TaskType = "environment_adaptation"
)

// Adaptive learning strategy types.
const (
	GradientAdaptation core.StrategyType = "gradient_adaptation"
	Evolutionary       core.StrategyType = "evolutionary"
	ReinforcementStyle core.StrategyType = "reinforcement_style"
	BayesianTuning     core.StrategyType = "bayesian_tuning"
)

// Adaptive builds the adaptive mode: strategies reshape parameters or
// architecture in response to the environment. Adaptations improve
// efficiency.
func Adaptive() core.ModeSpec {
	return core.ModeSpec{
		Name:         AdaptiveName,
		Prefix:       "ad",
		Algorithm:    "self_tuning",
		FallbackType: ParameterAdaptation,
		ShapeTypes: map[core.PayloadShape]core.TaskType{
			core.ShapeText:     ParameterAdaptation,
			core.ShapeNumeric:  ParameterAdaptation,
			core.ShapeSequence: ArchitectureAdaptation,
		},
		ControlType: EnvironmentAdaptation,
		Strategies: func() []*core.Strategy {
			return []*core.Strategy{
				{
					ID:         "ad-gradient",
					Name:       "Gradient Adaptation",
					Type:       GradientAdaptation,
					Confidence: 0.8,
					Parameters: map[string]float64{"step_size": 0.01},
					Eligible:   minEfficiency(0.3),
				},
				{
					ID:         "ad-evolutionary",
					Name:       "Evolutionary Search",
					Type:       Evolutionary,
					Confidence: 0.7,
					Parameters: map[string]float64{"population": 20, "mutation_rate": 0.1},
					Eligible:   minEfficiency(0.2),
				},
				{
					ID:         "ad-reinforce",
					Name:       "Reinforcement Tuner",
					Type:       ReinforcementStyle,
					Confidence: 0.65,
					Parameters: map[string]float64{"discount": 0.95},
				},
				{
					ID:         "ad-bayesian",
					Name:       "Bayesian Tuning",
					Type:       BayesianTuning,
					Confidence: 0.75,
					Parameters: map[string]float64{"acquisition_kappa": 2.5},
					Eligible:   minStability(0.5),
				},
			}
		},
		SelectBest: func(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
			// High adaptation potential favors global evolutionary search; low
			// accuracy needs a reinforcement-style tuner; otherwise stay with
			// gradient steps.
			potential := 1 - task.Performance["stability"]
			if potential > 0.7 {
				return engine.FirstOfType(candidates, Evolutionary)
			}
			if task.Performance["accuracy"] < 0.5 {
				return engine.FirstOfType(candidates, ReinforcementStyle)
			}
			return engine.FirstOfType(candidates, GradientAdaptation)
		},
		EventThreshold: 0.4,
		NewEvent: func(id string, task *core.LearningTask, strategy *core.Strategy, r core.RandSource) (core.OutcomeEvent, error) {
			return newAdaptationEvent(id, task, r)
		},
		EventImpact: func(events []core.OutcomeEvent) float64 {
			// A successful adaptation lifts efficiency.
			return 1.15
		},
		DerivedMetrics: map[string]float64{
			"adaptation_speed": 0.9,
			"stability":        0.85,
		},
	}
}
