package modes

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

// ReinforcementName identifies the reinforcement learning mode.
const ReinforcementName = "reinforcement_learning"

// Reinforcement learning task types.
const (
	PolicyLearning  core.TaskType = "policy_learning"
	ValueEstimation core.TaskType = "value_estimation"
	Exploration     core.TaskType = "exploration"
	RewardShaping   core.TaskType = "reward_shaping"
)

// Reinforcement learning strategy types.
const (
	PolicyGradient core.StrategyType = "policy_gradient"
	QLearning      core.StrategyType = "q_learning"
	ActorCritic    core.StrategyType = "actor_critic"
)

// Reinforcement builds the reinforcement mode: experiences carrying action
// tags are treated as control trajectories.
func Reinforcement() core.ModeSpec {
	return core.ModeSpec{
		Name:         ReinforcementName,
		Prefix:       "rl",
		Algorithm:    "policy_optimization",
		FallbackType: Exploration,
		ShapeTypes: map[core.PayloadShape]core.TaskType{
			core.ShapeNumeric:  ValueEstimation,
			core.ShapeSequence: RewardShaping,
		},
		ControlType: PolicyLearning,
		Strategies: func() []*core.Strategy {
			return []*core.Strategy{
				{
					ID:         "rl-pg",
					Name:       "Policy Gradient",
					Type:       PolicyGradient,
					Confidence: 0.7,
					Parameters: map[string]float64{"entropy_bonus": 0.01},
					Eligible:   minEfficiency(0.3),
				},
				{
					ID:         "rl-q",
					Name:       "Q Learning",
					Type:       QLearning,
					Confidence: 0.75,
					Parameters: map[string]float64{"epsilon": 0.1, "discount": 0.99},
				},
				{
					ID:         "rl-ac",
					Name:       "Actor Critic",
					Type:       ActorCritic,
					Confidence: 0.72,
					Parameters: map[string]float64{"critic_lr": 0.001},
					Eligible:   minStability(0.4),
				},
			}
		},
		SelectBest: func(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
			// Sparse-signal tasks keep exploring with Q learning; confident
			// tasks move to policy gradients.
			if task.Performance["accuracy"] < 0.5 {
				return engine.FirstOfType(candidates, QLearning)
			}
			if task.Performance["stability"] > 0.6 {
				return engine.FirstOfType(candidates, ActorCritic)
			}
			return engine.FirstOfType(candidates, PolicyGradient)
		},
		EventThreshold: 0.5,
		NewEvent: func(id string, task *core.LearningTask, strategy *core.Strategy, r core.RandSource) (core.OutcomeEvent, error) {
			return newAdaptationEvent(id, task, r)
		},
		EventImpact: func(events []core.OutcomeEvent) float64 {
			// Policy updates neither help nor hurt within a single batch.
			return 1.0
		},
		DerivedMetrics: map[string]float64{
			"reward_rate": 0.9,
			"exploration": 0.7,
		},
	}
}
