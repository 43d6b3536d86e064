package modes

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/engine"
)

// MetaName identifies the meta learning (learning-to-learn) mode.
const MetaName = "meta_learning"

// Meta learning task types.
const (
	TaskDistribution       core.TaskType = "task_distribution"
	FewShotAdaptation      core.TaskType = "few_shot_adaptation"
	HyperparameterSearch   core.TaskType = "hyperparameter_search"
	RepresentationLearning core.TaskType = "representation_learning"
)

// Meta learning strategy types.
const (
	ModelAgnostic    core.StrategyType = "model_agnostic"
	MetricLearning   core.StrategyType = "metric_learning"
	OptimizerLearned core.StrategyType = "optimizer_learned"
)

// Meta builds the learning-to-learn mode.
func Meta() core.ModeSpec {
	return core.ModeSpec{
		Name:         MetaName,
		Prefix:       "ml",
		Algorithm:    "learning_to_learn",
		FallbackType: TaskDistribution,
		ShapeTypes: map[core.PayloadShape]core.TaskType{
			core.ShapeText:     FewShotAdaptation,
			core.ShapeNumeric:  HyperparameterSearch,
			core.ShapeSequence: RepresentationLearning,
		},
		ControlType: TaskDistribution,
		Strategies: func() []*core.Strategy {
			return []*core.Strategy{
				{
					ID:         "ml-maml",
					Name:       "Model-Agnostic Meta Learner",
					Type:       ModelAgnostic,
					Confidence: 0.75,
					Parameters: map[string]float64{"inner_steps": 5, "inner_lr": 0.01},
					Eligible:   minEfficiency(0.3),
				},
				{
					ID:         "ml-metric",
					Name:       "Metric Learner",
					Type:       MetricLearning,
					Confidence: 0.7,
					Parameters: map[string]float64{"embedding_dim": 64},
				},
				{
					ID:         "ml-optimizer",
					Name:       "Learned Optimizer",
					Type:       OptimizerLearned,
					Confidence: 0.65,
					Parameters: map[string]float64{"unroll_length": 20},
					Eligible:   minStability(0.4),
				},
			}
		},
		SelectBest: func(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
			// Few-shot style tasks (small groups) favor metric learning.
			if count, ok := task.Metadata["experience_count"].(int); ok && count <= 3 {
				return engine.FirstOfType(candidates, MetricLearning)
			}
			if task.Performance["accuracy"] < 0.5 {
				return engine.FirstOfType(candidates, ModelAgnostic)
			}
			return engine.FirstOfType(candidates, OptimizerLearned)
		},
		EventThreshold: 0.45,
		NewEvent: func(id string, task *core.LearningTask, strategy *core.Strategy, r core.RandSource) (core.OutcomeEvent, error) {
			return newAdaptationEvent(id, task, r)
		},
		EventImpact: func(events []core.OutcomeEvent) float64 {
			return 1.05
		},
		DerivedMetrics: map[string]float64{
			"generalization": 0.9,
		},
	}
}
