package core

import (
	"time"
)

// ExperienceRecord is one unit of input data consumed by a learn run. The
// payload is opaque to the engine; only its broad shape is inspected during
// task extraction. Records are owned by the caller and never mutated.
type ExperienceRecord struct {
	Data       interface{}            `json:"data"`
	Action     string                 `json:"action,omitempty"`
	Confidence *float64               `json:"confidence,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}

// Conf is a convenience for building the optional confidence field.
func Conf(v float64) *float64 {
	return &v
}

// Labeled reports whether the record carries a confidence value. Records
// without one are treated as unlabeled data by modes that distinguish the two.
func (e ExperienceRecord) Labeled() bool {
	return e.Confidence != nil
}

// TaskType tags a learning task with a mode-specific category. Each mode
// defines its own closed set of types.
type TaskType string

// LearningTask is a grouped batch of experience records sharing an inferred
// type, carrying a performance snapshot. Tasks are created once per batch per
// type-group and never mutated after creation within a run.
type LearningTask struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Type        TaskType               `json:"type"`
	Performance map[string]float64     `json:"performance"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`

	// Labeled/Unlabeled split of the task's group, populated for modes that
	// distinguish records with and without a confidence value.
	Labeled   []ExperienceRecord `json:"-"`
	Unlabeled []ExperienceRecord `json:"-"`
}

// Efficiency returns the task's efficiency snapshot, or 0 when absent.
func (t *LearningTask) Efficiency() float64 {
	return t.Performance["efficiency"]
}

// StrategyType tags a strategy with a mode-specific category.
type StrategyType string

// Predicate is a pure eligibility test over a task's performance snapshot.
// Predicates must not depend on execution order or any mutable state.
type Predicate func(task *LearningTask) bool

// Strategy is a named, pre-configured approach drawn from a fixed per-mode
// catalog. Strategies are seeded at catalog-build time and read-only during
// a run; the engine never updates their performance map.
type Strategy struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Type        StrategyType       `json:"type"`
	Confidence  float64            `json:"confidence"`
	Parameters  map[string]float64 `json:"parameters,omitempty"`
	Performance map[string]float64 `json:"performance,omitempty"`

	Eligible Predicate `json:"-"`
}

// EventKind discriminates the outcome event variants.
type EventKind string

const (
	KindAdaptation EventKind = "adaptation"
	KindDrift      EventKind = "drift_detection"
	KindQuery      EventKind = "query_result"
)

// OutcomeEvent is a stochastically generated record describing what happened
// when a strategy was applied to a task. Exactly one variant is produced per
// (task, strategy) pair per run, or none.
type OutcomeEvent interface {
	EventID() string
	EventTaskID() string
	Kind() EventKind
}

// AdaptationType enumerates the adaptation event sub-types.
type AdaptationType string

const (
	ParameterUpdate        AdaptationType = "parameter_update"
	ArchitectureChange     AdaptationType = "architecture_change"
	StrategySwitch         AdaptationType = "strategy_switch"
	PerformanceImprovement AdaptationType = "performance_improvement"
)

// AdaptationTypes lists all adaptation sub-types in a fixed order for
// uniform sampling.
var AdaptationTypes = []AdaptationType{
	ParameterUpdate,
	ArchitectureChange,
	StrategySwitch,
	PerformanceImprovement,
}

// AdaptationEvent reports a simulated adaptation triggered by applying a
// strategy to a task.
type AdaptationEvent struct {
	ID                 string         `json:"id"`
	TaskID             string         `json:"task_id"`
	Type               AdaptationType `json:"type"`
	Severity           float64        `json:"severity"`
	Confidence         float64        `json:"confidence"`
	AdaptationRequired bool           `json:"adaptation_required"`
	DetectedAt         time.Time      `json:"detected_at"`
}

func (e *AdaptationEvent) EventID() string     { return e.ID }
func (e *AdaptationEvent) EventTaskID() string { return e.TaskID }
func (e *AdaptationEvent) Kind() EventKind     { return KindAdaptation }

// DriftType enumerates the drift detection sub-types.
type DriftType string

const (
	ConceptDrift DriftType = "concept_drift"
	DataDrift    DriftType = "data_drift"
	VirtualDrift DriftType = "virtual_drift"
	NoDrift      DriftType = "no_drift"
)

// DriftTypes lists all drift sub-types in a fixed order for uniform sampling.
var DriftTypes = []DriftType{
	ConceptDrift,
	DataDrift,
	VirtualDrift,
	NoDrift,
}

// DriftDetection reports a simulated distribution change observed while a
// strategy processed a task's stream.
type DriftDetection struct {
	ID                 string    `json:"id"`
	TaskID             string    `json:"task_id"`
	Type               DriftType `json:"type"`
	Severity           float64   `json:"severity"`
	Confidence         float64   `json:"confidence"`
	AdaptationRequired bool      `json:"adaptation_required"`
	DetectedAt         time.Time `json:"detected_at"`
}

func (e *DriftDetection) EventID() string     { return e.ID }
func (e *DriftDetection) EventTaskID() string { return e.TaskID }
func (e *DriftDetection) Kind() EventKind     { return KindDrift }

// QueryResult reports a simulated acquisition query issued by an active
// learning strategy.
type QueryResult struct {
	ID                  string    `json:"id"`
	TaskID              string    `json:"task_id"`
	SelectedSamples     []int     `json:"selected_samples"`
	AcquisitionScores   []float64 `json:"acquisition_scores"`
	ExpectedImprovement float64   `json:"expected_improvement"`
	QueryCost           float64   `json:"query_cost"`
	IssuedAt            time.Time `json:"issued_at"`
}

func (e *QueryResult) EventID() string     { return e.ID }
func (e *QueryResult) EventTaskID() string { return e.TaskID }
func (e *QueryResult) Kind() EventKind     { return KindQuery }

// PerformanceRecord is the derived per-task performance produced by the
// evaluator. It always carries an "efficiency" metric.
type PerformanceRecord struct {
	TaskID       string             `json:"task_id"`
	StrategyType StrategyType       `json:"strategy_type"`
	Metrics      map[string]float64 `json:"metrics"`

	// Mode-specific counters.
	Adaptations    int `json:"adaptations,omitempty"`
	DriftsDetected int `json:"drifts_detected,omitempty"`
	SamplesQueried int `json:"samples_queried,omitempty"`
}

// Efficiency returns the record's efficiency metric, or 0 when absent.
func (p *PerformanceRecord) Efficiency() float64 {
	return p.Metrics["efficiency"]
}

// Improvement describes one observed gain attributed to a strategy.
type Improvement struct {
	Type        string  `json:"type"`
	Magnitude   float64 `json:"magnitude"`
	Description string  `json:"description"`
}

// AdaptationMetrics summarizes run-level adaptation quality.
type AdaptationMetrics struct {
	Performance float64 `json:"performance"`
	Stability   float64 `json:"stability"`
	Flexibility float64 `json:"flexibility"`
	Efficiency  float64 `json:"efficiency"`
}

// LearningResult is produced once per learn call and is immutable.
type LearningResult struct {
	Success           bool              `json:"success"`
	Insights          []string          `json:"insights"`
	Confidence        float64           `json:"confidence"`
	Improvements      []Improvement     `json:"improvements"`
	AdaptationMetrics AdaptationMetrics `json:"adaptation_metrics"`
}

// Metrics is the read-only snapshot returned by a mode's PerformanceMetrics.
type Metrics struct {
	TotalTasks        int     `json:"total_tasks"`
	TotalStrategies   int     `json:"total_strategies"`
	AverageEfficiency float64 `json:"average_efficiency"`
	TotalEvents       int     `json:"total_events"`
	AlgorithmType     string  `json:"algorithm_type"`
	IsInitialized     bool    `json:"is_initialized"`
}
