package core

// PayloadShape is the broad classification of an experience payload used
// during task-type inference.
type PayloadShape int

const (
	ShapeUnknown PayloadShape = iota
	ShapeText
	ShapeNumeric
	ShapeSequence
)

// ClassifyPayload maps an experience payload to its broad shape. Unknown
// payloads are not an error; they fall through to the mode's fallback type.
func ClassifyPayload(data interface{}) PayloadShape {
	switch data.(type) {
	case string:
		return ShapeText
	case float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return ShapeNumeric
	case []interface{}, []float64, []int, []string:
		return ShapeSequence
	default:
		return ShapeUnknown
	}
}

// ModeSpec declares everything mode-specific about a learning mode: task-type
// inference, the strategy catalog, selection tie-breaking, outcome-event
// generation, and how events weigh on efficiency. The orchestration engine is
// parameterized by one ModeSpec and contains no per-mode branching.
type ModeSpec struct {
	// Name identifies the mode, e.g. "active_learning".
	Name string

	// Prefix seeds task and event ids, e.g. "al".
	Prefix string

	// Algorithm is the human-readable algorithm family reported by metrics.
	Algorithm string

	// FallbackType is used when neither metadata nor payload shape nor the
	// action tag yields a task type.
	FallbackType TaskType

	// ShapeTypes maps payload shapes to the mode's task types. Shapes absent
	// from the map fall through to ControlType or FallbackType.
	ShapeTypes map[PayloadShape]TaskType

	// ControlType is used for experiences carrying an action tag whose payload
	// shape is not otherwise mapped. Empty means no control-like type.
	ControlType TaskType

	// Strategies builds the mode's fixed catalog. Called once per Initialize.
	Strategies func() []*Strategy

	// SelectBest applies the mode's deterministic decision tree over the
	// task snapshot. Returning nil falls back to the first eligible candidate.
	SelectBest func(task *LearningTask, candidates []*Strategy) *Strategy

	// EventThreshold is the uniform-draw cutoff above which an outcome event
	// is produced.
	EventThreshold float64

	// NewEvent builds the mode's event variant for a (task, strategy) pair.
	// The id is assigned by the executor.
	NewEvent func(id string, task *LearningTask, strategy *Strategy, r RandSource) (OutcomeEvent, error)

	// EventImpact is the efficiency multiplier contributed by the task's
	// events. Modes differ on whether an event is good or bad news.
	EventImpact func(events []OutcomeEvent) float64

	// DerivedMetrics maps extra metric names to their fixed ratio of the
	// final efficiency value.
	DerivedMetrics map[string]float64

	// Annotate optionally enriches a freshly created task from its group,
	// e.g. recording a labeled/unlabeled split.
	Annotate func(task *LearningTask, group []ExperienceRecord)
}

// DrawSeverity samples a simulated event severity, uniform in [0,1).
func DrawSeverity(r RandSource) (float64, error) {
	return r.Float64()
}

// DrawEventConfidence samples a simulated event confidence, uniform in [0.5,1).
func DrawEventConfidence(r RandSource) (float64, error) {
	v, err := r.Float64()
	if err != nil {
		return 0, err
	}
	return 0.5 + 0.5*v, nil
}
