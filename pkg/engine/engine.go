package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
	"github.com/XiaoConstantine/adapt-go/pkg/logging"
	"github.com/XiaoConstantine/adapt-go/pkg/metrics"
	"github.com/XiaoConstantine/adapt-go/pkg/store"
)

// Engine drives the five-stage learning pipeline for one mode: extract tasks
// from experiences, select a strategy per task, execute it, evaluate
// performance, and aggregate confidence and insights. One Engine instance
// owns its stores; Learn calls on the same instance are serialized.
type Engine struct {
	spec core.ModeSpec

	mu   sync.Mutex
	rand core.RandSource

	tasks        *store.Bounded[*core.LearningTask]
	events       *store.Bounded[core.OutcomeEvent]
	performances *store.Bounded[*core.PerformanceRecord]

	// eventsByTask lets eviction cascade and the evaluator find a task's
	// events without scanning the event store.
	eventsByTask map[string][]string

	strategies  []*core.Strategy
	strategyIDs map[string]*core.Strategy

	// journal, when set, receives a copy of every performance record for
	// retention beyond the in-memory bounds.
	journal store.Store[*core.PerformanceRecord]

	eventThreshold float64
	logger         *logging.Logger
	initialized    bool
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	taskCapacity        int
	eventCapacity       int
	performanceCapacity int
	retention           time.Duration
	rand                core.RandSource
	eventThreshold      *float64
	logger              *logging.Logger
	journal             store.Store[*core.PerformanceRecord]
}

// WithTaskCapacity bounds the task store. Zero means unbounded.
func WithTaskCapacity(n int) EngineOption {
	return func(o *engineOptions) { o.taskCapacity = n }
}

// WithEventCapacity bounds the event store. Zero means unbounded.
func WithEventCapacity(n int) EngineOption {
	return func(o *engineOptions) { o.eventCapacity = n }
}

// WithPerformanceCapacity bounds the performance store. Zero means unbounded.
func WithPerformanceCapacity(n int) EngineOption {
	return func(o *engineOptions) { o.performanceCapacity = n }
}

// WithRetention expires store entries older than d.
func WithRetention(d time.Duration) EngineOption {
	return func(o *engineOptions) { o.retention = d }
}

// WithRandSource injects the random source used by the executor. Tests pass a
// deterministic source; production code may substitute a real detector.
func WithRandSource(r core.RandSource) EngineOption {
	return func(o *engineOptions) { o.rand = r }
}

// WithEventThreshold overrides the mode's uniform-draw cutoff.
func WithEventThreshold(t float64) EngineOption {
	return func(o *engineOptions) { o.eventThreshold = &t }
}

// WithLogger sets the logger used by the engine.
func WithLogger(l *logging.Logger) EngineOption {
	return func(o *engineOptions) { o.logger = l }
}

// WithJournal mirrors every performance record into an external store, e.g. a
// SQLite-backed one for history across restarts.
func WithJournal(s store.Store[*core.PerformanceRecord]) EngineOption {
	return func(o *engineOptions) { o.journal = s }
}

// New creates an engine for a mode specification. Initialize (or the first
// Learn call) builds the strategy catalog.
func New(spec core.ModeSpec, opts ...EngineOption) *Engine {
	options := &engineOptions{}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{
		spec:         spec,
		eventsByTask: make(map[string][]string),
		strategyIDs:  make(map[string]*core.Strategy),
		journal:      options.journal,
		logger:       options.logger,
	}

	if e.logger == nil {
		e.logger = logging.GetLogger()
	}

	e.rand = options.rand
	if e.rand == nil {
		e.rand = core.NewRandSource()
	}

	e.eventThreshold = spec.EventThreshold
	if options.eventThreshold != nil {
		e.eventThreshold = *options.eventThreshold
	}

	e.tasks = store.NewBounded[*core.LearningTask](
		store.WithCapacity[*core.LearningTask](options.taskCapacity),
		store.WithMaxAge[*core.LearningTask](options.retention),
		store.WithOnEvict[*core.LearningTask](e.onTaskEvicted),
	)
	e.events = store.NewBounded[core.OutcomeEvent](
		store.WithCapacity[core.OutcomeEvent](options.eventCapacity),
		store.WithMaxAge[core.OutcomeEvent](options.retention),
		store.WithOnEvict[core.OutcomeEvent](e.onEventEvicted),
	)
	e.performances = store.NewBounded[*core.PerformanceRecord](
		store.WithCapacity[*core.PerformanceRecord](options.performanceCapacity),
		store.WithMaxAge[*core.PerformanceRecord](options.retention),
	)

	return e
}

// onTaskEvicted cascades an evicted task's events and performance record so
// no stored event ever references a missing task.
func (e *Engine) onTaskEvicted(taskID string, _ *core.LearningTask) {
	for _, eventID := range e.eventsByTask[taskID] {
		_ = e.events.Delete(eventID)
	}
	delete(e.eventsByTask, taskID)
	_ = e.performances.Delete(taskID)
}

func (e *Engine) onEventEvicted(eventID string, event core.OutcomeEvent) {
	taskID := event.EventTaskID()
	ids := e.eventsByTask[taskID]
	for i, id := range ids {
		if id == eventID {
			e.eventsByTask[taskID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}

// Mode returns the mode name this engine runs.
func (e *Engine) Mode() string {
	return e.spec.Name
}

// Initialize (re)builds the static strategy catalog and marks the engine
// ready. It is idempotent and may be called between runs.
func (e *Engine) Initialize() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initializeLocked()
}

func (e *Engine) initializeLocked() error {
	if e.spec.Strategies == nil {
		return errors.WithFields(
			errors.New(errors.ConfigurationError, "mode declares no strategy catalog"),
			errors.Fields{"mode": e.spec.Name})
	}

	catalog := e.spec.Strategies()
	e.strategies = make([]*core.Strategy, 0, len(catalog))
	e.strategyIDs = make(map[string]*core.Strategy, len(catalog))
	for _, s := range catalog {
		e.strategies = append(e.strategies, s)
		e.strategyIDs[s.ID] = s
	}

	e.initialized = true
	return nil
}

// Learn runs the full pipeline over one batch of experiences and returns the
// run's result. A failed run leaves the engine usable for the next call.
func (e *Engine) Learn(ctx context.Context, experiences []core.ExperienceRecord) (core.LearningResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	runID := uuid.NewString()[:8]
	ctx = logging.WithRunID(logging.WithModeID(ctx, e.spec.Name), runID)

	if err := errors.CheckContext(ctx, "learn"); err != nil {
		return core.LearningResult{}, e.failRun(ctx, "start", err)
	}

	if !e.initialized {
		if err := e.initializeLocked(); err != nil {
			return core.LearningResult{}, e.failRun(ctx, "initialize", err)
		}
	}

	e.logger.Debug(ctx, "learn started with %d experiences", len(experiences))

	// Extract
	tasks := e.extract(experiences)

	// Select
	selected := make(map[string]*core.Strategy, len(tasks))
	for _, task := range tasks {
		candidates := e.findApplicable(task)
		if best := e.selectBest(task, candidates); best != nil {
			selected[task.ID] = best
		}
		// A task with no eligible strategy is skipped, not an error.
	}

	// Execute
	runEvents := make(map[string][]core.OutcomeEvent, len(selected))
	for _, task := range tasks {
		strategy, ok := selected[task.ID]
		if !ok {
			continue
		}
		event, err := e.execute(task, strategy)
		if err != nil {
			return core.LearningResult{}, e.failRun(ctx, "execute", err)
		}
		if event != nil {
			runEvents[task.ID] = append(runEvents[task.ID], event)
		}
	}

	// Evaluate
	records := make([]*core.PerformanceRecord, 0, len(selected))
	for _, task := range tasks {
		strategy, ok := selected[task.ID]
		if !ok {
			continue
		}
		records = append(records, e.evaluate(task, strategy, runEvents[task.ID]))
	}

	// Aggregate
	applied := make([]*core.Strategy, 0, len(selected))
	for _, task := range tasks {
		if s, ok := selected[task.ID]; ok {
			applied = append(applied, s)
		}
	}
	var allEvents []core.OutcomeEvent
	for _, task := range tasks {
		allEvents = append(allEvents, runEvents[task.ID]...)
	}

	result := e.aggregate(tasks, applied, allEvents, records)

	e.logger.Info(ctx, "learn finished: tasks=%d events=%d confidence=%.3f",
		len(tasks), len(allEvents), result.Confidence)

	return result, nil
}

// failRun logs a stage failure and wraps it as the user-visible learning
// failure. Stores keep whatever completed stages persisted.
func (e *Engine) failRun(ctx context.Context, stage string, err error) error {
	e.logger.Error(ctx, "learn failed at %s stage: %v", stage, err)
	return errors.WithFields(
		errors.Wrap(err, errors.LearningFailed, "learning run failed"),
		errors.Fields{"mode": e.spec.Name, "stage": stage})
}

// PerformanceMetrics returns a read-only snapshot of running totals.
func (e *Engine) PerformanceMetrics() core.Metrics {
	e.mu.Lock()
	defer e.mu.Unlock()

	var efficiencies []float64
	for _, rec := range e.performances.Values() {
		efficiencies = append(efficiencies, rec.Efficiency())
	}

	return core.Metrics{
		TotalTasks:        e.tasks.Len(),
		TotalStrategies:   len(e.strategies),
		AverageEfficiency: metrics.Mean(efficiencies, 0),
		TotalEvents:       e.events.Len(),
		AlgorithmType:     e.spec.Algorithm,
		IsInitialized:     e.initialized,
	}
}

// Tasks returns the resident tasks, oldest first.
func (e *Engine) Tasks() []*core.LearningTask {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tasks.Values()
}

// Events returns the resident outcome events, oldest first.
func (e *Engine) Events() []core.OutcomeEvent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.events.Values()
}

// Performances returns the resident performance records, oldest first.
func (e *Engine) Performances() []*core.PerformanceRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.performances.Values()
}

// Strategies returns the current catalog in registration order.
func (e *Engine) Strategies() []*core.Strategy {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*core.Strategy{}, e.strategies...)
}

// AddTask upserts a task directly into the task store. Intended for tests and
// operator tooling.
func (e *Engine) AddTask(task *core.LearningTask) error {
	if task == nil || task.ID == "" {
		return errors.New(errors.InvalidInput, "task must have an id")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tasks.Put(task.ID, task)
}

// AddStrategy upserts a strategy into the catalog by id.
func (e *Engine) AddStrategy(strategy *core.Strategy) error {
	if strategy == nil || strategy.ID == "" {
		return errors.New(errors.InvalidInput, "strategy must have an id")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if existing, ok := e.strategyIDs[strategy.ID]; ok {
		for i, s := range e.strategies {
			if s == existing {
				e.strategies[i] = strategy
				break
			}
		}
	} else {
		e.strategies = append(e.strategies, strategy)
	}
	e.strategyIDs[strategy.ID] = strategy
	return nil
}

// AddEvent upserts an outcome event directly into the event store.
func (e *Engine) AddEvent(event core.OutcomeEvent) error {
	if event == nil || event.EventID() == "" {
		return errors.New(errors.InvalidInput, "event must have an id")
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.events.Put(event.EventID(), event); err != nil {
		return err
	}
	e.indexEvent(event)
	return nil
}

func (e *Engine) indexEvent(event core.OutcomeEvent) {
	taskID := event.EventTaskID()
	for _, id := range e.eventsByTask[taskID] {
		if id == event.EventID() {
			return
		}
	}
	e.eventsByTask[taskID] = append(e.eventsByTask[taskID], event.EventID())
}

// shortID returns a compact unique suffix so ids created in the same
// millisecond stay distinct.
func shortID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}
