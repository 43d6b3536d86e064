package engine

import (
	"fmt"
	"time"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// execute stochastically produces zero or one outcome event for a (task,
// strategy) pair. The single uniform draw against the mode threshold is the
// only nondeterminism in the pipeline; a failing random source aborts the run.
func (e *Engine) execute(task *core.LearningTask, strategy *core.Strategy) (core.OutcomeEvent, error) {
	draw, err := e.rand.Float64()
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ExecutionFailed, "random source failed"),
			errors.Fields{"task_id": task.ID, "strategy": strategy.ID})
	}

	if draw <= e.eventThreshold {
		return nil, nil
	}

	if e.spec.NewEvent == nil {
		return nil, nil
	}

	id := fmt.Sprintf("%s-ev-%d-%s", e.spec.Prefix, time.Now().UnixMilli(), shortID())
	event, err := e.spec.NewEvent(id, task, strategy, e.rand)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, errors.ExecutionFailed, "event generation failed"),
			errors.Fields{"task_id": task.ID, "strategy": strategy.ID})
	}
	if event == nil {
		return nil, nil
	}

	if err := e.events.Put(event.EventID(), event); err != nil {
		return nil, errors.Wrap(err, errors.ExecutionFailed, "failed to persist event")
	}
	e.indexEvent(event)

	return event, nil
}
