package engine

import (
	"github.com/XiaoConstantine/adapt-go/pkg/core"
)

// findApplicable filters the catalog to strategies whose eligibility
// predicate holds for the task. A strategy without a predicate is always
// eligible. Catalog order is preserved.
func (e *Engine) findApplicable(task *core.LearningTask) []*core.Strategy {
	var candidates []*core.Strategy
	for _, s := range e.strategies {
		if s.Eligible == nil || s.Eligible(task) {
			candidates = append(candidates, s)
		}
	}
	return candidates
}

// selectBest applies the mode's decision tree over the task snapshot and
// falls back to the first eligible candidate. It is a pure function of the
// snapshot and the static catalog; nil means the task is skipped downstream.
func (e *Engine) selectBest(task *core.LearningTask, candidates []*core.Strategy) *core.Strategy {
	if len(candidates) == 0 {
		return nil
	}
	if e.spec.SelectBest != nil {
		if best := e.spec.SelectBest(task, candidates); best != nil {
			return best
		}
	}
	return candidates[0]
}

// FirstOfType returns the first candidate carrying the wanted strategy type,
// or nil. Mode decision trees use it to express type-keyed preferences.
func FirstOfType(candidates []*core.Strategy, want core.StrategyType) *core.Strategy {
	for _, s := range candidates {
		if s.Type == want {
			return s
		}
	}
	return nil
}
