package engine

import (
	"fmt"
	"time"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/metrics"
)

// extract groups experiences by inferred task type and emits one task per
// non-empty group, in first-occurrence order. Created tasks are persisted
// into the task store. An empty batch yields no tasks and no error.
func (e *Engine) extract(experiences []core.ExperienceRecord) []*core.LearningTask {
	groups := make(map[core.TaskType][]core.ExperienceRecord)
	var order []core.TaskType

	for _, exp := range experiences {
		taskType := e.inferTaskType(exp)
		if _, seen := groups[taskType]; !seen {
			order = append(order, taskType)
		}
		groups[taskType] = append(groups[taskType], exp)
	}

	tasks := make([]*core.LearningTask, 0, len(order))
	for _, taskType := range order {
		task := e.buildTask(taskType, groups[taskType])
		_ = e.tasks.Put(task.ID, task)
		tasks = append(tasks, task)
	}
	return tasks
}

// inferTaskType applies the priority rule: explicit metadata wins, then
// payload shape, then the action tag, then the mode's fallback. Unknown
// shapes are never an error.
func (e *Engine) inferTaskType(exp core.ExperienceRecord) core.TaskType {
	if raw, ok := exp.Metadata["taskType"]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return core.TaskType(s)
		}
	}

	if t, ok := e.spec.ShapeTypes[core.ClassifyPayload(exp.Data)]; ok {
		return t
	}

	if exp.Action != "" && e.spec.ControlType != "" {
		return e.spec.ControlType
	}

	return e.spec.FallbackType
}

func (e *Engine) buildTask(taskType core.TaskType, group []core.ExperienceRecord) *core.LearningTask {
	now := time.Now()

	task := &core.LearningTask{
		ID:        fmt.Sprintf("%s-%s-%d-%s", e.spec.Prefix, taskType, now.UnixMilli(), shortID()),
		Name:      fmt.Sprintf("%s task", humanize(string(taskType))),
		Type:      taskType,
		CreatedAt: now,
		Metadata: map[string]interface{}{
			"experience_count": len(group),
		},
	}

	for _, exp := range group {
		if exp.Labeled() {
			task.Labeled = append(task.Labeled, exp)
		} else {
			task.Unlabeled = append(task.Unlabeled, exp)
		}
	}

	task.Performance = snapshotPerformance(group)

	if e.spec.Annotate != nil {
		e.spec.Annotate(task, group)
	}
	return task
}

// snapshotPerformance derives the task's baseline metrics from simple
// aggregate statistics over its group.
func snapshotPerformance(group []core.ExperienceRecord) map[string]float64 {
	var confidences []float64
	var totalSize float64
	for _, exp := range group {
		if exp.Confidence != nil {
			confidences = append(confidences, *exp.Confidence)
		}
		totalSize += payloadSize(exp.Data)
	}

	accuracy := metrics.Mean(confidences, 0.5)

	meanSize := 0.0
	if len(group) > 0 {
		meanSize = totalSize / float64(len(group))
	}
	complexity := metrics.Clamp01(meanSize / 50.0)

	// Confidence variance tops out at 0.25 on the unit interval, so scale it
	// back to [0,1] before inverting.
	stability := metrics.Clamp01(1 - 4*metrics.Variance(confidences))

	efficiency := metrics.Clamp01(accuracy * (0.6 + 0.4*stability))

	return map[string]float64{
		"accuracy":   accuracy,
		"complexity": complexity,
		"stability":  stability,
		"efficiency": efficiency,
	}
}

// payloadSize estimates data complexity from payload bulk.
func payloadSize(data interface{}) float64 {
	switch v := data.(type) {
	case string:
		return float64(len(v))
	case []interface{}:
		return float64(len(v))
	case []float64:
		return float64(len(v))
	case []int:
		return float64(len(v))
	case []string:
		return float64(len(v))
	case map[string]interface{}:
		return float64(len(v))
	default:
		return 1
	}
}
