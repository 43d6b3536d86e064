package engine

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
	"github.com/XiaoConstantine/adapt-go/pkg/metrics"
)

var titleCaser = cases.Title(language.English)

// humanize turns a snake_case tag into a display label.
func humanize(tag string) string {
	return titleCaser.String(strings.ReplaceAll(tag, "_", " "))
}

// buildInsights generates the run's descriptive lines in fixed order:
// task-insights, then strategy-insights, then event-insights, then the
// performance summary. Empty collections contribute no lines.
func (e *Engine) buildInsights(
	tasks []*core.LearningTask,
	applied []*core.Strategy,
	events []core.OutcomeEvent,
	records []*core.PerformanceRecord,
) []string {
	insights := []string{}

	if len(tasks) > 0 {
		var typeOrder []string
		seen := make(map[string]bool)
		for _, t := range tasks {
			label := humanize(string(t.Type))
			if !seen[label] {
				seen[label] = true
				typeOrder = append(typeOrder, label)
			}
		}
		insights = append(insights, fmt.Sprintf("Created %d learning task(s) covering: %s",
			len(tasks), strings.Join(typeOrder, ", ")))
	}

	if len(applied) > 0 {
		counts := make(map[core.StrategyType]int)
		var order []core.StrategyType
		for _, s := range applied {
			if counts[s.Type] == 0 {
				order = append(order, s.Type)
			}
			counts[s.Type]++
		}
		for _, st := range order {
			insights = append(insights, fmt.Sprintf("Applied %s strategy to %d task(s)",
				humanize(string(st)), counts[st]))
		}
	}

	if len(events) > 0 {
		counts := make(map[string]int)
		var order []string
		for _, ev := range events {
			label := eventLabel(ev)
			if counts[label] == 0 {
				order = append(order, label)
			}
			counts[label]++
		}
		for _, label := range order {
			insights = append(insights, fmt.Sprintf("Observed %d %s event(s)", counts[label], label))
		}
	}

	if len(records) > 0 {
		effs := make([]float64, 0, len(records))
		for _, r := range records {
			effs = append(effs, r.Efficiency())
		}
		insights = append(insights, fmt.Sprintf("Average efficiency at %.1f%% across evaluated tasks",
			metrics.Mean(effs, 0)*100))
	}

	return insights
}

// eventLabel names an event by its concrete sub-type.
func eventLabel(ev core.OutcomeEvent) string {
	switch e := ev.(type) {
	case *core.AdaptationEvent:
		return strings.ReplaceAll(string(e.Type), "_", " ")
	case *core.DriftDetection:
		return strings.ReplaceAll(string(e.Type), "_", " ")
	case *core.QueryResult:
		return "acquisition query"
	default:
		return string(ev.Kind())
	}
}
