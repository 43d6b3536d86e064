// Package display formats learning results and mode catalogs for the
// terminal.
package display

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/XiaoConstantine/adapt-go/pkg/core"
)

var (
	header  = color.New(color.Bold, color.FgBlue).SprintFunc()
	name    = color.New(color.Bold, color.FgGreen).SprintFunc()
	label   = color.New(color.FgCyan).SprintFunc()
	warning = color.New(color.FgYellow).SprintFunc()
)

// FormatResult renders one learning run.
func FormatResult(mode string, experiences int, result core.LearningResult, m core.Metrics) string {
	var output strings.Builder

	output.WriteString(header(fmt.Sprintf("Learning run: %s", mode)) + "\n")
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	output.WriteString(fmt.Sprintf("%s %d experiences in, %d task(s) resident\n",
		label("Batch:"), experiences, m.TotalTasks))
	output.WriteString(fmt.Sprintf("%s %.1f%%\n", label("Confidence:"), result.Confidence*100))
	output.WriteString(fmt.Sprintf("%s performance=%.2f stability=%.2f flexibility=%.2f efficiency=%.2f\n",
		label("Adaptation:"),
		result.AdaptationMetrics.Performance,
		result.AdaptationMetrics.Stability,
		result.AdaptationMetrics.Flexibility,
		result.AdaptationMetrics.Efficiency))
	output.WriteString("\n")

	if len(result.Insights) > 0 {
		output.WriteString(label("Insights:") + "\n")
		for _, insight := range result.Insights {
			output.WriteString(fmt.Sprintf("  - %s\n", insight))
		}
		output.WriteString("\n")
	}

	if len(result.Improvements) > 0 {
		output.WriteString(label("Improvements:") + "\n")
		for _, imp := range result.Improvements {
			output.WriteString(fmt.Sprintf("  - %s\n", imp.Description))
		}
		output.WriteString("\n")
	}

	output.WriteString(fmt.Sprintf("%s algorithm=%s strategies=%d events=%d avg_efficiency=%.1f%%\n",
		label("Totals:"), m.AlgorithmType, m.TotalStrategies, m.TotalEvents, m.AverageEfficiency*100))

	return output.String()
}

// FormatMode renders one mode catalog entry.
func FormatMode(spec core.ModeSpec) string {
	var output strings.Builder

	output.WriteString(name(spec.Name) + "\n")
	output.WriteString(fmt.Sprintf("  %s %s | %s %.2f\n",
		label("algorithm:"), spec.Algorithm,
		label("event threshold:"), spec.EventThreshold))

	if spec.Strategies != nil {
		var types []string
		for _, s := range spec.Strategies() {
			types = append(types, string(s.Type))
		}
		output.WriteString(fmt.Sprintf("  %s %s\n", label("strategies:"), strings.Join(types, ", ")))
	}
	output.WriteString("\n")

	return output.String()
}

// FormatHistory renders the persisted performance journal.
func FormatHistory(path string, records []*core.PerformanceRecord) string {
	var output strings.Builder

	output.WriteString(header(fmt.Sprintf("Run history: %s", path)) + "\n")
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(records) == 0 {
		output.WriteString(warning("No performance records yet.") + "\n")
		return output.String()
	}

	byStrategy := make(map[core.StrategyType]int)
	var strategyOrder []core.StrategyType
	var totalEff float64
	var adaptations, drifts, queries int
	for _, rec := range records {
		if byStrategy[rec.StrategyType] == 0 {
			strategyOrder = append(strategyOrder, rec.StrategyType)
		}
		byStrategy[rec.StrategyType]++
		totalEff += rec.Efficiency()
		adaptations += rec.Adaptations
		drifts += rec.DriftsDetected
		queries += rec.SamplesQueried
	}

	output.WriteString(fmt.Sprintf("%s %d record(s), avg efficiency %.1f%%\n",
		label("Records:"), len(records), totalEff/float64(len(records))*100))
	output.WriteString(fmt.Sprintf("%s adaptations=%d drifts=%d samples_queried=%d\n",
		label("Counters:"), adaptations, drifts, queries))

	output.WriteString(label("Strategies:") + "\n")
	for _, st := range strategyOrder {
		output.WriteString(fmt.Sprintf("  %-24s %d task(s)\n", st, byStrategy[st]))
	}

	return output.String()
}

// DatasetSummary aggregates what inspect reports about a batch.
type DatasetSummary struct {
	Path    string
	Total   int
	Labeled int
	Actions int
	Shapes  map[core.PayloadShape]int
}

var shapeNames = map[core.PayloadShape]string{
	core.ShapeUnknown:  "other",
	core.ShapeText:     "text",
	core.ShapeNumeric:  "numeric",
	core.ShapeSequence: "sequence",
}

// FormatDatasetSummary renders an inspect report.
func FormatDatasetSummary(s DatasetSummary) string {
	var output strings.Builder

	output.WriteString(header(s.Path) + "\n")
	output.WriteString(strings.Repeat("=", 50) + "\n\n")

	output.WriteString(fmt.Sprintf("%s %d record(s), %d labeled, %d unlabeled, %d with action tags\n",
		label("Records:"), s.Total, s.Labeled, s.Total-s.Labeled, s.Actions))

	output.WriteString(label("Shapes:"))
	for _, shape := range []core.PayloadShape{core.ShapeText, core.ShapeNumeric, core.ShapeSequence, core.ShapeUnknown} {
		if count := s.Shapes[shape]; count > 0 {
			output.WriteString(fmt.Sprintf(" %s=%d", shapeNames[shape], count))
		}
	}
	output.WriteString("\n")

	if s.Total == 0 {
		output.WriteString(warning("Batch is empty; a learning run would report neutral confidence.") + "\n")
	}

	return output.String()
}
