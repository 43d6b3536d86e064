// Package adapt is a Go engine for running learning modes over batches of
// recorded experience: each run extracts tasks from the batch, selects a
// strategy from the mode's catalog, simulates its execution, evaluates the
// resulting performance, and aggregates everything into a confidence score
// with human-readable insights.
//
// The engine is mode-agnostic. A learning mode is a declarative
// specification (core.ModeSpec) naming its task types, strategy catalog,
// selection rules, and outcome-event behavior; the same pipeline code runs
// every mode.
//
// Key Components:
//
//   - Core: Fundamental types shared across the system: ExperienceRecord,
//     LearningTask, Strategy, the OutcomeEvent variants, LearningResult, the
//     mode registry, and the injectable RandSource that carries all of a
//     run's nondeterminism.
//
//   - Engine: The five-stage pipeline (extract, select, execute, evaluate,
//     aggregate) plus bounded entity stores with eviction that preserves
//     event-to-task referential integrity. LearnBatches runs independent
//     batches on a bounded goroutine pool.
//
//   - Modes: Six built-in learning modes, each registered by name:
//     * active_learning: pool-based sampling issuing acquisition queries
//     * online_learning: streaming updates watching for distribution drift
//     * adaptive_learning: self-tuning with efficiency-lifting adaptations
//     * meta_learning: learning-to-learn over small task groups
//     * transfer_learning: domain transfer keyed on domain-gap estimates
//     * reinforcement_learning: policy optimization over action trajectories
//
//   - Store: Generic bounded stores (capacity and age limits with eviction
//     callbacks) and a SQLite-backed store for run history across restarts.
//
//   - Datasets: Experience batch loaders for JSON and Parquet files.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//
//	    "github.com/XiaoConstantine/adapt-go/pkg/core"
//	    "github.com/XiaoConstantine/adapt-go/pkg/engine"
//	    "github.com/XiaoConstantine/adapt-go/pkg/modes"
//	)
//
//	func main() {
//	    e := engine.New(modes.Active())
//
//	    result, err := e.Learn(context.Background(), []core.ExperienceRecord{
//	        {Data: "labeled sample", Confidence: core.Conf(0.9)},
//	        {Data: "unlabeled sample"},
//	    })
//	    if err != nil {
//	        panic(err)
//	    }
//
//	    fmt.Printf("confidence: %.2f\n", result.Confidence)
//	    for _, insight := range result.Insights {
//	        fmt.Println(insight)
//	    }
//	}
package adapt
