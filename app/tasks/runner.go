package tasks

import (
	"context"
	"log/slog"
)

var _ TaskRunnerInterface = (*Runner)(nil)

type RunSummary struct {
	Tasks     int
	Succeeded int
	Failed    int
	Entries   WalkResult
}

// Runner executes tasks sequentially. A failing task is logged and the
// next one still runs.
type Runner struct {
	queue []TaskInterface
}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Enqueue(task TaskInterface) {
	r.queue = append(r.queue, task)
}

func (r *Runner) Run(ctx context.Context) RunSummary {
	summary := RunSummary{Tasks: len(r.queue)}

	for _, task := range r.queue {
		if ctx.Err() != nil {
			slog.Warn("Run cancelled, skipping remaining tasks", "remaining", summary.Tasks-summary.Succeeded-summary.Failed)
			break
		}

		if r.execute(ctx, task) {
			summary.Succeeded++
		} else {
			summary.Failed++
		}

		if reporter, ok := task.(ResultReporter); ok {
			summary.Entries.Add(reporter.Result())
		}
	}

	r.queue = nil
	return summary
}

func (r *Runner) execute(ctx context.Context, task TaskInterface) bool {
	task.Start()

	if err := task.Execute(ctx); err != nil {
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"feed", task.GetFeedName(),
			"duration", task.GetDuration(),
			"error", err)
		return false
	}

	return true
}
