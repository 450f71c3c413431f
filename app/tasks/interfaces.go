package tasks

import "context"

// TaskRunnerInterface runs queued tasks one after another.
// Example usage:
//
//	runner := NewRunner()
//	runner.Enqueue(NewExportFeedTask(...))
//	summary := runner.Run(ctx)
type TaskRunnerInterface interface {
	Enqueue(task TaskInterface)
	Run(ctx context.Context) RunSummary
}

// ResultReporter is implemented by tasks that walk a feed.
type ResultReporter interface {
	Result() WalkResult
}
