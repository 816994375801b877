package export

import (
	"context"

	"github.com/ytget/asset-resizer/internal/model"
)

// ProgressSink receives run events from the worker goroutine. Implementations
// that touch UI state must marshal onto the UI thread themselves.
type ProgressSink interface {
	// Progress is called once per written file
	Progress(completed, total int)
	// Done is called once after every task finished
	Done()
}

// StageSink is optionally implemented by a ProgressSink to observe the
// platform currently being exported.
type StageSink interface {
	Stage(status model.JobStatus, exportRoot string)
}

// SinkFuncs adapts plain functions to ProgressSink. Nil fields are skipped.
type SinkFuncs struct {
	OnProgress func(completed, total int)
	OnDone     func()
}

func (f SinkFuncs) Progress(completed, total int) {
	if f.OnProgress != nil {
		f.OnProgress(completed, total)
	}
}

func (f SinkFuncs) Done() {
	if f.OnDone != nil {
		f.OnDone()
	}
}

// JobRunner executes one job synchronously
type JobRunner interface {
	Run(ctx context.Context, job *model.ExportJob, sink ProgressSink) error
}

// Runner defines the interface for the background export service.
type Runner interface {
	SetUpdateCallback(func(*model.ExportRun))
	Start(job *model.ExportJob) (*model.ExportRun, error)
	StopExport(id string) error
	GetRun(id string) (*model.ExportRun, bool)
	IsBusy() bool
}
