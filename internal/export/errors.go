package export

import (
	"errors"
	"fmt"

	"github.com/ytget/asset-resizer/internal/model"
)

var (
	ErrNoSourceFolder   = errors.New("select a source folder")
	ErrNoFiles          = errors.New("folder contains no valid images")
	ErrNoScales         = errors.New("no scale factors selected")
	ErrNoDestination    = errors.New("choose a destination folder")
	ErrExportInProgress = errors.New("export already in progress")
)

// ValidationError rejects a job before any work starts
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "invalid export job: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Task operations reported in TaskError
const (
	OpDecode = "decode"
	OpMkdir  = "mkdir"
	OpCreate = "create"
	OpEncode = "encode"
	OpWrite  = "write"
)

// TaskError reports the task that halted a run
type TaskError struct {
	Task model.ExportTask
	Op   string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Task, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
