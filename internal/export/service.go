package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ytget/asset-resizer/internal/model"
)

const RunIDPrefix = "export-"

// Service runs export jobs on a background goroutine, one at a time
type Service struct {
	runner    JobRunner
	runs      map[string]*model.ExportRun
	cancels   map[string]context.CancelFunc
	runsMutex sync.RWMutex
	onUpdate  func(*model.ExportRun) // callback for UI updates
}

// NewService creates a new export service
func NewService(runner JobRunner) *Service {
	return &Service{
		runner:  runner,
		runs:    make(map[string]*model.ExportRun),
		cancels: make(map[string]context.CancelFunc),
	}
}

// SetUpdateCallback sets the callback function for run updates. The callback
// receives a snapshot and is invoked from the worker goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.ExportRun)) {
	s.runsMutex.Lock()
	s.onUpdate = callback
	s.runsMutex.Unlock()
}

// Start validates a job and runs it in the background. Validation errors are
// returned synchronously and no run is created.
func (s *Service) Start(job *model.ExportJob) (*model.ExportRun, error) {
	s.runsMutex.Lock()
	defer s.runsMutex.Unlock()

	for _, run := range s.runs {
		if run.Status.IsActive() {
			return nil, fmt.Errorf("%w: %s", ErrExportInProgress, run.ID)
		}
	}

	valid, err := Validate(job)
	if err != nil {
		return nil, err
	}

	run := &model.ExportRun{
		ID:        generateRunID(),
		Job:       valid,
		Status:    model.JobStatusValidating,
		Total:     valid.TaskCount(),
		StartedAt: time.Now(),
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.runs[run.ID] = run
	s.cancels[run.ID] = cancel

	go s.execute(ctx, run)

	snapshot := *run
	return &snapshot, nil
}

// StopExport asks a running export to stop before its next task
func (s *Service) StopExport(id string) error {
	s.runsMutex.Lock()
	run, exists := s.runs[id]
	if !exists {
		s.runsMutex.Unlock()
		return fmt.Errorf("export not found: %s", id)
	}
	if !run.Status.IsActive() {
		s.runsMutex.Unlock()
		return fmt.Errorf("export is not active: %s", run.Status)
	}
	run.Status = model.JobStatusStopping
	cancel := s.cancels[id]
	snapshot := *run
	s.runsMutex.Unlock()

	cancel()
	s.notifyUpdate(&snapshot)
	return nil
}

// GetRun returns a snapshot of a run by ID
func (s *Service) GetRun(id string) (*model.ExportRun, bool) {
	s.runsMutex.RLock()
	defer s.runsMutex.RUnlock()
	run, exists := s.runs[id]
	if !exists {
		return nil, false
	}
	snapshot := *run
	return &snapshot, true
}

// IsBusy reports whether a run is active
func (s *Service) IsBusy() bool {
	s.runsMutex.RLock()
	defer s.runsMutex.RUnlock()
	for _, run := range s.runs {
		if run.Status.IsActive() {
			return true
		}
	}
	return false
}

// execute performs the run and records its final state
func (s *Service) execute(ctx context.Context, run *model.ExportRun) {
	log.Printf("Export %s started: %d tasks", run.ID, run.Total)

	err := s.runner.Run(ctx, run.Job, &runSink{service: s, run: run})

	s.update(run, func(r *model.ExportRun) {
		switch {
		case err == nil:
			r.Status = model.JobStatusCompleted
		case errors.Is(err, context.Canceled):
			r.Status = model.JobStatusStopped
		default:
			r.Status = model.JobStatusError
			r.LastError = err.Error()
		}
		r.FinishedAt = time.Now()
	})

	s.runsMutex.Lock()
	if cancel, ok := s.cancels[run.ID]; ok {
		cancel()
		delete(s.cancels, run.ID)
	}
	s.runsMutex.Unlock()

	if err != nil {
		log.Printf("Export %s ended: %v", run.ID, err)
		return
	}
	log.Printf("Export %s completed", run.ID)
}

// update mutates a run under the lock and notifies with a snapshot
func (s *Service) update(run *model.ExportRun, mutate func(*model.ExportRun)) {
	s.runsMutex.Lock()
	mutate(run)
	snapshot := *run
	s.runsMutex.Unlock()

	s.notifyUpdate(&snapshot)
}

// notifyUpdate calls the update callback if set
func (s *Service) notifyUpdate(run *model.ExportRun) {
	s.runsMutex.RLock()
	callback := s.onUpdate
	s.runsMutex.RUnlock()

	if callback != nil {
		callback(run)
	}
}

// runSink feeds pipeline events into a run
type runSink struct {
	service *Service
	run     *model.ExportRun
}

func (rs *runSink) Stage(status model.JobStatus, exportRoot string) {
	rs.service.update(rs.run, func(r *model.ExportRun) {
		if r.Status != model.JobStatusStopping {
			r.Status = status
		}
		r.ExportRoot = exportRoot
	})
}

func (rs *runSink) Progress(completed, total int) {
	rs.service.update(rs.run, func(r *model.ExportRun) {
		r.SetProgress(completed, total)
	})
}

// Done is covered by execute, which sees the nil error
func (rs *runSink) Done() {}

// generateRunID generates a unique run ID using UUID v7 for time ordering
func generateRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(RunIDPrefix+"%d", time.Now().UnixNano())
	}
	return RunIDPrefix + id.String()
}
