package export

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// Export folder naming
const (
	ExportFolderPrefix = "image_export_"
	ExportDateLayout   = "20060102"
)

// ExportRoot returns the dated folder inside dest. Runs on the same day share it.
func ExportRoot(dest string, now time.Time) string {
	return filepath.Join(dest, ExportFolderPrefix+now.Format(ExportDateLayout))
}

// PlatformDir returns the platform folder inside an export root
func PlatformDir(root string, p model.Platform) string {
	return filepath.Join(root, string(p))
}

// Validate checks a job and returns a copy with scale factors deduplicated and
// ordered highest first. Failures are *ValidationError.
func Validate(job *model.ExportJob) (*model.ExportJob, error) {
	if job == nil || job.SourceFolder == "" {
		return nil, &ValidationError{Err: ErrNoSourceFolder}
	}
	if len(job.Files) == 0 {
		return nil, &ValidationError{Err: ErrNoFiles}
	}

	ios, err := density.Normalize(model.PlatformIOS, job.IOSScales)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	android, err := density.Normalize(model.PlatformAndroid, job.AndroidScales)
	if err != nil {
		return nil, &ValidationError{Err: err}
	}
	if len(ios) == 0 && len(android) == 0 {
		return nil, &ValidationError{Err: ErrNoScales}
	}

	if job.DestinationRoot == "" {
		return nil, &ValidationError{Err: ErrNoDestination}
	}

	return &model.ExportJob{
		SourceFolder:    job.SourceFolder,
		DestinationRoot: job.DestinationRoot,
		IOSScales:       ios,
		AndroidScales:   android,
		Files:           append([]string(nil), job.Files...),
	}, nil
}

// Plan lists every task of a job under root, iOS first
func Plan(root string, job *model.ExportJob) ([]model.ExportTask, error) {
	valid, err := Validate(job)
	if err != nil {
		return nil, err
	}

	var tasks []model.ExportTask
	for _, p := range valid.Platforms() {
		pt, err := PlanPlatform(PlatformDir(root, p), p, valid.Files, valid.Scales(p))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, pt...)
	}
	return tasks, nil
}

// Pipeline drives an export job across platforms
type Pipeline struct {
	exporter *Exporter
	now      func() time.Time
}

// NewPipeline creates a pipeline using the wall clock for folder dates
func NewPipeline(exporter *Exporter) *Pipeline {
	return &Pipeline{
		exporter: exporter,
		now:      time.Now,
	}
}

// SetClock replaces the clock used to name the export folder
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Run validates and executes a job synchronously. A validation failure returns
// before anything is written. A task failure stops the run: no further tasks
// run and sink.Done is not called.
func (p *Pipeline) Run(ctx context.Context, job *model.ExportJob, sink ProgressSink) error {
	valid, err := Validate(job)
	if err != nil {
		return err
	}

	root := ExportRoot(valid.DestinationRoot, p.now())
	if err := platform.CreateDirectoryIfNotExists(root); err != nil {
		return fmt.Errorf("failed to create export folder: %w", err)
	}

	stager, _ := sink.(StageSink)
	total := valid.TaskCount()
	completed := 0

	log.Printf("Export started: %d files, %d tasks into %s", len(valid.Files), total, root)

	for _, pl := range valid.Platforms() {
		if stager != nil {
			stager.Stage(model.RunningStatus(pl), root)
		}

		dir := PlatformDir(root, pl)
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return fmt.Errorf("failed to create %s folder: %w", pl, err)
		}

		err := p.exporter.Export(ctx, pl, dir, valid.Files, valid.Scales(pl), func(model.ExportTask) {
			completed++
			sink.Progress(completed, total)
		})
		if err != nil {
			log.Printf("Export halted after %d/%d tasks: %v", completed, total, err)
			return err
		}
	}

	log.Printf("Export completed: %d tasks into %s", total, root)
	sink.Done()
	return nil
}
