package export

import (
	"context"
	"fmt"
	"time"

	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
)

// Options supplies encoder settings. Both the desktop preferences and job
// files implement it.
type Options interface {
	GetInterpolation() imaging.Interpolation
	GetJPEGQuality() int
}

// OptionsRunner builds a fresh pipeline for every run, so option changes apply
// from the next run on.
type OptionsRunner struct {
	options Options
	now     func() time.Time
}

// NewOptionsRunner creates a runner reading options at the start of each run
func NewOptionsRunner(options Options) *OptionsRunner {
	return &OptionsRunner{
		options: options,
		now:     time.Now,
	}
}

// SetClock replaces the clock used to name the export folder
func (r *OptionsRunner) SetClock(now func() time.Time) {
	r.now = now
}

// Pipeline builds a pipeline from the current options
func (r *OptionsRunner) Pipeline() (*Pipeline, error) {
	renderer, err := imaging.NewRenderer(r.options.GetInterpolation())
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	pipeline := NewPipeline(NewExporter(renderer, imaging.NewEncoder(r.options.GetJPEGQuality())))
	pipeline.SetClock(r.now)
	return pipeline, nil
}

// Run implements JobRunner
func (r *OptionsRunner) Run(ctx context.Context, job *model.ExportJob, sink ProgressSink) error {
	pipeline, err := r.Pipeline()
	if err != nil {
		return err
	}
	return pipeline.Run(ctx, job, sink)
}
