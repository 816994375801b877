package model

import (
	"fmt"
	"math"
	"path/filepath"
	"time"
)

// Platform identifies a target asset convention
type Platform string

const (
	PlatformIOS     Platform = "iOS"
	PlatformAndroid Platform = "Android"
)

// Platforms lists every platform in export order
var Platforms = []Platform{PlatformIOS, PlatformAndroid}

// ScaleFactor is a requested output density relative to the reference size
type ScaleFactor float64

// String formats the factor without trailing zeros (0.75, 1, 1.5)
func (sf ScaleFactor) String() string {
	return fmt.Sprintf("%gx", float64(sf))
}

// Size is a real-valued width and height in pixels
type Size struct {
	Width  float64
	Height float64
}

// Scale multiplies both dimensions by factor
func (s Size) Scale(factor float64) Size {
	return Size{Width: s.Width * factor, Height: s.Height * factor}
}

// Pixels rounds the size to whole pixels, never below 1x1
func (s Size) Pixels() (int, int) {
	w := int(math.Round(s.Width))
	h := int(math.Round(s.Height))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// ExportJob describes one user-triggered run. It is read-only once started.
type ExportJob struct {
	SourceFolder    string
	DestinationRoot string
	IOSScales       []ScaleFactor
	AndroidScales   []ScaleFactor
	Files           []string
}

// Scales returns the requested factors for a platform
func (j *ExportJob) Scales(p Platform) []ScaleFactor {
	switch p {
	case PlatformIOS:
		return j.IOSScales
	case PlatformAndroid:
		return j.AndroidScales
	default:
		return nil
	}
}

// Platforms returns platforms that have at least one requested factor
func (j *ExportJob) Platforms() []Platform {
	var out []Platform
	for _, p := range Platforms {
		if len(j.Scales(p)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// TaskCount returns |files|*|iOS scales| + |files|*|Android scales|
func (j *ExportJob) TaskCount() int {
	return len(j.Files)*len(j.IOSScales) + len(j.Files)*len(j.AndroidScales)
}

// ExportTask is one (source file, platform, scale factor) unit of work
type ExportTask struct {
	SourcePath      string
	Platform        Platform
	Scale           ScaleFactor
	Label           string // "@2x" on iOS, "xhdpi" on Android
	DestinationPath string
	Size            Size // target size, known once the source is decoded
}

// String describes the task for error messages
func (t ExportTask) String() string {
	return fmt.Sprintf("%s %s %s", filepath.Base(t.SourcePath), t.Platform, t.Scale)
}

// ExportRun tracks one asynchronous execution of an ExportJob
type ExportRun struct {
	ID         string
	Job        *ExportJob
	Status     JobStatus
	Completed  int     // tasks finished
	Total      int     // tasks planned
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	ExportRoot string  // dated folder the run writes into
	LastError  string  // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// SetProgress records completed tasks and derives Progress and Percent
func (r *ExportRun) SetProgress(completed, total int) {
	r.Completed = completed
	r.Total = total
	if total <= 0 {
		r.Progress = 0
		r.Percent = 0
		return
	}
	r.Progress = float64(completed) / float64(total)
	r.Percent = completed * 100 / total
}

// GetProgressString returns "completed/total"
func (r *ExportRun) GetProgressString() string {
	return fmt.Sprintf("%d/%d", r.Completed, r.Total)
}

// GetElapsedString returns run duration formatted as mm:ss or hh:mm:ss, "—" if not started
func (r *ExportRun) GetElapsedString() string {
	if r.StartedAt.IsZero() {
		return "—"
	}
	end := r.FinishedAt
	if end.IsZero() {
		end = time.Now()
	}
	sec := int(end.Sub(r.StartedAt).Seconds())

	hours := sec / 3600
	minutes := (sec % 3600) / 60
	seconds := sec % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
