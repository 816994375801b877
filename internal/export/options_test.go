package export

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
)

type staticOptions struct {
	interpolation imaging.Interpolation
	quality       int
}

func (o *staticOptions) GetInterpolation() imaging.Interpolation { return o.interpolation }
func (o *staticOptions) GetJPEGQuality() int                     { return o.quality }

func TestOptionsRunner_Run(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeImage(t, filepath.Join(src, "icon.png"), 90, 90, imaging.FormatPNG)

	options := &staticOptions{interpolation: imaging.InterpolationLanczos3, quality: 80}
	runner := NewOptionsRunner(options)
	runner.SetClock(func() time.Time { return fixedNow })

	job := &model.ExportJob{
		SourceFolder:    src,
		DestinationRoot: dest,
		IOSScales:       []model.ScaleFactor{3, 1},
		Files:           []string{filepath.Join(src, "icon.png")},
	}

	sink := &recordingSink{}
	if err := runner.Run(context.Background(), job, sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	root := ExportRoot(dest, fixedNow)
	got := strings.Join(listFiles(t, root), ",")
	if got != "iOS/icon.png,iOS/icon@3x.png" {
		t.Errorf("Unexpected files: %s", got)
	}

	_, w, h := readConfig(t, filepath.Join(root, "iOS", "icon.png"))
	if w != 30 || h != 30 {
		t.Errorf("Expected 30x30, got %dx%d", w, h)
	}
}

func TestOptionsRunner_ReadsOptionsPerRun(t *testing.T) {
	options := &staticOptions{interpolation: imaging.InterpolationNearest, quality: 10}
	runner := NewOptionsRunner(options)

	first, err := runner.Pipeline()
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}
	options.quality = 95
	second, err := runner.Pipeline()
	if err != nil {
		t.Fatalf("Pipeline failed: %v", err)
	}

	if first.exporter.encoder.JPEGQuality() != 10 || second.exporter.encoder.JPEGQuality() != 95 {
		t.Errorf("Expected qualities 10 and 95, got %d and %d",
			first.exporter.encoder.JPEGQuality(), second.exporter.encoder.JPEGQuality())
	}
}

func TestOptionsRunner_UnknownInterpolation(t *testing.T) {
	dest := t.TempDir()
	runner := NewOptionsRunner(&staticOptions{interpolation: "sinc", quality: 90})

	err := runner.Run(context.Background(), &model.ExportJob{DestinationRoot: dest}, &recordingSink{})
	if err == nil || !strings.Contains(err.Error(), "failed to create renderer") {
		t.Errorf("Expected renderer error, got %v", err)
	}

	entries, _ := os.ReadDir(dest)
	if len(entries) != 0 {
		t.Errorf("Expected nothing written, got %d entries", len(entries))
	}
}
