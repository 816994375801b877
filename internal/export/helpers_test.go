package export

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
)

var fixedNow = time.Date(2025, 3, 7, 14, 30, 0, 0, time.UTC)

// writeImage writes a w x h fixture encoded as png or jpeg
func writeImage(t *testing.T, path string, w, h int, format imaging.Format) {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create fixture %s: %v", path, err)
	}
	defer f.Close()

	if format == imaging.FormatPNG {
		err = png.Encode(f, img)
	} else {
		err = jpeg.Encode(f, img, nil)
	}
	if err != nil {
		t.Fatalf("Failed to encode fixture %s: %v", path, err)
	}
}

// readConfig returns the encoded format name and size of an image file
func readConfig(t *testing.T, path string) (string, int, int) {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	cfg, name, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("Failed to decode %s: %v", path, err)
	}
	return name, cfg.Width, cfg.Height
}

// listFiles returns every regular file under root as slash-separated relative paths
func listFiles(t *testing.T, root string) []string {
	t.Helper()

	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatalf("Failed to walk %s: %v", root, err)
	}
	sort.Strings(files)
	return files
}

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()

	renderer, err := imaging.NewRenderer(imaging.DefaultInterpolation)
	if err != nil {
		t.Fatalf("Failed to create renderer: %v", err)
	}
	p := NewPipeline(NewExporter(renderer, imaging.NewEncoder(imaging.DefaultJPEGQuality)))
	p.SetClock(func() time.Time { return fixedNow })
	return p
}

// recordingSink records every event it receives
type recordingSink struct {
	mu       sync.Mutex
	progress [][2]int
	stages   []string
	done     int
}

func (r *recordingSink) Progress(completed, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, [2]int{completed, total})
}

func (r *recordingSink) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
}

func (r *recordingSink) Stage(status model.JobStatus, root string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, status.String()+" "+root)
}

func joinLines(items []string) string {
	return strings.Join(items, "\n")
}
