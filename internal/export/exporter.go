package export

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// Exporter writes every requested variant of a set of files for one platform
type Exporter struct {
	renderer imaging.Renderer
	encoder  *imaging.Encoder
}

// NewExporter creates an exporter
func NewExporter(renderer imaging.Renderer, encoder *imaging.Encoder) *Exporter {
	return &Exporter{
		renderer: renderer,
		encoder:  encoder,
	}
}

// DestinationPath returns where a variant of source is written inside the
// platform folder dir. iOS appends the suffix to the name, Android uses the
// density as a subfolder and keeps the name.
func DestinationPath(dir string, p model.Platform, label, source string) string {
	base := filepath.Base(source)
	if p == model.PlatformAndroid {
		return filepath.Join(dir, label, base)
	}
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+label+ext)
}

// PlanPlatform lists the tasks for one platform, files outer and scales inner,
// without touching the filesystem. Sizes are left empty.
func PlanPlatform(dir string, p model.Platform, files []string, scales []model.ScaleFactor) ([]model.ExportTask, error) {
	tasks := make([]model.ExportTask, 0, len(files)*len(scales))
	for _, file := range files {
		for _, sf := range scales {
			label, err := density.LabelFor(p, sf)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, model.ExportTask{
				SourcePath:      file,
				Platform:        p,
				Scale:           sf,
				Label:           label,
				DestinationPath: DestinationPath(dir, p, label, file),
			})
		}
	}
	return tasks, nil
}

// Export decodes each file once and writes one variant per scale factor into
// dir. step is called after each written file. The first failure stops the
// export; the context is checked before every task.
func (e *Exporter) Export(ctx context.Context, p model.Platform, dir string, files []string, scales []model.ScaleFactor, step func(model.ExportTask)) error {
	tasks, err := PlanPlatform(dir, p, files, scales)
	if err != nil {
		return err
	}

	var (
		img       image.Image
		reference model.Size
		decoded   string
	)
	for _, task := range tasks {
		if err := ctx.Err(); err != nil {
			return err
		}

		if task.SourcePath != decoded {
			var natural model.Size
			img, natural, err = imaging.Decode(task.SourcePath)
			if err != nil {
				return &TaskError{Task: task, Op: OpDecode, Err: err}
			}
			reference = imaging.ReferenceSize(natural, scales)
			decoded = task.SourcePath
		}

		task.Size = imaging.TargetSize(reference, task.Scale)
		if err := e.write(img, task); err != nil {
			return err
		}

		w, h := task.Size.Pixels()
		log.Printf("Exported %s (%dx%d)", task.DestinationPath, w, h)

		if step != nil {
			step(task)
		}
	}
	return nil
}

// write renders and encodes one task, overwriting an existing file
func (e *Exporter) write(img image.Image, task model.ExportTask) error {
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(task.DestinationPath)); err != nil {
		return &TaskError{Task: task, Op: OpMkdir, Err: err}
	}

	w, h := task.Size.Pixels()
	resized := e.renderer.Render(img, w, h)

	f, err := os.Create(task.DestinationPath)
	if err != nil {
		return &TaskError{Task: task, Op: OpCreate, Err: err}
	}

	if err := e.encoder.Encode(f, resized, imaging.FormatForPath(task.SourcePath)); err != nil {
		f.Close()
		return &TaskError{Task: task, Op: OpEncode, Err: err}
	}

	if err := f.Close(); err != nil {
		return &TaskError{Task: task, Op: OpWrite, Err: fmt.Errorf("failed to close %s: %w", task.DestinationPath, err)}
	}
	return nil
}
