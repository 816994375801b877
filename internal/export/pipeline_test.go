package export

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
)

// sampleJob creates A.png (300x150) and B.jpg (90x60) in a temp source folder
func sampleJob(t *testing.T, ios, android []model.ScaleFactor) *model.ExportJob {
	t.Helper()

	src := t.TempDir()
	a := filepath.Join(src, "A.png")
	b := filepath.Join(src, "B.jpg")
	writeImage(t, a, 300, 150, imaging.FormatPNG)
	writeImage(t, b, 90, 60, imaging.FormatJPEG)

	return &model.ExportJob{
		SourceFolder:    src,
		DestinationRoot: t.TempDir(),
		IOSScales:       ios,
		AndroidScales:   android,
		Files:           []string{a, b},
	}
}

func TestExportRoot(t *testing.T) {
	got := ExportRoot("/out", fixedNow)
	expected := filepath.Join("/out", "image_export_20250307")
	if got != expected {
		t.Errorf("ExportRoot() = %s, expected %s", got, expected)
	}
}

func TestRun_WritesExpectedLayout(t *testing.T) {
	job := sampleJob(t, []model.ScaleFactor{1, 2, 3}, []model.ScaleFactor{1, 2})
	sink := &recordingSink{}

	if err := newTestPipeline(t).Run(context.Background(), job, sink); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	root := ExportRoot(job.DestinationRoot, fixedNow)
	expected := []string{
		"Android/mdpi/A.png",
		"Android/mdpi/B.jpg",
		"Android/xhdpi/A.png",
		"Android/xhdpi/B.jpg",
		"iOS/A.png",
		"iOS/A@2x.png",
		"iOS/A@3x.png",
		"iOS/B.jpg",
		"iOS/B@2x.jpg",
		"iOS/B@3x.jpg",
	}
	if got := listFiles(t, root); joinLines(got) != joinLines(expected) {
		t.Errorf("Unexpected export layout:\n%s\nexpected:\n%s", joinLines(got), joinLines(expected))
	}

	if len(sink.progress) != 10 {
		t.Fatalf("Expected 10 progress signals, got %d", len(sink.progress))
	}
	for i, p := range sink.progress {
		if p[0] != i+1 || p[1] != 10 {
			t.Errorf("Progress signal %d = %d/%d, expected %d/10", i, p[0], p[1], i+1)
		}
	}
	if sink.done != 1 {
		t.Errorf("Expected exactly one Done signal, got %d", sink.done)
	}

	expectedStages := []string{
		model.JobStatusRunningIOS.String() + " " + root,
		model.JobStatusRunningAndroid.String() + " " + root,
	}
	if joinLines(sink.stages) != joinLines(expectedStages) {
		t.Errorf("Stages = %v, expected %v", sink.stages, expectedStages)
	}
}

func TestRun_SizesAndFormats(t *testing.T) {
	job := sampleJob(t, []model.ScaleFactor{1, 2, 3}, []model.ScaleFactor{1, 2})
	if err := newTestPipeline(t).Run(context.Background(), job, SinkFuncs{}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	root := ExportRoot(job.DestinationRoot, fixedNow)
	tests := []struct {
		path   string
		format string
		w, h   int
	}{
		{"iOS/A.png", "png", 100, 50},
		{"iOS/A@2x.png", "png", 200, 100},
		{"iOS/A@3x.png", "png", 300, 150},
		{"iOS/B.jpg", "jpeg", 30, 20},
		{"iOS/B@2x.jpg", "jpeg", 60, 40},
		{"iOS/B@3x.jpg", "jpeg", 90, 60},
		{"Android/mdpi/A.png", "png", 150, 75},
		{"Android/xhdpi/A.png", "png", 300, 150},
		{"Android/mdpi/B.jpg", "jpeg", 45, 30},
		{"Android/xhdpi/B.jpg", "jpeg", 90, 60},
	}

	for _, test := range tests {
		name, w, h := readConfig(t, filepath.Join(root, filepath.FromSlash(test.path)))
		if name != test.format {
			t.Errorf("%s encoded as %s, expected %s", test.path, name, test.format)
		}
		if w != test.w || h != test.h {
			t.Errorf("%s is %dx%d, expected %dx%d", test.path, w, h, test.w, test.h)
		}
	}
}

func TestRun_SameDayRerunOverwrites(t *testing.T) {
	job := sampleJob(t, []model.ScaleFactor{2, 1}, []model.ScaleFactor{1.5})
	pipeline := newTestPipeline(t)

	if err := pipeline.Run(context.Background(), job, SinkFuncs{}); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	first := listFiles(t, job.DestinationRoot)

	if err := pipeline.Run(context.Background(), job, SinkFuncs{}); err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	second := listFiles(t, job.DestinationRoot)

	if len(first) != 6 {
		t.Errorf("Expected 6 files after first run, got %d: %v", len(first), first)
	}
	if joinLines(first) != joinLines(second) {
		t.Errorf("Rerun changed the file set:\n%s\nvs\n%s", joinLines(first), joinLines(second))
	}

	entries, err := os.ReadDir(job.DestinationRoot)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected a single dated export folder, got %d", len(entries))
	}
}

func TestRun_ValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(job *model.ExportJob)
		expected error
	}{
		{"no scales", func(j *model.ExportJob) { j.IOSScales, j.AndroidScales = nil, nil }, ErrNoScales},
		{"no files", func(j *model.ExportJob) { j.Files = nil }, ErrNoFiles},
		{"no source folder", func(j *model.ExportJob) { j.SourceFolder = "" }, ErrNoSourceFolder},
		{"no destination", func(j *model.ExportJob) { j.DestinationRoot = "" }, ErrNoDestination},
		{"unsupported iOS scale", func(j *model.ExportJob) { j.IOSScales = []model.ScaleFactor{4} }, density.ErrUnsupportedScale},
		{"unsupported Android scale", func(j *model.ExportJob) { j.AndroidScales = []model.ScaleFactor{2.5} }, density.ErrUnsupportedScale},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			job := sampleJob(t, []model.ScaleFactor{1}, []model.ScaleFactor{1})
			dest := job.DestinationRoot
			test.mutate(job)
			sink := &recordingSink{}

			err := newTestPipeline(t).Run(context.Background(), job, sink)

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if !errors.Is(err, test.expected) {
				t.Errorf("Expected %v, got %v", test.expected, err)
			}
			if len(sink.progress) != 0 || sink.done != 0 {
				t.Errorf("Expected no signals, got %d progress and %d done", len(sink.progress), sink.done)
			}
			if dest != "" {
				if entries, _ := os.ReadDir(dest); len(entries) != 0 {
					t.Errorf("Expected no writes, destination has %d entries", len(entries))
				}
			}
		})
	}
}

func TestRun_DecodeFailureHalts(t *testing.T) {
	src := t.TempDir()
	a := filepath.Join(src, "A.png")
	broken := filepath.Join(src, "broken.png")
	c := filepath.Join(src, "C.png")
	writeImage(t, a, 40, 40, imaging.FormatPNG)
	writeImage(t, c, 40, 40, imaging.FormatPNG)
	if err := os.WriteFile(broken, []byte("definitely not a png"), 0644); err != nil {
		t.Fatalf("Failed to write fixture: %v", err)
	}

	job := &model.ExportJob{
		SourceFolder:    src,
		DestinationRoot: t.TempDir(),
		IOSScales:       []model.ScaleFactor{1, 2},
		Files:           []string{a, broken, c},
	}
	sink := &recordingSink{}

	err := newTestPipeline(t).Run(context.Background(), job, sink)

	var taskErr *TaskError
	if !errors.As(err, &taskErr) {
		t.Fatalf("Expected TaskError, got %v", err)
	}
	if taskErr.Op != OpDecode || taskErr.Task.SourcePath != broken {
		t.Errorf("Expected decode failure on %s, got %s on %s", broken, taskErr.Op, taskErr.Task.SourcePath)
	}
	if len(sink.progress) != 2 {
		t.Errorf("Expected 2 progress signals before the failure, got %d", len(sink.progress))
	}
	if sink.done != 0 {
		t.Error("Done must not be signalled after a failure")
	}

	expected := []string{"iOS/A.png", "iOS/A@2x.png"}
	if got := listFiles(t, ExportRoot(job.DestinationRoot, fixedNow)); joinLines(got) != joinLines(expected) {
		t.Errorf("Expected only %v to be written, got %v", expected, got)
	}
}

func TestRun_WriteFailureHalts(t *testing.T) {
	job := sampleJob(t, []model.ScaleFactor{1, 2}, []model.ScaleFactor{1})
	root := ExportRoot(job.DestinationRoot, fixedNow)

	// A directory where iOS/A.png should go makes the second task fail.
	if err := os.MkdirAll(filepath.Join(root, "iOS", "A.png"), 0755); err != nil {
		t.Fatalf("Failed to create blocking directory: %v", err)
	}

	sink := &recordingSink{}
	err := newTestPipeline(t).Run(context.Background(), job, sink)

	var taskErr *TaskError
	if !errors.As(err, &taskErr) {
		t.Fatalf("Expected TaskError, got %v", err)
	}
	if taskErr.Op != OpCreate {
		t.Errorf("Expected create failure, got %s", taskErr.Op)
	}
	if taskErr.Task.Platform != model.PlatformIOS || taskErr.Task.Scale != 1 {
		t.Errorf("Expected failing task iOS 1x, got %s", taskErr.Task)
	}
	if len(sink.progress) != 1 || sink.done != 0 {
		t.Errorf("Expected 1 progress signal and no Done, got %d and %d", len(sink.progress), sink.done)
	}
	if _, err := os.Stat(filepath.Join(root, "Android")); !os.IsNotExist(err) {
		t.Error("Android export must not start after an iOS failure")
	}
}

func TestRun_CanceledBeforeFirstTask(t *testing.T) {
	job := sampleJob(t, []model.ScaleFactor{1}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := &recordingSink{}
	err := newTestPipeline(t).Run(ctx, job, sink)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if len(sink.progress) != 0 || sink.done != 0 {
		t.Errorf("Expected no signals, got %d progress and %d done", len(sink.progress), sink.done)
	}
}

func TestValidate_NormalizesScales(t *testing.T) {
	job := &model.ExportJob{
		SourceFolder:    "/src",
		DestinationRoot: "/out",
		IOSScales:       []model.ScaleFactor{1, 3, 1},
		Files:           []string{"/src/A.png"},
	}

	valid, err := Validate(job)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(valid.IOSScales) != 2 || valid.IOSScales[0] != 3 || valid.IOSScales[1] != 1 {
		t.Errorf("Expected iOS scales [3 1], got %v", valid.IOSScales)
	}
	if len(job.IOSScales) != 3 {
		t.Error("Validate must not modify the input job")
	}
	if valid.TaskCount() != 2 {
		t.Errorf("Expected 2 tasks, got %d", valid.TaskCount())
	}
}

func TestPlan(t *testing.T) {
	job := &model.ExportJob{
		SourceFolder:    "/src",
		DestinationRoot: "/out",
		IOSScales:       []model.ScaleFactor{1, 2, 3},
		AndroidScales:   []model.ScaleFactor{1, 2},
		Files:           []string{"/src/A.png", "/src/B.jpg"},
	}

	root := ExportRoot(job.DestinationRoot, fixedNow)
	tasks, err := Plan(root, job)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if len(tasks) != job.TaskCount() {
		t.Fatalf("Expected %d tasks, got %d", job.TaskCount(), len(tasks))
	}

	first := tasks[0]
	if first.Platform != model.PlatformIOS || first.Scale != 3 || first.SourcePath != "/src/A.png" {
		t.Errorf("Unexpected first task: %s", first)
	}
	if first.DestinationPath != filepath.Join(root, "iOS", "A@3x.png") {
		t.Errorf("Unexpected first destination: %s", first.DestinationPath)
	}

	last := tasks[len(tasks)-1]
	if last.DestinationPath != filepath.Join(root, "Android", "mdpi", "B.jpg") {
		t.Errorf("Unexpected last destination: %s", last.DestinationPath)
	}

	if _, err := Plan(root, &model.ExportJob{}); err == nil {
		t.Error("Expected Plan to reject an empty job")
	}
}
