package ui

import (
	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// ExportForm is the editable state behind the main window. It is only touched
// from the UI thread.
type ExportForm struct {
	sourceFolder string
	destination  string
	files        []string
	selection    density.Selection
}

// NewExportForm creates a form with a stored destination and selection
func NewExportForm(destination string, selection density.Selection) *ExportForm {
	return &ExportForm{
		destination: destination,
		selection:   selection,
	}
}

// SetSourceFolder switches the source folder and rescans it. The folder is
// kept even when it cannot be read so the export reports it.
func (f *ExportForm) SetSourceFolder(dir string) error {
	f.sourceFolder = dir
	return f.RefreshFiles()
}

// RefreshFiles rescans the source folder
func (f *ExportForm) RefreshFiles() error {
	f.files = nil
	if f.sourceFolder == "" {
		return nil
	}

	files, err := platform.ListSourceImages(f.sourceFolder)
	if err != nil {
		return err
	}
	f.files = files
	return nil
}

// SetDestination sets the export destination root
func (f *ExportForm) SetDestination(dir string) {
	f.destination = dir
}

// Toggle updates the density selection and returns it
func (f *ExportForm) Toggle(p model.Platform, sf model.ScaleFactor, on bool) density.Selection {
	f.selection = f.selection.Toggle(p, sf, on)
	return f.selection
}

func (f *ExportForm) SourceFolder() string         { return f.sourceFolder }
func (f *ExportForm) Destination() string          { return f.destination }
func (f *ExportForm) Files() []string              { return f.files }
func (f *ExportForm) Selection() density.Selection { return f.selection }

// Job snapshots the form into an export job
func (f *ExportForm) Job() *model.ExportJob {
	files := make([]string, len(f.files))
	copy(files, f.files)

	return &model.ExportJob{
		SourceFolder:    f.sourceFolder,
		DestinationRoot: f.destination,
		IOSScales:       f.selection.Scales(model.PlatformIOS),
		AndroidScales:   f.selection.Scales(model.PlatformAndroid),
		Files:           files,
	}
}
