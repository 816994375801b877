package config

import (
	"fmt"
	"os"

	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
	"gopkg.in/yaml.v3"
)

// JobFile describes a headless export run
type JobFile struct {
	Source        string    `yaml:"source"`
	Destination   string    `yaml:"destination"`
	IOS           []float64 `yaml:"ios"`
	Android       []float64 `yaml:"android"`
	Interpolation string    `yaml:"interpolation"`
	JPEGQuality   int       `yaml:"jpeg_quality"`
}

// LoadJobFile reads and parses a YAML job file
func LoadJobFile(path string) (*JobFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job JobFile
	if err := yaml.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job file: %w", err)
	}

	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job file: %w", err)
	}

	return &job, nil
}

// Validate checks the encoder options. Folder and scale checks happen when the
// job runs so the desktop and headless paths report them the same way.
func (j *JobFile) Validate() error {
	if j.Interpolation != "" && !isKnownInterpolation(imaging.Interpolation(j.Interpolation)) {
		return fmt.Errorf("unknown interpolation %q", j.Interpolation)
	}
	if j.JPEGQuality != 0 && (j.JPEGQuality < imaging.MinJPEGQuality || j.JPEGQuality > imaging.MaxJPEGQuality) {
		return fmt.Errorf("jpeg_quality must be between %d and %d, got %d",
			imaging.MinJPEGQuality, imaging.MaxJPEGQuality, j.JPEGQuality)
	}
	return nil
}

// GetInterpolation returns the configured kernel or the default
func (j *JobFile) GetInterpolation() imaging.Interpolation {
	if j.Interpolation == "" {
		return imaging.DefaultInterpolation
	}
	return imaging.Interpolation(j.Interpolation)
}

// GetJPEGQuality returns the configured quality or the default
func (j *JobFile) GetJPEGQuality() int {
	if j.JPEGQuality == 0 {
		return imaging.DefaultJPEGQuality
	}
	return j.JPEGQuality
}

// ExportJob builds the job for the given source files
func (j *JobFile) ExportJob(files []string) *model.ExportJob {
	return &model.ExportJob{
		SourceFolder:    j.Source,
		DestinationRoot: j.Destination,
		IOSScales:       toScales(j.IOS),
		AndroidScales:   toScales(j.Android),
		Files:           files,
	}
}

func toScales(values []float64) []model.ScaleFactor {
	scales := make([]model.ScaleFactor, 0, len(values))
	for _, v := range values {
		scales = append(scales, model.ScaleFactor(v))
	}
	return scales
}
