package density

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ytget/asset-resizer/internal/model"
)

// ErrUnsupportedScale is returned for a factor outside a platform's table
var ErrUnsupportedScale = errors.New("unsupported scale factor")

// Format pairs a scale factor with its output label
type Format struct {
	Scale model.ScaleFactor
	Label string
}

// Ordered highest density first.
var formats = map[model.Platform][]Format{
	model.PlatformIOS: {
		{Scale: 3, Label: "@3x"},
		{Scale: 2, Label: "@2x"},
		{Scale: 1, Label: ""},
	},
	model.PlatformAndroid: {
		{Scale: 4, Label: "xxxhdpi"},
		{Scale: 3, Label: "xxhdpi"},
		{Scale: 2, Label: "xhdpi"},
		{Scale: 1.5, Label: "hdpi"},
		{Scale: 1, Label: "mdpi"},
		{Scale: 0.75, Label: "ldpi"},
	},
}

// Formats returns a copy of the platform's table, highest density first
func Formats(p model.Platform) []Format {
	return append([]Format(nil), formats[p]...)
}

// Scales returns the supported factors for a platform, highest first
func Scales(p model.Platform) []model.ScaleFactor {
	table := formats[p]
	out := make([]model.ScaleFactor, 0, len(table))
	for _, f := range table {
		out = append(out, f.Scale)
	}
	return out
}

// IsSupported reports whether the platform's table contains the factor
func IsSupported(p model.Platform, sf model.ScaleFactor) bool {
	_, err := LabelFor(p, sf)
	return err == nil
}

// LabelFor returns the iOS filename suffix or Android density folder for a factor
func LabelFor(p model.Platform, sf model.ScaleFactor) (string, error) {
	table, ok := formats[p]
	if !ok {
		return "", fmt.Errorf("unknown platform: %s", p)
	}
	for _, f := range table {
		if f.Scale == sf {
			return f.Label, nil
		}
	}
	return "", fmt.Errorf("%w: %s %s", ErrUnsupportedScale, p, sf)
}

// Normalize validates requested factors, drops duplicates and orders them
// highest first.
func Normalize(p model.Platform, scales []model.ScaleFactor) ([]model.ScaleFactor, error) {
	seen := make(map[model.ScaleFactor]bool, len(scales))
	out := make([]model.ScaleFactor, 0, len(scales))
	for _, sf := range scales {
		if !IsSupported(p, sf) {
			return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedScale, p, sf)
		}
		if seen[sf] {
			continue
		}
		seen[sf] = true
		out = append(out, sf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out, nil
}

// Highest returns the largest factor, or 0 for an empty list
func Highest(scales []model.ScaleFactor) model.ScaleFactor {
	var highest model.ScaleFactor
	for _, sf := range scales {
		if sf > highest {
			highest = sf
		}
	}
	return highest
}
