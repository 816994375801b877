package imaging

import (
	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/model"
)

// ReferenceSize returns the size at scale 1.0, assuming the source is authored at
// the highest requested factor. With no factors the natural size is returned.
func ReferenceSize(natural model.Size, scales []model.ScaleFactor) model.Size {
	highest := density.Highest(scales)
	if highest <= 0 {
		return natural
	}
	return model.Size{
		Width:  natural.Width / float64(highest),
		Height: natural.Height / float64(highest),
	}
}

// TargetSize scales the reference size by a factor
func TargetSize(reference model.Size, sf model.ScaleFactor) model.Size {
	return reference.Scale(float64(sf))
}
