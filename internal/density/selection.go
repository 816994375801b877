package density

import (
	"github.com/ytget/asset-resizer/internal/model"
)

// Selection is the set of checked densities per platform. Values are immutable:
// Toggle returns a new Selection.
type Selection struct {
	checked map[model.Platform]map[model.ScaleFactor]bool
}

// NewSelection builds a selection from per-platform factor lists. Unsupported
// factors are ignored.
func NewSelection(ios, android []model.ScaleFactor) Selection {
	s := Selection{checked: make(map[model.Platform]map[model.ScaleFactor]bool)}
	for _, sf := range ios {
		s.set(model.PlatformIOS, sf, true)
	}
	for _, sf := range android {
		s.set(model.PlatformAndroid, sf, true)
	}
	return s
}

// Has reports whether a density is checked
func (s Selection) Has(p model.Platform, sf model.ScaleFactor) bool {
	return s.checked[p][sf]
}

// Scales returns checked factors for a platform, highest first
func (s Selection) Scales(p model.Platform) []model.ScaleFactor {
	var out []model.ScaleFactor
	for _, sf := range Scales(p) {
		if s.Has(p, sf) {
			out = append(out, sf)
		}
	}
	return out
}

// IsEmpty reports whether nothing is checked on either platform
func (s Selection) IsEmpty() bool {
	for _, p := range model.Platforms {
		if len(s.Scales(p)) > 0 {
			return false
		}
	}
	return true
}

// Toggle checks or unchecks one density and applies the cross-platform rules:
//   - a factor present in both tables (1, 2, 3) is mirrored onto the other platform;
//   - checking an Android density above the highest iOS density clears iOS.
//
// Unsupported factors leave the selection unchanged.
func (s Selection) Toggle(p model.Platform, sf model.ScaleFactor, on bool) Selection {
	if !IsSupported(p, sf) {
		return s
	}

	next := s.clone()
	next.set(p, sf, on)

	other := counterpart(p)
	if IsSupported(other, sf) {
		next.set(other, sf, on)
	}

	if on && p == model.PlatformAndroid && sf > Highest(Scales(model.PlatformIOS)) {
		delete(next.checked, model.PlatformIOS)
	}

	return next
}

func (s Selection) clone() Selection {
	c := Selection{checked: make(map[model.Platform]map[model.ScaleFactor]bool, len(s.checked))}
	for p, set := range s.checked {
		c.checked[p] = make(map[model.ScaleFactor]bool, len(set))
		for sf, v := range set {
			c.checked[p][sf] = v
		}
	}
	return c
}

func (s Selection) set(p model.Platform, sf model.ScaleFactor, on bool) {
	if !IsSupported(p, sf) {
		return
	}
	if s.checked == nil {
		return
	}
	if !on {
		delete(s.checked[p], sf)
		return
	}
	if s.checked[p] == nil {
		s.checked[p] = make(map[model.ScaleFactor]bool)
	}
	s.checked[p][sf] = true
}

func counterpart(p model.Platform) model.Platform {
	if p == model.PlatformIOS {
		return model.PlatformAndroid
	}
	return model.PlatformIOS
}
