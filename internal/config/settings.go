package config

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/imaging"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeySourceDir          = "source_directory"
	KeyDestinationDir     = "destination_directory"
	KeyIOSScales          = "ios_scales"
	KeyAndroidScales      = "android_scales"
	KeyInterpolation      = "interpolation"
	KeyJPEGQuality        = "jpeg_quality"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = true
)

// Default density selection. Consistent with the selection rules: no Android
// density above the highest iOS one.
var (
	DefaultIOSScales     = []float64{3, 2, 1}
	DefaultAndroidScales = []float64{3, 2, 1.5, 1}
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetSourceDirectory returns the last used source folder, empty if none
func (s *Settings) GetSourceDirectory() string {
	return s.app.Preferences().String(KeySourceDir)
}

// SetSourceDirectory stores the source folder
func (s *Settings) SetSourceDirectory(dir string) {
	s.app.Preferences().SetString(KeySourceDir, dir)
}

// GetDestinationDirectory returns the configured destination directory
func (s *Settings) GetDestinationDirectory() string {
	dir := s.app.Preferences().String(KeyDestinationDir)
	if dir == "" {
		// Use system default Pictures directory
		defaultDir, err := platform.GetHomePicturesDir()
		if err != nil {
			defaultDir = filepath.Join("/tmp", platform.DefaultPicturesFolder)
		}
		s.SetDestinationDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDestinationDirectory sets the destination directory
func (s *Settings) SetDestinationDirectory(dir string) {
	s.app.Preferences().SetString(KeyDestinationDir, dir)
}

// GetScales returns the stored density selection for a platform
func (s *Settings) GetScales(p model.Platform) []model.ScaleFactor {
	key, fallback := scalesKey(p)
	values := s.app.Preferences().FloatListWithFallback(key, fallback)

	scales := make([]model.ScaleFactor, 0, len(values))
	for _, v := range values {
		sf := model.ScaleFactor(v)
		if density.IsSupported(p, sf) {
			scales = append(scales, sf)
		}
	}
	return scales
}

// SetScales stores the density selection for a platform
func (s *Settings) SetScales(p model.Platform, scales []model.ScaleFactor) {
	key, _ := scalesKey(p)
	values := make([]float64, 0, len(scales))
	for _, sf := range scales {
		values = append(values, float64(sf))
	}
	s.app.Preferences().SetFloatList(key, values)
}

// GetSelection returns the stored selection for both platforms
func (s *Settings) GetSelection() density.Selection {
	return density.NewSelection(s.GetScales(model.PlatformIOS), s.GetScales(model.PlatformAndroid))
}

// SetSelection stores the selection for both platforms
func (s *Settings) SetSelection(sel density.Selection) {
	for _, p := range model.Platforms {
		s.SetScales(p, sel.Scales(p))
	}
}

func scalesKey(p model.Platform) (string, []float64) {
	if p == model.PlatformIOS {
		return KeyIOSScales, DefaultIOSScales
	}
	return KeyAndroidScales, DefaultAndroidScales
}

// GetInterpolation returns the configured resampling kernel
func (s *Settings) GetInterpolation() imaging.Interpolation {
	name := imaging.Interpolation(s.app.Preferences().String(KeyInterpolation))
	if !isKnownInterpolation(name) {
		s.SetInterpolation(imaging.DefaultInterpolation)
		return imaging.DefaultInterpolation
	}
	return name
}

// SetInterpolation sets the resampling kernel. Unknown names fall back to the default.
func (s *Settings) SetInterpolation(name imaging.Interpolation) {
	if !isKnownInterpolation(name) {
		name = imaging.DefaultInterpolation
	}
	s.app.Preferences().SetString(KeyInterpolation, string(name))
}

// GetInterpolationOptions returns available resampling kernels
func (s *Settings) GetInterpolationOptions() []imaging.Interpolation {
	return imaging.Interpolations()
}

// GetJPEGQuality returns the JPEG encoder quality
func (s *Settings) GetJPEGQuality() int {
	value := s.app.Preferences().Int(KeyJPEGQuality)
	if value <= 0 {
		s.SetJPEGQuality(imaging.DefaultJPEGQuality)
		return imaging.DefaultJPEGQuality
	}
	return value
}

// SetJPEGQuality sets the JPEG encoder quality
func (s *Settings) SetJPEGQuality(quality int) {
	if quality < imaging.MinJPEGQuality {
		quality = imaging.MinJPEGQuality
	}
	if quality > imaging.MaxJPEGQuality {
		quality = imaging.MaxJPEGQuality
	}
	s.app.Preferences().SetInt(KeyJPEGQuality, quality)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to open the export folder after a run
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to open the export folder after a run
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

func isKnownInterpolation(name imaging.Interpolation) bool {
	for _, known := range imaging.Interpolations() {
		if name == known {
			return true
		}
	}
	return false
}
