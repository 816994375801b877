package ui

import (
	"testing"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/asset-resizer/internal/config"
	"github.com/ytget/asset-resizer/internal/imaging"
)

func TestSettingsDialog_Save(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetLanguage("en")
	window := test.NewWindow(nil)

	sd := NewSettingsDialog(settings, NewLocalization(), window, nil)
	sd.loadCurrentSettings()

	if sd.qualityEntry.Text != "90" {
		t.Errorf("Expected default quality 90, got %s", sd.qualityEntry.Text)
	}
	if sd.languageSelect.Selected != "English" {
		t.Errorf("Expected English selected, got %s", sd.languageSelect.Selected)
	}

	sd.destinationEntry.SetText("/exports")
	sd.interpolationSelect.SetSelected(string(imaging.InterpolationLanczos3))
	sd.qualityEntry.SetText("250")
	sd.languageSelect.SetSelected("Русский")
	sd.autoRevealCheck.SetChecked(false)
	sd.save()

	if settings.GetDestinationDirectory() != "/exports" {
		t.Errorf("Expected destination /exports, got %s", settings.GetDestinationDirectory())
	}
	if settings.GetInterpolation() != imaging.InterpolationLanczos3 {
		t.Errorf("Expected lanczos3, got %s", settings.GetInterpolation())
	}
	if settings.GetJPEGQuality() != imaging.MaxJPEGQuality {
		t.Errorf("Expected quality clamped to 100, got %d", settings.GetJPEGQuality())
	}
	if settings.GetLanguage() != "ru" {
		t.Errorf("Expected language ru, got %s", settings.GetLanguage())
	}
	if settings.GetAutoRevealOnComplete() {
		t.Error("Expected auto-reveal to be disabled")
	}
}

func TestSettingsDialog_SaveKeepsValuesOnBadInput(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	settings := config.NewSettings(app)
	settings.SetJPEGQuality(70)
	window := test.NewWindow(nil)

	sd := NewSettingsDialog(settings, NewLocalization(), window, nil)
	sd.loadCurrentSettings()
	sd.qualityEntry.SetText("abc")
	sd.save()

	if settings.GetJPEGQuality() != 70 {
		t.Errorf("Expected quality to stay 70, got %d", settings.GetJPEGQuality())
	}
}
