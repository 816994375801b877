package ui

import (
	"sort"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/asset-resizer/internal/config"
	"github.com/ytget/asset-resizer/internal/imaging"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	destinationEntry    *widget.Entry
	interpolationSelect *widget.Select
	qualityEntry        *widget.Entry
	languageSelect      *widget.Select
	autoRevealCheck     *widget.Check

	// languageCodes maps display names back to language codes
	languageCodes map[string]string
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs after
// the values were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func()) {
	NewSettingsDialog(settings, localization, window, onSaved).Show()
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:      settings,
		localization:  localization,
		window:        window,
		onSaved:       onSaved,
		languageCodes: make(map[string]string),
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	text := sd.localization.GetText

	// Destination directory selection
	sd.destinationEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(text(KeyBrowse), sd.onBrowseDirectory)
	destinationRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.destinationEntry)

	// Resampling kernel
	interpolationOptions := []string{}
	for _, name := range sd.settings.GetInterpolationOptions() {
		interpolationOptions = append(interpolationOptions, string(name))
	}
	sd.interpolationSelect = widget.NewSelect(interpolationOptions, nil)

	// JPEG quality
	sd.qualityEntry = widget.NewEntry()
	sd.qualityEntry.SetPlaceHolder(strconv.Itoa(imaging.MinJPEGQuality) + "-" + strconv.Itoa(imaging.MaxJPEGQuality))

	// Language selection by display name
	languageNames := []string{}
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.autoRevealCheck = widget.NewCheck(text(KeyAutoReveal), nil)

	form := widget.NewForm(
		widget.NewFormItem(text(KeyDestinationFolder), destinationRow),
		widget.NewFormItem(text(KeyInterpolation), sd.interpolationSelect),
		widget.NewFormItem(text(KeyJPEGQuality), sd.qualityEntry),
		widget.NewFormItem(text(KeyLanguage), sd.languageSelect),
		widget.NewFormItem("", sd.autoRevealCheck),
	)

	sd.dialog = dialog.NewCustomConfirm(
		text(KeySettings),
		text(KeySave),
		text(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogW, SettingsDialogH))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.destinationEntry.SetText(sd.settings.GetDestinationDirectory())
	sd.interpolationSelect.SetSelected(string(sd.settings.GetInterpolation()))
	sd.qualityEntry.SetText(strconv.Itoa(sd.settings.GetJPEGQuality()))
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoRevealOnComplete())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.destinationEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.save()

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// save stores the form values. Empty or malformed fields keep the stored value.
func (sd *SettingsDialog) save() {
	if dir := sd.destinationEntry.Text; dir != "" {
		sd.settings.SetDestinationDirectory(dir)
	}

	if sd.interpolationSelect.Selected != "" {
		sd.settings.SetInterpolation(imaging.Interpolation(sd.interpolationSelect.Selected))
	}

	if quality, err := strconv.Atoi(sd.qualityEntry.Text); err == nil {
		sd.settings.SetJPEGQuality(quality)
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	sd.settings.SetAutoRevealOnComplete(sd.autoRevealCheck.Checked)
}
