package ui

import (
	"errors"
	"fmt"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/time/rate"

	"github.com/ytget/asset-resizer/internal/config"
	"github.com/ytget/asset-resizer/internal/density"
	"github.com/ytget/asset-resizer/internal/export"
	"github.com/ytget/asset-resizer/internal/model"
	"github.com/ytget/asset-resizer/internal/platform"
)

// RootUI represents the main UI structure
type RootUI struct {
	window       fyne.Window
	runner       export.Runner
	settings     *config.Settings
	localization *Localization
	form         *ExportForm

	sourceTitle    *widget.Label
	sourceLabel    *widget.Label
	sourceBtn      *widget.Button
	fileCountLabel *widget.Label
	destTitle      *widget.Label
	destLabel      *widget.Label
	destBtn        *widget.Button
	checks         map[model.Platform]map[model.ScaleFactor]*widget.Check
	exportBtn      *widget.Button
	stopBtn        *widget.Button
	progressBar    *widget.ProgressBar
	percentLabel   *widget.Label
	statusLabel    *widget.Label

	// syncing suppresses checkbox callbacks while the selection is applied
	syncing bool

	runID   string
	limiter *rate.Limiter
	watcher *platform.FolderWatcher
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, runner export.Runner, settings *config.Settings) *RootUI {
	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		window:       window,
		runner:       runner,
		settings:     settings,
		localization: localization,
		form:         NewExportForm(settings.GetDestinationDirectory(), settings.GetSelection()),
		checks:       make(map[model.Platform]map[model.ScaleFactor]*widget.Check),
		limiter:      rate.NewLimiter(rate.Every(StatusRefreshInterval), StatusRefreshBurst),
	}

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callback for run updates
	ui.runner.SetUpdateCallback(ui.onRunUpdate)

	ui.setupUI()

	if dir := settings.GetSourceDirectory(); dir != "" {
		ui.setSourceFolder(dir)
	}
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.sourceTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.sourceLabel = widget.NewLabel("")
	ui.sourceLabel.Truncation = fyne.TextTruncateEllipsis
	ui.sourceBtn = widget.NewButton("", ui.onChooseSource)
	ui.fileCountLabel = widget.NewLabel("")

	ui.destTitle = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	ui.destLabel = widget.NewLabel(ui.form.Destination())
	ui.destLabel.Truncation = fyne.TextTruncateEllipsis
	ui.destBtn = widget.NewButton("", ui.onChooseDestination)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	sourceRow := container.NewBorder(nil, nil, nil, ui.sourceBtn, ui.sourceLabel)
	destRow := container.NewBorder(nil, nil, nil, ui.destBtn, ui.destLabel)

	densities := container.NewGridWithColumns(2,
		ui.createDensityColumn(model.PlatformIOS, SectionIOS, ColorNameIOS),
		ui.createDensityColumn(model.PlatformAndroid, SectionAndroid, ColorNameAndroid),
	)
	ui.applySelection(ui.form.Selection())

	ui.exportBtn = widget.NewButton("", ui.onExportClick)
	ui.exportBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton("", ui.onStopClick)
	ui.stopBtn.Disable()

	ui.progressBar = widget.NewProgressBar()
	ui.progressBar.TextFormatter = func() string { return "" }
	ui.percentLabel = widget.NewLabel(fmt.Sprintf(ProgressLabelFormat, 0))
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	progressRow := container.NewBorder(nil, nil, nil, ui.percentLabel, ui.progressBar)
	buttons := container.NewHBox(settingsBtn, ui.stopBtn, ui.exportBtn)

	content := container.NewVBox(
		ui.sourceTitle,
		sourceRow,
		ui.fileCountLabel,
		widget.NewSeparator(),
		ui.destTitle,
		destRow,
		widget.NewSeparator(),
		densities,
		widget.NewSeparator(),
		progressRow,
		ui.statusLabel,
		container.NewBorder(nil, nil, nil, buttons),
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewPadded(content))

	log.Printf("UI setup completed successfully")
}

// createDensityColumn builds one platform's checkboxes, highest density first
func (ui *RootUI) createDensityColumn(p model.Platform, title string, accent fyne.ThemeColorName) fyne.CanvasObject {
	header := canvas.NewText(title, theme.Color(accent))
	header.TextStyle = fyne.TextStyle{Bold: true}

	column := container.NewVBox(header)
	ui.checks[p] = make(map[model.ScaleFactor]*widget.Check)

	for _, format := range density.Formats(p) {
		sf := format.Scale // Capture for closure
		check := widget.NewCheck(checkLabel(p, format), func(on bool) {
			ui.onCheckChanged(p, sf, on)
		})
		ui.checks[p][sf] = check
		column.Add(check)
	}
	return column
}

// checkLabel names a density the way each platform's tooling does
func checkLabel(p model.Platform, format density.Format) string {
	if p == model.PlatformIOS {
		return fmt.Sprintf("@%s", format.Scale)
	}
	return fmt.Sprintf("%s (%s)", format.Label, format.Scale)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	ui.sourceTitle.SetText(ui.localization.GetText(KeySourceFolder))
	ui.destTitle.SetText(ui.localization.GetText(KeyDestinationFolder))
	ui.sourceBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyChooseFolder))
	ui.destBtn.SetText(IconFolder + " " + ui.localization.GetText(KeyChooseFolder))
	ui.exportBtn.SetText(IconExport + " " + ui.localization.GetText(KeyExport))
	ui.stopBtn.SetText(IconStop + " " + ui.localization.GetText(KeyStop))

	ui.refreshSourceTexts()

	if run := ui.currentRun(); run != nil {
		ui.renderRun(run)
	} else {
		ui.statusLabel.SetText(ui.localization.GetText(KeyReady))
	}
}

// refreshSourceTexts shows the source folder and how many images it holds
func (ui *RootUI) refreshSourceTexts() {
	if ui.form.SourceFolder() == "" {
		ui.sourceLabel.SetText(ui.localization.GetText(KeyNoSourceFolderChosen))
		ui.fileCountLabel.SetText("")
		return
	}
	ui.sourceLabel.SetText(ui.form.SourceFolder())
	ui.fileCountLabel.SetText(fmt.Sprintf(ui.localization.GetText(KeyImagesFound), len(ui.form.Files())))
}

// onChooseSource opens a folder picker for the source images
func (ui *RootUI) onChooseSource() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.setSourceFolder(uri.Path())
	}, ui.window)
}

// setSourceFolder scans a new source folder and watches it for changes
func (ui *RootUI) setSourceFolder(dir string) {
	ui.settings.SetSourceDirectory(dir)

	if err := ui.form.SetSourceFolder(dir); err != nil {
		log.Printf("Failed to list source folder %s: %v", dir, err)
		ui.statusLabel.SetText(fmt.Sprintf("%s: %v", ui.localization.GetText(KeyErrorReadingFolder), err))
	}
	ui.refreshSourceTexts()
	ui.watchSourceFolder(dir)
}

// watchSourceFolder replaces the folder watcher
func (ui *RootUI) watchSourceFolder(dir string) {
	if ui.watcher != nil {
		ui.watcher.Close()
		ui.watcher = nil
	}

	watcher, err := platform.NewFolderWatcher(dir, platform.DefaultWatchDebounce, func() {
		fyne.Do(ui.onSourceFolderChanged)
	})
	if err != nil {
		log.Printf("Source folder will not be watched: %v", err)
		return
	}
	ui.watcher = watcher
}

// onSourceFolderChanged rescans after the watcher fired
func (ui *RootUI) onSourceFolderChanged() {
	if err := ui.form.RefreshFiles(); err != nil {
		log.Printf("Failed to rescan source folder: %v", err)
	}
	ui.refreshSourceTexts()
}

// onChooseDestination opens a folder picker for the export root
func (ui *RootUI) onChooseDestination() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		ui.setDestination(uri.Path())
	}, ui.window)
}

func (ui *RootUI) setDestination(dir string) {
	ui.form.SetDestination(dir)
	ui.settings.SetDestinationDirectory(dir)
	ui.destLabel.SetText(dir)
}

// onCheckChanged applies the selection rules after a checkbox changed
func (ui *RootUI) onCheckChanged(p model.Platform, sf model.ScaleFactor, on bool) {
	if ui.syncing {
		return
	}

	selection := ui.form.Toggle(p, sf, on)
	ui.settings.SetSelection(selection)
	ui.applySelection(selection)
}

// applySelection mirrors a selection onto the checkboxes
func (ui *RootUI) applySelection(selection density.Selection) {
	ui.syncing = true
	defer func() { ui.syncing = false }()

	for p, checks := range ui.checks {
		for sf, check := range checks {
			if check.Checked != selection.Has(p, sf) {
				check.SetChecked(selection.Has(p, sf))
			}
		}
	}
}

// onExportClick validates the form and starts an export run
func (ui *RootUI) onExportClick() {
	run, err := ui.runner.Start(ui.form.Job())
	if err != nil {
		message := ui.localization.ErrorText(err)
		log.Printf("Export rejected: %v", err)
		ui.renderRun(&model.ExportRun{Status: model.JobStatusRejected, LastError: message})
		dialog.ShowError(errors.New(message), ui.window)
		return
	}

	ui.runID = run.ID
	ui.setBusy(true)
	ui.renderRun(run)
}

// onStopClick stops the current run after its current file
func (ui *RootUI) onStopClick() {
	if ui.runID == "" {
		return
	}
	if err := ui.runner.StopExport(ui.runID); err != nil {
		log.Printf("Error stopping export %s: %v", ui.runID, err)
	}
}

// onRunUpdate handles run updates from the export service. Called from the
// worker goroutine.
func (ui *RootUI) onRunUpdate(run *model.ExportRun) {
	finished := run.Status.IsFinished()
	if !finished && !ui.limiter.Allow() {
		return
	}

	fyne.Do(func() {
		if run.ID != ui.runID {
			return
		}
		ui.renderRun(run)
		if finished {
			ui.setBusy(false)
		}
	})

	if run.Status == model.JobStatusCompleted {
		ui.onRunCompleted(run)
	}
}

// onRunCompleted notifies and reveals the export folder if enabled
func (ui *RootUI) onRunCompleted(run *model.ExportRun) {
	log.Printf("Export %s completed: %s", run.ID, run.ExportRoot)

	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   ui.localization.GetText(KeyExportCompleted),
		Content: run.ExportRoot,
	})

	if !ui.settings.GetAutoRevealOnComplete() || run.ExportRoot == "" {
		return
	}
	if err := platform.OpenFolderInManager(run.ExportRoot); err != nil {
		log.Printf("%s %s: %v", ui.localization.GetText(KeyErrorOpeningFolder), run.ExportRoot, err)
	}
}

// renderRun shows a run snapshot. Must run on the UI thread.
func (ui *RootUI) renderRun(run *model.ExportRun) {
	ui.progressBar.SetValue(run.Progress)
	ui.percentLabel.SetText(fmt.Sprintf(ProgressLabelFormat, run.Percent))
	ui.statusLabel.SetText(ui.statusText(run))
}

// statusText describes a run in the current language
func (ui *RootUI) statusText(run *model.ExportRun) string {
	progress := MiddleDotSeparator + run.GetProgressString() + MiddleDotSeparator + run.GetElapsedString()

	switch run.Status {
	case model.JobStatusValidating:
		return ui.localization.GetText(KeyExportStarted)
	case model.JobStatusRunningIOS:
		return ui.localization.GetText(KeyExportingIOS) + progress
	case model.JobStatusRunningAndroid:
		return ui.localization.GetText(KeyExportingAndroid) + progress
	case model.JobStatusStopping:
		return ui.localization.GetText(KeyStoppingExport)
	case model.JobStatusCompleted:
		return IconDone + " " + ui.localization.GetText(KeyExportCompleted) + progress
	case model.JobStatusStopped:
		return ui.localization.GetText(KeyExportStopped) + progress
	case model.JobStatusRejected:
		return IconError + " " + run.LastError
	case model.JobStatusError:
		return IconError + " " + ui.localization.GetText(KeyExportFailed) + ": " + run.LastError
	}
	return ui.localization.GetText(KeyReady)
}

// setBusy locks the form while a run is in flight
func (ui *RootUI) setBusy(busy bool) {
	widgets := []fyne.Disableable{ui.exportBtn, ui.sourceBtn, ui.destBtn}
	for _, checks := range ui.checks {
		for _, check := range checks {
			widgets = append(widgets, check)
		}
	}

	for _, w := range widgets {
		if busy {
			w.Disable()
		} else {
			w.Enable()
		}
	}

	if busy {
		ui.stopBtn.Enable()
	} else {
		ui.stopBtn.Disable()
	}
}

// currentRun returns the latest snapshot of the current run, if any
func (ui *RootUI) currentRun() *model.ExportRun {
	if ui.runID == "" {
		return nil
	}
	run, ok := ui.runner.GetRun(ui.runID)
	if !ok {
		return nil
	}
	return run
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
		ui.setDestination(ui.settings.GetDestinationDirectory())
	})
}

// Close releases the folder watcher
func (ui *RootUI) Close() {
	if ui.watcher != nil {
		ui.watcher.Close()
		ui.watcher = nil
	}
}
