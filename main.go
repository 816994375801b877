package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/asset-resizer/internal/config"
	"github.com/ytget/asset-resizer/internal/export"
	"github.com/ytget/asset-resizer/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.asset-resizer"
	AppName = "Asset Resizer"

	WindowWidth  = 640
	WindowHeight = 560
)

func main() {
	// Log version information
	fmt.Printf("Asset Resizer v%s starting...\n", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	// Initialize services. Interpolation and JPEG quality are read per run.
	settings := config.NewSettings(myApp)
	exportSvc := export.NewService(export.NewOptionsRunner(settings))

	// Create and setup UI
	rootUI := ui.NewRootUI(myWindow, exportSvc, settings)
	myWindow.SetOnClosed(rootUI.Close)

	// Show and run
	myWindow.ShowAndRun()
}
