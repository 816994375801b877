package ui

// Package ui contains the Fyne-based desktop user interface for the application.
// It wires folder pickers and density checkboxes to the export service and
// renders run progress and settings. All UI strings are localized via Localization.
