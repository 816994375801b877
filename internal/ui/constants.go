package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconExport   = "▶"
	IconStop     = "⏹"
	IconError    = "❌"
	IconDone     = "✔"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Platform section titles are not translated
const (
	SectionIOS     = "iOS"
	SectionAndroid = "Android"
)

// Layout sizing
const (
	SettingsDialogW float32 = 480
	SettingsDialogH float32 = 360
)

// Status refresh throttling. Terminal states always render.
const (
	StatusRefreshInterval = 100 * time.Millisecond
	StatusRefreshBurst    = 1
)
