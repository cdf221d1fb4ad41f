package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorSun    = lipgloss.Color("#FFD36E") // sun marker, lit arc
	ColorTrack  = lipgloss.Color("#8A8FA3") // unlit arc
	ColorAccent = lipgloss.Color("#F09819") // pop-in highlight, pressed button
	ColorPulse  = lipgloss.Color("#FFF4D6") // click pulse
	ColorBubble = lipgloss.Color("#1E1B3A") // info bubble fill
	ColorNotice = lipgloss.Color("#3A1B1B") // manual-copy notice fill
)
