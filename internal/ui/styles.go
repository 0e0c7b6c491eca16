package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary = lipgloss.Color("#00D4FF")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")
	colorText    = lipgloss.Color("#E5E7EB")
	colorDim     = lipgloss.Color("#4B5563")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	healthyStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	unreachableStyle = lipgloss.NewStyle().
				Foreground(colorWarning)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// Agent panel styles
var (
	agentNameStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Width(14)

	agentReadyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	agentProcessingStyle = lipgloss.NewStyle().
				Foreground(colorPrimary)

	agentActiveStyle = lipgloss.NewStyle().
				Foreground(colorSuccess)

	confidenceStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// Result pane styles
var (
	resultPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	sectionTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(colorError)
)

var (
	helpStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			MarginTop(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)
)
