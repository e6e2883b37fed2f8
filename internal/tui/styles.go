package tui

import "github.com/charmbracelet/lipgloss"

var (
	// Adaptive colors for dark/light terminals
	colorPrimary   = lipgloss.AdaptiveColor{Light: "#1F4E9B", Dark: "#6C9BF2"}
	colorSecondary = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorDim       = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorAccent    = lipgloss.AdaptiveColor{Light: "#B22234", Dark: "#F25D6A"}
	colorBorder    = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorActiveBdr = lipgloss.AdaptiveColor{Light: "#1F4E9B", Dark: "#6C9BF2"}
	colorTermBg    = lipgloss.AdaptiveColor{Light: "#EEEEEE", Dark: "#2A2A3E"}
	colorStatusBg  = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#16213E"}
	colorStatusFg  = lipgloss.AdaptiveColor{Light: "#3D3D3D", Dark: "#ABABAB"}
	colorGreen     = lipgloss.AdaptiveColor{Light: "#04B575", Dark: "#25D366"}

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			PaddingLeft(1)

	headerRangeStyle = lipgloss.NewStyle().
				Foreground(colorDim).
				Align(lipgloss.Right)

	tablePaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	columnHeaderStyle = lipgloss.NewStyle().
				Foreground(colorSecondary).
				Bold(true)

	columnActiveStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true).
				Underline(true)

	rowStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	rowSelectedStyle = lipgloss.NewStyle().
				Foreground(colorAccent).
				Bold(true)

	rowViewedStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	overlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorActiveBdr).
			Padding(0, 1)

	overlayTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	sectionStyle = lipgloss.NewStyle().
			Foreground(colorGreen).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	bodyStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)

	linkStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			Italic(true)

	termStyle = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Background(colorTermBg).
			Padding(0, 1)

	termSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorPrimary).
				Padding(0, 1).
				Bold(true)

	termSeparatorStyle = lipgloss.NewStyle().
				Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Background(colorStatusBg).
			Foreground(colorStatusFg).
			PaddingLeft(1).
			PaddingRight(1)

	errorBannerStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(colorAccent).
				Bold(true).
				PaddingLeft(1)

	noticeStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorAccent)

	promptStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	helpCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 3)

	helpDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)
