package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common styles that can be used across the application
var (
	RootStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorWhite).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	PackageStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	InstalledStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	MissingStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	WarnStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	EmotionStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta)

	BannerStyle = lipgloss.NewStyle().
			Foreground(ColorPurple).
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(0, 2)
)

// PackageText styles a package name
func PackageText(text string) string {
	return PackageStyle.Render(text)
}

// InstalledText styles text for a resolvable dependency (green)
func InstalledText(text string) string {
	return InstalledStyle.Render(text)
}

// MissingText styles text for a missing dependency (red)
func MissingText(text string) string {
	return MissingStyle.Render(text)
}

// WarnText styles warning text (yellow)
func WarnText(text string) string {
	return WarnStyle.Render(text)
}

// EmotionText styles an emotion name
func EmotionText(text string) string {
	return EmotionStyle.Render(text)
}

// PathText styles file paths (gray)
func PathText(text string) string {
	return InfoStyle.Render(text)
}

// SummaryText styles summary information (dark gray)
func SummaryText(text string) string {
	return BranchStyle.Render(text)
}
