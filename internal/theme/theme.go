// Package theme provides the Lip Gloss color palette and reusable styles
// for the IronLog TUI. It is a leaf package with no internal imports to
// avoid import cycles.
package theme

import "github.com/charmbracelet/lipgloss"

// Muscle group colors.
var (
	ColorShoulders = lipgloss.Color("#a855f7")
	ColorChest     = lipgloss.Color("#ef4444")
	ColorArms      = lipgloss.Color("#f59e0b")
	ColorBack      = lipgloss.Color("#3b82f6")
	ColorAbs       = lipgloss.Color("#06b6d4")
	ColorLegs      = lipgloss.Color("#22c55e")
	ColorGlutes    = lipgloss.Color("#ec4899")
	ColorCardio    = lipgloss.Color("#d97706")
	ColorDefault   = lipgloss.Color("#9ca3af")
)

// Set state colors.
var (
	ColorSetComplete   = lipgloss.Color("#16a34a")
	ColorSetIncomplete = lipgloss.Color("#4b5563")
	ColorSetSelected   = lipgloss.Color("#f9fafb")
)

// UI chrome colors.
var (
	ColorBorder  = lipgloss.Color("#4b5563")
	ColorDimmed  = lipgloss.Color("#6b7280")
	ColorBright  = lipgloss.Color("#f9fafb")
	ColorHealthy = lipgloss.Color("#22c55e")
	ColorWarning = lipgloss.Color("#d97706")
	ColorDanger  = lipgloss.Color("#dc2626")
	ColorAccent  = lipgloss.Color("#a855f7")
)

// MuscleGroupColor returns the color for a muscle group name.
func MuscleGroupColor(group string) lipgloss.Color {
	switch group {
	case "shoulders":
		return ColorShoulders
	case "chest":
		return ColorChest
	case "arms":
		return ColorArms
	case "back":
		return ColorBack
	case "abs":
		return ColorAbs
	case "legs":
		return ColorLegs
	case "glutes":
		return ColorGlutes
	case "cardio":
		return ColorCardio
	default:
		return ColorDefault
	}
}

// MuscleGroupTag returns a colored tag like [legs] for list rows.
func MuscleGroupTag(group string) string {
	return lipgloss.NewStyle().
		Foreground(MuscleGroupColor(group)).
		Render("[" + group + "]")
}

// SetGlyph returns the glyph for a set's completion state.
func SetGlyph(complete bool) string {
	if complete {
		return lipgloss.NewStyle().Foreground(ColorSetComplete).Render("✓")
	}
	return lipgloss.NewStyle().Foreground(ColorSetIncomplete).Render("○")
}

// Reusable styles.
var (
	StyleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBright)

	StyleDimmed = lipgloss.NewStyle().
			Foreground(ColorDimmed)

	StyleSelected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSetSelected)

	StyleAccent = lipgloss.NewStyle().
			Foreground(ColorAccent)
)
