// Package theme holds the dashboard palette and the styles its views share.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette
var (
	ColorLavender = lipgloss.Color("#9f99d1")
	ColorSkyBlue  = lipgloss.Color("#86bada")
	ColorMauve    = lipgloss.Color("#dbaad7")
	ColorPeach    = lipgloss.Color("#f6bcb0")
	ColorGold     = lipgloss.Color("#ffe3b3")
)

// Surfaces and text on the dark background.
var (
	ColorElevatedBg = lipgloss.Color("#2a2b42")
	ColorOverlayBg  = lipgloss.Color("#111122")
	ColorBorder     = lipgloss.Color("#3a3b52")
	ColorBarDim     = lipgloss.Color("#2a2b42")
	ColorMutedText  = lipgloss.Color("#6b6d8a")
	ColorBodyText   = lipgloss.Color("#c8cad8")
	ColorBrightText = lipgloss.Color("#ecedf5")
)

// Usage states
var (
	ColorWindowActive = lipgloss.Color("#8fd5a6")
	ColorWindowClosed = ColorMutedText
	ColorCost         = ColorGold
)

// ProgressGradient colors a billing window's elapsed time, cool to warm.
var ProgressGradient = []string{
	string(ColorSkyBlue),
	string(ColorLavender),
	string(ColorMauve),
	string(ColorPeach),
	string(ColorGold),
}

// Gradient is a two-stop color run used for card titles.
type Gradient struct {
	From, To lipgloss.Color
}

// Title gradients, one per view.
var (
	UsageTitle    = Gradient{ColorSkyBlue, ColorLavender}
	WindowsTitle  = Gradient{ColorLavender, ColorMauve}
	SessionsTitle = Gradient{ColorMauve, ColorPeach}
	HelpTitle     = Gradient{ColorSkyBlue, ColorMauve}
)

// Render paints text rune by rune from g.From to g.To.
func (g Gradient) Render(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var sb strings.Builder
	style := lipgloss.NewStyle()
	last := float64(max(len(runes)-1, 1))
	for i, r := range runes {
		c := LerpColor(string(g.From), string(g.To), float64(i)/last)
		sb.WriteString(style.Foreground(lipgloss.Color(c)).Render(string(r)))
	}
	return sb.String()
}

// WindowColor is the status color of a billing window.
func WindowColor(active bool) lipgloss.Color {
	if active {
		return ColorWindowActive
	}
	return ColorWindowClosed
}

// UsageColor places fraction (0 to 1) on ProgressGradient.
func UsageColor(fraction float64) lipgloss.Color {
	return lipgloss.Color(MultiStopGradient(fraction, ProgressGradient))
}

// LerpColor interpolates between two hex colors.
func LerpColor(from, to string, t float64) string {
	r1, g1, b1 := HexToRGB(from)
	r2, g2, b2 := HexToRGB(to)
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + t*(float64(b)-float64(a)))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(r1, r2), mix(g1, g2), mix(b1, b2))
}

func HexToRGB(hex string) (uint8, uint8, uint8) {
	hex = strings.TrimPrefix(hex, "#")
	var r, g, b uint8
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}

// MultiStopGradient interpolates through stops, clamping t to [0, 1].
func MultiStopGradient(t float64, stops []string) string {
	switch {
	case len(stops) == 0:
		return ""
	case len(stops) == 1 || t <= 0:
		return stops[0]
	case t >= 1:
		return stops[len(stops)-1]
	}
	segments := len(stops) - 1
	seg := min(int(t*float64(segments)), segments-1)
	return LerpColor(stops[seg], stops[seg+1], t*float64(segments)-float64(seg))
}

// Shared text styles
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorBrightText).Bold(true)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMutedText)
	BodyStyle   = lipgloss.NewStyle().Foreground(ColorBodyText)
	CostStyle   = lipgloss.NewStyle().Foreground(ColorCost).Bold(true)
)

// WindowStatusStyle styles a billing window marker or badge.
func WindowStatusStyle(active bool) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(WindowColor(active)).Bold(active)
}
