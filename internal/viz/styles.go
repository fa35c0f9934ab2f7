package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles derived from a theme.
type Styles struct {
	Logo      lipgloss.Style
	NavItem   lipgloss.Style
	NavActive lipgloss.Style
	NavBar    lipgloss.Style
	NavSolid  lipgloss.Style
	Menu      lipgloss.Style
	Panel     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	KeyHint   lipgloss.Style
	Subtle    lipgloss.Style
	SparkHigh lipgloss.Style
	SparkMid  lipgloss.Style
	SparkLow  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Logo:    lipgloss.NewStyle().Bold(true),
		NavItem: lipgloss.NewStyle().Foreground(t.Muted).Padding(0, 1),
		NavActive: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		NavBar: lipgloss.NewStyle().Padding(0, 1),
		// Once the page has scrolled the bar gets a solid backdrop.
		NavSolid: lipgloss.NewStyle().
			Padding(0, 1).
			Background(t.Background).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Muted),
		Menu: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Secondary).
			Padding(0, 2),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(34),
		Label:     lipgloss.NewStyle().Foreground(t.Muted).Width(10),
		Value:     lipgloss.NewStyle().Foreground(t.Text),
		KeyHint:   lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Subtle:    lipgloss.NewStyle().Foreground(t.Muted),
		SparkHigh: lipgloss.NewStyle().Foreground(t.Accent),
		SparkMid:  lipgloss.NewStyle().Foreground(t.Secondary),
		SparkLow:  lipgloss.NewStyle().Foreground(t.Primary),
	}
}

// GradientText creates a gradient effect on text using color interpolation
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := parseHex(string(startColor))
	er, eg, eb := parseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))

		style := lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor(r, g, b))).Bold(true)
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// SparklineChart renders a mini sparkline of the most recent values.
func (s Styles) SparklineChart(values []float64, width int) string {
	if len(values) == 0 {
		return strings.Repeat("─", width)
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var result strings.Builder
	for _, v := range values {
		norm := (v - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))

		c := string(chars[idx])
		switch {
		case norm > 0.7:
			result.WriteString(s.SparkHigh.Render(c))
		case norm > 0.3:
			result.WriteString(s.SparkMid.Render(c))
		default:
			result.WriteString(s.SparkLow.Render(c))
		}
	}
	return result.String()
}

// Separator draws a decorative rule.
func (s Styles) Separator(width int) string {
	mid := width / 2
	if mid < 3 {
		return s.Subtle.Render(strings.Repeat("─", width))
	}
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	return parseHexByte(hex[1:3]), parseHexByte(hex[3:5]), parseHexByte(hex[5:7])
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		switch {
		case c >= '0' && c <= '9':
			val += int(c - '0')
		case c >= 'a' && c <= 'f':
			val += int(c - 'a' + 10)
		case c >= 'A' && c <= 'F':
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	v = max(0, min(v, 255))
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
