package dialogs

import "github.com/charmbracelet/lipgloss"

const (
	boxWidth = 60
	// border plus padding on each side
	insetX = 3
	insetY = 2
)

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("252")).
		Padding(1, 2).
		Width(boxWidth)
}

// Center returns the top-left corner that centres a w×h box in a
// width×height screen.
func Center(w, h, width, height int) (x, y int) {
	return max(0, (width-w)/2), max(0, (height-h)/2)
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	hintStyle   = lipgloss.NewStyle().Faint(true)
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#ff9f1c"))
	buttonDisabledStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a0a0a0")).
				Background(lipgloss.Color("#3a3a3a"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9f1c"))
)

func renderButton(b buttonLike) string {
	s := "[ " + b.Label() + " ]"
	if b.Disabled() {
		return buttonDisabledStyle.Render(s)
	}
	return buttonStyle.Render(s)
}

type buttonLike interface {
	Label() string
	Disabled() bool
}

// buttonRow lays buttons out left to right, two spaces apart, and returns
// the line plus each button's column offset and width.
func buttonRow(buttons ...buttonLike) (string, []int, []int) {
	var line string
	xs := make([]int, len(buttons))
	ws := make([]int, len(buttons))
	x := 0
	for i, b := range buttons {
		if i > 0 {
			line += "  "
			x += 2
		}
		r := renderButton(b)
		xs[i] = x
		ws[i] = lipgloss.Width(r)
		line += r
		x += ws[i]
	}
	return line, xs, ws
}
