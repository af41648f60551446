package main

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// splitLinesN splits s into exactly n lines, padding with empty lines or
// dropping the excess.
func splitLinesN(s string, n int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) >= n {
		return lines[:n]
	}
	return append(lines, make([]string, n-len(lines))...)
}

// overlayAt writes fgLines over bgLines with the top-left corner at (x, y).
// Foreground lines are padded or cut to fgW cells.
func overlayAt(bgLines []string, fgLines []string, w, x, y, fgW int) {
	if fgW <= 0 {
		return
	}
	x, y = max(0, x), max(0, y)
	for i := 0; i < len(fgLines) && y+i < len(bgLines); i++ {
		bgLine := bgLines[y+i]
		if n := ansi.StringWidth(bgLine); n < x {
			bgLine += strings.Repeat(" ", x-n)
		}
		left := ansi.Cut(bgLine, 0, x)
		right := ansi.Cut(bgLine, x+fgW, w)

		fgLine := fgLines[i]
		if n := ansi.StringWidth(fgLine); n < fgW {
			fgLine += strings.Repeat(" ", fgW-n)
		} else if n > fgW {
			fgLine = ansi.Cut(fgLine, 0, fgW)
		}

		bgLines[y+i] = left + fgLine + right
	}
}

// dimBackground fades the page behind a modal. Existing styling is dropped
// so the fade applies evenly.
func dimBackground(s string) string {
	lines := strings.Split(ansi.Strip(s), "\n")
	for i, l := range lines {
		lines[i] = backdropStyle.Render(l)
	}
	return strings.Join(lines, "\n")
}
