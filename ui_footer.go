package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

type FooterState struct {
	Mode      Command
	ModeInput string

	Section string

	FilterLabel string
	FavsOnly    bool
	CartCount   int

	Row       int
	TotalRows int

	StatusMessage string
	Legend        string
	// TopHint shows the jump-to-top affordance.
	TopHint bool
}

type FooterStyles struct {
	BarBG      lipgloss.Color
	StatusBG   lipgloss.Color
	ModePillBG lipgloss.Color
	ModePillFG lipgloss.Color
	SectionFG  lipgloss.Color
	TextFG     lipgloss.Color
	DimFG      lipgloss.Color
	StatusFG   lipgloss.Color
	LegendFG   lipgloss.Color
	HintFG     lipgloss.Color
}

func DefaultFooterStyles() FooterStyles {
	return FooterStyles{
		BarBG:      lipgloss.Color("#2b2b2b"),
		StatusBG:   lipgloss.Color("#000000"),
		ModePillBG: lipgloss.Color("#ff9f1c"),
		ModePillFG: lipgloss.Color("#000000"),
		SectionFG:  lipgloss.Color("#e0e0e0"),
		TextFG:     lipgloss.Color("#cfcfcf"),
		DimFG:      lipgloss.Color("#a0a0a0"),
		StatusFG:   lipgloss.Color("#9a9a9a"),
		LegendFG:   lipgloss.Color("#b0b0b0"),
		HintFG:     lipgloss.Color("#ff9f1c"),
	}
}

const topHintText = "↑ g top  "

func RenderFooter(width int, st FooterState, styles FooterStyles) string {
	if width <= 0 {
		return ""
	}
	if st.FilterLabel == "" {
		st.FilterLabel = "None"
	}
	if st.Legend == "" {
		st.Legend = "(? help · / search · f filter · a add to cart)"
	}
	if st.Row < 0 {
		st.Row = 0
	}
	if st.TotalRows < 0 {
		st.TotalRows = 0
	}

	line1 := renderControlBar(width, st, styles)
	line2 := renderStatusBar(width, st, styles)
	return line1 + "\n" + line2
}

func renderControlBar(width int, st FooterState, styles FooterStyles) string {
	gapW := 1
	filterValW := 12
	cartW := 4
	statusFixedW := runewidth.StringWidth(fmt.Sprintf("[FILTER: %s] · [★ ONLY: %s] · [CART: %s]",
		strings.Repeat("X", filterValW), "false", strings.Repeat("X", cartW)))

	rightPlain := fmt.Sprintf(" Rows %d/%d", st.Row, st.TotalRows)
	rightPlain = truncatePlain(rightPlain, width)
	rightW := runewidth.StringWidth(rightPlain)

	leftW := max(0, width-rightW)

	modeColW := clamp(leftW/4, 20, 36)
	statusColW := statusFixedW
	sectionColW := leftW - modeColW - statusColW - 2*gapW
	if sectionColW < 0 {
		deficit := -sectionColW
		if statusColW > 10 {
			shrink := min(deficit, statusColW-10)
			statusColW -= shrink
			deficit -= shrink
		}
		if deficit > 0 && modeColW > 10 {
			shrink := min(deficit, modeColW-10)
			modeColW -= shrink
			deficit -= shrink
		}
		sectionColW = leftW - modeColW - statusColW - 2*gapW
		if sectionColW < 0 {
			modeColW = max(0, modeColW+sectionColW)
			sectionColW = 0
		}
	}

	modeText := commandLabel(st.Mode)
	innerModeW := max(0, modeColW-2)
	modePillW := modeColW
	if runewidth.StringWidth(modeText) <= innerModeW {
		modePillW = runewidth.StringWidth(modeText) + 2
	}
	if slack := modeColW - modePillW; slack > 0 {
		modeColW = modePillW
		sectionColW += slack
	}

	modeSeg := renderModeSegment(modeColW, st, styles)
	sectionSeg := renderSectionSegment(sectionColW, st, styles)
	statusSeg := renderFilterSegment(statusColW, st, styles, filterValW, cartW)

	left := modeSeg + strings.Repeat(" ", gapW) + sectionSeg + strings.Repeat(" ", gapW) + statusSeg
	leftWActual := modeColW + sectionColW + statusColW + 2*gapW
	if leftWActual < leftW {
		left += strings.Repeat(" ", leftW-leftWActual)
	}

	return applyBar(left+rightPlain, styles.BarBG, styles.TextFG)
}

func renderStatusBar(width int, st FooterState, styles FooterStyles) string {
	legendPlain := truncatePlain(st.Legend, width)
	legendW := runewidth.StringWidth(legendPlain)

	leftW := max(0, width-legendW)

	hint := ""
	if st.TopHint && leftW > runewidth.StringWidth(topHintText) {
		hint = topHintText
		leftW -= runewidth.StringWidth(hint)
	}

	msgPlain := truncatePlain(st.StatusMessage, leftW)
	msgPlain = padRightPlain(msgPlain, leftW)

	line := applyFG(msgPlain, styles.StatusFG, styles.StatusFG)
	if hint != "" {
		line += applyFG(hint, styles.HintFG, styles.StatusFG)
	}
	line += applyFG(legendPlain, styles.LegendFG, styles.StatusFG)
	return applyBar(line, styles.StatusBG, styles.StatusFG)
}

func renderModeSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	content := truncatePlain(commandLabel(st.Mode), max(0, colW-2))
	pillPlain := truncatePlain(" "+content+" ", colW)
	pad := strings.Repeat(" ", colW-runewidth.StringWidth(pillPlain))

	pill := ansiBg(styles.ModePillBG) + ansiFg(styles.ModePillFG) + pillPlain
	pill += ansiBg(styles.BarBG) + ansiFg(styles.TextFG) + pad
	return pill
}

func renderSectionSegment(colW int, st FooterState, styles FooterStyles) string {
	if colW <= 0 {
		return ""
	}
	name := strings.TrimSpace(st.Section)
	if name == "" {
		name = "(none)"
	}
	remaining := colW
	sectionPlain := truncatePlain("▸ "+name, remaining)
	remaining -= runewidth.StringWidth(sectionPlain)

	inputPlain := ""
	if input := strings.TrimSpace(st.ModeInput); remaining > 0 && input != "" {
		inputPlain = truncatePlain(" ▸ "+input, remaining)
		remaining -= runewidth.StringWidth(inputPlain)
	}
	remaining = max(0, remaining)

	return applyFG(sectionPlain, styles.SectionFG, styles.TextFG) + inputPlain + strings.Repeat(" ", remaining)
}

func renderFilterSegment(colW int, st FooterState, styles FooterStyles, filterValW, cartW int) string {
	if colW <= 0 {
		return ""
	}
	filterVal := truncatePlain(strings.TrimSpace(st.FilterLabel), filterValW)
	cart := truncatePlain(strconv.Itoa(st.CartCount), cartW)

	plain := fmt.Sprintf("[FILTER: %s] · [★ ONLY: %v] · [CART: %s]", filterVal, st.FavsOnly, cart)
	plain = padRightPlain(truncatePlain(plain, colW), colW)
	return applyFG(plain, styles.DimFG, styles.TextFG)
}

func applyBar(s string, bg lipgloss.Color, baseFG lipgloss.Color) string {
	return ansiBg(bg) + ansiFg(baseFG) + s + "\x1b[0m"
}

func commandLabel(cmd Command) string {
	switch cmd {
	case CmdJump:
		return "JUMP"
	case CmdSearch:
		return "SEARCH"
	case CmdFilter:
		return "FILTER"
	default:
		return "NORMAL"
	}
}

func applyFG(s string, fg lipgloss.Color, resetFG lipgloss.Color) string {
	return ansiFg(fg) + s + ansiFg(resetFG)
}

func ansiFg(c lipgloss.Color) string {
	return ansiColor(false, c)
}

func ansiBg(c lipgloss.Color) string {
	return ansiColor(true, c)
}

func ansiColor(isBg bool, c lipgloss.Color) string {
	s := string(c)
	if s == "" {
		if isBg {
			return "\x1b[49m"
		}
		return "\x1b[39m"
	}
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		r, _ := strconv.ParseInt(s[1:3], 16, 0)
		g, _ := strconv.ParseInt(s[3:5], 16, 0)
		b, _ := strconv.ParseInt(s[5:7], 16, 0)
		code := 38
		if isBg {
			code = 48
		}
		return fmt.Sprintf("\x1b[%d;2;%d;%d;%dm", code, r, g, b)
	}
	return ""
}

func padRightPlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if cur := runewidth.StringWidth(s); cur < w {
		return s + strings.Repeat(" ", w-cur)
	}
	return s
}

func truncatePlain(s string, w int) string {
	if w <= 0 {
		return ""
	}
	return runewidth.Truncate(s, w, "")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
