package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/andareed/shopfront/dialogs"
	"github.com/andareed/shopfront/element"
	"github.com/andareed/shopfront/history"
	"github.com/andareed/shopfront/logging"
	"github.com/andareed/shopfront/storefront"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// Screen offset of the page content, from appstyle's margin.
const (
	originX = 2
	originY = 1
)

// rowHit is attached to catalog rows in the hit map; it is the row's index
// into the filtered rows.
type rowHit int

func (m *model) gutterWidth() int {
	return len(fmt.Sprintf("%d", len(m.data.rows))) + utf8.RuneCountInString(defaultMarker)
}

func (m *model) headerView() string {
	if m.section != history.SectionCatalog {
		return sectionTitle.Render(m.sectionHeading())
	}

	var cells []string
	for _, col := range m.data.header {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	headerRow := lipgloss.JoinHorizontal(lipgloss.Top, cells...)

	return headerStyle.Render(strings.Repeat(" ", m.gutterWidth()) + headerRow)
}

func (m *model) sectionHeading() string {
	switch m.section {
	case history.SectionCart:
		return fmt.Sprintf("Cart · %d items · total %.2f", m.data.cart.Count(), m.data.cart.Total())
	case history.SectionOrders:
		return fmt.Sprintf("Orders · %d", len(m.data.orders))
	case history.SectionProfile:
		return "Profile"
	}
	return "Catalog"
}

// tabsView renders the section tabs and the section's action buttons on one
// line and registers them in the hit map.
func (m *model) tabsView() string {
	var parts []string
	x := 0
	add := func(s string, el *element.Element) {
		w := lipgloss.Width(s)
		if el != nil {
			m.mouse.HitMap.AddRect(el.ID(), originX+x, originY, w, 1, el)
		}
		parts = append(parts, s)
		x += w
	}

	for _, t := range m.tabs {
		style := tabStyle
		if t.section == m.section {
			style = tabActiveStyle
		}
		add(style.Render(t.title), t.el)
	}

	var actions []*element.Element
	switch m.section {
	case history.SectionCart:
		actions = append(actions, m.checkoutBtn)
	case history.SectionProfile:
		actions = append(actions, m.profileBtn)
	}
	actions = append(actions, m.helpBtn)

	for _, b := range actions {
		add("  ", nil)
		style := actionStyle
		if b.Disabled() {
			style = dimStyle
		}
		add(style.Render("[ "+b.Label()+" ]"), b)
	}
	return strings.Join(parts, "")
}

// footerView renders the 2-line footer using local (function-scoped) styles/state.
func (m *model) footerView(width int) string {
	styles := DefaultFooterStyles()

	st := FooterState{
		Mode:        CmdNone,
		Section:     m.sectionHeading(),
		FilterLabel: "None",
		FavsOnly:    m.data.showOnlyFavs,
		CartCount:   m.data.cart.Count(),
		Legend:      "(? help · / search · f filter · a add · c checkout · p profile · q quit)",
	}
	if m.ui.mode == modeCommand {
		st.Mode = m.ui.command.cmd
		st.ModeInput = m.activeCommandLine()
	}

	switch m.section {
	case history.SectionCart:
		st.Row, st.TotalRows = m.cartCursor+1, len(m.data.cart.Lines)
	case history.SectionOrders:
		st.Row, st.TotalRows = min(1, len(m.data.orders)), len(m.data.orders)
	default:
		st.Row, st.TotalRows = m.cursor+1, len(m.data.filteredIndices)
	}
	if m.data.filterRegex != nil {
		st.FilterLabel = strings.TrimPrefix(m.data.filterRegex.String(), "(?i)")
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	} else if !m.loaded {
		st.StatusMessage = "loading…"
	}
	st.TopHint = !m.topHint.suppressed && m.section == history.SectionCatalog && m.cursor > 0

	if logging.IsDebugMode() {
		st.Legend += fmt.Sprintf(" | dbg term=%dx%d vp=%dx%d cur=%d vis=%d-%d depth=%d",
			m.terminalWidth, m.terminalHeight, m.viewport.Width, m.viewport.Height,
			m.cursor, m.ui.visibleStart, m.ui.visibleEnd, m.nav.Depth(),
		)
	}

	return RenderFooter(width, st, styles)
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}
	m.mouse.Clear()

	tabs := m.tabsView()
	bordered := tableStyle.Render(m.viewport.View())
	if m.section == history.SectionCatalog {
		m.addRowHits()
	}
	page := appstyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		m.headerView(),
		bordered,
		m.footerView(lipgloss.Width(bordered)),
	))

	if md := m.topModal(); md != nil {
		page = m.composeModal(page, md)
	}
	return page
}

// addRowHits registers one region per visible catalog row. Rows start below
// the tabs, the header and the table's top border.
func (m *model) addRowHits() {
	if !m.checkViewPortHasData() {
		return
	}
	top := originY + 3
	for i := m.ui.visibleStart; i <= m.ui.visibleEnd; i++ {
		m.mouse.HitMap.AddRect(fmt.Sprintf("row:%d", i), originX+1, top+i-m.ui.visibleStart, m.viewport.Width, 1, rowHit(i))
	}
}

// composeModal draws md's dialog centred over the dimmed page. The backdrop
// covers the whole screen in the hit map, under the dialog's own regions.
func (m *model) composeModal(page string, md *modal) string {
	w, h := m.terminalWidth, m.terminalHeight
	box, hits := md.dialog.View()
	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	x, y := dialogs.Center(bw, bh, w, h)

	m.mouse.HitMap.AddRect(md.overlay.ID(), 0, 0, w, h, md.overlay)
	m.mouse.HitMap.AddRect(md.content.ID(), x, y, bw, bh, md.content)
	for _, hit := range hits {
		m.mouse.HitMap.AddRect(hit.El.ID(), x+hit.X, y+hit.Y, hit.W, 1, hit.El)
	}

	bg := splitLinesN(dimBackground(page), h)
	overlayAt(bg, strings.Split(box, "\n"), w, x, y, bw)
	return strings.Join(bg, "\n")
}

func (m *model) refreshView() {
	if !m.ready {
		return
	}
	layoutColumns(m.data.header, m.viewport.Width-m.gutterWidth())
	m.viewport.SetContent(m.renderSection())
	m.viewport.GotoTop()
}

func (m *model) renderSection() string {
	switch m.section {
	case history.SectionCart:
		return m.renderCart()
	case history.SectionOrders:
		return m.renderOrders()
	case history.SectionProfile:
		return m.renderProfile()
	}
	return m.renderViewport()
}

func (m *model) renderCart() string {
	lines := m.data.cart.Lines
	if len(lines) == 0 {
		return dimStyle.Render("Your cart is empty. Press 1 for the catalog and a to add.")
	}
	width := m.viewport.Width
	var b strings.Builder
	for i, l := range lines {
		text := fmt.Sprintf(" %-30s %4d × %8.2f = %9.2f", ansi.Truncate(l.Name, 30, "…"), l.Quantity, l.Price, l.Subtotal())
		text = ansi.Truncate(text, width, "")
		if i == m.cartCursor {
			text = rowSelectedStyle.Width(width).Render(text)
		}
		b.WriteString(text + "\n")
	}
	b.WriteString("\n" + sectionTitle.Render(fmt.Sprintf(" Total %.2f", m.data.cart.Total())))
	b.WriteString("\n" + dimStyle.Render(" x remove · c checkout"))
	return b.String()
}

func (m *model) renderOrders() string {
	if len(m.data.orders) == 0 {
		return dimStyle.Render("No orders yet.")
	}
	var b strings.Builder
	for _, o := range m.data.orders {
		line := fmt.Sprintf(" %s  %s  %-9s %3d items  %9.2f  %s",
			shortID(o.ID), o.CreatedAt.Format("2006-01-02 15:04"), o.Status,
			storefront.Cart{Lines: o.Lines}.Count(), o.Total, o.Checkout.Shipping)
		b.WriteString(ansi.Truncate(line, m.viewport.Width, "…") + "\n")
	}
	return b.String()
}

func (m *model) renderProfile() string {
	p := m.data.profile
	phone := p.Phone
	if phone == "" {
		phone = dimStyle.Render("(none)")
	}
	return fmt.Sprintf(" Name   %s\n Email  %s\n Phone  %s\n\n%s",
		p.Name, p.Email, phone, dimStyle.Render(" p or [ Edit profile ] to change"))
}

func (m *model) renderRowAt(filteredIdx int) (string, bool) {
	if filteredIdx < 0 || filteredIdx >= len(m.data.filteredIndices) {
		return "", false
	}

	selected := filteredIdx == m.cursor
	rowBgStyle := rowStyle
	rowPrefix := bgSeq(lipgloss.Color("")) + fgSeq(lipgloss.Color(rowTextFGColor))
	if selected {
		rowBgStyle = rowSelectedStyle
		rowPrefix = bgSeq(lipgloss.Color(rowSelectedBGColor)) + fgSeq(lipgloss.Color(rowSelectedTextFGColor))
	}
	rowSuffix := termenv.CSI + "0m"

	row := m.data.rows[m.data.filteredIndices[filteredIdx]]

	numW := m.gutterWidth() - utf8.RuneCountInString(defaultMarker)
	// the marker resets any background, so it goes first
	gutter := m.getRowMarker(row.product.ID) + rowBgStyle.Render(fmt.Sprintf("%*d", numW, row.originalIndex))

	contentRow := row
	if m.ui.searchQuery != "" {
		cols := make([]string, len(row.cols))
		for i, col := range row.cols {
			cols[i] = highlightMatches(col, m.ui.searchQuery)
		}
		contentRow.cols = cols
	}
	line := contentRow.Render(cellStyle, m.data.header)
	if m.ui.searchQuery != "" {
		line = restoreRowStyleAfterReset(line, rowPrefix)
	}
	return gutter + rowPrefix + line + rowSuffix, true
}

func highlightMatches(text string, query string) string {
	q := strings.TrimSpace(query)
	if q == "" || text == "" {
		return text
	}
	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(q)
	if len(lowerText) != len(text) {
		// case folding changed byte offsets; skip highlighting
		return text
	}
	var b strings.Builder
	start := 0
	for {
		idx := strings.Index(lowerText[start:], lowerQuery)
		if idx == -1 {
			b.WriteString(text[start:])
			break
		}
		idx += start
		b.WriteString(text[start:idx])
		b.WriteString(searchHighlight.Render(text[idx : idx+len(lowerQuery)]))
		start = idx + len(lowerQuery)
	}
	return b.String()
}

func restoreRowStyleAfterReset(s string, rowPrefix string) string {
	if rowPrefix == "" {
		return s
	}
	reset := termenv.CSI + "0m"
	if !strings.Contains(s, reset) {
		return s
	}
	return strings.ReplaceAll(s, reset, reset+rowPrefix)
}

func fgSeq(c lipgloss.Color) string {
	return colorSeq(c, false)
}

func bgSeq(c lipgloss.Color) string {
	return colorSeq(c, true)
}

func colorSeq(c lipgloss.Color, bg bool) string {
	value := string(c)
	if value == "" {
		if bg {
			return termenv.CSI + "49m"
		}
		return termenv.CSI + "39m"
	}
	profile := lipgloss.ColorProfile()
	tc := profile.Color(value)
	if tc == nil {
		return ""
	}
	return termenv.CSI + tc.Sequence(bg) + "m"
}

func (m *model) renderViewport() string {
	if !m.loaded {
		return dimStyle.Render("loading catalog…")
	}
	if len(m.data.filteredIndices) == 0 || m.cursor < 0 {
		return dimStyle.Render("No products match.")
	}
	if m.cursor >= len(m.data.filteredIndices) {
		m.cursor = 0
	}
	renderedRows, startIdx, endIdx := m.computeVisibleRows(m.cursor, m.viewport.Height)
	m.ui.visibleStart = startIdx
	m.ui.visibleEnd = endIdx
	m.lastVisibleRowCount = len(renderedRows)

	return strings.Join(renderedRows, "\n")
}

// computeVisibleRows centres the cursor row when it can, filling the rest of
// the height from below and then above. Rows are one line tall.
func (m *model) computeVisibleRows(cursor int, viewportHeight int) ([]string, int, int) {
	cursorRenderedRow, ok := m.renderRowAt(cursor)
	if !ok {
		return nil, 0, 0
	}

	heightFree := viewportHeight - 1
	desiredAbove := max(0, heightFree/2)
	upIndex := cursor - 1
	downIndex := cursor + 1

	var above, below []string
	for heightFree > 0 && (upIndex >= 0 || downIndex < len(m.data.filteredIndices)) {
		if upIndex >= 0 && len(above) < desiredAbove {
			if rendered, ok := m.renderRowAt(upIndex); ok {
				above = append(above, rendered)
				heightFree--
				upIndex--
				continue
			}
		}
		if downIndex < len(m.data.filteredIndices) {
			if rendered, ok := m.renderRowAt(downIndex); ok {
				below = append(below, rendered)
				heightFree--
				downIndex++
				continue
			}
		}
		if upIndex >= 0 {
			if rendered, ok := m.renderRowAt(upIndex); ok {
				above = append(above, rendered)
				heightFree--
				upIndex--
				continue
			}
		}
		break
	}

	renderedRows := make([]string, 0, len(above)+1+len(below))
	for i := len(above) - 1; i >= 0; i-- {
		renderedRows = append(renderedRows, above[i])
	}
	renderedRows = append(renderedRows, cursorRenderedRow)
	renderedRows = append(renderedRows, below...)

	return renderedRows, cursor - len(above), cursor + len(below)
}
