package main

import (
	"fmt"

	"github.com/andareed/shopfront/logging"
)

func (m *model) checkViewPortHasData() bool {
	return len(m.data.filteredIndices) > 0
}

func (m *model) jumpToStart() {
	logging.Debug("jumpToStart called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = 0
}

func (m *model) jumpToEnd() {
	logging.Debug("jumpToEnd called...")
	if !m.checkViewPortHasData() {
		return
	}
	m.cursor = len(m.data.filteredIndices) - 1
}

// jumpToLine moves to the row with catalog position lineNo, which is what the
// gutter shows.
func (m *model) jumpToLine(lineNo int) {
	if !m.checkViewPortHasData() {
		return
	}
	if lineNo <= 0 || lineNo > len(m.data.rows) {
		m.startNotice(fmt.Sprintf("Row %d out of bounds", lineNo), "warn", noticeDuration)
		return
	}
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].originalIndex == lineNo {
			m.cursor = i
			return
		}
	}
	m.startNotice(fmt.Sprintf("Row %d not in current filter", lineNo), "warn", noticeDuration)
}

func (m *model) pageDown() {
	n := len(m.data.filteredIndices)
	if m.cursor+m.pageRows() < n {
		m.cursor += m.pageRows()
	} else {
		m.cursor = n - 1
	}
}

func (m *model) pageUp() {
	m.cursor -= m.pageRows()
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *model) pageRows() int {
	if m.lastVisibleRowCount > 1 {
		return m.lastVisibleRowCount - 1
	}
	return 1
}
