package main

import (
	"regexp"

	"github.com/andareed/shopfront/logging"
)

func (m *model) setFilterPattern(pattern string) error {
	logging.Infof("Setting Pattern to: %s", pattern)
	if pattern == "" {
		m.data.filterRegex = nil
	} else {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return err
		}
		m.data.filterRegex = re
	}
	m.applyFilter()
	return nil
}

// region Filtering

func (m *model) includeRow(row renderedRow) bool {
	if m.data.showOnlyFavs && !m.data.favourites[row.product.ID] {
		return false
	}
	if m.data.filterRegex != nil && !m.data.filterRegex.MatchString(row.String()) {
		return false
	}
	return true
}

// applyFilter rebuilds the visible row set and keeps the cursor on the same
// product when it is still visible.
func (m *model) applyFilter() {
	var keep string
	if p, ok := m.data.productAt(m.cursor); ok {
		keep = p.ID
	}

	m.data.filteredIndices = m.data.filteredIndices[:0]
	for i, row := range m.data.rows {
		if m.includeRow(row) {
			m.data.filteredIndices = append(m.data.filteredIndices, i)
		}
	}

	m.cursor = 0
	for i, idx := range m.data.filteredIndices {
		if m.data.rows[idx].product.ID == keep {
			m.cursor = i
			break
		}
	}
	if len(m.data.filteredIndices) == 0 {
		// No matches found prevent index panics
		m.cursor = -1
	}
	logging.Debugf("applyFilter: %d of %d rows visible", len(m.data.filteredIndices), len(m.data.rows))
}

// endregion
