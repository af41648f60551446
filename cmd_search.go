package main

import "strings"

// searchOnce moves the cursor to the first visible row, at or after the
// cursor, that contains query. The search wraps around once.
func (m *model) searchOnce(query string) {
	m.ui.searchQuery = query
	if query == "" {
		return
	}

	n := len(m.data.filteredIndices)
	q := strings.ToLower(query)
	for step := 0; step < n; step++ {
		i := (m.cursor + step) % n
		row := m.data.rows[m.data.filteredIndices[i]]
		if strings.Contains(strings.ToLower(row.String()), q) {
			m.cursor = i
			return
		}
	}
	m.startNotice("No match for "+query, "warn", noticeDuration)
}
