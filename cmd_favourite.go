package main

import (
	"github.com/andareed/shopfront/logging"
)

// toggleFavourite stars or unstars the product under the cursor and reports
// whether it is now starred.
func (m *model) toggleFavourite() (string, bool) {
	p, ok := m.data.productAt(m.cursor)
	if !ok {
		return "", false
	}
	if m.data.favourites[p.ID] {
		delete(m.data.favourites, p.ID)
		logging.Debugf("Product %s unstarred", p.ID)
		return p.Name, false
	}
	m.data.favourites[p.ID] = true
	logging.Debugf("Product %s starred", p.ID)
	return p.Name, true
}

func (m *model) jumpToNextFavourite() {
	if !m.checkViewPortHasData() {
		return
	}
	for i := m.cursor + 1; i < len(m.data.filteredIndices); i++ {
		row := m.data.rows[m.data.filteredIndices[i]]
		if m.data.favourites[row.product.ID] {
			m.cursor = i
			return
		}
	}
	logging.Debug("No next favourite has been found")
}

func (m *model) jumpToPreviousFavourite() {
	if !m.checkViewPortHasData() {
		return
	}
	for i := m.cursor - 1; i >= 0; i-- {
		row := m.data.rows[m.data.filteredIndices[i]]
		if m.data.favourites[row.product.ID] {
			m.cursor = i
			return
		}
	}
	logging.Debug("No previous favourite has been found")
}

func (m *model) getRowMarker(productID string) string {
	if m.data.favourites[productID] {
		return favMarker
	}
	return defaultMarker
}
