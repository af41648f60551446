package main

import (
	"regexp"

	"github.com/andareed/shopfront/storefront"
)

type dataState struct {
	header          []ColumnMeta // column titles for the catalog table
	rows            []renderedRow
	favourites      map[string]bool // keyed by product ID
	showOnlyFavs    bool
	filterRegex     *regexp.Regexp
	filteredIndices []int // rows matching the current filter

	cart    storefront.Cart
	orders  []storefront.Order
	profile storefront.Profile
}

func newDataState(products []storefront.Product) dataState {
	d := dataState{
		header:     catalogColumns(),
		favourites: make(map[string]bool),
	}
	d.setProducts(products)
	return d
}

func (d *dataState) setProducts(products []storefront.Product) {
	d.rows = make([]renderedRow, 0, len(products))
	for i, p := range products {
		d.rows = append(d.rows, newProductRow(p, i+1))
	}
}

// replaceProduct swaps in an updated product, keeping its position.
func (d *dataState) replaceProduct(p storefront.Product) bool {
	for i := range d.rows {
		if d.rows[i].product.ID == p.ID {
			d.rows[i] = newProductRow(p, d.rows[i].originalIndex)
			return true
		}
	}
	return false
}

func (d *dataState) productAt(filteredIdx int) (storefront.Product, bool) {
	if filteredIdx < 0 || filteredIdx >= len(d.filteredIndices) {
		return storefront.Product{}, false
	}
	return d.rows[d.filteredIndices[filteredIdx]].product, true
}
