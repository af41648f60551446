package main

import (
	"fmt"
	"strings"

	"github.com/andareed/shopfront/storefront"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type renderedRow struct {
	product       storefront.Product
	cols          []string
	originalIndex int // position in the catalog as loaded
}

func newProductRow(p storefront.Product, idx int) renderedRow {
	return renderedRow{
		product: p,
		cols: []string{
			p.ID,
			p.Name,
			p.Category,
			fmt.Sprintf("%.2f", p.Price),
			stockLabel(p.Stock),
		},
		originalIndex: idx,
	}
}

func stockLabel(n int) string {
	if n == 0 {
		return "out"
	}
	return fmt.Sprintf("%d", n)
}

func (r *renderedRow) Join(sep string) string {
	return strings.Join(r.cols, sep)
}

// String is what search, filter and clipboard see.
func (r *renderedRow) String() string {
	return r.Join("\t")
}

// Render lays the row out on one line; cells wider than their column are
// cut with an ellipsis.
func (r *renderedRow) Render(style lipgloss.Style, colsMeta []ColumnMeta) string {
	var rendered []string

	for i, text := range r.cols {
		if i >= len(colsMeta) {
			break
		}
		meta := colsMeta[i]
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		inner := max(0, meta.Width-style.GetHorizontalPadding())
		cell := style.Width(meta.Width).Render(ansi.Truncate(text, inner, "…"))
		rendered = append(rendered, cell)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
