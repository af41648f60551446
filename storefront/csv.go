package storefront

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCatalogCSV reads products from a CSV with a header row naming at least
// id, name, price and stock. category is optional. Column order is free.
func LoadCatalogCSV(path string) ([]Product, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCatalog(f)
}

func ReadCatalog(r io.Reader) ([]Product, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"id", "name", "price", "stock"} {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("%w: catalog header missing %q", ErrInvalid, want)
		}
	}
	col := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []Product
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		p, err := ParseProduct(col(rec, "id"), col(rec, "name"), col(rec, "category"), col(rec, "price"), col(rec, "stock"))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if p.ID == "" {
			return nil, fmt.Errorf("line %d: %w: id is required", line, ErrInvalid)
		}
		out = append(out, p)
	}
	return out, nil
}
