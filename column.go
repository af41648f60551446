package main

type ColumnRole int

const (
	RoleNormal  ColumnRole = iota
	RolePrimary            // product name
	RoleSecondary
)

type ColumnMeta struct {
	Name     string
	Index    int
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func catalogColumns() []ColumnMeta {
	names := []struct {
		name string
		role ColumnRole
	}{
		{"ID", RoleSecondary},
		{"Name", RolePrimary},
		{"Category", RoleNormal},
		{"Price", RoleSecondary},
		{"Stock", RoleNormal},
	}
	cols := make([]ColumnMeta, len(names))
	for i, n := range names {
		cols[i] = ColumnMeta{
			Name:     n.name,
			Index:    i,
			Role:     n.role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(n.role),
			Weight:   defaultWeightForRole(n.role),
		}
	}
	return cols
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RolePrimary:
		return 24
	case RoleSecondary:
		return 10
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RolePrimary:
		return 4.0
	case RoleSecondary:
		return 1.0
	default:
		return 1.5
	}
}

func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// too tight: minimum widths, clamped
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			cols[i].Width = min(cols[i].MinWidth, totalWidth)
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
