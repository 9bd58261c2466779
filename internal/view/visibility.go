package view

// Visibility maps column keys to whether the column is rendered. It never
// affects which rows are derived.
type Visibility map[string]bool

func DefaultVisibility() Visibility {
	v := make(Visibility, len(columns))
	for _, c := range columns {
		v[c.Key] = true
	}
	return v
}

// Merge returns a complete map: known keys keep their stored value, missing
// keys are visible and unknown keys are dropped.
func (v Visibility) Merge() Visibility {
	result := DefaultVisibility()
	for key, visible := range v {
		if _, ok := columnsByKey[key]; ok {
			result[key] = visible
		}
	}
	return result
}

func (v Visibility) Set(key string, visible bool) (Visibility, error) {
	if _, err := Lookup(key); err != nil {
		return v, err
	}
	result := v.Merge()
	result[key] = visible
	return result, nil
}

// VisibleColumns returns the visible columns in display order.
func (v Visibility) VisibleColumns() []Column {
	merged := v.Merge()
	result := make([]Column, 0, len(columns))
	for _, c := range columns {
		if merged[c.Key] {
			result = append(result, c)
		}
	}
	return result
}
