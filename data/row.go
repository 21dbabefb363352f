package data

import "github.com/hisondev/data-go/deepcopy"

// Row represents a single model row.
// Key = column name, Value = cell value
type Row map[string]any

// Copy returns a deep copy of the row. Structured cell values are
// cloned recursively so the copy never aliases the original.
func (r Row) Copy() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = deepcopy.Clone(v)
	}
	return out
}
