package data

import (
	"math/big"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// SetColumnSorting reorders the declared columns to match
// orderedNames. Columns not named keep their relative order and move
// to the end. Any name that is not an existing column fails with
// ErrColumnNotFound.
func (m *DataModel) SetColumnSorting(orderedNames []string) error {
	const op = "SetColumnSorting"
	for _, name := range orderedNames {
		if m.colIndex(name) < 0 {
			return newColumnNotFound(op, name)
		}
	}
	reordered := make([]string, 0, len(m.columns))
	for _, name := range orderedNames {
		if !slices.Contains(reordered, name) {
			reordered = append(reordered, name)
		}
	}
	for _, name := range m.columns {
		if !slices.Contains(reordered, name) {
			reordered = append(reordered, name)
		}
	}
	m.columns = reordered
	m.notify(ModelEvent{Type: EventColumnsSorted, RowIndex: -1})
	return nil
}

// SortColumnAscending orders the column list lexicographically. Row
// data is untouched.
func (m *DataModel) SortColumnAscending() {
	sort.Strings(m.columns)
	m.notify(ModelEvent{Type: EventColumnsSorted, RowIndex: -1})
}

// SortColumnDescending orders the column list reverse-
// lexicographically.
func (m *DataModel) SortColumnDescending() {
	sort.Sort(sort.Reverse(sort.StringSlice(m.columns)))
	m.notify(ModelEvent{Type: EventColumnsSorted, RowIndex: -1})
}

// SortColumnReverse reverses the column list positionally.
func (m *DataModel) SortColumnReverse() {
	slices.Reverse(m.columns)
	m.notify(ModelEvent{Type: EventColumnsSorted, RowIndex: -1})
}

// SortRowAscending stable-sorts rows by one column's value. nil sorts
// after every non-nil value. With numeric, values are parsed as
// integers and any unparseable value fails with ErrSortType before
// the sort happens.
func (m *DataModel) SortRowAscending(column string, numeric bool) error {
	return m.sortRows("SortRowAscending", column, numeric, false)
}

// SortRowDescending is SortRowAscending inverted: nil sorts before
// every non-nil value.
func (m *DataModel) SortRowDescending(column string, numeric bool) error {
	return m.sortRows("SortRowDescending", column, numeric, true)
}

// SortRowReverse reverses the row order without comparing values.
func (m *DataModel) SortRowReverse() {
	slices.Reverse(m.rows)
	m.notify(ModelEvent{Type: EventRowsSorted, RowIndex: -1})
}

func (m *DataModel) sortRows(op, column string, numeric, descending bool) error {
	if m.colIndex(column) < 0 {
		return newColumnNotFound(op, column)
	}

	var less func(i, j int) bool
	if numeric {
		// Parse everything up front so an unparseable value fails
		// the whole operation instead of half a sort.
		keys := make([]int64, len(m.rows))
		nulls := make([]bool, len(m.rows))
		for i, row := range m.rows {
			v := row[column]
			if v == nil {
				nulls[i] = true
				continue
			}
			n, err := parseIntValue(v)
			if err != nil {
				return newSortType(op, column, i, v)
			}
			keys[i] = n
		}
		less = func(i, j int) bool {
			c := compareWithNulls(nulls[i], nulls[j], func() int {
				switch {
				case keys[i] < keys[j]:
					return -1
				case keys[i] > keys[j]:
					return 1
				}
				return 0
			})
			if descending {
				return c > 0
			}
			return c < 0
		}
	} else {
		less = func(i, j int) bool {
			a, b := m.rows[i][column], m.rows[j][column]
			c := compareWithNulls(a == nil, b == nil, func() int {
				return compareValues(a, b)
			})
			if descending {
				return c > 0
			}
			return c < 0
		}
	}

	// Sort an index permutation rather than swapping rows in the
	// comparator, keeping the closures free of aliasing surprises.
	perm := make([]int, len(m.rows))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(i, j int) bool { return less(perm[i], perm[j]) })
	sorted := make([]Row, len(m.rows))
	for pos, idx := range perm {
		sorted[pos] = m.rows[idx]
	}
	m.rows = sorted

	m.notify(ModelEvent{Type: EventRowsSorted, Column: column, RowIndex: -1})
	return nil
}

// compareWithNulls applies the nil placement rule in ascending terms:
// nil compares greater than any value, so it lands last ascending and
// first descending once the comparison is inverted.
func compareWithNulls(aNull, bNull bool, cmp func() int) int {
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return 1
	case bNull:
		return -1
	}
	return cmp()
}

// compareValues orders two non-nil values. Same-kind values compare
// natively; kinds that only drift apart (see KindCheckBackward) fall
// back to canonical-encoding order so the sort stays total.
func compareValues(a, b any) int {
	ka, kb := kindOf(a), kindOf(b)
	if ka != kb {
		return strings.Compare(canonicalEncode(a), canonicalEncode(b))
	}
	switch ka {
	case KindNumber:
		fa, fb := toFloat(a), toFloat(b)
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	case KindString:
		return strings.Compare(a.(string), b.(string))
	case KindBool:
		ba, bb := a.(bool), b.(bool)
		switch {
		case ba == bb:
			return 0
		case !ba:
			return -1
		}
		return 1
	case KindBigInt:
		return a.(*big.Int).Cmp(b.(*big.Int))
	default:
		return strings.Compare(canonicalEncode(a), canonicalEncode(b))
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

// parseIntValue interprets a value as an integer for numeric row
// sorts: stored numbers convert directly, big integers must fit
// int64, strings parse after trimming.
func parseIntValue(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case float64:
		if n != float64(int64(n)) {
			return 0, strconv.ErrSyntax
		}
		return int64(n), nil
	case *big.Int:
		if !n.IsInt64() {
			return 0, strconv.ErrRange
		}
		return n.Int64(), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(n), 10, 64)
	default:
		return 0, strconv.ErrSyntax
	}
}
