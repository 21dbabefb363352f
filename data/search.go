package data

import "github.com/hisondev/data-go/deepcopy"

// Column scans. All of them are O(row count) first-match scans over a
// single declared column.

// IsNotNullColumn reports whether no row holds nil in the column.
func (m *DataModel) IsNotNullColumn(column string) (bool, error) {
	idx, err := m.FindFirstRowNullColumn(column)
	if err != nil {
		return false, err
	}
	return idx < 0, nil
}

// FindFirstRowNullColumn returns the index of the first row holding
// nil in the column, or -1 when every row is non-nil.
func (m *DataModel) FindFirstRowNullColumn(column string) (int, error) {
	const op = "FindFirstRowNullColumn"
	if m.colIndex(column) < 0 {
		return -1, newColumnNotFound(op, column)
	}
	for i, row := range m.rows {
		if row[column] == nil {
			return i, nil
		}
	}
	return -1, nil
}

// IsNotDuplColumn reports whether every non-nil value in the column
// is distinct under canonical structural equality.
func (m *DataModel) IsNotDuplColumn(column string) (bool, error) {
	idx, err := m.FindFirstRowDuplColumn(column)
	if err != nil {
		return false, err
	}
	return idx < 0, nil
}

// FindFirstRowDuplColumn returns the index of the first row whose
// non-nil value was already seen above it, or -1 when there are no
// duplicates. Values compare by canonical encoding; the seen-set is
// keyed by fingerprint with the full encoding verified on a hit.
func (m *DataModel) FindFirstRowDuplColumn(column string) (int, error) {
	const op = "FindFirstRowDuplColumn"
	if m.colIndex(column) < 0 {
		return -1, newColumnNotFound(op, column)
	}
	seen := make(map[uint64][]string, len(m.rows))
	for i, row := range m.rows {
		v := row[column]
		if v == nil {
			continue
		}
		enc := canonicalEncode(v)
		fp := fingerprint(v)
		for _, prior := range seen[fp] {
			if prior == enc {
				return i, nil
			}
		}
		seen[fp] = append(seen[fp], enc)
	}
	return -1, nil
}

// IsValidValue reports whether the predicate holds for every row's
// value in the column. The predicate receives deep copies.
func (m *DataModel) IsValidValue(column string, predicate func(any) bool) (bool, error) {
	idx, err := m.findFirstRowInvalidValue("IsValidValue", column, predicate)
	if err != nil {
		return false, err
	}
	return idx < 0, nil
}

// FindFirstRowInvalidValue returns the index of the first row whose
// value fails the predicate, or -1 when all pass.
func (m *DataModel) FindFirstRowInvalidValue(column string, predicate func(any) bool) (int, error) {
	return m.findFirstRowInvalidValue("FindFirstRowInvalidValue", column, predicate)
}

func (m *DataModel) findFirstRowInvalidValue(op, column string, predicate func(any) bool) (int, error) {
	if predicate == nil {
		return -1, newInvalidFunction(op)
	}
	if m.colIndex(column) < 0 {
		return -1, newColumnNotFound(op, column)
	}
	for i, row := range m.rows {
		if !predicate(deepcopy.Clone(row[column])) {
			return i, nil
		}
	}
	return -1, nil
}

// Condition search. A condition is a partial record of
// column -> expected value; a row matches when every condition entry
// is structurally equal to the row's value for that column. With
// negate, the complement set is selected instead.

func (m *DataModel) searchIndexes(op string, condition Row, negate bool) ([]int, error) {
	type want struct {
		column string
		fp     uint64
		enc    string
	}
	wants := make([]want, 0, len(condition))
	for col, v := range condition {
		if m.colIndex(col) < 0 {
			return nil, newColumnNotFound(op, col)
		}
		nv, err := normalizeValue(op, col, v)
		if err != nil {
			return nil, err
		}
		wants = append(wants, want{column: col, fp: fingerprint(nv), enc: canonicalEncode(nv)})
	}

	var out []int
	for i, row := range m.rows {
		matched := true
		for _, w := range wants {
			v := row[w.column]
			if fingerprint(v) != w.fp || canonicalEncode(v) != w.enc {
				matched = false
				break
			}
		}
		if matched != negate {
			out = append(out, i)
		}
	}
	return out, nil
}

// SearchRowIndexes returns the indexes of rows selected by the
// condition, in row order.
func (m *DataModel) SearchRowIndexes(condition Row, negate bool) ([]int, error) {
	return m.searchIndexes("SearchRowIndexes", condition, negate)
}

// SearchRows returns deep copies of the rows selected by the
// condition.
func (m *DataModel) SearchRows(condition Row, negate bool) ([]Row, error) {
	indexes, err := m.searchIndexes("SearchRows", condition, negate)
	if err != nil {
		return nil, err
	}
	return m.copyRowsAt(indexes), nil
}

// SearchRowsAsDataModel returns the selected rows as a new model
// with the same columns and kind-check mode.
func (m *DataModel) SearchRowsAsDataModel(condition Row, negate bool) (*DataModel, error) {
	indexes, err := m.searchIndexes("SearchRowsAsDataModel", condition, negate)
	if err != nil {
		return nil, err
	}
	return m.subModel(indexes), nil
}

// SearchAndModify mutates the model in place: with negate false only
// matching rows are kept, with negate true matching rows are
// discarded.
func (m *DataModel) SearchAndModify(condition Row, negate bool) error {
	indexes, err := m.searchIndexes("SearchAndModify", condition, negate)
	if err != nil {
		return err
	}
	m.keepRowsAt(indexes)
	return nil
}

// Predicate filter. Same shape as search, driven by an arbitrary row
// predicate. The predicate receives deep copies, never internal rows.

func (m *DataModel) filterIndexes(op string, predicate func(Row) bool) ([]int, error) {
	if predicate == nil {
		return nil, newInvalidFunction(op)
	}
	var out []int
	for i, row := range m.rows {
		if predicate(row.Copy()) {
			out = append(out, i)
		}
	}
	return out, nil
}

// FilterRowIndexes returns the indexes of rows for which the
// predicate returns true.
func (m *DataModel) FilterRowIndexes(predicate func(Row) bool) ([]int, error) {
	return m.filterIndexes("FilterRowIndexes", predicate)
}

// FilterRows returns deep copies of the rows for which the predicate
// returns true.
func (m *DataModel) FilterRows(predicate func(Row) bool) ([]Row, error) {
	indexes, err := m.filterIndexes("FilterRows", predicate)
	if err != nil {
		return nil, err
	}
	return m.copyRowsAt(indexes), nil
}

// FilterRowsAsDataModel returns the passing rows as a new model with
// the same columns and kind-check mode.
func (m *DataModel) FilterRowsAsDataModel(predicate func(Row) bool) (*DataModel, error) {
	indexes, err := m.filterIndexes("FilterRowsAsDataModel", predicate)
	if err != nil {
		return nil, err
	}
	return m.subModel(indexes), nil
}

// FilterAndModify retains only the rows for which the predicate
// returns true.
func (m *DataModel) FilterAndModify(predicate func(Row) bool) error {
	indexes, err := m.filterIndexes("FilterAndModify", predicate)
	if err != nil {
		return err
	}
	m.keepRowsAt(indexes)
	return nil
}

func (m *DataModel) copyRowsAt(indexes []int) []Row {
	out := make([]Row, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, m.rows[i].Copy())
	}
	return out
}

// subModel builds a new model holding copies of the rows at indexes.
// Rows are adopted directly rather than re-validated: they already
// passed validation in this model.
func (m *DataModel) subModel(indexes []int) *DataModel {
	out := NewDataModel()
	out.mode = m.mode
	out.columns = append([]string(nil), m.columns...)
	out.rows = m.copyRowsAt(indexes)
	for col, kind := range m.pinned {
		out.pinned[col] = kind
	}
	return out
}

// keepRowsAt replaces the row list with the rows at indexes
// (ascending), preserving order.
func (m *DataModel) keepRowsAt(indexes []int) {
	kept := make([]Row, 0, len(indexes))
	for _, i := range indexes {
		kept = append(kept, m.rows[i])
	}
	m.rows = kept
	m.notify(ModelEvent{Type: EventRowsModified, RowIndex: -1, Data: len(m.rows)})
}
