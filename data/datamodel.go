// Package data implements the client-side structured data layer: an
// in-memory typed table (DataModel) and a flat keyed container
// (DataWrapper) used to assemble and validate payloads before they
// are handed to a transport layer.
//
// There is no compile-time schema. Columns are declared at runtime
// and every mutation re-validates its inputs: per-column kind
// consistency, no nested containers, deep copies at every read and
// write boundary. Instances are not safe for concurrent use; callers
// in multi-goroutine hosts must synchronize externally.
package data

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hisondev/data-go/deepcopy"
)

// KindCheckMode selects how the per-column type-consistency check
// establishes a column's kind.
type KindCheckMode int

const (
	// KindCheckBackward scans backward from the row being validated
	// to the most recent prior non-null value in the column. This is
	// the historical behavior: a column's kind can drift if earlier
	// rows are removed or reordered.
	KindCheckBackward KindCheckMode = iota

	// KindCheckDeclared pins a column's kind on its first non-null
	// assignment. The pinned kind survives row removal and
	// reordering; Clear resets it.
	KindCheckDeclared
)

// DataModel is an ordered-column, ordered-row tabular container.
// Rows always carry exactly one entry per declared column; absent
// keys are filled with nil. A model starts undeclared (no columns)
// and becomes declared on the first column addition or row insert;
// only Clear returns it to the undeclared state.
type DataModel struct {
	id        string
	columns   []string
	rows      []Row
	mode      KindCheckMode
	pinned    map[string]Kind
	observers []Observer
}

// NewDataModel creates an empty, undeclared model.
func NewDataModel() *DataModel {
	return &DataModel{
		id:     uuid.NewString(),
		pinned: make(map[string]Kind),
	}
}

// NewDataModelFromColumns creates a model with the given columns
// declared and no rows.
func NewDataModelFromColumns(columns []string) (*DataModel, error) {
	m := NewDataModel()
	if err := m.DeclareColumns(columns...); err != nil {
		return nil, err
	}
	return m, nil
}

// NewDataModelFromRow creates a model whose columns are declared from
// the record's keys (sorted for determinism) and whose single row is
// a validated copy of the record.
func NewDataModelFromRow(rec Row) (*DataModel, error) {
	m := NewDataModel()
	if err := m.AddRow(rec); err != nil {
		return nil, err
	}
	return m, nil
}

// NewDataModelFromRows creates a model from an ordered list of
// records. The first record declares the columns.
func NewDataModelFromRows(recs []Row) (*DataModel, error) {
	m := NewDataModel()
	if err := m.AddRows(recs); err != nil {
		return nil, err
	}
	return m, nil
}

// ID returns the model's instance ID, carried on observer events and
// intended for log correlation.
func (m *DataModel) ID() string { return m.id }

// SetKindCheckMode selects the type-consistency mode. Switching to
// KindCheckDeclared pins kinds from the current rows.
func (m *DataModel) SetKindCheckMode(mode KindCheckMode) {
	m.mode = mode
	if mode != KindCheckDeclared {
		return
	}
	for _, col := range m.columns {
		if _, ok := m.pinned[col]; ok {
			continue
		}
		for _, row := range m.rows {
			if v := row[col]; v != nil {
				m.pinned[col] = kindOf(v)
				break
			}
		}
	}
}

// KindCheckMode returns the active type-consistency mode.
func (m *DataModel) KindCheckMode() KindCheckMode { return m.mode }

// IsDeclared reports whether any columns exist.
func (m *DataModel) IsDeclared() bool { return len(m.columns) > 0 }

// ColumnCount returns the number of declared columns.
func (m *DataModel) ColumnCount() int { return len(m.columns) }

// RowCount returns the number of rows.
func (m *DataModel) RowCount() int { return len(m.rows) }

// Columns returns the declared column names in order.
func (m *DataModel) Columns() []string {
	return slices.Clone(m.columns)
}

// HasColumn reports whether the named column is declared.
func (m *DataModel) HasColumn(name string) bool {
	return m.colIndex(name) >= 0
}

func (m *DataModel) colIndex(name string) int {
	return slices.Index(m.columns, name)
}

// AddObserver registers an observer to receive mutation events.
func (m *DataModel) AddObserver(observer Observer) {
	m.observers = append(m.observers, observer)
}

// RemoveObserver unregisters an observer.
func (m *DataModel) RemoveObserver(observer Observer) {
	for i, o := range m.observers {
		if o == observer {
			m.observers = append(m.observers[:i], m.observers[i+1:]...)
			return
		}
	}
}

func (m *DataModel) notify(event ModelEvent) {
	event.ModelID = m.id
	event.Timestamp = time.Now()
	for _, observer := range m.observers {
		observer.OnModelEvent(event)
	}
}

// DeclareColumns registers new columns, backfilling nil into every
// existing row. It fails with ErrDuplicateColumn when a name repeats,
// either against existing columns or within the argument list.
func (m *DataModel) DeclareColumns(names ...string) error {
	const op = "DeclareColumns"
	for i, name := range names {
		if name == "" {
			return newInvalidColumnName(op, name)
		}
		if m.colIndex(name) >= 0 || slices.Index(names[:i], name) >= 0 {
			return newDuplicateColumn(op, name)
		}
	}
	for _, name := range names {
		m.columns = append(m.columns, name)
		for _, row := range m.rows {
			row[name] = nil
		}
		m.notify(ModelEvent{Type: EventColumnAdded, Column: name, RowIndex: -1})
	}
	return nil
}

// AddColumn declares one new column and backfills nil into every
// existing row.
func (m *DataModel) AddColumn(name string) error {
	return m.DeclareColumns(name)
}

// AddColumns declares several new columns at once.
func (m *DataModel) AddColumns(names []string) error {
	return m.DeclareColumns(names...)
}

// RemoveColumn deletes the column from the declaration and from
// every row.
func (m *DataModel) RemoveColumn(name string) error {
	const op = "RemoveColumn"
	idx := m.colIndex(name)
	if idx < 0 {
		return newColumnNotFound(op, name)
	}
	m.columns = append(m.columns[:idx], m.columns[idx+1:]...)
	for _, row := range m.rows {
		delete(row, name)
	}
	delete(m.pinned, name)
	m.notify(ModelEvent{Type: EventColumnRemoved, Column: name, RowIndex: -1})
	return nil
}

// RemoveColumns deletes several columns. It validates the whole list
// first, so either all named columns are removed or none are.
func (m *DataModel) RemoveColumns(names []string) error {
	const op = "RemoveColumns"
	for _, name := range names {
		if m.colIndex(name) < 0 {
			return newColumnNotFound(op, name)
		}
	}
	for _, name := range names {
		if err := m.RemoveColumn(name); err != nil {
			return err
		}
	}
	return nil
}

// AddRow appends a row. A nil record appends an all-nil row and
// fails with ErrColumnsUndeclared when no columns exist yet. A
// non-nil record on an undeclared model declares columns from the
// record's keys in sorted order. Keys not matching a declared column
// are ignored; declared columns absent from the record become nil.
func (m *DataModel) AddRow(rec Row) error {
	return m.insertRow("AddRow", len(m.rows), rec)
}

// AddRows appends records in order.
func (m *DataModel) AddRows(recs []Row) error {
	for _, rec := range recs {
		if err := m.AddRow(rec); err != nil {
			return err
		}
	}
	return nil
}

// InsertRow inserts a record before the row at index. index equal to
// RowCount appends; anything outside [0, RowCount] fails with
// ErrRowIndexOutOfRange.
func (m *DataModel) InsertRow(index int, rec Row) error {
	return m.insertRow("InsertRow", index, rec)
}

func (m *DataModel) insertRow(op string, index int, rec Row) error {
	// Bounds come first so a failed insert leaves no partial state
	// (no columns declared, no observers notified).
	if index < 0 || index > len(m.rows) {
		return newRowIndexOutOfRange(op, index, len(m.rows))
	}
	if len(m.columns) == 0 {
		if rec == nil {
			return newColumnsUndeclared(op)
		}
		keys := make([]string, 0, len(rec))
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if err := m.DeclareColumns(keys...); err != nil {
			return err
		}
		if len(m.columns) == 0 {
			return newColumnsUndeclared(op)
		}
	}

	row := make(Row, len(m.columns))
	for _, col := range m.columns {
		v, ok := rec[col]
		if !ok {
			row[col] = nil
			continue
		}
		nv, err := normalizeValue(op, col, v)
		if err != nil {
			return err
		}
		if err := m.checkKind(op, col, index, nv); err != nil {
			return err
		}
		row[col] = nv
	}

	m.rows = slices.Insert(m.rows, index, row)
	m.pinKinds(row)
	m.notify(ModelEvent{Type: EventRowAdded, RowIndex: index, Data: len(m.rows)})
	return nil
}

// checkKind enforces per-column type consistency for a value about
// to be stored at row position index. nil is always allowed.
func (m *DataModel) checkKind(op, column string, index int, v any) error {
	if v == nil {
		return nil
	}
	got := kindOf(v)
	if m.mode == KindCheckDeclared {
		if want, ok := m.pinned[column]; ok && want != got {
			return newTypeConsistency(op, column, index, v, want, got)
		}
		return nil
	}
	if index > len(m.rows) {
		index = len(m.rows)
	}
	for i := index - 1; i >= 0; i-- {
		prior := m.rows[i][column]
		if prior == nil {
			continue
		}
		if want := kindOf(prior); want != got {
			return newTypeConsistency(op, column, index, v, want, got)
		}
		return nil
	}
	return nil
}

// pinKinds records first-seen kinds after a successful mutation, so
// a failed row never pins anything.
func (m *DataModel) pinKinds(row Row) {
	if m.mode != KindCheckDeclared {
		return
	}
	for col, v := range row {
		if v == nil {
			continue
		}
		if _, ok := m.pinned[col]; !ok {
			m.pinned[col] = kindOf(v)
		}
	}
}

// GetRow returns a deep copy of the row at index.
func (m *DataModel) GetRow(index int) (Row, error) {
	const op = "GetRow"
	if index < 0 || index >= len(m.rows) {
		return nil, newRowIndexOutOfRange(op, index, len(m.rows))
	}
	return m.rows[index].Copy(), nil
}

// GetRows returns deep copies of rows in [start, end], inclusive.
// end == -1 means the last row.
func (m *DataModel) GetRows(start, end int) ([]Row, error) {
	const op = "GetRows"
	if end == -1 {
		end = len(m.rows) - 1
	}
	if start < 0 || start >= len(m.rows) {
		return nil, newRowIndexOutOfRange(op, start, len(m.rows))
	}
	if end < start || end >= len(m.rows) {
		return nil, newRowIndexOutOfRange(op, end, len(m.rows))
	}
	out := make([]Row, 0, end-start+1)
	for _, row := range m.rows[start : end+1] {
		out = append(out, row.Copy())
	}
	return out, nil
}

// GetAllRows returns deep copies of every row. This is the snapshot
// the transport layer serializes.
func (m *DataModel) GetAllRows() []Row {
	out := make([]Row, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row.Copy())
	}
	return out
}

// RemoveRow removes and returns the row at index.
func (m *DataModel) RemoveRow(index int) (Row, error) {
	const op = "RemoveRow"
	if index < 0 || index >= len(m.rows) {
		return nil, newRowIndexOutOfRange(op, index, len(m.rows))
	}
	removed := m.rows[index]
	m.rows = append(m.rows[:index], m.rows[index+1:]...)
	m.notify(ModelEvent{Type: EventRowRemoved, RowIndex: index, Data: len(m.rows)})
	return removed, nil
}

// SetValue stores a single cell value after the standard validation:
// the Undefined sentinel is rejected, the column must be declared and
// the value must pass the type-consistency check.
func (m *DataModel) SetValue(index int, column string, v any) error {
	const op = "SetValue"
	if _, ok := v.(undefinedValue); ok {
		return newUndefinedValue(op, column)
	}
	if m.colIndex(column) < 0 {
		return newColumnNotFound(op, column)
	}
	if index < 0 || index >= len(m.rows) {
		return newRowIndexOutOfRange(op, index, len(m.rows))
	}
	nv, err := normalizeValue(op, column, v)
	if err != nil {
		return err
	}
	if err := m.checkKind(op, column, index, nv); err != nil {
		return err
	}
	m.rows[index][column] = nv
	m.pinKinds(Row{column: nv})
	m.notify(ModelEvent{Type: EventValueSet, Column: column, RowIndex: index})
	return nil
}

// GetValue returns a deep copy of a single cell value.
func (m *DataModel) GetValue(index int, column string) (any, error) {
	const op = "GetValue"
	if m.colIndex(column) < 0 {
		return nil, newColumnNotFound(op, column)
	}
	if index < 0 || index >= len(m.rows) {
		return nil, newRowIndexOutOfRange(op, index, len(m.rows))
	}
	return deepcopy.Clone(m.rows[index][column]), nil
}

// SetColumnSameValue assigns one value to every row in a column,
// declaring the column first when it is absent. Each row receives an
// independent copy.
func (m *DataModel) SetColumnSameValue(column string, v any) error {
	const op = "SetColumnSameValue"
	if _, ok := v.(undefinedValue); ok {
		return newUndefinedValue(op, column)
	}
	if column == "" {
		return newInvalidColumnName(op, column)
	}
	nv, err := normalizeValue(op, column, v)
	if err != nil {
		return err
	}
	if m.colIndex(column) < 0 {
		if err := m.DeclareColumns(column); err != nil {
			return err
		}
	}
	for _, row := range m.rows {
		row[column] = deepcopy.Clone(nv)
	}
	if nv != nil && m.mode == KindCheckDeclared {
		m.pinned[column] = kindOf(nv)
	}
	m.notify(ModelEvent{Type: EventValueSet, Column: column, RowIndex: -1, Data: len(m.rows)})
	return nil
}

// SetColumnSameFormat rewrites every value in a column through a
// formatter function, re-validating each result through the standard
// type-consistency check. Rows are rewritten in order, so in backward
// mode each result is checked against the already-formatted rows
// above it.
func (m *DataModel) SetColumnSameFormat(column string, formatter func(any) any) error {
	const op = "SetColumnSameFormat"
	if formatter == nil {
		return newInvalidFunction(op)
	}
	if m.colIndex(column) < 0 {
		return newColumnNotFound(op, column)
	}
	for i, row := range m.rows {
		nv, err := normalizeValue(op, column, formatter(deepcopy.Clone(row[column])))
		if err != nil {
			return err
		}
		if err := m.checkKind(op, column, i, nv); err != nil {
			return err
		}
		row[column] = nv
		m.pinKinds(Row{column: nv})
	}
	m.notify(ModelEvent{Type: EventValueSet, Column: column, RowIndex: -1, Data: len(m.rows)})
	return nil
}

// Clone returns a new model built from a deep copy of all rows. The
// clone gets its own ID and no observers; columns, rows, mode and
// pinned kinds carry over.
func (m *DataModel) Clone() *DataModel {
	out := NewDataModel()
	out.mode = m.mode
	out.columns = slices.Clone(m.columns)
	out.rows = make([]Row, 0, len(m.rows))
	for _, row := range m.rows {
		out.rows = append(out.rows, row.Copy())
	}
	for col, kind := range m.pinned {
		out.pinned[col] = kind
	}
	return out
}

// Clear removes all columns and rows, returning the model to the
// undeclared state. Pinned kinds are forgotten.
func (m *DataModel) Clear() {
	m.columns = nil
	m.rows = nil
	m.pinned = make(map[string]Kind)
	m.notify(ModelEvent{Type: EventCleared, RowIndex: -1})
}

// Object is a deep-copied snapshot of a model, shaped for
// serialization by the transport layer.
type Object struct {
	Columns     []string `json:"columns"`
	Rows        []Row    `json:"rows"`
	ColumnCount int      `json:"columnCount"`
	RowCount    int      `json:"rowCount"`
	IsDeclared  bool     `json:"isDeclared"`
}

// GetObject returns a snapshot of the model. Mutating the snapshot
// never affects the model.
func (m *DataModel) GetObject() Object {
	return Object{
		Columns:     slices.Clone(m.columns),
		Rows:        m.GetAllRows(),
		ColumnCount: len(m.columns),
		RowCount:    len(m.rows),
		IsDeclared:  len(m.columns) > 0,
	}
}

// Serialize renders the model snapshot as canonical JSON.
func (m *DataModel) Serialize() (string, error) {
	return marshalCanonical(m.GetObject())
}

func (m *DataModel) String() string {
	return "DataModel(" + strings.Join(m.columns, ",") + ")"
}
