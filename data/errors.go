package data

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel kinds for the error taxonomy. Every failure surfaced by
// DataModel and DataWrapper wraps one of these, so callers branch
// with errors.Is.
var (
	ErrColumnNotFound       = errors.New("column not found")
	ErrDuplicateColumn      = errors.New("duplicate column")
	ErrColumnsUndeclared    = errors.New("no columns declared")
	ErrInvalidColumnName    = errors.New("invalid column name")
	ErrRowIndexOutOfRange   = errors.New("row index out of range")
	ErrTypeConsistency      = errors.New("type consistency violation")
	ErrUndefinedValue       = errors.New("undefined value")
	ErrNestedContainer      = errors.New("nested container")
	ErrUnsupportedValueType = errors.New("unsupported value type")
	ErrInvalidFunction      = errors.New("invalid function")
	ErrInvalidKey           = errors.New("invalid key")
	ErrSortType             = errors.New("value not sortable as number")
)

// DataError carries the context of a failed model or wrapper
// operation: which operation, which column or key, which row, and
// the offending value where one exists.
type DataError struct {
	Op       string // operation name, e.g. "AddRow"
	Column   string // column or wrapper key (empty if not applicable)
	Value    any    // offending value (may be nil)
	Reason   string // human-readable explanation (optional)
	RowIndex int    // row number (0-based) where the failure occurred (-1 if unknown)
	err      error  // sentinel kind
}

func (e *DataError) Error() string {
	var parts []string

	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("%s: %s on %q", e.Op, e.err, e.Column))
	} else {
		parts = append(parts, fmt.Sprintf("%s: %s", e.Op, e.err))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	return strings.Join(parts, " - ")
}

func (e *DataError) Unwrap() error {
	return e.err
}

func newColumnNotFound(op, column string) *DataError {
	return &DataError{Op: op, Column: column, RowIndex: -1, err: ErrColumnNotFound}
}

func newDuplicateColumn(op, column string) *DataError {
	return &DataError{Op: op, Column: column, RowIndex: -1, err: ErrDuplicateColumn}
}

func newColumnsUndeclared(op string) *DataError {
	return &DataError{Op: op, RowIndex: -1, err: ErrColumnsUndeclared}
}

func newInvalidColumnName(op, column string) *DataError {
	return &DataError{
		Op:       op,
		Column:   column,
		Reason:   "column names must be non-empty strings",
		RowIndex: -1,
		err:      ErrInvalidColumnName,
	}
}

func newRowIndexOutOfRange(op string, index, rowCount int) *DataError {
	return &DataError{
		Op:       op,
		Reason:   fmt.Sprintf("index %d with %d rows", index, rowCount),
		RowIndex: index,
		err:      ErrRowIndexOutOfRange,
	}
}

func newTypeConsistency(op, column string, rowIndex int, value any, want, got Kind) *DataError {
	return &DataError{
		Op:       op,
		Column:   column,
		Value:    value,
		Reason:   fmt.Sprintf("column kind is %s, got %s", want, got),
		RowIndex: rowIndex,
		err:      ErrTypeConsistency,
	}
}

func newUndefinedValue(op, column string) *DataError {
	return &DataError{
		Op:       op,
		Column:   column,
		Reason:   "a concrete value (including nil) is required",
		RowIndex: -1,
		err:      ErrUndefinedValue,
	}
}

func newNestedContainer(op, column string, value any) *DataError {
	return &DataError{
		Op:       op,
		Column:   column,
		Reason:   fmt.Sprintf("%T may not be stored as a value", value),
		RowIndex: -1,
		err:      ErrNestedContainer,
	}
}

func newUnsupportedValueType(op, key string, value any) *DataError {
	return &DataError{
		Op:       op,
		Column:   key,
		Value:    value,
		Reason:   fmt.Sprintf("got %T", value),
		RowIndex: -1,
		err:      ErrUnsupportedValueType,
	}
}

func newInvalidFunction(op string) *DataError {
	return &DataError{
		Op:       op,
		Reason:   "a non-nil function is required",
		RowIndex: -1,
		err:      ErrInvalidFunction,
	}
}

func newInvalidKey(op string) *DataError {
	return &DataError{
		Op:       op,
		Reason:   "keys must be non-empty strings",
		RowIndex: -1,
		err:      ErrInvalidKey,
	}
}

func newSortType(op, column string, rowIndex int, value any) *DataError {
	return &DataError{
		Op:       op,
		Column:   column,
		Value:    value,
		RowIndex: rowIndex,
		err:      ErrSortType,
	}
}
