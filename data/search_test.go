package data

import (
	"errors"
	"testing"
)

func TestNullColumnScan(t *testing.T) {
	m := mustModel(t, []Row{
		{"email": "a@x.io"},
		{"email": nil},
		{"email": "c@x.io"},
	})

	notNull, err := m.IsNotNullColumn("email")
	if err != nil {
		t.Fatalf("IsNotNullColumn error: %v", err)
	}
	if notNull {
		t.Error("Expected null presence to be detected")
	}

	idx, err := m.FindFirstRowNullColumn("email")
	if err != nil {
		t.Fatalf("FindFirstRowNullColumn error: %v", err)
	}
	if idx != 1 {
		t.Errorf("Expected first null at row 1, got %d", idx)
	}

	if _, err := m.FindFirstRowNullColumn("missing"); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestDuplicateDetection(t *testing.T) {
	m := mustModel(t, []Row{{"x": 1}, {"x": 2}, {"x": 1}})

	idx, err := m.FindFirstRowDuplColumn("x")
	if err != nil {
		t.Fatalf("FindFirstRowDuplColumn error: %v", err)
	}
	if idx != 2 {
		t.Errorf("Expected duplicate reported at row 2, got %d", idx)
	}

	notDup, err := m.IsNotDuplColumn("x")
	if err != nil || notDup {
		t.Errorf("Expected duplicate column, got notDup=%v err=%v", notDup, err)
	}
}

func TestDuplicateDetectionStructural(t *testing.T) {
	m := mustModel(t, []Row{
		{"v": map[string]any{"a": 1, "b": 2}},
		{"v": map[string]any{"b": 2, "a": 1}},
	})

	idx, err := m.FindFirstRowDuplColumn("v")
	if err != nil {
		t.Fatalf("FindFirstRowDuplColumn error: %v", err)
	}
	if idx != 1 {
		t.Errorf("Structurally equal records must count as duplicates, got %d", idx)
	}
}

func TestDuplicateIgnoresNulls(t *testing.T) {
	m := mustModel(t, []Row{{"x": nil}, {"x": nil}, {"x": 1}})

	notDup, err := m.IsNotDuplColumn("x")
	if err != nil {
		t.Fatalf("IsNotDuplColumn error: %v", err)
	}
	if !notDup {
		t.Error("Multiple nulls are not duplicates")
	}
}

func TestValuePredicateScan(t *testing.T) {
	m := mustModel(t, []Row{{"n": 2}, {"n": 4}, {"n": 5}})

	even := func(v any) bool {
		n, ok := v.(int64)
		return ok && n%2 == 0
	}

	ok, err := m.IsValidValue("n", even)
	if err != nil {
		t.Fatalf("IsValidValue error: %v", err)
	}
	if ok {
		t.Error("Expected a failing row")
	}

	idx, err := m.FindFirstRowInvalidValue("n", even)
	if err != nil {
		t.Fatalf("FindFirstRowInvalidValue error: %v", err)
	}
	if idx != 2 {
		t.Errorf("Expected first invalid at row 2, got %d", idx)
	}

	if _, err := m.IsValidValue("n", nil); !errors.Is(err, ErrInvalidFunction) {
		t.Fatalf("Expected ErrInvalidFunction, got %v", err)
	}
}

func TestSearchRowIndexes(t *testing.T) {
	m := mustModel(t, []Row{
		{"id": 1, "active": true},
		{"id": 2, "active": false},
		{"id": 3, "active": true},
	})

	matched, err := m.SearchRowIndexes(Row{"active": true}, false)
	if err != nil {
		t.Fatalf("SearchRowIndexes error: %v", err)
	}
	if len(matched) != 2 || matched[0] != 0 || matched[1] != 2 {
		t.Fatalf("Expected [0 2], got %v", matched)
	}

	if _, err := m.SearchRowIndexes(Row{"missing": 1}, false); !errors.Is(err, ErrColumnNotFound) {
		t.Fatalf("Expected ErrColumnNotFound, got %v", err)
	}
}

func TestSearchNegationComplement(t *testing.T) {
	m := mustModel(t, []Row{
		{"id": 1, "active": true},
		{"id": 2, "active": false},
		{"id": 3, "active": true},
		{"id": 4, "active": nil},
	})

	cond := Row{"active": true}
	matched, err := m.SearchRowIndexes(cond, false)
	if err != nil {
		t.Fatalf("SearchRowIndexes error: %v", err)
	}
	complement, err := m.SearchRowIndexes(cond, true)
	if err != nil {
		t.Fatalf("SearchRowIndexes negate error: %v", err)
	}

	seen := make(map[int]bool)
	for _, i := range matched {
		seen[i] = true
	}
	for _, i := range complement {
		if seen[i] {
			t.Errorf("Row %d in both partitions", i)
		}
		seen[i] = true
	}
	if len(seen) != m.RowCount() {
		t.Errorf("Partition has gaps: %d of %d rows covered", len(seen), m.RowCount())
	}
}

func TestSearchMultiKeyCondition(t *testing.T) {
	m := mustModel(t, []Row{
		{"a": 1, "b": "x"},
		{"a": 1, "b": "y"},
		{"a": 2, "b": "x"},
	})

	rows, err := m.SearchRows(Row{"a": 1, "b": "x"}, false)
	if err != nil {
		t.Fatalf("SearchRows error: %v", err)
	}
	if len(rows) != 1 || rows[0]["b"] != "x" {
		t.Fatalf("Expected single row {a:1 b:x}, got %v", rows)
	}
}

func TestSearchRowsAsDataModel(t *testing.T) {
	m := mustModel(t, []Row{
		{"id": 1, "active": true},
		{"id": 2, "active": false},
	})

	sub, err := m.SearchRowsAsDataModel(Row{"active": false}, false)
	if err != nil {
		t.Fatalf("SearchRowsAsDataModel error: %v", err)
	}
	if sub.RowCount() != 1 || sub.ColumnCount() != m.ColumnCount() {
		t.Fatalf("Expected 1-row sub-model with same columns, got %d rows %d cols",
			sub.RowCount(), sub.ColumnCount())
	}

	// sub-model is independent
	if err := sub.SetValue(0, "id", 99); err != nil {
		t.Fatalf("SetValue on sub-model error: %v", err)
	}
	v, _ := m.GetValue(1, "id")
	if v != int64(2) {
		t.Error("Mutating the sub-model must not change the source")
	}
}

func TestSearchAndModify(t *testing.T) {
	recs := []Row{
		{"id": 1, "active": true},
		{"id": 2, "active": false},
		{"id": 3, "active": true},
	}

	keep := mustModel(t, recs)
	if err := keep.SearchAndModify(Row{"active": true}, false); err != nil {
		t.Fatalf("SearchAndModify error: %v", err)
	}
	if keep.RowCount() != 2 {
		t.Errorf("negate=false keeps matches: expected 2 rows, got %d", keep.RowCount())
	}

	discard := mustModel(t, recs)
	if err := discard.SearchAndModify(Row{"active": true}, true); err != nil {
		t.Fatalf("SearchAndModify error: %v", err)
	}
	if discard.RowCount() != 1 {
		t.Errorf("negate=true discards matches: expected 1 row, got %d", discard.RowCount())
	}
	v, _ := discard.GetValue(0, "id")
	if v != int64(2) {
		t.Errorf("Expected surviving row id=2, got %v", v)
	}
}

func TestFilterOperations(t *testing.T) {
	m := mustModel(t, []Row{{"n": 1}, {"n": 2}, {"n": 3}, {"n": 4}})

	even := func(r Row) bool {
		n, ok := r["n"].(int64)
		return ok && n%2 == 0
	}

	indexes, err := m.FilterRowIndexes(even)
	if err != nil {
		t.Fatalf("FilterRowIndexes error: %v", err)
	}
	if len(indexes) != 2 || indexes[0] != 1 || indexes[1] != 3 {
		t.Fatalf("Expected [1 3], got %v", indexes)
	}

	rows, err := m.FilterRows(even)
	if err != nil || len(rows) != 2 {
		t.Fatalf("FilterRows: expected 2 rows, got %v err=%v", rows, err)
	}

	sub, err := m.FilterRowsAsDataModel(even)
	if err != nil || sub.RowCount() != 2 {
		t.Fatalf("FilterRowsAsDataModel: expected 2 rows, err=%v", err)
	}

	if _, err := m.FilterRowIndexes(nil); !errors.Is(err, ErrInvalidFunction) {
		t.Fatalf("Expected ErrInvalidFunction, got %v", err)
	}

	if err := m.FilterAndModify(even); err != nil {
		t.Fatalf("FilterAndModify error: %v", err)
	}
	if m.RowCount() != 2 {
		t.Errorf("Expected 2 rows retained, got %d", m.RowCount())
	}
}

func TestFilterPredicateCannotMutateModel(t *testing.T) {
	m := mustModel(t, []Row{{"n": 1}})

	_, err := m.FilterRowIndexes(func(r Row) bool {
		r["n"] = int64(999)
		return true
	})
	if err != nil {
		t.Fatalf("FilterRowIndexes error: %v", err)
	}
	v, _ := m.GetValue(0, "n")
	if v != int64(1) {
		t.Error("Predicate receives copies; mutating them must not change the model")
	}
}
