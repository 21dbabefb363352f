package data

import "time"

// EventType identifies a mutation on a DataModel.
type EventType string

const (
	EventColumnAdded   EventType = "column_added"
	EventColumnRemoved EventType = "column_removed"
	EventColumnsSorted EventType = "columns_sorted"
	EventRowAdded      EventType = "row_added"
	EventRowRemoved    EventType = "row_removed"
	EventRowsSorted    EventType = "rows_sorted"
	EventRowsModified  EventType = "rows_modified"
	EventValueSet      EventType = "value_set"
	EventCleared       EventType = "cleared"
)

// ModelEvent describes one mutation. Events carry scalar context
// only, never references into model internals.
type ModelEvent struct {
	Type      EventType // type of event
	ModelID   string    // owning model's ID for tracing
	Column    string    // column involved (empty if not applicable)
	RowIndex  int       // row involved (-1 if not applicable)
	Timestamp time.Time // when the mutation occurred
	Data      any       // event-specific data (e.g. row count, sort column)
}

// Observer receives mutation events from models it is registered on.
type Observer interface {
	OnModelEvent(event ModelEvent)
}
