package main

import (
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/rickb777/date/v2"

	"github.com/hisondev/data-go/data"
)

var section = color.New(color.FgCyan, color.Bold)

// demoModelOperations walks the model through its mutation, search
// and sort surface.
func demoModelOperations(users *data.DataModel) {
	section.Println("=== Model Operations ===")

	// Column backfill
	if err := users.AddColumn("signed_up"); err != nil {
		slog.Error("AddColumn failed", "error", err)
		return
	}
	for i := 0; i < users.RowCount(); i++ {
		if err := users.SetValue(i, "signed_up", date.New(2026, time.January, i+1)); err != nil {
			slog.Error("SetValue failed", "row", i, "error", err)
		}
	}
	slog.Info("signed_up column populated", "columns", users.Columns())

	// Type consistency is enforced against the column's prior kind
	if err := users.SetValue(1, "username", 42); err != nil {
		slog.Info("kind conflict rejected as expected", "error", err)
	}

	// Null scan
	idx, err := users.FindFirstRowNullColumn("email")
	if err != nil {
		slog.Error("null scan failed", "error", err)
	} else {
		slog.Info("first row with null email", "row", idx)
	}

	// Condition search and its complement
	active, err := users.SearchRowIndexes(data.Row{"is_active": true}, false)
	if err != nil {
		slog.Error("search failed", "error", err)
		return
	}
	inactive, _ := users.SearchRowIndexes(data.Row{"is_active": true}, true)
	slog.Info("search partition", "active", active, "inactive", inactive)

	// Stable sort, nulls last ascending
	if err := users.SortRowDescending("id", true); err != nil {
		slog.Error("sort failed", "error", err)
		return
	}
	top, _ := users.GetRow(0)
	slog.Info("highest id after descending sort", "row", top)

	// Clone independence
	clone := users.Clone()
	clone.Clear()
	slog.Info("clone cleared without touching source",
		"clone_declared", clone.IsDeclared(),
		"source_rows", users.RowCount(),
	)
}

// demoWrapperOperations assembles the flattened payload shape the
// transport layer would serialize.
func demoWrapperOperations(users *data.DataModel) {
	section.Println("=== Wrapper Operations ===")

	payload := data.NewDataWrapper()
	if err := payload.Put("cmd", "user.sync"); err != nil {
		slog.Error("Put failed", "error", err)
		return
	}
	if err := payload.Put("attempt", 1); err != nil {
		slog.Error("Put failed", "error", err)
		return
	}
	if err := payload.PutDataModel("users", users); err != nil {
		slog.Error("PutDataModel failed", "error", err)
		return
	}

	// Flat namespace only
	if err := payload.Put("nested", data.NewDataWrapper()); err != nil {
		slog.Info("nested wrapper rejected as expected", "error", err)
	}

	serialized, err := payload.GetSerialized()
	if err != nil {
		slog.Error("serialization failed", "error", err)
		return
	}
	slog.Info("payload ready",
		"keys", payload.Keys(),
		"size", payload.Size(),
		"body", serialized,
	)
}
