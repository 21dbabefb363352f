package main

import (
	"log/slog"
	"os"

	"github.com/hisondev/data-go/data"
	"github.com/hisondev/data-go/deepcopy"
	"github.com/hisondev/data-go/internal/logging"
)

func main() {
	logger, closeFn := logging.Setup()
	defer closeFn()

	slog.SetDefault(logger)
	slog.Info("Starting data layer demo...")

	// Temporal values survive cloning as ISO strings
	deepcopy.SetDefaultHook(deepcopy.TemporalHook)

	users, err := data.NewDataModelFromRows([]data.Row{
		{"id": 1, "username": "alice", "email": "alice@example.com", "is_active": true},
		{"id": 2, "username": "bob", "email": "bob@example.com", "is_active": true},
		{"id": 3, "username": "carol", "email": nil, "is_active": false},
	})
	if err != nil {
		slog.Error("failed to build users model", "error", err)
		closeFn()
		os.Exit(1)
	}
	users.AddObserver(data.NewLoggingObserver())

	slog.Info("users model ready",
		"model_id", users.ID(),
		"columns", users.Columns(),
		"rows", users.RowCount(),
	)

	demoModelOperations(users)
	demoWrapperOperations(users)

	slog.Info("Demo complete")
}
