package data

import "log/slog"

// LoggingObserver is a simple observer that logs all model mutation
// events using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer bound to the default
// slog logger.
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{logger: slog.Default()}
}

// NewLoggingObserverWith creates a logging observer bound to the
// given logger.
func NewLoggingObserverWith(logger *slog.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnModelEvent implements the Observer interface.
// It logs each event with structured fields for easy filtering and analysis
func (lo *LoggingObserver) OnModelEvent(event ModelEvent) {
	lo.logger.Info("model_mutation",
		"event", event.Type,
		"model_id", event.ModelID,
		"column", event.Column,
		"row_index", event.RowIndex,
		"timestamp", event.Timestamp,
		"data", event.Data,
	)
}
