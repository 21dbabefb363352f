package deepcopy

import (
	"time"

	"github.com/rickb777/date/v2"
)

// TemporalHook renders temporal values to their ISO-8601 strings so
// they survive cloning and serialization as plain text. time.Time
// becomes RFC 3339, date.Date its calendar date. Everything else is
// passed through.
func TemporalHook(v any) (any, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339), true
	case *time.Time:
		if t == nil {
			return nil, true
		}
		return t.Format(time.RFC3339), true
	case date.Date:
		return t.String(), true
	default:
		return nil, false
	}
}
