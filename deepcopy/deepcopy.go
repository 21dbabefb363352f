// Package deepcopy provides recursive value cloning for the dynamic
// values held by data models: primitives, []any arrays and
// map[string]any records. Anything else is handed to a conversion
// hook, so domain-specific types (temporal values, decimals, ...) can
// be supported without teaching the cloner about them.
package deepcopy

import (
	"math/big"
	"reflect"
)

// Hook converts a value that is neither a primitive, an []any nor a
// map[string]any. It returns the replacement and true, or false when
// the value should be passed through untouched.
type Hook func(v any) (any, bool)

var defaultHook Hook

// SetDefaultHook installs the process-wide conversion hook used by
// Clone. Passing nil restores pass-through behavior.
func SetDefaultHook(h Hook) {
	defaultHook = h
}

// DefaultHook returns the currently installed process-wide hook, or
// nil when none is set.
func DefaultHook() Hook {
	return defaultHook
}

// visit records one (source reference, produced copy) pair. The list
// is threaded through recursive calls so cyclic and diamond-shaped
// graphs copy without infinite recursion: a source seen twice yields
// the same copy twice.
type visit struct {
	src any
	dst any
}

// Clone returns a copy of v with no mutable aliasing to v, using the
// process-wide hook for non-plain values.
func Clone(v any) any {
	return CloneWith(v, defaultHook)
}

// CloneWith is Clone with an explicit hook. A nil hook means
// pass-through: unrecognized values are returned unchanged.
func CloneWith(v any, hook Hook) any {
	var seen []visit
	return clone(v, hook, &seen)
}

// The visited list is shared by pointer across the whole traversal:
// an entry recorded while copying one branch must be visible to
// sibling branches, or a value reachable twice would copy twice.
func clone(v any, hook Hook, seen *[]visit) any {
	switch val := v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return val
	case *big.Int:
		if val == nil {
			return (*big.Int)(nil)
		}
		return new(big.Int).Set(val)
	case []any:
		if val == nil {
			return []any(nil)
		}
		if prior, ok := lookup(*seen, val); ok {
			return prior
		}
		out := make([]any, len(val))
		*seen = append(*seen, visit{src: val, dst: out})
		for i, elem := range val {
			out[i] = clone(elem, hook, seen)
		}
		return out
	case map[string]any:
		if val == nil {
			return map[string]any(nil)
		}
		if prior, ok := lookup(*seen, val); ok {
			return prior
		}
		out := make(map[string]any, len(val))
		*seen = append(*seen, visit{src: val, dst: out})
		for k, elem := range val {
			out[k] = clone(elem, hook, seen)
		}
		return out
	default:
		if hook != nil {
			if replaced, ok := hook(v); ok {
				return replaced
			}
		}
		return v
	}
}

// lookup scans the visited list for src, matching by reference
// identity rather than value equality.
func lookup(seen []visit, src any) (any, bool) {
	for _, pair := range seen {
		if sameRef(pair.src, src) {
			return pair.dst, true
		}
	}
	return nil, false
}

// sameRef reports whether a and b are the same map or share the same
// backing array. Two distinct empty slices can share a data pointer,
// so slice identity also compares length.
func sameRef(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != rb.Kind() {
		return false
	}
	switch ra.Kind() {
	case reflect.Map:
		return ra.Pointer() == rb.Pointer()
	case reflect.Slice:
		return ra.Pointer() == rb.Pointer() && ra.Len() == rb.Len()
	default:
		return false
	}
}
