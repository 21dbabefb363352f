package data

import (
	"math/big"
	"sort"
	"strconv"
)

// DataWrapper is the flat string-keyed boundary container handed to
// the transport layer. Values are strings, nil, or independent
// DataModel clones. The namespace is flat: a wrapper never holds
// another wrapper, and models go in and come out as deep copies, so
// callers cannot reach wrapper-internal state through returned
// references.
type DataWrapper struct {
	entries map[string]any
}

// NewDataWrapper creates an empty wrapper.
func NewDataWrapper() *DataWrapper {
	return &DataWrapper{entries: make(map[string]any)}
}

// NewDataWrapperFrom creates a wrapper holding a single entry.
func NewDataWrapperFrom(key string, value any) (*DataWrapper, error) {
	w := NewDataWrapper()
	if err := w.Put(key, value); err != nil {
		return nil, err
	}
	return w, nil
}

// NewDataWrapperFromMap creates a wrapper from a record of entries.
func NewDataWrapperFromMap(entries map[string]any) (*DataWrapper, error) {
	w := NewDataWrapper()
	for key, value := range entries {
		if err := w.Put(key, value); err != nil {
			return nil, err
		}
	}
	return w, nil
}

// Put stores a value under key. Strings are stored as-is; booleans,
// integers, floats and big integers are coerced to their string
// forms; nil is kept as nil; a DataModel is stored as an independent
// clone. A DataWrapper fails with ErrNestedContainer and anything
// else with ErrUnsupportedValueType.
func (w *DataWrapper) Put(key string, value any) error {
	const op = "Put"
	if key == "" {
		return newInvalidKey(op)
	}
	switch v := value.(type) {
	case nil:
		w.entries[key] = nil
	case string:
		w.entries[key] = v
	case *DataModel:
		if v == nil {
			return newUnsupportedValueType(op, key, value)
		}
		w.entries[key] = v.Clone()
	case *DataWrapper:
		return newNestedContainer(op, key, value)
	default:
		s, ok := coerceString(value)
		if !ok {
			return newUnsupportedValueType(op, key, value)
		}
		w.entries[key] = s
	}
	return nil
}

// PutString stores a string-convertible scalar, failing fast on
// anything else.
func (w *DataWrapper) PutString(key string, value any) error {
	const op = "PutString"
	if key == "" {
		return newInvalidKey(op)
	}
	if s, ok := value.(string); ok {
		w.entries[key] = s
		return nil
	}
	s, ok := coerceString(value)
	if !ok {
		return newUnsupportedValueType(op, key, value)
	}
	w.entries[key] = s
	return nil
}

// PutDataModel stores a clone of the model, failing fast when the
// model is nil.
func (w *DataWrapper) PutDataModel(key string, m *DataModel) error {
	const op = "PutDataModel"
	if key == "" {
		return newInvalidKey(op)
	}
	if m == nil {
		return newUnsupportedValueType(op, key, m)
	}
	w.entries[key] = m.Clone()
	return nil
}

// Get returns the stored string, nil, or a deep copy of the stored
// model. An absent key yields nil.
func (w *DataWrapper) Get(key string) any {
	switch v := w.entries[key].(type) {
	case *DataModel:
		return v.Clone()
	default:
		return v
	}
}

// GetString returns the stored string, failing when the entry is
// absent or not a string.
func (w *DataWrapper) GetString(key string) (string, error) {
	const op = "GetString"
	v, ok := w.entries[key]
	if !ok {
		return "", newUnsupportedValueType(op, key, nil)
	}
	s, ok := v.(string)
	if !ok {
		return "", newUnsupportedValueType(op, key, v)
	}
	return s, nil
}

// GetDataModel returns a deep copy of the stored model, failing when
// the entry is absent or not a model.
func (w *DataWrapper) GetDataModel(key string) (*DataModel, error) {
	const op = "GetDataModel"
	v, ok := w.entries[key]
	if !ok {
		return nil, newUnsupportedValueType(op, key, nil)
	}
	m, ok := v.(*DataModel)
	if !ok {
		return nil, newUnsupportedValueType(op, key, v)
	}
	return m.Clone(), nil
}

// Remove deletes the key and returns the previously stored value, or
// nil when absent. A stored model transfers ownership to the caller.
func (w *DataWrapper) Remove(key string) any {
	v, ok := w.entries[key]
	if !ok {
		return nil
	}
	delete(w.entries, key)
	return v
}

// ContainsKey reports whether the key is present.
func (w *DataWrapper) ContainsKey(key string) bool {
	_, ok := w.entries[key]
	return ok
}

// IsEmpty reports whether the wrapper holds no entries.
func (w *DataWrapper) IsEmpty() bool { return len(w.entries) == 0 }

// Size returns the number of entries.
func (w *DataWrapper) Size() int { return len(w.entries) }

// Keys returns the entry keys in sorted order.
func (w *DataWrapper) Keys() []string {
	keys := make([]string, 0, len(w.entries))
	for k := range w.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the entry values in key order. Models come out as
// deep copies.
func (w *DataWrapper) Values() []any {
	keys := w.Keys()
	out := make([]any, 0, len(keys))
	for _, k := range keys {
		out = append(out, w.Get(k))
	}
	return out
}

// Clear removes every entry.
func (w *DataWrapper) Clear() {
	w.entries = make(map[string]any)
}

// Clone returns an independent copy of the wrapper.
func (w *DataWrapper) Clone() *DataWrapper {
	out := NewDataWrapper()
	for k, v := range w.entries {
		if m, ok := v.(*DataModel); ok {
			out.entries[k] = m.Clone()
		} else {
			out.entries[k] = v
		}
	}
	return out
}

// GetObject returns a plain snapshot of the entries, with any stored
// model expanded to its own GetObject structure.
func (w *DataWrapper) GetObject() map[string]any {
	out := make(map[string]any, len(w.entries))
	for k, v := range w.entries {
		if m, ok := v.(*DataModel); ok {
			out[k] = m.GetObject()
		} else {
			out[k] = v
		}
	}
	return out
}

// GetSerialized renders the entries as canonical JSON, with any
// stored model flattened to its row list. This is the request-body
// payload shape consumed by the transport layer.
func (w *DataWrapper) GetSerialized() (string, error) {
	flat := make(map[string]any, len(w.entries))
	for k, v := range w.entries {
		if m, ok := v.(*DataModel); ok {
			flat[k] = m.GetAllRows()
		} else {
			flat[k] = v
		}
	}
	return marshalCanonical(flat)
}

// coerceString converts the scalar types a wrapper accepts into
// their canonical string forms.
func coerceString(value any) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case int:
		return strconv.FormatInt(int64(v), 10), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case *big.Int:
		if v == nil {
			return "", false
		}
		return v.String(), true
	default:
		return "", false
	}
}
