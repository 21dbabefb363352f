package data

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"github.com/cespare/xxhash/v2"
	json "github.com/goccy/go-json"

	"github.com/hisondev/data-go/deepcopy"
)

// Undefined is the explicit "no value supplied" sentinel, distinct
// from nil. Mutation operations that require a concrete value
// (including nil) reject it.
var Undefined = undefinedValue{}

type undefinedValue struct{}

func (undefinedValue) String() string { return "undefined" }

// Kind is the runtime category of a cell value, used for the
// per-column type-consistency check. Values produced by the
// conversion hook that are none of the canonical kinds get a
// dynamic-type kind of their own.
type Kind string

const (
	KindNull   Kind = "null"
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "boolean"
	KindBigInt Kind = "bigint"
	KindArray  Kind = "array"
	KindObject Kind = "object"
)

func kindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return KindNull
	case string:
		return KindString
	case bool:
		return KindBool
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindNumber
	case *big.Int:
		return KindBigInt
	case []any:
		return KindArray
	case map[string]any:
		return KindObject
	default:
		return Kind(reflect.TypeOf(v).String())
	}
}

// normalizeValue validates and prepares a caller-supplied value for
// storage: rejects the Undefined sentinel and nested containers,
// widens integers to int64 and floats to float64, and deep-copies
// structured values so the model never aliases caller state. Values
// of any other type pass through the deepcopy conversion hook.
func normalizeValue(op, column string, v any) (any, error) {
	switch val := v.(type) {
	case undefinedValue:
		return nil, newUndefinedValue(op, column)
	case *DataModel, *DataWrapper:
		return nil, newNestedContainer(op, column, v)
	case nil, string, bool, int64, float64:
		return val, nil
	case int:
		return int64(val), nil
	case int8:
		return int64(val), nil
	case int16:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case uint:
		if uint64(val) > math.MaxInt64 {
			return new(big.Int).SetUint64(uint64(val)), nil
		}
		return int64(val), nil
	case uint8:
		return int64(val), nil
	case uint16:
		return int64(val), nil
	case uint32:
		return int64(val), nil
	case uint64:
		// values past int64 stay exact as big integers
		if val > math.MaxInt64 {
			return new(big.Int).SetUint64(val), nil
		}
		return int64(val), nil
	case float32:
		return float64(val), nil
	case *big.Int:
		if val == nil {
			return nil, nil
		}
		return new(big.Int).Set(val), nil
	default:
		return deepcopy.Clone(v), nil
	}
}

// canonicalEncode produces the deterministic string representation
// used to compare structured values for equality in search, duplicate
// and sort operations. Record keys serialize in sorted order, so two
// structurally equal values always encode identically.
func canonicalEncode(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(val)
	case bool:
		return strconv.FormatBool(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case *big.Int:
		return "bigint:" + val.String()
	case []any, map[string]any:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%#v", val)
		}
		return string(b)
	default:
		return string(kindOf(v)) + ":" + fmt.Sprintf("%v", v)
	}
}

// fingerprint hashes a value's canonical encoding. Scan operations
// key their seen-sets by fingerprint and verify the full encoding on
// a hit, so hash collisions cannot produce false matches.
func fingerprint(v any) uint64 {
	return xxhash.Sum64String(canonicalEncode(v))
}

// valuesEqual is structural equality via canonical encoding.
func valuesEqual(a, b any) bool {
	return canonicalEncode(a) == canonicalEncode(b)
}

func marshalCanonical(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
