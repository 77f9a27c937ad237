package transcode

import (
	"encoding/json"
	"math"
	"reflect"
	"sort"
	"strconv"
)

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks an absent value. Object lookups of missing keys yield
// Undefined, and codecs encode absent optional values to it. It is distinct
// from nil, which stands for an explicit null.
var Undefined any = undefined{}

// IsUndefined reports whether v is the Undefined sentinel.
func IsUndefined(v any) bool {
	_, ok := v.(undefined)
	return ok
}

// IsNothing reports whether v is nil or Undefined.
func IsNothing(v any) bool { return v == nil || IsUndefined(v) }

// MaybeKind classifies a Maybe value.
type MaybeKind uint8

const (
	Present MaybeKind = iota
	Null
	Absent
)

// Maybe carries a value that may additionally be null or undefined.
type Maybe[T any] struct {
	Value T
	Kind  MaybeKind
}

// Some returns a present Maybe.
func Some[T any](v T) Maybe[T] { return Maybe[T]{Value: v} }

// NullOf returns a null Maybe.
func NullOf[T any]() Maybe[T] { return Maybe[T]{Kind: Null} }

// AbsentOf returns an undefined Maybe.
func AbsentOf[T any]() Maybe[T] { return Maybe[T]{Kind: Absent} }

// IsPresent reports whether m holds a value.
func (m Maybe[T]) IsPresent() bool { return m.Kind == Present }

// AsObject returns v as a plain object. Maps with string keys of any value
// type are accepted and copied into a map[string]any.
func AsObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case nil:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// AsArray returns v as a plain array. Any slice or array kind is accepted
// except byte slices, which are binary scalars in every supported format.
func AsArray(v any) ([]any, bool) {
	switch a := v.(type) {
	case []any:
		return a, true
	case nil, []byte:
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Kind() == reflect.Slice && rv.IsNil() {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Lookup returns the property k of obj or Undefined when it is absent.
func Lookup(obj map[string]any, k string) any {
	if v, ok := obj[k]; ok {
		return v
	}
	return Undefined
}

// SortedKeys returns the keys of m in ascending order for deterministic
// traversal.
func SortedKeys[V any](m map[string]V) []string {
	ks := make([]string, 0, len(m))
	for k := range m {
		ks = append(ks, k)
	}
	sort.Strings(ks)
	return ks
}

// AsFloat converts any Go numeric kind or json.Number to float64.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := strconv.ParseFloat(string(n), 64)
		return f, err == nil
	}
	return 0, false
}

// AsInt converts an integral number to int64. Fractional values and
// numbers outside the int64 range are rejected.
func AsInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
	}
	f, ok := AsFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
