package codecs

import (
	"math"
	"time"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

func typeMismatch[T any](tc *transcode.Context, name string, v any) (T, error) {
	return transcode.Fail[T](tc, transcode.CodeTypeMismatch, tc.Message(i18n.MsgTypeMismatch, name, nil), v)
}

func valueMismatch[T any](tc *transcode.Context, name string, v any) (T, error) {
	return transcode.Fail[T](tc, transcode.CodeValueMismatch, tc.Message(i18n.MsgValueMismatch, name, nil), v)
}

var (
	stringCodec = transcode.Make("string",
		func(tc *transcode.Context, v any) (string, error) {
			if s, ok := v.(string); ok {
				return s, nil
			}
			return typeMismatch[string](tc, "string", v)
		},
		func(_ *transcode.Context, s string) (any, error) { return s, nil },
		transcode.Suppressed())

	numberCodec = transcode.Make("number",
		func(tc *transcode.Context, v any) (float64, error) {
			if f, ok := transcode.AsFloat(v); ok {
				return f, nil
			}
			return typeMismatch[float64](tc, "number", v)
		},
		func(tc *transcode.Context, f float64) (any, error) {
			if tc.StrictPrimitives() && (math.IsNaN(f) || math.IsInf(f, 0)) {
				return valueMismatch[any](tc, "number", f)
			}
			return f, nil
		},
		transcode.Suppressed())

	intCodec = transcode.Make("integer",
		func(tc *transcode.Context, v any) (int64, error) {
			if i, ok := transcode.AsInt(v); ok {
				return i, nil
			}
			return typeMismatch[int64](tc, "integer", v)
		},
		func(_ *transcode.Context, i int64) (any, error) { return i, nil },
		transcode.Suppressed())

	boolCodec = transcode.Make("boolean",
		func(tc *transcode.Context, v any) (bool, error) {
			if b, ok := v.(bool); ok {
				return b, nil
			}
			return typeMismatch[bool](tc, "boolean", v)
		},
		func(_ *transcode.Context, b bool) (any, error) { return b, nil },
		transcode.Suppressed())

	unknownCodec = transcode.Make("unknown",
		func(_ *transcode.Context, v any) (any, error) { return v, nil },
		func(_ *transcode.Context, v any) (any, error) { return v, nil },
		transcode.Suppressed())
)

// String accepts Go strings only.
func String() transcode.Codec[string] { return stringCodec }

// Number accepts every Go numeric kind and json.Number and yields float64.
// Encoding NaN or an infinity fails when strict primitives are on, since no
// supported wire format can carry them portably.
func Number() transcode.Codec[float64] { return numberCodec }

// Int accepts integral numbers and yields int64.
func Int() transcode.Codec[int64] { return intCodec }

// Bool accepts Go booleans only.
func Bool() transcode.Codec[bool] { return boolCodec }

// Unknown passes any value through unchanged in both directions.
func Unknown() transcode.Codec[any] { return unknownCodec }

// Singleton accepts exactly one value.
func Singleton[T comparable](name string, value T) transcode.Codec[T] {
	return transcode.Make(name,
		func(tc *transcode.Context, v any) (T, error) {
			if t, ok := v.(T); ok && t == value {
				return t, nil
			}
			return valueMismatch[T](tc, name, v)
		},
		func(tc *transcode.Context, t T) (any, error) {
			if tc.StrictPrimitives() && t != value {
				return valueMismatch[any](tc, name, t)
			}
			return t, nil
		})
}

// Literals accepts one of a fixed set of strings.
func Literals(name string, values ...string) transcode.Codec[string] {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return transcode.Make(name,
		func(tc *transcode.Context, v any) (string, error) {
			s, ok := v.(string)
			if !ok {
				return transcode.Fail[string](tc, transcode.CodeTypeMismatch, tc.Message(i18n.MsgNotAString, name, nil), v)
			}
			if _, ok := set[s]; !ok {
				return valueMismatch[string](tc, name, v)
			}
			return s, nil
		},
		func(tc *transcode.Context, s string) (any, error) {
			if _, ok := set[s]; !ok && tc.StrictPrimitives() {
				return valueMismatch[any](tc, name, s)
			}
			return s, nil
		})
}

// Time converts between RFC 3339 strings and time.Time. Fractional seconds
// are optional on decode; encode emits UTC with trailing zeros trimmed.
func Time() transcode.Codec[time.Time] { return timeCodec }

var timeCodec = transcode.Make("time",
	func(tc *transcode.Context, v any) (time.Time, error) {
		s, ok := v.(string)
		if !ok {
			return typeMismatch[time.Time](tc, "time", v)
		}
		t, err := parseRFC3339(s)
		if err != nil {
			return transcode.Fail[time.Time](tc, transcode.CodeInvalidFormat, tc.Message(i18n.MsgInvalidFormat, "time", nil), v)
		}
		return t, nil
	},
	func(_ *transcode.Context, t time.Time) (any, error) {
		return t.UTC().Format(time.RFC3339Nano), nil
	})

func parseRFC3339(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		if t2, err2 := time.Parse(time.RFC3339, s); err2 == nil {
			return t2, nil
		}
		return time.Time{}, err
	}
	return t, nil
}
