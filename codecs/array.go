package codecs

import (
	"strconv"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

// Array transcodes sequences whose elements all use elem.
func Array[T any](elem transcode.Codec[T]) transcode.Codec[[]T] {
	return &arrayCodec[T]{elem: elem}
}

type arrayCodec[T any] struct {
	elem transcode.Codec[T]
}

func (c *arrayCodec[T]) Name() string               { return "array" }
func (c *arrayCodec[T]) AcceptsMissingFields() bool { return false }

func (c *arrayCodec[T]) Decode(tc *transcode.Context, v any) ([]T, error) {
	tc.Enter("array", transcode.NoSegment)
	defer tc.Leave()
	arr, ok := transcode.AsArray(v)
	if !ok {
		return transcode.Fail[[]T](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgArrayExpected, "array", nil), v)
	}
	out := make([]T, len(arr))
	for i, raw := range arr {
		tc.Enter(indexLabel("array", i), transcode.Index(i))
		val, err := c.elem.Decode(tc, raw)
		tc.Leave()
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

func (c *arrayCodec[T]) Encode(tc *transcode.Context, v []T) (any, error) {
	tc.Enter("array", transcode.NoSegment)
	defer tc.Leave()
	out := make([]any, len(v))
	for i, val := range v {
		tc.Enter(indexLabel("array", i), transcode.Index(i))
		enc, err := c.elem.Encode(tc, val)
		tc.Leave()
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	return out, nil
}

func indexLabel(name string, i int) string { return name + "[" + strconv.Itoa(i) + "]" }

// TupleCodec transcodes fixed-arity sequences with one codec per slot.
// Trailing slots whose codecs accept missing fields may be absent.
type TupleCodec struct {
	elems []transcode.AnyCodec
	min   int
}

var _ transcode.Codec[[]any] = (*TupleCodec)(nil)

// Tuple declares a tuple. Build slots with Slot.
func Tuple(elems ...transcode.AnyCodec) *TupleCodec {
	min := 0
	for i, e := range elems {
		if !e.AcceptsMissingFields() {
			min = i + 1
		}
	}
	return &TupleCodec{elems: append([]transcode.AnyCodec(nil), elems...), min: min}
}

// Slot erases c for use in Tuple.
func Slot[T any](c transcode.Codec[T]) transcode.AnyCodec { return transcode.Erase(c) }

// Name implements transcode.Codec.
func (c *TupleCodec) Name() string { return "tuple" }

// AcceptsMissingFields implements transcode.Codec.
func (c *TupleCodec) AcceptsMissingFields() bool { return false }

// Arity returns the accepted length range.
func (c *TupleCodec) Arity() (min, max int) { return c.min, len(c.elems) }

// Decode implements transcode.Codec. The result always has one entry per
// slot; slots beyond the input decode Undefined.
func (c *TupleCodec) Decode(tc *transcode.Context, v any) ([]any, error) {
	tc.Enter("tuple", transcode.NoSegment)
	defer tc.Leave()
	arr, ok := transcode.AsArray(v)
	if !ok {
		return transcode.Fail[[]any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgArrayExpected, "tuple", nil), v)
	}
	if len(arr) < c.min || len(arr) > len(c.elems) {
		return transcode.Fail[[]any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgWrongElementCount, "tuple", nil), v)
	}
	out := make([]any, len(c.elems))
	for i, e := range c.elems {
		raw := transcode.Undefined
		if i < len(arr) {
			raw = arr[i]
		}
		tc.Enter(indexLabel("tuple", i), transcode.Index(i))
		val, err := e.DecodeAny(tc, raw)
		tc.Leave()
		if err != nil {
			return nil, err
		}
		out[i] = val
	}
	return out, nil
}

// Encode implements transcode.Codec. Slots past the end of v are left out
// and trailing undefined slots are trimmed.
func (c *TupleCodec) Encode(tc *transcode.Context, v []any) (any, error) {
	tc.Enter("tuple", transcode.NoSegment)
	defer tc.Leave()
	if len(v) < c.min || len(v) > len(c.elems) {
		return transcode.Fail[any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgWrongElementCount, "tuple", nil), v)
	}
	out := make([]any, len(c.elems))
	for i, e := range c.elems {
		if i >= len(v) {
			out[i] = transcode.Undefined
			continue
		}
		tc.Enter(indexLabel("tuple", i), transcode.Index(i))
		enc, err := e.EncodeAny(tc, v[i])
		tc.Leave()
		if err != nil {
			return nil, err
		}
		out[i] = enc
	}
	n := len(out)
	for n > c.min && transcode.IsUndefined(out[n-1]) {
		n--
	}
	return out[:n], nil
}

// Pair is a decoded two-slot tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is a decoded three-slot tuple.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Tuple2 is a typed two-slot tuple.
func Tuple2[A, B any](a transcode.Codec[A], b transcode.Codec[B]) transcode.Codec[Pair[A, B]] {
	return transcode.Map[[]any, Pair[A, B]](Tuple(Slot(a), Slot(b)),
		func(_ *transcode.Context, v []any) (Pair[A, B], error) {
			var p Pair[A, B]
			p.First, _ = slotValue[A](v, 0)
			p.Second, _ = slotValue[B](v, 1)
			return p, nil
		},
		func(p Pair[A, B]) []any { return []any{p.First, p.Second} },
		"tuple")
}

// Tuple3 is a typed three-slot tuple.
func Tuple3[A, B, C any](a transcode.Codec[A], b transcode.Codec[B], c transcode.Codec[C]) transcode.Codec[Triple[A, B, C]] {
	return transcode.Map[[]any, Triple[A, B, C]](Tuple(Slot(a), Slot(b), Slot(c)),
		func(_ *transcode.Context, v []any) (Triple[A, B, C], error) {
			var t Triple[A, B, C]
			t.First, _ = slotValue[A](v, 0)
			t.Second, _ = slotValue[B](v, 1)
			t.Third, _ = slotValue[C](v, 2)
			return t, nil
		},
		func(t Triple[A, B, C]) []any { return []any{t.First, t.Second, t.Third} },
		"tuple")
}

// slotValue reads slot i; best-effort passes may leave values of another
// type behind, which read as the zero value.
func slotValue[T any](v []any, i int) (T, bool) {
	var zero T
	if i >= len(v) {
		return zero, false
	}
	t, ok := v[i].(T)
	if !ok {
		return zero, false
	}
	return t, true
}
