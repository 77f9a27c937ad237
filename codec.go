package transcode

import (
	"reflect"

	"github.com/reoring/transcode/i18n"
)

// Codec decodes unknown plain data into T and encodes T back into plain
// data. Codecs are immutable once built and may be shared by any number of
// schemas and concurrent passes; all per-pass state lives in the Context.
type Codec[T any] interface {
	// Name labels the codec in scope trails and messages.
	Name() string
	// AcceptsMissingFields reports whether an object property using this
	// codec may be absent from the input.
	AcceptsMissingFields() bool
	Decode(tc *Context, v any) (T, error)
	Encode(tc *Context, v T) (any, error)
}

// DecodeFunc and EncodeFunc are the bodies of a codec built with Make.
type (
	DecodeFunc[T any] func(tc *Context, v any) (T, error)
	EncodeFunc[T any] func(tc *Context, v T) (any, error)
)

// MakeOption tunes a codec built with Make.
type MakeOption func(*makeOpts)

type makeOpts struct {
	suppress bool
	missing  bool
}

// Suppressed marks a high-frequency leaf whose own frame adds no
// diagnostic value; its body runs without entering a frame.
func Suppressed() MakeOption { return func(o *makeOpts) { o.suppress = true } }

// AcceptingMissing marks the codec as accepting absent object properties.
func AcceptingMissing() MakeOption { return func(o *makeOpts) { o.missing = true } }

// Make builds a codec from a pair of functions. Unless suppressed, each call
// runs inside a frame labelled with name.
func Make[T any](name string, decode DecodeFunc[T], encode EncodeFunc[T], opts ...MakeOption) Codec[T] {
	var o makeOpts
	for _, fn := range opts {
		fn(&o)
	}
	return &lambdaCodec[T]{name: name, decode: decode, encode: encode, suppress: o.suppress, missing: o.missing}
}

type lambdaCodec[T any] struct {
	name     string
	decode   DecodeFunc[T]
	encode   EncodeFunc[T]
	suppress bool
	missing  bool
}

func (c *lambdaCodec[T]) Name() string               { return c.name }
func (c *lambdaCodec[T]) AcceptsMissingFields() bool { return c.missing }

func (c *lambdaCodec[T]) Decode(tc *Context, v any) (T, error) {
	if c.suppress || !tc.tracing {
		return c.decode(tc, v)
	}
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	return c.decode(tc, v)
}

func (c *lambdaCodec[T]) Encode(tc *Context, v T) (any, error) {
	if c.suppress || !tc.tracing {
		return c.encode(tc, v)
	}
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	return c.encode(tc, v)
}

// AnyCodec is a Codec with its value type erased. Heterogeneous shapes
// (object properties, tuple slots) hold their members as AnyCodec.
type AnyCodec interface {
	Name() string
	AcceptsMissingFields() bool
	DecodeAny(tc *Context, v any) (any, error)
	EncodeAny(tc *Context, v any) (any, error)
}

// Erase adapts c to AnyCodec.
func Erase[T any](c Codec[T]) AnyCodec {
	if ac, ok := any(c).(AnyCodec); ok {
		return ac
	}
	return erased[T]{c: c, nillable: nillable[T]()}
}

// Unerase adapts an AnyCodec back into a Codec[any].
func Unerase(ac AnyCodec) Codec[any] {
	if e, ok := ac.(erased[any]); ok {
		return e.c
	}
	return unerased{ac: ac}
}

type erased[T any] struct {
	c        Codec[T]
	nillable bool
}

func (e erased[T]) Name() string               { return e.c.Name() }
func (e erased[T]) AcceptsMissingFields() bool { return e.c.AcceptsMissingFields() }

func (e erased[T]) DecodeAny(tc *Context, v any) (any, error) {
	out, err := e.c.Decode(tc, v)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// EncodeAny asserts v to T. Values of another Go type fail when strict
// primitives are on and pass through unchanged otherwise.
func (e erased[T]) EncodeAny(tc *Context, v any) (any, error) {
	t, ok := v.(T)
	if !ok && v == nil && e.nillable {
		ok = true
	}
	if !ok {
		if !tc.StrictPrimitives() {
			return v, nil
		}
		msg := tc.Message(i18n.MsgTypeMismatch, e.c.Name(), nil)
		if _, err := Fail[any](tc, CodeTypeMismatch, msg, v); err != nil {
			return nil, err
		}
		return v, nil
	}
	return e.c.Encode(tc, t)
}

type unerased struct{ ac AnyCodec }

func (u unerased) Name() string                           { return u.ac.Name() }
func (u unerased) AcceptsMissingFields() bool             { return u.ac.AcceptsMissingFields() }
func (u unerased) Decode(tc *Context, v any) (any, error) { return u.ac.DecodeAny(tc, v) }
func (u unerased) Encode(tc *Context, v any) (any, error) { return u.ac.EncodeAny(tc, v) }

func nillable[T any]() bool {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	switch rt.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}
