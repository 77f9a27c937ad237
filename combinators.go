package transcode

// Optional accepts null and undefined, yielding a nil pointer without
// consulting c. Encoding a nil pointer yields Undefined. Object properties
// using it may be absent.
func Optional[T any](c Codec[T]) Codec[*T] {
	return &optionalCodec[T]{name: c.Name() + " | nothing", base: c}
}

type optionalCodec[T any] struct {
	name string
	base Codec[T]
}

func (c *optionalCodec[T]) Name() string               { return c.name }
func (c *optionalCodec[T]) AcceptsMissingFields() bool { return true }

func (c *optionalCodec[T]) Decode(tc *Context, v any) (*T, error) {
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	if IsNothing(v) {
		return nil, nil
	}
	out, err := c.base.Decode(tc, v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *optionalCodec[T]) Encode(tc *Context, v *T) (any, error) {
	if v == nil {
		return Undefined, nil
	}
	return c.base.Encode(tc, *v)
}

// OrNull accepts null in addition to the values of c and keeps it as a
// Null Maybe on both directions.
func OrNull[T any](c Codec[T]) Codec[Maybe[T]] {
	return &optValuesCodec[T]{name: c.Name() + " | null", base: c, null: true}
}

// OrUndefined accepts undefined in addition to the values of c and keeps it
// as an Absent Maybe on both directions. Object properties using it may be
// absent.
func OrUndefined[T any](c Codec[T]) Codec[Maybe[T]] {
	return &optValuesCodec[T]{name: c.Name() + " | undefined", base: c, undef: true}
}

// OrNullOrUndefined combines OrNull and OrUndefined.
func OrNullOrUndefined[T any](c Codec[T]) Codec[Maybe[T]] {
	return &optValuesCodec[T]{name: c.Name() + " | undefined | null", base: c, null: true, undef: true}
}

type optValuesCodec[T any] struct {
	name  string
	base  Codec[T]
	null  bool
	undef bool
}

func (c *optValuesCodec[T]) Name() string               { return c.name }
func (c *optValuesCodec[T]) AcceptsMissingFields() bool { return c.undef }

func (c *optValuesCodec[T]) Decode(tc *Context, v any) (Maybe[T], error) {
	if c.null && v == nil {
		return Maybe[T]{Kind: Null}, nil
	}
	if c.undef && IsUndefined(v) {
		return Maybe[T]{Kind: Absent}, nil
	}
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	out, err := c.base.Decode(tc, v)
	if err != nil {
		return Maybe[T]{}, err
	}
	return Maybe[T]{Value: out}, nil
}

func (c *optValuesCodec[T]) Encode(tc *Context, v Maybe[T]) (any, error) {
	switch {
	case v.Kind == Null && c.null:
		return nil, nil
	case v.Kind == Absent && c.undef:
		return Undefined, nil
	case v.Kind == Null:
		// Not representable by this codec; hand the sentinel to the base.
		return c.encodeRaw(tc, nil)
	case v.Kind == Absent:
		return c.encodeRaw(tc, Undefined)
	}
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	return c.base.Encode(tc, v.Value)
}

func (c *optValuesCodec[T]) encodeRaw(tc *Context, raw any) (any, error) {
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	return Erase(c.base).EncodeAny(tc, raw)
}

// DefaultPredicate decides whether a raw input selects the default value.
type DefaultPredicate func(v any) bool

// IsNothingDefault is the default predicate: null or undefined.
func IsNothingDefault(v any) bool { return IsNothing(v) }

// OrElse substitutes def for inputs matching isDefault (null or undefined
// when isDefault is nil) without consulting c. Encoding always delegates to
// c. Object properties using it may be absent.
func OrElse[T any](c Codec[T], def T, isDefault DefaultPredicate) Codec[T] {
	return OrElseLazy(c, func() T { return def }, isDefault)
}

// OrElseLazy is OrElse with a default computed on demand.
func OrElseLazy[T any](c Codec[T], def func() T, isDefault DefaultPredicate) Codec[T] {
	if isDefault == nil {
		isDefault = IsNothingDefault
	}
	return &orElseCodec[T]{name: c.Name() + " or default", base: c, lazy: def, isDefault: isDefault}
}

type orElseCodec[T any] struct {
	name      string
	base      Codec[T]
	lazy      func() T
	isDefault DefaultPredicate
}

func (c *orElseCodec[T]) Name() string               { return c.name }
func (c *orElseCodec[T]) AcceptsMissingFields() bool { return true }

func (c *orElseCodec[T]) Decode(tc *Context, v any) (T, error) {
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	if c.isDefault(v) {
		return c.lazy(), nil
	}
	return c.base.Decode(tc, v)
}

func (c *orElseCodec[T]) Encode(tc *Context, v T) (any, error) { return c.base.Encode(tc, v) }

// Map projects c onto U: decoded values go through decode, values to encode
// through encode first. rename relabels the projection; an empty rename
// keeps the name of c. Callers are expected to name every projection and
// pass "" deliberately.
func Map[T, U any](c Codec[T], decode func(tc *Context, v T) (U, error), encode func(v U) T, rename string) Codec[U] {
	name := rename
	if name == "" {
		name = c.Name()
	}
	return &projectionCodec[T, U]{name: name, base: c, decode: decode, encode: encode}
}

// Refine narrows c: decoded values go through decode, encoding is the
// identity since the narrowed value already has the wire representation.
func Refine[T any](c Codec[T], decode func(tc *Context, v T) (T, error), rename string) Codec[T] {
	return Map(c, decode, func(v T) T { return v }, rename)
}

type projectionCodec[T, U any] struct {
	name   string
	base   Codec[T]
	decode func(tc *Context, v T) (U, error)
	encode func(v U) T
}

func (c *projectionCodec[T, U]) Name() string               { return c.name }
func (c *projectionCodec[T, U]) AcceptsMissingFields() bool { return false }

func (c *projectionCodec[T, U]) Decode(tc *Context, v any) (U, error) {
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	t, err := c.base.Decode(tc, v)
	if err != nil {
		var zero U
		return zero, err
	}
	return c.decode(tc, t)
}

func (c *projectionCodec[T, U]) Encode(tc *Context, v U) (any, error) {
	tc.Enter(c.name, NoSegment)
	defer tc.Leave()
	return c.base.Encode(tc, c.encode(v))
}
