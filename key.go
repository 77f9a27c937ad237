package transcode

// KeyCodec transcodes the string keys of a record or map. Encoding a key
// must not fail: the key was produced by a successful decode or by the
// caller's own typed data.
type KeyCodec[K any] interface {
	Name() string
	DecodeKey(tc *Context, k string) (K, error)
	EncodeKey(k K) string
}

// MakeKey builds a key codec from a pair of functions.
func MakeKey[K any](name string, decode func(tc *Context, k string) (K, error), encode func(k K) string) KeyCodec[K] {
	return funcKey[K]{name: name, decode: decode, encode: encode}
}

type funcKey[K any] struct {
	name   string
	decode func(tc *Context, k string) (K, error)
	encode func(k K) string
}

func (f funcKey[K]) Name() string                               { return f.name }
func (f funcKey[K]) DecodeKey(tc *Context, k string) (K, error) { return f.decode(tc, k) }
func (f funcKey[K]) EncodeKey(k K) string                       { return f.encode(k) }

// StringKey keeps keys as they are.
func StringKey() KeyCodec[string] {
	return MakeKey("string",
		func(_ *Context, k string) (string, error) { return k, nil },
		func(k string) string { return k })
}

// MapKey projects a key codec onto another key type.
func MapKey[K, L any](kc KeyCodec[K], decode func(tc *Context, k K) (L, error), encode func(l L) K, rename string) KeyCodec[L] {
	name := rename
	if name == "" {
		name = kc.Name()
	}
	return MakeKey(name,
		func(tc *Context, raw string) (L, error) {
			k, err := kc.DecodeKey(tc, raw)
			if err != nil {
				var zero L
				return zero, err
			}
			return decode(tc, k)
		},
		func(l L) string { return kc.EncodeKey(encode(l)) })
}
