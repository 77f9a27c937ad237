package codecs

import (
	"iter"
	"slices"
	"strings"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

// Entry is one key/value pair of Entries.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Entries is a map that remembers insertion order.
type Entries[K comparable, V any] struct {
	items []Entry[K, V]
	index map[K]int
}

// NewEntries returns an empty map with room for n entries.
func NewEntries[K comparable, V any](n int) *Entries[K, V] {
	return &Entries[K, V]{items: make([]Entry[K, V], 0, n), index: make(map[K]int, n)}
}

// Set inserts or replaces k. Replacing keeps the original position.
func (e *Entries[K, V]) Set(k K, v V) {
	if e.index == nil {
		e.index = map[K]int{}
	}
	if i, ok := e.index[k]; ok {
		e.items[i].Value = v
		return
	}
	e.index[k] = len(e.items)
	e.items = append(e.items, Entry[K, V]{Key: k, Value: v})
}

// Get looks up k.
func (e *Entries[K, V]) Get(k K) (V, bool) {
	if i, ok := e.index[k]; ok {
		return e.items[i].Value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of entries.
func (e *Entries[K, V]) Len() int {
	if e == nil {
		return 0
	}
	return len(e.items)
}

// All iterates entries in insertion order.
func (e *Entries[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if e == nil {
			return
		}
		for _, it := range e.items {
			if !yield(it.Key, it.Value) {
				return
			}
		}
	}
}

// container abstracts the target shape of a keyed collection so that maps
// and Entries share one traversal. Unordered containers are encoded in
// encoded-key order.
type container[K comparable, V, C any] struct {
	alloc     func(n int) C
	put       func(c C, k K, v V)
	all       func(c C) iter.Seq2[K, V]
	unordered bool
}

func plainMap[K comparable, V any]() container[K, V, map[K]V] {
	return container[K, V, map[K]V]{
		alloc: func(n int) map[K]V { return make(map[K]V, n) },
		put:   func(c map[K]V, k K, v V) { c[k] = v },
		all: func(c map[K]V) iter.Seq2[K, V] {
			return func(yield func(K, V) bool) {
				for k, v := range c {
					if !yield(k, v) {
						return
					}
				}
			}
		},
		unordered: true,
	}
}

func orderedMap[K comparable, V any]() container[K, V, *Entries[K, V]] {
	return container[K, V, *Entries[K, V]]{
		alloc: NewEntries[K, V],
		put:   func(c *Entries[K, V], k K, v V) { c.Set(k, v) },
		all:   func(c *Entries[K, V]) iter.Seq2[K, V] { return c.All() },
	}
}

type keyedCodec[K comparable, V, C any] struct {
	name    string
	val     transcode.Codec[V]
	key     transcode.KeyCodec[K]
	shape   container[K, V, C]
	partial bool
}

func newKeyed[K comparable, V, C any](val transcode.Codec[V], key transcode.KeyCodec[K], shape container[K, V, C], partial bool) *keyedCodec[K, V, C] {
	return &keyedCodec[K, V, C]{
		name:    "record<" + key.Name() + ", " + val.Name() + ">",
		val:     val,
		key:     key,
		shape:   shape,
		partial: partial,
	}
}

func (c *keyedCodec[K, V, C]) Name() string               { return c.name }
func (c *keyedCodec[K, V, C]) AcceptsMissingFields() bool { return false }

// Decode visits raw entries in key order so that results and failures are
// deterministic.
func (c *keyedCodec[K, V, C]) Decode(tc *transcode.Context, v any) (C, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	obj, ok := transcode.AsObject(v)
	if !ok {
		return transcode.Fail[C](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgObjectExpected, "object", nil), v)
	}
	out := c.shape.alloc(len(obj))
	for _, raw := range transcode.SortedKeys(obj) {
		rv := obj[raw]
		if c.partial && transcode.IsUndefined(rv) {
			continue
		}
		if err := c.decodeEntry(tc, out, raw, rv); err != nil {
			var zero C
			return zero, err
		}
	}
	return out, nil
}

func (c *keyedCodec[K, V, C]) decodeEntry(tc *transcode.Context, out C, raw string, rv any) error {
	tc.Enter(c.name+"."+raw, transcode.Key(raw))
	defer tc.Leave()
	k, err := c.key.DecodeKey(tc, raw)
	if err != nil {
		return err
	}
	val, err := c.val.Decode(tc, rv)
	if err != nil {
		return err
	}
	c.shape.put(out, k, val)
	return nil
}

type encodedEntry[V any] struct {
	key string
	val V
}

// Encode labels each frame with the encoded key; the raw key is not known
// on this side.
func (c *keyedCodec[K, V, C]) Encode(tc *transcode.Context, v C) (any, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	var entries []encodedEntry[V]
	for k, val := range c.shape.all(v) {
		entries = append(entries, encodedEntry[V]{key: c.key.EncodeKey(k), val: val})
	}
	if c.shape.unordered {
		slices.SortFunc(entries, func(a, b encodedEntry[V]) int { return strings.Compare(a.key, b.key) })
	}
	out := make(map[string]any, len(entries))
	for _, e := range entries {
		tc.Enter(c.name+"."+e.key, transcode.Key(e.key))
		enc, err := c.val.Encode(tc, e.val)
		tc.Leave()
		if err != nil {
			return nil, err
		}
		if c.partial && transcode.IsUndefined(enc) {
			continue
		}
		out[e.key] = enc
	}
	return out, nil
}

// Record transcodes objects with arbitrary keys into Go maps. Keys go
// through key.
func Record[K comparable, V any](val transcode.Codec[V], key transcode.KeyCodec[K]) transcode.Codec[map[K]V] {
	return newKeyed(val, key, plainMap[K, V](), false)
}

// Dict is Record with keys kept as they are.
func Dict[V any](val transcode.Codec[V]) transcode.Codec[map[string]V] {
	return Record(val, transcode.StringKey())
}

// PartialRecord is Record that skips undefined entries in both directions.
func PartialRecord[K comparable, V any](val transcode.Codec[V], key transcode.KeyCodec[K]) transcode.Codec[map[K]V] {
	return newKeyed(val, key, plainMap[K, V](), true)
}

// MapOf is Record with an insertion-ordered result. Decoding inserts entries
// in ascending raw key order.
func MapOf[K comparable, V any](val transcode.Codec[V], key transcode.KeyCodec[K]) transcode.Codec[*Entries[K, V]] {
	return newKeyed(val, key, orderedMap[K, V](), false)
}
