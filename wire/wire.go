// Package wire connects codecs to byte-level formats. A Format parses bytes
// into plain data (map[string]any, []any, scalars) and serialises plain data
// back; Decode and Encode run a codec on either side of it.
//
// Format packages register themselves on import:
//
//	import _ "github.com/reoring/transcode/wire/yaml"
//
//	f, _ := wire.Lookup("yaml")
//	v, err := wire.Decode(f, person, data)
package wire

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/reoring/transcode"
)

// Format converts between bytes and plain data. Implementations must be
// safe for concurrent use.
type Format interface {
	Name() string
	Unmarshal(data []byte) (any, error)
	Marshal(v any) ([]byte, error)
}

// ErrUnknownFormat is returned by Lookup for unregistered names.
var ErrUnknownFormat = errors.New("wire: unknown format")

var (
	registryMu sync.RWMutex
	registry   = map[string]Format{}
)

// Register makes f available to Lookup under f.Name(); nil values are
// ignored and a later registration replaces an earlier one.
func Register(f Format) {
	if f == nil {
		return
	}
	registryMu.Lock()
	registry[f.Name()] = f
	registryMu.Unlock()
}

// Lookup returns the registered format called name.
func Lookup(name string) (Format, error) {
	registryMu.RLock()
	f, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Names lists the registered formats.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Decode parses data with f and decodes the result strictly with c.
// Syntax errors are wrapped with the format name; codec failures are
// returned as *transcode.Error.
func Decode[T any](f Format, c transcode.Codec[T], data []byte, opts ...transcode.Option) (T, error) {
	var zero T
	raw, err := f.Unmarshal(data)
	if err != nil {
		return zero, fmt.Errorf("wire: %s: %w", f.Name(), err)
	}
	return transcode.DecodeStrict(c, Normalize(raw), opts...)
}

// DecodeLax is Decode in best-effort mode. Only syntax errors are reported.
func DecodeLax[T any](f Format, c transcode.Codec[T], data []byte, opts ...transcode.Option) (T, error) {
	var zero T
	raw, err := f.Unmarshal(data)
	if err != nil {
		return zero, fmt.Errorf("wire: %s: %w", f.Name(), err)
	}
	return transcode.DecodeLax(c, Normalize(raw), opts...), nil
}

// Encode encodes v with c and serialises the plain result with f.
func Encode[T any](f Format, c transcode.Codec[T], v T, opts ...transcode.Option) ([]byte, error) {
	plain, err := transcode.Encode(c, v, opts...)
	if err != nil {
		return nil, err
	}
	out, err := f.Marshal(Prune(plain))
	if err != nil {
		return nil, fmt.Errorf("wire: %s: %w", f.Name(), err)
	}
	return out, nil
}

// Normalize rewrites maps with non-string keys, as produced by YAML, CBOR
// and MessagePack decoders, into map[string]any. Keys are rendered with
// fmt.Sprint.
func Normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, vv := range t {
			t[k] = Normalize(vv)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = Normalize(vv)
		}
		return out
	case []any:
		for i := range t {
			t[i] = Normalize(t[i])
		}
		return t
	}
	return v
}

// Prune removes Undefined from encoded plain data: object entries are
// dropped and array slots become null. No format can carry Undefined.
func Prune(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			if transcode.IsUndefined(vv) {
				continue
			}
			out[k] = Prune(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			if transcode.IsUndefined(vv) {
				continue
			}
			out[i] = Prune(vv)
		}
		return out
	}
	if transcode.IsUndefined(v) {
		return nil
	}
	return v
}
