package codecs

import (
	"sync"

	"github.com/reoring/transcode"
)

// Knot is a placeholder for an object codec that refers to itself. Create
// it with NewKnot, embed it in the shape, then call Bind exactly once.
type Knot struct {
	name  string
	shape func(self transcode.Codec[map[string]any]) []Property

	mu    sync.Mutex
	bound bool
	once  sync.Once
	inst  *ObjectCodec
}

var _ transcode.Codec[map[string]any] = (*Knot)(nil)

// NewKnot allocates an unbound knot named name.
func NewKnot(name string) *Knot { return &Knot{name: name} }

// Bind supplies the shape. The function receives the knot itself and runs
// lazily on first use. Binding twice panics.
func (k *Knot) Bind(shape func(self transcode.Codec[map[string]any]) []Property) *Knot {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.bound {
		panic("codecs: recursive codec " + k.name + " bound twice")
	}
	k.shape = shape
	k.bound = true
	return k
}

// Recursive allocates and binds a knot in one step.
func Recursive(name string, shape func(self transcode.Codec[map[string]any]) []Property) *Knot {
	return NewKnot(name).Bind(shape)
}

// Instance returns the object codec behind the knot, building it on first
// use. It panics with transcode.ErrUnboundRecursive before Bind.
func (k *Knot) Instance() *ObjectCodec {
	k.mu.Lock()
	bound := k.bound
	k.mu.Unlock()
	if !bound {
		panic(transcode.ErrUnboundRecursive)
	}
	k.once.Do(func() { k.inst = Object(k.name, k.shape(k)...) })
	return k.inst
}

// Name implements transcode.Codec.
func (k *Knot) Name() string { return k.name }

// AcceptsMissingFields implements transcode.Codec.
func (k *Knot) AcceptsMissingFields() bool { return false }

// Decode implements transcode.Codec.
func (k *Knot) Decode(tc *transcode.Context, v any) (map[string]any, error) {
	return k.Instance().Decode(tc, v)
}

// Encode implements transcode.Codec.
func (k *Knot) Encode(tc *transcode.Context, v map[string]any) (any, error) {
	return k.Instance().Encode(tc, v)
}
