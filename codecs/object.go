package codecs

import (
	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

// Property is one declared member of an object shape.
type Property struct {
	Name  string
	Codec transcode.AnyCodec
}

// Prop declares a property named name transcoded by c.
func Prop[T any](name string, c transcode.Codec[T]) Property {
	return Property{Name: name, Codec: transcode.Erase(c)}
}

// ObjectCodec transcodes fixed-shape objects. Decoded objects hold the
// typed values produced by the property codecs; encoding expects the same.
type ObjectCodec struct {
	name    string
	props   []Property
	index   map[string]int
	partial bool
}

var _ transcode.Codec[map[string]any] = (*ObjectCodec)(nil)

// Object declares an object shape. A later property with the name of an
// earlier one replaces it in place.
func Object(name string, props ...Property) *ObjectCodec {
	c := &ObjectCodec{name: name, index: make(map[string]int, len(props))}
	c.add(props)
	return c
}

// Inline declares an anonymous object shape labelled "object".
func Inline(props ...Property) *ObjectCodec { return Object("object", props...) }

func (c *ObjectCodec) add(props []Property) {
	for _, p := range props {
		if i, ok := c.index[p.Name]; ok {
			c.props[i] = p
			continue
		}
		c.index[p.Name] = len(c.props)
		c.props = append(c.props, p)
	}
}

func (c *ObjectCodec) clone(name string) *ObjectCodec {
	out := &ObjectCodec{name: name, partial: c.partial, index: make(map[string]int, len(c.props))}
	out.add(c.props)
	return out
}

// Name implements transcode.Codec.
func (c *ObjectCodec) Name() string { return c.name }

// AcceptsMissingFields implements transcode.Codec.
func (c *ObjectCodec) AcceptsMissingFields() bool { return false }

// Properties returns the declared properties in declaration order.
func (c *ObjectCodec) Properties() []Property { return append([]Property(nil), c.props...) }

// Property looks up a declared property.
func (c *ObjectCodec) Property(name string) (Property, bool) {
	i, ok := c.index[name]
	if !ok {
		return Property{}, false
	}
	return c.props[i], true
}

// Extend returns a copy with props added or replaced.
func (c *ObjectCodec) Extend(props ...Property) *ObjectCodec {
	out := c.clone(c.name)
	out.add(props)
	return out
}

// Named returns a copy labelled name.
func (c *ObjectCodec) Named(name string) *ObjectCodec { return c.clone(name) }

// Partial returns a copy in which every property may be absent. Undefined
// property values are omitted on encode.
func (c *ObjectCodec) Partial() *ObjectCodec {
	out := c.clone(c.name)
	out.partial = true
	return out
}

func (c *ObjectCodec) accepting(p Property) bool {
	return c.partial || p.Codec.AcceptsMissingFields()
}

// Decode implements transcode.Codec.
func (c *ObjectCodec) Decode(tc *transcode.Context, v any) (map[string]any, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	obj, ok := transcode.AsObject(v)
	if !ok {
		return transcode.Fail[map[string]any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgObjectExpected, c.name, nil), v)
	}
	out := make(map[string]any, len(c.props))
	if tc.ReportsUnknown() {
		for _, k := range transcode.SortedKeys(obj) {
			i, ok := c.index[k]
			if !ok {
				c.warnUnknown(tc, k, obj[k])
				continue
			}
			if err := c.decodeProp(tc, out, c.props[i], obj[k]); err != nil {
				return nil, err
			}
		}
		for _, p := range c.props {
			if _, seen := obj[p.Name]; seen {
				continue
			}
			if err := c.decodeAbsent(tc, out, p); err != nil {
				return nil, err
			}
		}
		return out, nil
	}
	for _, p := range c.props {
		raw, seen := obj[p.Name]
		if !seen {
			if err := c.decodeAbsent(tc, out, p); err != nil {
				return nil, err
			}
			continue
		}
		if err := c.decodeProp(tc, out, p, raw); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *ObjectCodec) warnUnknown(tc *transcode.Context, k string, v any) {
	tc.Enter(c.name+"."+k, transcode.Key(k))
	tc.Warn(i18n.T(i18n.MsgUnknownProperty, map[string]string{"key": k}), v)
	tc.Leave()
}

func (c *ObjectCodec) decodeProp(tc *transcode.Context, out map[string]any, p Property, raw any) error {
	tc.Enter(c.name+"."+p.Name, transcode.Key(p.Name))
	defer tc.Leave()
	val, err := p.Codec.DecodeAny(tc, raw)
	if err != nil {
		return err
	}
	if !transcode.IsUndefined(val) {
		out[p.Name] = val
	}
	return nil
}

// decodeAbsent handles a declared property missing from the input. Codecs
// that accept missing fields still run against Undefined so defaults apply.
func (c *ObjectCodec) decodeAbsent(tc *transcode.Context, out map[string]any, p Property) error {
	if p.Codec.AcceptsMissingFields() {
		return c.decodeProp(tc, out, p, transcode.Undefined)
	}
	if c.partial {
		return nil
	}
	tc.Enter(c.name+"."+p.Name, transcode.Key(p.Name))
	defer tc.Leave()
	_, err := transcode.Fail[any](tc, transcode.CodeMissingProperty, missingProperty(p.Name), transcode.Undefined)
	return err
}

func missingProperty(name string) string {
	return i18n.T(i18n.MsgMissingProperty, map[string]string{"key": name})
}

// Encode implements transcode.Codec. Only declared properties are emitted.
func (c *ObjectCodec) Encode(tc *transcode.Context, v map[string]any) (any, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	if v == nil {
		return transcode.Fail[any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgObjectExpected, c.name, nil), v)
	}
	if tc.ReportsUnknown() {
		for _, k := range transcode.SortedKeys(v) {
			if _, ok := c.index[k]; !ok {
				c.warnUnknown(tc, k, v[k])
			}
		}
	}
	out := make(map[string]any, len(c.props))
	for _, p := range c.props {
		val, ok := v[p.Name]
		if !ok {
			val = transcode.Undefined
		}
		if err := c.encodeProp(tc, out, p, val); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *ObjectCodec) encodeProp(tc *transcode.Context, out map[string]any, p Property, val any) error {
	tc.Enter(c.name+"."+p.Name, transcode.Key(p.Name))
	defer tc.Leave()
	if transcode.IsUndefined(val) {
		if c.accepting(p) {
			return nil
		}
		_, err := transcode.Fail[any](tc, transcode.CodeMissingProperty, missingProperty(p.Name), val)
		return err
	}
	enc, err := p.Codec.EncodeAny(tc, val)
	if err != nil {
		return err
	}
	if transcode.IsUndefined(enc) && c.accepting(p) {
		return nil
	}
	out[p.Name] = enc
	return nil
}
