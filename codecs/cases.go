package codecs

import (
	"errors"
	"fmt"
	"reflect"
	"slices"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/i18n"
)

// CasesBuilder assembles a tagged union. Every method returns a new builder;
// a builder value can be shared and branched. Mistakes such as shaping an
// undeclared tag are collected and reported by Close.
type CasesBuilder struct {
	name     string
	disc     string
	required []string
	base     []Property
	shapes   map[string][]Property
	errs     []error
}

// Cases starts a tagged union named name, selected by the string property
// discriminator and declaring the tags that must be shaped before Close.
func Cases(name, discriminator string, tags ...string) *CasesBuilder {
	return &CasesBuilder{
		name:     name,
		disc:     discriminator,
		required: slices.Clone(tags),
		shapes:   map[string][]Property{},
	}
}

func (b *CasesBuilder) clone() *CasesBuilder {
	out := *b
	out.required = slices.Clone(b.required)
	out.base = slices.Clone(b.base)
	out.shapes = make(map[string][]Property, len(b.shapes))
	for k, v := range b.shapes {
		out.shapes[k] = v
	}
	out.errs = slices.Clone(b.errs)
	return &out
}

// Base sets the properties shared by every case.
func (b *CasesBuilder) Base(props ...Property) *CasesBuilder {
	out := b.clone()
	out.base = slices.Clone(props)
	return out
}

// Rebase derives the shared properties from the current ones.
func (b *CasesBuilder) Rebase(fn func(base []Property) []Property) *CasesBuilder {
	out := b.clone()
	out.base = fn(slices.Clone(b.base))
	return out
}

// Similar gives several tags the same shape.
func (b *CasesBuilder) Similar(tags []string, props ...Property) *CasesBuilder {
	out := b.clone()
	for _, tag := range tags {
		switch {
		case !slices.Contains(out.required, tag):
			out.errs = append(out.errs, fmt.Errorf("cases %s: tag %q is not declared", b.name, tag))
		case out.shaped(tag):
			out.errs = append(out.errs, fmt.Errorf("cases %s: tag %q is already shaped", b.name, tag))
		default:
			shape := make([]Property, len(props))
			copy(shape, props)
			out.shapes[tag] = shape
		}
	}
	return out
}

// Single shapes one tag.
func (b *CasesBuilder) Single(tag string, props ...Property) *CasesBuilder {
	return b.Similar([]string{tag}, props...)
}

// Empty shapes tags that carry no properties besides the base ones.
func (b *CasesBuilder) Empty(tags ...string) *CasesBuilder {
	return b.Similar(tags)
}

func (b *CasesBuilder) shaped(tag string) bool {
	_, ok := b.shapes[tag]
	return ok
}

// Drop forgets the shape of tag; it still has to be shaped before Close.
func (b *CasesBuilder) Drop(tag string) *CasesBuilder {
	out := b.clone()
	delete(out.shapes, tag)
	return out
}

// Narrow removes an unshaped tag from the declared set.
func (b *CasesBuilder) Narrow(tag string) *CasesBuilder {
	out := b.clone()
	if out.shaped(tag) {
		out.errs = append(out.errs, fmt.Errorf("cases %s: cannot narrow shaped tag %q", b.name, tag))
		return out
	}
	out.required = slices.DeleteFunc(out.required, func(t string) bool { return t == tag })
	return out
}

// DropAndNarrow removes tag entirely.
func (b *CasesBuilder) DropAndNarrow(tag string) *CasesBuilder {
	return b.Drop(tag).Narrow(tag)
}

// Pick returns the object codec of one shaped tag: the base properties, the
// tag's properties and the discriminator constrained to tag. It panics when
// tag has no shape.
func (b *CasesBuilder) Pick(tag string) *ObjectCodec {
	shape, ok := b.shapes[tag]
	if !ok {
		panic(fmt.Sprintf("codecs: cases %s has no shape for tag %q", b.name, tag))
	}
	return realizeCase(b.name, b.disc, tag, b.base, shape)
}

// Close checks that every declared tag is shaped and that the discriminator
// does not collide with any property, then returns the union codec.
func (b *CasesBuilder) Close() (*CasesCodec, error) {
	errs := slices.Clone(b.errs)
	for _, tag := range b.required {
		if !b.shaped(tag) {
			errs = append(errs, fmt.Errorf("cases %s: tag %q has no shape", b.name, tag))
		}
	}
	for _, p := range b.base {
		if p.Name == b.disc {
			errs = append(errs, fmt.Errorf("cases %s: base property %q collides with the discriminator", b.name, p.Name))
		}
	}
	for _, tag := range b.required {
		for _, p := range b.shapes[tag] {
			if p.Name == b.disc {
				errs = append(errs, fmt.Errorf("cases %s: property %q of tag %q collides with the discriminator", b.name, p.Name, tag))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	c := &CasesCodec{
		name:   b.name,
		disc:   b.disc,
		tags:   slices.Clone(b.required),
		base:   slices.Clone(b.base),
		shapes: make(map[string][]Property, len(b.required)),
		cases:  make(map[string]*ObjectCodec, len(b.required)),
	}
	for _, tag := range b.required {
		c.shapes[tag] = b.shapes[tag]
		c.cases[tag] = realizeCase(b.name, b.disc, tag, b.base, b.shapes[tag])
	}
	return c, nil
}

// MustClose is like Close but panics on error.
func (b *CasesBuilder) MustClose() *CasesCodec {
	c, err := b.Close()
	if err != nil {
		panic(err)
	}
	return c
}

func realizeCase(name, disc, tag string, base, shape []Property) *ObjectCodec {
	props := make([]Property, 0, len(base)+len(shape)+1)
	props = append(props, base...)
	props = append(props, Prop(disc, Literals(tag, tag)))
	props = append(props, shape...)
	return Object(name+"#"+tag, props...)
}

// CasesCodec transcodes a closed tagged union. Decoded values are objects
// carrying the discriminator.
type CasesCodec struct {
	name   string
	disc   string
	tags   []string
	base   []Property
	shapes map[string][]Property
	cases  map[string]*ObjectCodec
}

var _ transcode.Codec[map[string]any] = (*CasesCodec)(nil)

// Name implements transcode.Codec.
func (c *CasesCodec) Name() string { return c.name }

// AcceptsMissingFields implements transcode.Codec.
func (c *CasesCodec) AcceptsMissingFields() bool { return false }

// Discriminator returns the name of the selecting property.
func (c *CasesCodec) Discriminator() string { return c.disc }

// Tags returns the tags in declaration order.
func (c *CasesCodec) Tags() []string { return slices.Clone(c.tags) }

// Pick returns the object codec of tag. It panics for unknown tags.
func (c *CasesCodec) Pick(tag string) *ObjectCodec {
	oc, ok := c.cases[tag]
	if !ok {
		panic(fmt.Sprintf("codecs: cases %s has no tag %q", c.name, tag))
	}
	return oc
}

// Open turns the union back into a builder with every tag shaped.
func (c *CasesCodec) Open() *CasesBuilder {
	b := Cases(c.name, c.disc, c.tags...)
	b.base = slices.Clone(c.base)
	for tag, shape := range c.shapes {
		b.shapes[tag] = shape
	}
	return b
}

// Decode implements transcode.Codec.
func (c *CasesCodec) Decode(tc *transcode.Context, v any) (map[string]any, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	obj, ok := transcode.AsObject(v)
	if !ok {
		return transcode.Fail[map[string]any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgObjectExpected, "cases", nil), v)
	}
	oc, err := c.selectCase(tc, transcode.Lookup(obj, c.disc), v)
	if oc == nil {
		if err != nil {
			return nil, err
		}
		return obj, nil
	}
	return oc.Decode(tc, obj)
}

// Encode implements transcode.Codec.
func (c *CasesCodec) Encode(tc *transcode.Context, v map[string]any) (any, error) {
	tc.Enter(c.name, transcode.NoSegment)
	defer tc.Leave()
	if v == nil {
		return transcode.Fail[any](tc, transcode.CodeShapeMismatch, tc.Message(i18n.MsgObjectExpected, "cases", nil), v)
	}
	oc, err := c.selectCase(tc, transcode.Lookup(v, c.disc), v)
	if oc == nil {
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return oc.Encode(tc, v)
}

// selectCase returns the case for the discriminator value d. A nil codec
// with a nil error means a best-effort pass should keep the value as is.
func (c *CasesCodec) selectCase(tc *transcode.Context, d, whole any) (*ObjectCodec, error) {
	if falsy(d) {
		_, err := transcode.Fail[any](tc, transcode.CodeMalformedDiscriminator, tc.Message(i18n.MsgDiscriminatorExpected, "cases", nil), whole)
		return nil, err
	}
	tag, ok := d.(string)
	if !ok {
		_, err := transcode.Fail[any](tc, transcode.CodeMalformedDiscriminator, tc.Message(i18n.MsgDiscriminatorNotStr, "cases", nil), whole)
		return nil, err
	}
	oc, ok := c.cases[tag]
	if !ok {
		_, err := transcode.Fail[any](tc, transcode.CodeUnmatchedDiscriminator, tc.Message(i18n.MsgNoneMatched, "cases", nil), whole)
		return nil, err
	}
	return oc, nil
}

// falsy reports values that cannot select a case at all: null, undefined,
// the empty string, false and numeric zero.
func falsy(v any) bool {
	if transcode.IsNothing(v) {
		return true
	}
	switch x := v.(type) {
	case string:
		return x == ""
	case bool:
		return !x
	}
	if f, ok := transcode.AsFloat(v); ok {
		return f == 0
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
