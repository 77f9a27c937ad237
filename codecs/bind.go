package codecs

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/transcode"
)

// StructKey resolves the external key of a struct field.
// Priority: transcode:"name" > json tag name > field name; "-" disables the field.
func StructKey(sf reflect.StructField) string {
	if tt := sf.Tag.Get("transcode"); tt != "" {
		if i := strings.IndexByte(tt, ','); i >= 0 {
			tt = tt[:i]
		}
		if tt != "" {
			return tt
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 {
			jt = jt[:i]
		}
		if jt != "" {
			return jt
		}
	}
	return sf.Name
}

// Bind adapts obj to struct type T. Each declared property is matched to the
// exported field whose key (see StructKey) equals its name; decoded values
// are assigned or converted to the field type. Encoding hands field values
// to the property codecs as they are, so field types should match the codec
// value types. Bind panics when T is not a
// struct or a declared property has no matching field.
func Bind[T any](obj *ObjectCodec) transcode.Codec[T] {
	rt := reflect.TypeOf((*T)(nil)).Elem()
	if rt.Kind() != reflect.Struct {
		panic(fmt.Sprintf("codecs: Bind requires a struct type, got %s", rt))
	}
	byKey := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if k := StructKey(sf); k != "-" {
			byKey[k] = i
		}
	}
	fields := make(map[string]int, len(obj.props))
	for _, p := range obj.props {
		i, ok := byKey[p.Name]
		if !ok {
			panic(fmt.Sprintf("codecs: %s has no field for property %q", rt, p.Name))
		}
		fields[p.Name] = i
	}
	return &boundCodec[T]{obj: obj, t: rt, fields: fields}
}

type boundCodec[T any] struct {
	obj    *ObjectCodec
	t      reflect.Type
	fields map[string]int
}

func (b *boundCodec[T]) Name() string               { return b.obj.Name() }
func (b *boundCodec[T]) AcceptsMissingFields() bool { return false }

func (b *boundCodec[T]) Decode(tc *transcode.Context, v any) (T, error) {
	var zero T
	m, err := b.obj.Decode(tc, v)
	if err != nil || m == nil {
		return zero, err
	}
	rv := reflect.New(b.t).Elem()
	for key, idx := range b.fields {
		val, ok := m[key]
		if !ok || val == nil {
			continue
		}
		fv := rv.Field(idx)
		vv := reflect.ValueOf(val)
		switch {
		case vv.Type().AssignableTo(fv.Type()):
			fv.Set(vv)
		case vv.Type().ConvertibleTo(fv.Type()):
			fv.Set(vv.Convert(fv.Type()))
		default:
			// Lax passes may leave raw values of another type behind.
			if !tc.BestEffort() {
				panic(fmt.Sprintf("codecs: cannot assign %s to field %s.%s", vv.Type(), b.t, b.t.Field(idx).Name))
			}
		}
	}
	return rv.Interface().(T), nil
}

func (b *boundCodec[T]) Encode(tc *transcode.Context, v T) (any, error) {
	rv := reflect.ValueOf(v)
	m := make(map[string]any, len(b.fields))
	for key, idx := range b.fields {
		m[key] = rv.Field(idx).Interface()
	}
	return b.obj.Encode(tc, m)
}
