// Package rules refines codecs with value checks that run after a
// successful decode: validator tags, conditional rules and collection
// checks. A failing rule is reported as a refinement failure of the codec.
package rules

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
	"github.com/reoring/transcode/i18n"
)

// Rule checks a decoded value. A non-nil error is a violation; its text
// becomes the cause in the failure message.
type Rule[T any] func(v T) error

// Check refines c with rules. The first violation fails the decode with
// code refinement; encoding is unaffected. rename relabels the codec, ""
// keeps the name of c.
func Check[T any](c transcode.Codec[T], rename string, rules ...Rule[T]) transcode.Codec[T] {
	name := rename
	if name == "" {
		name = c.Name()
	}
	return transcode.Refine(c, func(tc *transcode.Context, v T) (T, error) {
		for _, r := range rules {
			if r == nil {
				continue
			}
			if err := r(v); err != nil {
				msg := tc.Message(i18n.MsgRuleViolation, name, map[string]string{"cause": err.Error()})
				return transcode.Fail[T](tc, transcode.CodeRefinement, msg, v)
			}
		}
		return v, nil
	}, rename)
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func tagValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(sf reflect.StructField) string {
			if k := codecs.StructKey(sf); k != "-" {
				return k
			}
			return ""
		})
	})
	return validate
}

// Tag checks a value against a validator tag such as "min=1,max=10" or
// "email".
func Tag[T any](tag string) Rule[T] {
	return func(v T) error { return describe(tagValidator().Var(v, tag)) }
}

// Struct checks the `validate` tags of a struct value, as produced by
// codecs.Bind.
func Struct[T any]() Rule[T] {
	return func(v T) error { return describe(tagValidator().Struct(v)) }
}

// describe turns validator errors into short causes such as
// "age violates gte=0".
func describe(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		rule := fe.Tag()
		if p := fe.Param(); p != "" {
			rule += "=" + p
		}
		if ns := fieldPath(fe.Namespace()); ns != "" {
			parts = append(parts, ns+" violates "+rule)
		} else {
			parts = append(parts, "violates "+rule)
		}
	}
	return errors.New(strings.Join(parts, "; "))
}

// fieldPath strips the struct type name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ""
}

// Func wraps a predicate; msg is the violation text.
func Func[T any](msg string, ok func(v T) bool) Rule[T] {
	return func(v T) error {
		if ok(v) {
			return nil
		}
		return errors.New(msg)
	}
}

// And runs every rule and joins the violations.
func And[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) error {
		var errs []error
		for _, r := range rules {
			if r == nil {
				continue
			}
			if err := r(v); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
}

// Or succeeds when any rule succeeds. When all fail, the first violation is
// returned.
func Or[T any](rules ...Rule[T]) Rule[T] {
	return func(v T) error {
		var first error
		for _, r := range rules {
			if r == nil {
				continue
			}
			err := r(v)
			if err == nil {
				return nil
			}
			if first == nil {
				first = err
			}
		}
		return first
	}
}

// Op is a comparison operator for If.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Conditional selects values by comparing the value at a path.
type Conditional[T any] struct {
	path []string
	op   Op
	want any
	all  []Conditional[T]
	any  []Conditional[T]
}

// If compares the value at path with want. path is a JSON Pointer such as
// "/status" resolved through objects, struct fields (by StructKey) and
// array indices.
func If[T any](path string, op Op, want any) Conditional[T] {
	return Conditional[T]{path: splitPointer(path), op: op, want: want}
}

// IfAll holds when all conditions hold.
func IfAll[T any](conds ...Conditional[T]) Conditional[T] { return Conditional[T]{all: conds} }

// IfAny holds when any condition holds.
func IfAny[T any](conds ...Conditional[T]) Conditional[T] { return Conditional[T]{any: conds} }

// Then runs rules only for values satisfying the condition.
func (c Conditional[T]) Then(rules ...Rule[T]) Rule[T] {
	inner := And(rules...)
	return func(v T) error {
		if !c.holds(v) {
			return nil
		}
		return inner(v)
	}
}

func (c Conditional[T]) holds(v T) bool {
	if len(c.all) > 0 {
		for _, it := range c.all {
			if !it.holds(v) {
				return false
			}
		}
		return true
	}
	if len(c.any) > 0 {
		for _, it := range c.any {
			if it.holds(v) {
				return true
			}
		}
		return false
	}
	cur, ok := valueAt(v, c.path)
	if !ok {
		return false
	}
	return compare(cur, c.op, c.want)
}

// AtLeastOne requires the collection at path to be non-empty. Missing
// collections are left to the shape.
func AtLeastOne[T any](path string) Rule[T] {
	p := splitPointer(path)
	return func(v T) error {
		val, ok := valueAt(v, p)
		if !ok {
			return nil
		}
		if arr, ok := transcode.AsArray(val); ok && len(arr) == 0 {
			return fmt.Errorf("%s requires at least 1 item", pointer(p))
		}
		return nil
	}
}

// UniqueBy requires the elements of the collection at collectionPath to
// have distinct values at keyPath, compared by their printed form.
func UniqueBy[T any](collectionPath, keyPath string) Rule[T] {
	cp := splitPointer(collectionPath)
	kp := splitPointer(keyPath)
	return func(v T) error {
		val, ok := valueAt(v, cp)
		if !ok {
			return nil
		}
		arr, ok := transcode.AsArray(val)
		if !ok {
			return nil
		}
		seen := map[string]int{}
		for i, elem := range arr {
			kv, ok := valueAt(elem, kp)
			if !ok {
				continue
			}
			key := fmt.Sprint(kv)
			if j, dup := seen[key]; dup {
				return fmt.Errorf("%s[%d] duplicates %s[%d] (%s)", pointer(cp), i, pointer(cp), j, key)
			}
			seen[key] = i
		}
		return nil
	}
}

func splitPointer(p string) []string {
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return parts
}

func pointer(parts []string) string { return "/" + strings.Join(parts, "/") }

func valueAt(v any, path []string) (any, bool) {
	cur := reflect.ValueOf(v)
	for _, seg := range path {
		for cur.IsValid() && (cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface) {
			if cur.IsNil() {
				return nil, false
			}
			cur = cur.Elem()
		}
		if !cur.IsValid() {
			return nil, false
		}
		switch cur.Kind() {
		case reflect.Struct:
			next, ok := fieldByKey(cur, seg)
			if !ok {
				return nil, false
			}
			cur = next
		case reflect.Map:
			if cur.Type().Key().Kind() != reflect.String {
				return nil, false
			}
			mv := cur.MapIndex(reflect.ValueOf(seg).Convert(cur.Type().Key()))
			if !mv.IsValid() {
				return nil, false
			}
			cur = mv
		case reflect.Slice, reflect.Array:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= cur.Len() {
				return nil, false
			}
			cur = cur.Index(idx)
		default:
			return nil, false
		}
	}
	for cur.IsValid() && (cur.Kind() == reflect.Pointer || cur.Kind() == reflect.Interface) {
		if cur.IsNil() {
			return nil, true
		}
		cur = cur.Elem()
	}
	if !cur.IsValid() {
		return nil, true
	}
	return cur.Interface(), true
}

func fieldByKey(sv reflect.Value, key string) (reflect.Value, bool) {
	rt := sv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.IsExported() && codecs.StructKey(sf) == key {
			return sv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func compare(cur any, op Op, want any) bool {
	switch op {
	case Eq:
		return equal(cur, want)
	case Ne:
		return !equal(cur, want)
	}
	a, ok1 := transcode.AsFloat(cur)
	b, ok2 := transcode.AsFloat(want)
	if !ok1 || !ok2 {
		return false
	}
	switch op {
	case Lt:
		return a < b
	case Le:
		return a <= b
	case Gt:
		return a > b
	case Ge:
		return a >= b
	}
	return false
}

// equal compares numbers by value regardless of their Go kind.
func equal(a, b any) bool {
	if x, ok := transcode.AsFloat(a); ok {
		if y, ok := transcode.AsFloat(b); ok {
			return x == y
		}
	}
	return reflect.DeepEqual(a, b)
}
