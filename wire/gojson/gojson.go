// Package gojson is the JSON front-end, backed by goccy/go-json. Importing
// it registers Format() under the name "json".
package gojson

import (
	"bytes"
	"errors"
	"io"

	j "github.com/goccy/go-json"

	"github.com/reoring/transcode/wire"
)

func init() { wire.Register(Format()) }

// Option configures the JSON format.
type Option func(*format)

// UseNumber keeps numbers as json.Number instead of float64, preserving
// integers beyond 2^53.
func UseNumber() Option { return func(f *format) { f.useNumber = true } }

// Indent pretty-prints marshalled output with the given indent.
func Indent(indent string) Option { return func(f *format) { f.indent = indent } }

// Format returns the JSON format.
func Format(opts ...Option) wire.Format {
	f := &format{}
	for _, o := range opts {
		o(f)
	}
	return f
}

type format struct {
	useNumber bool
	indent    string
}

func (*format) Name() string { return "json" }

func (f *format) Unmarshal(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	if f.useNumber {
		dec.UseNumber()
	}
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	// Trailing values are a syntax error, not a second document.
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after top-level value")
	}
	return v, nil
}

func (f *format) Marshal(v any) ([]byte, error) {
	if f.indent != "" {
		return j.MarshalIndent(v, "", f.indent)
	}
	return j.Marshal(v)
}
