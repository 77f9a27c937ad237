// Package yaml is the YAML front-end, backed by gopkg.in/yaml.v3. Importing
// it registers Format() under the name "yaml".
package yaml

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/reoring/transcode/wire"
)

func init() { wire.Register(Format()) }

// Format returns the YAML format. Only the first document of a stream is
// read; an empty input decodes to null.
func Format() wire.Format { return format{} }

type format struct{}

func (format) Name() string { return "yaml" }

func (format) Unmarshal(data []byte) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return wire.Normalize(v), nil
}

func (format) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalAll reads every document of a multi-document stream.
func UnmarshalAll(data []byte) ([]any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return nil, err
		}
		out = append(out, wire.Normalize(v))
	}
}
