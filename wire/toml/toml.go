// Package toml is the TOML front-end, backed by BurntSushi/toml. Importing
// it registers Format() under the name "toml".
package toml

import (
	"bytes"
	"errors"

	"github.com/BurntSushi/toml"

	"github.com/reoring/transcode/wire"
)

func init() { wire.Register(Format()) }

// ErrNotTable is returned when marshalling anything but an object: a TOML
// document is always a table.
var ErrNotTable = errors.New("toml: top-level value must be an object")

// Format returns the TOML format. TOML has no null; nil entries are left
// out when marshalling.
func Format() wire.Format { return format{} }

type format struct{}

func (format) Name() string { return "toml" }

func (format) Unmarshal(data []byte) (any, error) {
	m := map[string]any{}
	if _, err := toml.Decode(string(data), &m); err != nil {
		return nil, err
	}
	return m, nil
}

func (format) Marshal(v any) ([]byte, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotTable
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(dropNulls(m)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func dropNulls(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case nil:
			continue
		case map[string]any:
			out[k] = dropNulls(t)
		default:
			out[k] = v
		}
	}
	return out
}
