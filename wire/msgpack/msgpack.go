// Package msgpack is the MessagePack front-end, backed by
// vmihailenco/msgpack. Importing it registers Format() under the name
// "msgpack".
package msgpack

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/reoring/transcode/wire"
)

func init() { wire.Register(Format()) }

// Format returns the MessagePack format. Maps are written with sorted keys
// so that output is deterministic.
func Format() wire.Format { return format{} }

type format struct{}

func (format) Name() string { return "msgpack" }

func (format) Unmarshal(data []byte) (any, error) {
	var v any
	if err := msgpack.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return wire.Normalize(v), nil
}

func (format) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
