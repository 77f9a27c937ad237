// Package cbor is the CBOR front-end, backed by fxamacker/cbor. Importing it
// registers Format() under the name "cbor".
package cbor

import (
	"reflect"

	"github.com/fxamacker/cbor/v2"

	"github.com/reoring/transcode/wire"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): the same plain
// data always produces identical bytes.
var encMode cbor.EncMode

// decMode decodes maps into map[string]any, the plain object type codecs
// expect. Maps with non-string keys are rejected.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
	wire.Register(Format())
}

// Format returns the CBOR format.
func Format() wire.Format { return format{} }

type format struct{}

func (format) Name() string { return "cbor" }

func (format) Unmarshal(data []byte) (any, error) {
	var v any
	if err := decMode.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (format) Marshal(v any) ([]byte, error) { return encMode.Marshal(v) }

// Diagnose renders data in CBOR diagnostic notation (RFC 8949 §8).
func Diagnose(data []byte) (string, error) { return cbor.Diagnose(data) }
