package codecs_test

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
)

// kinds holds one value of every primitive kind, including a date-like
// value.
var kinds = map[string]any{
	"string":  "x",
	"number":  1.5,
	"integer": 7,
	"boolean": true,
	"null":    nil,
	"object":  map[string]any{},
	"array":   []any{},
	"time":    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
}

func requireMismatch(t *testing.T, err error, msg string) {
	t.Helper()
	e, ok := transcode.AsError(err)
	require.True(t, ok, "expected *transcode.Error, got %v", err)
	require.Equal(t, msg, e.Message)
}

func TestString(t *testing.T) {
	v, err := transcode.DecodeStrict(codecs.String(), "hello")
	require.NoError(t, err)
	require.Equal(t, "hello", v)

	for k, in := range kinds {
		if k == "string" {
			continue
		}
		_, err := transcode.DecodeStrict(codecs.String(), in)
		requireMismatch(t, err, "Failed to decode string - type mismatch")
	}
}

func TestNumber(t *testing.T) {
	for _, in := range []any{1.5, 3, int64(-2), uint8(9), float32(0.5), json.Number("12.25")} {
		_, err := transcode.DecodeStrict(codecs.Number(), in)
		require.NoError(t, err, "%#v", in)
	}
	for _, k := range []string{"string", "boolean", "null", "object", "array", "time"} {
		_, err := transcode.DecodeStrict(codecs.Number(), kinds[k])
		requireMismatch(t, err, "Failed to decode number - type mismatch")
	}

	_, err := transcode.Encode(codecs.Number(), math.NaN())
	requireMismatch(t, err, "Failed to encode number - value mismatch")
	out, err := transcode.Encode(codecs.Number(), math.Inf(1), transcode.WithStrictPrimitives(false))
	require.NoError(t, err)
	require.True(t, math.IsInf(out.(float64), 1))
}

func TestInt(t *testing.T) {
	v, err := transcode.DecodeStrict(codecs.Int(), 4.0)
	require.NoError(t, err)
	require.Equal(t, int64(4), v)

	_, err = transcode.DecodeStrict(codecs.Int(), 4.5)
	requireMismatch(t, err, "Failed to decode integer - type mismatch")
}

func TestBool(t *testing.T) {
	v, err := transcode.DecodeStrict(codecs.Bool(), false)
	require.NoError(t, err)
	require.False(t, v)

	for k, in := range kinds {
		if k == "boolean" {
			continue
		}
		_, err := transcode.DecodeStrict(codecs.Bool(), in)
		requireMismatch(t, err, "Failed to decode boolean - type mismatch")
	}
}

func TestPrimitives_AreIdentityOnTheirDomain(t *testing.T) {
	for _, s := range []string{"", "a", "日本語"} {
		v, err := transcode.DecodeStrict(codecs.String(), s)
		require.NoError(t, err)
		out, err := transcode.Encode(codecs.String(), v)
		require.NoError(t, err)
		require.Equal(t, s, out)
	}
	for _, f := range []float64{0, -1, 3.25, 1e300} {
		v, err := transcode.DecodeStrict(codecs.Number(), f)
		require.NoError(t, err)
		require.Equal(t, f, v)
	}
}

func TestLiterals(t *testing.T) {
	c := codecs.Literals("color", "red", "green")
	v, err := transcode.DecodeStrict(c, "red")
	require.NoError(t, err)
	require.Equal(t, "red", v)

	_, err = transcode.DecodeStrict(c, "blue")
	requireMismatch(t, err, "Failed to decode color - value mismatch")

	_, err = transcode.DecodeStrict(c, 1)
	requireMismatch(t, err, "Failed to decode color - value is not a string")

	_, err = transcode.Encode(c, "blue")
	requireMismatch(t, err, "Failed to encode color - value mismatch")
}

func TestSingleton(t *testing.T) {
	c := codecs.Singleton("version", 2.0)
	_, err := transcode.DecodeStrict(c, 2.0)
	require.NoError(t, err)
	_, err = transcode.DecodeStrict(c, 3.0)
	requireMismatch(t, err, "Failed to decode version - value mismatch")
}

func TestUnknown_PassesThrough(t *testing.T) {
	in := map[string]any{"deep": []any{1, "x", nil}}
	v, err := transcode.DecodeStrict(codecs.Unknown(), in)
	require.NoError(t, err)
	require.Equal(t, any(in), v)
}

func TestTime(t *testing.T) {
	v, err := transcode.DecodeStrict(codecs.Time(), "2025-01-01T09:00:00+09:00")
	require.NoError(t, err)
	require.True(t, v.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	out, err := transcode.Encode(codecs.Time(), v)
	require.NoError(t, err)
	require.Equal(t, "2025-01-01T00:00:00Z", out)

	_, err = transcode.DecodeStrict(codecs.Time(), "yesterday")
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Equal(t, transcode.CodeInvalidFormat, e.Code)

	_, err = transcode.DecodeStrict(codecs.Time(), kinds["time"])
	requireMismatch(t, err, "Failed to decode time - type mismatch")
}
