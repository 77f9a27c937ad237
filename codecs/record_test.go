package codecs_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
)

func TestDict(t *testing.T) {
	c := codecs.Dict(codecs.Number())
	require.Equal(t, "record<string, number>", c.Name())

	v, err := transcode.DecodeStrict(c, map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"a": 1, "b": 2}, v)

	out, err := transcode.Encode(c, v)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": 1.0, "b": 2.0}, out)

	_, err = transcode.DecodeStrict(c, []any{1})
	requireMismatch(t, err, "Failed to decode object - object expected")
}

func TestDict_FailurePath(t *testing.T) {
	c := codecs.Dict(codecs.Number())
	_, err := transcode.DecodeStrict(c, map[string]any{"a": 1, "b": "x", "c": "y"})
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	// Entries are visited in key order, so the first bad key is always b.
	require.Equal(t, "b", e.PathString())
	require.Equal(t, []string{"record<string, number>", "record<string, number>.b"}, e.Scope)
}

func TestDict_EncodeFailurePathIsStable(t *testing.T) {
	c := codecs.Dict(codecs.Number())
	in := map[string]float64{"c": math.NaN(), "a": math.NaN(), "b": math.NaN()}
	for i := 0; i < 20; i++ {
		_, err := transcode.Encode(c, in)
		e, ok := transcode.AsError(err)
		require.True(t, ok)
		require.Equal(t, "a", e.PathString())
		require.Equal(t, []string{"record<string, number>", "record<string, number>.a"}, e.Scope)
	}
}

func TestRecord_IntKeys(t *testing.T) {
	c := codecs.Record(codecs.String(), codecs.IntKey())
	require.Equal(t, "record<integer key, string>", c.Name())

	v, err := transcode.DecodeStrict(c, map[string]any{"1": "one", "10": "ten"})
	require.NoError(t, err)
	require.Equal(t, map[int64]string{1: "one", 10: "ten"}, v)

	out, err := transcode.Encode(c, map[int64]string{2: "two"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"2": "two"}, out)

	_, err = transcode.DecodeStrict(c, map[string]any{"x": "?"})
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Equal(t, transcode.CodeInvalidFormat, e.Code)
	require.Equal(t, "Failed to decode integer key - invalid format", e.Message)
	require.Equal(t, "x", e.PathString())
}

func TestRecord_LiteralKeys(t *testing.T) {
	c := codecs.Record(codecs.Bool(), codecs.LiteralKeys("read", "write"))
	_, err := transcode.DecodeStrict(c, map[string]any{"read": true})
	require.NoError(t, err)
	_, err = transcode.DecodeStrict(c, map[string]any{"exec": true})
	requireMismatch(t, err, "Failed to decode literal key - value mismatch")
}

func TestRecord_CaseKeys(t *testing.T) {
	c := codecs.Record(codecs.Number(), codecs.CaseKeys(language.English, codecs.Upper, codecs.Lower))
	v, err := transcode.DecodeStrict(c, map[string]any{"CPU": 2, "Mem": 4})
	require.NoError(t, err)
	require.Equal(t, map[string]float64{"cpu": 2, "mem": 4}, v)

	out, err := transcode.Encode(c, v)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"CPU": 2.0, "MEM": 4.0}, out)
}

func TestPartialRecord(t *testing.T) {
	c := codecs.PartialRecord(transcode.OrUndefined(codecs.String()), transcode.StringKey())
	v, err := transcode.DecodeStrict(c, map[string]any{"a": "x", "b": transcode.Undefined})
	require.NoError(t, err)
	require.Len(t, v, 1)
	require.Equal(t, transcode.Some("x"), v["a"])

	out, err := transcode.Encode(c, map[string]transcode.Maybe[string]{
		"a": transcode.Some("x"),
		"b": transcode.AbsentOf[string](),
	})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"a": "x"}, out)
}

func TestMapOf_KeepsOrder(t *testing.T) {
	c := codecs.MapOf(codecs.Int(), transcode.StringKey())
	v, err := transcode.DecodeStrict(c, map[string]any{"c": 3, "a": 1, "b": 2})
	require.NoError(t, err)

	var keys []string
	for k := range v.All() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"a", "b", "c"}, keys)
	got, ok := v.Get("b")
	require.True(t, ok)
	require.Equal(t, int64(2), got)

	e := codecs.NewEntries[string, int64](2)
	e.Set("z", 26)
	e.Set("y", 25)
	e.Set("z", 0)
	require.Equal(t, 2, e.Len())
	out, err := transcode.Encode(c, e)
	require.NoError(t, err)
	if diff := cmp.Diff(map[string]any{"z": int64(0), "y": int64(25)}, out); diff != "" {
		t.Fatalf("unexpected encoding (-want +got):\n%s", diff)
	}
}
