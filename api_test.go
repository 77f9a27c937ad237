package transcode_test

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
)

func TestDecodeStrict_FailsWithError(t *testing.T) {
	_, err := transcode.DecodeStrict(codecs.String(), 1)
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Equal(t, transcode.OpDecode, e.Op)
	require.Equal(t, transcode.CodeTypeMismatch, e.Code)
	require.Equal(t, "Failed to decode string - type mismatch", e.Message)
}

func TestDecodeStrict_OverridesDefaultBestEffort(t *testing.T) {
	cfg := transcode.DefaultConfig()
	cfg.ErrorHandling.BestEffort = true
	transcode.SetDefaultConfig(cfg)
	t.Cleanup(transcode.ResetDefaultConfig)

	_, err := transcode.DecodeStrict(codecs.String(), 1)
	require.Error(t, err)

	v, err := transcode.DecodeWithDefaults(codecs.String(), "x")
	require.NoError(t, err)
	require.Equal(t, "x", v)

	_, err = transcode.DecodeWithDefaults(codecs.String(), 1)
	require.NoError(t, err)
}

func TestDecodeLax_NeverFails(t *testing.T) {
	obj := codecs.Inline(
		codecs.Prop("foo", codecs.String()),
		codecs.Prop("bar", codecs.Number()),
	)
	v := transcode.DecodeLax(obj, map[string]any{"foo": 1})
	require.Equal(t, map[string]any{"foo": ""}, v)

	raw := map[string]any{"x": 1}
	require.Equal(t, any(raw), transcode.DecodeLax(codecs.Unknown(), raw))
}

func TestDecodeLax_LogsThroughSlog(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	_ = transcode.DecodeLax(codecs.Number(), "NaN", transcode.WithLogging(transcode.SlogLogging(logger)))
	out := buf.String()
	require.Contains(t, out, "level=ERROR")
	require.Contains(t, out, "Failed to decode number - type mismatch")
	require.Contains(t, out, "garbage=NaN")
}

func TestTryDecodeStrict(t *testing.T) {
	ok := transcode.TryDecodeStrict(codecs.Bool(), true)
	require.True(t, ok.OK())
	require.True(t, ok.Value)

	bad := transcode.TryDecodeStrict(codecs.Bool(), "true")
	require.False(t, bad.OK())
	require.Equal(t, "Failed to decode boolean - type mismatch", bad.Err.Message)
}

func TestTryDecodeStrict_WrapsForeignFailures(t *testing.T) {
	plain := transcode.Make("plain",
		func(_ *transcode.Context, v any) (int, error) { return 0, errors.New("disk on fire") },
		func(_ *transcode.Context, v int) (any, error) { return v, nil })
	r := transcode.TryDecodeStrict(plain, 1)
	require.False(t, r.OK())
	require.Equal(t, transcode.CodeUnknownException, r.Err.Code)
	require.Equal(t, "Unknown exception: disk on fire", r.Err.Message)
	require.Empty(t, r.Err.Scope)
	require.Empty(t, r.Err.Path)

	panicky := transcode.Make("panicky",
		func(_ *transcode.Context, v any) (int, error) { panic("nil map write") },
		func(_ *transcode.Context, v int) (any, error) { return v, nil })
	r = transcode.TryDecodeStrict(panicky, 1)
	require.Equal(t, transcode.CodeUnknownException, r.Err.Code)
	require.True(t, strings.HasSuffix(r.Err.Message, "nil map write"))
}

func TestEncode_StrictPrimitives(t *testing.T) {
	obj := codecs.Inline(codecs.Prop("n", codecs.Number()))

	_, err := transcode.Encode(obj, map[string]any{"n": "one"})
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Equal(t, transcode.OpEncode, e.Op)
	require.Equal(t, "Failed to encode number - type mismatch", e.Message)
	require.Equal(t, "n", e.PathString())

	out, err := transcode.Encode(obj, map[string]any{"n": "one"}, transcode.WithStrictPrimitives(false))
	require.NoError(t, err)
	require.Equal(t, map[string]any{"n": "one"}, out)
}

func TestOptions_Apply(t *testing.T) {
	obj := codecs.Inline(codecs.Prop("a", codecs.String()))
	_, err := transcode.DecodeStrict(obj, map[string]any{"a": 1}, transcode.WithTracing(transcode.NoTracing))
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Empty(t, e.Scope)
	require.Equal(t, "Failed to decode string - type mismatch", e.Error())

	cfg := transcode.DefaultConfig()
	cfg.ErrorHandling.BestEffort = true
	v, err := transcode.DecodeWithDefaults(codecs.String(), 1, transcode.WithConfig(cfg))
	require.NoError(t, err)
	require.Equal(t, "", v)
}
