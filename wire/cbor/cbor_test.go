package cbor_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode/wire/cbor"
)

func TestMarshal_IsDeterministic(t *testing.T) {
	v := map[string]any{"b": 2.0, "a": []any{"x", true}, "c": nil}
	first, err := cbor.Format().Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := cbor.Format().Marshal(v)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}

	diag, err := cbor.Diagnose(first)
	require.NoError(t, err)
	require.Contains(t, diag, `"a": ["x", true]`)
	require.Contains(t, diag, `"c": null`)
}

func TestUnmarshal_Maps(t *testing.T) {
	data, err := cbor.Format().Marshal(map[string]any{"k": map[string]any{"n": "v"}})
	require.NoError(t, err)
	v, err := cbor.Format().Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"k": map[string]any{"n": "v"}}, v)
}
