package msgpack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode/wire/msgpack"
)

func TestMarshal_SortsKeys(t *testing.T) {
	v := map[string]any{"z": "last", "a": "first", "m": []any{"x"}}
	first, err := msgpack.Format().Marshal(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := msgpack.Format().Marshal(v)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}

	back, err := msgpack.Format().Unmarshal(first)
	require.NoError(t, err)
	require.Equal(t, v, back)
}
