package transcode_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
)

func TestMapKey_ProjectsKeys(t *testing.T) {
	type userID int64
	ids := transcode.MapKey(codecs.IntKey(),
		func(_ *transcode.Context, k int64) (userID, error) { return userID(k), nil },
		func(u userID) int64 { return int64(u) },
		"user id")
	require.Equal(t, "user id", ids.Name())

	tc := transcode.NewContext(transcode.OpDecode, transcode.DefaultConfig())
	k, err := ids.DecodeKey(tc, "42")
	require.NoError(t, err)
	require.Equal(t, userID(42), k)
	require.Equal(t, "7", ids.EncodeKey(7))

	_, err = ids.DecodeKey(tc, "abc")
	require.Error(t, err)
}

func TestStringKey(t *testing.T) {
	k := transcode.StringKey()
	tc := transcode.NewContext(transcode.OpDecode, transcode.DefaultConfig())
	got, err := k.DecodeKey(tc, "a.b")
	require.NoError(t, err)
	require.Equal(t, "a.b", got)
	require.Equal(t, "x", k.EncodeKey("x"))
}

func TestMakeKey(t *testing.T) {
	hex := transcode.MakeKey("hex",
		func(tc *transcode.Context, k string) (uint64, error) {
			n, err := strconv.ParseUint(k, 16, 64)
			if err != nil {
				return transcode.Fail[uint64](tc, transcode.CodeInvalidFormat, "bad hex", k)
			}
			return n, nil
		},
		func(n uint64) string { return strconv.FormatUint(n, 16) })
	tc := transcode.NewContext(transcode.OpDecode, transcode.DefaultConfig())
	n, err := hex.DecodeKey(tc, "ff")
	require.NoError(t, err)
	require.Equal(t, uint64(255), n)
	require.Equal(t, "ff", hex.EncodeKey(255))
}
