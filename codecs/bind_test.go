package codecs_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode"
	"github.com/reoring/transcode/codecs"
)

type user struct {
	Name    string    `json:"name"`
	Age     float64   `transcode:"age,omitempty"`
	Nick    *string   `json:"nick,omitempty"`
	Created time.Time `json:"created"`
	Secret  string    `json:"-"`
}

var userShape = codecs.Object("User",
	codecs.Prop("name", codecs.String()),
	codecs.Prop("age", transcode.OrElse(codecs.Number(), 0, nil)),
	codecs.Prop("nick", transcode.Optional(codecs.String())),
	codecs.Prop("created", codecs.Time()),
)

func TestStructKey(t *testing.T) {
	rt := reflect.TypeOf(user{})
	var keys []string
	for i := 0; i < rt.NumField(); i++ {
		keys = append(keys, codecs.StructKey(rt.Field(i)))
	}
	require.Equal(t, []string{"name", "age", "nick", "created", "-"}, keys)
}

func TestBind_RoundTrip(t *testing.T) {
	c := codecs.Bind[user](userShape)
	require.Equal(t, "User", c.Name())

	u, err := transcode.DecodeStrict(c, map[string]any{
		"name":    "Ada",
		"age":     36,
		"created": "2025-03-01T12:00:00Z",
	})
	require.NoError(t, err)
	require.Equal(t, "Ada", u.Name)
	require.Equal(t, 36.0, u.Age)
	require.Nil(t, u.Nick)
	require.Equal(t, time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC), u.Created)

	nick := "ada"
	u.Nick = &nick
	out, err := transcode.Encode(c, u)
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"name":    "Ada",
		"age":     36.0,
		"nick":    "ada",
		"created": "2025-03-01T12:00:00Z",
	}, out)
}

func TestBind_FailuresKeepPaths(t *testing.T) {
	c := codecs.Bind[user](userShape)
	_, err := transcode.DecodeStrict(c, map[string]any{"name": "Ada", "created": "soon"})
	e, ok := transcode.AsError(err)
	require.True(t, ok)
	require.Equal(t, "created", e.PathString())
	require.Equal(t, transcode.CodeInvalidFormat, e.Code)
}

func TestBind_Panics(t *testing.T) {
	require.Panics(t, func() { codecs.Bind[string](userShape) })
	require.Panics(t, func() {
		codecs.Bind[user](userShape.Extend(codecs.Prop("email", codecs.String())))
	})
	require.Panics(t, func() {
		codecs.Bind[user](codecs.Object("User", codecs.Prop("Secret", codecs.String())))
	})
}
