package yaml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/transcode/wire/yaml"
)

func TestUnmarshal(t *testing.T) {
	v, err := yaml.Format().Unmarshal(nil)
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = yaml.Format().Unmarshal([]byte("1: one\nnested:\n  true: yes\n"))
	require.NoError(t, err)
	require.Equal(t, map[string]any{
		"1":      "one",
		"nested": map[string]any{"true": "yes"},
	}, v)
}

func TestUnmarshalAll(t *testing.T) {
	docs, err := yaml.UnmarshalAll([]byte("a: 1\n---\nb: 2\n"))
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"a": 1},
		map[string]any{"b": 2},
	}, docs)
}

func TestMarshal_Indent(t *testing.T) {
	out, err := yaml.Format().Marshal(map[string]any{"list": []any{map[string]any{"k": "v"}}})
	require.NoError(t, err)
	require.Equal(t, "list:\n  - k: v\n", string(out))
}
