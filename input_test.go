package console

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOption(t *testing.T) {
	t.Parallel()

	def := NewInputDefinition()
	require.NoError(t, def.AddOption(Option{Name: "count", Mode: ValueRequired, Default: "3"}))
	require.NoError(t, def.AddOption(Option{Name: "ratio", Mode: ValueRequired}))
	require.NoError(t, def.AddOption(Option{Name: "timeout", Mode: ValueRequired, Default: "1m30s"}))
	require.NoError(t, def.AddOption(Option{Name: "verbose", ShortName: "v"}))
	require.NoError(t, def.AddOption(Option{Name: "tag", Mode: ValueMultiple, Defaults: []string{"x"}}))
	require.NoError(t, def.AddArgument(Argument{Name: "size", Default: "42"}))
	require.NoError(t, def.AddArgument(Argument{Name: "rest", Flags: ArgumentMultiple}))

	t.Run("conversions", func(t *testing.T) {
		t.Parallel()
		in, err := bindInput(def, []string{"-v", "--ratio=0.5", "10", "a", "b"}, nil, nil)
		require.NoError(t, err)

		assert.Equal(t, 3, GetOption[int](in, "count"))
		assert.Equal(t, int64(3), GetOption[int64](in, "count"))
		assert.InDelta(t, 0.5, GetOption[float64](in, "ratio"), 1e-9)
		assert.Equal(t, 90*time.Second, GetOption[time.Duration](in, "timeout"))
		assert.True(t, GetOption[bool](in, "v"))
		assert.Equal(t, []string{"x"}, GetOption[[]string](in, "tag"))
		assert.Equal(t, 10, GetArgument[int](in, "size"))
		assert.Equal(t, []string{"a", "b"}, GetArgument[[]string](in, "rest"))
		assert.Equal(t, "a", in.Argument("rest"))
	})
	t.Run("defaults and zero values", func(t *testing.T) {
		t.Parallel()
		in, err := bindInput(def, nil, nil, nil)
		require.NoError(t, err)

		assert.False(t, GetOption[bool](in, "verbose"))
		assert.Zero(t, GetOption[float64](in, "ratio"))
		assert.Equal(t, 42, GetArgument[int](in, "size"))
		assert.False(t, in.IsArgumentSet("size"))
		assert.Empty(t, GetArgument[[]string](in, "rest"))
	})
	t.Run("undeclared names panic", func(t *testing.T) {
		t.Parallel()
		in, err := bindInput(def, nil, nil, nil)
		require.NoError(t, err)

		assert.PanicsWithError(t, `internal error: option "nope" not declared`, func() { in.Option("nope") })
		assert.PanicsWithError(t, `internal error: argument "nope" not declared`, func() { in.Argument("nope") })
		assert.False(t, in.IsOptionSet("nope"))
	})
	t.Run("conversion failure panics", func(t *testing.T) {
		t.Parallel()
		in, err := bindInput(def, []string{"--ratio", "half"}, nil, nil)
		require.NoError(t, err)

		defer func() {
			r := recover()
			require.NotNil(t, r)
			err, ok := r.(error)
			require.True(t, ok)
			assert.ErrorContains(t, err, `internal error: option "ratio"`)
		}()
		_ = GetOption[float64](in, "ratio")
	})
}
