package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestApp builds the application used by the parsing tests:
//
//	todo --verbose
//	├── add <title> --priority --tag... --color[=auto] --dry-run
//	└── nested --force
//	    ├── sub --echo
//	    └── hello --mandatory (does not inherit --force)
func newTestApp(t *testing.T, configure ...func(*ApplicationBuilder)) *Application {
	t.Helper()

	b := NewApplicationBuilder("todo")
	require.NoError(t, b.AddOption(Option{Name: "verbose", ShortName: "v", Description: "enable verbose mode"}))

	add := NewCommandBuilder("add").SetDescription("add a task")
	require.NoError(t, add.AddArgument(Argument{Name: "title", Flags: ArgumentRequired}))
	require.NoError(t, add.AddOption(Option{Name: "priority", ShortName: "p", Mode: ValueRequired, Default: "normal"}))
	require.NoError(t, add.AddOption(Option{Name: "tag", Mode: ValueMultiple}))
	require.NoError(t, add.AddOption(Option{Name: "color", Mode: ValueOptional, Default: "auto"}))
	require.NoError(t, add.AddOption(Option{Name: "dry-run"}))

	sub := NewCommandBuilder("sub")
	require.NoError(t, sub.AddOption(Option{Name: "echo", ShortName: "e", Mode: ValueRequired}))
	hello := NewCommandBuilder("hello").InheritParentDefinition(false)
	require.NoError(t, hello.AddOption(Option{Name: "mandatory", Mode: ValueRequired, Flags: OptionRequired}))

	nested := NewCommandBuilder("nested")
	require.NoError(t, nested.AddOption(Option{Name: "force", ShortName: "f"}))
	require.NoError(t, nested.AddSubCommand(sub))
	require.NoError(t, nested.AddSubCommand(hello))

	require.NoError(t, b.AddCommand(add))
	require.NoError(t, b.AddCommand(nested))
	for _, fn := range configure {
		fn(b)
	}
	cfg, err := b.Build()
	require.NoError(t, err)
	app, err := NewApplication(cfg)
	require.NoError(t, err)
	return app
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("interleaved options and arguments", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"add", "--tag", "a", "milk", "--tag=b", "-v"})
		require.NoError(t, err)
		require.False(t, res.Help)
		assert.Equal(t, []string{"add"}, res.Command.Path())

		in := res.Input
		assert.Equal(t, "milk", in.Argument("title"))
		assert.True(t, in.IsArgumentSet("title"))
		assert.Equal(t, []string{"a", "b"}, in.Options("tag"))
		assert.Equal(t, "true", in.Option("verbose"))
		assert.True(t, in.IsOptionSet("v"))
		assert.Equal(t, "normal", in.Option("priority"))
		assert.False(t, in.IsOptionSet("priority"))
		assert.Empty(t, in.Option("dry-run"))
	})
	t.Run("options before command names", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"-v", "nested", "--force", "sub", "-e", "hi"})
		require.NoError(t, err)
		assert.Equal(t, []string{"nested", "sub"}, res.Command.Path())
		assert.Equal(t, "true", res.Input.Option("verbose"))
		assert.Equal(t, "true", res.Input.Option("force"))
		assert.Equal(t, "hi", res.Input.Option("echo"))
	})
	t.Run("value that looks like a command name", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"nested", "sub", "--echo", "hello"})
		require.NoError(t, err)
		assert.Equal(t, []string{"nested", "sub"}, res.Command.Path())
		assert.Equal(t, "hello", res.Input.Option("echo"))
	})
	t.Run("repeated single value option keeps the last", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"add", "milk", "-p", "low", "--priority=high"})
		require.NoError(t, err)
		assert.Equal(t, "high", res.Input.Option("priority"))
		assert.Equal(t, "high", GetOption[string](res.Input, "p"))
	})
	t.Run("optional value", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"add", "--color", "milk"})
		require.NoError(t, err)
		assert.Equal(t, "auto", res.Input.Option("color"))
		assert.True(t, res.Input.IsOptionSet("color"))
		assert.Equal(t, "milk", res.Input.Argument("title"))

		res, err = app.Resolve([]string{"add", "milk", "--color=never"})
		require.NoError(t, err)
		assert.Equal(t, "never", res.Input.Option("color"))

		res, err = app.Resolve([]string{"add", "milk"})
		require.NoError(t, err)
		assert.Equal(t, "auto", res.Input.Option("color"))
		assert.False(t, res.Input.IsOptionSet("color"))
	})
	t.Run("switch turned off", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"add", "milk", "--dry-run", "--dry-run=false"})
		require.NoError(t, err)
		assert.False(t, res.Input.IsOptionSet("dry-run"))
		assert.False(t, GetOption[bool](res.Input, "dry-run"))
	})
	t.Run("delimiter", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"add", "--", "--not-an-option"})
		require.NoError(t, err)
		assert.Equal(t, "--not-an-option", res.Input.Argument("title"))
		assert.Equal(t, []string{"--", "--not-an-option"}, res.Input.Tokens())

		res, err = app.Resolve([]string{"add", "-v", "--", "--help"})
		require.NoError(t, err)
		require.False(t, res.Help)
		assert.Equal(t, "--help", res.Input.Argument("title"))
	})
	t.Run("inherited options", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"nested", "sub", "-f"})
		require.NoError(t, err)
		assert.Equal(t, "true", res.Input.Option("force"))

		_, err = app.Resolve([]string{"nested", "hello", "--mandatory", "x", "--force"})
		require.Error(t, err)
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorContains(t, err, "-force")

		res, err = app.Resolve([]string{"nested", "hello", "--mandatory", "x", "--verbose"})
		require.NoError(t, err)
		assert.Equal(t, "x", res.Input.Option("mandatory"))
		assert.Equal(t, "true", res.Input.Option("verbose"))
	})
	t.Run("required option", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		_, err := app.Resolve([]string{"nested", "hello"})
		require.Error(t, err)
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "todo nested hello", invalid.Command)
		assert.EqualError(t, err, `command "todo nested hello": required options "--mandatory" not set`)
	})
	t.Run("missing and extra arguments", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		_, err := app.Resolve([]string{"add"})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorContains(t, err, `missing required arguments "title"`)

		_, err = app.Resolve([]string{"add", "milk", "eggs"})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorContains(t, err, `too many arguments: "eggs"`)
	})
	t.Run("unknown option", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		_, err := app.Resolve([]string{"add", "milk", "--nope"})
		require.ErrorIs(t, err, ErrInvalidArgument)
		assert.ErrorContains(t, err, "flag provided but not defined: -nope")
	})
	t.Run("help", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"nested", "sub", "--help"})
		require.NoError(t, err)
		assert.True(t, res.Help)
		assert.Equal(t, []string{"nested", "sub"}, res.Command.Path())
		assert.Nil(t, res.Input)

		// Missing arguments do not get in the way of help.
		res, err = app.Resolve([]string{"add", "-h"})
		require.NoError(t, err)
		assert.True(t, res.Help)
		assert.Equal(t, "add", res.Command.Name())

		res, err = app.Resolve([]string{"--help"})
		require.NoError(t, err)
		assert.True(t, res.Help)
		assert.Nil(t, res.Command)
	})
	t.Run("no command", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve(nil)
		require.NoError(t, err)
		assert.True(t, res.Help)
		assert.Nil(t, res.Command)
	})
	t.Run("unknown command", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		_, err := app.Resolve([]string{"ad"})
		require.ErrorIs(t, err, ErrNotFound)
		var notFound *CommandNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, "ad", notFound.Name)
		assert.Empty(t, notFound.Path)
		assert.Contains(t, notFound.Suggestions, "add")
		assert.ErrorContains(t, err, `unknown command "ad". Did you mean one of these?`)

		// Lookups are case-sensitive.
		_, err = app.Resolve([]string{"ADD", "milk"})
		require.ErrorAs(t, err, &notFound)
	})
	t.Run("unknown sub-command", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		_, err := app.Resolve([]string{"nested", "sup"})
		var notFound *CommandNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, []string{"nested"}, notFound.Path)
		assert.Equal(t, []string{"sub"}, notFound.Suggestions)
		assert.ErrorContains(t, err, `unknown command "sup" for "nested"`)
	})
	t.Run("max command depth", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, func(b *ApplicationBuilder) { b.SetMaxCommandDepth(1) })

		_, err := app.Resolve([]string{"nested", "sub"})
		var invalid *InvalidArgumentError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "todo nested", invalid.Command)
		assert.ErrorContains(t, err, `too many arguments: "sub"`)
	})
	t.Run("default command", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t, func(b *ApplicationBuilder) { b.SetDefaultCommand("add") })

		res, err := app.Resolve([]string{"milk", "--tag", "x"})
		require.NoError(t, err)
		assert.Equal(t, "add", res.Command.Name())
		assert.Equal(t, "milk", res.Input.Argument("title"))
		assert.Equal(t, []string{"x"}, res.Input.Options("tag"))

		res, err = app.Resolve([]string{"nested", "sub"})
		require.NoError(t, err)
		assert.Equal(t, "sub", res.Command.Name())
	})
	t.Run("tokens exclude command names", func(t *testing.T) {
		t.Parallel()
		app := newTestApp(t)

		res, err := app.Resolve([]string{"-v", "add", "milk"})
		require.NoError(t, err)
		assert.Equal(t, []string{"-v", "milk"}, res.Input.Tokens())
	})
}

func TestSplitAtDelimiter(t *testing.T) {
	t.Parallel()

	before, after, found := splitAtDelimiter([]string{"a", "--", "b", "--"})
	assert.True(t, found)
	assert.Equal(t, []string{"a"}, before)
	assert.Equal(t, []string{"b", "--"}, after)

	// Appending to before must not overwrite the delimiter.
	before = append(before, "x")
	assert.Equal(t, []string{"a", "x"}, before)

	before, after, found = splitAtDelimiter([]string{"a"})
	assert.False(t, found)
	assert.Equal(t, []string{"a"}, before)
	assert.Nil(t, after)
}
