package manifest

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/mfridman/console"
)

type recorder struct {
	path   []string
	title  string
	tags   []string
	prio   string
	url    string
	forced bool
}

func (r *recorder) handlers() Handlers {
	return Handlers{
		"add": console.CallbackSource(func(ctx context.Context, s *console.State) (int, error) {
			r.path = s.Command().Path()
			r.title = s.Input.Argument("title")
			r.tags = console.GetOption[[]string](s.Input, "tag")
			r.prio = s.Input.Option("priority")
			return console.ExitSuccess, nil
		}),
		"remote": console.FactorySource(func(cmd *console.Command) console.Handler {
			return console.HandlerFunc(func(ctx context.Context, s *console.State) (int, error) {
				r.path = cmd.Path()
				if s.Input.Definition().HasArgument("url") {
					r.url = s.Input.Argument("url")
				}
				r.forced = console.GetOption[bool](s.Input, "force")
				return console.ExitSuccess, nil
			})
		}),
	}
}

func loadApp(t *testing.T, file string, r *recorder) *console.Application {
	t.Helper()
	m, err := Load(context.Background(), filepath.Join("testdata", file))
	require.NoError(t, err)
	b, err := m.Builder(r.handlers())
	require.NoError(t, err)
	cfg, err := b.Build()
	require.NoError(t, err)
	app, err := console.NewApplication(cfg)
	require.NoError(t, err)
	return app
}

func TestLoad(t *testing.T) {
	t.Parallel()

	for _, file := range []string{"todo.hcl", "todo.toml"} {
		t.Run(file, func(t *testing.T) {
			t.Parallel()

			t.Run("application", func(t *testing.T) {
				t.Parallel()
				app := loadApp(t, file, &recorder{})
				cfg := app.Config()
				assert.Equal(t, "todo", cfg.Name())
				assert.Equal(t, "Todo", cfg.DisplayName())
				assert.Equal(t, "1.0.0", cfg.Version())
				assert.Equal(t, []string{"help", "verbose"}, cfg.BaseDefinition().OptionNames())

				add, err := cfg.CommandConfig("a")
				require.NoError(t, err)
				assert.Equal(t, "add", add.Name())
				assert.Equal(t, []string{"help", "verbose", "priority", "tag"}, add.EffectiveDefinition().OptionNames())

				usage := app.Usage(nil)
				assert.Contains(t, usage, "Todo 1.0.0")
				assert.NotContains(t, usage, "prune")
			})
			t.Run("defaults", func(t *testing.T) {
				t.Parallel()
				r := &recorder{}
				app := loadApp(t, file, r)

				code, err := app.Run(context.Background(), []string{"a", "milk"}, nil)
				require.NoError(t, err)
				assert.Equal(t, console.ExitSuccess, code)
				assert.Equal(t, []string{"add"}, r.path)
				assert.Equal(t, "milk", r.title)
				assert.Equal(t, []string{"inbox", "1"}, r.tags)
				assert.Equal(t, "normal", r.prio)

				prune, err := app.CommandByPath("remote", "prune")
				require.NoError(t, err)
				limit, ok := prune.Definition().Argument("limit")
				require.True(t, ok)
				assert.Equal(t, "10", limit.Default)
			})
			t.Run("inherited handler and options", func(t *testing.T) {
				t.Parallel()
				r := &recorder{}
				app := loadApp(t, file, r)

				code, err := app.Run(context.Background(), []string{"remote", "add", "--force", "https://example.com"}, nil)
				require.NoError(t, err)
				assert.Equal(t, console.ExitSuccess, code)
				assert.Equal(t, []string{"remote", "add"}, r.path)
				assert.Equal(t, "https://example.com", r.url)
				assert.True(t, r.forced)

				var stderr bytes.Buffer
				code, err = app.Run(context.Background(), []string{"remote", "prune", "--force"}, &console.RunOptions{Stderr: &stderr})
				require.NoError(t, err)
				assert.Equal(t, console.ExitUsage, code)
				assert.Contains(t, stderr.String(), "-force")
			})
		})
	}
}

func TestManifestErrors(t *testing.T) {
	t.Parallel()

	build := func(t *testing.T, filename, src string) error {
		t.Helper()
		m, err := Parse(filename, []byte(src))
		if err != nil {
			return err
		}
		_, err = m.Builder(Handlers{"known": console.CallbackSource(func(context.Context, *console.State) (int, error) {
			return 0, nil
		})})
		return err
	}

	tests := []struct {
		name     string
		filename string
		src      string
		want     string
	}{
		{
			name:     "unsupported format",
			filename: "app.yaml",
			want:     `unsupported manifest format ".yaml"`,
		},
		{
			name:     "hcl syntax error",
			filename: "app.hcl",
			src:      `name = `,
			want:     "failed to parse HCL manifest app.hcl",
		},
		{
			name:     "hcl unknown attribute",
			filename: "app.hcl",
			src:      "name = \"app\"\ncolour = \"red\"\n",
			want:     "failed to decode HCL manifest app.hcl",
		},
		{
			name:     "toml unknown key",
			filename: "app.toml",
			src:      "name = \"app\"\ncolour = \"red\"\n",
			want:     "unknown keys colour",
		},
		{
			name:     "toml unsupported default",
			filename: "app.toml",
			src:      "name = \"app\"\n[[option]]\nname = \"at\"\nmode = \"required\"\ndefault = 1979-05-27\n",
			want:     `option "at": unsupported default`,
		},
		{
			name:     "unknown handler",
			filename: "app.hcl",
			src:      "name = \"app\"\ncommand \"run\" {\n  command \"fast\" {\n    handler = \"missing\"\n  }\n}\n",
			want:     `command "run fast": unknown handler "missing"`,
		},
		{
			name:     "unknown mode",
			filename: "app.hcl",
			src:      "name = \"app\"\noption \"out\" {\n  mode = \"sometimes\"\n}\n",
			want:     `option "out": unknown mode "sometimes"`,
		},
		{
			name:     "list default on single value",
			filename: "app.toml",
			src:      "name = \"app\"\n[[command]]\nname = \"run\"\nhandler = \"known\"\n[[command.argument]]\nname = \"file\"\ndefault = [\"a\"]\n",
			want:     `command "run": argument "file": a list default requires a multi-valued input`,
		},
		{
			name:     "invalid declaration",
			filename: "app.hcl",
			src:      "name = \"app\"\noption \"v\" {\n  default = \"x\"\n}\n",
			want:     "switches cannot have a default",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := build(t, tt.filename, tt.src)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	val := func(v cty.Value) *cty.Value { return &v }

	s, list, err := defaults(nil, false)
	require.NoError(t, err)
	assert.Empty(t, s)
	assert.Nil(t, list)

	s, _, err = defaults(val(cty.True), false)
	require.NoError(t, err)
	assert.Equal(t, "true", s)

	_, list, err = defaults(val(cty.StringVal("x")), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, list)

	_, list, err = defaults(val(cty.ListVal([]cty.Value{cty.NumberFloatVal(1.5), cty.NumberIntVal(2)})), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"1.5", "2"}, list)

	_, _, err = defaults(val(cty.TupleVal([]cty.Value{cty.EmptyObjectVal})), true)
	require.Error(t, err)

	_, _, err = defaults(val(cty.UnknownVal(cty.String)), false)
	require.ErrorContains(t, err, "constant")
}
