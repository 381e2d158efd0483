// Package console provides a framework for building command-line applications with nested
// sub-commands, typed arguments and options, and generated help.
//
// An application is declared with an [ApplicationBuilder] and [CommandBuilder] values, frozen by
// [ApplicationBuilder.Build] into an [ApplicationConfig], and run by an [Application]:
//
//	b := console.NewApplicationBuilder("todo").SetVersion("1.0.0")
//	add := console.NewCommandBuilder("add").
//		SetDescription("Add a task").
//		SetCallback(func(ctx context.Context, s *console.State) (int, error) {
//			fmt.Fprintln(s.Stdout, "added", s.Input.Argument("title"))
//			return 0, nil
//		})
//	_ = add.AddArgument(console.Argument{Name: "title", Flags: console.ArgumentRequired})
//	_ = b.AddCommand(add)
//	cfg, err := b.Build()
//	...
//	app, err := console.NewApplication(cfg)
//	...
//	code, err := app.Run(ctx, os.Args[1:], nil)
//
// Options and arguments may be interleaved on the command line. A sub-command inherits the
// options and arguments of its parents unless told otherwise, and a command without a handler
// runs the closest handler declared by an ancestor.
package console
