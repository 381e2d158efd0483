package console

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/mfridman/console/pkg/render"
	"github.com/mfridman/console/pkg/termio"
)

// Usage returns the help text for cmd, or for the application when cmd is nil, laid out for an
// 80 column terminal.
func (a *Application) Usage(cmd *Command) string {
	var b strings.Builder
	// Writes to a strings.Builder never fail.
	_ = a.writeUsage(termio.Fixed(&b, termio.DefaultWidth, termio.DefaultHeight), cmd)
	return strings.TrimRight(b.String(), "\n")
}

// writeUsage renders help for cmd, or for the application when cmd is nil. Sections are
// separated by a blank line and empty sections are skipped.
func (a *Application) writeUsage(out termio.IO, cmd *Command) error {
	var sections []section
	if cmd == nil {
		sections = a.applicationSections()
	} else {
		sections = a.commandSections(cmd)
	}
	for i, s := range sections {
		if i > 0 {
			if err := out.WriteLine(""); err != nil {
				return err
			}
		}
		if err := s.render(out); err != nil {
			return err
		}
	}
	return nil
}

// section is one block of help output: an optional title followed by a body.
type section struct {
	title string
	body  interface{ Render(termio.IO) error }
}

func (s section) render(out termio.IO) error {
	if s.title != "" {
		if err := out.WriteLine(s.title + ":"); err != nil {
			return err
		}
	}
	return s.body.Render(out)
}

// lines renders verbatim lines with an indent.
type lines struct {
	text   []string
	indent int
}

func (l lines) Render(out termio.IO) error {
	pad := strings.Repeat(" ", l.indent)
	for _, line := range l.text {
		if err := out.WriteLine(pad + line); err != nil {
			return err
		}
	}
	return nil
}

func (a *Application) applicationSections() []section {
	cfg := a.config
	var sections []section

	header := cfg.DisplayName()
	if cfg.version != "" {
		header += " " + cfg.version
	}
	sections = append(sections, section{body: lines{text: []string{header}}})
	if cfg.description != "" {
		sections = append(sections, section{body: render.Paragraph{Text: cfg.description}})
	}

	usage := cfg.name
	if a.HasCommands() {
		usage += " <command>"
	}
	if len(cfg.base.options) > 0 {
		usage += " [options]"
	}
	if len(cfg.base.arguments) > 0 {
		usage += " " + argumentsLabel(cfg.base.arguments)
	}
	sections = append(sections, section{title: "Usage", body: lines{text: []string{usage}, indent: 2}})

	if t := commandsTable(a.commands); t != nil {
		sections = append(sections, section{title: "Available Commands", body: t})
	}
	if t := argumentsTable(cfg.base.arguments); t != nil {
		sections = append(sections, section{title: "Arguments", body: t})
	}
	if t := optionsTable(cfg.base.options); t != nil {
		sections = append(sections, section{title: "Global Options", body: t})
	}
	if a.HasCommands() {
		hint := fmt.Sprintf("Use %q for more information about a command.", cfg.name+" <command> --help")
		sections = append(sections, section{body: lines{text: []string{hint}}})
	}
	return sections
}

func (a *Application) commandSections(cmd *Command) []section {
	cfg := cmd.config
	def := cmd.Definition()
	var sections []section

	if text := cmp.Or(cfg.help, cfg.description); text != "" {
		sections = append(sections, section{body: render.Paragraph{Text: text}})
	}

	usage := cmd.FullName()
	if cmd.HasSubCommands() {
		usage += " <command>"
	}
	if len(def.options) > 0 {
		usage += " [options]"
	}
	if len(def.arguments) > 0 {
		usage += " " + argumentsLabel(def.arguments)
	}
	sections = append(sections, section{title: "Usage", body: lines{text: []string{usage}, indent: 2}})

	if len(cfg.aliases) > 0 {
		sections = append(sections, section{
			title: "Aliases",
			body:  lines{text: []string{strings.Join(cfg.aliases, ", ")}, indent: 2},
		})
	}
	if t := argumentsTable(def.arguments); t != nil {
		sections = append(sections, section{title: "Arguments", body: t})
	}

	var own, inherited []*Option
	for _, opt := range def.options {
		if cfg.definition.HasOption(opt.Name) {
			own = append(own, opt)
		} else {
			inherited = append(inherited, opt)
		}
	}
	if t := optionsTable(own); t != nil {
		sections = append(sections, section{title: "Options", body: t})
	}
	if t := optionsTable(inherited); t != nil {
		sections = append(sections, section{title: "Global Options", body: t})
	}

	if t := commandsTable(cmd.subCommands); t != nil {
		sections = append(sections, section{title: "Available Commands", body: t})
		hint := fmt.Sprintf("Use %q for more information about a command.", cmd.FullName()+" <command> --help")
		sections = append(sections, section{body: lines{text: []string{hint}}})
	}
	return sections
}

// commandsTable lists visible commands sorted by name, or returns nil if there are none.
func commandsTable(commands *CommandCollection) *render.Table {
	t := &render.Table{Indent: 2}
	for _, cmd := range commands.Sorted() {
		if cmd.config.hidden {
			continue
		}
		t.AddRow(cmd.Name(), cmd.config.description)
	}
	if len(t.Rows) == 0 {
		return nil
	}
	return t
}

func argumentsTable(args []*Argument) *render.Table {
	if len(args) == 0 {
		return nil
	}
	t := &render.Table{Indent: 2}
	for _, arg := range args {
		desc := arg.Description
		switch {
		case arg.IsRequired():
			desc = withSuffix(desc, "(required)")
		case arg.IsMultiple() && len(arg.Defaults) > 0:
			desc = withSuffix(desc, "(default: "+strings.Join(arg.Defaults, ", ")+")")
		case arg.Default != "":
			desc = withSuffix(desc, "(default: "+arg.Default+")")
		}
		t.AddRow(arg.Name, desc)
	}
	return t
}

func optionsTable(opts []*Option) *render.Table {
	if len(opts) == 0 {
		return nil
	}
	t := &render.Table{Indent: 2}
	for _, opt := range opts {
		desc := opt.Description
		switch {
		case opt.IsRequired():
			desc = withSuffix(desc, "(required)")
		case opt.Mode == ValueMultiple && len(opt.Defaults) > 0:
			desc = withSuffix(desc, "(default: "+strings.Join(opt.Defaults, ", ")+")")
		case opt.Default != "":
			desc = withSuffix(desc, "(default: "+opt.Default+")")
		}
		t.AddRow(optionLabel(opt), desc)
	}
	return t
}

// optionLabel formats an option the way it is typed, for example "-o, --output <value>".
func optionLabel(opt *Option) string {
	label := "    --" + opt.Name
	if opt.ShortName != "" {
		label = "-" + opt.ShortName + ", --" + opt.Name
	}
	switch opt.Mode {
	case ValueOptional:
		label += "[=<value>]"
	case ValueRequired:
		label += " <value>"
	case ValueMultiple:
		label += " <value>..."
	}
	return label
}

// argumentsLabel formats arguments for a usage line: <required> [<optional>] <multiple>...
func argumentsLabel(args []*Argument) string {
	labels := make([]string, 0, len(args))
	for _, arg := range args {
		label := "<" + arg.Name + ">"
		if arg.IsMultiple() {
			label += "..."
		}
		if !arg.IsRequired() {
			label = "[" + label + "]"
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, " ")
}

func withSuffix(desc, suffix string) string {
	if desc == "" {
		return suffix
	}
	return desc + " " + suffix
}
