// Package manifest declares a console application in a file instead of code. Manifests are
// written in HCL or TOML and describe the same tree: the application, its global options and
// arguments, and nested commands. Handlers cannot be expressed in a file, so commands name them
// and [Manifest.Builder] looks the names up in a [Handlers] registry.
//
// An HCL manifest looks like this:
//
//	name    = "todo"
//	version = "1.0.0"
//
//	option "verbose" {
//	  short       = "v"
//	  description = "Enable verbose output"
//	}
//
//	command "add" {
//	  description = "Add a task"
//	  handler     = "add"
//
//	  argument "title" {
//	    required = true
//	  }
//	  option "tag" {
//	    mode    = "multiple"
//	    default = ["inbox"]
//	  }
//	}
package manifest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/mfridman/console/internal/ctxlog"
)

// Manifest is the decoded declaration of an application.
type Manifest struct {
	Name            string      `hcl:"name" toml:"name"`
	DisplayName     string      `hcl:"display_name,optional" toml:"display_name"`
	Version         string      `hcl:"version,optional" toml:"version"`
	Description     string      `hcl:"description,optional" toml:"description"`
	DefaultCommand  string      `hcl:"default_command,optional" toml:"default_command"`
	MaxCommandDepth int         `hcl:"max_command_depth,optional" toml:"max_command_depth"`
	Options         []*Option   `hcl:"option,block" toml:"option"`
	Arguments       []*Argument `hcl:"argument,block" toml:"argument"`
	Commands        []*Command  `hcl:"command,block" toml:"command"`
}

// Command declares a command and, recursively, its sub-commands.
type Command struct {
	Name        string   `hcl:"name,label" toml:"name"`
	Description string   `hcl:"description,optional" toml:"description"`
	Help        string   `hcl:"help,optional" toml:"help"`
	Aliases     []string `hcl:"aliases,optional" toml:"aliases"`
	Hidden      bool     `hcl:"hidden,optional" toml:"hidden"`
	// Inherit defaults to true when omitted.
	Inherit *bool `hcl:"inherit,optional" toml:"inherit"`
	// Handler names an entry of the [Handlers] registry. Empty means the command runs the
	// closest handler of its parents.
	Handler   string      `hcl:"handler,optional" toml:"handler"`
	Options   []*Option   `hcl:"option,block" toml:"option"`
	Arguments []*Argument `hcl:"argument,block" toml:"argument"`
	Commands  []*Command  `hcl:"command,block" toml:"command"`
}

// Option declares an option. Mode is one of "none" (the default), "optional", "required" or
// "multiple".
type Option struct {
	Name        string `hcl:"name,label" toml:"name"`
	Short       string `hcl:"short,optional" toml:"short"`
	Mode        string `hcl:"mode,optional" toml:"mode"`
	Required    bool   `hcl:"required,optional" toml:"required"`
	Description string `hcl:"description,optional" toml:"description"`
	// Default is a string, number or bool, or a list of them for multi-valued options.
	Default *cty.Value `hcl:"default,optional" toml:"-"`
	// RawDefault receives the default from TOML before it is converted into Default.
	RawDefault any `toml:"default"`
}

// Argument declares a positional argument.
type Argument struct {
	Name        string     `hcl:"name,label" toml:"name"`
	Description string     `hcl:"description,optional" toml:"description"`
	Required    bool       `hcl:"required,optional" toml:"required"`
	Multiple    bool       `hcl:"multiple,optional" toml:"multiple"`
	Default     *cty.Value `hcl:"default,optional" toml:"-"`
	RawDefault  any        `toml:"default"`
}

// Load reads and decodes the manifest at path. The format follows the file extension: ".hcl" or
// ".toml".
func Load(ctx context.Context, path string) (*Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading manifest", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := Parse(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded manifest", "path", path, "name", m.Name, "commands", len(m.Commands))
	return m, nil
}

// Parse decodes src, choosing the format from the extension of filename.
func Parse(filename string, src []byte) (*Manifest, error) {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".hcl":
		return ParseHCL(filename, src)
	case ".toml":
		return ParseTOML(src)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q: want .hcl or .toml", ext)
	}
}
