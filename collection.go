package console

import (
	"cmp"
	"slices"
)

// CommandCollection is a name-indexed set of commands. Lookups accept names and aliases and are
// case-sensitive; iteration follows insertion order.
type CommandCollection struct {
	commands []*Command
	index    map[string]*Command
}

// NewCommandCollection returns an empty collection.
func NewCommandCollection(commands ...*Command) *CommandCollection {
	c := &CommandCollection{index: make(map[string]*Command)}
	for _, cmd := range commands {
		// Panics only on programming errors: callers pass distinct commands.
		if err := c.Add(cmd); err != nil {
			panic(err)
		}
	}
	return c
}

// Add inserts cmd. It returns a [DuplicateNameError] if the name or an alias is already taken.
func (c *CommandCollection) Add(cmd *Command) error {
	names := append([]string{cmd.Name()}, cmd.config.aliases...)
	for _, name := range names {
		if _, ok := c.index[name]; ok {
			return &DuplicateNameError{Kind: "command", Name: name}
		}
	}
	for _, name := range names {
		c.index[name] = cmd
	}
	c.commands = append(c.commands, cmd)
	return nil
}

// Get returns the command with the given name or alias, or a [NotFoundError].
func (c *CommandCollection) Get(name string) (*Command, error) {
	if cmd, ok := c.index[name]; ok {
		return cmd, nil
	}
	return nil, &NotFoundError{Kind: "command", Name: name}
}

// Has reports whether a command with the given name or alias exists.
func (c *CommandCollection) Has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Len returns the number of commands.
func (c *CommandCollection) Len() int { return len(c.commands) }

// IsEmpty reports whether the collection holds no commands.
func (c *CommandCollection) IsEmpty() bool { return len(c.commands) == 0 }

// All returns the commands in insertion order.
func (c *CommandCollection) All() []*Command { return slices.Clone(c.commands) }

// Names returns the command names in insertion order, without aliases.
func (c *CommandCollection) Names() []string {
	names := make([]string, 0, len(c.commands))
	for _, cmd := range c.commands {
		names = append(names, cmd.Name())
	}
	return names
}

// Sorted returns the commands sorted by name, for listings.
func (c *CommandCollection) Sorted() []*Command {
	sorted := slices.Clone(c.commands)
	slices.SortFunc(sorted, func(a, b *Command) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return sorted
}
