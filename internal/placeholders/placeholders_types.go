package placeholders

// Resolver produces the value of one placeholder.
type Resolver func() (string, error)

type modifierResolver func(input string, args []string) (string, error)

type modifier struct {
	name string
	args []string
}

// placeholder is one {{ name | modifier(args) }} occurrence in a string.
type placeholder struct {
	raw       string
	name      string
	modifiers []modifier
}
