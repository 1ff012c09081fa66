package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command is one shelf subcommand: its flags, help text and body.
type Command struct {
	// Flags holds command-specific flags. A fresh FlagSet is built for every
	// invocation so values never leak between shell lines.
	Flags *flag.FlagSet

	// Usage follows "shelf" in help output and starts with the command name.
	// Examples: "show <id>", "add <name> --expires <date> [flags]".
	Usage string

	// Short is the one-line description in the command listing.
	Short string

	// Long is shown by "shelf <cmd> --help". Falls back to Short.
	Long string

	// NoLogin marks commands that run without passing the secret check.
	NoLogin bool

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")

	return name
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-34s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "shelf <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: shelf", c.Usage)
	o.Println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	o.Println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		o.Println()
		o.Println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		o.Printf("%s", buf.String())
	}
}

// Run parses flags and executes the command. Returns exit code.
// Errors are printed here so output ordering stays consistent.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)

			return 0
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln("Run 'shelf " + c.Name() + " --help' for usage.")

		return 1
	}

	err = c.Exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	return 0
}
