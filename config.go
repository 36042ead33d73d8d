package yamledit

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"go.jacobcolvin.com/yamledit/jsonpatch"
)

// ErrUnsupportedFormat indicates [Config.Format] names a source format
// this module has no Applier for.
var ErrUnsupportedFormat = fmt.Errorf("yamledit: unsupported format")

// SupportedFormats lists the source formats an [Applier] can be built
// for. Only "yaml" is implemented today; the slice exists so the CLI's
// --format completion and Config's validation have a single source of
// truth to grow from.
var SupportedFormats = []string{"yaml"}

// Flags holds CLI flag names for applier configuration, allowing callers
// to customize flag names while keeping sensible defaults via [NewConfig].
type Flags struct {
	Format string
}

// Config holds CLI flag values for applier configuration.
//
// Create instances with [NewConfig] and register CLI flags with
// [Config.RegisterFlags]. Use [Config.NewApplier] to create an [Applier].
type Config struct {
	Flags  Flags
	Format string
}

// NewConfig returns a new [Config] with default flag names.
func NewConfig() *Config {
	f := Flags{
		Format: "format",
	}

	return &Config{Flags: f, Format: "yaml"}
}

// RegisterFlags adds applier flags to the given [*pflag.FlagSet].
func (c *Config) RegisterFlags(flags *pflag.FlagSet) {
	flags.StringVar(&c.Format, c.Flags.Format, "yaml",
		fmt.Sprintf("source format, one of: %v", SupportedFormats))
}

// RegisterCompletions registers shell completions for applier flags on
// cmd.
func (c *Config) RegisterCompletions(cmd *cobra.Command) error {
	err := cmd.RegisterFlagCompletionFunc(c.Flags.Format,
		cobra.FixedCompletions(SupportedFormats, cobra.ShellCompDirectiveNoFileComp))
	if err != nil {
		return fmt.Errorf("registering %s completion: %w", c.Flags.Format, err)
	}

	return nil
}

// NewApplier validates c.Format and returns an [Applier] for it.
func (c *Config) NewApplier() (*Applier, error) {
	for _, f := range SupportedFormats {
		if c.Format == f {
			return &Applier{format: c.Format}, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, c.Format)
}

// Applier applies a patch against a source document in the format it was
// built for.
type Applier struct {
	format string
}

// Apply runs [ApplyPatch] against source.
func (a *Applier) Apply(source []byte, ops []jsonpatch.Operation) ([]byte, error) {
	return ApplyPatch(source, ops)
}
