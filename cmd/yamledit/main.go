// Package main provides the CLI entry point for yamledit, a tool that
// applies RFC 6902 JSON Patch operations to YAML documents while
// preserving comments, key order, and formatting.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"go.jacobcolvin.com/yamledit"
	"go.jacobcolvin.com/yamledit/jsonpatch"
	"go.jacobcolvin.com/yamledit/log"
	"go.jacobcolvin.com/yamledit/profiler"
	"go.jacobcolvin.com/yamledit/value"
	"go.jacobcolvin.com/yamledit/version"
)

// opFlags accumulates CLI-supplied patch operations into a single
// ordered slice, in the order pflag parses them across --add/--remove/
// --replace/--move/--copy/--test/--patch-file regardless of which flag
// each one came from -- mirroring dadit's argparse accumulator action.
type opFlags struct {
	ops *[]jsonpatch.Operation
}

func (o opFlags) append(op jsonpatch.Operation) {
	*o.ops = append(*o.ops, op)
}

// pathValueFlag implements [pflag.Value] for flags of the form
// "/json/pointer=value", appending the parsed operation on every Set.
type pathValueFlag struct {
	opFlags
	op jsonpatch.Op
}

func (f *pathValueFlag) String() string { return "" }
func (f *pathValueFlag) Type() string   { return "path=value" }

func (f *pathValueFlag) Set(s string) error {
	pathText, valueText, ok := splitOnce(s, '=')
	if !ok {
		return fmt.Errorf("%w: expected path=value, got %q", jsonpatch.ErrMalformedPatch, s)
	}

	path, err := jsonpatch.ParsePointer(pathText)
	if err != nil {
		return err
	}

	v, err := parseValue(valueText)
	if err != nil {
		return err
	}

	f.append(jsonpatch.Operation{Op: f.op, Path: path, Value: v})

	return nil
}

// pathPathFlag implements [pflag.Value] for move/copy flags of the form
// "/from/pointer=/to/pointer".
type pathPathFlag struct {
	opFlags
	op jsonpatch.Op
}

func (f *pathPathFlag) String() string { return "" }
func (f *pathPathFlag) Type() string   { return "from=path" }

func (f *pathPathFlag) Set(s string) error {
	fromText, pathText, ok := splitOnce(s, '=')
	if !ok {
		return fmt.Errorf("%w: expected from=path, got %q", jsonpatch.ErrMalformedPatch, s)
	}

	from, err := jsonpatch.ParsePointer(fromText)
	if err != nil {
		return err
	}

	path, err := jsonpatch.ParsePointer(pathText)
	if err != nil {
		return err
	}

	f.append(jsonpatch.Operation{Op: f.op, From: from, Path: path})

	return nil
}

// pathOnlyFlag implements [pflag.Value] for --remove.
type pathOnlyFlag struct {
	opFlags
}

func (f *pathOnlyFlag) String() string { return "" }
func (f *pathOnlyFlag) Type() string   { return "path" }

func (f *pathOnlyFlag) Set(s string) error {
	path, err := jsonpatch.ParsePointer(s)
	if err != nil {
		return err
	}

	f.append(jsonpatch.Operation{Op: jsonpatch.OpRemove, Path: path})

	return nil
}

// patchFileFlag implements [pflag.Value] for --patch-file, which loads and
// appends an entire RFC 6902 document's operations in one step.
type patchFileFlag struct {
	opFlags
}

func (f *patchFileFlag) String() string { return "" }
func (f *patchFileFlag) Type() string   { return "file" }

func (f *patchFileFlag) Set(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", yamledit.ErrReadInput, err)
	}

	ops, err := jsonpatch.ParsePatch(data)
	if err != nil {
		return err
	}

	*f.ops = append(*f.ops, ops...)

	return nil
}

func splitOnce(s string, sep byte) (before, after string, ok bool) {
	for i := range len(s) {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}

	return "", "", false
}

// parseValue parses a CLI-supplied value, honoring the string:/int:/
// float:/bool:/json: prefixes -- each forcing that type regardless of
// what value.Decode would have inferred from the bare text -- and
// otherwise treating the text as a JSON literal.
func parseValue(text string) (value.Value, error) {
	if rest, ok := strings.CutPrefix(text, "string:"); ok {
		return value.NewString(rest), nil
	}

	if rest, ok := strings.CutPrefix(text, "int:"); ok {
		i, err := strconv.ParseInt(rest, 10, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", value.ErrDecode, err)
		}

		return value.NewInt(i), nil
	}

	if rest, ok := strings.CutPrefix(text, "float:"); ok {
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", value.ErrDecode, err)
		}

		return value.NewFloat(f), nil
	}

	if rest, ok := strings.CutPrefix(text, "bool:"); ok {
		b, err := strconv.ParseBool(rest)
		if err != nil {
			return value.Value{}, fmt.Errorf("%w: %w", value.ErrDecode, err)
		}

		return value.NewBool(b), nil
	}

	if rest, ok := strings.CutPrefix(text, "json:"); ok {
		return value.Decode([]byte(rest))
	}

	return value.Decode([]byte(text))
}

func main() {
	cfg := yamledit.NewConfig()
	logCfg := log.NewConfig()
	prof := profiler.New()

	var ops []jsonpatch.Operation

	rootCmd := &cobra.Command{
		Use:   "yamledit [flags] [source] [destination]",
		Short: "Apply RFC 6902 JSON Patch operations to a YAML document",
		Long: `yamledit applies RFC 6902 JSON Patch operations to a YAML document by
editing its parsed structure directly, preserving comments, key order,
indentation, and block/flow style everywhere the patch doesn't touch.

Load operations from a file with --patch-file, or specify them individually
with --add, --remove, --replace, --move, --copy, --test. JSON Pointers use
/ as a separator and start with /. Values are JSON unless a prefix is used
(string:, int:, float:, bool:).`,
		Args:          cobra.MaximumNArgs(2),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return prof.Start()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, logCfg, ops, args)
		},
	}

	rootCmd.Version = version.Version

	flags := opFlags{ops: &ops}

	rootCmd.Flags().Var(&pathValueFlag{opFlags: flags, op: jsonpatch.OpAdd}, "add", "add new value at path (path=value)")
	rootCmd.Flags().Var(&pathValueFlag{opFlags: flags, op: jsonpatch.OpReplace}, "replace", "replace value at path with new value (path=value)")
	rootCmd.Flags().Var(&pathValueFlag{opFlags: flags, op: jsonpatch.OpTest}, "test", "test value at path equals value (path=value)")
	rootCmd.Flags().Var(&pathOnlyFlag{opFlags: flags}, "remove", "remove value at path")
	rootCmd.Flags().Var(&pathPathFlag{opFlags: flags, op: jsonpatch.OpMove}, "move", "move value from from-path to to-path (from=path)")
	rootCmd.Flags().Var(&pathPathFlag{opFlags: flags, op: jsonpatch.OpCopy}, "copy", "copy value from from-path to to-path (from=path)")
	rootCmd.Flags().Var(&patchFileFlag{opFlags: flags}, "patch-file", "load JSON patch operations from a file")

	cfg.RegisterFlags(rootCmd.Flags())
	logCfg.RegisterFlags(rootCmd.Flags())
	prof.RegisterFlags(rootCmd.Flags())

	for _, regErr := range []error{
		cfg.RegisterCompletions(rootCmd),
		logCfg.RegisterCompletions(rootCmd),
	} {
		if regErr != nil {
			fmt.Fprintf(os.Stderr, "register completions: %v\n", regErr)
		}
	}

	runErr := rootCmd.Execute()

	if stopErr := prof.Stop(); stopErr != nil {
		fmt.Fprintf(os.Stderr, "stopping profiler: %v\n", stopErr)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "%v\n", runErr)
		os.Exit(1)
	}
}

func run(cfg *yamledit.Config, logCfg *log.Config, ops []jsonpatch.Operation, args []string) error {
	handler, err := logCfg.NewHandler(os.Stderr)
	if err != nil {
		return err
	}

	logger := slog.New(handler)

	applier, err := cfg.NewApplier()
	if err != nil {
		return err
	}

	source := os.Stdin

	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("%w: %w", yamledit.ErrReadInput, err)
		}
		defer f.Close()

		source = f
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return fmt.Errorf("%w: %w", yamledit.ErrReadInput, err)
	}

	logger.Debug("applying patch", slog.Int("operations", len(ops)))

	out, err := applier.Apply(data, ops)
	if err != nil {
		return err
	}

	destination := os.Stdout

	if len(args) > 1 && args[1] != "-" {
		f, err := os.Create(args[1])
		if err != nil {
			return fmt.Errorf("%w: %w", yamledit.ErrWriteOutput, err)
		}
		defer f.Close()

		destination = f
	}

	if _, err := destination.Write(out); err != nil {
		return fmt.Errorf("%w: %w", yamledit.ErrWriteOutput, err)
	}

	return nil
}
