package main

import (
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tipee-sa/repr"
	"github.com/tipee-sa/repr/internal/expr"
	"github.com/tipee-sa/repr/internal/loader"
	"github.com/tipee-sa/repr/internal/logger"
)

type rootOptions struct {
	verbose     bool
	configFile  string
	expression  string
	maxDepth    int
	width       int
	table       bool
	logLevel    int
	inputFormat formatFlag
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{inputFormat: formatFlag{format: loader.Auto}}

	cmd := &cobra.Command{
		Use:   "repr [file]",
		Short: "Render a JSON, YAML or TOML document as human-readable text",
		Long: `repr decodes a document (from a file or stdin) and prints it with the repr
renderer: maps as {key=value, ...}, lists as [a, b], nulls as <null>.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "verbose rendering (qualified type names, full time precision)")
	flags.StringVar(&opts.configFile, "config-file", "", "path to a YAML renderer config file")
	flags.StringVarP(&opts.expression, "expression", "e", "", "CEL expression using '_' as root, e.g. '_.items[0]'")
	flags.IntVar(&opts.maxDepth, "max-depth", 0, "maximum nesting depth (default 32)")
	flags.IntVar(&opts.width, "width", 0, "truncate strings wider than this many columns (default: terminal width, 0 disables)")
	flags.BoolVar(&opts.table, "table", false, "render lists of objects as tables")
	flags.IntVar(&opts.logLevel, "log-level", 0, "log verbosity on stderr (0 info, 1-2 debug)")
	flags.Var(&opts.inputFormat, "input-format", "input format: auto|json|yaml|toml (default from file extension)")
	return cmd
}

func run(cmd *cobra.Command, opts *rootOptions, args []string) error {
	log := logger.New(cmd.ErrOrStderr(), opts.logLevel)
	defer func() { _ = log.Sync() }()

	renderOpts := []repr.Option{repr.WithLogger(log.Logger)}
	if opts.configFile != "" {
		cfg, err := repr.LoadConfigFile(opts.configFile)
		if err != nil {
			return err
		}
		renderOpts = append(renderOpts, repr.WithConfig(cfg))
	}
	if opts.maxDepth > 0 {
		renderOpts = append(renderOpts, repr.WithMaxDepth(opts.maxDepth))
	}
	if width, ok := outputWidth(cmd, opts); ok {
		renderOpts = append(renderOpts, repr.WithMaxWidth(width))
	}

	r := repr.New(renderOpts...)
	if opts.table {
		if err := r.Register(repr.NewTableComponent(reflect.TypeFor[[]any]())); err != nil {
			return err
		}
	}

	data, err := readInput(cmd, opts, args)
	if err != nil {
		return err
	}

	if opts.expression != "" {
		ev, err := expr.NewEvaluator()
		if err != nil {
			return err
		}
		if data, err = ev.Evaluate(opts.expression, data); err != nil {
			return err
		}
		log.V(1).Info("expression evaluated", "expression", opts.expression)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), r.RenderVerbose(data, opts.verbose))
	return err
}

func readInput(cmd *cobra.Command, opts *rootOptions, args []string) (any, error) {
	format := opts.inputFormat.format
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, fmt.Errorf("error opening input: %w", err)
		}
		defer f.Close()
		in = f
		if !cmd.Flags().Changed("input-format") {
			format = loader.FormatFromPath(args[0])
		}
	}
	return loader.Decode(in, format)
}

// outputWidth returns the truncation width: the --width flag when set,
// otherwise the terminal width when writing to a terminal.
func outputWidth(cmd *cobra.Command, opts *rootOptions) (int, bool) {
	if cmd.Flags().Changed("width") {
		return opts.width, true
	}
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}
