package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yacobolo/csstw"
	"github.com/yacobolo/csstw/internal/reference"
)

// errIncomplete makes the process exit 1 without an error message.
var errIncomplete = errors.New("some declarations have no matching class")

const stdinPath = "-"

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert CSS files into Tailwind classes",
	Long: `Match every rule of the given CSS files against a Tailwind stylesheet.
Files come from the arguments and from --include patterns under --source.
With neither, the stylesheet is read from stdin.

The Tailwind stylesheet is read from --reference, or compiled by running
--compiler over the preprocessor input with the configured theme.`,
	Args: cobra.ArbitraryArgs,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runConvert,
}

func init() {
	addConvertFlags(convertCmd)
}

func addConvertFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("reference", "", "Pre-compiled Tailwind stylesheet (skips the compiler)")
	f.StringSlice("compiler", reference.DefaultCommand, "Command compiling the reference stylesheet")
	f.String("theme", "", "YAML theme file layered over the default Tailwind theme")
	f.Float64("color-delta", 2, "RGBA distance below which colors are equal")
	f.Float64("full-round", 9999, "Border radius standing for fully rounded corners")
	f.Float64("rem", 16, "Pixels per rem")
	f.Float64("em", 16, "Pixels per em")
	f.String("preprocessor-input", csstw.DefaultPreprocessorInput, "CSS fed to the reference compiler")
	f.StringSlice("denylist", nil, "Reference selector substrings to ignore")
	f.String("source", ".", "Directory --include patterns are relative to")
	f.StringSlice("include", nil, "Glob patterns of CSS files to convert")
	f.String("output-format", "json", "Output format: json|text|summary")
	f.Bool("strict", false, "Exit 1 when any declaration has no matching class")
}

func runConvert(cmd *cobra.Command, args []string) error {
	config, err := buildConvertConfig()
	if err != nil {
		return err
	}

	log := newLogger(config.Verbose)
	defer func() { _ = log.Sync() }()

	paths, err := inputPaths(config, args, log)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	converter := csstw.New(config.Options, log)

	var compiler csstw.Compiler
	if config.Reference != "" {
		compiler = csstw.FileCompiler{Path: config.Reference}
	} else {
		compiler = csstw.NewExecCompiler(config.Compiler, log)
	}
	ref, err := converter.CompileReference(ctx, compiler)
	if err != nil {
		return err
	}

	var files []csstw.FileResult
	if len(paths) == 0 {
		res, err := converter.ConvertReader(ctx, stdinPath, cmd.InOrStdin(), ref)
		if err != nil {
			return err
		}
		files = []csstw.FileResult{res}
	} else {
		files, err = converter.ConvertFiles(ctx, paths, ref)
		if err != nil {
			return err
		}
	}

	if !config.Quiet {
		if err := csstw.WriteOutput(cmd.OutOrStdout(), files, config.OutputFormat, config.Color); err != nil {
			return err
		}
	}

	if config.Strict {
		for _, f := range files {
			for _, r := range f.Results {
				if !r.Covered() {
					return errIncomplete
				}
			}
		}
	}
	return nil
}

// inputPaths lists the files named on the command line followed by the files
// matching the include patterns. A lone "-" or no input at all means stdin.
func inputPaths(config convertConfig, args []string, log *zap.Logger) ([]string, error) {
	if len(args) == 1 && args[0] == stdinPath {
		return nil, nil
	}

	paths := append([]string(nil), args...)
	if len(config.Includes) > 0 {
		found, stats, err := csstw.ScanFiles(config.Source, config.Includes)
		if err != nil {
			return nil, err
		}
		log.Debug("Scanned input files",
			zap.Int("discovered", stats.FilesDiscovered),
			zap.Int("skipped", stats.FilesSkipped))
		paths = append(paths, found...)
	}

	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	if len(out) == 0 && len(config.Includes) > 0 {
		return nil, errors.New("no input files matched")
	}
	return out, nil
}
