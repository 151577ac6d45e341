package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/yacobolo/csstw"
	"github.com/yacobolo/csstw/internal/extract"
	"github.com/yacobolo/csstw/internal/reference"
)

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".csstw.yaml"
	}

	// Load config file and env vars
	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	}), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers)
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (CSSTW_* prefix)
	if err := k.Load(env.Provider("CSSTW_", ".", func(s string) string {
		// CSSTW_CONVERT_REFERENCE -> convert.reference
		// CSSTW_VERBOSE -> verbose
		// Multi-word keys such as color-delta are set through the config file.
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CSSTW_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// convertConfig is everything the convert command needs.
type convertConfig struct {
	Options      csstw.Options
	ThemeFile    string
	Reference    string
	Compiler     []string
	Source       string
	Includes     []string
	OutputFormat csstw.OutputFormat
	Strict       bool
	Quiet        bool
	Color        bool
	Verbose      bool
}

// buildConvertConfig constructs the convert settings from koanf state.
func buildConvertConfig() (convertConfig, error) {
	defaults := csstw.DefaultOptions()

	config := convertConfig{
		ThemeFile:    getStringWithFallback("theme", "convert.theme", ""),
		Reference:    getStringWithFallback("reference", "convert.reference", ""),
		Source:       getStringWithFallback("source", "convert.source", "."),
		OutputFormat: csstw.DetermineOutputFormat(getStringWithFallback("output-format", "convert.output-format", "json")),
		Strict:       getBoolWithFallback("strict", "convert.strict", false),
		Quiet:        getBoolWithFallback("quiet", "quiet", false),
		Color:        getBoolWithFallback("color", "color", false),
		Verbose:      getBoolWithFallback("verbose", "verbose", false),
		Compiler:     getStringsWithFallback("compiler", "convert.compiler", reference.DefaultCommand),
		Includes:     getStringsWithFallback("include", "convert.include", nil),
	}

	config.Options = csstw.Options{
		ColorDelta:        getFloat64WithFallback("color-delta", "convert.color-delta", defaults.ColorDelta),
		FullRound:         getFloat64WithFallback("full-round", "convert.full-round", defaults.FullRound),
		Rem:               getFloat64WithFallback("rem", "convert.rem", defaults.Rem),
		Em:                getFloat64WithFallback("em", "convert.em", defaults.Em),
		PreprocessorInput: getStringWithFallback("preprocessor-input", "convert.preprocessor-input", defaults.PreprocessorInput),
		Denylist:          getStringsWithFallback("denylist", "convert.denylist", extract.DefaultDenylist),
		Theme:             defaults.Theme,
	}

	if config.ThemeFile != "" {
		th, err := csstw.LoadTheme(config.ThemeFile)
		if err != nil {
			return config, err
		}
		config.Options.Theme = th
	}

	return config, nil
}

// newLogger builds the CLI logger: debug level when verbose, warnings
// otherwise, always on stderr so results on stdout stay parseable.
func newLogger(verbose bool) *zap.Logger {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	if isatty.IsTerminal(os.Stderr.Fd()) {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		ec.TimeKey = zapcore.OmitKey
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), level)
	return zap.New(core)
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	if v := k.Strings(flagKey); len(v) > 0 {
		return v
	}
	if v := k.Strings(configKey); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag key first, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if k.Exists(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
