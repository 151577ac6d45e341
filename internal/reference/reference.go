// Package reference produces the Tailwind stylesheet that input CSS is
// matched against.
package reference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/yacobolo/csstw/internal/theme"
)

// Compiler turns preprocessor input and a theme into compiled CSS.
type Compiler interface {
	Compile(ctx context.Context, input string, t *theme.Theme) (string, error)
}

// Placeholders substituted in ExecCompiler arguments.
const (
	InputPlaceholder  = "{input}"
	OutputPlaceholder = "{output}"
	ConfigPlaceholder = "{config}"
)

// DefaultCommand runs the Tailwind CLI through npx.
var DefaultCommand = []string{
	"npx", "tailwindcss",
	"-i", InputPlaceholder,
	"-o", OutputPlaceholder,
	"-c", ConfigPlaceholder,
}

const (
	inputFile  = "input.css"
	outputFile = "output.css"
	configFile = "tailwind.config.js"
)

// ExecCompiler runs an external Tailwind build in a scratch directory.
type ExecCompiler struct {
	// Command is the program and its arguments. Placeholders are replaced
	// with absolute paths inside the scratch directory.
	Command []string
	// Dir is the working directory of the command, usually the project
	// root where node_modules lives. Empty means the current directory.
	Dir string

	log *zap.Logger
}

// NewExecCompiler returns a compiler running command, or DefaultCommand when
// command is empty.
func NewExecCompiler(command []string, log *zap.Logger) *ExecCompiler {
	if len(command) == 0 {
		command = DefaultCommand
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecCompiler{Command: command, log: log.Named("compiler")}
}

// Compile writes input and a config exposing t, runs the command, and returns
// the produced stylesheet.
func (c *ExecCompiler) Compile(ctx context.Context, input string, t *theme.Theme) (string, error) {
	if len(c.Command) == 0 {
		return "", errors.New("compile reference: empty command")
	}

	dir, err := os.MkdirTemp("", "csstw-")
	if err != nil {
		return "", fmt.Errorf("compile reference: %w", err)
	}
	defer os.RemoveAll(dir)

	paths := map[string]string{
		InputPlaceholder:  filepath.Join(dir, inputFile),
		OutputPlaceholder: filepath.Join(dir, outputFile),
		ConfigPlaceholder: filepath.Join(dir, configFile),
	}

	config, err := Config(t)
	if err != nil {
		return "", fmt.Errorf("compile reference: %w", err)
	}
	if err := os.WriteFile(paths[InputPlaceholder], []byte(input), 0o600); err != nil {
		return "", fmt.Errorf("compile reference: %w", err)
	}
	if err := os.WriteFile(paths[ConfigPlaceholder], config, 0o600); err != nil {
		return "", fmt.Errorf("compile reference: %w", err)
	}

	args := make([]string, len(c.Command))
	for i, arg := range c.Command {
		for placeholder, path := range paths {
			arg = strings.ReplaceAll(arg, placeholder, path)
		}
		args[i] = arg
	}

	// #nosec G204 - command comes from trusted configuration
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = c.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	c.log.Debug("running tailwind", zap.Strings("args", args), zap.String("dir", dir))
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("compile reference: %w: %s", err, msg)
		}
		return "", fmt.Errorf("compile reference: %w", err)
	}

	out, err := os.ReadFile(paths[OutputPlaceholder])
	if err != nil {
		return "", fmt.Errorf("compile reference: read output: %w", err)
	}
	c.log.Debug("compiled reference", zap.Int("bytes", len(out)))
	return string(out), nil
}

// Config renders t as a tailwind.config.js module.
func Config(t *theme.Theme) ([]byte, error) {
	if t == nil {
		t = theme.Default()
	}
	data, err := json.MarshalIndent(map[string]any{"theme": t}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("module.exports = ")
	buf.Write(data)
	buf.WriteString(";\n")
	return buf.Bytes(), nil
}

// FileCompiler returns a stylesheet compiled ahead of time. The input and
// theme are ignored.
type FileCompiler struct {
	Path string
}

// Compile reads the stylesheet at c.Path.
func (c FileCompiler) Compile(ctx context.Context, _ string, _ *theme.Theme) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", fmt.Errorf("read reference: %w", err)
	}
	return string(data), nil
}
