package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .csstw.yaml config file",
	Long:  `Create a .csstw.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".csstw.yaml"); err == nil && !force {
			return fmt.Errorf(".csstw.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".csstw.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created .csstw.yaml")
		return nil
	},
}

const defaultConfig = `# csstw configuration
# Docs: https://github.com/yacobolo/csstw

# Shared settings
verbose: false
color: false

# Conversion settings
convert:
  # Pre-compiled Tailwind stylesheet. When empty the compiler below runs.
  reference: ""
  compiler: ["npx", "tailwindcss", "-i", "{input}", "-o", "{output}", "-c", "{config}"]
  # YAML theme file: theme.<scale> replaces a scale, theme.extend.<scale> adds to it
  theme: ""
  source: .
  include:
    - "**/*.css"
  color-delta: 2
  full-round: 9999
  rem: 16
  em: 16
  output-format: json      # json | text | summary
  strict: false
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
