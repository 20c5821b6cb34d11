package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-copter/internal/config"
)

var flagConfigOutput string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the built-in game config",
	Long: `Print the embedded default configuration as YAML.

Edit a copy and pass it back with --config, or place it at
~/.arcade/configs/copter.yaml to make it the default.

Examples:
  copter config
  copter config --output ./copter.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVarP(&flagConfigOutput, "output", "o", "", "Write to this file instead of stdout")
}

// writeDefaults copies the embedded defaults to w.
func writeDefaults(w io.Writer) error {
	data := config.GetDefaultYAML(gameID)
	if data == nil {
		return fmt.Errorf("no built-in config for %q", gameID)
	}
	_, err := w.Write(data)
	return err
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagConfigOutput == "" {
		if err := writeDefaults(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := os.MkdirAll(filepath.Dir(flagConfigOutput), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}
	f, err := os.Create(flagConfigOutput)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", flagConfigOutput, err)
		os.Exit(1)
	}
	if err := writeDefaults(f); err != nil {
		f.Close()
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagConfigOutput, err)
		os.Exit(1)
	}
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", flagConfigOutput, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagConfigOutput)
}
