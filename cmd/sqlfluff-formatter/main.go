package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	sqlfluff "github.com/oboki/sqlfluff-formatter"
	"github.com/oboki/sqlfluff-formatter/internal/config"
)

var (
	flagSettings string
	flagCheck    bool
	version      = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:     "sqlfluff-formatter",
	Short:   "Format and lint SQL files through the external sqlfluff tool",
	Version: version,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format SQL files in-place",
	Long:  "Format one or more SQL files in-place using sqlfluff. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Report sqlfluff violations without modifying files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", config.DefaultPath(), "path to the settings HCL file")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(versionCmd)
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := sqlfluff.Format(cmd.Context(), flagSettings, filepath.Dir(path), content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	hasErrors := false
	hasViolations := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		violations, err := sqlfluff.Lint(cmd.Context(), flagSettings, filepath.Dir(path), string(data))
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error linting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		for _, v := range violations {
			hasViolations = true
			fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s %s\n", path, v.Line, v.Col, v.Rule, v.Message)
		}
	}

	if hasErrors || hasViolations {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
