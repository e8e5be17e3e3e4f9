package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/config"
	"github.com/dotcommander/lifeindex/internal/cue"
	"github.com/dotcommander/lifeindex/internal/discovery"
)

var validateCmd = &cobra.Command{
	Use:   "validate [snapshot...]",
	Short: "Check snapshot files against the snapshot schema",
	Long: `Checks that each snapshot file is well-formed JSON or YAML and matches the
snapshot schema: an answers map of decimal strings plus the optional height,
weight, salary and savings fields. Range checks against a profile happen
when the snapshot is scored. With no argument the configured store is checked.`,
	Run: func(cmd *cobra.Command, args []string) {
		failed, err := runValidate(cmd.OutOrStdout(), args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
			return
		}
		if failed > 0 {
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// runValidate returns the number of files that failed validation
func runValidate(w io.Writer, paths []string) (int, error) {
	if len(paths) == 0 {
		cfg, err := config.LoadConfig()
		if err != nil {
			return 0, fmt.Errorf("error loading configuration: %w", err)
		}
		paths = []string{cfg.Store}
	}

	v := cue.NewValidator()
	if err := v.LoadSchemas(); err != nil {
		return 0, fmt.Errorf("error loading schemas: %w", err)
	}

	styles := newPrintStyles()
	failed := 0
	for _, path := range paths {
		errs, err := validateOne(v, path)
		if err != nil {
			failed++
			fmt.Fprintf(w, "%s %s: %v\n", styles.bad.Render("✗"), path, err)
			continue
		}
		if len(errs) > 0 {
			failed++
			fmt.Fprintf(w, "%s %s\n", styles.bad.Render("✗"), path)
			for _, e := range errs {
				fmt.Fprintf(w, "    %s\n", e.Message)
			}
			continue
		}
		fmt.Fprintf(w, "%s %s\n", styles.ok.Render("✓"), path)
	}

	if len(paths) > 1 {
		fmt.Fprintf(w, "\n%d/%d valid\n", len(paths)-failed, len(paths))
	}
	return failed, nil
}

func validateOne(v *cue.Validator, path string) ([]cue.ValidationError, error) {
	absPath, err := discovery.ValidateFilePath(path)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return v.ValidateFile(absPath, content)
}
