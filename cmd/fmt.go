package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/config"
	"github.com/dotcommander/lifeindex/internal/discovery"
	"github.com/dotcommander/lifeindex/internal/format"
	"github.com/dotcommander/lifeindex/internal/survey"
)

var (
	fmtCheck bool
	fmtWrite bool
	fmtDiff  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [snapshot...]",
	Short: "Format snapshot files canonically",
	Long: `Format snapshot files with canonical layout.

FORMATTING RULES:
  - Trim values and drop empty entries
  - Lowercase question ids and list them in catalog order
  - Keep ids the profile does not know, after the known ones
  - Auxiliary fields last: height, weight, salary, savings

With no argument the configured store is formatted.

FLAGS:
  --check      Exit 1 if files would change
  -w, --write  Write changes in place
  --diff       Show diff of what would change`,
	Run: func(cmd *cobra.Command, args []string) {
		changed, err := runFmt(cmd.OutOrStdout(), args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
			return
		}
		if fmtCheck && changed > 0 {
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtCheck, "check", false, "Exit 1 if files would change")
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "Write changes in place")
	fmtCmd.Flags().BoolVar(&fmtDiff, "diff", false, "Show diff of what would change")
}

// runFmt returns the number of files whose content would change
func runFmt(w io.Writer, paths []string) (int, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return 0, fmt.Errorf("error loading configuration: %w", err)
	}
	profile, err := survey.Lookup(cfg.Profile)
	if err != nil {
		return 0, err
	}
	if len(paths) == 0 {
		paths = []string{cfg.Store}
	}

	formatter := format.NewSnapshotFormatter(profile)
	changed := 0
	for _, path := range paths {
		absPath, err := discovery.ValidateFilePath(path)
		if err != nil {
			if !cfg.Quiet {
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", path, err)
			}
			continue
		}

		content, err := os.ReadFile(absPath)
		if err != nil {
			return changed, fmt.Errorf("failed to read %s: %w", path, err)
		}

		formatted, err := formatter.Format(absPath, string(content))
		if err != nil {
			return changed, err
		}
		if formatted == string(content) {
			continue
		}
		changed++

		switch {
		case fmtCheck:
			fmt.Fprintf(w, "%s\n", path)
		case fmtDiff:
			fmt.Fprint(w, format.Diff(string(content), formatted, path))
		case fmtWrite:
			if err := os.WriteFile(absPath, []byte(formatted), 0644); err != nil {
				return changed, fmt.Errorf("failed to write %s: %w", path, err)
			}
			if !cfg.Quiet {
				fmt.Fprintf(w, "Formatted %s\n", path)
			}
		default:
			fmt.Fprint(w, formatted)
		}
	}

	return changed, nil
}
