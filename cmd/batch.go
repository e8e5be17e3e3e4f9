package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/config"
	"github.com/dotcommander/lifeindex/internal/cue"
	"github.com/dotcommander/lifeindex/internal/discovery"
	"github.com/dotcommander/lifeindex/internal/output"
	"github.com/dotcommander/lifeindex/internal/outputters"
	"github.com/dotcommander/lifeindex/internal/scoring"
	"github.com/dotcommander/lifeindex/internal/survey"
)

var (
	batchDir     string
	batchExclude []string
)

var batchCmd = &cobra.Command{
	Use:   "batch [pattern]",
	Short: "Score every snapshot under a directory",
	Long: `Finds snapshot files under --dir matching a glob pattern (default
"**/*.{json,yaml,yml}") and scores each one independently with the active
profile. Files that cannot be read are listed as failures; snapshots without
answers are listed as having no data.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		pattern := discovery.DefaultPattern
		if len(args) == 1 {
			pattern = args[0]
		}
		if err := runBatch(cmd.OutOrStdout(), batchDir, pattern); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", ".", "Directory to search for snapshots")
	batchCmd.Flags().StringSliceVar(&batchExclude, "exclude", nil, "Glob patterns to skip (repeatable)")
}

func runBatch(w io.Writer, root, pattern string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	profile, err := survey.Lookup(cfg.Profile)
	if err != nil {
		return err
	}

	engine, err := scoring.NewEngine(profile)
	if err != nil {
		return err
	}

	var validator *cue.Validator
	if cfg.Schemas.Enabled {
		validator = cue.NewValidator()
		if err := validator.LoadSchemas(); err != nil {
			return fmt.Errorf("error loading schemas: %w", err)
		}
	}

	files, err := discovery.NewFileDiscovery(root, batchExclude).DiscoverFiles(pattern)
	if err != nil {
		return fmt.Errorf("error discovering snapshots: %w", err)
	}
	slog.Debug("batch discovery", "root", root, "pattern", pattern, "files", len(files))

	batch := &output.BatchReport{
		Root:      root,
		Pattern:   pattern,
		StartTime: time.Now(),
	}

	for _, f := range files {
		report, err := scoreFile(engine, profile, validator, f)
		if err != nil {
			batch.Failures = append(batch.Failures, output.Failure{Source: f.RelPath, Message: err.Error()})
			continue
		}
		batch.Entries = append(batch.Entries, report)
	}

	outputter := outputters.NewOutputter(cfg, w)
	if err := outputter.FormatBatch(batch); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}

// scoreFile scores one discovered snapshot in a store of its own
func scoreFile(engine *scoring.Engine, profile *survey.Profile, v *cue.Validator, f discovery.File) (output.Report, error) {
	store, _, rejected, err := loadStore(profile, f.Path, v)
	if err != nil {
		return output.Report{}, err
	}

	report := output.Report{Source: f.RelPath, Rejections: rejected}
	res, err := engine.Score(store)
	switch {
	case errors.Is(err, scoring.ErrNoData):
	case err != nil:
		return output.Report{}, err
	default:
		report.Result = res
	}
	return report, nil
}
