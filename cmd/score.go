package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/lifeindex/internal/baseline"
	"github.com/dotcommander/lifeindex/internal/output"
	"github.com/dotcommander/lifeindex/internal/outputters"
	"github.com/dotcommander/lifeindex/internal/scoring"
)

var (
	baselinePath string
	saveBaseline bool
)

var scoreCmd = &cobra.Command{
	Use:   "score [snapshot]",
	Short: "Compute the composite score",
	Long: `Scores the answer snapshot and prints the 0-10 composite, its band and the
derived BMI and savings-rate values. With no argument the configured store is used.

When a baseline file is configured the change since the baseline is shown;
--save-baseline records the current result as the new baseline.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		if err := runScore(cmd.OutOrStdout(), path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&baselinePath, "baseline", "", "Baseline file to compare against")
	scoreCmd.Flags().BoolVar(&saveBaseline, "save-baseline", false, "Record this result as the baseline")

	_ = viper.BindPFlag("baseline", scoreCmd.Flags().Lookup("baseline"))
}

func runScore(w io.Writer, path string) error {
	s, err := openSession(path)
	if err != nil {
		return err
	}

	engine, err := scoring.NewEngine(s.profile)
	if err != nil {
		return err
	}

	report := &output.Report{
		Source:     s.path,
		Rejections: s.rejections,
		StartTime:  time.Now(),
	}

	res, err := engine.Score(s.store)
	switch {
	case errors.Is(err, scoring.ErrNoData):
		slog.Debug("nothing to score", "file", s.path)
	case err != nil:
		return fmt.Errorf("error scoring %s: %w", s.path, err)
	default:
		report.Result = res
		cmp, err := applyBaseline(s, res)
		if err != nil {
			return err
		}
		report.Comparison = cmp
	}

	outputter := outputters.NewOutputter(s.cfg, w)
	if err := outputter.Format(report); err != nil {
		return fmt.Errorf("error formatting output: %w", err)
	}
	return nil
}

// applyBaseline compares res with the configured baseline and, when asked,
// replaces the baseline with res
func applyBaseline(s *session, res *scoring.Result) (*baseline.Comparison, error) {
	path := s.cfg.Baseline
	if path == "" {
		if saveBaseline {
			return nil, fmt.Errorf("--save-baseline requires --baseline or a baseline path in the config file")
		}
		return nil, nil
	}

	var cmp *baseline.Comparison
	if _, err := os.Stat(path); err == nil {
		b, err := baseline.LoadBaseline(path)
		if err != nil {
			slog.Warn("ignoring unreadable baseline", "file", path, "error", err)
		} else if cmp, err = b.Compare(res, s.snapshot); err != nil {
			slog.Warn("baseline not comparable", "file", path, "error", err)
			cmp = nil
		}
	}

	if saveBaseline {
		b := baseline.CreateBaseline(res, s.snapshot, time.Now())
		if err := b.SaveBaseline(path); err != nil {
			return nil, fmt.Errorf("failed to save baseline: %w", err)
		}
		slog.Debug("baseline saved", "file", path, "score", res.Score)
	}

	return cmp, nil
}
