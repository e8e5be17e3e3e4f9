package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/scoring"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Show BMI and savings rate",
	Long: `Shows the two derived metrics, rounded to one decimal, with the 0-9 item
score each contributes. BMI needs height (cm) and weight (kg); the savings rate
needs a non-zero monthly salary and monthly savings.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMetrics(cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(w io.Writer) error {
	s, err := openSession("")
	if err != nil {
		return err
	}

	styles := newPrintStyles()
	m := scoring.DeriveMetrics(s.store)

	if m.BMI != nil {
		fmt.Fprintf(w, "BMI: %.1f  %s\n", m.BMI.Display(), styles.dim.Render(fmt.Sprintf("(score %d/%d)", m.BMI.Score, scoring.DerivedMax)))
	} else {
		fmt.Fprintf(w, "BMI: %s\n", styles.dim.Render("not available, set height and weight"))
	}

	if m.SavingsRate != nil {
		fmt.Fprintf(w, "Savings rate: %.1f%%  %s\n", m.SavingsRate.Display(), styles.dim.Render(fmt.Sprintf("(score %d/%d)", m.SavingsRate.Score, scoring.DerivedMax)))
	} else {
		fmt.Fprintf(w, "Savings rate: %s\n", styles.dim.Render("not available, set salary and savings"))
	}
	return nil
}
