package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/survey"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questions of the active profile",
	Long: `Lists every question of the active profile in scoring order, grouped by
section. Inverted questions, where a lower answer is better, are marked.
Current answers from the snapshot are shown next to each question.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runQuestions(cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(w io.Writer) error {
	s, err := openSession("")
	if err != nil {
		return err
	}

	styles := newPrintStyles()
	p := s.profile
	enc := p.Encoding

	fmt.Fprintf(w, "%s %s, %s mean, answers 0-%s in steps of %s\n",
		styles.header.Render("Profile:"), p.Name, p.Law,
		formatNumber(enc.Max), formatNumber(enc.Step))

	section := ""
	for _, q := range p.Questions {
		if q.Section != section {
			section = q.Section
			fmt.Fprintf(w, "\n%s\n", styles.header.Render(section))
		}
		printQuestion(w, styles, p, q, s)
	}
	return nil
}

func printQuestion(w io.Writer, styles printStyles, p *survey.Profile, q survey.Question, s *session) {
	marker := ""
	if p.IsInverted(q.ID) {
		marker = styles.warn.Render(" (inverted)")
	}

	answer := styles.dim.Render("-")
	if v, ok := s.store.Value(q.ID); ok {
		answer = styles.ok.Render(formatNumber(v))
	}

	fmt.Fprintf(w, "  %-4s %s%s  [%s]\n", q.ID, q.Prompt, marker, answer)
	if !s.cfg.Quiet {
		enc := p.Encoding
		fmt.Fprintf(w, "       %s\n", styles.dim.Render(fmt.Sprintf("0 = %s, %s = %s, %s = %s",
			q.MinLabel, formatNumber(enc.Midpoint()), q.MidLabel, formatNumber(enc.Max), q.MaxLabel)))
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
