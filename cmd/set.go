package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dotcommander/lifeindex/internal/answers"
)

var setCmd = &cobra.Command{
	Use:   "set <id> <value> [<id> <value>...]",
	Short: "Record answers in the snapshot",
	Long: `Records one or more answers and saves the snapshot. Ids are question ids
such as 1a or 5f, or one of height, weight, salary and savings.

Question answers must lie on the profile's scale; nothing is written if any
answer is rejected. Auxiliary values are stored as typed, an empty value clears them.

Examples:
  lifeindex set 1a 3 5b 0
  lifeindex set height 175 weight 70`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 || len(args)%2 != 0 {
			return fmt.Errorf("expected <id> <value> pairs, got %d argument(s)", len(args))
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runSet(cmd.OutOrStdout(), args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <id>...",
	Short: "Remove answers from the snapshot",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runUnset(cmd.OutOrStdout(), args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
}

func runSet(w io.Writer, args []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}

	for i := 0; i < len(args); i += 2 {
		key, value := strings.ToLower(strings.TrimSpace(args[i])), args[i+1]

		if aux, ok := answers.ParseAux(key); ok {
			s.store.SetAux(aux, value)
			if _, numeric := s.store.AuxValue(aux); !numeric && s.store.AuxRaw(aux) != "" {
				slog.Warn("value is not a number and will be ignored when scoring", "id", key, "value", value)
			}
			continue
		}

		if err := s.store.SetRaw(key, value); err != nil {
			return err
		}
	}

	if err := s.save(); err != nil {
		return err
	}

	if !s.cfg.Quiet {
		fmt.Fprintf(w, "Saved %d value(s) to %s\n", len(args)/2, s.path)
	}
	return nil
}

func runUnset(w io.Writer, args []string) error {
	s, err := openSession("")
	if err != nil {
		return err
	}

	for _, arg := range args {
		key := strings.ToLower(strings.TrimSpace(arg))

		if aux, ok := answers.ParseAux(key); ok {
			s.store.SetAux(aux, "")
			continue
		}
		if !s.profile.Has(key) && !s.store.Retained(key) {
			return fmt.Errorf("%s: not a question of profile %s", key, s.profile.Name)
		}
		s.store.Unset(key)
	}

	if err := s.save(); err != nil {
		return err
	}

	if !s.cfg.Quiet {
		fmt.Fprintf(w, "Removed %d value(s) from %s\n", len(args), s.path)
	}
	return nil
}
