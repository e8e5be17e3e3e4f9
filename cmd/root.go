package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/lifeindex/internal/config"
)

var (
	profileName  string
	quiet        bool
	verbose      bool
	outputFormat string
	outputFile   string
)

// exitFunc is swapped out in tests
var exitFunc = os.Exit

var rootCmd = &cobra.Command{
	Use:   "lifeindex",
	Short: "Life Happiness Index - score self-reported life satisfaction answers",
	Long: `lifeindex keeps a local snapshot of your answers to the Life Happiness Index
survey and reduces them to a single 0-10 score.

Answers are recorded with "lifeindex set" and scored with "lifeindex score".
Running lifeindex without a subcommand scores the configured snapshot.
Nothing leaves the machine: the snapshot is a plain JSON or YAML file.`,
	Version: "1.0.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runScore(cmd.OutOrStdout(), ""); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitFunc(1)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitFunc(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("store", "s", "", "Answer snapshot file (default ~/.lifeindex/answers.json)")
	rootCmd.PersistentFlags().StringVarP(&profileName, "profile", "p", "classic", "Survey profile (classic|percentile)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "console", "Output format for reports (console|json|markdown)")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Output file for reports")

	_ = viper.BindPFlag("store", rootCmd.PersistentFlags().Lookup("store"))
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
}

func initConfig() {
	for _, path := range config.ConfigPaths {
		if _, err := os.Stat(path); err == nil {
			viper.SetConfigFile(path)
			if err := viper.ReadInConfig(); err != nil {
				fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
				exitFunc(1)
			}
			break
		}
	}
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}
