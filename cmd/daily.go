package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-issue-report/internal/config"
	"github.com/naka-gawa/github-issue-report/internal/gateway"
	"github.com/naka-gawa/github-issue-report/internal/usecase"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Generates daily_issues_report.pdf for yesterday through today",
	Long: `Simplified report for scheduled runs. The repository is read from
GITHUB_REPOSITORY (owner/name), the range is always yesterday through today and
the output file is always daily_issues_report.pdf.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		outputDir, _ := cmd.Flags().GetString("output-dir")
		source, _ := cmd.Flags().GetString("source")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		repository, err := cfg.RequireRepository()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		dateRange, err := usecase.ResolveDateRange("", "", time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		req := usecase.Request{
			Repository: repository,
			Range:      dateRange,
			OutputPath: usecase.OutputPath(outputDir, usecase.DailyReportFileName),
		}
		if err := run(cmd.Context(), cfg, gateway.Source(source), req, logger, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(dailyCmd)
	addCommonFlags(dailyCmd)
}
