package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-issue-report/internal/config"
	"github.com/naka-gawa/github-issue-report/internal/domain"
	"github.com/naka-gawa/github-issue-report/internal/gateway"
	"github.com/naka-gawa/github-issue-report/internal/usecase"
)

// statsOutput is the JSON document printed by the stats command.
type statsOutput struct {
	Repository   string                     `json:"repository"`
	From         string                     `json:"from"`
	To           string                     `json:"to"`
	Totals       domain.Counts              `json:"totals"`
	Contributors []*domain.ContributorStats `json:"contributors"`
	Workload     usecase.Workload           `json:"workload"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregates issue counts and outputs them as JSON",
	Long:  `Runs the same fetch and aggregation as the report command for a date range and prints the counts as JSON instead of rendering a PDF.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		fromStr, _ := cmd.Flags().GetString("from-date")
		toStr, _ := cmd.Flags().GetString("to-date")
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		source, _ := cmd.Flags().GetString("source")

		dateRange, err := usecase.ResolveDateRange(fromStr, toStr, time.Now())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		repository, err := cfg.ResolveRepository(owner, repo, config.DetectRepository)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		reporter, err := newReporter(cfg, gateway.Source(source), logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		result, err := reporter.Summarize(cmd.Context(), usecase.Request{Repository: repository, Range: dateRange})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate issues: %v\n", err)
			os.Exit(1)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(newStatsOutput(repository, dateRange, result), "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}

		// Print the final JSON to standard output.
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	},
}

func newStatsOutput(repo domain.Repository, r domain.DateRange, result *usecase.Result) statsOutput {
	return statsOutput{
		Repository:   repo.String(),
		From:         r.FromString(),
		To:           r.ToString(),
		Totals:       result.Summary.Counts,
		Contributors: result.Contributors,
		Workload:     result.Workload,
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("from-date", "", "Start date in YYYY-MM-DD format (default: yesterday)")
	statsCmd.Flags().String("to-date", "", "End date in YYYY-MM-DD format (default: today)")
	addRepositoryFlags(statsCmd)
	statsCmd.Flags().String("source", string(gateway.SourceREST), fmt.Sprintf("GitHub API to read issues from (%s or %s)", gateway.SourceREST, gateway.SourceGraphQL))
}
