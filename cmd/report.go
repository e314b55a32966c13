package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-issue-report/internal/chart"
	"github.com/naka-gawa/github-issue-report/internal/config"
	"github.com/naka-gawa/github-issue-report/internal/gateway"
	"github.com/naka-gawa/github-issue-report/internal/report"
	"github.com/naka-gawa/github-issue-report/internal/usecase"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generates a PDF issues report for a date range",
	Long: `Fetches the issues of a repository that were created or updated between
--from-date and --to-date (default: yesterday through today) and writes
issues_report_<from>_to_<to>.pdf.

The repository is taken from --owner/--repo, then $GITHUB_REPOSITORY, then
the git checkout in the working directory. The placeholder repository
your-org-or-username/your-repo-name is used only when none of these is
available.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)

		fromStr, _ := cmd.Flags().GetString("from-date")
		toStr, _ := cmd.Flags().GetString("to-date")
		owner, _ := cmd.Flags().GetString("owner")
		repo, _ := cmd.Flags().GetString("repo")
		outputDir, _ := cmd.Flags().GetString("output-dir")
		source, _ := cmd.Flags().GetString("source")

		// Dates are validated before anything else happens.
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

		req := usecase.Request{
			Repository: repository,
			Range:      dateRange,
			OutputPath: usecase.OutputPath(outputDir, usecase.ReportFileName(dateRange)),
		}
		if err := run(cmd.Context(), cfg, gateway.Source(source), req, logger, cmd.OutOrStdout()); err != nil {
			fmt.Fprintf(os.Stderr, "Error generating report: %v\n", err)
			os.Exit(1)
		}
	},
}

// newReporter wires the gateway, renderer and composer.
func newReporter(cfg *config.Config, source gateway.Source, logger *log.Logger) (*usecase.Reporter, error) {
	fetcher, err := gateway.NewFetcher(gateway.Options{
		Token:      cfg.Token,
		Source:     source,
		APIURL:     cfg.APIURL,
		GraphQLURL: cfg.GraphQLURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return usecase.NewReporter(fetcher, chart.NewRenderer(logger), report.NewComposer(logger), logger), nil
}

// run executes one report and prints the outcome to out.
func run(ctx context.Context, cfg *config.Config, source gateway.Source, req usecase.Request, logger *log.Logger, out io.Writer) error {
	reporter, err := newReporter(cfg, source, logger)
	if err != nil {
		return fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	result, err := reporter.Generate(ctx, req)
	if err != nil {
		return err
	}
	return printSummary(out, result)
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().String("from-date", "", "Start date in YYYY-MM-DD format (default: yesterday)")
	reportCmd.Flags().String("to-date", "", "End date in YYYY-MM-DD format (default: today)")
	addRepositoryFlags(reportCmd)
	addCommonFlags(reportCmd)
}

// addRepositoryFlags registers --owner and --repo for the commands that resolve the repository.
func addRepositoryFlags(c *cobra.Command) {
	c.Flags().String("owner", "", fmt.Sprintf("GitHub repository owner (default: owner of $GITHUB_REPOSITORY, else of the current git checkout; %q only as a last resort)", config.DefaultOwner))
	c.Flags().String("repo", "", fmt.Sprintf("GitHub repository name (default: name from $GITHUB_REPOSITORY, else of the current git checkout; %q only as a last resort)", config.DefaultRepo))
}

// addCommonFlags registers the flags shared by report and daily.
func addCommonFlags(c *cobra.Command) {
	c.Flags().String("output-dir", "", "Directory to write the PDF into (default: current directory)")
	c.Flags().String("source", string(gateway.SourceREST), fmt.Sprintf("GitHub API to read issues from (%s or %s)", gateway.SourceREST, gateway.SourceGraphQL))
}
