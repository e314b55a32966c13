package usecase

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/naka-gawa/github-issue-report/internal/chart"
	"github.com/naka-gawa/github-issue-report/internal/domain"
	"github.com/naka-gawa/github-issue-report/internal/gateway"
	"github.com/naka-gawa/github-issue-report/internal/report"
)

// ChartRenderer draws the report charts into a directory.
type ChartRenderer interface {
	RenderAll(ctx context.Context, summary *domain.Summary, contributors []*domain.ContributorStats, dir string) (chart.Set, error)
}

// DocumentComposer writes the final document.
type DocumentComposer interface {
	Compose(in report.Input, path string) error
}

// Request describes one report run.
type Request struct {
	Repository domain.Repository
	Range      domain.DateRange
	OutputPath string
}

// Result is what a successful run produced.
type Result struct {
	Path         string
	Summary      *domain.Summary
	Contributors []*domain.ContributorStats
	Workload     Workload
}

// Reporter is the use case for generating an issues report.
// It orchestrates fetching, aggregation, charting and layout.
type Reporter struct {
	fetcher  gateway.Fetcher
	charts   ChartRenderer
	composer DocumentComposer
	logger   *log.Logger
}

// NewReporter creates a new Reporter instance.
func NewReporter(fetcher gateway.Fetcher, charts ChartRenderer, composer DocumentComposer, logger *log.Logger) *Reporter {
	return &Reporter{
		fetcher:  fetcher,
		charts:   charts,
		composer: composer,
		logger:   logger,
	}
}

// Summarize fetches, filters and aggregates the issues of one run without rendering anything.
func (r *Reporter) Summarize(ctx context.Context, req Request) (*Result, error) {
	r.logger.Printf("[1/4] Fetching issues for %s (%s)...\n", req.Repository, req.Range)
	fetched, err := r.fetcher.FetchIssues(ctx, req.Repository, req.Range.From)
	if err != nil {
		return nil, err
	}

	r.logger.Println("[2/4] Aggregating issues...")
	summary := Aggregate(Filter(fetched, req.Range))
	contributors := SortedContributors(summary)
	r.logger.Printf("Retained %d of %d records, %d contributors.\n", summary.Total, len(fetched), len(contributors))

	workload, err := ComputeWorkload(summary)
	if err != nil {
		return nil, fmt.Errorf("failed to compute workload: %w", err)
	}
	return &Result{
		Path:         req.OutputPath,
		Summary:      summary,
		Contributors: contributors,
		Workload:     workload,
	}, nil
}

// Generate runs the whole pipeline. Either the report file is written or an error is returned.
func (r *Reporter) Generate(ctx context.Context, req Request) (*Result, error) {
	result, err := r.Summarize(ctx, req)
	if err != nil {
		return nil, err
	}

	r.logger.Println("[3/4] Rendering charts...")
	dir, err := os.MkdirTemp("", "issue-report-charts-")
	if err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	defer os.RemoveAll(dir)

	set, err := r.charts.RenderAll(ctx, result.Summary, result.Contributors, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to render charts: %w", err)
	}
	defer set.Remove()

	r.logger.Println("[4/4] Composing report...")
	if err := r.composer.Compose(report.Input{
		Range:        req.Range,
		Repository:   req.Repository,
		Summary:      result.Summary,
		Contributors: result.Contributors,
		Charts:       set,
	}, req.OutputPath); err != nil {
		return nil, err
	}
	return result, nil
}

// OutputPath joins dir and name, treating an empty dir as the working directory.
func OutputPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
