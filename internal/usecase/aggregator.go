// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// Filter drops pull requests and keeps issues created or updated within r.
// The fetch order is preserved.
func Filter(issues []domain.Issue, r domain.DateRange) []domain.Issue {
	retained := make([]domain.Issue, 0, len(issues))
	for _, issue := range issues {
		if issue.IsPullRequest {
			continue
		}
		if r.Contains(issue.CreatedAt) || r.Contains(issue.UpdatedAt) {
			retained = append(retained, issue)
		}
	}
	return retained
}

// Aggregate counts the retained issues by state and category, globally and per contributor.
// A fresh Summary is built on every call.
func Aggregate(retained []domain.Issue) *domain.Summary {
	summary := &domain.Summary{
		Contributors: make(map[string]*domain.ContributorStats),
		Issues:       retained,
	}
	for _, issue := range retained {
		category := domain.Classify(issue.Labels)
		open := issue.IsOpen()
		summary.Add(open, category)
		summary.Contributor(issue.Contributor()).Add(open, category)
	}
	return summary
}

// SortedContributors orders contributors by total issues, descending.
// Ties are broken by login so the order is stable across runs.
func SortedContributors(summary *domain.Summary) []*domain.ContributorStats {
	sorted := make([]*domain.ContributorStats, 0, len(summary.Contributors))
	for _, c := range summary.Contributors {
		sorted = append(sorted, c)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Total != sorted[j].Total {
			return sorted[i].Total > sorted[j].Total
		}
		return sorted[i].Login < sorted[j].Login
	})
	return sorted
}

// Workload describes how issues are spread over contributors.
type Workload struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

// ComputeWorkload returns the distribution of issue totals per contributor.
// It is zero-valued when there are no contributors.
func ComputeWorkload(summary *domain.Summary) (Workload, error) {
	if len(summary.Contributors) == 0 {
		return Workload{}, nil
	}
	totals := make(stats.Float64Data, 0, len(summary.Contributors))
	for _, c := range summary.Contributors {
		totals = append(totals, float64(c.Total))
	}

	mean, err := totals.Mean()
	if err != nil {
		return Workload{}, err
	}
	median, err := totals.Median()
	if err != nil {
		return Workload{}, err
	}
	maxTotal, err := totals.Max()
	if err != nil {
		return Workload{}, err
	}
	return Workload{Mean: mean, Median: median, Max: maxTotal}, nil
}
