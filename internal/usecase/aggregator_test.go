package usecase

import (
	"math/rand"
	"testing"
	"time"

	"github.com/naka-gawa/github-issue-report/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRange = domain.NewDateRange(
	time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
)

// inRange is a timestamp inside testRange.
var inRange = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func scenarioIssues() []domain.Issue {
	return []domain.Issue{
		{Number: 1, Title: "Crash", State: domain.StateOpen, Labels: []string{"bug"}, Assignee: "alice", CreatedAt: inRange, UpdatedAt: inRange},
		{Number: 2, Title: "Dark mode", State: domain.StateClosed, Labels: []string{"enhancement"}, CreatedAt: inRange, UpdatedAt: inRange},
		{Number: 3, Title: "Question", State: domain.StateOpen, Labels: []string{}, Assignee: "alice", CreatedAt: inRange, UpdatedAt: inRange},
	}
}

func TestAggregate_Scenario(t *testing.T) {
	summary := Aggregate(scenarioIssues())

	assert.Equal(t, domain.Counts{Total: 3, Open: 2, Closed: 1, Bugs: 1, Enhancements: 1, Other: 1}, summary.Counts)
	require.Contains(t, summary.Contributors, "alice")
	assert.Equal(t, domain.Counts{Total: 2, Open: 2, Closed: 0, Bugs: 1, Enhancements: 0, Other: 1}, summary.Contributors["alice"].Counts)
	require.Contains(t, summary.Contributors, domain.Unassigned)
	assert.Equal(t, domain.Counts{Total: 1, Closed: 1, Enhancements: 1}, summary.Contributors[domain.Unassigned].Counts)
	assert.Equal(t, []int{1, 2, 3}, numbers(summary.Issues))
}

func TestAggregate_Invariants(t *testing.T) {
	labelSets := [][]string{nil, {"bug"}, {"Enhancement"}, {"feature", "BUG"}, {"docs"}, {"new-feature"}}
	assignees := []string{"", "alice", "bob"}
	states := []domain.State{domain.StateOpen, domain.StateClosed}

	rng := rand.New(rand.NewSource(42))
	issues := make([]domain.Issue, 0, 60)
	for i := 0; i < 60; i++ {
		issues = append(issues, domain.Issue{
			Number:   i + 1,
			State:    states[rng.Intn(len(states))],
			Labels:   labelSets[rng.Intn(len(labelSets))],
			Assignee: assignees[rng.Intn(len(assignees))],
		})
	}

	summary := Aggregate(issues)
	assert.Equal(t, summary.Total, summary.Open+summary.Closed)
	assert.Equal(t, summary.Total, summary.Bugs+summary.Enhancements+summary.Other)

	contributorTotal := 0
	for _, c := range summary.Contributors {
		assert.Equal(t, c.Total, c.Open+c.Closed, c.Login)
		assert.Equal(t, c.Total, c.Bugs+c.Enhancements+c.Other, c.Login)
		contributorTotal += c.Total
	}
	assert.Equal(t, summary.Total, contributorTotal, "every issue is attributed to exactly one contributor")

	for round := 0; round < 5; round++ {
		permuted := append([]domain.Issue(nil), issues...)
		rng.Shuffle(len(permuted), func(i, j int) { permuted[i], permuted[j] = permuted[j], permuted[i] })

		again := Aggregate(permuted)
		assert.Equal(t, summary.Counts, again.Counts)
		require.Len(t, again.Contributors, len(summary.Contributors))
		for login, c := range summary.Contributors {
			assert.Equal(t, c.Counts, again.Contributors[login].Counts, login)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	summary := Aggregate(nil)
	assert.Equal(t, domain.Counts{}, summary.Counts)
	assert.NotNil(t, summary.Contributors)
	assert.Empty(t, summary.Contributors)
	assert.Empty(t, summary.Issues)
}

func TestFilter(t *testing.T) {
	before := time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)
	rangeEnd := testRange.UpperBound()

	testCases := []struct {
		name     string
		issue    domain.Issue
		expected bool
	}{
		{
			name:     "created inside range",
			issue:    domain.Issue{CreatedAt: inRange, UpdatedAt: inRange},
			expected: true,
		},
		{
			name:     "pull request inside range is dropped",
			issue:    domain.Issue{CreatedAt: inRange, UpdatedAt: inRange, IsPullRequest: true},
			expected: false,
		},
		{
			name:     "created one second before range end",
			issue:    domain.Issue{CreatedAt: rangeEnd.Add(-time.Second), UpdatedAt: rangeEnd.Add(-time.Second)},
			expected: true,
		},
		{
			name:     "old issue updated inside range",
			issue:    domain.Issue{CreatedAt: before, UpdatedAt: inRange},
			expected: true,
		},
		{
			name:     "end date itself is covered by the grace day",
			issue:    domain.Issue{CreatedAt: before, UpdatedAt: time.Date(2024, 3, 2, 23, 0, 0, 0, time.UTC)},
			expected: true,
		},
		{
			name:     "both timestamps before range start",
			issue:    domain.Issue{CreatedAt: before, UpdatedAt: testRange.From.Add(-time.Second)},
			expected: false,
		},
		{
			name:     "both timestamps after grace",
			issue:    domain.Issue{CreatedAt: rangeEnd.Add(time.Hour), UpdatedAt: rangeEnd.Add(time.Hour)},
			expected: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			retained := Filter([]domain.Issue{tc.issue}, testRange)
			if tc.expected {
				assert.Len(t, retained, 1)
			} else {
				assert.Empty(t, retained)
			}
		})
	}
}

func TestFilter_KeepsFetchOrder(t *testing.T) {
	issues := []domain.Issue{
		{Number: 9, CreatedAt: inRange, UpdatedAt: inRange},
		{Number: 4, CreatedAt: inRange, UpdatedAt: inRange, IsPullRequest: true},
		{Number: 5, CreatedAt: inRange, UpdatedAt: inRange},
		{Number: 1, CreatedAt: inRange, UpdatedAt: inRange},
	}
	assert.Equal(t, []int{9, 5, 1}, numbers(Filter(issues, testRange)))
}

func TestSortedContributors(t *testing.T) {
	summary := &domain.Summary{}
	for _, login := range []string{"carol", "alice", "bob", "alice", "bob", "alice", domain.Unassigned} {
		summary.Contributor(login).Add(true, domain.CategoryOther)
	}

	sorted := SortedContributors(summary)
	logins := make([]string, 0, len(sorted))
	for _, c := range sorted {
		logins = append(logins, c.Login)
	}
	assert.Equal(t, []string{"alice", "bob", domain.Unassigned, "carol"}, logins)
}

func TestComputeWorkload(t *testing.T) {
	w, err := ComputeWorkload(&domain.Summary{})
	require.NoError(t, err)
	assert.Equal(t, Workload{}, w)

	w, err = ComputeWorkload(Aggregate(scenarioIssues()))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, w.Mean, 1e-9)
	assert.InDelta(t, 1.5, w.Median, 1e-9)
	assert.InDelta(t, 2, w.Max, 1e-9)
}

func numbers(issues []domain.Issue) []int {
	out := make([]int, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Number)
	}
	return out
}
