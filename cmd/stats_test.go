package cmd

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/naka-gawa/github-issue-report/internal/domain"
	"github.com/naka-gawa/github-issue-report/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatsOutput_JSON(t *testing.T) {
	summary := usecase.Aggregate([]domain.Issue{
		{Number: 1, State: domain.StateOpen, Labels: []string{"bug"}, Assignee: "alice"},
		{Number: 2, State: domain.StateClosed},
	})
	workload, err := usecase.ComputeWorkload(summary)
	require.NoError(t, err)
	result := &usecase.Result{Summary: summary, Contributors: usecase.SortedContributors(summary), Workload: workload}

	r := domain.NewDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC))
	out := newStatsOutput(domain.Repository{Owner: "octo-org", Name: "hello"}, r, result)

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"repository": "octo-org/hello",
		"from": "2024-03-01",
		"to": "2024-03-02",
		"totals": {"total": 2, "open": 1, "closed": 1, "bugs": 1, "enhancements": 0, "other": 1},
		"contributors": [
			{"login": "Unassigned", "total": 1, "open": 0, "closed": 1, "bugs": 0, "enhancements": 0, "other": 1},
			{"login": "alice", "total": 1, "open": 1, "closed": 0, "bugs": 1, "enhancements": 0, "other": 0}
		],
		"workload": {"mean": 1, "median": 1, "max": 1}
	}`, string(data))
}

func TestRepositoryFlags_SharedHelp(t *testing.T) {
	for _, name := range []string{"owner", "repo"} {
		t.Run(name, func(t *testing.T) {
			reportFlag := reportCmd.Flags().Lookup(name)
			statsFlag := statsCmd.Flags().Lookup(name)
			require.NotNil(t, reportFlag)
			require.NotNil(t, statsFlag)

			assert.Equal(t, reportFlag.Usage, statsFlag.Usage)
			assert.Contains(t, reportFlag.Usage, "$GITHUB_REPOSITORY")
			assert.Contains(t, reportFlag.Usage, "git checkout")
			assert.Contains(t, reportFlag.Usage, "last resort")
		})
	}
	assert.Contains(t, reportCmd.Long, "used only when none of these")
}
