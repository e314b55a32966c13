package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shurcooL/githubv4"

	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// issuesQuery fetches a single page of issues. The issues connection never
// contains pull requests.
type issuesQuery struct {
	Repository struct {
		Issues struct {
			Nodes []struct {
				Number    int
				Title     string
				State     githubv4.IssueState
				CreatedAt githubv4.DateTime
				UpdatedAt githubv4.DateTime
				Assignees struct {
					Nodes []struct {
						Login string
					}
				} `graphql:"assignees(first: 1)"`
				Labels struct {
					Nodes []struct {
						Name string
					}
				} `graphql:"labels(first: 100)"`
			}
		} `graphql:"issues(first: 100, filterBy: {since: $since}, orderBy: {field: CREATED_AT, direction: DESC})"`
	} `graphql:"repository(owner: $owner, name: $name)"`
}

// GraphQLFetcher lists issues with the GraphQL API.
type GraphQLFetcher struct {
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// NewGraphQLFetcher creates a GraphQLFetcher. endpoint may be empty.
func NewGraphQLFetcher(httpClient *http.Client, endpoint string, logger *log.Logger) *GraphQLFetcher {
	client := githubv4.NewClient(httpClient)
	if endpoint != "" {
		client = githubv4.NewEnterpriseClient(endpoint, httpClient)
	}
	return &GraphQLFetcher{graphqlClient: client, logger: logger}
}

func (f *GraphQLFetcher) FetchIssues(ctx context.Context, repo domain.Repository, since time.Time) ([]domain.Issue, error) {
	f.logger.Printf("Fetching issues of %s updated since %s using GraphQL API...\n", repo, since.Format(time.RFC3339))
	variables := map[string]interface{}{
		"owner": githubv4.String(repo.Owner),
		"name":  githubv4.String(repo.Name),
		"since": githubv4.DateTime{Time: since},
	}

	var q issuesQuery
	if err := f.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("%w: failed to execute GraphQL query for issues: %w", domain.ErrFetch, err)
	}

	issues := make([]domain.Issue, 0, len(q.Repository.Issues.Nodes))
	for _, node := range q.Repository.Issues.Nodes {
		issue := domain.Issue{
			Number:    node.Number,
			Title:     node.Title,
			State:     domain.State(strings.ToLower(string(node.State))),
			CreatedAt: node.CreatedAt.Time,
			UpdatedAt: node.UpdatedAt.Time,
			Labels:    make([]string, 0, len(node.Labels.Nodes)),
		}
		if len(node.Assignees.Nodes) > 0 {
			issue.Assignee = node.Assignees.Nodes[0].Login
		}
		for _, label := range node.Labels.Nodes {
			issue.Labels = append(issue.Labels, label.Name)
		}
		issues = append(issues, issue)
	}
	f.logger.Printf("Completed fetching %d records.\n", len(issues))
	return issues, nil
}
