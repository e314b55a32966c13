// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// PageSize is the number of issues requested. Only a single page is fetched.
const PageSize = 100

// Source selects which GitHub API the issues are read from.
type Source string

const (
	SourceREST    Source = "rest"
	SourceGraphQL Source = "graphql"
)

// Fetcher defines the behavior of a gateway for fetching issues from GitHub.
type Fetcher interface {
	// FetchIssues returns the issues of repo updated since the given time, in API order.
	FetchIssues(ctx context.Context, repo domain.Repository, since time.Time) ([]domain.Issue, error)
}

// Options configures NewFetcher.
type Options struct {
	Token      string
	Source     Source
	APIURL     string // REST base URL override, empty for api.github.com
	GraphQLURL string // GraphQL endpoint override, empty for api.github.com/graphql
}

// NewHTTPClient returns a client that sends the token as a bearer credential.
// A secondary rate limit response is logged and returned as is, never retried.
func NewHTTPClient(token string, logger *log.Logger) (*http.Client, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: GitHub token is empty", domain.ErrConfiguration)
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(0, func(cbCtx *github_ratelimit.CallbackContext) {
		if cbCtx.SleepUntil != nil {
			logger.Printf("GitHub secondary rate limit hit, resets at %s.\n", cbCtx.SleepUntil.Format(time.RFC3339))
			return
		}
		logger.Println("GitHub secondary rate limit hit.")
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// NewFetcher is a constructor that creates the Fetcher for the requested source.
func NewFetcher(opts Options, logger *log.Logger) (Fetcher, error) {
	httpClient, err := NewHTTPClient(opts.Token, logger)
	if err != nil {
		return nil, err
	}
	switch opts.Source {
	case SourceREST, "":
		return NewRESTFetcher(httpClient, opts.APIURL, logger)
	case SourceGraphQL:
		return NewGraphQLFetcher(httpClient, opts.GraphQLURL, logger), nil
	default:
		return nil, fmt.Errorf("%w: unknown source %q (want %q or %q)", domain.ErrConfiguration, opts.Source, SourceREST, SourceGraphQL)
	}
}

// RESTFetcher lists issues with the REST "list repository issues" endpoint.
type RESTFetcher struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewRESTFetcher creates a RESTFetcher. baseURL may be empty.
func NewRESTFetcher(httpClient *http.Client, baseURL string, logger *log.Logger) (*RESTFetcher, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid GitHub API URL %q: %w", domain.ErrConfiguration, baseURL, err)
		}
	}
	return &RESTFetcher{restClient: client, logger: logger}, nil
}

// FetchIssues issues one request for all issues in any state updated since the given time.
// Pull requests are returned too and flagged as such.
func (f *RESTFetcher) FetchIssues(ctx context.Context, repo domain.Repository, since time.Time) ([]domain.Issue, error) {
	f.logger.Printf("Fetching issues of %s updated since %s using REST API...\n", repo, since.Format(time.RFC3339))
	opts := &github.IssueListByRepoOptions{
		State:       "all",
		Since:       since,
		ListOptions: github.ListOptions{PerPage: PageSize},
	}
	result, _, err := f.restClient.Issues.ListByRepo(ctx, repo.Owner, repo.Name, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list issues with REST API: %w", domain.ErrFetch, err)
	}

	issues := make([]domain.Issue, 0, len(result))
	for _, item := range result {
		issues = append(issues, fromRESTIssue(item))
	}
	f.logger.Printf("Completed fetching %d records.\n", len(issues))
	return issues, nil
}

func fromRESTIssue(item *github.Issue) domain.Issue {
	labels := make([]string, 0, len(item.Labels))
	for _, label := range item.Labels {
		labels = append(labels, label.GetName())
	}
	return domain.Issue{
		Number:        item.GetNumber(),
		Title:         item.GetTitle(),
		State:         domain.State(item.GetState()),
		CreatedAt:     item.GetCreatedAt().Time,
		UpdatedAt:     item.GetUpdatedAt().Time,
		Assignee:      item.GetAssignee().GetLogin(),
		Labels:        labels,
		IsPullRequest: item.IsPullRequest(),
	}
}
