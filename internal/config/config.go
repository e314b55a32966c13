// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/cli/go-gh/v2/pkg/repository"
	"github.com/naka-gawa/github-issue-report/internal/domain"
)

// Placeholders used when no repository identity can be resolved.
const (
	DefaultOwner = "your-org-or-username"
	DefaultRepo  = "your-repo-name"
)

// Config holds everything read from the environment.
type Config struct {
	Token string
	// Repository is the raw GITHUB_REPOSITORY value, "owner/name" or empty.
	Repository string
	// APIURL overrides the REST base URL, e.g. for GitHub Enterprise.
	APIURL string
	// GraphQLURL overrides the GraphQL endpoint.
	GraphQLURL string
}

// Load reads the configuration. A missing GITHUB_TOKEN is a configuration error.
func Load() (*Config, error) {
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("%w: GITHUB_TOKEN environment variable is not set", domain.ErrConfiguration)
	}

	return &Config{
		Token:      token,
		Repository: os.Getenv("GITHUB_REPOSITORY"),
		APIURL:     getenv("GITHUB_API_URL", ""),
		GraphQLURL: getenv("GITHUB_GRAPHQL_URL", ""),
	}, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// DetectFunc reports the repository of the current working directory.
type DetectFunc func() (domain.Repository, error)

// DetectRepository resolves the repository from GH_REPO or the git remotes
// of the working directory.
func DetectRepository() (domain.Repository, error) {
	repo, err := repository.Current()
	if err != nil {
		return domain.Repository{}, fmt.Errorf("failed to detect current repository: %w", err)
	}
	return domain.Repository{Owner: repo.Owner, Name: repo.Name}, nil
}

// ResolveRepository picks the target repository. Explicit flags win, then
// GITHUB_REPOSITORY, then detect, then the placeholders. A flag that is set
// alone is completed from the next source that has a value.
func (c *Config) ResolveRepository(owner, name string, detect DetectFunc) (domain.Repository, error) {
	if owner != "" && name != "" {
		return domain.Repository{Owner: owner, Name: name}, nil
	}

	fallback := domain.Repository{Owner: DefaultOwner, Name: DefaultRepo}
	if c.Repository != "" {
		repo, err := domain.ParseRepository(c.Repository)
		if err != nil {
			return domain.Repository{}, err
		}
		fallback = repo
	} else if detect != nil {
		if repo, err := detect(); err == nil {
			fallback = repo
		}
	}

	if owner == "" {
		owner = fallback.Owner
	}
	if name == "" {
		name = fallback.Name
	}
	return domain.Repository{Owner: owner, Name: name}, nil
}

// RequireRepository returns GITHUB_REPOSITORY parsed, failing when unset.
func (c *Config) RequireRepository() (domain.Repository, error) {
	if c.Repository == "" {
		return domain.Repository{}, fmt.Errorf("%w: GITHUB_REPOSITORY environment variable is not set", domain.ErrConfiguration)
	}
	return domain.ParseRepository(c.Repository)
}
