// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"strings"
	"time"
)

// Unassigned is the contributor bucket for issues without an assignee.
const Unassigned = "Unassigned"

// State is the lifecycle state of an issue as reported by GitHub.
type State string

const (
	StateOpen   State = "open"
	StateClosed State = "closed"
)

// Issue is the subset of a GitHub issue the report needs.
// It is read-only once fetched.
type Issue struct {
	Number        int
	Title         string
	State         State
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Assignee      string // empty when nobody is assigned
	Labels        []string
	IsPullRequest bool
}

// Contributor returns the assignee login, or Unassigned.
func (i Issue) Contributor() string {
	if i.Assignee == "" {
		return Unassigned
	}
	return i.Assignee
}

// IsOpen reports whether the issue is open. Anything else counts as closed.
func (i Issue) IsOpen() bool {
	return i.State == StateOpen
}

// Category is the label-derived classification of an issue.
type Category int

const (
	CategoryOther Category = iota
	CategoryBug
	CategoryEnhancement
)

func (c Category) String() string {
	switch c {
	case CategoryBug:
		return "bug"
	case CategoryEnhancement:
		return "enhancement"
	default:
		return "other"
	}
}

// Classify derives the category of an issue from its label names.
// Matching is a case-insensitive substring match and "bug" takes precedence.
func Classify(labels []string) Category {
	isEnhancement := false
	for _, label := range labels {
		name := strings.ToLower(label)
		if strings.Contains(name, "bug") {
			return CategoryBug
		}
		if strings.Contains(name, "enhancement") || strings.Contains(name, "feature") {
			isEnhancement = true
		}
	}
	if isEnhancement {
		return CategoryEnhancement
	}
	return CategoryOther
}

// Counts holds issue counters by state and category.
// Fields are only ever incremented.
type Counts struct {
	Total        int `json:"total"`
	Open         int `json:"open"`
	Closed       int `json:"closed"`
	Bugs         int `json:"bugs"`
	Enhancements int `json:"enhancements"`
	Other        int `json:"other"`
}

// Add counts one issue of the given state and category.
func (c *Counts) Add(open bool, category Category) {
	c.Total++
	if open {
		c.Open++
	} else {
		c.Closed++
	}
	switch category {
	case CategoryBug:
		c.Bugs++
	case CategoryEnhancement:
		c.Enhancements++
	default:
		c.Other++
	}
}

// ContributorStats is the per-assignee breakdown.
type ContributorStats struct {
	Login string `json:"login"`
	Counts
}

// Summary is the result of one aggregation pass.
type Summary struct {
	Counts
	Contributors map[string]*ContributorStats
	// Issues are the retained issues in fetch order.
	Issues []Issue
}

// Contributor returns the stats record for login, inserting a zero record if absent.
func (s *Summary) Contributor(login string) *ContributorStats {
	if s.Contributors == nil {
		s.Contributors = make(map[string]*ContributorStats)
	}
	stats, ok := s.Contributors[login]
	if !ok {
		stats = &ContributorStats{Login: login}
		s.Contributors[login] = stats
	}
	return stats
}
