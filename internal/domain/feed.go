package domain

import (
	"context"
	"strings"
)

type FilterMode string

const (
	FilterRecent   FilterMode = "recent"
	FilterSearch   FilterMode = "search"
	FilterCategory FilterMode = "category"
)

// FeedFilter selects the feed ordering and membership. The zero value is the recent feed.
type FeedFilter struct {
	Mode FilterMode `json:"mode"`
	Term string     `json:"term,omitempty"`
}

func RecentFilter() FeedFilter { return FeedFilter{Mode: FilterRecent} }

// SearchFilter is a role-prefix search. A blank term degrades to the recent feed.
func SearchFilter(term string) FeedFilter {
	if strings.TrimSpace(term) == "" {
		return RecentFilter()
	}
	return FeedFilter{Mode: FilterSearch, Term: term}
}

// CategoryFilter restricts the feed to one category tag. A blank tag degrades to the recent feed.
func CategoryFilter(tag string) FeedFilter {
	if strings.TrimSpace(tag) == "" {
		return RecentFilter()
	}
	return FeedFilter{Mode: FilterCategory, Term: tag}
}

// Normalize maps the zero value onto FilterRecent.
func (f FeedFilter) Normalize() FeedFilter {
	if f.Mode == "" {
		f.Mode = FilterRecent
	}
	if f.Mode == FilterRecent {
		f.Term = ""
	}
	return f
}

func (f FeedFilter) String() string {
	f = f.Normalize()
	if f.Term == "" {
		return string(f.Mode)
	}
	return string(f.Mode) + ":" + f.Term
}

type FeedQuery struct {
	PageSize int
	Cursor   string
	Filter   FeedFilter
}

// FeedPage is one page of the feed. NextCursor is empty once the feed is exhausted.
type FeedPage struct {
	Items      []CandidateProfile `json:"items"`
	NextCursor string             `json:"next_cursor,omitempty"`
	HasMore    bool               `json:"has_more"`
}

type FeedUsecase interface {
	FetchPage(ctx context.Context, q FeedQuery) (*FeedPage, error)
}
