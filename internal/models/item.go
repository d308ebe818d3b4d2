// Package models defines core data structures for content items, blocks,
// comments, and search results.
package models

import "time"

// ItemType discriminates blog posts from portfolio projects.
type ItemType string

const (
	// ItemTypeBlog marks a candidate backed by a blog post.
	ItemTypeBlog ItemType = "blog"
	// ItemTypeProject marks a candidate backed by a portfolio project.
	ItemTypeProject ItemType = "project"
)

// BlogPost is a blog post summary as listed by the content store.
type BlogPost struct {
	ID       string   `json:"id"`
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Excerpt  string   `json:"excerpt"`
	Tags     []string `json:"tags"`
	Language string   `json:"language"`
	Date     string   `json:"date"`
	ReadTime string   `json:"read_time,omitempty"`
}

// Project is a portfolio project summary as listed by the content store.
type Project struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	Date         string   `json:"date"`
}

// SearchItem is a candidate item being evaluated against a search query.
// It is built fresh per request from the content store snapshot and
// discarded after the response is serialized.
type SearchItem struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Type         ItemType `json:"type"`
	Date         string   `json:"date"`
	Tags         []string `json:"tags,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	Content      []Block  `json:"-"`
	Score        float64  `json:"score"`
}

// TagLike returns the tag-like field for the item. Exactly one of
// Tags/Technologies is populated per item type; both are matched uniformly.
func (it *SearchItem) TagLike() []string {
	if len(it.Tags) > 0 {
		return it.Tags
	}
	return it.Technologies
}

// dateLayouts are the accepted content-store date formats, tried in order.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02",
}

// ParseDate parses a content-store date string. The second return value is
// false when the string does not parse; callers treat that as "no date"
// rather than an error.
func ParseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
