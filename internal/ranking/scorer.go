// Package ranking computes query relevance scores for candidate items.
package ranking

import (
	"math"
	"strings"
	"time"

	"github.com/akiyama/shirabe/internal/models"
)

// Scorer computes additive relevance scores for candidate items. A zero
// score signifies "no match" and is used for filtering downstream.
type Scorer struct {
	config *Config
	now    func() time.Time
}

// NewScorer creates a Scorer with the given configuration. A nil config
// uses defaults.
func NewScorer(config *Config) *Scorer {
	if config == nil {
		config = DefaultConfig()
	}
	config.ApplyDefaults()
	return &Scorer{
		config: config,
		now:    time.Now,
	}
}

// WithNow overrides the clock used for the recency bonus. Used by tests.
func (s *Scorer) WithNow(now func() time.Time) *Scorer {
	s.now = now
	return s
}

// Tokenize splits a query into lowercased whitespace-separated words,
// dropping empty tokens.
func Tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// halfPrefix returns the first floor(len/2) characters of a word. For a
// one-character word this is the empty string, which every title contains;
// that falls out of the algorithm and is kept as-is.
func halfPrefix(word string) string {
	runes := []rune(word)
	return string(runes[:len(runes)/2])
}

// Score computes the relevance of item for query. bodyText is the flattened
// content text and may be empty for non-hydrated items; scoring against an
// empty body simply yields no body contribution.
func (s *Scorer) Score(item *models.SearchItem, query string, bodyText string) float64 {
	words := Tokenize(query)
	if len(words) == 0 {
		return 0
	}

	title := strings.ToLower(item.Title)
	excerpt := strings.ToLower(item.Excerpt)
	body := strings.ToLower(bodyText)

	tagLike := item.TagLike()
	tags := make([]string, len(tagLike))
	for i, tag := range tagLike {
		tags[i] = strings.ToLower(tag)
	}

	total := 0.0
	for _, word := range words {
		switch {
		case title == word:
			total += s.config.TitleExactScore
		case strings.Contains(title, word):
			total += s.config.TitleContainsScore
		case strings.Contains(title, halfPrefix(word)):
			total += s.config.TitlePrefixScore
		}

		if occurrences := strings.Count(body, word); occurrences > 0 {
			total += math.Min(float64(occurrences)*s.config.BodyOccurrenceScore, s.config.BodyOccurrenceCap)
			total += s.config.BodyContainsScore
		}

		if strings.Contains(excerpt, word) {
			total += s.config.ExcerptContainsScore
		}

		for _, tag := range tags {
			if strings.Contains(tag, word) {
				total += s.config.TagContainsScore
			}
		}
	}

	if s.isRecent(item.Date) {
		total += s.config.RecencyBonus
	}

	return total
}

// isRecent reports whether date parses and falls strictly after now minus
// the recency window. Malformed dates get no bonus and no error.
func (s *Scorer) isRecent(date string) bool {
	t, ok := models.ParseDate(date)
	if !ok {
		return false
	}
	window := time.Duration(s.config.RecencyWindowDays) * 24 * time.Hour
	return t.After(s.now().Add(-window))
}
