package ranking

// Config holds the scoring weights for search relevance.
type Config struct {
	// Title matching scores. The three checks are mutually exclusive per
	// query word: exact match wins over substring, substring over prefix.
	TitleExactScore    float64 `yaml:"title_exact_score"`    // default: 50
	TitleContainsScore float64 `yaml:"title_contains_score"` // default: 25
	TitlePrefixScore   float64 `yaml:"title_prefix_score"`   // default: 10

	// Body matching scores. The capped per-occurrence score and the flat
	// contains bonus are additive.
	BodyOccurrenceScore float64 `yaml:"body_occurrence_score"` // default: 3
	BodyOccurrenceCap   float64 `yaml:"body_occurrence_cap"`   // default: 15
	BodyContainsScore   float64 `yaml:"body_contains_score"`   // default: 8

	// Excerpt and tag matching scores.
	ExcerptContainsScore float64 `yaml:"excerpt_contains_score"` // default: 12
	TagContainsScore     float64 `yaml:"tag_contains_score"`     // default: 6

	// Recency bonus, applied once per item when its date falls inside the
	// window.
	RecencyBonus      float64 `yaml:"recency_bonus"`       // default: 5
	RecencyWindowDays int     `yaml:"recency_window_days"` // default: 30
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() *Config {
	return &Config{
		TitleExactScore:      50,
		TitleContainsScore:   25,
		TitlePrefixScore:     10,
		BodyOccurrenceScore:  3,
		BodyOccurrenceCap:    15,
		BodyContainsScore:    8,
		ExcerptContainsScore: 12,
		TagContainsScore:     6,
		RecencyBonus:         5,
		RecencyWindowDays:    30,
	}
}

// ApplyDefaults sets default values for any zero values in the config.
func (c *Config) ApplyDefaults() {
	d := DefaultConfig()
	if c.TitleExactScore == 0 {
		c.TitleExactScore = d.TitleExactScore
	}
	if c.TitleContainsScore == 0 {
		c.TitleContainsScore = d.TitleContainsScore
	}
	if c.TitlePrefixScore == 0 {
		c.TitlePrefixScore = d.TitlePrefixScore
	}
	if c.BodyOccurrenceScore == 0 {
		c.BodyOccurrenceScore = d.BodyOccurrenceScore
	}
	if c.BodyOccurrenceCap == 0 {
		c.BodyOccurrenceCap = d.BodyOccurrenceCap
	}
	if c.BodyContainsScore == 0 {
		c.BodyContainsScore = d.BodyContainsScore
	}
	if c.ExcerptContainsScore == 0 {
		c.ExcerptContainsScore = d.ExcerptContainsScore
	}
	if c.TagContainsScore == 0 {
		c.TagContainsScore = d.TagContainsScore
	}
	if c.RecencyBonus == 0 {
		c.RecencyBonus = d.RecencyBonus
	}
	if c.RecencyWindowDays == 0 {
		c.RecencyWindowDays = d.RecencyWindowDays
	}
}
