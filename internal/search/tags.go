package search

import (
	"context"
	"sort"

	"github.com/akiyama/shirabe/internal/models"
)

// TagCloud aggregates tag and technology usage over the current content
// snapshot. Entries are sorted by count descending, then name ascending.
// Source fetches degrade the same way Search does: a failed source simply
// contributes no tags.
func (e *Engine) TagCloud(ctx context.Context, language string) ([]models.TagCount, error) {
	cfg, _ := e.tuning()
	if language == "" {
		language = cfg.DefaultLanguage
	}

	posts, projects := e.fetchSources(ctx, language)

	counts := make(map[string]int)
	for _, p := range posts {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}
	for _, p := range projects {
		for _, tech := range p.Technologies {
			counts[tech]++
		}
	}

	cloud := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		cloud = append(cloud, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(cloud, func(i, j int) bool {
		if cloud[i].Count != cloud[j].Count {
			return cloud[i].Count > cloud[j].Count
		}
		return cloud[i].Tag < cloud[j].Tag
	})
	return cloud, nil
}
