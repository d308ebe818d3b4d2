package benchmark

import (
	"fmt"
	"testing"

	"github.com/akiyama/shirabe/internal/extract"
	"github.com/akiyama/shirabe/internal/models"
	"github.com/akiyama/shirabe/internal/ranking"
)

func BenchmarkScorer(b *testing.B) {
	scorer := ranking.NewScorer(nil)
	items := make([]*models.SearchItem, 100)
	for i := range items {
		items[i] = &models.SearchItem{
			Title:   fmt.Sprintf("Post %d about caching and profiling", i),
			Excerpt: "Notes on cache invalidation strategies",
			Tags:    []string{"go", "performance", "caching"},
			Date:    "2020-01-01",
		}
	}
	body := "cache cache cache profiling pprof goroutines cache allocation"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range items {
			_ = scorer.Score(item, "cache profiling", body)
		}
	}
}

func BenchmarkExtractText(b *testing.B) {
	blocks := make([]models.Block, 200)
	for i := range blocks {
		t := models.BlockParagraph
		if i%10 == 0 {
			t = models.BlockHeading2
		}
		blocks[i] = models.Block{
			Type:     t,
			RichText: []models.RichText{{PlainText: "Some paragraph text with a few words in it."}},
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = extract.Text(blocks)
	}
}
