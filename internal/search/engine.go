// Package search orchestrates candidate retrieval, hydration, and ranking.
package search

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/content"
	"github.com/akiyama/shirabe/internal/extract"
	"github.com/akiyama/shirabe/internal/models"
	"github.com/akiyama/shirabe/internal/ranking"
	"go.uber.org/zap"
)

// Engine runs relevance-ranked search over the content store. All state is
// request-local; the engine itself only holds injected dependencies and
// tuning, so one instance serves concurrent requests.
type Engine struct {
	store  content.Store
	logger *zap.Logger

	mu     sync.RWMutex
	config *config.SearchConfig
	scorer *ranking.Scorer
}

// NewEngine creates a search engine with the given dependencies.
func NewEngine(store content.Store, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{
		store:  store,
		logger: logger,
		config: cfg,
		scorer: ranking.NewScorer(&cfg.Ranking),
	}
}

// Reload swaps in new search tuning, rebuilding the scorer. Called by the
// config watcher while the server is running.
func (e *Engine) Reload(cfg *config.SearchConfig) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config = cfg
	e.scorer = ranking.NewScorer(&cfg.Ranking)
}

// tuning returns the current config and scorer under the read lock.
func (e *Engine) tuning() (*config.SearchConfig, *ranking.Scorer) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.config, e.scorer
}

// Search runs a full search pass: fetch candidates, pre-filter by metadata,
// hydrate top blog candidates, score, filter zero scores, sort, truncate.
// An empty or whitespace-only query yields an empty result set, not an error.
func (e *Engine) Search(ctx context.Context, query, language string) (*models.SearchResponse, error) {
	cfg, scorer := e.tuning()

	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return &models.SearchResponse{Results: []*models.SearchItem{}, Count: 0, Query: trimmed}, nil
	}
	if language == "" {
		language = cfg.DefaultLanguage
	}

	posts, projects := e.fetchSources(ctx, language)
	candidates := buildCandidates(posts, projects)
	matched := prefilter(candidates, trimmed)
	e.hydrate(ctx, matched, cfg.HydrationLimit)

	scored := make([]*models.SearchItem, 0, len(matched))
	for _, item := range matched {
		body := extract.Text(item.Content)
		item.Score = scorer.Score(item, trimmed, body)
		if item.Score > 0 {
			scored = append(scored, item)
		}
	}

	sortByRelevance(scored)
	if len(scored) > cfg.MaxResults {
		scored = scored[:cfg.MaxResults]
	}

	return &models.SearchResponse{
		Results: scored,
		Count:   len(scored),
		Query:   trimmed,
	}, nil
}

// fetchSources fetches blog posts and projects concurrently. Each source is
// independently guarded: a failure is logged and that source contributes an
// empty list rather than failing the request.
func (e *Engine) fetchSources(ctx context.Context, language string) ([]*models.BlogPost, []*models.Project) {
	var (
		posts    []*models.BlogPost
		projects []*models.Project
		wg       sync.WaitGroup
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		got, err := e.store.ListBlogPosts(ctx, language)
		if err != nil {
			e.logger.Warn("blog post fetch failed, continuing without posts", zap.Error(err))
			return
		}
		posts = got
	}()
	go func() {
		defer wg.Done()
		got, err := e.store.ListProjects(ctx)
		if err != nil {
			e.logger.Warn("project fetch failed, continuing without projects", zap.Error(err))
			return
		}
		projects = got
	}()
	wg.Wait()

	return posts, projects
}

// buildCandidates merges both sources into a unified candidate list with
// empty content.
func buildCandidates(posts []*models.BlogPost, projects []*models.Project) []*models.SearchItem {
	items := make([]*models.SearchItem, 0, len(posts)+len(projects))
	for _, p := range posts {
		items = append(items, &models.SearchItem{
			ID:      p.ID,
			Slug:    p.Slug,
			Title:   p.Title,
			Excerpt: p.Excerpt,
			Type:    models.ItemTypeBlog,
			Date:    p.Date,
			Tags:    p.Tags,
		})
	}
	for _, p := range projects {
		items = append(items, &models.SearchItem{
			ID:           p.ID,
			Slug:         p.Slug,
			Title:        p.Title,
			Excerpt:      p.Description,
			Type:         models.ItemTypeProject,
			Date:         p.Date,
			Technologies: p.Technologies,
		})
	}
	return items
}

// prefilter keeps candidates whose metadata contains the whole lowercased
// query as a substring. This is intentionally coarser than the per-word
// scorer: it cheaply narrows the set before content hydration.
func prefilter(items []*models.SearchItem, query string) []*models.SearchItem {
	q := strings.ToLower(query)
	kept := make([]*models.SearchItem, 0, len(items))
	for _, item := range items {
		if metadataContains(item, q) {
			kept = append(kept, item)
		}
	}
	return kept
}

func metadataContains(item *models.SearchItem, q string) bool {
	if strings.Contains(strings.ToLower(item.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(item.Excerpt), q) {
		return true
	}
	for _, tag := range item.TagLike() {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// hydrate fetches full content for the first limit blog candidates, in their
// current order, concurrently. Items are hydrated in place, so recombination
// cannot duplicate a candidate. A per-item failure is logged and the item
// keeps empty content; projects are never hydrated.
func (e *Engine) hydrate(ctx context.Context, items []*models.SearchItem, limit int) {
	var wg sync.WaitGroup
	for _, item := range items {
		if limit <= 0 {
			break
		}
		if item.Type != models.ItemTypeBlog {
			continue
		}
		limit--
		wg.Add(1)
		go func(item *models.SearchItem) {
			defer wg.Done()
			blocks, err := e.store.GetBlogPostContent(ctx, item.ID)
			if err != nil {
				e.logger.Warn("content hydration failed, scoring on metadata only",
					zap.String("id", item.ID),
					zap.Error(err),
				)
				return
			}
			item.Content = blocks
		}(item)
	}
	wg.Wait()
}

// sortByRelevance orders items by score descending, breaking ties by date
// descending. Unparseable dates sort as the zero time.
func sortByRelevance(items []*models.SearchItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		di, _ := models.ParseDate(items[i].Date)
		dj, _ := models.ParseDate(items[j].Date)
		return di.After(dj)
	})
}
