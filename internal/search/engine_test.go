package search

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/models"
	"github.com/akiyama/shirabe/internal/ranking"
	"go.uber.org/zap"
)

// fakeStore is an in-memory content.Store that records hydration calls and
// can fail per source or per item.
type fakeStore struct {
	mu         sync.Mutex
	posts      []*models.BlogPost
	projects   []*models.Project
	content    map[string][]models.Block
	postsErr   error
	projectErr error
	contentErr map[string]error
	fetched    []string
}

func (f *fakeStore) ListBlogPosts(_ context.Context, language string) ([]*models.BlogPost, error) {
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	var out []*models.BlogPost
	for _, p := range f.posts {
		if p.Language == "" || p.Language == language {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) ListProjects(_ context.Context) ([]*models.Project, error) {
	if f.projectErr != nil {
		return nil, f.projectErr
	}
	return f.projects, nil
}

func (f *fakeStore) GetBlogPostContent(_ context.Context, id string) ([]models.Block, error) {
	f.mu.Lock()
	f.fetched = append(f.fetched, id)
	f.mu.Unlock()
	if err := f.contentErr[id]; err != nil {
		return nil, err
	}
	return f.content[id], nil
}

func (f *fakeStore) fetchedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.fetched...)
	sort.Strings(out)
	return out
}

func testConfig() *config.SearchConfig {
	return &config.SearchConfig{
		DefaultLanguage: "English",
		HydrationLimit:  10,
		MaxResults:      20,
		Ranking:         *ranking.DefaultConfig(),
	}
}

func newTestEngine(store *fakeStore) *Engine {
	return NewEngine(store, testConfig(), zap.NewNop())
}

func paragraph(text string) models.Block {
	return models.Block{
		Type:     models.BlockParagraph,
		RichText: []models.RichText{{PlainText: text}},
	}
}

func TestEngine_EmptyQuery(t *testing.T) {
	engine := newTestEngine(&fakeStore{})
	for _, query := range []string{"", "   ", "\t\n"} {
		resp, err := engine.Search(context.Background(), query, "English")
		if err != nil {
			t.Fatalf("Search(%q): %v", query, err)
		}
		if resp.Count != 0 || len(resp.Results) != 0 {
			t.Errorf("Search(%q): got %d results, want 0", query, resp.Count)
		}
		if resp.Results == nil {
			t.Errorf("Search(%q): results should be an empty slice, not nil", query)
		}
	}
}

func TestEngine_MergesBlogAndProjectCandidates(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Title: "Caching strategies", Tags: []string{"performance"}, Date: "2020-01-10"},
		},
		projects: []*models.Project{
			{ID: "p1", Title: "Cache layer", Technologies: []string{"redis"}, Date: "2020-02-01"},
		},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "cach", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count: got %d, want 2", resp.Count)
	}
	types := map[models.ItemType]bool{}
	for _, r := range resp.Results {
		types[r.Type] = true
	}
	if !types[models.ItemTypeBlog] || !types[models.ItemTypeProject] {
		t.Errorf("expected both item types in results: %+v", resp.Results)
	}
}

func TestEngine_PrefilterExcludesUnrelated(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Title: "Go profiling", Date: "2020-01-10"},
			{ID: "b2", Title: "Gardening notes", Date: "2020-01-11"},
		},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "profiling", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].ID != "b1" {
		t.Errorf("results: %+v", resp.Results)
	}
	// b2 never passed the pre-filter, so it must not have been hydrated.
	for _, id := range store.fetchedIDs() {
		if id == "b2" {
			t.Error("pre-filtered item was hydrated")
		}
	}
}

func TestEngine_PartialSourceFailure(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Title: "Deploying with Docker", Date: "2020-01-10"},
		},
		projectErr: fmt.Errorf("project source down"),
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "docker", "English")
	if err != nil {
		t.Fatalf("Search should tolerate a failed source: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].ID != "b1" {
		t.Errorf("expected blog-only results, got %+v", resp.Results)
	}
}

func TestEngine_AllSourcesFailing(t *testing.T) {
	store := &fakeStore{
		postsErr:   fmt.Errorf("posts down"),
		projectErr: fmt.Errorf("projects down"),
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "anything", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count: got %d, want 0", resp.Count)
	}
}

func TestEngine_HydrationBound(t *testing.T) {
	store := &fakeStore{content: map[string][]models.Block{}}
	for i := 0; i < 15; i++ {
		store.posts = append(store.posts, &models.BlogPost{
			ID:    fmt.Sprintf("b%02d", i),
			Title: fmt.Sprintf("Kubernetes notes %d", i),
			Date:  fmt.Sprintf("2020-01-%02d", i+1),
		})
	}
	engine := newTestEngine(store)

	if _, err := engine.Search(context.Background(), "kubernetes", "English"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	fetched := store.fetchedIDs()
	if len(fetched) != 10 {
		t.Fatalf("hydrated %d items, want 10", len(fetched))
	}
	// The first ten candidates in listing order, not a re-sorted set.
	for i, id := range fetched {
		want := fmt.Sprintf("b%02d", i)
		if id != want {
			t.Errorf("hydrated[%d] = %s, want %s", i, id, want)
		}
	}
}

func TestEngine_ProjectsNeverHydrated(t *testing.T) {
	store := &fakeStore{
		projects: []*models.Project{
			{ID: "p1", Title: "Terraform modules", Date: "2020-01-01"},
		},
	}
	engine := newTestEngine(store)

	if _, err := engine.Search(context.Background(), "terraform", "English"); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(store.fetchedIDs()) != 0 {
		t.Errorf("projects were hydrated: %v", store.fetchedIDs())
	}
}

func TestEngine_HydrationFailureKeepsItem(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Title: "GraphQL basics", Date: "2020-01-10"},
		},
		contentErr: map[string]error{"b1": fmt.Errorf("content fetch failed")},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "graphql", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].ID != "b1" {
		t.Errorf("item should survive hydration failure: %+v", resp.Results)
	}
}

func TestEngine_BodyTextRaisesScore(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "thin", Title: "gRPC part one", Date: "2020-01-10"},
			{ID: "rich", Title: "gRPC part two", Date: "2020-01-09"},
		},
		content: map[string][]models.Block{
			"rich": {paragraph("grpc streaming and grpc interceptors")},
		},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "grpc", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count: got %d, want 2", resp.Count)
	}
	if resp.Results[0].ID != "rich" {
		t.Errorf("hydrated body should rank first: %+v", resp.Results)
	}
	if resp.Results[0].Score <= resp.Results[1].Score {
		t.Errorf("scores: %v vs %v", resp.Results[0].Score, resp.Results[1].Score)
	}
}

func TestEngine_TieBreakByDate(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "older", Title: "vim", Date: "2020-02-01"},
			{ID: "newer", Title: "vim", Date: "2020-03-01"},
		},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "vim", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count: got %d, want 2", resp.Count)
	}
	if resp.Results[0].Score != resp.Results[1].Score {
		t.Fatalf("expected a score tie, got %v vs %v", resp.Results[0].Score, resp.Results[1].Score)
	}
	if resp.Results[0].ID != "newer" {
		t.Errorf("tie-break: got %s first, want newer", resp.Results[0].ID)
	}
}

func TestEngine_Truncation(t *testing.T) {
	store := &fakeStore{}
	for i := 0; i < 25; i++ {
		store.posts = append(store.posts, &models.BlogPost{
			ID:    fmt.Sprintf("b%02d", i),
			Title: fmt.Sprintf("linux tip %d", i),
			Date:  fmt.Sprintf("2020-01-%02d", i+1),
		})
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "linux", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 20 || resp.Count != 20 {
		t.Errorf("truncation: got %d results, count %d, want 20/20", len(resp.Results), resp.Count)
	}
}

func TestEngine_NonMatchingItemExcluded(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Title: "Kubernetes", Date: "2020-01-10"},
		},
	}
	engine := newTestEngine(store)

	resp, err := engine.Search(context.Background(), "serverless", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("count: got %d, want 0", resp.Count)
	}
}

func TestEngine_Reload(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{{ID: "b1", Title: "rust", Date: "2020-01-10"}},
	}
	engine := newTestEngine(store)

	cfg := testConfig()
	cfg.MaxResults = 1
	cfg.Ranking.TitleExactScore = 500
	engine.Reload(cfg)

	resp, err := engine.Search(context.Background(), "rust", "English")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if resp.Count != 1 || resp.Results[0].Score != 500 {
		t.Errorf("reloaded tuning not applied: %+v", resp.Results)
	}
}

func TestEngine_TagCloud(t *testing.T) {
	store := &fakeStore{
		posts: []*models.BlogPost{
			{ID: "b1", Tags: []string{"go", "testing"}},
			{ID: "b2", Tags: []string{"go"}},
		},
		projects: []*models.Project{
			{ID: "p1", Technologies: []string{"go", "sqlite"}},
		},
	}
	engine := newTestEngine(store)

	cloud, err := engine.TagCloud(context.Background(), "")
	if err != nil {
		t.Fatalf("TagCloud: %v", err)
	}
	want := []models.TagCount{
		{Tag: "go", Count: 3},
		{Tag: "sqlite", Count: 1},
		{Tag: "testing", Count: 1},
	}
	if len(cloud) != len(want) {
		t.Fatalf("cloud: got %d entries, want %d", len(cloud), len(want))
	}
	for i := range want {
		if cloud[i] != want[i] {
			t.Errorf("cloud[%d] = %+v, want %+v", i, cloud[i], want[i])
		}
	}
}

func TestEngine_TagCloud_SourceFailure(t *testing.T) {
	store := &fakeStore{
		posts:      []*models.BlogPost{{ID: "b1", Tags: []string{"go"}}},
		projectErr: fmt.Errorf("down"),
	}
	engine := newTestEngine(store)

	cloud, err := engine.TagCloud(context.Background(), "English")
	if err != nil {
		t.Fatalf("TagCloud: %v", err)
	}
	if len(cloud) != 1 || cloud[0].Tag != "go" {
		t.Errorf("cloud: %+v", cloud)
	}
}
