package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/akiyama/shirabe/internal/config"
	"github.com/akiyama/shirabe/internal/models"
	"go.uber.org/zap"
)

const defaultPageSize = 100

// Client talks to the hosted document-database HTTP API (Notion-style:
// database query endpoints for listings, block children for post content).
type Client struct {
	httpClient        *http.Client
	baseURL           string
	token             string
	apiVersion        string
	blogDatabaseID    string
	projectDatabaseID string
	logger            *zap.Logger
}

// NewClient creates a content client from config. The base URL is
// configurable so tests can point it at an httptest server.
func NewClient(cfg *config.ContentConfig, logger *zap.Logger) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient:        &http.Client{Timeout: timeout},
		baseURL:           cfg.BaseURL,
		token:             cfg.Token,
		apiVersion:        cfg.APIVersion,
		blogDatabaseID:    cfg.BlogDatabaseID,
		projectDatabaseID: cfg.ProjectDatabaseID,
		logger:            logger,
	}
}

// queryRequest is the body for a database query call.
type queryRequest struct {
	Filter      map[string]interface{} `json:"filter,omitempty"`
	Sorts       []map[string]string    `json:"sorts,omitempty"`
	StartCursor string                 `json:"start_cursor,omitempty"`
	PageSize    int                    `json:"page_size,omitempty"`
}

// queryResponse is a page of database query results.
type queryResponse struct {
	Results    []page `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}

// page is a single database row with its typed properties.
type page struct {
	ID          string              `json:"id"`
	CreatedTime string              `json:"created_time"`
	Properties  map[string]property `json:"properties"`
}

// blockChildrenResponse is a page of a post's content blocks.
type blockChildrenResponse struct {
	Results    []models.Block `json:"results"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor"`
}

// ListBlogPosts returns published blog post summaries for a language,
// newest first.
func (c *Client) ListBlogPosts(ctx context.Context, language string) ([]*models.BlogPost, error) {
	req := &queryRequest{
		Filter: map[string]interface{}{
			"and": []map[string]interface{}{
				{"property": "Published", "checkbox": map[string]bool{"equals": true}},
				{"property": "Language", "select": map[string]string{"equals": language}},
			},
		},
		Sorts:    []map[string]string{{"property": "Date", "direction": "descending"}},
		PageSize: defaultPageSize,
	}
	pages, err := c.queryDatabase(ctx, c.blogDatabaseID, req)
	if err != nil {
		return nil, fmt.Errorf("listing blog posts: %w", err)
	}
	posts := make([]*models.BlogPost, 0, len(pages))
	for _, p := range pages {
		posts = append(posts, parseBlogPost(p))
	}
	return posts, nil
}

// ListProjects returns all portfolio project summaries.
func (c *Client) ListProjects(ctx context.Context) ([]*models.Project, error) {
	req := &queryRequest{PageSize: defaultPageSize}
	pages, err := c.queryDatabase(ctx, c.projectDatabaseID, req)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	projects := make([]*models.Project, 0, len(pages))
	for _, p := range pages {
		projects = append(projects, parseProject(p))
	}
	return projects, nil
}

// GetBlogPostContent returns the rich-content blocks of a single post,
// following pagination until exhausted.
func (c *Client) GetBlogPostContent(ctx context.Context, id string) ([]models.Block, error) {
	var blocks []models.Block
	cursor := ""
	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", url.PathEscape(id), defaultPageSize)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		var resp blockChildrenResponse
		if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
			return nil, fmt.Errorf("fetching post content %s: %w", id, err)
		}
		blocks = append(blocks, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		cursor = resp.NextCursor
	}
	return blocks, nil
}

// queryDatabase runs a database query, following pagination.
func (c *Client) queryDatabase(ctx context.Context, databaseID string, req *queryRequest) ([]page, error) {
	var pages []page
	for {
		var resp queryResponse
		path := fmt.Sprintf("/v1/databases/%s/query", url.PathEscape(databaseID))
		if err := c.do(ctx, http.MethodPost, path, req, &resp); err != nil {
			return nil, err
		}
		pages = append(pages, resp.Results...)
		if !resp.HasMore || resp.NextCursor == "" {
			break
		}
		req.StartCursor = resp.NextCursor
	}
	return pages, nil
}

// do performs one authenticated request and decodes the JSON response.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Notion-Version", c.apiVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("content service request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("content service error response",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("content service returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
