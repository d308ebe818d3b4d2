// Package content provides access to the hosted document database that
// holds the site's blog posts and portfolio projects.
package content

import (
	"context"

	"github.com/akiyama/shirabe/internal/models"
)

// Store fetches content summaries and full post content from the content
// service. Implementations may fail on any call; callers are expected to
// degrade gracefully rather than abort a whole request.
type Store interface {
	// ListBlogPosts returns published blog post summaries for a language.
	ListBlogPosts(ctx context.Context, language string) ([]*models.BlogPost, error)
	// ListProjects returns all portfolio project summaries.
	ListProjects(ctx context.Context) ([]*models.Project, error)
	// GetBlogPostContent returns the rich-content blocks of a single post.
	GetBlogPostContent(ctx context.Context, id string) ([]models.Block, error)
}
