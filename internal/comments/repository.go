// Package comments stores and threads reader comments on blog posts.
package comments

import (
	"context"

	"github.com/akiyama/shirabe/internal/models"
)

// Repository defines comment persistence operations. Implementations are
// injected explicitly; there is no package-level store.
type Repository interface {
	// ListByPost returns all comments for a post, oldest first.
	ListByPost(ctx context.Context, postID string) ([]*models.Comment, error)
	// Append stores a new comment.
	Append(ctx context.Context, comment *models.Comment) error

	Close() error
}

// BuildTree threads a flat, chronologically ordered comment list into a
// reply tree. A reply whose parent is missing from the list surfaces as a
// root rather than being dropped. Sibling order follows input order.
func BuildTree(flat []*models.Comment) []*models.Comment {
	byID := make(map[string]*models.Comment, len(flat))
	for _, c := range flat {
		byID[c.ID] = c
	}

	roots := make([]*models.Comment, 0, len(flat))
	for _, c := range flat {
		if c.ParentID != "" {
			if parent, ok := byID[c.ParentID]; ok && parent != c {
				parent.Replies = append(parent.Replies, c)
				continue
			}
		}
		roots = append(roots, c)
	}
	return roots
}
