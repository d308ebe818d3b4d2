package comments

import (
	"context"
	"sync"
	"time"

	"github.com/akiyama/shirabe/internal/models"
)

// MemoryRepository is a mutex-guarded in-memory Repository. It is used in
// tests and as a fallback when no comments database is configured; unlike a
// module-level collection it is constructed and injected explicitly.
type MemoryRepository struct {
	mu     sync.RWMutex
	byPost map[string][]*models.Comment
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byPost: make(map[string][]*models.Comment)}
}

// ListByPost returns copies of the stored comments for a post, oldest first.
func (r *MemoryRepository) ListByPost(_ context.Context, postID string) ([]*models.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byPost[postID]
	out := make([]*models.Comment, len(stored))
	for i, c := range stored {
		clone := *c
		clone.Replies = nil
		out[i] = &clone
	}
	return out, nil
}

// Append stores a new comment. A missing creation time is set to now.
func (r *MemoryRepository) Append(_ context.Context, comment *models.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}
	clone := *comment
	clone.Replies = nil
	r.byPost[comment.PostID] = append(r.byPost[comment.PostID], &clone)
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error {
	return nil
}
