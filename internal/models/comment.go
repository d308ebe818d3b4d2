package models

import (
	"fmt"
	"time"
)

// Comment is a stored reader comment on a blog post. Replies is populated
// only when comments are assembled into a tree for serving.
type Comment struct {
	ID        string     `json:"id"`
	PostID    string     `json:"post_id"`
	ParentID  string     `json:"parent_id,omitempty"`
	Author    string     `json:"author"`
	Body      string     `json:"body"`
	CreatedAt time.Time  `json:"created_at"`
	Replies   []*Comment `json:"replies,omitempty"`
}

// CommentInput is the request payload for creating a comment.
type CommentInput struct {
	Author   string `json:"author"`
	Body     string `json:"body"`
	ParentID string `json:"parent_id,omitempty"`
}

const (
	maxCommentAuthorLen = 120
	maxCommentBodyLen   = 4000
)

// Validate checks required fields and length limits.
func (c *CommentInput) Validate() error {
	if c.Author == "" {
		return fmt.Errorf("author cannot be empty")
	}
	if c.Body == "" {
		return fmt.Errorf("body cannot be empty")
	}
	if len(c.Author) > maxCommentAuthorLen {
		return fmt.Errorf("author exceeds %d characters", maxCommentAuthorLen)
	}
	if len(c.Body) > maxCommentBodyLen {
		return fmt.Errorf("body exceeds %d characters", maxCommentBodyLen)
	}
	return nil
}
