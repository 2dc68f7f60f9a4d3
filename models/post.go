package models

import "time"

// Post is a before/after photo post.
type Post struct {
	ID            string    `json:"id"`
	AuthorID      string    `json:"author_id"`
	AuthorName    string    `json:"author_name,omitempty"`
	ProviderID    string    `json:"provider_id,omitempty"`
	Caption       string    `json:"caption"`
	BeforePhoto   string    `json:"before_photo,omitempty"`
	AfterPhoto    string    `json:"after_photo,omitempty"`
	LikesCount    int       `json:"likes_count"`
	CommentsCount int       `json:"comments_count"`
	IsLiked       bool      `json:"is_liked"`
	CreatedAt     time.Time `json:"created_at"`
}

// Comment is a comment on a post.
type Comment struct {
	ID         string    `json:"id"`
	PostID     string    `json:"post_id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

// PostFilter narrows a post listing.
type PostFilter struct {
	ProviderID string `form:"provider_id"`
	AuthorID   string `form:"author_id"`
	Page       int    `form:"page"`
}

// CreatePostRequest is the payload forwarded to the backend once photos are uploaded.
type CreatePostRequest struct {
	Caption     string `json:"caption"`
	ProviderID  string `json:"provider_id,omitempty"`
	BeforePhoto string `json:"before_photo,omitempty"`
	AfterPhoto  string `json:"after_photo,omitempty"`
}

// CreateCommentRequest adds a comment.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
