package post

import (
	"context"
	"errors"
	"io"

	"beu/models"
)

var (
	ErrCaptionRequired = errors.New("caption or a photo is required")
	ErrEmptyComment    = errors.New("comment content is required")
	ErrNoStorage       = errors.New("photo uploads are not configured")
)

// PostAPI is the part of the backend client the service needs.
type PostAPI interface {
	ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	GetPost(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error)
	LikePost(ctx context.Context, id string) error
	UnlikePost(ctx context.Context, id string) error
	ListComments(ctx context.Context, postID string) ([]models.Comment, error)
	CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error)
}

// Photo is an uploaded image waiting to be stored.
type Photo struct {
	Filename string
	Body     io.Reader
}

// NewPost is a post being created with optional before/after photos.
type NewPost struct {
	Caption    string
	ProviderID string
	Before     *Photo
	After      *Photo
}

type PostService interface {
	List(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error)
	Get(ctx context.Context, userID, id string) (*models.Post, error)
	Create(ctx context.Context, userID string, in NewPost) (*models.Post, error)
	SetLiked(ctx context.Context, userID, id string, liked bool) error
	Comments(ctx context.Context, postID string) ([]models.Comment, error)
	Comment(ctx context.Context, userID, postID string, req models.CreateCommentRequest) (*models.Comment, error)
}
