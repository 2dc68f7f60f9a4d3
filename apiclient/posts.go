package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"beu/models"
)

func (c *Client) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	q := url.Values{}
	if filter.ProviderID != "" {
		q.Set("provider_id", filter.ProviderID)
	}
	if filter.AuthorID != "" {
		q.Set("author_id", filter.AuthorID)
	}
	if filter.Page > 0 {
		q.Set("page", strconv.Itoa(filter.Page))
	}
	return getList[models.Post](ctx, c, "posts.list", "/posts/", q)
}

func (c *Client) GetPost(ctx context.Context, id string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, "posts.get", http.MethodGet, "/posts/"+escape(id)+"/", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, "posts.create", http.MethodPost, "/posts/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) LikePost(ctx context.Context, id string) error {
	return c.do(ctx, "posts.like", http.MethodPost, "/posts/"+escape(id)+"/like/", nil, struct{}{}, nil)
}

func (c *Client) UnlikePost(ctx context.Context, id string) error {
	return c.do(ctx, "posts.unlike", http.MethodDelete, "/posts/"+escape(id)+"/like/", nil, nil, nil)
}

func (c *Client) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return getList[models.Comment](ctx, c, "posts.comments", "/posts/"+escape(postID)+"/comments/", nil)
}

func (c *Client) CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	var out models.Comment
	if err := c.do(ctx, "posts.comment", http.MethodPost, "/posts/"+escape(postID)+"/comments/", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
