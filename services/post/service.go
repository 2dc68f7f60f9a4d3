package post

import (
	"context"
	"fmt"
	"strings"

	"beu/models"
	"beu/services/optimistic"
	"beu/services/storage"

	"go.uber.org/zap"
)

type DefaultPostService struct {
	API     PostAPI
	Cache   PostCache
	Storage storage.StorageService
	Logger  *zap.Logger
}

func NewDefaultPostService(api PostAPI, cache PostCache, store storage.StorageService, logger *zap.Logger) *DefaultPostService {
	return &DefaultPostService{API: api, Cache: cache, Storage: store, Logger: logger}
}

func (s *DefaultPostService) List(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error) {
	if cached, err := s.Cache.GetList(ctx, userID, filter); err != nil {
		s.Logger.Warn("Post cache read failed", zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}
	posts, err := s.API.ListPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	if err := s.Cache.SetList(ctx, userID, filter, posts); err != nil {
		s.Logger.Warn("Post cache write failed", zap.Error(err))
	}
	return posts, nil
}

func (s *DefaultPostService) Get(ctx context.Context, userID, id string) (*models.Post, error) {
	if cached, err := s.Cache.GetPost(ctx, userID, id); err != nil {
		s.Logger.Warn("Post cache read failed", zap.String("postID", id), zap.Error(err))
	} else if cached != nil {
		return cached, nil
	}
	p, err := s.API.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetPost(ctx, userID, *p); err != nil {
		s.Logger.Warn("Post cache write failed", zap.String("postID", id), zap.Error(err))
	}
	return p, nil
}

// Create uploads the photos, then creates the post. Uploaded photos are
// removed again if the backend refuses the post.
func (s *DefaultPostService) Create(ctx context.Context, userID string, in NewPost) (*models.Post, error) {
	in.Caption = strings.TrimSpace(in.Caption)
	if in.Caption == "" && in.Before == nil && in.After == nil {
		return nil, ErrCaptionRequired
	}
	req := models.CreatePostRequest{Caption: in.Caption, ProviderID: in.ProviderID}

	var uploaded []string
	cleanup := func() {
		for _, id := range uploaded {
			if err := s.Storage.DeletePhoto(context.WithoutCancel(ctx), id); err != nil {
				s.Logger.Error("Failed to remove orphaned photo", zap.String("publicID", id), zap.Error(err))
			}
		}
	}
	for _, slot := range []struct {
		photo *Photo
		dst   *string
	}{{in.Before, &req.BeforePhoto}, {in.After, &req.AfterPhoto}} {
		if slot.photo == nil {
			continue
		}
		if s.Storage == nil {
			return nil, ErrNoStorage
		}
		up, err := s.Storage.UploadPhoto(ctx, slot.photo.Body, slot.photo.Filename)
		if err != nil {
			cleanup()
			return nil, err
		}
		uploaded = append(uploaded, up.PublicID)
		*slot.dst = up.URL
	}

	created, err := s.API.CreatePost(ctx, req)
	if err != nil {
		cleanup()
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.invalidate(ctx, userID, "")
	s.Logger.Info("Post created", zap.String("userID", userID), zap.String("postID", created.ID))
	return created, nil
}

// SetLiked likes or unlikes a post, updating the cached copy first and
// restoring it if the backend refuses.
func (s *DefaultPostService) SetLiked(ctx context.Context, userID, id string, liked bool) error {
	var before *models.Post
	label := "post.unlike"
	if liked {
		label = "post.like"
	}
	cmd := optimistic.Funcs{
		Label: label,
		ApplyFn: func(ctx context.Context) error {
			cached, err := s.Cache.GetPost(ctx, userID, id)
			if err != nil || cached == nil {
				return nil
			}
			before = cached
			next := *cached
			if next.IsLiked != liked {
				next.IsLiked = liked
				if liked {
					next.LikesCount++
				} else if next.LikesCount > 0 {
					next.LikesCount--
				}
			}
			return s.Cache.SetPost(ctx, userID, next)
		},
		UndoFn: func(ctx context.Context) error {
			if before == nil {
				return nil
			}
			return s.Cache.SetPost(ctx, userID, *before)
		},
	}
	err := optimistic.Run(ctx, s.Logger, cmd, func(ctx context.Context) error {
		if liked {
			return s.API.LikePost(ctx, id)
		}
		return s.API.UnlikePost(ctx, id)
	})
	if err != nil {
		return err
	}
	if err := s.Cache.InvalidateLists(ctx, userID); err != nil {
		s.Logger.Warn("Post list invalidation failed", zap.Error(err))
	}
	return nil
}

func (s *DefaultPostService) Comments(ctx context.Context, postID string) ([]models.Comment, error) {
	return s.API.ListComments(ctx, postID)
}

func (s *DefaultPostService) Comment(ctx context.Context, userID, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	req.Content = strings.TrimSpace(req.Content)
	if req.Content == "" {
		return nil, ErrEmptyComment
	}
	c, err := s.API.CreateComment(ctx, postID, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID, postID)
	return c, nil
}

func (s *DefaultPostService) invalidate(ctx context.Context, userID, postID string) {
	if postID != "" {
		if err := s.Cache.DeletePost(ctx, userID, postID); err != nil {
			s.Logger.Warn("Post cache invalidation failed", zap.String("postID", postID), zap.Error(err))
		}
	}
	if err := s.Cache.InvalidateLists(ctx, userID); err != nil {
		s.Logger.Warn("Post list invalidation failed", zap.Error(err))
	}
}
