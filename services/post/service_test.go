package post

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"beu/apiclient"
	"beu/models"
	"beu/services/storage"

	"go.uber.org/zap"
)

type mockPostAPI struct {
	posts      []models.Post
	post       *models.Post
	createErr  error
	likeErr    error
	listCalls  int
	likeCalls  []string
	createdReq models.CreatePostRequest
}

func (m *mockPostAPI) ListPosts(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	m.listCalls++
	return m.posts, nil
}

func (m *mockPostAPI) GetPost(ctx context.Context, id string) (*models.Post, error) {
	if m.post == nil {
		return nil, &apiclient.APIError{StatusCode: 404}
	}
	return m.post, nil
}

func (m *mockPostAPI) CreatePost(ctx context.Context, req models.CreatePostRequest) (*models.Post, error) {
	m.createdReq = req
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &models.Post{ID: "new", Caption: req.Caption, BeforePhoto: req.BeforePhoto, AfterPhoto: req.AfterPhoto}, nil
}

func (m *mockPostAPI) LikePost(ctx context.Context, id string) error {
	m.likeCalls = append(m.likeCalls, "like:"+id)
	return m.likeErr
}

func (m *mockPostAPI) UnlikePost(ctx context.Context, id string) error {
	m.likeCalls = append(m.likeCalls, "unlike:"+id)
	return m.likeErr
}

func (m *mockPostAPI) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	return nil, nil
}

func (m *mockPostAPI) CreateComment(ctx context.Context, postID string, req models.CreateCommentRequest) (*models.Comment, error) {
	return &models.Comment{ID: "c1", Content: req.Content}, nil
}

type memoryCache struct {
	posts       map[string]models.Post
	lists       map[string][]models.Post
	invalidated int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{posts: map[string]models.Post{}, lists: map[string][]models.Post{}}
}

func (c *memoryCache) GetPost(ctx context.Context, userID, id string) (*models.Post, error) {
	p, ok := c.posts[userID+":"+id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *memoryCache) SetPost(ctx context.Context, userID string, post models.Post) error {
	c.posts[userID+":"+post.ID] = post
	return nil
}

func (c *memoryCache) DeletePost(ctx context.Context, userID, id string) error {
	delete(c.posts, userID+":"+id)
	return nil
}

func (c *memoryCache) GetList(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error) {
	return c.lists[listKey(userID, filter)], nil
}

func (c *memoryCache) SetList(ctx context.Context, userID string, filter models.PostFilter, posts []models.Post) error {
	c.lists[listKey(userID, filter)] = posts
	return nil
}

func (c *memoryCache) InvalidateLists(ctx context.Context, userID string) error {
	c.invalidated++
	c.lists = map[string][]models.Post{}
	return nil
}

type memoryStorage struct {
	uploads   []string
	deleted   []string
	uploadErr error
}

func (s *memoryStorage) UploadPhoto(ctx context.Context, r io.Reader, filename string) (*storage.UploadedPhoto, error) {
	if s.uploadErr != nil {
		return nil, s.uploadErr
	}
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	id := "beu/posts/" + filename
	s.uploads = append(s.uploads, id)
	return &storage.UploadedPhoto{PublicID: id, URL: "https://cdn.example/" + id}, nil
}

func (s *memoryStorage) DeletePhoto(ctx context.Context, publicID string) error {
	s.deleted = append(s.deleted, publicID)
	return nil
}

func photo(name string) *Photo {
	return &Photo{Filename: name, Body: strings.NewReader("jpeg bytes")}
}

func TestListIsCached(t *testing.T) {
	api := &mockPostAPI{posts: []models.Post{{ID: "p1"}}}
	svc := NewDefaultPostService(api, newMemoryCache(), nil, zap.NewNop())

	for i := 0; i < 2; i++ {
		posts, err := svc.List(context.Background(), "u1", models.PostFilter{Page: 1})
		if err != nil || len(posts) != 1 {
			t.Fatalf("posts = %v, err = %v", posts, err)
		}
	}
	if api.listCalls != 1 {
		t.Errorf("backend listed %d times, want 1", api.listCalls)
	}
}

func TestCreateUploadsPhotos(t *testing.T) {
	api := &mockPostAPI{}
	store := &memoryStorage{}
	cache := newMemoryCache()
	svc := NewDefaultPostService(api, cache, store, zap.NewNop())

	p, err := svc.Create(context.Background(), "u1", NewPost{Caption: "  antes y después ", Before: photo("a.jpg"), After: photo("b.jpg")})
	if err != nil {
		t.Fatal(err)
	}
	if api.createdReq.Caption != "antes y después" {
		t.Errorf("caption = %q", api.createdReq.Caption)
	}
	if p.BeforePhoto != "https://cdn.example/beu/posts/a.jpg" || p.AfterPhoto != "https://cdn.example/beu/posts/b.jpg" {
		t.Errorf("post = %+v", p)
	}
	if cache.invalidated != 1 {
		t.Errorf("lists invalidated %d times", cache.invalidated)
	}
}

func TestCreateRemovesPhotosWhenBackendRefuses(t *testing.T) {
	api := &mockPostAPI{createErr: &apiclient.APIError{StatusCode: 400}}
	store := &memoryStorage{}
	svc := NewDefaultPostService(api, newMemoryCache(), store, zap.NewNop())

	_, err := svc.Create(context.Background(), "u1", NewPost{Before: photo("a.jpg"), After: photo("b.jpg")})
	if apiclient.StatusCode(err) != 400 {
		t.Fatalf("err = %v", err)
	}
	if len(store.deleted) != 2 {
		t.Errorf("deleted = %v, want both uploads", store.deleted)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := NewDefaultPostService(&mockPostAPI{}, newMemoryCache(), nil, zap.NewNop())
	if _, err := svc.Create(context.Background(), "u1", NewPost{Caption: "   "}); !errors.Is(err, ErrCaptionRequired) {
		t.Errorf("err = %v, want ErrCaptionRequired", err)
	}
	if _, err := svc.Create(context.Background(), "u1", NewPost{Before: photo("a.jpg")}); !errors.Is(err, ErrNoStorage) {
		t.Errorf("err = %v, want ErrNoStorage", err)
	}
}

func TestSetLikedRollsBackCachedPost(t *testing.T) {
	api := &mockPostAPI{likeErr: &apiclient.APIError{StatusCode: 503}}
	cache := newMemoryCache()
	cache.posts["u1:p1"] = models.Post{ID: "p1", LikesCount: 4}
	svc := NewDefaultPostService(api, cache, nil, zap.NewNop())

	if err := svc.SetLiked(context.Background(), "u1", "p1", true); apiclient.StatusCode(err) != 503 {
		t.Fatalf("err = %v", err)
	}
	if p := cache.posts["u1:p1"]; p.IsLiked || p.LikesCount != 4 {
		t.Errorf("cached post after rollback = %+v", p)
	}
}

func TestSetLikedUpdatesCachedPost(t *testing.T) {
	api := &mockPostAPI{}
	cache := newMemoryCache()
	cache.posts["u1:p1"] = models.Post{ID: "p1", LikesCount: 4, IsLiked: true}
	svc := NewDefaultPostService(api, cache, nil, zap.NewNop())

	if err := svc.SetLiked(context.Background(), "u1", "p1", false); err != nil {
		t.Fatal(err)
	}
	if p := cache.posts["u1:p1"]; p.IsLiked || p.LikesCount != 3 {
		t.Errorf("cached post = %+v", p)
	}
	if len(api.likeCalls) != 1 || api.likeCalls[0] != "unlike:p1" {
		t.Errorf("calls = %v", api.likeCalls)
	}
}

func TestCommentRequiresContent(t *testing.T) {
	cache := newMemoryCache()
	cache.posts["u1:p1"] = models.Post{ID: "p1"}
	svc := NewDefaultPostService(&mockPostAPI{}, cache, nil, zap.NewNop())

	if _, err := svc.Comment(context.Background(), "u1", "p1", models.CreateCommentRequest{Content: " "}); !errors.Is(err, ErrEmptyComment) {
		t.Errorf("err = %v", err)
	}
	if _, err := svc.Comment(context.Background(), "u1", "p1", models.CreateCommentRequest{Content: "¡Qué bien!"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.posts["u1:p1"]; ok {
		t.Error("commented post still cached")
	}
}
