package post

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beu/models"
	"beu/utils"

	"github.com/go-redis/redis/v8"
)

// PostCache keeps per-viewer copies of posts; is_liked differs per user.
type PostCache interface {
	GetPost(ctx context.Context, userID, id string) (*models.Post, error)
	SetPost(ctx context.Context, userID string, post models.Post) error
	DeletePost(ctx context.Context, userID, id string) error
	GetList(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error)
	SetList(ctx context.Context, userID string, filter models.PostFilter, posts []models.Post) error
	InvalidateLists(ctx context.Context, userID string) error
}

type RedisPostCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPostCache(client *redis.Client, ttl time.Duration) PostCache {
	return &RedisPostCache{client: client, ttl: ttl}
}

func postKey(userID, id string) string {
	return fmt.Sprintf("%s%s:%s", utils.PostCachePrefix, userID, id)
}

func listIndexKey(userID string) string {
	return fmt.Sprintf("%slists:%s", utils.PostCachePrefix, userID)
}

func listKey(userID string, filter models.PostFilter) string {
	sum := sha1.Sum([]byte(fmt.Sprintf("%s|%s|%d", filter.ProviderID, filter.AuthorID, filter.Page)))
	return fmt.Sprintf("%slist:%s:%s", utils.PostCachePrefix, userID, hex.EncodeToString(sum[:8]))
}

// GetPost returns nil without error on a cache miss.
func (c *RedisPostCache) GetPost(ctx context.Context, userID, id string) (*models.Post, error) {
	raw, err := c.client.Get(ctx, postKey(userID, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var p models.Post
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, nil
	}
	return &p, nil
}

func (c *RedisPostCache) SetPost(ctx context.Context, userID string, post models.Post) error {
	data, err := json.Marshal(post)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, postKey(userID, post.ID), data, c.ttl).Err()
}

func (c *RedisPostCache) DeletePost(ctx context.Context, userID, id string) error {
	return c.client.Del(ctx, postKey(userID, id)).Err()
}

// GetList returns nil without error on a cache miss.
func (c *RedisPostCache) GetList(ctx context.Context, userID string, filter models.PostFilter) ([]models.Post, error) {
	raw, err := c.client.Get(ctx, listKey(userID, filter)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var posts []models.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, nil
	}
	return posts, nil
}

// SetList stores a listing and records its key so mutations can drop it.
func (c *RedisPostCache) SetList(ctx context.Context, userID string, filter models.PostFilter, posts []models.Post) error {
	if posts == nil {
		posts = []models.Post{}
	}
	data, err := json.Marshal(posts)
	if err != nil {
		return err
	}
	key := listKey(userID, filter)
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	pipe.SAdd(ctx, listIndexKey(userID), key)
	pipe.Expire(ctx, listIndexKey(userID), c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (c *RedisPostCache) InvalidateLists(ctx context.Context, userID string) error {
	keys, err := c.client.SMembers(ctx, listIndexKey(userID)).Result()
	if err != nil {
		return err
	}
	keys = append(keys, listIndexKey(userID))
	return c.client.Del(ctx, keys...).Err()
}
