// File: database/repository/draft/draft.go
package draftRepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"beu/models"
	"beu/utils"

	"github.com/go-redis/redis/v8"
)

// ErrDraftNotFound is returned for missing or expired drafts.
var ErrDraftNotFound = errors.New("schedule draft not found or expired")

// DraftRepository stores schedule editor drafts until they are saved.
type DraftRepository interface {
	Save(ctx context.Context, draft models.ScheduleDraft) error
	Get(ctx context.Context, id string) (*models.ScheduleDraft, error)
	Delete(ctx context.Context, id string) error
}

type redisDraftRepo struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisDraftRepo constructs a Redis-backed DraftRepository. Every save
// refreshes the TTL.
func NewRedisDraftRepo(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepo{client: client, ttl: ttl}
}

func draftKey(id string) string {
	return utils.DraftKeyPrefix + id
}

func (r *redisDraftRepo) Save(ctx context.Context, draft models.ScheduleDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule draft: %w", err)
	}
	if err := r.client.Set(ctx, draftKey(draft.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store schedule draft: %w", err)
	}
	return nil
}

func (r *redisDraftRepo) Get(ctx context.Context, id string) (*models.ScheduleDraft, error) {
	raw, err := r.client.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load schedule draft: %w", err)
	}
	var draft models.ScheduleDraft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return nil, fmt.Errorf("failed to parse schedule draft: %w", err)
	}
	return &draft, nil
}

func (r *redisDraftRepo) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, draftKey(id)).Err()
}
