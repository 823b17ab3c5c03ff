package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"mindwell/internal/model"
)

// DraftCache holds a student's in-progress answers, one hash field per question
type DraftCache interface {
	SetAnswer(ctx context.Context, studentID, questionID string, value model.AnswerValue) error
	Get(ctx context.Context, studentID string) (model.AnswerSet, error)
	Delete(ctx context.Context, studentID string) error
}

type draftCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftCache creates a new draft cache
func NewDraftCache(client *redis.Client) DraftCache {
	return &draftCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *draftCache) draftKey(studentID string) string {
	return fmt.Sprintf("student:%s:draft", studentID)
}

// SetAnswer stores one answer and refreshes the draft TTL
func (c *draftCache) SetAnswer(ctx context.Context, studentID, questionID string, value model.AnswerValue) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	key := c.draftKey(studentID)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, key, questionID, data)
	pipe.Expire(ctx, key, c.ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Get returns the draft, or an empty set when none exists
func (c *draftCache) Get(ctx context.Context, studentID string) (model.AnswerSet, error) {
	fields, err := c.client.HGetAll(ctx, c.draftKey(studentID)).Result()
	if err != nil {
		return nil, err
	}
	out := make(model.AnswerSet, len(fields))
	for id, raw := range fields {
		var v model.AnswerValue
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			continue
		}
		out[id] = v
	}
	return out, nil
}

func (c *draftCache) Delete(ctx context.Context, studentID string) error {
	return c.client.Del(ctx, c.draftKey(studentID)).Err()
}
