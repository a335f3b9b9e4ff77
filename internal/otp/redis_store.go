package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "otp:v1:"

// RedisStore keeps pending records in Redis with a TTL equal to the record's
// remaining life, so dead entries are evicted instead of lingering in memory.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisStore builds a Redis-backed OTP store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, now: time.Now}
}

func redisKey(accountID string) string {
	return redisKeyPrefix + accountID
}

func (s *RedisStore) Get(ctx context.Context, accountID string) (Record, bool, error) {
	raw, err := s.client.Get(ctx, redisKey(accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("otp lookup: %w", err)
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return Record{}, false, fmt.Errorf("decode otp record: %w", err)
	}
	return record, true, nil
}

func (s *RedisStore) Put(ctx context.Context, accountID string, record Record) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode otp record: %w", err)
	}

	ttl := record.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		// Already-dead record: keep it briefly so reads still see Expired
		// rather than Absent.
		ttl = time.Minute
	}

	if err := s.client.Set(ctx, redisKey(accountID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("otp persist: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, accountID string) error {
	if err := s.client.Del(ctx, redisKey(accountID)).Err(); err != nil {
		return fmt.Errorf("otp delete: %w", err)
	}
	return nil
}
