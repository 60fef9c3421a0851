package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeStore keeps hashed one-time codes with a TTL and an attempt counter.
// The production store is redis; tests use an in-memory fake.
type CodeStore interface {
	Put(ctx context.Context, phone string, hash string, ttl time.Duration) error
	Get(ctx context.Context, phone string) (hash string, err error)
	Delete(ctx context.Context, phone string) error
	IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error)
	ResetAttempts(ctx context.Context, phone string) error
}

var ErrCodeNotFound = errors.New("no pending code")

type redisCodeStore struct {
	client *redis.Client
}

func NewRedisCodeStore(client *redis.Client) CodeStore {
	return &redisCodeStore{client: client}
}

func codeKey(phone string) string     { return "otp:code:" + phone }
func attemptsKey(phone string) string { return "otp:attempts:" + phone }

func (s *redisCodeStore) Put(ctx context.Context, phone, hash string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codeKey(phone), hash, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store code: %w", err)
	}
	return nil
}

func (s *redisCodeStore) Get(ctx context.Context, phone string) (string, error) {
	hash, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load code: %w", err)
	}
	return hash, nil
}

func (s *redisCodeStore) Delete(ctx context.Context, phone string) error {
	return s.client.Del(ctx, codeKey(phone)).Err()
}

func (s *redisCodeStore) IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	attempts, err := s.client.Incr(ctx, attemptsKey(phone)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	if attempts == 1 {
		s.client.Expire(ctx, attemptsKey(phone), ttl)
	}
	return attempts, nil
}

func (s *redisCodeStore) ResetAttempts(ctx context.Context, phone string) error {
	return s.client.Del(ctx, attemptsKey(phone)).Err()
}
