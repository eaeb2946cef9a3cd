// Copyright (c) 2026 BlogIt. All rights reserved.
// Author: dev@blogit.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blogit-app/blogit/internal/platform/apperr"
	"github.com/blogit-app/blogit/internal/platform/constants"
)

// # Reset Token Repository (Redis)

// RedisResetTokenRepository stores single-use password reset tokens with a TTL.
//
// Only the SHA-256 hash of a token is ever stored — a Redis snapshot leak
// does not expose usable reset links.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores the token hash → userID mapping with the given TTL.
func (repository *RedisResetTokenRepository) Set(context context.Context, tokenHash string, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

// Get resolves a token hash to its userID. Expired or unknown tokens
// return apperr.NotFound.
func (repository *RedisResetTokenRepository) Get(context context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

// Delete removes a used token so it can never be replayed.
func (repository *RedisResetTokenRepository) Delete(context context.Context, tokenHash string) error {
	key := constants.RedisPrefixResetToken + tokenHash
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
