// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/yamdb/internal/platform/constants"
)

// RedisCooldown implements [Cooldown] with SET NX and a TTL.
type RedisCooldown struct {
	client *redis.Client
}

// NewRedisCooldown creates a Redis-backed [Cooldown].
func NewRedisCooldown(client *redis.Client) *RedisCooldown {
	return &RedisCooldown{client: client}
}

/*
Acquire claims the cooldown slot for email.

Parameters:
  - context: context.Context
  - email: address, compared case-insensitively
  - ttl: how long the slot stays taken

Returns:
  - bool: false when the slot is already taken
  - error: connectivity errors
*/
func (cooldown *RedisCooldown) Acquire(context context.Context, email string, ttl time.Duration) (bool, error) {
	key := cooldownKey(email)

	acquired, err := cooldown.client.SetNX(context, key, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_signup_cooldown_failed: %w", err)
	}

	return acquired, nil
}

// Release deletes the cooldown slot for email.
func (cooldown *RedisCooldown) Release(context context.Context, email string) error {
	if err := cooldown.client.Del(context, cooldownKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_signup_cooldown_release_failed: %w", err)
	}
	return nil
}

func cooldownKey(email string) string {
	return constants.RedisPrefixSignupCooldown + strings.ToLower(email)
}
