package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vladimiradmaev/recipebox/internal/logger"
)

// stateTTL clears states of users who walked away mid-dialog
const stateTTL = 24 * time.Hour

// RedisManager manages user states using Redis
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(client *redis.Client) *RedisManager {
	return &RedisManager{client: client}
}

func stateKey(userID int64) string {
	return fmt.Sprintf("recipebox:user:%d:state", userID)
}

func tempKey(userID int64) string {
	return fmt.Sprintf("recipebox:user:%d:temp", userID)
}

// SetUserState sets the state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, state string) {
	if err := m.client.Set(context.Background(), stateKey(userID), state, stateTTL).Err(); err != nil {
		logger.Warn("Failed to save user state", "user_id", userID, "error", err)
	}
}

// GetUserState gets the state for a user
func (m *RedisManager) GetUserState(userID int64) string {
	state, err := m.client.Get(context.Background(), stateKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return None
	}
	if err != nil {
		logger.Warn("Failed to read user state", "user_id", userID, "error", err)
		return None // fallback on error
	}
	return state
}

// ClearUserState clears the state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	m.client.Del(context.Background(), stateKey(userID))
}

// SetTempData sets temporary data for a user
func (m *RedisManager) SetTempData(userID int64, key string, value string) {
	ctx := context.Background()
	_, err := m.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, tempKey(userID), key, value)
		pipe.Expire(ctx, tempKey(userID), stateTTL)
		return nil
	})
	if err != nil {
		logger.Warn("Failed to save temp data", "user_id", userID, "key", key, "error", err)
	}
}

// GetTempData gets temporary data for a user
func (m *RedisManager) GetTempData(userID int64, key string) (string, bool) {
	value, err := m.client.HGet(context.Background(), tempKey(userID), key).Result()
	if err != nil {
		return "", false
	}
	return value, true
}

// ClearTempData clears all temporary data for a user
func (m *RedisManager) ClearTempData(userID int64) {
	m.client.Del(context.Background(), tempKey(userID))
}

// Close closes the Redis connection
func (m *RedisManager) Close() error {
	return m.client.Close()
}
