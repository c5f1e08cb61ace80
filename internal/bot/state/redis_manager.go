package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmsavelev/caloriebot/internal/logger"
)

// pendingTTL auto-expires stale pending states of inactive users.
const pendingTTL = 24 * time.Hour

// RedisManager manages pending states in Redis, surviving restarts.
type RedisManager struct {
	client *redis.Client
}

// NewRedisManager creates a new Redis-based state manager
func NewRedisManager(redisHost, redisPort string) (*RedisManager, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", redisHost, redisPort),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisManager{client: client}, nil
}

func pendingKey(userID int64) string {
	return fmt.Sprintf("user:%d:pending", userID)
}

// SetUserState sets the pending state for a user with TTL
func (m *RedisManager) SetUserState(userID int64, pending Pending) {
	data, err := json.Marshal(pending)
	if err != nil {
		logger.Error("Failed to marshal pending state", "error", err, "user_id", userID)
		return
	}
	if err := m.client.Set(context.Background(), pendingKey(userID), data, pendingTTL).Err(); err != nil {
		logger.Error("Failed to store pending state", "error", err, "user_id", userID)
	}
}

// GetUserState gets the pending state for a user
func (m *RedisManager) GetUserState(userID int64) Pending {
	data, err := m.client.Get(context.Background(), pendingKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Failed to read pending state", "error", err, "user_id", userID)
		}
		return Pending{State: None}
	}

	var pending Pending
	if err := json.Unmarshal(data, &pending); err != nil {
		logger.Error("Failed to unmarshal pending state", "error", err, "user_id", userID)
		return Pending{State: None}
	}
	return pending
}

// ClearUserState clears the pending state for a user
func (m *RedisManager) ClearUserState(userID int64) {
	if err := m.client.Del(context.Background(), pendingKey(userID)).Err(); err != nil {
		logger.Error("Failed to clear pending state", "error", err, "user_id", userID)
	}
}
