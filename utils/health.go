package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the latest snapshot of the backing stores. Redis holds one
// entry per client passed to StartHealthMonitor, in order.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the most recent snapshot. Zero value until the
// monitor's first tick.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor pings the stores every minute and caches the result for
// the health endpoint. Nil Redis clients count as down.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			snapshot := probe(context.Background(), redisClients, mongoClient)
			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
	}()
}

func probe(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	redisUp := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisUp = append(redisUp, client != nil && client.Ping(ctx).Err() == nil)
	}
	return HealthStatus{
		Mongo:     mongoClient != nil && mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisUp,
		CheckedAt: time.Now(),
	}
}
