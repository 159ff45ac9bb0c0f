// Package cache provides a Redis read-through cache for content lists.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix       = "portfolio:list:%s"
	generationKeyPrefix = "portfolio:gen:%s"
)

func ListKey(kind string) string {
	return fmt.Sprintf(listKeyPrefix, kind)
}

// GenerationKey counts the writes made to kind.
func GenerationKey(kind string) string {
	return fmt.Sprintf(generationKeyPrefix, kind)
}

// Connect accepts a redis:// URL or a bare host:port and pings the server.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL %q: %w", addr, err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.WithFields(log.Fields{"package": "portfolio", "module": "cache"}).Info("Redis connected")
	return client, nil
}
