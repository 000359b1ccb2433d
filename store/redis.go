package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"scenescribe/types"
)

const projectKeyPrefix = "scenescribe:project:"

// RedisStore keeps projects as JSON values in Redis, one key per project name.
type RedisStore struct {
	client *redis.Client
}

// RedisConfig configures the Redis connection.
type RedisConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
}

// NewRedisStore connects and verifies the server is reachable.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		cfg.Addr = "localhost:6379"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{client: client}, nil
}

// NewRedisStoreFromEnv creates a store using REDIS_ADDR, REDIS_PASS and
// REDIS_DB (all optional).
func NewRedisStoreFromEnv(ctx context.Context) (*RedisStore, error) {
	cfg := RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASS"),
	}
	if d := os.Getenv("REDIS_DB"); d != "" {
		if db, err := strconv.Atoi(d); err == nil {
			cfg.DB = db
		}
	}
	return NewRedisStore(ctx, cfg)
}

func (s *RedisStore) Load(ctx context.Context, name string) (*types.Project, error) {
	raw, err := s.client.Get(ctx, projectKeyPrefix+name).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project %q: %w", name, err)
	}
	var project types.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("decode project %q: %w", name, err)
	}
	return &project, nil
}

func (s *RedisStore) Save(ctx context.Context, project *types.Project) error {
	project.SavedAt = time.Now()
	raw, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("encode project %q: %w", project.Name, err)
	}
	if err := s.client.Set(ctx, projectKeyPrefix+project.Name, raw, 0).Err(); err != nil {
		return fmt.Errorf("save project %q: %w", project.Name, err)
	}
	return nil
}

func (s *RedisStore) List(ctx context.Context) ([]string, error) {
	var names []string
	iter := s.client.Scan(ctx, 0, projectKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, iter.Val()[len(projectKeyPrefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return names, nil
}

func (s *RedisStore) Delete(ctx context.Context, name string) error {
	if err := s.client.Del(ctx, projectKeyPrefix+name).Err(); err != nil {
		return fmt.Errorf("delete project %q: %w", name, err)
	}
	return nil
}

// Close releases the underlying connection.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
