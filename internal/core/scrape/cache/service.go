package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"camp-planner/internal/infrastructure/config"
	"camp-planner/internal/pkg/common"

	"github.com/go-redis/redis/v8"
)

// Service Redis 緩存服務
// 部署多實例時以 cache.redis_addr 切換為共享緩存
type Service struct {
	client *redis.Client
	config *config.CacheConfig
}

// NewService 創建 Redis 緩存服務
func NewService(cfg *config.CacheConfig) (*Service, error) {
	if !cfg.Enabled || cfg.RedisAddr == "" {
		return &Service{config: cfg}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Service{
		client: client,
		config: cfg,
	}, nil
}

// Get 以來源網址取得緩存的擷取結果
func (s *Service) Get(ctx context.Context, url string) (*common.ScrapedRecipe, error) {
	if !s.config.Enabled || s.client == nil {
		return nil, fmt.Errorf("cache is disabled")
	}

	key := s.generateKey(url)

	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("cache miss")
		}
		return nil, fmt.Errorf("failed to get cache: %w", err)
	}

	var recipe common.ScrapedRecipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache: %w", err)
	}

	return &recipe, nil
}

// Set 緩存擷取結果
func (s *Service) Set(ctx context.Context, url string, recipe *common.ScrapedRecipe) error {
	if !s.config.Enabled || s.client == nil {
		return nil
	}

	key := s.generateKey(url)

	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	if err := s.client.Set(ctx, key, data, s.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return nil
}

// generateKey 生成緩存鍵
func (s *Service) generateKey(url string) string {
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("scrape:recipe:%s", hex.EncodeToString(hash[:]))
}

// Close 關閉 Redis 連接
func (s *Service) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}
