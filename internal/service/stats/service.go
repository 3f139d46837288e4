// Package stats 仪表盘统计计数
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
)

const (
	cacheKey = "intent-admin:stats"
	cacheTTL = 30 * time.Second
)

// Service 统计服务
type Service struct {
	repo        *repository.Repositories
	redisClient *redis.Client
}

// NewService 创建统计服务
func NewService(repo *repository.Repositories, redisClient *redis.Client) *Service {
	return &Service{repo: repo, redisClient: redisClient}
}

// Overview 仪表盘计数
type Overview struct {
	Total           int64 `json:"total"`
	Published       int64 `json:"published"`
	Drafts          int64 `json:"drafts"`
	UnresolvedFlags int64 `json:"unresolved_flags"`
}

// Fetch 获取统计计数，短暂缓存以减轻列表页的刷新压力
func (s *Service) Fetch(ctx context.Context) (*Overview, error) {
	if cached, err := s.redisClient.Get(ctx, cacheKey).Result(); err == nil {
		var overview Overview
		if json.Unmarshal([]byte(cached), &overview) == nil {
			return &overview, nil
		}
	}

	total, err := s.repo.Intent.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count intents: %w", err)
	}
	published, err := s.repo.Intent.CountByStatus(model.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to count published intents: %w", err)
	}
	drafts, err := s.repo.Intent.CountByStatus(model.StatusDraft)
	if err != nil {
		return nil, fmt.Errorf("failed to count draft intents: %w", err)
	}
	flags, err := s.repo.Flag.CountUnresolved()
	if err != nil {
		return nil, fmt.Errorf("failed to count unresolved flags: %w", err)
	}

	overview := &Overview{
		Total:           total,
		Published:       published,
		Drafts:          drafts,
		UnresolvedFlags: flags,
	}

	if data, err := json.Marshal(overview); err == nil {
		_ = s.redisClient.Set(ctx, cacheKey, data, cacheTTL).Err()
	}

	return overview, nil
}

// Invalidate 在任何写路径完成后清掉缓存，部分失败也要刷新
func (s *Service) Invalidate(ctx context.Context) {
	_ = s.redisClient.Del(ctx, cacheKey).Err()
}
