package service

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nexbot/intent-admin/internal/config"
	"github.com/nexbot/intent-admin/internal/engine"
	"github.com/nexbot/intent-admin/internal/repository"
	"github.com/nexbot/intent-admin/internal/service/auth"
	"github.com/nexbot/intent-admin/internal/service/duplicate"
	"github.com/nexbot/intent-admin/internal/service/importer"
	"github.com/nexbot/intent-admin/internal/service/intent"
	"github.com/nexbot/intent-admin/internal/service/publish"
	"github.com/nexbot/intent-admin/internal/service/stats"
)

// Services 服务集合
type Services struct {
	Intent    *intent.Service
	Publish   *publish.Service
	Duplicate *duplicate.Service
	Importer  *importer.Service
	Stats     *stats.Service
	Auth      *auth.Service

	Config *config.Config
	Engine *engine.Client
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) *Services {
	engineClient := engine.NewClient(cfg.Engine.BaseURL, time.Duration(cfg.Engine.Timeout)*time.Second)

	statsSvc := stats.NewService(repo, redisClient)
	intentSvc := intent.NewService(repo, statsSvc)

	return &Services{
		Intent:    intentSvc,
		Publish:   publish.NewService(repo, engineClient, intentSvc, statsSvc),
		Duplicate: duplicate.NewService(repo, engineClient, statsSvc),
		Importer:  importer.NewService(repo, statsSvc),
		Stats:     statsSvc,
		Auth:      auth.NewService(repo, redisClient, cfg),

		Config: cfg,
		Engine: engineClient,
	}
}
