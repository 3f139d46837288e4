// Package publish 批量发布编排
//
// 一次网络调用带上全部 id，阻塞等待引擎返回后一次性渲染逐条结果日志。
// 批量发布是尽力而为的扇出：单个意图失败不回滚、不中止其他意图，也不自动重试。
package publish

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nexbot/intent-admin/internal/engine"
	"github.com/nexbot/intent-admin/internal/repository"
	"github.com/nexbot/intent-admin/internal/service/intent"
	"github.com/nexbot/intent-admin/internal/service/stats"
	"github.com/nexbot/intent-admin/internal/service/types"
)

// 每个意图的预估发布耗时（嵌入计算 + 落库）
const secondsPerIntent = 1.5

// Service 发布服务
type Service struct {
	repo   *repository.Repositories
	engine *engine.Client
	intent *intent.Service
	stats  *stats.Service
}

// NewService 创建发布服务
func NewService(repo *repository.Repositories, engineClient *engine.Client, intentSvc *intent.Service, statsSvc *stats.Service) *Service {
	return &Service{
		repo:   repo,
		engine: engineClient,
		intent: intentSvc,
		stats:  statsSvc,
	}
}

// Report 发布结果与逐行日志
type Report struct {
	Ok               bool     `json:"ok"`
	SuccessCount     int      `json:"success_count"`
	FailedCount      int      `json:"failed_count"`
	EstimatedSeconds int      `json:"estimated_seconds"`
	Log              []string `json:"log"`
}

func (r *Report) logf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	r.Log = append(r.Log, line)
}

// Publish 批量发布指定意图
func (s *Service) Publish(ctx context.Context, ids []string) (*Report, error) {
	if len(ids) == 0 {
		return nil, types.NewValidationError("ids", "ids must not be empty")
	}

	// 完成后无论成败都刷新计数
	defer s.stats.Invalidate(ctx)

	report := &Report{
		EstimatedSeconds: int(math.Ceil(float64(len(ids)) * secondsPerIntent)),
	}
	report.logf("Starting publish job for %d intents", len(ids))
	report.logf("Approx. time: %d seconds", report.EstimatedSeconds)

	// 发布前置校验在本地完成，不合格的意图按单条失败记入日志
	eligible := make([]string, 0, len(ids))
	for _, id := range ids {
		if err := s.intent.CheckPublishable(ctx, id); err != nil {
			report.FailedCount++
			report.logf("Error (%s): %v", id, err)
			continue
		}
		eligible = append(eligible, id)
	}

	if len(eligible) == 0 {
		report.logf("Job failed: no eligible intents")
		return report, nil
	}

	report.logf("Sending %d intents to server...", len(eligible))

	result, err := s.engine.Publish(ctx, eligible)
	if err != nil {
		report.FailedCount += len(eligible)
		report.logf("Connection Error: %v", err)
		return report, nil
	}

	if !result.Ok {
		report.FailedCount += len(eligible)
		detail := result.Error
		if detail == "" {
			detail = "unknown error"
		}
		report.logf("Job failed: %s", detail)
		return report, nil
	}

	// 引擎确认后的成员置为 published 并递增版本；失败成员保持原状
	for _, d := range result.Details {
		if d.Status == engine.DetailStatusFailed {
			report.FailedCount++
			report.logf("Error (%s): %s", d.ID, d.Error)
			continue
		}
		if err := s.repo.Intent.MarkPublished(d.ID); err != nil {
			report.FailedCount++
			report.logf("Error (%s): failed to record publish: %v", d.ID, err)
			continue
		}
		report.SuccessCount++
		report.logf("Published: %s", d.Slug)
	}

	report.Ok = true
	report.logf("Job complete. Success: %d, Failed: %d", report.SuccessCount, report.FailedCount)
	return report, nil
}

// PublishAllDrafts 发布全部草稿
func (s *Service) PublishAllDrafts(ctx context.Context) (*Report, error) {
	ids, err := s.repo.Intent.ListDraftIDs()
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	if len(ids) == 0 {
		return nil, types.NewValidationError("ids", "no drafts to publish")
	}
	return s.Publish(ctx, ids)
}
