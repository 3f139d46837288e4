// Package duplicate 查重扫描与标记处理
//
// 扫描完全委托给外部分析引擎，本服务只负责触发、渲染日志并刷新列表。
// 处理标记时固定删除 source（草稿侧）问题，保留 matched（已有）问题；
// 这个不对称基于创建时间的先后，与相似度方向无关，不可配置。
package duplicate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/nexbot/intent-admin/internal/engine"
	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
	"github.com/nexbot/intent-admin/internal/service/stats"
	"github.com/nexbot/intent-admin/internal/service/types"
)

// Service 查重服务
type Service struct {
	repo   *repository.Repositories
	engine *engine.Client
	stats  *stats.Service
}

// NewService 创建查重服务
func NewService(repo *repository.Repositories, engineClient *engine.Client, statsSvc *stats.Service) *Service {
	return &Service{repo: repo, engine: engineClient, stats: statsSvc}
}

// ScanReport 扫描结果与日志
type ScanReport struct {
	Ok            bool     `json:"ok"`
	DraftsChecked int      `json:"drafts_checked"`
	FlagsCreated  int      `json:"flags_created"`
	Log           []string `json:"log"`
}

func (r *ScanReport) logf(format string, args ...interface{}) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	r.Log = append(r.Log, line)
}

// Scan 触发查重扫描
// 扫描对本服务是只读的：失败时已有标记保持不变
func (s *Service) Scan(ctx context.Context) (*ScanReport, error) {
	report := &ScanReport{}
	report.logf("Requesting scan from analysis engine...")

	result, err := s.engine.ScanDuplicates(ctx)
	if err != nil {
		report.logf("Connection Error: %v", err)
		return report, nil
	}

	if !result.Success {
		detail := result.Details
		if detail == "" {
			detail = "unknown error"
		}
		report.logf("Scan failed: %s", detail)
		return report, nil
	}

	report.Ok = true
	report.DraftsChecked = result.DraftsChecked
	report.FlagsCreated = result.FlagsCreated
	report.logf("Scan complete")
	report.logf("Drafts checked: %d", result.DraftsChecked)
	report.logf("New flags found: %d", result.FlagsCreated)

	s.stats.Invalidate(ctx)
	return report, nil
}

// ListUnresolved 列出未处理的标记，带意图名与问题文本
func (s *Service) ListUnresolved(ctx context.Context) ([]*model.DuplicateFlag, error) {
	flags, err := s.repo.Flag.ListUnresolved()
	if err != nil {
		return nil, fmt.Errorf("failed to list duplicate flags: %w", err)
	}
	return flags, nil
}

// Resolve 处理标记：ignored 只改标记，deleted 同时硬删 source 问题
// 两步在同一事务里完成，不会留下"标记已处理但重复问题仍在"的中间态。
// 不检查当前 resolution，重复处理会静默成功。
func (s *Service) Resolve(ctx context.Context, flagID, resolution string) error {
	if resolution != model.ResolutionIgnored && resolution != model.ResolutionDeleted {
		return types.NewValidationError("resolution", "resolution must be 'ignored' or 'deleted'")
	}

	err := s.repo.DB.Transaction(func(tx *gorm.DB) error {
		repos := s.repo.WithTx(tx)

		flag, err := repos.Flag.GetByID(flagID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return types.ErrNotFound
			}
			return fmt.Errorf("failed to get flag: %w", err)
		}

		if err := repos.Flag.UpdateResolution(flagID, resolution); err != nil {
			return fmt.Errorf("failed to update flag: %w", err)
		}

		if resolution == model.ResolutionDeleted {
			if err := repos.Question.Delete(flag.SourceQuestionID); err != nil {
				return fmt.Errorf("failed to delete source question: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	s.stats.Invalidate(ctx)
	return nil
}
