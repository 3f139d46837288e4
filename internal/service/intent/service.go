// Package intent 实现意图的生命周期：创建、编辑保存、删除与列表
//
// 状态机只有 draft 与 published 两个状态，且都可重入。
// 任何编辑都把状态拉回 draft：已修改的内容必须重新审核、重新嵌入后才能再次上线。
package intent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
	"github.com/nexbot/intent-admin/internal/service/stats"
	"github.com/nexbot/intent-admin/internal/service/types"
)

// Service 意图服务
type Service struct {
	repo  *repository.Repositories
	stats *stats.Service
}

// NewService 创建意图服务
func NewService(repo *repository.Repositories, statsSvc *stats.Service) *Service {
	return &Service{repo: repo, stats: statsSvc}
}

// ========== 请求/响应类型 ==========

// SaveRequest 编辑器保存请求
// Questions 按位置对应 9 个固定槽位，空字符串表示清空该槽位
type SaveRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	AnswerText string   `json:"answer_text"`
	Questions  []string `json:"questions"`
}

// Detail 编辑器加载的完整意图
type Detail struct {
	Intent     *model.Intent     `json:"intent"`
	Questions  []*model.Question `json:"questions"`
	AnswerText string            `json:"answer_text"`
}

// ListItem 列表行，带派生的就绪展示信息
type ListItem struct {
	*repository.IntentWithCounts
	Ready       bool   `json:"ready"`
	StatusLabel string `json:"status_label"`
}

// ListRequest 列表请求
type ListRequest struct {
	Status string `json:"status"` // all, draft, published
	Search string `json:"search"`
}

// ========== 核心方法 ==========

// Create 创建草稿意图，slug 由名称派生
func (s *Service) Create(ctx context.Context, session *model.Session, name string) (*model.Intent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.NewValidationError("name", "name is required")
	}

	intent := &model.Intent{
		ID:        uuid.New().String(),
		Name:      name,
		Slug:      model.Slugify(name),
		Status:    model.StatusDraft,
		CreatedBy: session.UserID,
	}

	if err := s.repo.Intent.Create(intent); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &types.ConflictError{Slug: intent.Slug}
		}
		return nil, fmt.Errorf("failed to create intent: %w", err)
	}

	return intent, nil
}

// Get 加载意图详情（编辑器打开）
func (s *Service) Get(ctx context.Context, id string) (*Detail, error) {
	intent, err := s.repo.Intent.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get intent: %w", err)
	}

	questions, err := s.repo.Question.ListByIntent(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	// 只取第一条活跃答案（answers[0] 约定）
	answers, err := s.repo.Answer.ListActiveByIntent(id)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}

	answerText := ""
	if len(answers) > 0 {
		answerText = answers[0].AnswerText
	}

	return &Detail{
		Intent:     intent,
		Questions:  questions,
		AnswerText: answerText,
	}, nil
}

// List 列出意图，附带派生的就绪标签
func (s *Service) List(ctx context.Context, req *ListRequest) ([]*ListItem, error) {
	rows, err := s.repo.Intent.List(req.Status, req.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to list intents: %w", err)
	}

	items := make([]*ListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &ListItem{
			IntentWithCounts: row,
			Ready:            model.IsReady(row.QuestionCount, row.AnswerCount),
			StatusLabel:      statusLabel(row),
		})
	}

	return items, nil
}

// Save 编辑器整单保存：意图行先写入并确认，再写答案和问题槽位
// 无论此前处于什么状态，保存后一律回到 draft
func (s *Service) Save(ctx context.Context, session *model.Session, req *SaveRequest) (*model.Intent, error) {
	name := strings.TrimSpace(req.Name)
	answerText := strings.TrimSpace(req.AnswerText)

	if name == "" {
		return nil, types.NewValidationError("name", "Name and Answer are required.")
	}
	if answerText == "" {
		return nil, types.NewValidationError("answer_text", "Name and Answer are required.")
	}

	var intent *model.Intent
	var err error

	if req.ID == "" {
		intent, err = s.Create(ctx, session, name)
		if err != nil {
			return nil, err
		}
	} else {
		intent, err = s.repo.Intent.GetByID(req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, types.ErrNotFound
			}
			return nil, fmt.Errorf("failed to get intent: %w", err)
		}

		err = s.repo.Intent.UpdateFields(intent.ID, map[string]interface{}{
			"name":   name,
			"slug":   model.Slugify(name),
			"status": model.StatusDraft, // 编辑一律回到草稿
		})
		if err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, &types.ConflictError{Slug: model.Slugify(name)}
			}
			return nil, fmt.Errorf("failed to update intent: %w", err)
		}
		intent.Name = name
		intent.Slug = model.Slugify(name)
		intent.Status = model.StatusDraft
	}

	// 意图行写入成功后才动子表，失败的意图写入不会留下孤儿行
	if err := s.saveAnswer(intent.ID, session.UserID, answerText); err != nil {
		return nil, err
	}
	if err := s.saveQuestions(intent.ID, session.UserID, req.Questions); err != nil {
		return nil, err
	}

	s.stats.Invalidate(ctx)
	return intent, nil
}

// Delete 硬删除意图及其子表，不可恢复
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Intent.Delete(id); err != nil {
		return fmt.Errorf("failed to delete intent: %w", err)
	}
	s.stats.Invalidate(ctx)
	return nil
}

// DeleteBatch 批量硬删除
func (s *Service) DeleteBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return types.NewValidationError("ids", "ids must not be empty")
	}
	if err := s.repo.Intent.DeleteBatch(ids); err != nil {
		return fmt.Errorf("failed to delete intents: %w", err)
	}
	s.stats.Invalidate(ctx)
	return nil
}

// CheckPublishable 发布前置校验：恰好 1 条活跃答案，1..9 个活跃问题
// 就绪标签（9 问 1 答）不在这里强制，仅供展示
func (s *Service) CheckPublishable(ctx context.Context, id string) error {
	questionCount, err := s.repo.Question.CountActiveByIntent(id)
	if err != nil {
		return fmt.Errorf("failed to count questions: %w", err)
	}
	answerCount, err := s.repo.Answer.CountActiveByIntent(id)
	if err != nil {
		return fmt.Errorf("failed to count answers: %w", err)
	}

	if answerCount != 1 {
		return types.NewValidationError("answers", fmt.Sprintf("intent must have exactly 1 active answer, has %d", answerCount))
	}
	if questionCount < 1 || questionCount > model.MaxQuestions {
		return types.NewValidationError("questions", fmt.Sprintf("intent must have 1 to %d active questions, has %d", model.MaxQuestions, questionCount))
	}

	return nil
}

// ========== 内部方法 ==========

// saveAnswer 答案写入：有则更新第一条，无则插入一条活跃答案
func (s *Service) saveAnswer(intentID, userID, answerText string) error {
	existing, err := s.repo.Answer.ListByIntent(intentID)
	if err != nil {
		return fmt.Errorf("failed to list answers: %w", err)
	}

	if len(existing) > 0 {
		if err := s.repo.Answer.UpdateText(existing[0].ID, answerText); err != nil {
			return fmt.Errorf("failed to update answer: %w", err)
		}
		return nil
	}

	answer := &model.Answer{
		ID:         uuid.New().String(),
		IntentID:   intentID,
		AnswerText: answerText,
		IsActive:   true,
		CreatedBy:  userID,
	}
	if err := s.repo.Answer.Create(answer); err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// saveQuestions 按 9 个槽位同步问题行
// 非空槽位恰好落一行；清空的槽位对应行被硬删除
func (s *Service) saveQuestions(intentID, userID string, slots []string) error {
	existing, err := s.repo.Question.ListByIntent(intentID)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	byOrder := make(map[int]*model.Question, len(existing))
	for _, q := range existing {
		byOrder[q.OrderIndex] = q
	}

	for i := 1; i <= model.MaxQuestions; i++ {
		val := ""
		if i <= len(slots) {
			val = strings.TrimSpace(slots[i-1])
		}

		current := byOrder[i]

		switch {
		case val != "" && current != nil:
			if err := s.repo.Question.UpdateText(current.ID, val); err != nil {
				return fmt.Errorf("failed to update question %d: %w", i, err)
			}
		case val != "" && current == nil:
			question := &model.Question{
				ID:           uuid.New().String(),
				IntentID:     intentID,
				QuestionText: val,
				OrderIndex:   i,
				IsActive:     true,
				CreatedBy:    userID,
			}
			if err := s.repo.Question.Create(question); err != nil {
				return fmt.Errorf("failed to create question %d: %w", i, err)
			}
		case val == "" && current != nil:
			if err := s.repo.Question.Delete(current.ID); err != nil {
				return fmt.Errorf("failed to delete question %d: %w", i, err)
			}
		}
	}

	return nil
}

// statusLabel 列表行的状态标签
func statusLabel(row *repository.IntentWithCounts) string {
	if row.Status == model.StatusPublished {
		return "Published"
	}
	if model.IsReady(row.QuestionCount, row.AnswerCount) {
		return "Ready"
	}
	return fmt.Sprintf("Incomplete (%d/9 Q)", row.QuestionCount)
}
