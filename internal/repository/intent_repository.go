package repository

import (
	"strings"

	"github.com/nexbot/intent-admin/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IntentRepository 意图数据访问
type IntentRepository struct {
	db *gorm.DB
}

// NewIntentRepository 创建意图仓库
func NewIntentRepository(db *gorm.DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// IntentWithCounts 列表行：意图加子表计数
type IntentWithCounts struct {
	model.Intent
	QuestionCount int64 `json:"question_count" gorm:"->"`
	AnswerCount   int64 `json:"answer_count" gorm:"->"`
}

// Create 创建意图
func (r *IntentRepository) Create(intent *model.Intent) error {
	return r.db.Create(intent).Error
}

// GetByID 获取意图
func (r *IntentRepository) GetByID(id string) (*model.Intent, error) {
	var intent model.Intent
	err := r.db.Where("id = ?", id).First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// GetBySlug 按 slug 获取意图
func (r *IntentRepository) GetBySlug(slug string) (*model.Intent, error) {
	var intent model.Intent
	err := r.db.Where("slug = ?", slug).First(&intent).Error
	if err != nil {
		return nil, err
	}
	return &intent, nil
}

// List 列出意图，带子表计数，按更新时间倒序
// status 为 "all" 或空时不过滤；search 对名称做大小写不敏感的模糊匹配
func (r *IntentRepository) List(status, search string) ([]*IntentWithCounts, error) {
	query := r.db.Model(&model.Intent{}).
		Select("intents.*, (?) AS question_count, (?) AS answer_count",
			r.db.Model(&model.Question{}).Select("count(*)").Where("questions.intent_id = intents.id"),
			r.db.Model(&model.Answer{}).Select("count(*)").Where("answers.intent_id = intents.id"),
		).
		Order("updated_at DESC")

	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}
	if search != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}

	var rows []*IntentWithCounts
	err := query.Find(&rows).Error
	return rows, err
}

// UpdateFields 更新部分字段
func (r *IntentRepository) UpdateFields(id string, fields map[string]interface{}) error {
	return r.db.Model(&model.Intent{}).Where("id = ?", id).Updates(fields).Error
}

// MarkPublished 发布确认后置为 published 并递增版本号
func (r *IntentRepository) MarkPublished(id string) error {
	return r.db.Model(&model.Intent{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  model.StatusPublished,
			"version": gorm.Expr("version + ?", 1),
		}).Error
}

// Delete 删除意图（子表级联）
func (r *IntentRepository) Delete(id string) error {
	return r.db.Select(clause.Associations).Delete(&model.Intent{ID: id}).Error
}

// DeleteBatch 批量删除意图
func (r *IntentRepository) DeleteBatch(ids []string) error {
	for _, id := range ids {
		if err := r.Delete(id); err != nil {
			return err
		}
	}
	return nil
}

// ListDraftIDs 列出所有草稿意图的 ID
func (r *IntentRepository) ListDraftIDs() ([]string, error) {
	var ids []string
	err := r.db.Model(&model.Intent{}).Where("status = ?", model.StatusDraft).Pluck("id", &ids).Error
	return ids, err
}

// Count 统计意图总数
func (r *IntentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Intent{}).Count(&count).Error
	return count, err
}

// CountByStatus 按状态统计意图数
func (r *IntentRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Intent{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
