package repository

import (
	"github.com/nexbot/intent-admin/internal/model"
	"gorm.io/gorm"
)

// AnswerRepository 答案数据访问
type AnswerRepository struct {
	db *gorm.DB
}

// NewAnswerRepository 创建答案仓库
func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create 创建答案
func (r *AnswerRepository) Create(answer *model.Answer) error {
	return r.db.Create(answer).Error
}

// ListByIntent 列出意图下的全部答案
func (r *AnswerRepository) ListByIntent(intentID string) ([]*model.Answer, error) {
	var answers []*model.Answer
	err := r.db.Where("intent_id = ?", intentID).Order("created_at").Find(&answers).Error
	return answers, err
}

// ListActiveByIntent 列出意图下的活跃答案
func (r *AnswerRepository) ListActiveByIntent(intentID string) ([]*model.Answer, error) {
	var answers []*model.Answer
	err := r.db.Where("intent_id = ? AND is_active = ?", intentID, true).
		Order("created_at").Find(&answers).Error
	return answers, err
}

// CountActiveByIntent 统计意图下的活跃答案数
func (r *AnswerRepository) CountActiveByIntent(intentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Answer{}).
		Where("intent_id = ? AND is_active = ?", intentID, true).Count(&count).Error
	return count, err
}

// UpdateText 更新答案文本
func (r *AnswerRepository) UpdateText(id, text string) error {
	return r.db.Model(&model.Answer{}).Where("id = ?", id).
		Update("answer_text", text).Error
}
