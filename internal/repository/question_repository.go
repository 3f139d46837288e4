package repository

import (
	"github.com/nexbot/intent-admin/internal/model"
	"gorm.io/gorm"
)

// QuestionRepository 问题数据访问
type QuestionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository 创建问题仓库
func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// Create 创建问题
func (r *QuestionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

// CreateBatch 批量创建问题
func (r *QuestionRepository) CreateBatch(questions []*model.Question) error {
	if len(questions) == 0 {
		return nil
	}
	return r.db.Create(questions).Error
}

// GetByID 获取问题
func (r *QuestionRepository) GetByID(id string) (*model.Question, error) {
	var question model.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// ListByIntent 列出意图下的问题，按槽位顺序
func (r *QuestionRepository) ListByIntent(intentID string) ([]*model.Question, error) {
	var questions []*model.Question
	err := r.db.Where("intent_id = ?", intentID).Order("order_index").Find(&questions).Error
	return questions, err
}

// CountActiveByIntent 统计意图下的活跃问题数
func (r *QuestionRepository) CountActiveByIntent(intentID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.Question{}).
		Where("intent_id = ? AND is_active = ?", intentID, true).Count(&count).Error
	return count, err
}

// UpdateText 更新问题文本
func (r *QuestionRepository) UpdateText(id, text string) error {
	return r.db.Model(&model.Question{}).Where("id = ?", id).
		Update("question_text", text).Error
}

// Delete 硬删除问题（清空槽位时调用，无软删除）
func (r *QuestionRepository) Delete(id string) error {
	return r.db.Delete(&model.Question{}, "id = ?", id).Error
}
