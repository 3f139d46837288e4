package repository

import (
	"github.com/nexbot/intent-admin/internal/model"
	"gorm.io/gorm"
)

// FlagRepository 重复标记数据访问
type FlagRepository struct {
	db *gorm.DB
}

// NewFlagRepository 创建重复标记仓库
func NewFlagRepository(db *gorm.DB) *FlagRepository {
	return &FlagRepository{db: db}
}

// Create 创建标记
func (r *FlagRepository) Create(flag *model.DuplicateFlag) error {
	return r.db.Create(flag).Error
}

// CreateBatch 批量创建标记（扫描结果落库）
func (r *FlagRepository) CreateBatch(flags []*model.DuplicateFlag) error {
	if len(flags) == 0 {
		return nil
	}
	return r.db.Create(flags).Error
}

// GetByID 获取标记
func (r *FlagRepository) GetByID(id string) (*model.DuplicateFlag, error) {
	var flag model.DuplicateFlag
	err := r.db.Where("id = ?", id).First(&flag).Error
	if err != nil {
		return nil, err
	}
	return &flag, nil
}

// ListUnresolved 列出未处理的标记，带展示用的意图名与问题文本
func (r *FlagRepository) ListUnresolved() ([]*model.DuplicateFlag, error) {
	var flags []*model.DuplicateFlag
	err := r.db.Where("resolution = ?", model.ResolutionUnresolved).
		Preload("SourceIntent").
		Preload("SourceQuestion").
		Preload("MatchedIntent").
		Preload("MatchedQuestion").
		Order("similarity DESC").
		Find(&flags).Error
	return flags, err
}

// UpdateResolution 更新标记处理结果
// 无条件更新：重复处理已处理的标记会静默成功
func (r *FlagRepository) UpdateResolution(id, resolution string) error {
	return r.db.Model(&model.DuplicateFlag{}).Where("id = ?", id).
		Update("resolution", resolution).Error
}

// CountUnresolved 统计未处理标记数
func (r *FlagRepository) CountUnresolved() (int64, error) {
	var count int64
	err := r.db.Model(&model.DuplicateFlag{}).
		Where("resolution = ?", model.ResolutionUnresolved).Count(&count).Error
	return count, err
}
