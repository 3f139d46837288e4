package repository

import "gorm.io/gorm"

// Repositories 仓库集合，用于统一管理所有仓库
type Repositories struct {
	DB       *gorm.DB // 直接访问数据库（事务入口）
	Intent   *IntentRepository
	Question *QuestionRepository
	Answer   *AnswerRepository
	Flag     *FlagRepository
	Auth     *AuthRepository
}

// NewRepositories 创建所有仓库
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		DB:       db,
		Intent:   NewIntentRepository(db),
		Question: NewQuestionRepository(db),
		Answer:   NewAnswerRepository(db),
		Flag:     NewFlagRepository(db),
		Auth:     NewAuthRepository(db),
	}
}

// WithTx 返回绑定到事务的仓库集合
func (r *Repositories) WithTx(tx *gorm.DB) *Repositories {
	return NewRepositories(tx)
}
