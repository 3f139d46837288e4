package model

import "time"

// Answer 答案文本
// 存储层允许多行，但编辑器只读写第一条活跃答案（answers[0] 约定）
type Answer struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	IntentID   string    `gorm:"index;size:36;not null" json:"intent_id"`
	AnswerText string    `gorm:"type:text;not null" json:"answer_text"`
	IsActive   bool      `gorm:"index;default:true" json:"is_active"`
	CreatedBy  string    `gorm:"size:36" json:"created_by"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Answer) TableName() string {
	return "answers"
}
