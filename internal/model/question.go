package model

import "time"

// Question 问题（意图的同义问法），order_index 对应编辑器的 9 个固定槽位
type Question struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	IntentID     string    `gorm:"index:idx_questions_intent_order,priority:1;size:36;not null" json:"intent_id"`
	QuestionText string    `gorm:"type:text;not null" json:"question_text"`
	OrderIndex   int       `gorm:"index:idx_questions_intent_order,priority:2,unique;not null" json:"order_index"`
	IsActive     bool      `gorm:"index;default:true" json:"is_active"`
	CreatedBy    string    `gorm:"size:36" json:"created_by"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName 指定表名
func (Question) TableName() string {
	return "questions"
}
