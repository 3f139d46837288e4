package model

import "time"

// DuplicateFlag 疑似语义重复标记
// 仅由查重扫描创建；客户端只更新 resolution 字段
type DuplicateFlag struct {
	ID                string    `gorm:"primaryKey;size:36" json:"id"`
	SourceIntentID    string    `gorm:"index;size:36;not null" json:"source_intent_id"`
	SourceQuestionID  string    `gorm:"index;size:36;not null" json:"source_question_id"`
	MatchedIntentID   string    `gorm:"size:36;not null" json:"matched_intent_id"`
	MatchedQuestionID string    `gorm:"size:36;not null" json:"matched_question_id"`
	Similarity        float64   `gorm:"not null" json:"similarity"`
	Resolution        string    `gorm:"size:20;index;default:unresolved" json:"resolution"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	SourceIntent    *Intent   `gorm:"foreignKey:SourceIntentID" json:"source_intent,omitempty"`
	SourceQuestion  *Question `gorm:"foreignKey:SourceQuestionID" json:"source_question,omitempty"`
	MatchedIntent   *Intent   `gorm:"foreignKey:MatchedIntentID" json:"matched_intent,omitempty"`
	MatchedQuestion *Question `gorm:"foreignKey:MatchedQuestionID" json:"matched_question,omitempty"`
}

// TableName 指定表名
func (DuplicateFlag) TableName() string {
	return "duplicate_flags"
}

// 标记处理结果常量
const (
	ResolutionUnresolved = "unresolved"
	ResolutionIgnored    = "ignored"
	ResolutionDeleted    = "deleted"
)
