package model

import (
	"regexp"
	"strings"
	"time"
)

// Intent 意图（机器人话题）
type Intent struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Slug      string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Status    string    `gorm:"size:20;index;default:draft" json:"status"`
	Version   int       `gorm:"default:0" json:"version"`
	CreatedBy string    `gorm:"index;size:36" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Questions []Question `gorm:"foreignKey:IntentID;constraint:OnDelete:CASCADE" json:"questions,omitempty"`
	Answers   []Answer   `gorm:"foreignKey:IntentID;constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// TableName 指定表名
func (Intent) TableName() string {
	return "intents"
}

// 意图状态常量
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// MaxQuestions 每个意图最多保留的问题数（编辑器固定 9 个槽位）
const MaxQuestions = 9

var whitespacePattern = regexp.MustCompile(`\s+`)

// Slugify 由名称派生唯一 slug：小写并把空白替换为下划线
func Slugify(name string) string {
	return whitespacePattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// IsReady 就绪仅用于展示：恰好 9 个问题且恰好 1 个答案
// 不作为发布的前置条件
func IsReady(questionCount, answerCount int64) bool {
	return questionCount == MaxQuestions && answerCount == 1
}
