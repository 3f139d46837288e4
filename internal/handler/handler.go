package handler

import (
	"github.com/nexbot/intent-admin/internal/service"
)

// Handlers 处理器集合
type Handlers struct {
	Auth      *AuthHandler
	Intent    *IntentHandler
	Duplicate *DuplicateHandler
	Import    *ImportHandler
	Stats     *StatsHandler
}

// NewHandlers 创建所有处理器
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:      NewAuthHandler(svc),
		Intent:    NewIntentHandler(svc),
		Duplicate: NewDuplicateHandler(svc),
		Import:    NewImportHandler(svc),
		Stats:     NewStatsHandler(svc),
	}
}
