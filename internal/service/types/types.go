// Package types 定义服务层共享的类型与错误分类
package types

import (
	"errors"
	"fmt"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// ValidationError 校验失败（缺少必填字段、非法取值等）
// 只中止当前条目，不影响兄弟条目
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError 创建校验错误
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ConflictError 唯一约束冲突（slug 重复）
// 按跳过处理，不视为致命错误
type ConflictError struct {
	Slug string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("slug already exists: %s", e.Slug)
}

// ConnectionError 外部服务网络失败或响应不可解析
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsConflict 判断是否为唯一约束冲突
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// IsValidation 判断是否为校验错误
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConnection 判断是否为外部连接错误
func IsConnection(err error) bool {
	var ce *ConnectionError
	return errors.As(err, &ce)
}
