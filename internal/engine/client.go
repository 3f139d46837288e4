// Package engine 封装外部分析引擎的远程调用
// 引擎负责嵌入计算、查重扫描与发布，本服务只消费其两个接口
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nexbot/intent-admin/internal/service/types"
)

// Client 分析引擎客户端
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建分析引擎客户端
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ScanResult 查重扫描结果
type ScanResult struct {
	Success       bool   `json:"success"`
	DraftsChecked int    `json:"draftsChecked"`
	FlagsCreated  int    `json:"flagsCreated"`
	Details       string `json:"details,omitempty"`
}

// PublishDetail 单个意图的发布结果
type PublishDetail struct {
	ID     string `json:"id"`
	Status string `json:"status"` // published, failed
	Slug   string `json:"slug,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PublishResult 批量发布结果
// 引擎的历史响应在 success 字段里混用布尔与成功计数，
// 这里解码后拆成 Ok 与 SuccessCount 两个字段
type PublishResult struct {
	Ok           bool            `json:"ok"`
	SuccessCount int             `json:"success_count"`
	FailedCount  int             `json:"failed_count"`
	Details      []PublishDetail `json:"details,omitempty"`
	Error        string          `json:"error,omitempty"`
}

// publishEnvelope 引擎原始响应
type publishEnvelope struct {
	Success json.RawMessage `json:"success"`
	Failed  int             `json:"failed"`
	Details []PublishDetail `json:"details"`
	Error   string          `json:"error"`
}

// 发布结果状态常量
const (
	DetailStatusPublished = "published"
	DetailStatusFailed    = "failed"
)

// ScanDuplicates 触发查重扫描
// 引擎直接写 duplicate_flags 表，这里只拿到统计数
func (c *Client) ScanDuplicates(ctx context.Context) (*ScanResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scan-duplicates", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build scan request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	var result ScanResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &types.ConnectionError{Err: fmt.Errorf("server returned non-JSON response (%d)", resp.StatusCode)}
	}

	return &result, nil
}

// Publish 批量发布意图
// 单次阻塞调用，无流式进度；引擎对每个意图重新嵌入内容
func (c *Client) Publish(ctx context.Context, intentIDs []string) (*PublishResult, error) {
	body, err := json.Marshal(map[string]interface{}{"intentIds": intentIDs})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal publish request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/publish", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build publish request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &types.ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	var envelope publishEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, &types.ConnectionError{Err: fmt.Errorf("server returned non-JSON response (%d)", resp.StatusCode)}
	}

	ok, count := decodeSuccess(envelope.Success)
	result := &PublishResult{
		Ok:           ok,
		SuccessCount: count,
		FailedCount:  envelope.Failed,
		Details:      envelope.Details,
		Error:        envelope.Error,
	}

	// 计数缺失时从明细推导
	if result.SuccessCount == 0 && result.Ok {
		for _, d := range result.Details {
			if d.Status == DetailStatusPublished {
				result.SuccessCount++
			}
		}
	}

	return result, nil
}

// decodeSuccess 解码 success 字段：可能是布尔，也可能是成功计数
func decodeSuccess(raw json.RawMessage) (bool, int) {
	if len(raw) == 0 {
		return false, 0
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, 0
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n > 0, n
	}

	return false, 0
}
