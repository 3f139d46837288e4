// Package importer 训练数据 JSON 导入
//
// 接受三种常见导出格式：顶层数组、带 intents 数组的对象、键名到记录的映射。
// 运营手工编辑过的文件经常带尾逗号或引号问题，先走 jsonrepair 修复再拒绝。
package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ErrFormat 无法识别的 JSON 结构
var ErrFormat = errors.New("unknown JSON format")

// Record 归一化后的导入记录
type Record struct {
	Slug      string   `json:"slug"`
	Questions []string `json:"questions"`
	Responses []string `json:"responses"`
}

// Parse 把上传的 JSON 文档解析为有序记录列表
// 记录顺序严格跟随文档顺序，导入按此顺序串行执行
func Parse(raw []byte) ([]Record, error) {
	if !json.Valid(raw) {
		repaired, err := jsonrepair.JSONRepair(string(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		raw = []byte(repaired)
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrFormat
	}

	switch trimmed[0] {
	case '[':
		var items []interface{}
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		return normalizeList(items)
	case '{':
		return parseObject(trimmed)
	default:
		return nil, ErrFormat
	}
}

// parseObject 处理对象形态：优先取 intents 数组，否则按键名到记录的映射处理
// 用 token 流遍历以保持文档中的键顺序（map 会打乱顺序）
func parseObject(raw []byte) ([]Record, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	if _, err := dec.Token(); err != nil { // '{'
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	type pair struct {
		key   string
		value json.RawMessage
	}
	var pairs []pair

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, ErrFormat
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		pairs = append(pairs, pair{key: key, value: value})
	}

	// { "intents": [...] } 格式
	for _, p := range pairs {
		if p.key != "intents" {
			continue
		}
		var items []interface{}
		if err := json.Unmarshal(p.value, &items); err == nil {
			return normalizeList(items)
		}
	}

	// 键名到记录的映射：键并入记录作为 slug 来源
	records := make([]Record, 0, len(pairs))
	for _, p := range pairs {
		merged := map[string]interface{}{"tag": p.key}
		var obj map[string]interface{}
		if err := json.Unmarshal(p.value, &obj); err == nil {
			for k, v := range obj {
				merged[k] = v
			}
		}
		records = append(records, normalizeRecord(merged))
	}
	return records, nil
}

func normalizeList(items []interface{}) ([]Record, error) {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, ErrFormat
		}
		records = append(records, normalizeRecord(obj))
	}
	return records, nil
}

// normalizeRecord 字段别名归一化
// slug ← tag|intent|name，questions ← patterns|text|questions，
// responses ← responses|answers|response|answer
func normalizeRecord(obj map[string]interface{}) Record {
	return Record{
		Slug:      firstString(obj, "tag", "intent", "name"),
		Questions: firstStringSlice(obj, "patterns", "text", "questions"),
		Responses: firstStringSlice(obj, "responses", "answers", "response", "answer"),
	}
}

func firstString(obj map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// firstStringSlice 裸字符串强转为单元素序列
func firstStringSlice(obj map[string]interface{}, keys ...string) []string {
	for _, key := range keys {
		value, ok := obj[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			return []string{v}
		case []interface{}:
			out := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := item.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
