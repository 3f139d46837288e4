// Package importer 解析器单元测试
package importer

import (
	"errors"
	"testing"
)

// ========== 三种文档形态 ==========

func TestParse_TopLevelArray(t *testing.T) {
	raw := []byte(`[
		{"tag": "greeting", "patterns": ["Hi", "Hello"], "responses": ["Hey there!"]},
		{"tag": "goodbye", "patterns": ["Bye"], "responses": ["See you!"]}
	]`)

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2", len(records))
	}

	if records[0].Slug != "greeting" {
		t.Errorf("Slug = %q, want 'greeting'", records[0].Slug)
	}
	if len(records[0].Questions) != 2 || records[0].Questions[0] != "Hi" {
		t.Errorf("Questions = %v, want [Hi Hello]", records[0].Questions)
	}
	if len(records[0].Responses) != 1 || records[0].Responses[0] != "Hey there!" {
		t.Errorf("Responses = %v, want [Hey there!]", records[0].Responses)
	}
	if records[1].Slug != "goodbye" {
		t.Errorf("second Slug = %q, want 'goodbye'", records[1].Slug)
	}
}

func TestParse_IntentsObject(t *testing.T) {
	raw := []byte(`{"intents": [
		{"intent": "refund_policy", "text": ["How do refunds work?"], "answers": ["Within 30 days."]}
	]}`)

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("record count = %d, want 1", len(records))
	}

	if records[0].Slug != "refund_policy" {
		t.Errorf("Slug = %q, want 'refund_policy'", records[0].Slug)
	}
	if len(records[0].Questions) != 1 || records[0].Questions[0] != "How do refunds work?" {
		t.Errorf("Questions = %v", records[0].Questions)
	}
	if len(records[0].Responses) != 1 || records[0].Responses[0] != "Within 30 days." {
		t.Errorf("Responses = %v", records[0].Responses)
	}
}

func TestParse_KeyedMapping(t *testing.T) {
	raw := []byte(`{
		"greeting": {"questions": ["Hi"], "response": "Hello!"},
		"goodbye": {"questions": ["Bye"], "response": "Goodbye!"}
	}`)

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("record count = %d, want 2", len(records))
	}

	// 键顺序严格跟随文档
	if records[0].Slug != "greeting" || records[1].Slug != "goodbye" {
		t.Errorf("slug order = [%s %s], want [greeting goodbye]", records[0].Slug, records[1].Slug)
	}
	// 裸字符串响应强转为单元素序列
	if len(records[0].Responses) != 1 || records[0].Responses[0] != "Hello!" {
		t.Errorf("Responses = %v, want [Hello!]", records[0].Responses)
	}
}

func TestParse_KeyedMappingPreservesOrder(t *testing.T) {
	raw := []byte(`{"z_last": {}, "a_first": {}, "m_middle": {}}`)

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	expected := []string{"z_last", "a_first", "m_middle"}
	if len(records) != len(expected) {
		t.Fatalf("record count = %d, want %d", len(records), len(expected))
	}
	for i, slug := range expected {
		if records[i].Slug != slug {
			t.Errorf("records[%d].Slug = %q, want %q", i, records[i].Slug, slug)
		}
	}
}

// ========== 字段别名 ==========

func TestParse_FieldAliases(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantSlug      string
		wantQuestions []string
		wantResponses []string
	}{
		{
			name:          "tag wins over name",
			raw:           `[{"tag": "from_tag", "name": "from_name"}]`,
			wantSlug:      "from_tag",
			wantQuestions: nil,
			wantResponses: nil,
		},
		{
			name:          "intent alias",
			raw:           `[{"intent": "from_intent"}]`,
			wantSlug:      "from_intent",
			wantQuestions: nil,
			wantResponses: nil,
		},
		{
			name:          "name fallback",
			raw:           `[{"name": "from_name"}]`,
			wantSlug:      "from_name",
			wantQuestions: nil,
			wantResponses: nil,
		},
		{
			name:          "patterns wins over questions",
			raw:           `[{"tag": "x", "patterns": ["p1"], "questions": ["q1"]}]`,
			wantSlug:      "x",
			wantQuestions: []string{"p1"},
			wantResponses: nil,
		},
		{
			name:          "answer singular alias",
			raw:           `[{"tag": "x", "answer": "only one"}]`,
			wantSlug:      "x",
			wantQuestions: nil,
			wantResponses: []string{"only one"},
		},
		{
			name:          "bare string question coerced",
			raw:           `[{"tag": "x", "patterns": "just one"}]`,
			wantSlug:      "x",
			wantQuestions: []string{"just one"},
			wantResponses: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := Parse([]byte(tt.raw))
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if len(records) != 1 {
				t.Fatalf("record count = %d, want 1", len(records))
			}

			r := records[0]
			if r.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", r.Slug, tt.wantSlug)
			}
			if len(r.Questions) != len(tt.wantQuestions) {
				t.Errorf("Questions = %v, want %v", r.Questions, tt.wantQuestions)
			} else {
				for i := range tt.wantQuestions {
					if r.Questions[i] != tt.wantQuestions[i] {
						t.Errorf("Questions[%d] = %q, want %q", i, r.Questions[i], tt.wantQuestions[i])
					}
				}
			}
			if len(r.Responses) != len(tt.wantResponses) {
				t.Errorf("Responses = %v, want %v", r.Responses, tt.wantResponses)
			}
		})
	}
}

// ========== 容错与拒绝 ==========

func TestParse_RepairsTrailingComma(t *testing.T) {
	raw := []byte(`[{"tag": "greeting", "patterns": ["Hi",], "responses": ["Hello!"],},]`)

	records, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse() should repair trailing commas, got error: %v", err)
	}
	if len(records) != 1 || records[0].Slug != "greeting" {
		t.Errorf("records = %+v, want single greeting record", records)
	}
}

func TestParse_RejectsScalar(t *testing.T) {
	for _, raw := range []string{`"just a string"`, `42`, `true`} {
		_, err := Parse([]byte(raw))
		if !errors.Is(err, ErrFormat) {
			t.Errorf("Parse(%s) error = %v, want ErrFormat", raw, err)
		}
	}
}

func TestParse_RejectsEmpty(t *testing.T) {
	_, err := Parse([]byte(""))
	if err == nil {
		t.Error("Parse(empty) should fail")
	}
}

func TestParse_ArrayOfScalars(t *testing.T) {
	_, err := Parse([]byte(`["a", "b"]`))
	if !errors.Is(err, ErrFormat) {
		t.Errorf("Parse() error = %v, want ErrFormat", err)
	}
}
