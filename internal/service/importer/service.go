package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexbot/intent-admin/internal/model"
	"github.com/nexbot/intent-admin/internal/repository"
	"github.com/nexbot/intent-admin/internal/service/stats"
)

// Service 导入服务
type Service struct {
	repo  *repository.Repositories
	stats *stats.Service
}

// NewService 创建导入服务
func NewService(repo *repository.Repositories, statsSvc *stats.Service) *Service {
	return &Service{repo: repo, stats: statsSvc}
}

// Report 导入结果与逐行日志
type Report struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Log      []string `json:"log"`
}

func (r *Report) logf(format string, args ...interface{}) {
	r.Log = append(r.Log, fmt.Sprintf(format, args...))
}

// Run 串行导入记录
//
// 严格按输入顺序逐条处理、不并发，保证对存量 slug 的冲突检测是确定的；
// 导入不是吞吐敏感路径，串行带来的延迟可以接受。
// 单条记录失败只记日志，绝不中止后续记录。
func (s *Service) Run(ctx context.Context, session *model.Session, records []Record) (*Report, error) {
	report := &Report{}
	report.logf("Starting import of %d records", len(records))

	defer s.stats.Invalidate(ctx)

	for _, record := range records {
		s.importRecord(session, record, report)
	}

	report.logf("Done. Imported: %d, Skipped: %d", report.Imported, report.Skipped)
	return report, nil
}

// importRecord 导入单条记录
// 意图行创建失败（含 slug 冲突）时直接跳过，不留子表的半成品行
func (s *Service) importRecord(session *model.Session, record Record, report *Report) {
	if record.Slug == "" {
		report.Skipped++
		report.logf("Skipping item without tag/slug")
		return
	}

	if len(record.Responses) == 0 {
		report.logf("Warning: %q has no answers. Publish will fail unless you add one.", record.Slug)
	}

	intent := &model.Intent{
		ID:        uuid.New().String(),
		Name:      humanizeSlug(record.Slug),
		Slug:      model.Slugify(record.Slug),
		Status:    model.StatusDraft,
		CreatedBy: session.UserID,
	}

	if err := s.repo.Intent.Create(intent); err != nil {
		report.Skipped++
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			report.logf("Skipped duplicate intent: %s", record.Slug)
		} else {
			report.logf("Error creating %s: %v", record.Slug, err)
		}
		return
	}

	// 只取第一条响应作为答案，多余的静默丢弃
	if len(record.Responses) > 0 {
		answer := &model.Answer{
			ID:         uuid.New().String(),
			IntentID:   intent.ID,
			AnswerText: record.Responses[0],
			IsActive:   true,
			CreatedBy:  session.UserID,
		}
		if err := s.repo.Answer.Create(answer); err != nil {
			report.logf("Error creating answer for %s: %v", record.Slug, err)
		}
	}

	// 最多 9 个问题，order_index 按输入位置分配，超出的静默丢弃
	questions := record.Questions
	if len(questions) > model.MaxQuestions {
		questions = questions[:model.MaxQuestions]
	}
	if len(questions) > 0 {
		rows := make([]*model.Question, 0, len(questions))
		for i, text := range questions {
			rows = append(rows, &model.Question{
				ID:           uuid.New().String(),
				IntentID:     intent.ID,
				QuestionText: text,
				OrderIndex:   i + 1,
				IsActive:     true,
				CreatedBy:    session.UserID,
			})
		}
		if err := s.repo.Question.CreateBatch(rows); err != nil {
			report.logf("Error creating questions for %s: %v", record.Slug, err)
		}
	}

	report.Imported++
	report.logf("Imported: %s", record.Slug)
}

// humanizeSlug 导入时用 slug 生成可读名称
func humanizeSlug(slug string) string {
	return strings.ReplaceAll(slug, "_", " ")
}
