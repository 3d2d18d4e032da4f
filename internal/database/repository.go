package database

import (
	"context"
	"fmt"
	"time"

	"github.com/ozontech/allure-go/pkg/allure"
	"gorm.io/gorm"
)

type ResultRepository struct {
	db *gorm.DB
}

func NewResultRepository(db *DB) *ResultRepository {
	return &ResultRepository{db: db.DB}
}

// Save записывает прогон со всеми шагами и вложениями в одной транзакции.
func (r *ResultRepository) Save(ctx context.Context, res *allure.Result) error {
	run := toRun(res)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Steps", "Attachments").Create(run).Error; err != nil {
			return fmt.Errorf("ошибка сохранения прогона %s: %w", run.UUID, err)
		}
		if err := saveAttachments(tx, run.ID, nil, res.Attachments); err != nil {
			return err
		}
		return saveSteps(tx, run.ID, nil, res.Steps)
	})
}

func saveSteps(tx *gorm.DB, runID uint, parentID *uint, steps []*allure.Step) error {
	for i, s := range steps {
		step := toStep(runID, parentID, i, s)
		if err := tx.Create(&step).Error; err != nil {
			return fmt.Errorf("ошибка сохранения шага %q: %w", s.Name, err)
		}
		if err := saveAttachments(tx, runID, &step.ID, s.Attachments); err != nil {
			return err
		}
		if err := saveSteps(tx, runID, &step.ID, s.Steps); err != nil {
			return err
		}
	}
	return nil
}

func saveAttachments(tx *gorm.DB, runID uint, stepID *uint, attachments []*allure.Attachment) error {
	if len(attachments) == 0 {
		return nil
	}
	rows := toAttachments(runID, stepID, attachments)
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("ошибка сохранения вложений: %w", err)
	}
	return nil
}

func (r *ResultRepository) ListRuns(limit, offset int) ([]TestRun, error) {
	var runs []TestRun
	if err := r.db.Order("id DESC").Limit(limit).Offset(offset).Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *ResultRepository) GetRun(uuid string) (*TestRun, error) {
	var run TestRun
	err := r.db.
		Preload("Steps", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Attachments").
		Where("uuid = ?", uuid).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func toRun(res *allure.Result) *TestRun {
	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, Label{Name: l.Name, Value: l.GetValue()})
	}

	return &TestRun{
		UUID:       res.UUID.String(),
		Name:       res.Name,
		FullName:   res.FullName,
		Status:     string(res.Status),
		Message:    res.StatusDetails.Message,
		Labels:     labels,
		StartedAt:  time.UnixMilli(res.Start),
		FinishedAt: time.UnixMilli(res.Stop),
		DurationMs: res.Stop - res.Start,
	}
}

func toStep(runID uint, parentID *uint, position int, s *allure.Step) TestStep {
	return TestStep{
		RunID:      runID,
		ParentID:   parentID,
		Position:   position,
		Name:       s.Name,
		Status:     string(s.Status),
		Message:    s.StatusDetails.Message,
		StartedAt:  time.UnixMilli(s.Start),
		FinishedAt: time.UnixMilli(s.Stop),
	}
}

func toAttachments(runID uint, stepID *uint, attachments []*allure.Attachment) []Attachment {
	rows := make([]Attachment, 0, len(attachments))
	for _, a := range attachments {
		rows = append(rows, Attachment{
			RunID:    runID,
			StepID:   stepID,
			Name:     a.Name,
			Source:   a.Source,
			MimeType: string(a.Type),
		})
	}
	return rows
}
