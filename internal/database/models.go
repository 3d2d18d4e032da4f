// Package database хранит результаты прогонов в PostgreSQL через GORM.
package database

import "time"

// TestRun соответствует одному файлу <uuid>-result.json.
// Статусы: passed, failed, broken, skipped.
type TestRun struct {
	ID          uint         `gorm:"primaryKey"`
	UUID        string       `gorm:"type:varchar(36);uniqueIndex;not null"`
	Name        string       `gorm:"type:text;not null"`
	FullName    string       `gorm:"type:text;not null;index"`
	Status      string       `gorm:"type:varchar(16);not null"`
	Message     string       `gorm:"type:text"`
	Labels      []Label      `gorm:"type:jsonb;serializer:json"`
	StartedAt   time.Time    `gorm:"not null"`
	FinishedAt  time.Time    `gorm:"not null"`
	DurationMs  int64        `gorm:"not null"`
	Steps       []TestStep   `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time    `gorm:"autoCreateTime"`
}

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// TestStep хранит шаги плоско, вложенность восстанавливается по ParentID.
type TestStep struct {
	ID         uint      `gorm:"primaryKey"`
	RunID      uint      `gorm:"index;not null"`
	ParentID   *uint     `gorm:"index"`
	Position   int       `gorm:"not null"`
	Name       string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(16);not null"`
	Message    string    `gorm:"type:text"`
	StartedAt  time.Time `gorm:"not null"`
	FinishedAt time.Time `gorm:"not null"`
}

// Attachment ссылается на файл вложения в каталоге результатов.
type Attachment struct {
	ID       uint   `gorm:"primaryKey"`
	RunID    uint   `gorm:"index;not null"`
	StepID   *uint  `gorm:"index"`
	Name     string `gorm:"type:text;not null"`
	Source   string `gorm:"type:text;not null"`
	MimeType string `gorm:"type:varchar(64);not null"`
}
