package core

import (
	"time"

	"gorm.io/datatypes"
)

// PdfWashReport is the persisted outcome of a PII wash scan. It is a
// finding, not a document mutation: the source bytes are never altered
// and no version row is created for it.
type PdfWashReport struct {
	ID          string         `gorm:"primaryKey;size:36"`
	DocumentID  string         `gorm:"index;size:36;not null"`
	WorkspaceID string         `gorm:"index;size:36"`
	MatterID    string         `gorm:"index;size:36"`
	Policy      string         `gorm:"size:64"`
	Detections  datatypes.JSON `gorm:"type:json"`
	Summary     datatypes.JSON `gorm:"type:json"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

// DocumentOcrText caches the latest embedded text-layer extraction for a
// document. It is a derived index rather than an audit artifact, so each
// extraction replaces the previous row rather than versioning it.
type DocumentOcrText struct {
	ID                string    `gorm:"primaryKey;size:36"`
	DocumentID        string    `gorm:"uniqueIndex;size:36;not null"`
	FullText          string    `gorm:"type:text"`
	ConfidenceSummary string    `gorm:"size:255"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}
