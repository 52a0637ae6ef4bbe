// Package core provides the domain models and interfaces for the pdfpro worker.
package core

import (
	"time"

	"gorm.io/datatypes"
)

// JobType identifies which document operation a job performs.
type JobType string

const (
	JobTypeBates JobType = "bates"
	JobTypeStamp JobType = "stamp"
	JobTypeWash  JobType = "wash"
	JobTypeOcr   JobType = "ocr"
)

// Known reports whether t is a job type the worker can dispatch.
func (t JobType) Known() bool {
	switch t {
	case JobTypeBates, JobTypeStamp, JobTypeWash, JobTypeOcr:
		return true
	}
	return false
}

// JobStatus represents the current state of a job.
// Transitions only move forward: queued -> running -> complete | failed.
type JobStatus string

const (
	StatusQueued   JobStatus = "queued"
	StatusRunning  JobStatus = "running"
	StatusComplete JobStatus = "complete"
	StatusFailed   JobStatus = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == StatusComplete || s == StatusFailed
}

// DocumentJob is a queued unit of work against a single document.
type DocumentJob struct {
	ID              string         `gorm:"primaryKey;size:36"`
	DocumentID      string         `gorm:"index;size:36;not null"`
	JobType         JobType        `gorm:"index;size:20;not null"`
	JobParams       datatypes.JSON `gorm:"type:json"`
	Status          JobStatus      `gorm:"index;size:20;default:'queued'"`
	ProgressPercent int            `gorm:"default:0"`
	ErrorMessage    string         `gorm:"type:text"`
	ResultVersionID *string        `gorm:"size:36"`
	CreatedBy       string         `gorm:"size:36"`
	CreatedAt       time.Time      `gorm:"index;autoCreateTime"`
	StartedAt       *time.Time
	FinishedAt      *time.Time
}

// PdfDocument is a reference to source PDF bytes on durable storage.
// The worker never rewrites it; every mutation lands in a new version.
type PdfDocument struct {
	ID          string `gorm:"primaryKey;size:36"`
	StorageKey  string `gorm:"size:512;not null"`
	MatterID    string `gorm:"index;size:36"`
	WorkspaceID string `gorm:"index;size:36"`
	CreatedAt   time.Time
}
