// Package storage provides the GORM-backed persistence layer for the worker.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matterdocs/pdfpro/pkg/core"
)

// GormStore implements core.Store using GORM.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// DB exposes the underlying handle for callers that need raw access.
func (s *GormStore) DB() *gorm.DB {
	return s.db
}

// Migrate creates the necessary tables.
func (s *GormStore) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&core.DocumentJob{},
		&core.PdfDocument{},
		&core.DocumentVersion{},
		&core.BatesSet{},
		&core.BatesRange{},
		&core.PdfWashReport{},
		&core.DocumentOcrText{},
	)
}

// EnqueueJob adds a job to the queue. Parameters are validated against the
// job type here, at creation time, so handlers never see a malformed shape.
func (s *GormStore) EnqueueJob(ctx context.Context, job *core.DocumentJob) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	if job.Status == "" {
		job.Status = core.StatusQueued
	}
	if err := core.ValidateParams(job.JobType, job.JobParams); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Create(job).Error
}

// ClaimNext fetches the single oldest queued job and marks it running in
// one transaction: the select and the status flip cannot interleave with
// another claimer.
func (s *GormStore) ClaimNext(ctx context.Context) (*core.DocumentJob, error) {
	var job core.DocumentJob
	now := time.Now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("status = ?", core.StatusQueued).
			Order("created_at ASC").
			First(&job)

		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return nil
			}
			return result.Error
		}

		job.Status = core.StatusRunning
		job.StartedAt = &now
		job.ProgressPercent = 0

		return tx.Save(&job).Error
	})

	if err != nil {
		return nil, err
	}
	if job.ID == "" {
		return nil, nil
	}
	return &job, nil
}

// UpdateProgress records handler progress. Progress is monotonic while a
// job runs: a lower percentage than what is stored is a silent no-op.
func (s *GormStore) UpdateProgress(ctx context.Context, jobID string, percent int) error {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return s.db.WithContext(ctx).
		Model(&core.DocumentJob{}).
		Where("id = ? AND status = ? AND progress_percent <= ?", jobID, core.StatusRunning, percent).
		Update("progress_percent", percent).Error
}

// MarkComplete transitions a running job to its terminal complete state.
func (s *GormStore) MarkComplete(ctx context.Context, jobID string, resultVersionID *string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&core.DocumentJob{}).
		Where("id = ? AND status = ?", jobID, core.StatusRunning).
		Updates(map[string]any{
			"status":            core.StatusComplete,
			"progress_percent":  100,
			"result_version_id": resultVersionID,
			"finished_at":       now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrJobNotRunning
	}
	return nil
}

// MarkFailed transitions a running job to its terminal failed state,
// carrying the handler's error message verbatim.
func (s *GormStore) MarkFailed(ctx context.Context, jobID string, errMsg string) error {
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&core.DocumentJob{}).
		Where("id = ? AND status = ?", jobID, core.StatusRunning).
		Updates(map[string]any{
			"status":        core.StatusFailed,
			"error_message": errMsg,
			"finished_at":   now,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return core.ErrJobNotRunning
	}
	return nil
}

// GetJob retrieves a job by ID.
func (s *GormStore) GetJob(ctx context.Context, jobID string) (*core.DocumentJob, error) {
	var job core.DocumentJob
	err := s.db.WithContext(ctx).First(&job, "id = ?", jobID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrJobNotFound
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// SweepStaleRunning fails jobs that have sat in running longer than the
// threshold. Jobs orphaned by an unclean shutdown are failed, never
// silently requeued, so the failure trail stays visible.
func (s *GormStore) SweepStaleRunning(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	now := time.Now()
	result := s.db.WithContext(ctx).
		Model(&core.DocumentJob{}).
		Where("status = ?", core.StatusRunning).
		Where("started_at < ?", cutoff).
		Updates(map[string]any{
			"status":        core.StatusFailed,
			"error_message": "worker restarted while job was running; resubmit the job",
			"finished_at":   now,
		})
	return result.RowsAffected, result.Error
}

// GetDocument retrieves a source document reference.
func (s *GormStore) GetDocument(ctx context.Context, documentID string) (*core.PdfDocument, error) {
	var doc core.PdfDocument
	err := s.db.WithContext(ctx).First(&doc, "id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrDocumentNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}
