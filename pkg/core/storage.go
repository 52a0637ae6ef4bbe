package core

import (
	"context"
	"time"
)

// Store defines the persistence surface the worker depends on. The worker
// exclusively owns writes to versions, ranges, wash reports, and OCR text;
// jobs, documents, and Bates sets are read-only apart from the narrow
// status-transition and counter-advance writes below.
type Store interface {
	// Migrate creates the necessary database tables.
	Migrate(ctx context.Context) error

	// Job lifecycle
	EnqueueJob(ctx context.Context, job *DocumentJob) error
	ClaimNext(ctx context.Context) (*DocumentJob, error)
	UpdateProgress(ctx context.Context, jobID string, percent int) error
	MarkComplete(ctx context.Context, jobID string, resultVersionID *string) error
	MarkFailed(ctx context.Context, jobID string, errMsg string) error
	GetJob(ctx context.Context, jobID string) (*DocumentJob, error)
	SweepStaleRunning(ctx context.Context, olderThan time.Duration) (int64, error)

	// Documents
	GetDocument(ctx context.Context, documentID string) (*PdfDocument, error)

	// Version store
	CreateVersion(ctx context.Context, v *DocumentVersion) error
	GetVersions(ctx context.Context, documentID string) ([]DocumentVersion, error)

	// Bates sequence state
	GetBatesSet(ctx context.Context, id string) (*BatesSet, error)
	FinalizeBates(ctx context.Context, v *DocumentVersion, rng *BatesRange) error
	GetRanges(ctx context.Context, batesSetID string) ([]BatesRange, error)

	// Findings and derived text
	SaveWashReport(ctx context.Context, r *PdfWashReport) error
	UpsertOcrText(ctx context.Context, t *DocumentOcrText) error
	GetOcrText(ctx context.Context, documentID string) (*DocumentOcrText, error)
}
