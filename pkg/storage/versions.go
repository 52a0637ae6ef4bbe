package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/matterdocs/pdfpro/pkg/core"
)

func nextVersionNumber(tx *gorm.DB, documentID string) (int, error) {
	var max int
	err := tx.Model(&core.DocumentVersion{}).
		Where("document_id = ?", documentID).
		Select("COALESCE(MAX(version_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// assignVersionNumber fills in or verifies a version's number against the
// document's current max inside the caller's transaction. Handlers pick
// the number ahead of time because the derived filename encodes it; the
// check keeps the sequence gapless if anything raced in between.
func assignVersionNumber(tx *gorm.DB, v *core.DocumentVersion) error {
	n, err := nextVersionNumber(tx, v.DocumentID)
	if err != nil {
		return err
	}
	if v.VersionNumber == 0 {
		v.VersionNumber = n
	} else if v.VersionNumber != n {
		return core.ErrVersionConflict
	}
	return nil
}

// CreateVersion inserts an immutable derived version. The version number
// is assigned (or verified) inside the insert transaction against the
// document's current max, so numbers are gapless and strictly increasing.
func (s *GormStore) CreateVersion(ctx context.Context, v *core.DocumentVersion) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assignVersionNumber(tx, v); err != nil {
			return err
		}
		return tx.Create(v).Error
	})
}

// GetVersions lists a document's versions in version-number order.
func (s *GormStore) GetVersions(ctx context.Context, documentID string) ([]core.DocumentVersion, error) {
	var versions []core.DocumentVersion
	err := s.db.WithContext(ctx).
		Where("document_id = ?", documentID).
		Order("version_number ASC").
		Find(&versions).Error
	return versions, err
}

// GetBatesSet retrieves shared sequence state for a Bates set.
func (s *GormStore) GetBatesSet(ctx context.Context, id string) (*core.BatesSet, error) {
	var set core.BatesSet
	err := s.db.WithContext(ctx).First(&set, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, core.ErrBatesSetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

// FinalizeBates commits the three causally linked writes of a Bates job
// as one durable unit: the version insert, the range insert, and the
// counter advance. The counter update is conditional on next_number still
// equalling the range's start; if another writer advanced it first the
// whole transaction rolls back with ErrCounterConflict and no rows land.
func (s *GormStore) FinalizeBates(ctx context.Context, v *core.DocumentVersion, rng *core.BatesRange) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if rng.ID == "" {
		rng.ID = uuid.New().String()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assignVersionNumber(tx, v); err != nil {
			return err
		}
		if err := tx.Create(v).Error; err != nil {
			return err
		}

		rng.VersionID = v.ID
		if err := tx.Create(rng).Error; err != nil {
			return err
		}

		result := tx.Model(&core.BatesSet{}).
			Where("id = ? AND next_number = ?", rng.BatesSetID, rng.StartNumber).
			Update("next_number", rng.EndNumber+1)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return core.ErrCounterConflict
		}
		return nil
	})
}

// GetRanges lists the number ranges consumed from a Bates set.
func (s *GormStore) GetRanges(ctx context.Context, batesSetID string) ([]core.BatesRange, error) {
	var ranges []core.BatesRange
	err := s.db.WithContext(ctx).
		Where("bates_set_id = ?", batesSetID).
		Order("start_number ASC").
		Find(&ranges).Error
	return ranges, err
}

// SaveWashReport inserts a wash scan's findings. Reports are append-only:
// every scan yields a fresh row.
func (s *GormStore) SaveWashReport(ctx context.Context, r *core.PdfWashReport) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return s.db.WithContext(ctx).Create(r).Error
}

// UpsertOcrText stores the latest extraction for a document, replacing
// any prior row: a derived cache, not an audit artifact.
func (s *GormStore) UpsertOcrText(ctx context.Context, t *core.DocumentOcrText) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing core.DocumentOcrText
		err := tx.First(&existing, "document_id = ?", t.DocumentID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if t.ID == "" {
				t.ID = uuid.New().String()
			}
			return tx.Create(t).Error
		}
		if err != nil {
			return err
		}
		t.ID = existing.ID
		return tx.Model(&existing).Updates(map[string]any{
			"full_text":          t.FullText,
			"confidence_summary": t.ConfidenceSummary,
		}).Error
	})
}

// GetOcrText retrieves the cached extraction for a document, or nil if
// none has been recorded.
func (s *GormStore) GetOcrText(ctx context.Context, documentID string) (*core.DocumentOcrText, error) {
	var t core.DocumentOcrText
	err := s.db.WithContext(ctx).First(&t, "document_id = ?", documentID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
