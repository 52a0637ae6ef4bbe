package core

import (
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// DocumentVersion is an immutable derived rendition of a document.
// Once written, its bytes and hash are never modified; the sha256 hash
// must equal the hash of the bytes at StorageKey. Version numbers are
// strictly increasing per document, starting at 1.
type DocumentVersion struct {
	ID              string         `gorm:"primaryKey;size:36"`
	DocumentID      string         `gorm:"uniqueIndex:idx_doc_version;size:36;not null"`
	VersionNumber   int            `gorm:"uniqueIndex:idx_doc_version;not null"`
	OperationType   string         `gorm:"size:20;not null"`
	OperationParams datatypes.JSON `gorm:"type:json"`
	StorageKey      string         `gorm:"size:512;not null"`
	Sha256Hash      string         `gorm:"size:64;not null"`
	CreatedBy       string         `gorm:"size:36"`
	CreatedAt       time.Time      `gorm:"autoCreateTime"`
}

// BatesSet holds cross-job shared sequence state. NextNumber is the only
// mutable field: it advances monotonically and numbers are never reused.
type BatesSet struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Prefix     string    `gorm:"size:32;not null"`
	Padding    int       `gorm:"default:6"`
	Placement  Placement `gorm:"size:20"`
	FontSize   int       `gorm:"default:10"`
	NextNumber int       `gorm:"default:1"`
	CreatedAt  time.Time
}

// Label renders the Bates label for sequence number n, zero-padded to the
// set's configured width.
func (s *BatesSet) Label(n int) string {
	return fmt.Sprintf("%s-%0*d", s.Prefix, s.Padding, n)
}

// BatesRange records the span of numbers a completed Bates job consumed.
// Ranges from the same set never overlap and start <= end always holds.
type BatesRange struct {
	ID          string `gorm:"primaryKey;size:36"`
	BatesSetID  string `gorm:"index;size:36;not null"`
	DocumentID  string `gorm:"index;size:36;not null"`
	VersionID   string `gorm:"size:36;not null"`
	StartNumber int    `gorm:"not null"`
	EndNumber   int    `gorm:"not null"`
	CreatedAt   time.Time
}
