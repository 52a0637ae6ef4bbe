package handler

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
)

// Stamp marks every page with a confidentiality label. Unlike Bates
// numbering there is no shared counter, so stamping is safe to run
// repeatedly without cross-job interaction.
type Stamp struct {
	store  core.Store
	blobs  *blob.LocalStore
	engine pdf.Engine
}

// NewStamp creates the confidentiality stamp handler.
func NewStamp(store core.Store, blobs *blob.LocalStore, engine pdf.Engine) *Stamp {
	return &Stamp{store: store, blobs: blobs, engine: engine}
}

func (h *Stamp) Run(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error) {
	params, err := core.DecodeStampParams(job.JobParams)
	if err != nil {
		return nil, err
	}

	doc, src, err := sourcePath(ctx, h.store, h.blobs, h.engine, job.DocumentID)
	if err != nil {
		return nil, err
	}
	report(10)

	// Underscores are storage-friendly; the rendered label reads as words.
	display := strings.ReplaceAll(params.StampType, "_", " ")

	tmp, err := os.CreateTemp("", "stamp-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := h.engine.StampAll(src, tmpPath, display, pdf.ConfidentialStampOptions(params.Placement, params.FontSize)); err != nil {
		return nil, err
	}
	report(80)

	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read stamped output: %w", err)
	}

	versionNumber, err := nextVersion(ctx, h.store, doc.ID)
	if err != nil {
		return nil, err
	}
	key := blob.VersionKey(doc.MatterID, doc.ID, versionNumber, "stamp", params.StampType)
	hash, err := h.blobs.Write(key, data)
	if err != nil {
		return nil, err
	}

	version := &core.DocumentVersion{
		DocumentID:      doc.ID,
		VersionNumber:   versionNumber,
		OperationType:   string(core.JobTypeStamp),
		OperationParams: job.JobParams,
		StorageKey:      key,
		Sha256Hash:      hash,
		CreatedBy:       job.CreatedBy,
	}
	if err := h.store.CreateVersion(ctx, version); err != nil {
		return nil, err
	}
	report(95)

	return &Outcome{ResultVersionID: &version.ID}, nil
}
