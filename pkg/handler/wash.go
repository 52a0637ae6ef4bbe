package handler

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
	"github.com/matterdocs/pdfpro/pkg/scan"
)

// Wash scans a document's embedded text for personally identifiable
// information and persists a report of its findings. The source bytes
// are never altered and no version row is created.
type Wash struct {
	store  core.Store
	blobs  *blob.LocalStore
	engine pdf.Engine
}

// NewWash creates the PII wash handler.
func NewWash(store core.Store, blobs *blob.LocalStore, engine pdf.Engine) *Wash {
	return &Wash{store: store, blobs: blobs, engine: engine}
}

func (h *Wash) Run(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error) {
	params, err := core.DecodeWashParams(job.JobParams)
	if err != nil {
		return nil, err
	}

	doc, src, err := sourcePath(ctx, h.store, h.blobs, h.engine, job.DocumentID)
	if err != nil {
		return nil, err
	}
	report(10)

	pages, err := h.engine.ExtractPages(src)
	if err != nil {
		return nil, err
	}
	report(60)

	detections, summary := scan.ScanPages(pages)
	if detections == nil {
		detections = []scan.Detection{}
	}
	report(80)

	detectionsJSON, err := json.Marshal(detections)
	if err != nil {
		return nil, fmt.Errorf("encode detections: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return nil, fmt.Errorf("encode summary: %w", err)
	}

	washReport := &core.PdfWashReport{
		DocumentID:  doc.ID,
		WorkspaceID: doc.WorkspaceID,
		MatterID:    doc.MatterID,
		Policy:      params.Policy,
		Detections:  detectionsJSON,
		Summary:     summaryJSON,
	}
	if err := h.store.SaveWashReport(ctx, washReport); err != nil {
		return nil, err
	}
	report(95)

	return &Outcome{}, nil
}
