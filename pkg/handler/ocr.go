package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
)

// NoTextPlaceholder replaces the extracted text when a document has no
// embedded text layer anywhere, commonly a scan that was never OCRed.
const NoTextPlaceholder = "[No extractable text found. This document appears to be a scanned image without an embedded text layer.]"

// ExtractionMethod names the technique recorded in the confidence summary.
const ExtractionMethod = "embedded-text-layer"

// Ocr extracts each page's embedded text layer and caches the result.
// Repeated runs replace the cached row; no version is created because
// this is a derived index, not an audit artifact.
type Ocr struct {
	store  core.Store
	blobs  *blob.LocalStore
	engine pdf.Engine
}

// NewOcr creates the text extraction handler.
func NewOcr(store core.Store, blobs *blob.LocalStore, engine pdf.Engine) *Ocr {
	return &Ocr{store: store, blobs: blobs, engine: engine}
}

func (h *Ocr) Run(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error) {
	doc, src, err := sourcePath(ctx, h.store, h.blobs, h.engine, job.DocumentID)
	if err != nil {
		return nil, err
	}
	report(10)

	pages, err := h.engine.ExtractPages(src)
	if err != nil {
		return nil, err
	}
	report(70)

	fullText := joinPages(pages)

	text := &core.DocumentOcrText{
		DocumentID:        doc.ID,
		FullText:          fullText,
		ConfidenceSummary: fmt.Sprintf("%s; %d pages", ExtractionMethod, len(pages)),
	}
	if err := h.store.UpsertOcrText(ctx, text); err != nil {
		return nil, err
	}
	report(95)

	return &Outcome{}, nil
}

// joinPages concatenates page texts with per-page markers. If no page
// contributed any text the fixed placeholder is substituted.
func joinPages(pages []string) string {
	empty := true
	var b strings.Builder
	for i, text := range pages {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "--- Page %d ---\n", i+1)
		b.WriteString(text)
		if strings.TrimSpace(text) != "" {
			empty = false
		}
	}
	if empty {
		return NoTextPlaceholder
	}
	return b.String()
}
