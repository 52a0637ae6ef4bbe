// Package handler implements the per-job-type document operations and the
// dispatcher that routes a claimed job to the right one.
package handler

import (
	"context"
	"fmt"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
)

// ProgressFunc reports handler progress as a 0-100 percentage.
type ProgressFunc func(percent int)

// Outcome is what a successful handler hands back to the poller.
type Outcome struct {
	// ResultVersionID is set only by operations that produce a new
	// document version (bates, stamp).
	ResultVersionID *string
}

// Handler runs one job type to completion. Any returned error becomes the
// job's terminal failure message.
type Handler interface {
	Run(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error)
}

// Dispatcher maps a job's declared type to its handler.
type Dispatcher struct {
	handlers map[core.JobType]Handler
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[core.JobType]Handler)}
}

// NewDefaultDispatcher wires up the full set of production handlers.
func NewDefaultDispatcher(store core.Store, blobs *blob.LocalStore, engine pdf.Engine) *Dispatcher {
	d := NewDispatcher()
	d.Register(core.JobTypeBates, NewBates(store, blobs, engine))
	d.Register(core.JobTypeStamp, NewStamp(store, blobs, engine))
	d.Register(core.JobTypeWash, NewWash(store, blobs, engine))
	d.Register(core.JobTypeOcr, NewOcr(store, blobs, engine))
	return d
}

// Register installs a handler for a job type.
func (d *Dispatcher) Register(t core.JobType, h Handler) {
	d.handlers[t] = h
}

// Dispatch routes the job to its handler. An unknown type is rejected
// explicitly rather than skipped.
func (d *Dispatcher) Dispatch(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error) {
	h, ok := d.handlers[job.JobType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownJobType, job.JobType)
	}
	if report == nil {
		report = func(int) {}
	}
	return h.Run(ctx, job, report)
}

// sourcePath resolves and checks a job's source document bytes. Both
// checks are preconditions: they run before any mutation so a failure
// here is a safe no-op.
func sourcePath(ctx context.Context, store core.Store, blobs *blob.LocalStore, engine pdf.Engine, documentID string) (*core.PdfDocument, string, error) {
	doc, err := store.GetDocument(ctx, documentID)
	if err != nil {
		return nil, "", err
	}
	if !blobs.Exists(doc.StorageKey) {
		return nil, "", fmt.Errorf("%w: %s", core.ErrSourceMissing, doc.StorageKey)
	}
	path := blobs.Path(doc.StorageKey)
	if err := engine.VerifyPDF(path); err != nil {
		return nil, "", err
	}
	return doc, path, nil
}
