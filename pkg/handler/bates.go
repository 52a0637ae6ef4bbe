package handler

import (
	"context"
	"fmt"
	"os"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
)

// Bates stamps sequential labels from a shared set onto every page and
// records the consumed number range. The version insert, range insert,
// and counter advance commit as one unit; a mid-operation failure before
// that point leaves the set's counter untouched.
type Bates struct {
	store  core.Store
	blobs  *blob.LocalStore
	engine pdf.Engine
}

// NewBates creates the Bates numbering handler.
func NewBates(store core.Store, blobs *blob.LocalStore, engine pdf.Engine) *Bates {
	return &Bates{store: store, blobs: blobs, engine: engine}
}

func (h *Bates) Run(ctx context.Context, job *core.DocumentJob, report ProgressFunc) (*Outcome, error) {
	params, err := core.DecodeBatesParams(job.JobParams)
	if err != nil {
		return nil, err
	}

	doc, src, err := sourcePath(ctx, h.store, h.blobs, h.engine, job.DocumentID)
	if err != nil {
		return nil, err
	}
	set, err := h.store.GetBatesSet(ctx, params.BatesSetID)
	if err != nil {
		return nil, err
	}
	report(10)

	pages, err := h.engine.PageCount(src)
	if err != nil {
		return nil, err
	}
	if pages == 0 {
		return nil, fmt.Errorf("document %s has no pages", doc.ID)
	}

	start := set.NextNumber
	end := start + pages - 1
	labels := make(map[int]string, pages)
	for i := 0; i < pages; i++ {
		labels[i+1] = set.Label(start + i)
	}

	placement := set.Placement
	if !placement.Valid() {
		placement = core.PlacementBottomRight
	}
	fontSize := set.FontSize
	if fontSize <= 0 {
		fontSize = 10
	}

	tmp, err := os.CreateTemp("", "bates-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := h.engine.StampPerPage(src, tmpPath, labels, pdf.BatesStampOptions(placement, fontSize)); err != nil {
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
	key := blob.VersionKey(doc.MatterID, doc.ID, versionNumber, "bates", "")
	hash, err := h.blobs.Write(key, data)
	if err != nil {
		return nil, err
	}

	version := &core.DocumentVersion{
		DocumentID:      doc.ID,
		VersionNumber:   versionNumber,
		OperationType:   string(core.JobTypeBates),
		OperationParams: job.JobParams,
		StorageKey:      key,
		Sha256Hash:      hash,
		CreatedBy:       job.CreatedBy,
	}
	rng := &core.BatesRange{
		BatesSetID:  set.ID,
		DocumentID:  doc.ID,
		StartNumber: start,
		EndNumber:   end,
	}
	if err := h.store.FinalizeBates(ctx, version, rng); err != nil {
		return nil, err
	}
	report(95)

	return &Outcome{ResultVersionID: &version.ID}, nil
}

// nextVersion reads the document's latest version number. The storage
// layer re-checks it inside the finalize transaction.
func nextVersion(ctx context.Context, store core.Store, documentID string) (int, error) {
	versions, err := store.GetVersions(ctx, documentID)
	if err != nil {
		return 0, err
	}
	if len(versions) == 0 {
		return 1, nil
	}
	return versions[len(versions)-1].VersionNumber + 1, nil
}
