package core

import "errors"

// Precondition failures are detected before any mutation; handlers return
// them without touching the version history or shared counters.
var (
	ErrJobNotFound      = errors.New("pdfpro: job not found")
	ErrDocumentNotFound = errors.New("pdfpro: document not found")
	ErrBatesSetNotFound = errors.New("pdfpro: bates set not found")
	ErrSourceMissing    = errors.New("pdfpro: source file missing from storage")
	ErrNotPDF           = errors.New("pdfpro: source file is not a PDF")
	ErrInvalidParams    = errors.New("pdfpro: invalid job parameters")
	ErrUnknownJobType   = errors.New("pdfpro: unknown job type")
)

var (
	// ErrCounterConflict means the Bates set's next_number moved between
	// the job reading it and the finalize transaction. Nothing is written
	// when this is returned.
	ErrCounterConflict = errors.New("pdfpro: bates counter advanced concurrently")

	// ErrVersionConflict means a version row with a preassigned number no
	// longer matches the document's next number at insert time.
	ErrVersionConflict = errors.New("pdfpro: version number no longer current")

	// ErrJobNotRunning guards terminal transitions: complete/failed may
	// only be applied to a running job.
	ErrJobNotRunning = errors.New("pdfpro: job is not running")
)
