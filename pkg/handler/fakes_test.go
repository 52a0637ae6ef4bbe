package handler

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/matterdocs/pdfpro/pkg/blob"
	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/pdf"
	"github.com/matterdocs/pdfpro/pkg/storage"
)

// fakeEngine is a stand-in PDF engine: stamping writes deterministic
// bytes so tests can assert on hashes and recorded labels without real
// PDF rendering.
type fakeEngine struct {
	pages     int
	pageTexts []string

	failVerify error
	failStamp  error

	// recorded by the stamping calls
	gotLabels map[int]string
	gotText   string
	gotOpts   pdf.StampOptions
}

func (f *fakeEngine) VerifyPDF(path string) error {
	if f.failVerify != nil {
		return f.failVerify
	}
	if _, err := os.Stat(path); err != nil {
		return err
	}
	return nil
}

func (f *fakeEngine) PageCount(path string) (int, error) {
	return f.pages, nil
}

func (f *fakeEngine) StampPerPage(src, dst string, labels map[int]string, opts pdf.StampOptions) error {
	if f.failStamp != nil {
		return f.failStamp
	}
	f.gotLabels = labels
	f.gotOpts = opts

	pages := make([]int, 0, len(labels))
	for p := range labels {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	var b strings.Builder
	b.WriteString("%PDF-fake\n")
	for _, p := range pages {
		fmt.Fprintf(&b, "page %d: %s\n", p, labels[p])
	}
	return os.WriteFile(dst, []byte(b.String()), 0o644)
}

func (f *fakeEngine) StampAll(src, dst, text string, opts pdf.StampOptions) error {
	if f.failStamp != nil {
		return f.failStamp
	}
	f.gotText = text
	f.gotOpts = opts
	return os.WriteFile(dst, []byte("%PDF-fake\nstamp: "+text+"\n"), 0o644)
}

func (f *fakeEngine) ExtractPages(path string) ([]string, error) {
	return f.pageTexts, nil
}

// testEnv bundles the store, blob store, and fake engine every handler
// test needs.
type testEnv struct {
	store  *storage.GormStore
	blobs  *blob.LocalStore
	engine *fakeEngine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "open in-memory sqlite")

	s := storage.NewGormStore(db)
	require.NoError(t, s.Migrate(context.Background()), "migrate schema")

	return &testEnv{
		store:  s,
		blobs:  blob.NewLocalStore(t.TempDir()),
		engine: &fakeEngine{pages: 1},
	}
}

// seedDocument creates a document row and writes its source bytes.
func (e *testEnv) seedDocument(t *testing.T, matterID string) *core.PdfDocument {
	t.Helper()
	id := uuid.New().String()
	key := "uploads/pdf-pro/sources/" + id + "/source.pdf"
	_, err := e.blobs.Write(key, []byte("%PDF-fake source\n"))
	require.NoError(t, err, "write source bytes")

	doc := &core.PdfDocument{
		ID:          id,
		StorageKey:  key,
		MatterID:    matterID,
		WorkspaceID: uuid.New().String(),
	}
	require.NoError(t, e.store.DB().Create(doc).Error, "seed document row")
	return doc
}

// seedBatesSet creates shared sequence state.
func (e *testEnv) seedBatesSet(t *testing.T, prefix string, padding, next int) *core.BatesSet {
	t.Helper()
	set := &core.BatesSet{
		ID:         uuid.New().String(),
		Prefix:     prefix,
		Padding:    padding,
		Placement:  core.PlacementBottomRight,
		FontSize:   10,
		NextNumber: next,
	}
	require.NoError(t, e.store.DB().Create(set).Error, "seed bates set")
	return set
}

func jobFor(doc *core.PdfDocument, jobType core.JobType, params string) *core.DocumentJob {
	return &core.DocumentJob{
		ID:         uuid.New().String(),
		DocumentID: doc.ID,
		JobType:    jobType,
		JobParams:  []byte(params),
		Status:     core.StatusRunning,
	}
}
