package handler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matterdocs/pdfpro/pkg/core"
)

func TestBates_ThreePageScenario(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pages = 3

	doc := env.seedDocument(t, "matter-1")
	set := env.seedBatesSet(t, "EX", 4, 1)
	job := jobFor(doc, core.JobTypeBates, `{"batesSetId":"`+set.ID+`"}`)

	h := NewBates(env.store, env.blobs, env.engine)
	outcome, err := h.Run(ctx, job, nil)
	require.NoError(t, err)
	require.NotNil(t, outcome.ResultVersionID)

	// Labels stamped in page order with the set's padding.
	assert.Equal(t, map[int]string{
		1: "EX-0001",
		2: "EX-0002",
		3: "EX-0003",
	}, env.engine.gotLabels)

	// Range covers exactly [N, N+k-1] and the counter advanced to N+k.
	ranges, err := env.store.GetRanges(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, ranges, 1)
	assert.Equal(t, 1, ranges[0].StartNumber)
	assert.Equal(t, 3, ranges[0].EndNumber)
	assert.Equal(t, doc.ID, ranges[0].DocumentID)

	gotSet, err := env.store.GetBatesSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, gotSet.NextNumber)

	// The version row points at hash-verified bytes.
	versions, err := env.store.GetVersions(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	v := versions[0]
	assert.Equal(t, 1, v.VersionNumber)
	assert.Equal(t, "bates", v.OperationType)
	assert.Equal(t, *outcome.ResultVersionID, v.ID)
	assert.Equal(t, "uploads/pdf-pro/matter-1/"+doc.ID+"/v1-bates.pdf", v.StorageKey)

	data, err := env.blobs.Read(v.StorageKey)
	require.NoError(t, err)
	sum := sha256.Sum256(data)
	assert.Equal(t, hex.EncodeToString(sum[:]), v.Sha256Hash,
		"stored hash must equal the hash of the bytes at the storage key")
	assert.Equal(t, ranges[0].VersionID, v.ID)
}

func TestBates_SequentialJobsDoNotOverlap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pages = 2
	set := env.seedBatesSet(t, "DEF", 6, 50)
	h := NewBates(env.store, env.blobs, env.engine)

	for i := 0; i < 2; i++ {
		doc := env.seedDocument(t, "")
		job := jobFor(doc, core.JobTypeBates, `{"batesSetId":"`+set.ID+`"}`)
		_, err := h.Run(ctx, job, nil)
		require.NoError(t, err)
	}

	ranges, err := env.store.GetRanges(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, ranges, 2)
	assert.Equal(t, 50, ranges[0].StartNumber)
	assert.Equal(t, 51, ranges[0].EndNumber)
	assert.Equal(t, 52, ranges[1].StartNumber)
	assert.Equal(t, 53, ranges[1].EndNumber)

	gotSet, err := env.store.GetBatesSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 54, gotSet.NextNumber)
}

func TestBates_MissingSetFailsBeforeAnyMutation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pages = 3
	doc := env.seedDocument(t, "")
	job := jobFor(doc, core.JobTypeBates, `{"batesSetId":"`+uuid.New().String()+`"}`)

	h := NewBates(env.store, env.blobs, env.engine)
	_, err := h.Run(ctx, job, nil)
	assert.ErrorIs(t, err, core.ErrBatesSetNotFound)

	versions, err := env.store.GetVersions(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, versions, "precondition failures must not create versions")
}

func TestBates_MissingSourceFailsBeforeAnyMutation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	set := env.seedBatesSet(t, "EX", 4, 1)

	doc := &core.PdfDocument{
		ID:         uuid.New().String(),
		StorageKey: "uploads/pdf-pro/sources/gone/source.pdf",
	}
	require.NoError(t, env.store.DB().Create(doc).Error)
	job := jobFor(doc, core.JobTypeBates, `{"batesSetId":"`+set.ID+`"}`)

	h := NewBates(env.store, env.blobs, env.engine)
	_, err := h.Run(ctx, job, nil)
	assert.ErrorIs(t, err, core.ErrSourceMissing)

	gotSet, err := env.store.GetBatesSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, gotSet.NextNumber, "counter untouched")
}

func TestBates_StampFailureLeavesCounterUntouched(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pages = 5
	env.engine.failStamp = errors.New("corrupt xref table")

	doc := env.seedDocument(t, "")
	set := env.seedBatesSet(t, "EX", 4, 7)
	job := jobFor(doc, core.JobTypeBates, `{"batesSetId":"`+set.ID+`"}`)

	h := NewBates(env.store, env.blobs, env.engine)
	_, err := h.Run(ctx, job, nil)
	require.Error(t, err)

	gotSet, err := env.store.GetBatesSet(ctx, set.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, gotSet.NextNumber, "mid-operation failure must not advance the durable counter")

	versions, err := env.store.GetVersions(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}
