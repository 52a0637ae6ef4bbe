package handler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matterdocs/pdfpro/pkg/core"
	"github.com/matterdocs/pdfpro/pkg/scan"
)

func TestWash_ReportsDetectionsWithoutTouchingTheDocument(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pageTexts = []string{
		"Claimant SSN 123-45-6789 on file.",
		"Contact jane@example.com with questions.",
	}
	doc := env.seedDocument(t, "matter-9")
	job := jobFor(doc, core.JobTypeWash, `{}`)

	h := NewWash(env.store, env.blobs, env.engine)
	outcome, err := h.Run(ctx, job, nil)
	require.NoError(t, err)
	assert.Nil(t, outcome.ResultVersionID, "a wash scan is a finding, not a mutation")

	var reports []core.PdfWashReport
	require.NoError(t, env.store.DB().Where("document_id = ?", doc.ID).Find(&reports).Error)
	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, core.DefaultWashPolicy, r.Policy)
	assert.Equal(t, doc.WorkspaceID, r.WorkspaceID)
	assert.Equal(t, "matter-9", r.MatterID)

	var dets []scan.Detection
	require.NoError(t, json.Unmarshal(r.Detections, &dets))
	var summary scan.Summary
	require.NoError(t, json.Unmarshal(r.Summary, &summary))

	assert.GreaterOrEqual(t, summary["ssn"], 1)
	assert.GreaterOrEqual(t, summary["email"], 1)
	for _, d := range dets {
		if d.Type == "email" {
			assert.Equal(t, 2, d.Page)
		}
	}

	versions, err := env.store.GetVersions(ctx, doc.ID)
	require.NoError(t, err)
	assert.Empty(t, versions, "wash must not create a version")
}

func TestWash_IdempotentDetectionCounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pageTexts = []string{"DOB: 01/02/1990 and card 4111 1111 1111 1111"}
	doc := env.seedDocument(t, "")
	h := NewWash(env.store, env.blobs, env.engine)

	summaries := make([]scan.Summary, 0, 2)
	for i := 0; i < 2; i++ {
		job := jobFor(doc, core.JobTypeWash, `{"policy":"hipaa"}`)
		_, err := h.Run(ctx, job, nil)
		require.NoError(t, err)
	}

	var reports []core.PdfWashReport
	require.NoError(t, env.store.DB().Where("document_id = ?", doc.ID).Find(&reports).Error)
	require.Len(t, reports, 2, "report identity differs per scan")

	for _, r := range reports {
		assert.Equal(t, "hipaa", r.Policy)
		var s scan.Summary
		require.NoError(t, json.Unmarshal(r.Summary, &s))
		summaries = append(summaries, s)
	}
	assert.Equal(t, summaries[0], summaries[1], "unchanged document yields identical counts")
}

func TestWash_NoTextLayerYieldsEmptyReport(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.engine.pageTexts = []string{"", ""}
	doc := env.seedDocument(t, "")
	job := jobFor(doc, core.JobTypeWash, `{}`)

	h := NewWash(env.store, env.blobs, env.engine)
	_, err := h.Run(ctx, job, nil)
	require.NoError(t, err)

	var reports []core.PdfWashReport
	require.NoError(t, env.store.DB().Where("document_id = ?", doc.ID).Find(&reports).Error)
	require.Len(t, reports, 1)
	assert.JSONEq(t, `[]`, string(reports[0].Detections))
	assert.JSONEq(t, `{}`, string(reports[0].Summary))
}
