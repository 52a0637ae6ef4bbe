package pdf

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/matterdocs/pdfpro/pkg/core"
)

// CpuEngine implements Engine on pdfcpu for stamping and page counts and
// on a text-layer reader for extraction.
type CpuEngine struct{}

// NewEngine returns the production PDF engine.
func NewEngine() *CpuEngine {
	return &CpuEngine{}
}

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// VerifyPDF sniffs the file's content type and rejects anything that is
// not actually a PDF, regardless of its extension.
func (e *CpuEngine) VerifyPDF(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect file type: %w", err)
	}
	if !mt.Is("application/pdf") {
		return fmt.Errorf("%w: detected %s", core.ErrNotPDF, mt.String())
	}
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func (e *CpuEngine) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("page count: %w", err)
	}
	return n, nil
}

// StampPerPage stamps a distinct label on each page, writing the result
// to dst. labels is keyed by 1-based page number.
func (e *CpuEngine) StampPerPage(src, dst string, labels map[int]string, opts StampOptions) error {
	desc := watermarkDesc(opts)
	wms := make(map[int]*model.Watermark, len(labels))
	for page, label := range labels {
		wm, err := api.TextWatermark(label, desc, true, false, types.POINTS)
		if err != nil {
			return fmt.Errorf("build watermark for page %d: %w", page, err)
		}
		wms[page] = wm
	}
	if err := api.AddWatermarksMapFile(src, dst, wms, newConfiguration()); err != nil {
		return fmt.Errorf("stamp pages: %w", err)
	}
	return nil
}

// StampAll stamps the same text on every page, writing the result to dst.
func (e *CpuEngine) StampAll(src, dst, text string, opts StampOptions) error {
	wm, err := api.TextWatermark(text, watermarkDesc(opts), true, false, types.POINTS)
	if err != nil {
		return fmt.Errorf("build watermark: %w", err)
	}
	if err := api.AddWatermarksFile(src, dst, nil, wm, newConfiguration()); err != nil {
		return fmt.Errorf("stamp pages: %w", err)
	}
	return nil
}
