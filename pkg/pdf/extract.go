package pdf

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ExtractPages returns the embedded text layer of each page in order.
// Scanned or image-only pages have no text layer and yield empty strings;
// that absence degrades gracefully and is never treated as an error.
func (e *CpuEngine) ExtractPages(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	pages := make([]string, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			// A single undecodable page contributes nothing rather than
			// failing the whole document.
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}
