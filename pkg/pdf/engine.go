// Package pdf wraps the PDF operations the job handlers need: page
// counts, text stamping, and embedded text-layer extraction.
package pdf

import (
	"github.com/matterdocs/pdfpro/pkg/core"
)

// StampOptions controls how stamped text is rendered onto pages.
type StampOptions struct {
	Placement core.Placement
	FontSize  int
	FontName  string
	FillColor string  // hex, e.g. "#d97706"
	Opacity   float64 // 0..1
}

// BatesStampOptions renders small solid black labels, the conventional
// look for Bates numbers.
func BatesStampOptions(placement core.Placement, fontSize int) StampOptions {
	return StampOptions{
		Placement: placement,
		FontSize:  fontSize,
		FontName:  "Helvetica",
		FillColor: "#000000",
		Opacity:   1,
	}
}

// ConfidentialStampOptions renders bold, low-opacity, warning-colored
// labels for confidentiality stamps.
func ConfidentialStampOptions(placement core.Placement, fontSize int) StampOptions {
	return StampOptions{
		Placement: placement,
		FontSize:  fontSize,
		FontName:  "Helvetica-Bold",
		FillColor: "#d97706",
		Opacity:   0.35,
	}
}

// Engine is the PDF operation surface handlers consume. Implementations
// must leave the source file untouched; stamped output goes to dst.
type Engine interface {
	// VerifyPDF confirms the file at path actually holds PDF bytes.
	VerifyPDF(path string) error

	// PageCount returns the number of pages in the PDF at path.
	PageCount(path string) (int, error)

	// StampPerPage writes src to dst with a distinct label stamped on
	// each page; labels is keyed by 1-based page number.
	StampPerPage(src, dst string, labels map[int]string, opts StampOptions) error

	// StampAll writes src to dst with the same text stamped on every page.
	StampAll(src, dst, text string, opts StampOptions) error

	// ExtractPages returns each page's embedded text layer in page order.
	// Pages without a text layer yield empty strings, never an error.
	ExtractPages(path string) ([]string, error)
}
