package pdf

import (
	"fmt"

	"github.com/matterdocs/pdfpro/pkg/core"
)

// anchor maps a placement to a pdfcpu position code plus the x/y offset
// that realizes the fixed page margin. Offsets push the label inward
// from the anchored edge; center needs none.
func anchor(p core.Placement) (pos string, dx, dy int) {
	m := core.PageMargin
	switch p {
	case core.PlacementTopLeft:
		return "tl", m, -m
	case core.PlacementTopCenter:
		return "tc", 0, -m
	case core.PlacementTopRight:
		return "tr", -m, -m
	case core.PlacementBottomLeft:
		return "bl", m, m
	case core.PlacementBottomCenter:
		return "bc", 0, m
	case core.PlacementBottomRight:
		return "br", -m, m
	default:
		return "c", 0, 0
	}
}

// watermarkDesc builds the pdfcpu text watermark description string for
// the given options.
func watermarkDesc(opts StampOptions) string {
	pos, dx, dy := anchor(opts.Placement)
	return fmt.Sprintf(
		"font:%s, points:%d, pos:%s, off:%d %d, scale:1 abs, rot:0, fillc:%s, op:%.2f",
		opts.FontName, opts.FontSize, pos, dx, dy, opts.FillColor, opts.Opacity,
	)
}
