package core

// Placement names an anchor point on a page used to position stamped or
// numbered text. All non-center placements keep a fixed 30-unit margin
// from the page edge.
type Placement string

const (
	PlacementTopLeft      Placement = "top-left"
	PlacementTopCenter    Placement = "top-center"
	PlacementTopRight     Placement = "top-right"
	PlacementBottomLeft   Placement = "bottom-left"
	PlacementBottomCenter Placement = "bottom-center"
	PlacementBottomRight  Placement = "bottom-right"
	PlacementCenter       Placement = "center"
)

// PageMargin is the distance in page units kept between a placed label
// and the nearest page edges.
const PageMargin = 30

// Valid reports whether p is one of the seven known anchors.
func (p Placement) Valid() bool {
	switch p {
	case PlacementTopLeft, PlacementTopCenter, PlacementTopRight,
		PlacementBottomLeft, PlacementBottomCenter, PlacementBottomRight,
		PlacementCenter:
		return true
	}
	return false
}

// Placements lists every valid anchor.
func Placements() []Placement {
	return []Placement{
		PlacementTopLeft, PlacementTopCenter, PlacementTopRight,
		PlacementBottomLeft, PlacementBottomCenter, PlacementBottomRight,
		PlacementCenter,
	}
}
