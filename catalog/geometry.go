package catalog

import "fmt"

// PageGeometry holds the fixed page dimensions and margin used uniformly
// across a catalog, all in points (1/72 inch).
type PageGeometry struct {
	Width  float64
	Height float64
	Margin float64
}

// LetterGeometry returns the default geometry: US Letter with a half-inch
// margin on all sides.
func LetterGeometry() PageGeometry {
	return PageGeometry{Width: 612, Height: 792, Margin: 36}
}

// Validate checks that the margins leave a usable drawing area.
func (g PageGeometry) Validate() error {
	if g.Width <= 0 || g.Height <= 0 {
		return fmt.Errorf("invalid page size %gx%g", g.Width, g.Height)
	}
	if g.Margin < 0 || g.Margin*2 >= g.Width || g.Margin*2 >= g.Height {
		return fmt.Errorf("margin %g leaves no usable area on a %gx%g page", g.Margin, g.Width, g.Height)
	}
	return nil
}

// UsableWidth returns the page width minus both margins.
func (g PageGeometry) UsableWidth() float64 {
	return g.Width - 2*g.Margin
}

// UsableHeight returns the page height minus both margins.
func (g PageGeometry) UsableHeight() float64 {
	return g.Height - 2*g.Margin
}

// PlacementRect is the sub-rectangle of the usable page area into which an
// image is drawn. X and Y are measured from the top-left page corner; the
// rectangle is centered in the usable area and preserves the source aspect
// ratio exactly.
type PlacementRect struct {
	X float64
	Y float64
	W float64
	H float64
}

// FitToUsable computes the placement for an image of the given pixel
// dimensions: the image is scaled to the largest size that fits the usable
// area without exceeding either bound, then centered. The caller guarantees
// imgH > 0.
func (g PageGeometry) FitToUsable(imgW, imgH float64) PlacementRect {
	usableW := g.UsableWidth()
	usableH := g.UsableHeight()

	imgAspect := imgW / imgH
	pageAspect := usableW / usableH

	var drawW, drawH float64
	if imgAspect > pageAspect {
		// Relatively wider than the usable area: width-bound.
		drawW = usableW
		drawH = usableW / imgAspect
	} else {
		drawH = usableH
		drawW = usableH * imgAspect
	}

	return PlacementRect{
		X: g.Margin + (usableW-drawW)/2,
		Y: g.Margin + (usableH-drawH)/2,
		W: drawW,
		H: drawH,
	}
}
