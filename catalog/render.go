package catalog

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	_ "image/jpeg" // register JPEG decoding for image.Decode

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
	"github.com/rwcarlsen/goexif/exif"
)

// minPageBytes is the sanity floor for a finalized single-page document.
// Anything smaller carries no usable content stream and is treated as a
// conversion failure rather than a valid page.
const minPageBytes = 1000

// PageRenderer converts one raster image into one single-page PDF sized to a
// fixed page geometry.
type PageRenderer struct {
	geom PageGeometry
}

// NewPageRenderer creates a renderer bound to the given page geometry.
func NewPageRenderer(geom PageGeometry) *PageRenderer {
	return &PageRenderer{geom: geom}
}

// RenderImage converts the image at imagePath into a single-page PDF at
// outputPath. Failures are reported as *ConversionError; the caller decides
// whether to continue with its remaining items.
func (r *PageRenderer) RenderImage(imagePath, outputPath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return &ConversionError{Path: imagePath, Stage: "decode", Err: err}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return &ConversionError{Path: imagePath, Stage: "decode", Err: err}
	}

	// Orientation metadata is advisory: a missing or unreadable tag keeps
	// the image as decoded.
	img = applyOrientation(img, readOrientation(data))

	// Re-encode through PNG before embedding. This forces a direct-color
	// pixel format with explicit alpha, which the page canvas requires;
	// embedding the source bytes as-is is how pages end up with malformed
	// content streams that render blank.
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return &ConversionError{Path: imagePath, Stage: "draw", Err: err}
	}

	bounds := img.Bounds()
	rect := r.geom.FitToUsable(float64(bounds.Dx()), float64(bounds.Dy()))

	pdf := newPageCanvas(r.geom)
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("page", opts, &buf)
	// The rectangle already preserves the aspect ratio; drawing at exactly
	// that size keeps placement and scaling in one place.
	pdf.ImageOptions("page", rect.X, rect.Y, rect.W, rect.H, false, opts, 0, "")

	if pdf.Err() {
		return &ConversionError{Path: imagePath, Stage: "draw", Err: pdf.Error()}
	}
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return &ConversionError{Path: imagePath, Stage: "finalize", Err: err}
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		return &ConversionError{Path: imagePath, Stage: "finalize", Err: err}
	}
	if info.Size() < minPageBytes {
		os.Remove(outputPath)
		return &ConversionError{
			Path:  imagePath,
			Stage: "undersized",
			Err:   fmt.Errorf("page is %d bytes, below the %d byte minimum", info.Size(), minPageBytes),
		}
	}
	return nil
}

// newPageCanvas creates a portrait canvas in point units with the geometry's
// exact page size.
func newPageCanvas(geom PageGeometry) *gofpdf.Fpdf {
	return gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geom.Width, Ht: geom.Height},
	})
}

// readOrientation returns the EXIF orientation tag (1-8), or 1 when the tag
// is absent or unreadable.
func readOrientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	o, err := tag.Int(0)
	if err != nil || o < 1 || o > 8 {
		return 1
	}
	return o
}

// applyOrientation transposes the image so it displays upright regardless of
// how the camera stored it.
func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
