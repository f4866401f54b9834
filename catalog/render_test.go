package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

func TestRenderImageRoundTrip(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "photo.jpg")
	writeTestJPEG(t, imgPath, 640, 480)

	outPath := filepath.Join(dir, "photo.pdf")
	renderer := NewPageRenderer(LetterGeometry())
	if err := renderer.RenderImage(imgPath, outPath); err != nil {
		t.Fatalf("RenderImage: %v", err)
	}

	pages, err := api.PageCountFile(outPath)
	if err != nil {
		t.Fatalf("reading rendered page: %v", err)
	}
	if pages != 1 {
		t.Errorf("rendered document has %d pages, want 1", pages)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		t.Fatalf("stat rendered page: %v", err)
	}
	if info.Size() < minPageBytes {
		t.Errorf("rendered page is %d bytes, below the %d floor", info.Size(), minPageBytes)
	}

	if err := VerifyCatalog(outPath, 1); err != nil {
		t.Errorf("rendered page failed content verification: %v", err)
	}
}

func TestRenderImageCorruptSource(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "broken.jpg")
	writeCorruptFile(t, imgPath)

	renderer := NewPageRenderer(LetterGeometry())
	err := renderer.RenderImage(imgPath, filepath.Join(dir, "broken.pdf"))
	if err == nil {
		t.Fatal("expected a conversion error for a corrupt image")
	}
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("error %T is not *ConversionError", err)
	}
	if convErr.Stage != "decode" {
		t.Errorf("failure stage = %q, want decode", convErr.Stage)
	}
}

func TestRenderImageMissingSource(t *testing.T) {
	dir := t.TempDir()
	renderer := NewPageRenderer(LetterGeometry())
	err := renderer.RenderImage(filepath.Join(dir, "absent.jpg"), filepath.Join(dir, "absent.pdf"))
	var convErr *ConversionError
	if !errors.As(err, &convErr) {
		t.Fatalf("error %T is not *ConversionError", err)
	}
}

func TestReadOrientationDefaultsWithoutEXIF(t *testing.T) {
	dir := t.TempDir()
	imgPath := filepath.Join(dir, "wide.jpg")
	writeTestJPEG(t, imgPath, 400, 200)

	data, err := os.ReadFile(imgPath)
	if err != nil {
		t.Fatal(err)
	}
	// No EXIF block in a plain encode: orientation must default to 1.
	if got := readOrientation(data); got != 1 {
		t.Errorf("readOrientation = %d, want 1 for EXIF-less image", got)
	}
}
