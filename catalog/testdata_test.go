package catalog

import (
	"image"
	"image/color"
	"image/jpeg"
	"math/rand"
	"os"
	"testing"
)

// writeTestJPEG writes a noisy JPEG so the re-encoded page cannot collapse
// below the renderer's size floor.
func writeTestJPEG(t *testing.T, path string, w, h int) {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, nil); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

// writeCorruptFile writes bytes that no decoder accepts.
func writeCorruptFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("this is not a valid file payload"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// writeSinglePagePDF synthesizes a valid one-page PDF via the text-cover
// path.
func writeSinglePagePDF(t *testing.T, path, title string) {
	t.Helper()
	resolver := NewCoverResolver(LetterGeometry())
	if err := resolver.Synthesize(path, title); err != nil {
		t.Fatalf("synthesizing %s: %v", path, err)
	}
}
