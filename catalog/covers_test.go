package catalog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestSynthesizeCover(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cover.pdf")

	resolver := NewCoverResolver(LetterGeometry())
	resolver.now = func() time.Time { return time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC) }

	if err := resolver.Synthesize(path, "CATALOG COVER"); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if err := VerifyCatalog(path, 1); err != nil {
		t.Errorf("synthesized cover failed verification: %v", err)
	}
}

func TestFindExistingCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	writeSinglePagePDF(t, filepath.Join(dir, "Cover.PDF"), "front")
	writeSinglePagePDF(t, filepath.Join(dir, "BACK_COVER.pdf"), "back")

	resolver := NewCoverResolver(LetterGeometry())
	cover, back, err := resolver.FindExisting(dir)
	if err != nil {
		t.Fatalf("FindExisting: %v", err)
	}
	if !strings.EqualFold(filepath.Base(cover), CoverFilename) {
		t.Errorf("cover = %q, want a case-insensitive match of %q", cover, CoverFilename)
	}
	if !strings.EqualFold(filepath.Base(back), BackCoverFilename) {
		t.Errorf("back cover = %q, want a case-insensitive match of %q", back, BackCoverFilename)
	}
}

func TestResolveWithoutGeneration(t *testing.T) {
	dir := t.TempDir()
	tempDir := t.TempDir()

	resolver := NewCoverResolver(LetterGeometry())
	cover, back := resolver.Resolve(dir, tempDir, false, "front", "back")
	if cover != "" || back != "" {
		t.Errorf("Resolve without generation returned (%q, %q), want empty", cover, back)
	}
}

func TestResolveGeneratesIntoTempDir(t *testing.T) {
	dir := t.TempDir()
	tempDir := t.TempDir()

	resolver := NewCoverResolver(LetterGeometry())
	cover, back := resolver.Resolve(dir, tempDir, true, "front", "back")
	if cover == "" || back == "" {
		t.Fatalf("Resolve with generation returned (%q, %q), want both synthesized", cover, back)
	}
	if filepath.Dir(cover) != tempDir || filepath.Dir(back) != tempDir {
		t.Errorf("synthesized covers must live in the temp dir, got %q and %q", cover, back)
	}

	// Existing covers always win over synthesis.
	existing := filepath.Join(dir, "cover.pdf")
	writeSinglePagePDF(t, existing, "the real cover")
	cover, _ = resolver.Resolve(dir, tempDir, true, "front", "back")
	if cover != existing {
		t.Errorf("Resolve preferred %q over existing %q", cover, existing)
	}
}
