package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Filename conventions for cover documents, matched case-insensitively.
const (
	CoverFilename     = "cover.pdf"
	BackCoverFilename = "back_cover.pdf"
)

// CoverResolver locates existing cover documents by filename convention and,
// when asked, synthesizes simple text covers with the catalog's geometry.
type CoverResolver struct {
	geom PageGeometry
	now  func() time.Time
}

// NewCoverResolver creates a resolver for the given page geometry.
func NewCoverResolver(geom PageGeometry) *CoverResolver {
	return &CoverResolver{geom: geom, now: time.Now}
}

// FindExisting scans dir for cover.pdf and back_cover.pdf. Either result is
// empty when no matching file exists.
func (cr *CoverResolver) FindExisting(dir string) (cover, backCover string, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", "", fmt.Errorf("error scanning %s for covers: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(entry.Name()) {
		case CoverFilename:
			cover = filepath.Join(dir, entry.Name())
		case BackCoverFilename:
			backCover = filepath.Join(dir, entry.Name())
		}
	}
	return cover, backCover, nil
}

// Synthesize writes a minimal text-only cover page: the title centered at
// mid-page and a generation-date subtitle below it. Only text primitives are
// used, so a synthesized cover cannot hit the raster conversion failure
// modes.
func (cr *CoverResolver) Synthesize(outputPath, title string) error {
	pdf := newPageCanvas(cr.geom)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 48)
	titleWidth := pdf.GetStringWidth(title)
	pdf.Text((cr.geom.Width-titleWidth)/2, cr.geom.Height/2, title)

	pdf.SetFont("Helvetica", "", 24)
	subtitle := fmt.Sprintf("Generated on %s", cr.now().Format("2006-01-02"))
	subtitleWidth := pdf.GetStringWidth(subtitle)
	pdf.Text((cr.geom.Width-subtitleWidth)/2, cr.geom.Height/2+50, subtitle)

	if pdf.Err() {
		return fmt.Errorf("error drawing cover %s: %w", outputPath, pdf.Error())
	}
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("error writing cover %s: %w", outputPath, err)
	}
	return nil
}

// Resolve returns the cover and back-cover paths for a run. Existing files
// in dir always win. When generate is set and a cover is missing, one is
// synthesized into tempDir; a synthesis failure is logged and the catalog
// proceeds without that cover.
func (cr *CoverResolver) Resolve(dir, tempDir string, generate bool, coverTitle, backTitle string) (cover, backCover string) {
	cover, backCover, err := cr.FindExisting(dir)
	if err != nil {
		log.Printf("cover scan failed: %v", err)
		return "", ""
	}

	if cover != "" {
		log.Printf("found existing cover: %s", filepath.Base(cover))
	} else if generate {
		path := filepath.Join(tempDir, CoverFilename)
		if err := cr.Synthesize(path, coverTitle); err != nil {
			log.Printf("cover synthesis failed: %v", err)
		} else {
			log.Printf("created cover: %s", filepath.Base(path))
			cover = path
		}
	}

	if backCover != "" {
		log.Printf("found existing back cover: %s", filepath.Base(backCover))
	} else if generate {
		path := filepath.Join(tempDir, BackCoverFilename)
		if err := cr.Synthesize(path, backTitle); err != nil {
			log.Printf("back cover synthesis failed: %v", err)
		} else {
			log.Printf("created back cover: %s", filepath.Base(path))
			backCover = path
		}
	}

	return cover, backCover
}
