// Package catalog assembles raster images and existing PDF documents from a
// directory into a single paginated catalog with an optional front cover,
// ordered inner pages, and an optional back cover.
package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DefaultOutputName is the catalog filename used when the caller does not
// choose one.
const DefaultOutputName = "catalog.pdf"

// Builder wires the catalog pipeline: resolve covers, collect and convert
// inner sources, merge, verify, and clean up temporary artifacts. One builder
// run owns its output path and temp directory exclusively.
type Builder struct {
	InputDir   string
	OutputName string

	sort           SortMode
	engine         EngineMode
	geom           PageGeometry
	generateCovers bool
	coverTitle     string
	backCoverTitle string
}

// NewBuilder creates a builder with the default geometry (Letter, half-inch
// margin), name ordering and automatic engine selection.
func NewBuilder(inputDir, outputName string) *Builder {
	if outputName == "" {
		outputName = DefaultOutputName
	}
	return &Builder{
		InputDir:       inputDir,
		OutputName:     outputName,
		sort:           SortByName,
		engine:         EngineAuto,
		geom:           LetterGeometry(),
		coverTitle:     "CATALOG COVER",
		backCoverTitle: "BACK COVER",
	}
}

// SetSortMode selects the inner-page ordering.
func (b *Builder) SetSortMode(mode SortMode) {
	b.sort = mode
}

// SetEngine selects the merge strategy.
func (b *Builder) SetEngine(mode EngineMode) {
	b.engine = mode
}

// SetGeometry overrides the page geometry used for converted pages and
// synthesized covers.
func (b *Builder) SetGeometry(geom PageGeometry) {
	b.geom = geom
}

// SetGenerateCovers enables synthesizing text covers when the directory has
// no cover files of its own.
func (b *Builder) SetGenerateCovers(enable bool) {
	b.generateCovers = enable
}

// SetCoverTitles overrides the titles drawn on synthesized covers.
func (b *Builder) SetCoverTitles(front, back string) {
	b.coverTitle = front
	b.backCoverTitle = back
}

// OutputPath resolves the destination: a relative output name lands inside
// the input directory, an absolute one is used as-is.
func (b *Builder) OutputPath() string {
	if filepath.IsAbs(b.OutputName) {
		return b.OutputName
	}
	return filepath.Join(b.InputDir, b.OutputName)
}

// Build runs the pipeline end to end and returns the run report. The report
// is non-nil whenever the scan completed, even on failure, so callers can
// attribute every skipped item.
func (b *Builder) Build() (*RunReport, error) {
	if err := b.geom.Validate(); err != nil {
		return nil, err
	}
	info, err := os.Stat(b.InputDir)
	if err != nil {
		return nil, fmt.Errorf("error opening input directory %s: %w", b.InputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", b.InputDir)
	}

	strategy, err := SelectStrategy(b.engine)
	if err != nil {
		return nil, err
	}

	// Temp artifacts live outside the input directory and are removed on
	// success and failure alike. The unique suffix keeps concurrent runs
	// against different directories from sharing state.
	tempDir := filepath.Join(os.TempDir(), "pdfcatalog-"+uuid.NewString())
	if err := os.MkdirAll(tempDir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	log.Printf("creating catalog from %s (sort: %s, engine: %s)", b.InputDir, b.sort, strategy.Name())

	resolver := NewCoverResolver(b.geom)
	cover, backCover := resolver.Resolve(b.InputDir, tempDir, b.generateCovers, b.coverTitle, b.backCoverTitle)

	renderer := NewPageRenderer(b.geom)
	collector := NewCollector(renderer, b.OutputName)
	items, failedConversions, err := collector.Collect(b.InputDir, tempDir, b.sort, cover, backCover)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		report := &RunReport{FilesFound: len(failedConversions)}
		for _, res := range failedConversions {
			report.Add(res)
		}
		report.Log()
		return report, ErrNoOutputProduced
	}

	log.Printf("merging %d files...", len(items))
	engine := NewMergeEngine(strategy)
	report, mergeErr := engine.Merge(items, b.OutputPath(), tempDir)
	for _, res := range failedConversions {
		report.Add(res)
	}
	report.FilesFound = len(items) + len(failedConversions)
	if mergeErr != nil {
		report.Log()
		return report, mergeErr
	}

	if err := VerifyCatalog(b.OutputPath(), report.PagesMerged); err != nil {
		return report, fmt.Errorf("catalog verification failed: %w", err)
	}

	log.Printf("catalog created: %s", b.OutputPath())
	report.Log()
	return report, nil
}
