package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SortMode selects the ordering of inner pages.
type SortMode string

const (
	SortByName SortMode = "name" // case-folded filename
	SortByDate SortMode = "date" // file modification time, name tiebreak
)

// SourceKind tags a source item's position class in the catalog.
type SourceKind int

const (
	KindCover SourceKind = iota
	KindInnerPage
	KindBackCover
)

// imageExtensions lists the raster extensions the collector converts.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
}

// SourceItem is one contributor to the final catalog. Path is the mergeable
// single- or multi-page PDF; Origin is the file it came from (equal to Path
// unless the item was converted from an image). Items are created during the
// directory scan and never mutated afterwards.
type SourceItem struct {
	Kind    SourceKind
	Path    string
	Origin  string
	SortKey string
	ModTime time.Time
}

// Name returns the display name of the item's originating file.
func (s SourceItem) Name() string {
	return filepath.Base(s.Origin)
}

// Collector enumerates a directory once and produces the ordered,
// deduplicated list of source items, converting images as it goes.
type Collector struct {
	renderer   *PageRenderer
	outputName string
}

// NewCollector creates a collector. outputName is the catalog's configured
// output filename; a PDF with that base name found in the input directory is
// a previously generated catalog and is excluded from inner pages.
func NewCollector(renderer *PageRenderer, outputName string) *Collector {
	return &Collector{renderer: renderer, outputName: strings.ToLower(filepath.Base(outputName))}
}

// Collect scans dir and returns the full ordered list
// [cover?, inner pages..., back cover?] plus one ItemResult per image that
// failed conversion. Converted pages are written into tempDir. cover and
// backCover may be empty.
func (c *Collector) Collect(dir, tempDir string, mode SortMode, cover, backCover string) ([]SourceItem, []ItemResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading directory %s: %w", dir, err)
	}

	var inner []SourceItem
	var failed []ItemResult
	seen := make(map[string]bool)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		lower := strings.ToLower(name)
		path := filepath.Join(dir, name)

		// Covers are handled by the resolver, never as inner pages.
		if lower == CoverFilename || lower == BackCoverFilename {
			continue
		}

		ext := filepath.Ext(lower)
		switch {
		case imageExtensions[ext]:
			if seen[resolvedKey(path)] {
				continue
			}
			seen[resolvedKey(path)] = true

			item, err := c.convertImage(path, tempDir)
			if err != nil {
				log.Printf("failed to convert %s: %v", name, err)
				failed = append(failed, ItemResult{Item: item, Status: StatusSkippedError, Err: err})
				continue
			}
			log.Printf("converted: %s -> PDF", name)
			inner = append(inner, item)

		case ext == ".pdf":
			// A file named like this run's output is a previously
			// generated catalog; re-merging it would nest the whole
			// catalog as inner pages.
			if lower == c.outputName {
				log.Printf("excluding previous catalog output: %s", name)
				continue
			}
			if seen[resolvedKey(path)] {
				continue
			}
			seen[resolvedKey(path)] = true

			info, err := entry.Info()
			if err != nil {
				return nil, nil, fmt.Errorf("error reading metadata for %s: %w", path, err)
			}
			inner = append(inner, SourceItem{
				Kind:    KindInnerPage,
				Path:    path,
				Origin:  path,
				SortKey: lower,
				ModTime: info.ModTime(),
			})
		}
		// Anything else is ignored.
	}

	sortItems(inner, mode)

	items := make([]SourceItem, 0, len(inner)+2)
	if cover != "" {
		items = append(items, coverItem(KindCover, cover))
	}
	items = append(items, inner...)
	if backCover != "" {
		items = append(items, coverItem(KindBackCover, backCover))
	}
	return items, failed, nil
}

func (c *Collector) convertImage(imagePath, tempDir string) (SourceItem, error) {
	name := filepath.Base(imagePath)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	outPath := filepath.Join(tempDir, stem+".pdf")
	// a.jpg and a.jpeg share a stem; keep the full name for the latecomer.
	if _, err := os.Stat(outPath); err == nil {
		outPath = filepath.Join(tempDir, name+".pdf")
	}

	item := SourceItem{
		Kind:    KindInnerPage,
		Path:    outPath,
		Origin:  imagePath,
		SortKey: strings.ToLower(name),
	}
	if info, err := os.Stat(imagePath); err == nil {
		item.ModTime = info.ModTime()
	}
	if err := c.renderer.RenderImage(imagePath, outPath); err != nil {
		return item, err
	}
	return item, nil
}

// resolvedKey collapses symlink aliases so the same document discovered
// twice keeps only its first occurrence.
func resolvedKey(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

func sortItems(items []SourceItem, mode SortMode) {
	switch mode {
	case SortByDate:
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].ModTime.Equal(items[j].ModTime) {
				return items[i].SortKey < items[j].SortKey
			}
			return items[i].ModTime.Before(items[j].ModTime)
		})
	default:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].SortKey < items[j].SortKey
		})
	}
}

func coverItem(kind SourceKind, path string) SourceItem {
	item := SourceItem{
		Kind:    kind,
		Path:    path,
		Origin:  path,
		SortKey: strings.ToLower(filepath.Base(path)),
	}
	if info, err := os.Stat(path); err == nil {
		item.ModTime = info.ModTime()
	}
	return item
}
