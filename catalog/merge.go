package catalog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// EngineMode selects the merge strategy.
type EngineMode string

const (
	EngineAuto     EngineMode = "auto"
	EngineDirect   EngineMode = "direct"
	EngineSanitize EngineMode = "sanitize"
)

// MergeStrategy validates one source document and returns the path the merge
// should read its pages from, which may be a repaired copy.
type MergeStrategy interface {
	Name() string
	Prepare(item SourceItem, tempDir string) (path string, pages int, err error)
}

// SelectStrategy maps an engine mode to a strategy at startup. Auto resolves
// to sanitize-retry: it behaves identically to direct on clean input and
// only differs by repairing sources direct would have to skip.
func SelectStrategy(mode EngineMode) (MergeStrategy, error) {
	switch mode {
	case EngineDirect:
		return &DirectStrategy{}, nil
	case EngineSanitize, EngineAuto, "":
		return &SanitizeRetryStrategy{conf: model.NewDefaultConfiguration()}, nil
	default:
		return nil, fmt.Errorf("unknown merge engine %q", mode)
	}
}

// DirectStrategy reads each source's page objects as-is, preserving every
// page's own content stream unmodified. A source that fails to parse is
// skipped.
type DirectStrategy struct{}

func (s *DirectStrategy) Name() string { return "direct" }

func (s *DirectStrategy) Prepare(item SourceItem, tempDir string) (string, int, error) {
	pages, err := api.PageCountFile(item.Path)
	if err != nil {
		return "", 0, &SourceError{Path: item.Path, Err: err}
	}
	return item.Path, pages, nil
}

// SanitizeRetryStrategy behaves like DirectStrategy but, when a source fails
// to open cleanly, re-serializes it standalone first to force structural
// repair, then retries on the repaired copy.
type SanitizeRetryStrategy struct {
	direct DirectStrategy
	conf   *model.Configuration
}

func (s *SanitizeRetryStrategy) Name() string { return "sanitize" }

func (s *SanitizeRetryStrategy) Prepare(item SourceItem, tempDir string) (string, int, error) {
	path, pages, err := s.direct.Prepare(item, tempDir)
	if err == nil {
		return path, pages, nil
	}

	sanitized := filepath.Join(tempDir, "sanitized_"+filepath.Base(item.Path))
	if optErr := api.OptimizeFile(item.Path, sanitized, s.conf); optErr != nil {
		return "", 0, &SourceError{Path: item.Path, Err: fmt.Errorf("open failed (%v), sanitize failed: %w", err, optErr)}
	}
	pages, retryErr := api.PageCountFile(sanitized)
	if retryErr != nil {
		return "", 0, &SourceError{Path: item.Path, Err: fmt.Errorf("open failed (%v), reopen after sanitize failed: %w", err, retryErr)}
	}
	log.Printf("sanitized: %s", item.Name())
	return sanitized, pages, nil
}

// MergeEngine concatenates the ordered source items' pages into one output
// document.
type MergeEngine struct {
	strategy MergeStrategy
	conf     *model.Configuration
}

// NewMergeEngine creates an engine using the given strategy.
func NewMergeEngine(strategy MergeStrategy) *MergeEngine {
	conf := model.NewDefaultConfiguration()
	// Classic cross-reference tables keep the output readable by the
	// independent verifier and by older consumers.
	conf.WriteObjectStream = false
	conf.WriteXRefStream = false
	return &MergeEngine{strategy: strategy, conf: conf}
}

// Merge walks the items in order, validating each through the strategy, then
// serializes the output once to outputPath. Per-item failures are recorded
// and skipped; Merge fails only when zero items contribute pages, in which
// case no output file is left behind.
func (m *MergeEngine) Merge(items []SourceItem, outputPath, tempDir string) (*RunReport, error) {
	report := &RunReport{}
	var paths []string
	var readIdx []int

	for _, item := range items {
		res := ItemResult{Item: item, Status: StatusPending}
		path, pages, err := m.strategy.Prepare(item, tempDir)
		switch {
		case err != nil:
			res.Status = StatusSkippedError
			res.Err = err
			log.Printf("skipped %s: %v", item.Name(), err)
		case pages == 0:
			res.Status = StatusSkippedEmpty
			res.Err = ErrEmptySource
			log.Printf("skipped %s: no pages", item.Name())
		default:
			res.Status = StatusRead
			res.Pages = pages
			paths = append(paths, path)
			readIdx = append(readIdx, len(report.Items))
		}
		report.Add(res)
	}

	if len(paths) == 0 {
		return report, ErrNoOutputProduced
	}

	if err := api.MergeCreateFile(paths, outputPath, false, m.conf); err != nil {
		os.Remove(outputPath)
		return report, fmt.Errorf("error merging %d files: %w", len(paths), err)
	}

	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		os.Remove(outputPath)
		return report, ErrNoOutputProduced
	}

	for _, i := range readIdx {
		report.Items[i].Status = StatusPagesAppended
		report.PagesMerged += report.Items[i].Pages
		log.Printf("added: %s (%d pages)", report.Items[i].Item.Name(), report.Items[i].Pages)
	}
	return report, nil
}
