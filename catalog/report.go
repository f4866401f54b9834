package catalog

import "log"

// ItemStatus tracks a source item through the merge:
// Pending → Read → {PagesAppended | SkippedEmpty | SkippedError}.
type ItemStatus int

const (
	StatusPending ItemStatus = iota
	StatusRead
	StatusPagesAppended
	StatusSkippedEmpty
	StatusSkippedError
)

func (s ItemStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRead:
		return "read"
	case StatusPagesAppended:
		return "pages appended"
	case StatusSkippedEmpty:
		return "skipped (empty)"
	case StatusSkippedError:
		return "skipped (error)"
	default:
		return "unknown"
	}
}

// Skipped reports whether the item was excluded from the output.
func (s ItemStatus) Skipped() bool {
	return s == StatusSkippedEmpty || s == StatusSkippedError
}

// ItemResult is the per-item outcome of a run. Partial failure is a value,
// not a control-flow accident: skipped items carry the error that excluded
// them.
type ItemResult struct {
	Item   SourceItem
	Status ItemStatus
	Pages  int
	Err    error
}

// RunReport summarizes one catalog build.
type RunReport struct {
	FilesFound   int
	PagesMerged  int
	ItemsSkipped int
	Items        []ItemResult
}

// Add appends a result and updates the skip counter.
func (r *RunReport) Add(res ItemResult) {
	if res.Status.Skipped() {
		r.ItemsSkipped++
	}
	r.Items = append(r.Items, res)
}

// Log writes the final summary, one line per concern so a missing page is
// traceable to its item.
func (r *RunReport) Log() {
	log.Printf("summary: %d files found, %d pages merged, %d items skipped",
		r.FilesFound, r.PagesMerged, r.ItemsSkipped)
	for _, item := range r.Items {
		if item.Err != nil {
			log.Printf("summary: %s: %s: %v", item.Item.Name(), item.Status, item.Err)
		}
	}
}
