package catalog

import (
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// VerifyCatalog re-opens a finished catalog with an independent reader and
// checks that it has exactly wantPages pages, each with a non-empty content
// stream. A page that merged cleanly but carries no content stream would
// render blank, so it counts as a verification failure, not a success.
func VerifyCatalog(path string, wantPages int) error {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return fmt.Errorf("error reopening catalog %s: %w", path, err)
	}
	defer f.Close()

	got := reader.NumPage()
	if got != wantPages {
		return fmt.Errorf("catalog %s has %d pages, expected %d", path, got, wantPages)
	}

	for i := 1; i <= got; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			return fmt.Errorf("catalog %s: page %d is missing", path, i)
		}
		if !pageHasContent(page) {
			return fmt.Errorf("catalog %s: page %d has an empty content stream", path, i)
		}
	}
	return nil
}

// pageHasContent reports whether the page's Contents entry resolves to at
// least one stream with data. Contents may be a single stream or an array of
// streams.
func pageHasContent(page pdf.Page) bool {
	contents := page.V.Key("Contents")
	switch contents.Kind() {
	case pdf.Stream:
		return streamHasData(contents)
	case pdf.Array:
		for i := 0; i < contents.Len(); i++ {
			if streamHasData(contents.Index(i)) {
				return true
			}
		}
	}
	return false
}

func streamHasData(v pdf.Value) bool {
	if v.Kind() != pdf.Stream {
		return false
	}
	r := v.Reader()
	defer r.Close()
	buf := make([]byte, 1)
	n, err := r.Read(buf)
	return n > 0 && (err == nil || err == io.EOF)
}
