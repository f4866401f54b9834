package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/opd-ai/pdfcatalog/catalog"
)

var (
	directory = flag.String("d", ".", "input directory containing image and PDF files")
	output    = flag.String("o", catalog.DefaultOutputName, "output catalog filename")
	sortMode  = flag.String("s", "name", "sort inner pages by 'name' or 'date'")
	engine    = flag.String("e", "auto", "merge engine: 'auto', 'direct' or 'sanitize'")
	covers    = flag.Bool("covers", false, "synthesize text covers when cover.pdf/back_cover.pdf are missing")
	title     = flag.String("title", "CATALOG COVER", "title for a synthesized front cover")
)

func main() {
	flag.Parse()

	info, err := os.Stat(*directory)
	if err != nil {
		fmt.Printf("Error: directory %s does not exist\n", *directory)
		os.Exit(1)
	}
	if !info.IsDir() {
		fmt.Printf("Error: %s is not a directory\n", *directory)
		os.Exit(1)
	}

	if *sortMode != string(catalog.SortByName) && *sortMode != string(catalog.SortByDate) {
		fmt.Printf("Error: invalid sort mode %q, use 'name' or 'date'\n", *sortMode)
		os.Exit(1)
	}

	builder := catalog.NewBuilder(*directory, *output)
	builder.SetSortMode(catalog.SortMode(*sortMode))
	builder.SetEngine(catalog.EngineMode(*engine))
	builder.SetGenerateCovers(*covers)
	builder.SetCoverTitles(*title, "BACK COVER")

	report, err := builder.Build()
	if err != nil {
		fmt.Printf("Catalog creation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Catalog created successfully: %s (%d pages, %d skipped)\n",
		builder.OutputPath(), report.PagesMerged, report.ItemsSkipped)
}
