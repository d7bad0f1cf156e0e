// cmd/dirstat/render.go
package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Depth markers for the tree view: a row at depth d carries d-1
// continuation markers followed by one branch marker.
const (
	continuationMarker = "|   "
	branchMarker       = "|—— "
)

// treeHeaders builds the column header row: the structure and line
// columns always, then one column per requested measurement.
func treeHeaders(opts Options) []string {
	headers := []string{"FILE STRUCTURE", "LINES"}
	if opts.Measure.NonBlank {
		headers = append(headers, "NON-BLANK LINES")
	}
	if opts.Measure.Words {
		headers = append(headers, "WORDS")
	}
	if opts.Measure.Chars {
		headers = append(headers, "CHARS")
	}
	if opts.Measure.Sizes {
		if opts.Human {
			headers = append(headers, "SIZES")
		} else {
			headers = append(headers, "SIZES (BYTES)")
		}
	}
	return headers
}

// renderTree prints the tree view as a grid.
func renderTree(w io.Writer, root *DirNode, opts Options) {
	headers := treeHeaders(opts)
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	table.SetColumnSeparator("|")
	table.AppendBulk(treeGrid(root, opts, 0, len(headers)))
	table.Render()
}

// treeGrid walks the tree pre-order and produces one row of cells per
// visible node. Visibility: without recursion, subdirectories appear as
// bare placeholder rows; with recursion, a subdirectory is descended
// into only when --all is set or its subtree contains a file. Skipped
// directories still count in the totals, which renderTotals computes
// over the full tree independently of what was drawn.
func treeGrid(dir *DirNode, opts Options, depth, numCols int) [][]string {
	grid := [][]string{directoryRow(dir.Name(), depth, numCols)}

	depth++
	for _, item := range dir.Items() {
		switch n := item.(type) {
		case *FileNode:
			grid = append(grid, fileRow(n, opts, depth, numCols))
		case *DirNode:
			if !opts.Recursive {
				grid = append(grid, directoryRow(n.Name(), depth, numCols))
			} else if opts.ShowAll || n.HasFile() {
				grid = append(grid, treeGrid(n, opts, depth, numCols)...)
			}
		}
	}
	return grid
}

func directoryRow(name string, depth, numCols int) []string {
	row := make([]string, numCols)
	row[0] = depthPrefix(depth) + name + "/"
	return row
}

// fileRow formats one file's label and statistics. A measurement that
// was never taken leaves its cell empty; a measured zero prints as a
// zero, so the two never look alike.
func fileRow(f *FileNode, opts Options, depth, numCols int) []string {
	row := make([]string, 0, numCols)
	row = append(row, depthPrefix(depth)+f.Name())

	stats := f.Stats()
	row = append(row, fmt.Sprintf("%d lines", stats.Lines))
	if opts.Measure.NonBlank {
		row = append(row, countCell(stats.NonBlank, "non-blank lines"))
	}
	if opts.Measure.Words {
		row = append(row, countCell(stats.Words, "words"))
	}
	if opts.Measure.Chars {
		row = append(row, countCell(stats.Chars, "chars"))
	}
	if opts.Measure.Sizes {
		if stats.Bytes == nil {
			row = append(row, "")
		} else {
			row = append(row, formatSize(*stats.Bytes, opts.Human))
		}
	}
	for len(row) < numCols {
		row = append(row, "")
	}
	return row
}

func countCell(count *int, unit string) string {
	if count == nil {
		return ""
	}
	return fmt.Sprintf("%d %s", *count, unit)
}

// depthPrefix renders the nesting marker for a row at the given depth.
func depthPrefix(depth int) string {
	if depth == 0 {
		return ""
	}
	return strings.Repeat(continuationMarker, depth-1) + branchMarker
}

// renderTotals prints the grand totals over the full tree: item counts,
// the line total always, each requested measurement's total, and then
// any per-entry errors the crawl recorded.
func renderTotals(w io.Writer, root *DirNode, errs map[string]error, opts Options) {
	dirCount, fileCount := root.ItemCounts()
	if opts.ShowAll {
		fmt.Fprintf(w, "Total directories: %d\n", dirCount)
	} else {
		hidden := root.NumHidden()
		fmt.Fprintf(w, "Total directories: %d (%d shown, %d hidden)\n", dirCount, dirCount-hidden, hidden)
	}
	fmt.Fprintf(w, "Total files: %d\n", fileCount)
	fmt.Fprintf(w, "Total lines: %d\n", root.LineCount())
	if opts.Measure.NonBlank {
		fmt.Fprintf(w, "Total non-blank lines: %d\n", root.NonBlankLineCount())
	}
	if opts.Measure.Words {
		fmt.Fprintf(w, "Total words: %d\n", root.WordCount())
	}
	if opts.Measure.Chars {
		fmt.Fprintf(w, "Total chars: %d\n", root.CharCount())
	}
	if opts.Measure.Sizes {
		fmt.Fprintf(w, "Total size: %s\n", formatSize(root.Size(), opts.Human))
	}

	if len(errs) > 0 {
		fmt.Fprintf(w, "\nErrors encountered (%d):\n", len(errs))
		paths := make([]string, 0, len(errs))
		for p := range errs {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			fmt.Fprintf(w, "- %s: %v\n", p, errs[p])
		}
	}
}
