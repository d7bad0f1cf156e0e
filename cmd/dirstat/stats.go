// cmd/dirstat/stats.go
package main

import (
	"bufio"
	"os"
	"strings"
	"unicode/utf8"
)

// maxLineLen caps the scanner's token size so a pathological line in an
// analyzed file fails that file's read instead of hanging on it.
const maxLineLen = 1 << 20

// Measurements selects which optional per-file statistics the crawl
// computes. Line counts are always taken.
type Measurements struct {
	NonBlank bool
	Words    bool
	Chars    bool
	Sizes    bool
}

// Stats holds the counters measured for a single file. Lines is always
// present. The remaining fields are nil when the corresponding measurement
// was not requested; a measured zero keeps a non-nil pointer. The tree
// rows and the totals report rely on that distinction to omit columns, so
// an absent field must never be collapsed into a zero.
type Stats struct {
	Lines    int
	NonBlank *int
	Words    *int
	Chars    *int
	Bytes    *int64
}

// readFileStats reads the file at path line by line and fills in every
// counter requested in m, except Bytes: sizes come from file metadata,
// not content, and attaching them is the crawler's job. The line
// terminator is stripped before any measuring, uniformly, so char counts
// never include it and a trailing "\r" from CRLF input is dropped too.
func readFileStats(path string, m Measurements) (Stats, error) {
	var stats Stats
	if m.NonBlank {
		stats.NonBlank = new(int)
	}
	if m.Words {
		stats.Words = new(int)
	}
	if m.Chars {
		stats.Chars = new(int)
	}

	f, err := os.Open(path)
	if err != nil {
		return Stats{}, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
	for scanner.Scan() {
		line := scanner.Text()
		stats.Lines++
		if stats.NonBlank != nil && strings.TrimSpace(line) != "" {
			*stats.NonBlank++
		}
		if stats.Words != nil {
			*stats.Words += len(strings.Fields(line))
		}
		if stats.Chars != nil {
			*stats.Chars += utf8.RuneCountInString(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Stats{}, err
	}
	return stats, nil
}
