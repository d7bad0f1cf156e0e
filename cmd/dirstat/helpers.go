// cmd/dirstat/helpers.go
package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	humanize "github.com/dustin/go-humanize"
)

// processExtensions processes a list of extension arguments into a set
// for quick lookup. Comma-separated values are split and surrounding
// whitespace and any leading dot are removed. Matching is case-sensitive,
// so entries keep their case.
func processExtensions(extList []string) map[string]struct{} {
	processed := make(map[string]struct{})
	for _, ext := range extList {
		for _, part := range strings.Split(ext, ",") {
			cleaned := strings.TrimPrefix(strings.TrimSpace(part), ".")
			if cleaned == "" {
				continue
			}
			processed[cleaned] = struct{}{}
		}
	}
	return processed
}

// processBasenames builds the lookup set for the ignore lists. Arguments
// are reduced to their basename, so "--ignore-file sub/x.py" behaves the
// same as "--ignore-file x.py".
func processBasenames(list []string) map[string]struct{} {
	processed := make(map[string]struct{})
	for _, item := range list {
		for _, part := range strings.Split(item, ",") {
			cleaned := strings.TrimSpace(part)
			if cleaned == "" {
				continue
			}
			processed[filepath.Base(cleaned)] = struct{}{}
		}
	}
	return processed
}

// fileExt returns the extension of name: the substring after the last
// '.', without the dot. Multi-dot names keep only the final part
// ("archive.tar.gz" -> "gz"). Names with no dot, and dotfiles like
// ".bashrc" where the only dot leads, have extension "".
func fileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 {
		return ""
	}
	return name[i+1:]
}

// sortedKeys returns the keys of a string set in lexicographic order,
// for stable log and report output.
func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// formatSize renders a byte count either as a raw count or, in human
// mode, as an IEC string like "1.5 KiB".
func formatSize(n int64, human bool) string {
	if human {
		return humanize.IBytes(uint64(n))
	}
	return fmt.Sprintf("%d bytes", n)
}
