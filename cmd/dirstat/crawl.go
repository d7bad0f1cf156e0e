// cmd/dirstat/crawl.go
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Crawler walks the filesystem under Options.Root and builds the node
// tree. A Crawler performs one walk; failures on individual entries are
// recorded and skipped, never aborting the crawl. The walk is a strictly
// sequential depth-first traversal, so repeated walks of an unchanged
// tree yield identical results.
type Crawler struct {
	opts     Options
	ignorer  gitignore.IgnoreMatcher // nil unless gitignore mode is on
	selfInfo os.FileInfo             // running executable, for self-exclusion
	errs     map[string]error        // root-relative slash path -> error
}

func newCrawler(opts Options) *Crawler {
	c := &Crawler{opts: opts, errs: make(map[string]error)}

	// The running binary is excluded by path identity, not by name, so
	// analyzing the directory it lives in does not skew the totals.
	if exePath, err := os.Executable(); err == nil {
		if info, statErr := os.Stat(exePath); statErr == nil {
			c.selfInfo = info
		}
	}

	if opts.UseGitignore {
		ignorePath := filepath.Join(opts.Root, ".gitignore")
		matcher, err := gitignore.NewGitIgnore(ignorePath)
		if err != nil {
			if !os.IsNotExist(err) {
				slog.Warn("Could not parse .gitignore, continuing without it.", "path", ignorePath, "error", err)
			}
		} else {
			c.ignorer = matcher
		}
	}
	return c
}

// Errors returns the per-entry failures recorded during the walk, keyed
// by root-relative slash path.
func (c *Crawler) Errors() map[string]error { return c.errs }

// Walk crawls the root directory and returns the resulting tree. The
// root is validated by resolveOptions before a Crawler ever exists, so a
// listing failure here is recorded like any other recoverable error.
func (c *Crawler) Walk() *DirNode {
	slog.Debug("Starting crawl.", "root", c.opts.Root, "recursive", c.opts.Recursive)
	root := c.loadDir(c.opts.Root)
	slog.Debug("Crawl finished.", "errors", len(c.errs))
	return root
}

// loadDir crawls one directory and, in recursive mode, everything below
// it. Children are attached in listing order unless --sort is on, in
// which case they are ordered by name while the directory is still under
// construction.
func (c *Crawler) loadDir(dirPath string) *DirNode {
	dir := newDirNode(filepath.Base(dirPath))

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		slog.Warn("Cannot list directory, skipping its contents.", "path", dirPath, "error", err)
		c.recordError(dirPath, err)
		return dir
	}

	for _, entry := range entries {
		name := entry.Name()
		entryPath := filepath.Join(dirPath, name)

		if entry.IsDir() {
			if _, ignored := c.opts.IgnoreDirs[name]; ignored {
				slog.Debug("Ignoring directory.", "path", entryPath)
				continue
			}
			if c.ignorer != nil && c.ignorer.Match(entryPath, true) {
				slog.Debug("Directory matches .gitignore, skipping.", "path", entryPath)
				continue
			}
			if c.opts.Recursive {
				dir.Add(c.loadDir(entryPath))
			} else {
				// Placeholder: the subdirectory stays visible in the
				// tree but its contents are never inspected.
				dir.Add(newDirNode(name))
			}
			continue
		}

		if !entry.Type().IsRegular() {
			continue
		}
		if !c.isEligible(entryPath, name, entry) {
			continue
		}

		stats, err := readFileStats(entryPath, c.opts.Measure)
		if err != nil {
			slog.Warn("Failed to read file, skipping.", "path", entryPath, "error", err)
			c.recordError(entryPath, err)
			continue
		}
		if c.opts.Measure.Sizes {
			// Size comes from metadata, a separate operation that can
			// fail on its own.
			info, err := entry.Info()
			if err != nil {
				slog.Warn("Failed to stat file, skipping.", "path", entryPath, "error", err)
				c.recordError(entryPath, err)
				continue
			}
			size := info.Size()
			stats.Bytes = &size
		}
		dir.Add(newFileNode(name, stats))
	}

	if c.opts.Sort {
		dir.sortItems()
	}
	return dir
}

// isEligible applies the file filters: extension match, ignore list,
// gitignore, and self-exclusion.
func (c *Crawler) isEligible(path, name string, entry os.DirEntry) bool {
	if _, ok := c.opts.Extensions[fileExt(name)]; !ok {
		return false
	}
	if _, ignored := c.opts.IgnoreFiles[name]; ignored {
		slog.Debug("Ignoring file.", "path", path)
		return false
	}
	if c.ignorer != nil && c.ignorer.Match(path, false) {
		slog.Debug("File matches .gitignore, skipping.", "path", path)
		return false
	}
	if c.selfInfo != nil {
		if info, err := entry.Info(); err == nil && os.SameFile(c.selfInfo, info) {
			slog.Debug("Excluding the running executable.", "path", path)
			return false
		}
	}
	return true
}

func (c *Crawler) recordError(path string, err error) {
	rel, relErr := filepath.Rel(c.opts.Root, path)
	if relErr != nil {
		rel = path
	}
	c.errs[filepath.ToSlash(rel)] = err
}
