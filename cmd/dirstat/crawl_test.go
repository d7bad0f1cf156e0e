// cmd/dirstat/crawl_test.go
package main

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test Helper Functions ---

// setupTestDir materializes a directory structure from a map of relative
// path to content. Keys ending in "/" (or with no extension and empty
// content) become directories.
func setupTestDir(t *testing.T, structure map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()
	paths := make([]string, 0, len(structure))
	for p := range structure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, relPath := range paths {
		content := structure[relPath]
		absPath := filepath.Join(tempDir, relPath)
		parentDir := filepath.Dir(absPath)
		_ = os.MkdirAll(parentDir, 0755)

		if strings.HasSuffix(relPath, "/") ||
			(content == "" && !strings.Contains(filepath.Base(relPath), ".")) {
			_ = os.MkdirAll(absPath, 0755)
		} else {
			err := os.WriteFile(absPath, []byte(content), 0644)
			require.NoError(t, err, "Failed to write file: %s", absPath)
		}
	}
	return tempDir
}

// testOptions builds Options for a crawl of root with the given extension
// set and recursion mode; tests tweak the rest directly.
func testOptions(root string, recursive bool, exts ...string) Options {
	if len(exts) == 0 {
		exts = []string{"py"}
	}
	return Options{
		Root:        root,
		Recursive:   recursive,
		Extensions:  processExtensions(exts),
		IgnoreFiles: map[string]struct{}{},
		IgnoreDirs:  map[string]struct{}{},
	}
}

func findChild(t *testing.T, d *DirNode, name string) Node {
	t.Helper()
	for _, item := range d.Items() {
		if item.Name() == name {
			return item
		}
	}
	t.Fatalf("child %q not found in directory %q", name, d.Name())
	return nil
}

func childNames(d *DirNode) []string {
	names := make([]string, 0, len(d.Items()))
	for _, item := range d.Items() {
		names = append(names, item.Name())
	}
	return names
}

// scenarioStructure is the reference tree: a.py with 3 lines (one of
// them blank), b.txt with 5 lines, and sub/c.py with 2 lines.
func scenarioStructure() map[string]string {
	return map[string]string{
		"a.py":     "line1\n\nline3\n",
		"b.txt":    "1\n2\n3\n4\n5\n",
		"sub/c.py": "x = 1\ny = 2\n",
	}
}

// --- Tests ---

func TestCrawler_RecursiveScenario(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	crawler := newCrawler(testOptions(tempDir, true))
	root := crawler.Walk()

	dirCount, fileCount := root.ItemCounts()
	assert.Equal(t, 1, dirCount, "just sub")
	assert.Equal(t, 2, fileCount, "a.py and c.py; b.txt filtered out")
	assert.Equal(t, 5, root.LineCount())
	assert.Empty(t, crawler.Errors())

	sub := findChild(t, root, "sub").(*DirNode)
	assert.True(t, sub.HasFile())
	assert.Equal(t, 2, sub.LineCount())
	assert.Equal(t, 0, root.NumHidden())
}

func TestCrawler_NonRecursivePlaceholder(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	crawler := newCrawler(testOptions(tempDir, false))
	root := crawler.Walk()

	// sub appears as a placeholder: present, but never inspected.
	sub := findChild(t, root, "sub").(*DirNode)
	assert.Empty(t, sub.Items())
	assert.Equal(t, 0, sub.LineCount())
	assert.False(t, sub.HasFile())

	dirCount, fileCount := root.ItemCounts()
	assert.Equal(t, 1, dirCount)
	assert.Equal(t, 1, fileCount, "only a.py at the top level")
	assert.Equal(t, 3, root.LineCount())
	assert.Equal(t, 1, root.NumHidden(), "the placeholder counts as hidden")
}

func TestCrawler_IgnoreDirsPrunesSubtree(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	opts := testOptions(tempDir, true)
	opts.IgnoreDirs = processBasenames([]string{"sub"})
	crawler := newCrawler(opts)
	root := crawler.Walk()

	dirCount, fileCount := root.ItemCounts()
	assert.Equal(t, 0, dirCount, "sub never appears at all")
	assert.Equal(t, 1, fileCount)
	assert.Equal(t, 3, root.LineCount())
	assert.NotContains(t, childNames(root), "sub")
}

func TestCrawler_IgnoreFiles(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	opts := testOptions(tempDir, true)
	opts.IgnoreFiles = processBasenames([]string{"a.py"})
	crawler := newCrawler(opts)
	root := crawler.Walk()

	_, fileCount := root.ItemCounts()
	assert.Equal(t, 1, fileCount, "only sub/c.py survives")
	assert.Equal(t, 2, root.LineCount())
	assert.NotContains(t, childNames(root), "a.py")
}

func TestCrawler_ExtensionFilter(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	crawler := newCrawler(testOptions(tempDir, true, "txt"))
	root := crawler.Walk()

	_, fileCount := root.ItemCounts()
	assert.Equal(t, 1, fileCount)
	assert.Equal(t, 5, root.LineCount())
	assert.Contains(t, childNames(root), "b.txt")
	assert.NotContains(t, childNames(root), "a.py")
}

func TestCrawler_ExtensionMatchIsCaseSensitiveAfterLastDot(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"archive.tar.gz": "data\n",
		"upper.PY":       "x\n",
		"lower.py":       "x\n",
	})

	t.Run("Multi-dot name matches final part", func(t *testing.T) {
		crawler := newCrawler(testOptions(tempDir, true, "gz"))
		root := crawler.Walk()
		assert.Equal(t, []string{"archive.tar.gz"}, childNames(root))
	})

	t.Run("Case matters", func(t *testing.T) {
		crawler := newCrawler(testOptions(tempDir, true, "py"))
		root := crawler.Walk()
		assert.Equal(t, []string{"lower.py"}, childNames(root))
	})
}

func TestCrawler_MeasurementsAttached(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"a.py": "hello world\n\n",
	})

	opts := testOptions(tempDir, false)
	opts.Measure = Measurements{NonBlank: true, Words: true, Sizes: true}
	crawler := newCrawler(opts)
	root := crawler.Walk()

	f := findChild(t, root, "a.py").(*FileNode)
	stats := f.Stats()
	assert.Equal(t, 2, stats.Lines)
	require.NotNil(t, stats.NonBlank)
	assert.Equal(t, 1, *stats.NonBlank)
	require.NotNil(t, stats.Words)
	assert.Equal(t, 2, *stats.Words)
	require.NotNil(t, stats.Bytes)
	assert.Equal(t, int64(13), *stats.Bytes)
	assert.Nil(t, stats.Chars, "chars were not requested")
}

func TestCrawler_Idempotent(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())
	opts := testOptions(tempDir, true)
	opts.Measure = Measurements{NonBlank: true, Words: true, Chars: true, Sizes: true}

	first := newCrawler(opts).Walk()
	second := newCrawler(opts).Walk()

	assert.Equal(t, first.LineCount(), second.LineCount())
	assert.Equal(t, first.NonBlankLineCount(), second.NonBlankLineCount())
	assert.Equal(t, first.WordCount(), second.WordCount())
	assert.Equal(t, first.CharCount(), second.CharCount())
	assert.Equal(t, first.Size(), second.Size())

	firstDirs, firstFiles := first.ItemCounts()
	secondDirs, secondFiles := second.ItemCounts()
	assert.Equal(t, firstDirs, secondDirs)
	assert.Equal(t, firstFiles, secondFiles)
}

func TestCrawler_GitignoreMode(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		".gitignore": "ignored.py\n",
		"ignored.py": "x\n",
		"kept.py":    "y\n",
	})

	t.Run("On", func(t *testing.T) {
		opts := testOptions(tempDir, true)
		opts.UseGitignore = true
		root := newCrawler(opts).Walk()
		assert.Equal(t, []string{"kept.py"}, childNames(root))
	})

	t.Run("Off", func(t *testing.T) {
		root := newCrawler(testOptions(tempDir, true)).Walk()
		assert.ElementsMatch(t, []string{"ignored.py", "kept.py"}, childNames(root))
	})

	t.Run("Missing .gitignore is not an error", func(t *testing.T) {
		bare := setupTestDir(t, map[string]string{"a.py": "x\n"})
		opts := testOptions(bare, true)
		opts.UseGitignore = true
		crawler := newCrawler(opts)
		root := crawler.Walk()
		assert.Equal(t, []string{"a.py"}, childNames(root))
		assert.Empty(t, crawler.Errors())
	})
}

func TestCrawler_SortOption(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"c.py":     "1\n",
		"a.py":     "1\n",
		"sub/b.py": "1\n",
	})

	opts := testOptions(tempDir, true)
	opts.Sort = true
	root := newCrawler(opts).Walk()

	assert.Equal(t, []string{"a.py", "c.py", "sub"}, childNames(root))
	assert.Equal(t, 3, root.LineCount(), "sorting never changes aggregates")
}

func TestCrawler_UnreadableDirectoryIsRecoverable(t *testing.T) {
	tempDir := setupTestDir(t, map[string]string{
		"ok.py": "fine\n",
	})

	opts := testOptions(tempDir, true)
	opts.Root = filepath.Join(tempDir, "does-not-exist")
	crawler := newCrawler(opts)
	root := crawler.Walk()

	// The walk completes with an empty tree and a recorded diagnostic
	// instead of aborting.
	assert.Empty(t, root.Items())
	assert.Len(t, crawler.Errors(), 1)
}

func TestCrawler_NamesAreBasenamesOnly(t *testing.T) {
	tempDir := setupTestDir(t, scenarioStructure())

	root := newCrawler(testOptions(tempDir, true)).Walk()

	assert.Equal(t, filepath.Base(tempDir), root.Name())
	for _, name := range childNames(root) {
		assert.NotContains(t, name, string(filepath.Separator))
	}
}
