// cmd/dirstat/node.go
package main

import "sort"

// Node is the uniform read surface over files and directories in a
// crawled tree. Directory values are recursive sums over children; file
// values come straight from the file's Stats, with absent measurements
// reading as zero.
type Node interface {
	Name() string
	LineCount() int
	NonBlankLineCount() int
	WordCount() int
	CharCount() int
	Size() int64
}

// nodeLess orders two nodes by name, independent of kind. It backs the
// optional --sort display ordering and nothing else; node identity is
// never derived from it.
func nodeLess(a, b Node) bool {
	return a.Name() < b.Name()
}

// FileNode is a leaf: one analyzed file. Immutable once constructed.
// Its name is the basename only, never a path.
type FileNode struct {
	name  string
	stats Stats
}

func newFileNode(name string, stats Stats) *FileNode {
	return &FileNode{name: name, stats: stats}
}

func (f *FileNode) Name() string { return f.name }

// Stats exposes the raw counters, including which ones are absent.
func (f *FileNode) Stats() Stats { return f.stats }

func (f *FileNode) LineCount() int         { return f.stats.Lines }
func (f *FileNode) NonBlankLineCount() int { return derefCount(f.stats.NonBlank) }
func (f *FileNode) WordCount() int         { return derefCount(f.stats.Words) }
func (f *FileNode) CharCount() int         { return derefCount(f.stats.Chars) }

func (f *FileNode) Size() int64 {
	if f.stats.Bytes == nil {
		return 0
	}
	return *f.stats.Bytes
}

func derefCount(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// DirNode is a directory and its crawled children, kept in the order the
// crawl produced them. Aggregates are recomputed on every call; nothing
// is cached, so they are always consistent with the children. A DirNode
// with no children doubles as the placeholder for a subdirectory whose
// contents were never inspected.
type DirNode struct {
	name  string
	items []Node
}

func newDirNode(name string) *DirNode {
	return &DirNode{name: name}
}

// Add appends a child. Children are only ever appended during
// construction, never removed or reordered afterwards.
func (d *DirNode) Add(n Node) {
	d.items = append(d.items, n)
}

// Items returns the children in crawl order.
func (d *DirNode) Items() []Node { return d.items }

// sortItems orders the children by name. Called by the crawler while the
// directory is still under construction, before the parent attaches it.
func (d *DirNode) sortItems() {
	sort.SliceStable(d.items, func(i, j int) bool {
		return nodeLess(d.items[i], d.items[j])
	})
}

func (d *DirNode) Name() string { return d.name }

func (d *DirNode) LineCount() int {
	count := 0
	for _, item := range d.items {
		count += item.LineCount()
	}
	return count
}

func (d *DirNode) NonBlankLineCount() int {
	count := 0
	for _, item := range d.items {
		count += item.NonBlankLineCount()
	}
	return count
}

func (d *DirNode) WordCount() int {
	count := 0
	for _, item := range d.items {
		count += item.WordCount()
	}
	return count
}

func (d *DirNode) CharCount() int {
	count := 0
	for _, item := range d.items {
		count += item.CharCount()
	}
	return count
}

func (d *DirNode) Size() int64 {
	var total int64
	for _, item := range d.items {
		total += item.Size()
	}
	return total
}

// HasFile reports whether the subtree rooted here contains at least one
// file. Directories where this is false are the "hidden" ones the tree
// view skips unless --all is set.
func (d *DirNode) HasFile() bool {
	for _, item := range d.items {
		switch n := item.(type) {
		case *FileNode:
			return true
		case *DirNode:
			if n.HasFile() {
				return true
			}
		}
	}
	return false
}

// ItemCounts counts the directories and files in the subtree, excluding
// the receiver itself.
func (d *DirNode) ItemCounts() (dirCount, fileCount int) {
	for _, item := range d.items {
		switch n := item.(type) {
		case *FileNode:
			fileCount++
		case *DirNode:
			subDirs, subFiles := n.ItemCounts()
			dirCount += 1 + subDirs
			fileCount += subFiles
		}
	}
	return dirCount, fileCount
}

// NumHidden counts directory descendants whose subtrees hold no files,
// placeholders from a non-recursive crawl included.
func (d *DirNode) NumHidden() int {
	count := 0
	for _, item := range d.items {
		if sub, ok := item.(*DirNode); ok {
			if !sub.HasFile() {
				count++
			}
			count += sub.NumHidden()
		}
	}
	return count
}
