// cmd/dirstat/options.go
package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// Options is the fully resolved configuration for one run: flag values
// layered over the config file layered over built-in defaults, validated
// once at the boundary. The crawler and renderer only ever read from it.
type Options struct {
	Root         string
	Recursive    bool
	ShowTree     bool
	ShowAll      bool
	Sort         bool
	UseGitignore bool
	Human        bool
	Extensions   map[string]struct{}
	IgnoreFiles  map[string]struct{}
	IgnoreDirs   map[string]struct{}
	Measure      Measurements
}

// rawOptions carries the unvalidated flag values out of main. The *Set
// fields record whether the flag appeared on the command line at all,
// which decides whether it overrides the config file.
type rawOptions struct {
	rootArg      string
	recursive    bool
	showTree     bool
	fav          bool
	extensions   []string
	ignoreFiles  []string
	ignoreDirs   []string
	nonBlank     bool
	words        bool
	chars        bool
	sizes        bool
	longAnalysis bool
	showAll      bool
	sortNames    bool
	gitignore    bool
	gitignoreSet bool
	human        bool
	humanSet     bool
}

// resolveOptions merges flags, config, and defaults into Options and
// validates the root directory. The --fav and --long shortcuts expand
// here, before anything downstream sees the option values.
func resolveOptions(raw rawOptions, cfg Config) (Options, error) {
	opts := Options{
		Recursive: raw.recursive,
		ShowTree:  raw.showTree,
		ShowAll:   raw.showAll,
		Sort:      raw.sortNames,
		Measure: Measurements{
			NonBlank: raw.nonBlank,
			Words:    raw.words,
			Chars:    raw.chars,
			Sizes:    raw.sizes,
		},
	}

	// Shortcut flags expand into their component settings.
	if raw.fav {
		opts.Recursive = true
		opts.ShowTree = true
		opts.Measure.Words = true
	}
	if raw.longAnalysis {
		opts.Measure = Measurements{NonBlank: true, Words: true, Chars: true, Sizes: true}
	}

	// Root directory: positional argument, defaulting to the CWD. Must
	// name an existing directory or the run fails before any crawl.
	root := raw.rootArg
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Options{}, fmt.Errorf("cannot determine working directory: %w", err)
		}
		root = cwd
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return Options{}, fmt.Errorf("invalid directory path '%s': %w", root, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return Options{}, fmt.Errorf("'%s' is not a valid directory path", root)
	}
	if !info.IsDir() {
		return Options{}, fmt.Errorf("'%s' is not a directory", root)
	}
	opts.Root = absRoot

	// Extensions: flag overrides config, config overrides the built-in
	// fallback set.
	extList := cfg.Extensions
	if len(raw.extensions) > 0 {
		extList = raw.extensions
	}
	opts.Extensions = processExtensions(extList)
	if len(opts.Extensions) == 0 {
		opts.Extensions = processExtensions(defaultConfig.Extensions)
	}

	// Ignore lists: flag values add to config values.
	opts.IgnoreFiles = processBasenames(append(append([]string{}, cfg.IgnoreFiles...), raw.ignoreFiles...))
	opts.IgnoreDirs = processBasenames(append(append([]string{}, cfg.IgnoreDirs...), raw.ignoreDirs...))

	// Gitignore and human-size modes: an explicit flag wins, else config.
	opts.UseGitignore = cfg.useGitignoreOrDefault()
	if raw.gitignoreSet {
		opts.UseGitignore = raw.gitignore
	}
	opts.Human = cfg.humanSizesOrDefault()
	if raw.humanSet {
		opts.Human = raw.human
	}

	return opts, nil
}
