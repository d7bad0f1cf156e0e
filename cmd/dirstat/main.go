// cmd/dirstat/main.go
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	pflag "github.com/spf13/pflag"
)

const Version = "0.1.0"

// --- Global Variables for Flags ---
var (
	recursiveFlag   bool
	showTreeFlag    bool
	favFlag         bool
	extensionsFlag  []string
	ignoreFilesFlag []string
	ignoreDirsFlag  []string
	nonBlankFlag    bool
	wordsFlag       bool
	charsFlag       bool
	sizesFlag       bool
	longFlag        bool
	showAllFlag     bool
	sortFlag        bool
	gitignoreFlag   bool
	humanFlag       bool
	logLevelStr     string
	configFileFlag  string
	versionFlag     bool
)

func init() {
	pflag.BoolVarP(&recursiveFlag, "recursive", "r", false, "Recurse through all subdirectories.")
	pflag.BoolVarP(&showTreeFlag, "tree", "t", false, "Display the graphical file tree.")
	pflag.BoolVar(&favFlag, "fav", false, "Favorite settings, shortcut for -rtw (recursive, tree, words).")
	pflag.StringSliceVarP(&extensionsFlag, "ext", "e", []string{}, "Comma-separated file extensions to search for (overrides config).")
	pflag.StringSliceVar(&ignoreFilesFlag, "ignore-file", []string{}, "Names of files to ignore, including extension (adds to config).")
	pflag.StringSliceVar(&ignoreDirsFlag, "ignore-dir", []string{}, "Names of directories to ignore (adds to config).")
	pflag.BoolVarP(&nonBlankFlag, "non-blank", "n", false, "Include non-blank line count for each file.")
	pflag.BoolVarP(&wordsFlag, "words", "w", false, "Include word count for each file.")
	pflag.BoolVarP(&charsFlag, "chars", "c", false, "Include character count for each file.")
	pflag.BoolVarP(&sizesFlag, "sizes", "s", false, "Include file sizes.")
	pflag.BoolVarP(&longFlag, "long", "l", false, "Long analysis, shortcut for -nwcs (non-blank, words, chars, sizes).")
	pflag.BoolVarP(&showAllFlag, "all", "a", false, "Show all directories instead of just those containing matching files.")
	pflag.BoolVar(&sortFlag, "sort", false, "Sort entries by name within each directory.")
	pflag.BoolVar(&gitignoreFlag, "gitignore", false, "Skip files matched by the root .gitignore.")
	pflag.BoolVarP(&humanFlag, "human", "H", false, "Print sizes in human-readable form.")
	pflag.StringVar(&logLevelStr, "loglevel", "info", "Set logging verbosity (debug, info, warn, error).")
	pflag.StringVar(&configFileFlag, "config", "", "Path to a custom configuration file.")
	pflag.BoolVarP(&versionFlag, "version", "v", false, "Print version and exit.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: %s [flags] [directory]

Analyze the file structure of a directory: directory / file / line counts
at minimum, with optional non-blank line, word, char, and size statistics
and a graphical file tree. Defaults to the current working directory.

Flags:
`, os.Args[0])
		pflag.PrintDefaults()
	}
}

// --- Main Execution ---
func main() {
	pflag.Parse()

	if versionFlag {
		fmt.Printf("dirstat version %s\n", Version)
		os.Exit(0)
	}

	// Setup Logging
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(logLevelStr)); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid log level %q, defaulting to 'info'.\n", logLevelStr)
		logLevel = slog.LevelInfo
	}
	logOpts := &slog.HandlerOptions{Level: logLevel, AddSource: logLevel <= slog.LevelDebug}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, logOpts)))

	// Load Configuration
	cfg, loadErr := loadConfig(configFileFlag)
	if loadErr != nil {
		slog.Error("Failed to load configuration, using defaults.", "error", loadErr)
		cfg = defaultConfig
	}

	// Positional argument: the directory to analyze.
	positionalArgs := pflag.Args()
	if len(positionalArgs) > 1 {
		fmt.Fprintf(os.Stderr, "Refusing execution: multiple directory arguments provided: %v.\n", positionalArgs)
		os.Exit(1)
	}
	rootArg := ""
	if len(positionalArgs) == 1 {
		rootArg = positionalArgs[0]
	}

	raw := rawOptions{
		rootArg:      rootArg,
		recursive:    recursiveFlag,
		showTree:     showTreeFlag,
		fav:          favFlag,
		extensions:   extensionsFlag,
		ignoreFiles:  ignoreFilesFlag,
		ignoreDirs:   ignoreDirsFlag,
		nonBlank:     nonBlankFlag,
		words:        wordsFlag,
		chars:        charsFlag,
		sizes:        sizesFlag,
		longAnalysis: longFlag,
		showAll:      showAllFlag,
		sortNames:    sortFlag,
		gitignore:    gitignoreFlag,
		gitignoreSet: pflag.CommandLine.Changed("gitignore"),
		human:        humanFlag,
		humanSet:     pflag.CommandLine.Changed("human"),
	}

	opts, err := resolveOptions(raw, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	slog.Debug("Resolved options.",
		"root", opts.Root,
		"recursive", opts.Recursive,
		"show_tree", opts.ShowTree,
		"show_all", opts.ShowAll,
		"extensions", sortedKeys(opts.Extensions),
		"ignore_files", sortedKeys(opts.IgnoreFiles),
		"ignore_dirs", sortedKeys(opts.IgnoreDirs),
		"use_gitignore", opts.UseGitignore,
	)

	fmt.Printf("Searching for file extensions '.%s' ...\n",
		strings.Join(sortedKeys(opts.Extensions), "', '."))

	// Crawl the file structure, then render.
	crawler := newCrawler(opts)
	root := crawler.Walk()

	fmt.Println()
	if opts.ShowTree {
		renderTree(os.Stdout, root, opts)
		fmt.Println()
	}
	renderTotals(os.Stdout, root, crawler.Errors(), opts)
}
