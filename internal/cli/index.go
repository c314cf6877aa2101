package cli

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ekurganov/claimlens/internal/retrieve"
	"github.com/ekurganov/claimlens/internal/util"
)

var (
	indexURLs    []string
	indexTimeout time.Duration
)

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index [path...]",
	Short: "Index documents into the evidence corpus",
	Long: `Index adds documents to the local evidence corpus used for claim
verification. Accepts text or HTML files, directories (walked
recursively), and URLs via --url. Pages fetched over HTTP respect
robots.txt.

Indexing the same source again replaces its previous chunks.

Example:
  claimlens index docs/ notes.txt
  claimlens index --url https://en.wikipedia.org/wiki/Python_(programming_language)
  claimlens index corpus/ --url https://peps.python.org/pep-0703/`,
	RunE: runIndex,
}

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus statistics",
	RunE:  runStats,
}

// clearCmd represents the clear command
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all indexed documents",
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)

	indexCmd.Flags().StringSliceVar(&indexURLs, "url", nil, "URL to fetch and index (repeatable)")
	indexCmd.Flags().DurationVar(&indexTimeout, "timeout", 5*time.Minute, "overall indexing timeout")
}

func runIndex(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(indexURLs) == 0 {
		return fmt.Errorf("provide at least one file, directory, or --url")
	}

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), indexTimeout)
	defer cancel()

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = store.Close() }()

	indexed := 0
	failed := 0

	for _, path := range args {
		files, err := collectFiles(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			failed++
			continue
		}
		for _, file := range files {
			chunks, err := indexFile(store, file)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", file, err)
				failed++
				continue
			}
			fmt.Fprintf(os.Stderr, "✓ %s (%d chunks)\n", file, chunks)
			indexed++
		}
	}

	if len(indexURLs) > 0 {
		fetcher := retrieve.NewFetcher(cfg.HTTP)
		for _, rawURL := range indexURLs {
			sourceID, text, err := fetcher.FetchPage(ctx, rawURL)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", rawURL, err)
				failed++
				continue
			}
			chunks, err := store.IndexDocument(sourceID, text)
			if err != nil {
				fmt.Fprintf(os.Stderr, "✗ %s: %v\n", rawURL, err)
				failed++
				continue
			}
			fmt.Fprintf(os.Stderr, "✓ %s (%d chunks)\n", sourceID, chunks)
			indexed++
		}
	}

	fmt.Fprintf(os.Stderr, "\nIndexed %d documents", indexed)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, ", %d failed", failed)
	}
	fmt.Fprintln(os.Stderr)

	if indexed == 0 && failed > 0 {
		return fmt.Errorf("no documents indexed")
	}
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = store.Close() }()

	chunks, documents, err := store.Stats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	fmt.Printf("Corpus:    %s\n", cfg.Retrieval.DBPath)
	fmt.Printf("Documents: %d\n", documents)
	fmt.Printf("Chunks:    %d\n", chunks)
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("open corpus: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clear corpus: %w", err)
	}

	fmt.Fprintln(os.Stderr, "✓ Corpus cleared")
	return nil
}

// collectFiles expands a path into the list of indexable files.
// Directories are walked recursively; hidden entries are skipped.
func collectFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && p != path {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(name)) {
		case ".txt", ".md", ".html", ".htm":
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func indexFile(store *retrieve.Store, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read file: %w", err)
	}

	text := string(data)
	if ext := strings.ToLower(filepath.Ext(path)); ext == ".html" || ext == ".htm" {
		text, err = util.StripHTML(text)
		if err != nil {
			return 0, fmt.Errorf("strip html: %w", err)
		}
	}

	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("file is empty")
	}

	return store.IndexDocument(filepath.ToSlash(path), text)
}
