package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/samvidhan-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/samvidhan-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/samvidhan-cli/internal/core/domain"
)

var (
	indexSource   string
	indexOutput   string
	indexDebounce time.Duration
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and inspect the vector index",
}

var indexBuildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the index from the corpus directory",
	Long: `Loads every PDF, text, Markdown and HTML file in the corpus directory,
splits pages into overlapping chunks, embeds them and writes the index.
An existing index at the output path is replaced.

If no file yields text, PDFs are re-read recursively with pdftotext.`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

var indexInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the manifest of the built index",
	Args:  cobra.NoArgs,
	RunE:  runIndexInfo,
}

var indexShowCmd = &cobra.Command{
	Use:   "show <chunk-id>",
	Short: "Print one indexed chunk with its provenance",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndexShow,
}

var indexWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the index whenever the corpus changes",
	Long: `Watches the corpus directory and rebuilds the index after changes settle.
Queries keep using the previous artifact until a rebuild completes.`,
	Args: cobra.NoArgs,
	RunE: runIndexWatch,
}

func init() {
	for _, c := range []*cobra.Command{indexBuildCmd, indexWatchCmd} {
		c.Flags().StringVarP(&indexSource, "source", "s", "", "corpus directory (default from settings)")
		c.Flags().StringVarP(&indexOutput, "output", "o", "", "index path (default from settings)")
	}
	indexInfoCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "index path (default from settings)")
	indexShowCmd.Flags().StringVarP(&indexOutput, "output", "o", "", "index path (default from settings)")
	indexWatchCmd.Flags().DurationVar(&indexDebounce, "debounce", filesystem.DefaultDebounce, "quiet period before rebuilding")

	indexCmd.AddCommand(indexBuildCmd)
	indexCmd.AddCommand(indexInfoCmd)
	indexCmd.AddCommand(indexShowCmd)
	indexCmd.AddCommand(indexWatchCmd)
	rootCmd.AddCommand(indexCmd)
}

// indexPaths resolves the corpus and index paths from flags, then settings.
func indexPaths(settings *domain.AppSettings) (source, output string) {
	source, output = indexSource, indexOutput
	if source == "" {
		source = settings.Corpus.Dir
	}
	if output == "" {
		output = settings.Index.Path
	}
	return source, output
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	sess, err := openSession(cmd.Context(), ai.Needs{Embedding: true})
	if err != nil {
		return err
	}
	defer sess.Close()

	source, output := indexPaths(sess.settings)
	cmd.Printf("Indexing %s ...\n", source)

	n, err := sess.indexer.BuildIndex(cmd.Context(), source, output)
	if err != nil {
		return err
	}

	cmd.Printf("Indexed %d chunks into %s\n", n, output)
	return nil
}

func runIndexInfo(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || indexFactory == nil {
		return errors.New("index not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	_, path := indexPaths(settings)

	manifest, err := indexFactory.Inspect(path)
	if err != nil {
		return fmt.Errorf("%w (run 'samvidhan index build')", err)
	}

	cmd.Println("Index")
	cmd.Println("=====")
	cmd.Printf("  Path:        %s\n", path)
	cmd.Printf("  Build ID:    %s\n", manifest.BuildID)
	cmd.Printf("  Created:     %s\n", manifest.CreatedAt.Local().Format(time.RFC1123))
	cmd.Printf("  Model:       %s\n", manifest.EmbeddingModel)
	cmd.Printf("  Dimensions:  %d\n", manifest.Dimensions)
	cmd.Printf("  Chunks:      %d\n", manifest.Count)
	cmd.Printf("  Chunking:    %d chars, %d overlap\n", manifest.ChunkSize, manifest.ChunkOverlap)

	store, err := sqlite.OpenReadOnly(cmd.Context(), path)
	if err != nil {
		cmd.PrintErrf("Warning: chunk database unreadable: %v\n", err)
		return nil
	}
	defer store.Close()

	if stored, err := store.Count(cmd.Context()); err == nil && stored != manifest.Count {
		cmd.PrintErrf("Warning: chunk database holds %d chunks, manifest lists %d (rebuild the index)\n",
			stored, manifest.Count)
	}

	stats, err := store.SourceStats(cmd.Context())
	if err != nil || len(stats) == 0 {
		return nil
	}
	sources := make([]string, 0, len(stats))
	for s := range stats {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	cmd.Println()
	cmd.Println("Sources")
	cmd.Println("=======")
	for _, s := range sources {
		cmd.Printf("  %-40s %d chunks\n", s, stats[s])
	}
	return nil
}

func runIndexShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: chunk id %q", domain.ErrInvalidInput, args[0])
	}
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	settings, err := settingsService.Get()
	if err != nil {
		return err
	}
	_, path := indexPaths(settings)

	store, err := sqlite.OpenReadOnly(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrIndexNotFound, path, err)
	}
	defer store.Close()

	chunk, err := store.GetChunk(cmd.Context(), id)
	if err != nil {
		return err
	}

	cmd.Printf("[%d] %s\n\n%s\n", chunk.ID, chunk.Citation(), chunk.Text)
	return nil
}

func runIndexWatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	sess, err := openSession(ctx, ai.Needs{Embedding: true})
	if err != nil {
		return err
	}
	defer sess.Close()

	source, output := indexPaths(sess.settings)

	watcher := filesystem.NewWatcher(source, extractors, indexDebounce)
	defer watcher.Close()

	batches, err := watcher.Watch(ctx)
	if err != nil {
		return err
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", source)
	for changed := range batches {
		cmd.Printf("Changed: %v\n", changed)
		n, err := sess.indexer.BuildIndex(ctx, source, output)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			cmd.PrintErrf("Rebuild failed: %v\n", err)
			continue
		}
		cmd.Printf("Rebuilt index: %d chunks\n", n)
	}
	return nil
}
