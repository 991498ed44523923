// Command importer builds a Meilisearch thesaurus index from a
// WordNet LMF XML dump: it acquires the dump (local file or download),
// parses it, resolves the sense/synset relation graph, transforms it
// into flat per-word documents, and uploads them to Meilisearch.
//
// Flags:
//
//	--xml-path      path to a local WordNet LMF XML file (skips download)
//	--skip-upload   parse and transform but never talk to Meilisearch
//	--workers       worker pool size for the transform stage (default: NumCPU)
//	--meili-url     Meilisearch URL (env MEILI_URL, default http://localhost:7700)
//	--meili-key     Meilisearch API key (env MEILI_KEY)
//	--index         Meilisearch index name (default words)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/acquire"
	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/app"
	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/config"
	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/meilisearch"
	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/wordnet"
	"github.com/heartmarshall/wordnet-thesaurus-importer/pkg/ctxutil"
)

func main() {
	xmlPathFlag := flag.String("xml-path", "", "path to a local WordNet LMF XML file (overrides config)")
	skipUploadFlag := flag.Bool("skip-upload", false, "parse and transform without uploading to Meilisearch")
	workersFlag := flag.Int("workers", 0, "worker pool size for the transform stage (0 = NumCPU)")
	meiliURLFlag := flag.String("meili-url", "", "Meilisearch URL (overrides config)")
	meiliKeyFlag := flag.String("meili-key", "", "Meilisearch API key (overrides config)")
	indexFlag := flag.String("index", "", "Meilisearch index name (overrides config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *xmlPathFlag != "" {
		cfg.Import.XMLPath = *xmlPathFlag
	}
	if *skipUploadFlag {
		cfg.Import.SkipUpload = true
	}
	if *workersFlag != 0 {
		cfg.Import.WorkerCount = *workersFlag
	}
	if *meiliURLFlag != "" {
		cfg.Meili.URL = *meiliURLFlag
	}
	if *meiliKeyFlag != "" {
		cfg.Meili.Key = *meiliKeyFlag
	}
	if *indexFlag != "" {
		cfg.Meili.Index = *indexFlag
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Minute)
	defer cancel()
	ctx = ctxutil.WithRunID(ctx, uuid.New())

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("import failed", slog.String("error", err.Error()))
		fmt.Fprintln(os.Stderr, "importer:", err)
		os.Exit(1)
	}

	logger.Info("import complete")
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	runID, _ := ctxutil.RunIDFromCtx(ctx)
	logger = logger.With(slog.String("run_id", runID.String()))
	logger.Info("starting import",
		slog.String("version", app.BuildVersion()))

	acquired, err := acquire.Resolve(ctx, cfg.Import.XMLPath, cfg.Import.SourceURL, logger)
	if err != nil {
		return err
	}
	defer acquired.Close()

	lex, counts, err := wordnet.ParseFile(ctx, acquired.XMLPath, logger)
	if err != nil {
		return err
	}
	logger.Info("parsed wordnet lexicon",
		slog.Int("lexical_entries", counts.LexicalEntries),
		slog.Int("senses", counts.Senses),
		slog.Int("synsets", counts.Synsets))

	resolved := wordnet.Resolve(lex)

	words, stats, err := wordnet.Transform(ctx, lex, resolved, cfg.Import.WorkerCount, logger)
	if err != nil {
		return err
	}
	logger.Info("transformed lexicon into documents",
		slog.Int("words", stats.WordsProduced))

	if cfg.Import.SkipUpload {
		logger.Info("skip_upload set, not uploading to meilisearch")
		return nil
	}

	client := meilisearch.New(cfg.Meili.URL, cfg.Meili.Key, cfg.Meili.Index, cfg.Import.BatchSize, logger)
	if err := client.ConfigureIndex(); err != nil {
		return err
	}

	uploadStats := client.Upload(words)
	logger.Info("upload complete",
		slog.Int("batches_total", uploadStats.BatchesTotal),
		slog.Int("batches_failed", uploadStats.BatchesFailed),
		slog.Int("documents_sent", uploadStats.DocumentsSent))

	return nil
}
