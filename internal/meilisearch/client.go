// Package meilisearch configures a Meilisearch index for the thesaurus
// documents produced by the wordnet package and uploads them in
// batches.
package meilisearch

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	ms "github.com/meilisearch/meilisearch-go"

	"github.com/heartmarshall/wordnet-thesaurus-importer/internal/wordnet"
)

// ErrIndexConfigFailed is the sentinel for failures configuring the
// index itself (primary key, attributes, ranking rules) — these are
// fatal because an unconfigured index makes every later upload useless.
var ErrIndexConfigFailed = errors.New("meilisearch: index configuration failed")

const interBatchDelay = 100 * time.Millisecond

var (
	searchableAttributes = []string{"word", "definitions", "synonyms", "antonyms", "examples"}
	filterableAttributes = []string{"pos", "word"}
	sortableAttributes   = []string{"word"}
	rankingRules         = []string{"words", "typo", "proximity", "attribute", "sort", "exactness"}
)

// Client wraps a Meilisearch SDK client scoped to a single index.
type Client struct {
	index     ms.IndexManager
	indexName string
	batchSize int
	log       *slog.Logger
}

// New builds a Client for indexName on the Meilisearch instance at
// url, authenticating with apiKey (may be empty for an unprotected
// instance).
func New(url, apiKey, indexName string, batchSize int, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	if batchSize <= 0 {
		batchSize = 1000
	}

	sdk := ms.New(url, ms.WithAPIKey(apiKey))
	return &Client{
		index:     sdk.Index(indexName),
		indexName: indexName,
		batchSize: batchSize,
		log:       log,
	}
}

// ConfigureIndex sets the primary key and the searchable, filterable,
// sortable attributes and ranking rules the thesaurus search needs.
// Any failure here is fatal: the index is unusable until this
// succeeds.
func (c *Client) ConfigureIndex() error {
	key, err := c.index.GetPrimaryKey()
	if err != nil || key != "id" {
		c.log.Info("setting primary key", slog.String("index", c.indexName))
		if _, err := c.index.UpdatePrimaryKey("id"); err != nil {
			return fmt.Errorf("%w: set primary key: %v", ErrIndexConfigFailed, err)
		}
	}

	if _, err := c.index.UpdateSearchableAttributes(&searchableAttributes); err != nil {
		return fmt.Errorf("%w: searchable attributes: %v", ErrIndexConfigFailed, err)
	}
	if _, err := c.index.UpdateFilterableAttributes(&filterableAttributes); err != nil {
		return fmt.Errorf("%w: filterable attributes: %v", ErrIndexConfigFailed, err)
	}
	if _, err := c.index.UpdateSortableAttributes(&sortableAttributes); err != nil {
		return fmt.Errorf("%w: sortable attributes: %v", ErrIndexConfigFailed, err)
	}
	if _, err := c.index.UpdateRankingRules(&rankingRules); err != nil {
		return fmt.Errorf("%w: ranking rules: %v", ErrIndexConfigFailed, err)
	}

	return nil
}

// UploadStats tallies the outcome of a batched upload.
type UploadStats struct {
	BatchesTotal   int
	BatchesFailed  int
	DocumentsSent  int
}

// Upload splits words into batches of c.batchSize and uploads each one.
// A failed batch is logged and counted but does not abort the run;
// operators re-run the importer to retry failed batches.
func (c *Client) Upload(words []wordnet.MeiliWord) UploadStats {
	stats := UploadStats{BatchesTotal: batchCount(len(words), c.batchSize)}

	for i := 0; i < len(words); i += c.batchSize {
		end := min(i+c.batchSize, len(words))
		batch := words[i:end]
		batchNum := i/c.batchSize + 1

		task, err := c.index.AddDocuments(batch, "id")
		if err != nil {
			c.log.Warn("batch upload failed",
				slog.Int("batch", batchNum),
				slog.String("error", err.Error()))
			stats.BatchesFailed++
		} else {
			c.log.Info("batch uploaded",
				slog.Int("batch", batchNum),
				slog.Int64("task_uid", task.TaskUID))
			stats.DocumentsSent += len(batch)
		}

		if end < len(words) {
			time.Sleep(interBatchDelay)
		}
	}

	return stats
}

// batchCount returns the number of batches of size batchSize needed to
// cover n items.
func batchCount(n, batchSize int) int {
	if n == 0 {
		return 0
	}
	return (n + batchSize - 1) / batchSize
}
