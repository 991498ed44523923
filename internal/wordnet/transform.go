package wordnet

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Transform iterates lemma_to_synsets and produces one MeiliWord per
// lemma, classifying every synset- and sense-level relation edge into
// one of the five thesaurus buckets. Work is distributed across a
// bounded pool of workerCount goroutines (0 means runtime.NumCPU());
// a panic inside one lemma's task is recovered and turned into an
// error naming that lemma. The first such error stops the remaining
// tasks, and Transform then returns it with no documents.
func Transform(ctx context.Context, lex *Lexicon, resolved ResolvedMaps, workerCount int, log *slog.Logger) ([]MeiliWord, TransformStats, error) {
	if log == nil {
		log = slog.Default()
	}
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}

	lemmaByLower := buildLemmaIndex(lex)

	lemmas := make([]string, 0, len(resolved.LemmaToSynsets))
	for lemma := range resolved.LemmaToSynsets {
		lemmas = append(lemmas, lemma)
	}

	var (
		mu     sync.Mutex
		words  = make([]MeiliWord, 0, len(lemmas))
		stats  = TransformStats{RelationsMapped: make(map[RelationBucket]int)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for _, lemma := range lemmas {
		lemma := lemma
		synsetIDs := resolved.LemmaToSynsets[lemma]

		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}

			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("transform lemma %q: panic: %v", lemma, r)
				}
			}()

			word, localCounts := transformLemma(lemma, synsetIDs, lex, resolved, lemmaByLower)

			mu.Lock()
			words = append(words, word)
			for bucket, n := range localCounts {
				stats.RelationsMapped[bucket] += n
			}
			mu.Unlock()

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, TransformStats{}, fmt.Errorf("transform: %w", err)
	}

	stats.WordsProduced = len(words)
	log.Info("transform complete",
		slog.Int("words", stats.WordsProduced),
		slog.Any("relations_mapped", stats.RelationsMapped))

	return words, stats, nil
}

// buildLemmaIndex maps a lowercased lemma to every lexical entry
// sharing that lemma, used to walk sense-level relations for a lemma
// regardless of case variants in the source.
func buildLemmaIndex(lex *Lexicon) map[string][]*LexicalEntry {
	idx := make(map[string][]*LexicalEntry)
	for _, entry := range lex.LexicalEntries {
		key := strings.ToLower(entry.Lemma.WrittenForm)
		idx[key] = append(idx[key], entry)
	}
	return idx
}

func transformLemma(lemma string, synsetIDs map[string]struct{}, lex *Lexicon, resolved ResolvedMaps, lemmaByLower map[string][]*LexicalEntry) (MeiliWord, map[RelationBucket]int) {
	word := MeiliWord{
		ID:   "word_" + normalizeID(lemma),
		Word: lemma,
	}
	counts := make(map[RelationBucket]int)
	posSet := make(map[string]struct{})
	lowerLemma := strings.ToLower(lemma)

	addBucket := func(bucket RelationBucket, target string) {
		switch bucket {
		case BucketSynonym:
			word.Synonyms = append(word.Synonyms, target)
		case BucketAntonym:
			word.Antonyms = append(word.Antonyms, target)
		case BucketBroader:
			word.BroaderTerms = append(word.BroaderTerms, target)
		case BucketNarrower:
			word.NarrowerTerms = append(word.NarrowerTerms, target)
		default:
			word.RelatedTerms = append(word.RelatedTerms, target)
		}
		counts[bucket]++
	}

	for synsetID := range synsetIDs {
		synset, ok := lex.Synsets[synsetID]
		if !ok {
			continue
		}

		if def := strings.TrimSpace(synset.Definition); def != "" {
			if synset.PartOfSpeech != "" {
				word.Definitions = append(word.Definitions, fmt.Sprintf("(%s) %s", synset.PartOfSpeech, def))
			} else {
				word.Definitions = append(word.Definitions, def)
			}
		}

		if synset.PartOfSpeech != "" {
			posSet[synset.PartOfSpeech] = struct{}{}
		}

		for _, ex := range synset.Examples {
			if t := strings.TrimSpace(ex); t != "" {
				word.Examples = append(word.Examples, t)
			}
		}

		for _, member := range resolved.SynsetToLemmas[synsetID] {
			if !strings.EqualFold(member, lemma) {
				counts[BucketSynonym]++
				word.Synonyms = append(word.Synonyms, member)
			}
		}

		for _, rel := range synset.Relations {
			targets := resolved.SynsetToLemmas[rel.Target]
			if len(targets) == 0 {
				continue
			}
			bucket := classifySynsetRelation(rel.RelType)
			for _, target := range targets {
				if !strings.EqualFold(target, lemma) {
					addBucket(bucket, target)
				}
			}
		}
	}

	for _, entry := range lemmaByLower[lowerLemma] {
		for _, senseID := range entry.Senses {
			sense, ok := lex.Senses[senseID]
			if !ok {
				continue
			}

			for _, ex := range sense.Examples {
				if t := strings.TrimSpace(ex); t != "" {
					word.Examples = append(word.Examples, t)
				}
			}

			for _, rel := range sense.Relations {
				targetLemma, ok := resolved.SenseToLemma[rel.Target]
				if !ok || strings.TrimSpace(targetLemma) == "" || strings.EqualFold(targetLemma, lemma) {
					continue
				}
				bucket := classifySenseRelation(rel.RelType)
				addBucket(bucket, targetLemma)
			}
		}
	}

	word.POS = make([]string, 0, len(posSet))
	for pos := range posSet {
		word.POS = append(word.POS, pos)
	}
	sort.Strings(word.POS)

	word.Synonyms = sortDedup(word.Synonyms)
	word.Antonyms = sortDedup(word.Antonyms)
	word.BroaderTerms = sortDedup(word.BroaderTerms)
	word.NarrowerTerms = sortDedup(word.NarrowerTerms)
	word.RelatedTerms = sortDedup(word.RelatedTerms)
	word.Examples = sortDedup(word.Examples)
	word.Definitions = sortDedup(word.Definitions)

	return word, counts
}
