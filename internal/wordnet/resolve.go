package wordnet

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// Resolve derives sense_to_lemma, synset_to_lemmas and lemma_to_synsets
// from a parsed Lexicon.
func Resolve(lex *Lexicon) ResolvedMaps {
	senseToLemma := buildSenseToLemma(lex)
	synsetToLemmas := buildSynsetToLemmas(lex, senseToLemma)
	lemmaToSynsets := buildLemmaToSynsets(lex, synsetToLemmas)

	return ResolvedMaps{
		SenseToLemma:   senseToLemma,
		SynsetToLemmas: synsetToLemmas,
		LemmaToSynsets: lemmaToSynsets,
	}
}

// buildSenseToLemma binds each sense id owned by a non-empty lemma to
// that lemma's written form. Last write wins on a duplicate sense id.
func buildSenseToLemma(lex *Lexicon) map[string]string {
	senseToLemma := make(map[string]string)

	for _, entry := range lex.LexicalEntries {
		if strings.TrimSpace(entry.Lemma.WrittenForm) == "" {
			continue
		}
		for _, senseID := range entry.Senses {
			senseToLemma[senseID] = entry.Lemma.WrittenForm
		}
	}

	return senseToLemma
}

// buildSynsetToLemmas visits every sense and promotes its lemma to its
// synset, then resolves each synset's members attribute through
// senseToLemma. Each list is sorted and deduplicated.
func buildSynsetToLemmas(lex *Lexicon, senseToLemma map[string]string) map[string][]string {
	synsetToLemmas := make(map[string][]string)

	for _, sense := range lex.Senses {
		lemma, ok := senseToLemma[sense.ID]
		if !ok || strings.TrimSpace(lemma) == "" {
			continue
		}
		synsetToLemmas[sense.SynsetID] = append(synsetToLemmas[sense.SynsetID], lemma)
	}

	for synsetID, synset := range lex.Synsets {
		for _, memberID := range synset.Members {
			lemma, ok := senseToLemma[memberID]
			if !ok || strings.TrimSpace(lemma) == "" {
				continue
			}
			synsetToLemmas[synsetID] = append(synsetToLemmas[synsetID], lemma)
		}
	}

	for synsetID, lemmas := range synsetToLemmas {
		synsetToLemmas[synsetID] = sortDedup(lemmas)
	}

	return synsetToLemmas
}

// buildLemmaToSynsets mirrors buildSynsetToLemmas from the other
// direction: lexical-entry senses, then synset member lists. Lemmas
// failing isValidLemma or exceeding 100 characters are excluded.
func buildLemmaToSynsets(lex *Lexicon, synsetToLemmas map[string][]string) map[string]map[string]struct{} {
	lemmaToSynsets := make(map[string]map[string]struct{})

	addEdge := func(lemma, synsetID string) {
		if lemma == "" || utf8.RuneCountInString(lemma) > 100 || !isValidLemma(lemma) {
			return
		}
		set, ok := lemmaToSynsets[lemma]
		if !ok {
			set = make(map[string]struct{})
			lemmaToSynsets[lemma] = set
		}
		set[synsetID] = struct{}{}
	}

	for _, entry := range lex.LexicalEntries {
		lemma := entry.Lemma.WrittenForm
		if strings.TrimSpace(lemma) == "" {
			continue
		}
		for _, senseID := range entry.Senses {
			sense, ok := lex.Senses[senseID]
			if !ok {
				continue
			}
			addEdge(lemma, sense.SynsetID)
		}
	}

	for synsetID, lemmas := range synsetToLemmas {
		for _, lemma := range lemmas {
			addEdge(lemma, synsetID)
		}
	}

	return lemmaToSynsets
}

func sortDedup(items []string) []string {
	sort.Strings(items)
	out := items[:0]
	var prev string
	for i, s := range items {
		if i == 0 || s != prev {
			out = append(out, s)
			prev = s
		}
	}
	return out
}
