package wordnet

import (
	"bufio"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// xmlLemma mirrors the Lemma element: writtenForm/partOfSpeech attributes.
type xmlLemma struct {
	WrittenForm  string `xml:"writtenForm,attr"`
	PartOfSpeech string `xml:"partOfSpeech,attr"`
}

type xmlSenseRelation struct {
	RelType string `xml:"relType,attr"`
	Target  string `xml:"target,attr"`
}

type xmlText struct {
	Text string `xml:",chardata"`
}

type xmlSense struct {
	ID            string             `xml:"id,attr"`
	SynsetID      string             `xml:"synset,attr"`
	Relations     []xmlSenseRelation `xml:"SenseRelation"`
	SenseExamples []xmlText          `xml:"SenseExample"`
	Examples      []xmlText          `xml:"Example"`
}

type xmlLexicalEntry struct {
	ID     string     `xml:"id,attr"`
	Lemma  xmlLemma   `xml:"Lemma"`
	Senses []xmlSense `xml:"Sense"`
}

type xmlSynsetRelation struct {
	RelType string `xml:"relType,attr"`
	Target  string `xml:"target,attr"`
}

type xmlSynset struct {
	ID            string              `xml:"id,attr"`
	ILI           string              `xml:"ili,attr"`
	PartOfSpeech  string              `xml:"partOfSpeech,attr"`
	MembersRaw    string              `xml:"members,attr"`
	Definition    xmlText             `xml:"Definition"`
	ILIDefinition xmlText             `xml:"ILIDefinition"`
	Examples      []xmlText           `xml:"Example"`
	Relations     []xmlSynsetRelation `xml:"SynsetRelation"`
}

// ParseFile opens path and streams it through Parse.
func ParseFile(ctx context.Context, path string, log *slog.Logger) (*Lexicon, Counts, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Counts{}, fmt.Errorf("%w: open %s: %v", ErrParseFailed, path, err)
	}
	defer f.Close()

	return Parse(ctx, bufio.NewReaderSize(f, 1<<20), log)
}

// Parse streams WordNet LMF XML from r in document order, building the
// three primary tables. Unknown elements and attributes are ignored.
// Missing required attributes on LexicalEntry, Sense, SenseRelation or
// SynsetRelation are fatal and reported with the offending element
// name. A DOCTYPE, if present, is tolerated.
func Parse(ctx context.Context, r io.Reader, log *slog.Logger) (*Lexicon, Counts, error) {
	if log == nil {
		log = slog.Default()
	}

	decoder := xml.NewDecoder(r)
	decoder.Strict = false
	decoder.AutoClose = xml.HTMLAutoClose
	decoder.Entity = xml.HTMLEntity

	lex := &Lexicon{
		LexicalEntries: make(map[string]*LexicalEntry),
		Senses:         make(map[string]*Sense),
		Synsets:        make(map[string]*Synset),
	}
	var counts Counts

	var preview []string
	foundLexicalResource := false
	foundLexicon := false
	inLexicalResource := false
	entryCount, synsetCount := 0, 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, Counts{}, fmt.Errorf("%w: %v", ErrParseFailed, err)
		}

		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Counts{}, fmt.Errorf("%w: decode token: %v", ErrParseFailed, err)
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			if end, ok := tok.(xml.EndElement); ok && end.Name.Local == "LexicalResource" {
				inLexicalResource = false
			}
			continue
		}

		if len(preview) < 10 {
			preview = append(preview, previewElement(se))
		}

		switch se.Name.Local {
		case "LexicalResource":
			foundLexicalResource = true
			inLexicalResource = true

		case "Lexicon":
			if !inLexicalResource {
				continue
			}
			foundLexicon = true
			log.Debug("processing lexicon",
				slog.String("id", attrValue(se, "id")),
				slog.String("language", attrValue(se, "language")))

		case "LexicalEntry":
			if !inLexicalResource {
				continue
			}
			var xe xmlLexicalEntry
			if err := decoder.DecodeElement(&xe, &se); err != nil {
				return nil, Counts{}, fmt.Errorf("%w: LexicalEntry: %v", ErrParseFailed, err)
			}
			if err := addLexicalEntry(lex, &xe, &counts); err != nil {
				return nil, Counts{}, err
			}
			entryCount++
			if entryCount%5000 == 0 {
				log.Debug("parsing progress", slog.Int("lexical_entries", entryCount))
			}

		case "Synset":
			if !inLexicalResource {
				continue
			}
			var xs xmlSynset
			if err := decoder.DecodeElement(&xs, &se); err != nil {
				return nil, Counts{}, fmt.Errorf("%w: Synset: %v", ErrParseFailed, err)
			}
			if err := addSynset(lex, &xs, &counts); err != nil {
				return nil, Counts{}, err
			}
			synsetCount++
			if synsetCount%10000 == 0 {
				log.Debug("parsing progress", slog.Int("synsets", synsetCount))
			}
		}
	}

	if !foundLexicalResource || !foundLexicon {
		log.Debug("no LexicalResource/Lexicon found, document structure preview", slog.Any("elements", preview))
	}

	log.Info("parse complete",
		slog.Int("lexical_entries", counts.LexicalEntries),
		slog.Int("senses", counts.Senses),
		slog.Int("synsets", counts.Synsets),
		slog.Int("synset_relations", counts.SynsetRelations),
		slog.Int("sense_relations", counts.SenseRelations))

	return lex, counts, nil
}

func addLexicalEntry(lex *Lexicon, xe *xmlLexicalEntry, counts *Counts) error {
	if xe.ID == "" {
		return fmt.Errorf("%w: LexicalEntry missing id", ErrParseFailed)
	}

	entry := &LexicalEntry{
		ID: xe.ID,
		Lemma: Lemma{
			WrittenForm:  xe.Lemma.WrittenForm,
			PartOfSpeech: xe.Lemma.PartOfSpeech,
		},
	}

	for _, xs := range xe.Senses {
		if xs.ID == "" {
			return fmt.Errorf("%w: Sense missing id (entry %s)", ErrParseFailed, xe.ID)
		}
		if xs.SynsetID == "" {
			return fmt.Errorf("%w: Sense missing synset (sense %s)", ErrParseFailed, xs.ID)
		}

		sense := &Sense{ID: xs.ID, SynsetID: xs.SynsetID}
		for _, r := range xs.Relations {
			if r.RelType == "" || r.Target == "" {
				return fmt.Errorf("%w: SenseRelation missing relType/target (sense %s)", ErrParseFailed, xs.ID)
			}
			sense.Relations = append(sense.Relations, SenseRelation{RelType: r.RelType, Target: r.Target})
			counts.SenseRelations++
		}
		sense.Examples = collectText(xs.SenseExamples, xs.Examples)

		entry.Senses = append(entry.Senses, xs.ID)
		lex.Senses[xs.ID] = sense
		counts.Senses++
	}

	if strings.TrimSpace(entry.Lemma.WrittenForm) == "" {
		return nil
	}

	lex.LexicalEntries[entry.ID] = entry
	counts.LexicalEntries++
	return nil
}

func addSynset(lex *Lexicon, xs *xmlSynset, counts *Counts) error {
	if xs.ID == "" {
		return fmt.Errorf("%w: Synset missing id", ErrParseFailed)
	}

	var members []string
	if xs.MembersRaw != "" {
		members = strings.Fields(xs.MembersRaw)
	}

	def := strings.TrimSpace(xs.Definition.Text)
	if def == "" {
		def = strings.TrimSpace(xs.ILIDefinition.Text)
	}

	synset := &Synset{
		ID:           xs.ID,
		ILI:          xs.ILI,
		PartOfSpeech: xs.PartOfSpeech,
		Definition:   def,
		Members:      members,
	}

	for _, ex := range xs.Examples {
		if t := strings.TrimSpace(ex.Text); t != "" {
			synset.Examples = append(synset.Examples, t)
		}
	}

	for _, r := range xs.Relations {
		if r.RelType == "" || r.Target == "" {
			return fmt.Errorf("%w: SynsetRelation missing relType/target (synset %s)", ErrParseFailed, xs.ID)
		}
		synset.Relations = append(synset.Relations, SynsetRelation{RelType: r.RelType, Target: r.Target})
		counts.SynsetRelations++
	}

	lex.Synsets[xs.ID] = synset
	counts.Synsets++
	return nil
}

func collectText(groups ...[]xmlText) []string {
	var out []string
	for _, group := range groups {
		for _, t := range group {
			if trimmed := strings.TrimSpace(t.Text); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}

func attrValue(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return "unknown"
}

func previewElement(se xml.StartElement) string {
	var b strings.Builder
	b.WriteString(se.Name.Local)
	for _, a := range se.Attr {
		fmt.Fprintf(&b, " %s=%q", a.Name.Local, a.Value)
	}
	return b.String()
}
