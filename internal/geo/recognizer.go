package geo

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// Entity labels the resolver cares about.
const (
	LabelGPE          = "GPE"
	LabelOrganization = "ORG"
	LabelPerson       = "PERSON"
	LabelProduct      = "PRODUCT"
	LabelWorkOfArt    = "WORK_OF_ART"
)

// Entity is one recognized geopolitical span. ContextLabels carries the
// labels of surrounding entities the span is embedded in, so the resolver can
// reject place names inside proper-noun phrases ("Paris Hilton", "Bank of
// America").
type Entity struct {
	Text          string
	Label         string
	ContextLabels []string
}

// Recognizer extracts geopolitical-entity spans from text. Implementations
// must degrade gracefully: an error means the caller falls back to the
// default region.
type Recognizer interface {
	Entities(text string) ([]Entity, error)
}

// ProseRecognizer is the default Recognizer, backed by the prose NLP library.
type ProseRecognizer struct{}

// NewProseRecognizer creates the default recognizer.
func NewProseRecognizer() *ProseRecognizer {
	return &ProseRecognizer{}
}

// Entities runs NER over the text and returns GPE spans. The prose model
// labels persons and geopolitical entities; a GPE whose text is contained in
// a longer non-GPE entity inherits that entity's label as context.
func (r *ProseRecognizer) Entities(text string) ([]Entity, error) {
	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, err
	}

	all := doc.Entities()

	var entities []Entity
	for _, ent := range all {
		if ent.Label != LabelGPE {
			continue
		}

		entity := Entity{Text: ent.Text, Label: ent.Label}
		for _, other := range all {
			if other.Label == LabelGPE {
				continue
			}
			if len(other.Text) > len(ent.Text) && containsWord(other.Text, ent.Text) {
				entity.ContextLabels = append(entity.ContextLabels, other.Label)
			}
		}
		entities = append(entities, entity)
	}

	return entities, nil
}

// containsWord reports whether haystack contains needle as a whole token.
func containsWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for idx := 0; idx < len(haystack); {
		pos := strings.Index(haystack[idx:], needle)
		if pos < 0 {
			return false
		}
		pos += idx
		end := pos + len(needle)
		before := pos == 0 || haystack[pos-1] == ' '
		after := end == len(haystack) || haystack[end] == ' '
		if before && after {
			return true
		}
		idx = pos + 1
	}
	return false
}
