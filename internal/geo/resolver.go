package geo

import (
	"strings"
)

// DefaultRegion is the explicit default for articles with no resolvable
// location. It is always set; an article never carries an absent region.
const DefaultRegion = "Uncategorized"

// vagueTerms are spans too generic to be a useful location signal.
var vagueTerms = map[string]bool{
	"territory": true,
	"region":    true,
	"province":  true,
	"district":  true,
	"area":      true,
	"zone":      true,
	"north":     true,
	"south":     true,
	"east":      true,
	"west":      true,
}

// foreignMarkers disqualify spans that name non-US geographies.
var foreignMarkers = []string{
	"australia", "india", "china", "europe", "asia", "africa",
}

// disqualifyingContext rejects spans embedded in organization, product,
// person or work-of-art names.
var disqualifyingContext = map[string]bool{
	LabelOrganization: true,
	LabelProduct:      true,
	LabelPerson:       true,
	LabelWorkOfArt:    true,
}

// Resolver maps article text to a metro region.
type Resolver struct {
	recognizer Recognizer
	table      *Table
	maxPrefix  int
	minScore   int
}

// NewResolver creates a resolver over the given recognizer and city table.
func NewResolver(recognizer Recognizer, table *Table, maxPrefix, minScore int) *Resolver {
	if maxPrefix <= 0 {
		maxPrefix = 5000
	}
	if minScore <= 0 {
		minScore = 70
	}
	return &Resolver{
		recognizer: recognizer,
		table:      table,
		maxPrefix:  maxPrefix,
		minScore:   minScore,
	}
}

// Resolve extracts geopolitical spans from the text and returns the metro
// region of the first span that passes every filter and fuzzy-matches a known
// city. Recognition errors and misses all degrade to DefaultRegion; the
// result is deterministic for a given text.
func (r *Resolver) Resolve(text string) string {
	if r.table == nil || r.table.Len() == 0 || text == "" {
		return DefaultRegion
	}

	// Bounded prefix keeps NER cost flat for very long bodies.
	if len(text) > r.maxPrefix {
		text = text[:r.maxPrefix]
	}

	entities, err := r.recognizer.Entities(text)
	if err != nil {
		return DefaultRegion
	}

	for _, ent := range entities {
		span := strings.TrimSpace(ent.Text)

		if len(span) < 4 || vagueTerms[strings.ToLower(span)] {
			continue
		}
		if hasForeignMarker(span) {
			continue
		}
		if hasDisqualifyingContext(ent.ContextLabels) {
			continue
		}

		city, _, ok := BestMatch(span, r.table.Cities(), r.minScore)
		if !ok {
			continue
		}
		if msa, found := r.table.MSA(city); found {
			return msa
		}
	}

	return DefaultRegion
}

func hasForeignMarker(span string) bool {
	lower := strings.ToLower(span)
	for _, marker := range foreignMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func hasDisqualifyingContext(labels []string) bool {
	for _, label := range labels {
		if disqualifyingContext[label] {
			return true
		}
	}
	return false
}
