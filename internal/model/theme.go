package model

// Theme is a named, keyword-defined topical bucket. Themes are static
// configuration: loaded once per run and never mutated.
type Theme struct {
	Name     string   `json:"name" yaml:"name"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// DefaultThemes returns the built-in theme table. A config file can replace
// it wholesale; there is no merging.
func DefaultThemes() []Theme {
	return []Theme{
		{
			Name: "Federal Science & Tech Policy",
			Keywords: []string{
				"NSF Recompete Pilot Program", "Economic Development Agency", "EDA",
				"CHIPS Act", "AI Legislation", "Federal AI Legislation", "EDA's Impact Newsletter",
			},
		},
		{
			Name:     "Semiconductor Industry & Supply Chain",
			Keywords: []string{"Semiconductors", "CHIPS Act"},
		},
		{
			Name: "University Research & Innovation",
			Keywords: []string{
				"University", "research", "Research Expenditures", "Research Grant/Award", "HBCUs", "College",
			},
		},
		{
			Name: "Regional Tech Hubs & Economic Impact",
			Keywords: []string{
				"Pittsburgh", "Nashville", "Georgia", "Texas", "Tech Hub", "Economic Impact",
			},
		},
	}
}

// KeywordUniverse flattens the keyword sets of all themes into one list,
// preserving order and dropping duplicates.
func KeywordUniverse(themes []Theme) []string {
	seen := make(map[string]bool)
	var universe []string
	for _, theme := range themes {
		for _, kw := range theme.Keywords {
			if seen[kw] {
				continue
			}
			seen[kw] = true
			universe = append(universe, kw)
		}
	}
	return universe
}
