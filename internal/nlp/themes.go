package nlp

import (
	"regexp"
	"strings"

	"github.com/briefops/intelbrief/internal/model"
)

// ThemeSet is one theme's slice of the classified output.
type ThemeSet struct {
	Keywords []string
	Articles []model.Article
}

// Classification is the result of routing articles to themes.
type Classification struct {
	// Relevant holds every article matching at least one keyword of the
	// universe, whether or not a specific theme claimed it.
	Relevant []model.Article

	// Themes maps theme name to its matched subset. Themes with no matching
	// articles are absent.
	Themes map[string]ThemeSet
}

// Classifier assigns articles to predefined themes by whole-word keyword
// matching. Matchers are compiled once at construction; classification itself
// is pure and read-only over the article set.
type Classifier struct {
	themes   []model.Theme
	universe []string
	matchers map[string]*regexp.Regexp // keyword -> word-boundary matcher
}

// NewClassifier compiles matchers for the theme table and the keyword
// universe.
func NewClassifier(themes []model.Theme, universe []string) *Classifier {
	c := &Classifier{
		themes:   themes,
		universe: universe,
		matchers: make(map[string]*regexp.Regexp),
	}
	for _, kw := range universe {
		c.compile(kw)
	}
	for _, theme := range themes {
		for _, kw := range theme.Keywords {
			c.compile(kw)
		}
	}
	return c
}

// compile builds the case-insensitive whole-word matcher for a keyword.
// Word boundaries keep short keywords honest: "EDA" must not match "leader".
func (c *Classifier) compile(keyword string) {
	if _, done := c.matchers[keyword]; done {
		return
	}
	pattern := `(?i)\b` + regexp.QuoteMeta(strings.ToLower(keyword)) + `\b`
	c.matchers[keyword] = regexp.MustCompile(pattern)
}

// Classify filters the article set down to those matching the keyword
// universe, then assigns the survivors to every theme whose keyword set they
// match. An article may appear under several themes; one matching the
// universe but no theme stays in Relevant with no memberships.
func (c *Classifier) Classify(articles []model.Article) Classification {
	out := Classification{Themes: make(map[string]ThemeSet)}
	if len(articles) == 0 {
		return out
	}

	var relevant []model.Article
	for _, a := range articles {
		if c.matchesAny(a.SearchText(), c.universe) {
			a.Themes = nil
			relevant = append(relevant, a)
		}
	}
	if len(relevant) == 0 {
		return out
	}

	// Memberships are settled for every article before theme subsets are
	// built, so each subset carries the article's full membership list.
	for i := range relevant {
		for _, theme := range c.themes {
			if c.matchesAny(relevant[i].SearchText(), theme.Keywords) {
				relevant[i].Themes = append(relevant[i].Themes, theme.Name)
			}
		}
	}

	for _, theme := range c.themes {
		var matched []model.Article
		for i := range relevant {
			if hasTheme(relevant[i].Themes, theme.Name) {
				matched = append(matched, relevant[i])
			}
		}
		if len(matched) > 0 {
			out.Themes[theme.Name] = ThemeSet{
				Keywords: theme.Keywords,
				Articles: matched,
			}
		}
	}

	out.Relevant = relevant
	return out
}

func hasTheme(themes []string, name string) bool {
	for _, t := range themes {
		if t == name {
			return true
		}
	}
	return false
}

// matchesAny reports whether any keyword appears as a whole word in text.
func (c *Classifier) matchesAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		matcher, ok := c.matchers[kw]
		if !ok {
			continue
		}
		if matcher.MatchString(text) {
			return true
		}
	}
	return false
}
