package nlp

import (
	"testing"

	"github.com/briefops/intelbrief/internal/model"
)

func testThemes() []model.Theme {
	return []model.Theme{
		{Name: "Semiconductors", Keywords: []string{"CHIPS Act", "semiconductor"}},
		{Name: "Universities", Keywords: []string{"University", "research grant"}},
	}
}

func testClassifier() *Classifier {
	themes := testThemes()
	return NewClassifier(themes, model.KeywordUniverse(themes))
}

func article(title, body string) model.Article {
	return model.Article{Title: title, Link: "https://example.org/" + title, Body: body, Region: "Uncategorized"}
}

func TestClassify_ArticleInBothThemes(t *testing.T) {
	c := testClassifier()
	out := c.Classify([]model.Article{
		article("both", "The CHIPS Act funds a new University program."),
	})

	if len(out.Relevant) != 1 {
		t.Fatalf("expected 1 relevant article, got %d", len(out.Relevant))
	}
	for _, name := range []string{"Semiconductors", "Universities"} {
		set, ok := out.Themes[name]
		if !ok {
			t.Fatalf("expected theme %q in output", name)
		}
		if len(set.Articles) != 1 {
			t.Errorf("theme %q: expected 1 article, got %d", name, len(set.Articles))
		}
	}

	// Membership list carries both themes regardless of subset.
	got := out.Themes["Semiconductors"].Articles[0].Themes
	if len(got) != 2 {
		t.Errorf("expected 2 memberships, got %v", got)
	}
}

func TestClassify_UniverseMatchWithoutTheme(t *testing.T) {
	themes := []model.Theme{
		{Name: "Semiconductors", Keywords: []string{"CHIPS Act"}},
	}
	universe := []string{"CHIPS Act", "quantum"}
	c := NewClassifier(themes, universe)

	out := c.Classify([]model.Article{
		article("quantum", "A breakthrough in quantum computing hardware."),
	})

	if len(out.Relevant) != 1 {
		t.Fatalf("expected article in relevant set, got %d", len(out.Relevant))
	}
	if len(out.Relevant[0].Themes) != 0 {
		t.Errorf("expected no memberships, got %v", out.Relevant[0].Themes)
	}
	if len(out.Themes) != 0 {
		t.Errorf("expected no theme subsets, got %v", out.Themes)
	}
}

func TestClassify_NoUniverseMatchDropped(t *testing.T) {
	c := testClassifier()
	out := c.Classify([]model.Article{
		article("off-topic", "Local sports team wins the championship."),
	})

	if len(out.Relevant) != 0 || len(out.Themes) != 0 {
		t.Errorf("expected empty classification, got %+v", out)
	}
}

func TestClassify_WholeWordSemantics(t *testing.T) {
	themes := []model.Theme{{Name: "Policy", Keywords: []string{"EDA"}}}
	c := NewClassifier(themes, []string{"EDA"})

	// "leader" contains "eda" as a substring but not as a word.
	out := c.Classify([]model.Article{
		article("substring", "The team leader announced a new initiative."),
	})
	if len(out.Relevant) != 0 {
		t.Errorf("substring match should not pass the whole-word gate")
	}

	out = c.Classify([]model.Article{
		article("word", "The EDA announced a new initiative."),
	})
	if len(out.Relevant) != 1 {
		t.Errorf("whole-word match should pass the gate")
	}
}

func TestClassify_EmptyThemesOmitted(t *testing.T) {
	c := testClassifier()
	out := c.Classify([]model.Article{
		article("semis", "New semiconductor fab announced in Ohio."),
	})

	if _, ok := out.Themes["Universities"]; ok {
		t.Error("theme with zero matches should be omitted")
	}
	if _, ok := out.Themes["Semiconductors"]; !ok {
		t.Error("matched theme missing from output")
	}
}

func TestClassify_EmptyInput(t *testing.T) {
	out := testClassifier().Classify(nil)
	if len(out.Relevant) != 0 || len(out.Themes) != 0 {
		t.Errorf("expected empty result for empty input")
	}
}
