// Package report assembles the per-theme briefings into one consolidated
// markdown document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/nlp"
)

// Section is one theme's finished briefing.
type Section struct {
	Theme    string
	Briefing string
}

// Report is the consolidated run output handed to the delivery sinks.
type Report struct {
	Title    string
	Sections []Section
}

// Title formats the dated report title.
func Title(now time.Time) string {
	return fmt.Sprintf("Consolidated R&D Intelligence Briefing — Week of %s", now.UTC().Format("2006-01-02"))
}

// Assemble builds sections in theme-table order from the classification
// output. Themes without articles produce no section.
func Assemble(now time.Time, themes []model.Theme, classified nlp.Classification, briefings map[string]string) *Report {
	r := &Report{Title: Title(now)}
	for _, theme := range themes {
		if _, ok := classified.Themes[theme.Name]; !ok {
			continue
		}
		briefing := briefings[theme.Name]
		if briefing == "" {
			continue
		}
		r.Sections = append(r.Sections, Section{Theme: theme.Name, Briefing: briefing})
	}
	return r
}

// Markdown renders the consolidated report body.
func (r *Report) Markdown() string {
	var b strings.Builder
	for _, section := range r.Sections {
		b.WriteString(fmt.Sprintf("## Intelligence Briefing: %s\n\n", section.Theme))
		b.WriteString(section.Briefing)
		b.WriteString("\n\n---\n\n")
	}
	return b.String()
}

// Empty reports whether there is anything to deliver.
func (r *Report) Empty() bool {
	return len(r.Sections) == 0
}
