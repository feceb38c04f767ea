// Package delivery sends the finished report to its sinks. Sinks report
// their outcome as human-readable status strings rather than errors: a failed
// delivery is logged, never fatal to the run.
package delivery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sink delivers one finished report.
type Sink interface {
	// Name identifies the sink in logs.
	Name() string

	// Deliver sends the report and describes the outcome.
	Deliver(ctx context.Context, title, content string) string
}

// DocumentSink writes the report as a shareable markdown document.
type DocumentSink struct {
	outputDir string
	now       func() time.Time
}

// NewDocumentSink creates a document sink writing into outputDir.
func NewDocumentSink(outputDir string) *DocumentSink {
	return &DocumentSink{outputDir: outputDir, now: time.Now}
}

// Name implements Sink.
func (s *DocumentSink) Name() string { return "document" }

// Deliver writes the document and returns its path, or a failure description.
func (s *DocumentSink) Deliver(_ context.Context, title, content string) string {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Sprintf("Failed to create the document: %v", err)
	}

	path := filepath.Join(s.outputDir, documentName(title, s.now()))
	body := fmt.Sprintf("# %s\n\n%s", title, content)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Sprintf("Failed to create the document: %v", err)
	}

	return fmt.Sprintf("Success! Created document: %s", path)
}

// documentName slugifies the title into a dated file name.
func documentName(title string, now time.Time) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, title)
	slug = strings.Trim(strings.Join(strings.FieldsFunc(slug, func(r rune) bool { return r == '-' }), "-"), "-")
	if len(slug) > 60 {
		slug = slug[:60]
	}
	return fmt.Sprintf("%s-%s.md", now.UTC().Format("2006-01-02"), slug)
}
