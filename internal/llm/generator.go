// Package llm generates the per-theme intelligence briefings. When no API
// key is configured or the API call fails, generation degrades to a templated
// summary instead of failing the run.
package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/briefops/intelbrief/internal/model"
	"github.com/briefops/intelbrief/internal/nlp"
)

const systemPrompt = "You are a policy analyst specializing in U.S. science and technology policy. " +
	"Your focus is on federal R&D funding, legislation, and its impact on universities, " +
	"colleges, and regional economic development."

// promptArticleCap bounds how many articles feed one briefing prompt.
const promptArticleCap = 5

// Generator writes one briefing per theme.
type Generator struct {
	client *openai.Client // nil when disabled
	cfg    model.LLMConfig
}

// NewGenerator creates a generator. An empty API key leaves the client nil;
// every briefing then uses the templated fallback.
func NewGenerator(cfg model.LLMConfig) *Generator {
	g := &Generator{cfg: cfg}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "Warning: no LLM API key configured; using templated summaries")
		return g
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	g.client = openai.NewClientWithConfig(clientConfig)

	return g
}

// ThemeBriefing synthesizes the theme's article subset into a short
// intelligence briefing. API errors degrade to the templated summary with a
// note, mirroring the behavior when the client is disabled.
func (g *Generator) ThemeBriefing(ctx context.Context, theme nlp.ThemeSet) string {
	if len(theme.Articles) == 0 {
		return "No articles were found for this theme."
	}
	if g.client == nil {
		return g.templatedSummary(theme)
	}

	if g.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.modelName(),
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildPrompt(theme)},
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: briefing generation failed: %v\n", err)
		return "LLM analysis failed due to an API error. Falling back to a basic summary:\n" +
			g.templatedSummary(theme)
	}
	if len(resp.Choices) == 0 {
		return g.templatedSummary(theme)
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content)
}

func (g *Generator) modelName() string {
	if g.cfg.Model != "" {
		return g.cfg.Model
	}
	return openai.GPT4oMini
}

// buildPrompt condenses the top articles into the analysis prompt.
func buildPrompt(theme nlp.ThemeSet) string {
	var articles strings.Builder
	for i, a := range theme.Articles {
		if i >= promptArticleCap {
			break
		}
		articles.WriteString(fmt.Sprintf("- Title: %s\n", a.Title))
		articles.WriteString(fmt.Sprintf("  Summary: %s...\n\n", truncate(a.Body, 250)))
	}

	return fmt.Sprintf(`Analyze the following articles related to the theme %q.

Articles:
%s
Synthesize the key information into a concise intelligence briefing. Follow these instructions strictly:
1. Identify the core government action or policy trend (e.g., new legislation, grant program, or federal initiative).
2. Explain the direct impact on universities, research institutions, or regional tech hubs.
3. Mention any specific states, organizations, or funding amounts if available.
4. Summarize your analysis into 3-4 clear, distinct bullet points.
5. Each bullet point must be a single, direct sentence.`,
		strings.Join(theme.Keywords, ", "), articles.String())
}

// templatedSummary is the non-LLM fallback.
func (g *Generator) templatedSummary(theme nlp.ThemeSet) string {
	var b strings.Builder

	lead := ""
	if len(theme.Keywords) > 0 {
		lead = theme.Keywords[0]
	}
	b.WriteString(fmt.Sprintf("This analysis covers %d articles related to '%s'.\n", len(theme.Articles), lead))
	b.WriteString("Key developments appear in the following articles:\n")

	for i, a := range theme.Articles {
		if i >= 3 {
			break
		}
		b.WriteString(fmt.Sprintf("- %s\n", a.Title))
	}

	b.WriteString("\nThese articles suggest notable activity regarding federal policy and its effects on research and academic institutions.")

	return b.String()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
