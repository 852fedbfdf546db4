// Package checklist renders the list of prompts a researcher pastes into
// each chat system, for the console and as a Markdown or HTML handout.
package checklist

import (
	"fmt"
	"io"
	"strings"

	"framebias/domain/experiment"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

const ruleWidth = 70

// Rule is the horizontal separator used in console output
var Rule = strings.Repeat("-", ruleWidth)

// Banner is the heavy separator around section titles
var Banner = strings.Repeat("=", ruleWidth)

// Entry is one numbered prompt to run
type Entry struct {
	Number       int
	HypothesisID string
	Description  string
	Condition    string
	Prompt       string
}

// PromptID is the "<hypothesis>_<condition>" tag shown to the researcher
func (e Entry) PromptID() string {
	return e.HypothesisID + "_" + e.Condition
}

// Entries numbers every (hypothesis, condition) prompt from 1 in file order
func Entries(exp *experiment.Experiment) []Entry {
	var out []Entry
	n := 0
	for _, h := range exp.Hypotheses() {
		for _, cond := range h.Prompts.Keys() {
			n++
			text, _ := h.Prompts.Get(cond)
			out = append(out, Entry{
				Number:       n,
				HypothesisID: h.ID,
				Description:  h.Description,
				Condition:    cond,
				Prompt:       text,
			})
		}
	}
	return out
}

// Plan describes how often each prompt is run per system
type Plan struct {
	Systems            []string
	ResponsesPerPrompt int
}

// Instruction is the "Test this with" line, e.g. "ChatGPT (2x), Claude (2x)"
func (p Plan) Instruction() string {
	parts := make([]string, len(p.Systems))
	for i, s := range p.Systems {
		parts[i] = fmt.Sprintf("%s (%dx)", s, p.ResponsesPerPrompt)
	}
	return strings.Join(parts, ", ")
}

// WriteConsole prints the checklist grouped by hypothesis
func WriteConsole(w io.Writer, entries []Entry, plan Plan) {
	current := ""
	for _, e := range entries {
		if e.HypothesisID != current {
			current = e.HypothesisID
			fmt.Fprintf(w, "\n### %s: %s ###\n", e.HypothesisID, e.Description)
		}
		fmt.Fprintf(w, "\nPrompt %d: %s\n", e.Number, e.PromptID())
		fmt.Fprintln(w, Rule)
		fmt.Fprintln(w, e.Prompt)
		fmt.Fprintln(w, Rule)
		fmt.Fprintf(w, "✅ Test this with: %s\n\n", plan.Instruction())
	}
}

// Markdown renders the checklist as a handout with one tick box per response
func Markdown(entries []Entry, plan Plan) string {
	var b strings.Builder
	b.WriteString("# Response collection checklist\n")

	current := ""
	for _, e := range entries {
		if e.HypothesisID != current {
			current = e.HypothesisID
			fmt.Fprintf(&b, "\n## %s: %s\n", e.HypothesisID, e.Description)
		}
		fmt.Fprintf(&b, "\n### Prompt %d: `%s`\n\n", e.Number, e.PromptID())
		b.WriteString("```text\n")
		b.WriteString(e.Prompt)
		b.WriteString("\n```\n\n")
		for _, s := range plan.Systems {
			for i := 1; i <= plan.ResponsesPerPrompt; i++ {
				fmt.Fprintf(&b, "- [ ] %s response %d\n", s, i)
			}
		}
	}
	return b.String()
}

// HTML renders the Markdown handout as a standalone page
func HTML(entries []Entry, plan Plan) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: "Response collection checklist",
	})
	return string(markdown.ToHTML([]byte(Markdown(entries, plan)), p, renderer))
}

// Render picks Markdown or HTML by file extension
func Render(path string, entries []Entry, plan Plan) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm") {
		return HTML(entries, plan)
	}
	return Markdown(entries, plan)
}
