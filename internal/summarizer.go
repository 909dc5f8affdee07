package internal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// UnknownProject is the group name for pages without a project-name tag.
const UnknownProject = "Unknown Project"

const summarizeInstructions = `Transform these work items into professional bullet points. Expand each item into a detailed accomplishment:

Example:
Input: "fixed bug in rent flow"
Output: "- Resolved critical bug in rental payment processing system, ensuring smooth transaction flow and improved user experience"

Input: "small ui glitch gone"
Output: "- Fixed minor UI rendering issue that was causing visual inconsistencies, enhancing overall user interface quality"

Input: "retry job half done"
Output: "- Implemented robust retry mechanism for failed background jobs, improving system reliability and error handling"

Now transform these work items:`

// Summarizer turns a standup document into per-project narratives using a
// text-generation collaborator.
type Summarizer struct {
	generator Generator
	model     string
}

// NewSummarizer creates a Summarizer. The model name is only recorded in the
// output document.
func NewSummarizer(generator Generator, model string) *Summarizer {
	return &Summarizer{
		generator: generator,
		model:     model,
	}
}

// GroupByProject buckets pages by their project-name tag. The returned order
// slice lists group names by first appearance, so iteration is stable.
func GroupByProject(pages []Page) (map[string][]Page, []string) {
	groups := make(map[string][]Page)
	var order []string
	for _, page := range pages {
		name := page.ProjectName
		if name == "" {
			name = UnknownProject
		}
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], page)
	}
	return groups, order
}

// Summarize generates one narrative per project group. A generation failure
// marks that group in Errors and the remaining groups still run; the method
// itself never fails.
func (s *Summarizer) Summarize(ctx context.Context, doc *StandupDocument) *SummaryDocument {
	groups, order := GroupByProject(doc.Pages)

	out := &SummaryDocument{
		RunID:       doc.RunID,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Model:       s.model,
		Summaries:   make(map[string]string),
	}

	for i, name := range order {
		LogInfo("Summarizing project %d/%d: %s", i+1, len(order), name)

		prompt := summarizeInstructions + "\n\n" + groupContext(name, groups[name])
		text, err := s.generator.Generate(ctx, prompt)
		if err != nil {
			genErr := &GenerationError{Project: name, Err: err}
			LogError("%v", genErr)
			if out.Errors == nil {
				out.Errors = make(map[string]string)
			}
			out.Errors[name] = err.Error()
			continue
		}

		out.Summaries[name] = strings.TrimSpace(text)
	}

	return out
}

// groupContext concatenates a group's titles and flattened block text into
// the context blob fed to the model.
func groupContext(project string, pages []Page) string {
	var items []string
	for _, page := range pages {
		if page.Title != "" {
			items = append(items, page.Title)
		}
		items = append(items, page.Contents()...)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Project: %s\nWork completed:\n", project)
	for _, item := range items {
		fmt.Fprintf(&b, "- %s\n", item)
	}
	return strings.TrimRight(b.String(), "\n")
}
