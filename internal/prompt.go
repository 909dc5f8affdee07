package internal

import (
	"fmt"
	"strings"
)

const promptPreamble = `Complete the following work items into proper sentences.
Keep ticket numbers at the beginning.
Do not add extra details.
Do NOT add credentials, API keys, passwords, or sensitive environment values or any URLs.

Format the output as a single string with bullet points separated by newlines.
Each bullet point should start with a dash (-)

Now summarize the following standup data:`

const promptFooter = `Response Format:
The response should be in text with bullet points organized by project.

Format for each project:
<Project Name>

- Point 1 describing the work accomplished
- Point 2 describing the work accomplished
- Point 3 describing the work accomplished

Example output:

TenantPay

- Resolved critical bug in rental payment processing system
- Implemented robust error handling for transaction failures
- Optimized database queries for improved performance

Gigworks

- Fixed UI rendering issue affecting user interface
- Added comprehensive filtering mechanism for data tables
- Conducted thorough testing of new feature implementation`

// BuildPrompt assembles the paste-ready prompt: fixed preamble, serialized
// standup data grouped by project, fixed response-format footer. Purely
// deterministic; an empty document still yields the preamble and footer.
func BuildPrompt(doc *StandupDocument) string {
	return promptPreamble + "\n\n" + formatStandupData(doc.Pages) + "\n\n" + promptFooter
}

// formatStandupData renders each project group as a "Project / Work
// completed" section, separated by horizontal rules.
func formatStandupData(pages []Page) string {
	groups, order := GroupByProject(pages)

	sections := make([]string, 0, len(order))
	for _, name := range order {
		var b strings.Builder
		fmt.Fprintf(&b, "Project: %s\nWork completed:\n", name)
		for _, page := range groups[name] {
			if page.Title != "" {
				fmt.Fprintf(&b, "- %s\n", page.Title)
			}
			for _, item := range page.Contents() {
				fmt.Fprintf(&b, "- %s\n", item)
			}
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}

	return strings.Join(sections, "\n\n---\n\n")
}
