package mcpserver

import (
	"fmt"
	"strings"

	"github.com/starford/kbase/internal/quality"
)

const checklistIntro = `# Knowledgebase Entry Checklist

Every entry is a Markdown file with a frontmatter block:

` + "```" + `markdown
---
title: Attention for practitioners   # REQUIRED
summary: One sentence on the value    # REQUIRED
level: beginner                       # beginner | intermediate | advanced
minutes: 8                            # reading time
tags: [nlp, transformers]
date: 2025-01-15
status: draft                         # draft | published
category: Models
related: [embeddings]
---
` + "```" + `

Entries are scored against the checks below. Automated checks are decided
from the text; manual checks always count as passed and need a human
reviewer. The score is the rounded percentage of passed checks.
`

// ChecklistMarkdown renders the checklist grouped by category.
func ChecklistMarkdown() string {
	var b strings.Builder
	b.WriteString(checklistIntro)
	current := ""
	for _, item := range quality.Checklist() {
		if item.Category != current {
			current = item.Category
			fmt.Fprintf(&b, "\n## %s\n\n", current)
		}
		manual := ""
		if item.Kind == quality.ManualReview {
			manual = " _(manual)_"
		}
		fmt.Fprintf(&b, "- **%s** %s%s. %s.\n", item.ID, item.Description, manual, item.Suggestion)
	}
	return b.String()
}
