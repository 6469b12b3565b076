package quality

import (
	"strings"

	"github.com/starford/kbase/internal/models"
)

// subject is what every rule sees: the entry metadata and its body features.
type subject struct {
	meta models.Metadata
	f    *Features
}

// rule is one checklist item. Manual rules have no predicate.
type rule struct {
	id          string
	category    string
	description string
	suggestion  string
	eval        func(s *subject) (bool, string)
}

func (r rule) manual() bool { return r.eval == nil }

// checklist is the fixed battery, in report order.
var checklist = []rule{
	// Intent & Audience
	{
		id: "1.1", category: CategoryIntent,
		description: "Title clearly states what and who it's for",
		suggestion:  "Ensure title clearly describes the topic and target audience",
		eval: func(s *subject) (bool, string) {
			n := length(s.meta.Title)
			ok := n > 10 && !strings.Contains(strings.ToLower(s.meta.Title), "untitled")
			if n <= 10 {
				return ok, "Title is too short"
			}
			return ok, ""
		},
	},
	{
		id: "1.2", category: CategoryIntent,
		description: "Summary explains the value in one sentence",
		suggestion:  "Summary should be one clear sentence explaining the value",
		eval: func(s *subject) (bool, string) {
			n := length(s.meta.Summary)
			ok := n > 20 && n < 200 && !strings.Contains(s.meta.Summary, "..")
			switch {
			case n < 20:
				return ok, "Summary is too short"
			case n > 200:
				return ok, "Summary is too long"
			}
			return ok, ""
		},
	},
	{
		id: "1.3", category: CategoryIntent,
		description: "Audience or prerequisites explicitly stated",
		suggestion:  "Add prerequisites field or mention target audience in content",
		eval: func(s *subject) (bool, string) {
			return len(s.meta.Prerequisites) > 0 ||
				s.f.Mentions("prerequisite", "audience", "who should") ||
				(s.f.Mentions("for ") && s.f.Mentions("who")), ""
		},
	},
	{
		id: "1.4", category: CategoryIntent,
		description: "Level matches actual complexity (not aspirational)",
		suggestion:  "Verify that the level accurately reflects the content complexity",
	},

	// Scope & Boundaries
	{
		id: "2.1", category: CategoryScope,
		description: "Opening defines what the concept is",
		suggestion:  `Start with a clear definition: "X is..." or "X refers to..."`,
		eval: func(s *subject) (bool, string) {
			p := s.f.FirstParagraph
			ok := length(p) > 50 && containsAny(strings.ToLower(p), "is ", "are ", "means ", "refers to")
			switch {
			case ok:
				return true, ""
			case length(p) < 50:
				return false, "Opening is too short"
			}
			return false, "Opening may not clearly define the concept"
		},
	},
	{
		id: "2.2", category: CategoryScope,
		description: "Opening briefly states what it is not",
		suggestion:  "Consider clarifying what the concept is NOT to set boundaries",
		eval: func(s *subject) (bool, string) {
			return s.f.Mentions("not ") &&
				s.f.Mentions("not the same", "not to be confused", "different from", "unlike"), ""
		},
	},
	{
		id: "2.3", category: CategoryScope,
		description: "Mental models are labeled as abstractions",
		suggestion:  `When using analogies, label them explicitly (e.g., "Think of it as...")`,
		eval: func(s *subject) (bool, string) {
			return !s.f.Mentions("think of it as") ||
				s.f.Mentions("analogy", "metaphor", "simplified"), ""
		},
	},
	{
		id: "2.4", category: CategoryScope,
		description: "Article avoids drifting into adjacent topics",
		suggestion:  "Ensure the article stays focused on the main topic",
	},

	// Structure & Flow
	{
		id: "3.1", category: CategoryStructure,
		description: "Clear conceptual explanation before details",
		suggestion:  "Start with conceptual overview before diving into details",
		eval: func(s *subject) (bool, string) {
			h := s.f.Headings
			return len(h) >= 2 &&
				containsAny(strings.ToLower(h[0]), "what", "introduction", "overview", "core"), ""
		},
	},
	{
		id: "3.2", category: CategoryStructure,
		description: "Sections follow a consistent order",
		suggestion:  "Use consistent section ordering across entries",
		eval: func(s *subject) (bool, string) {
			if len(s.f.Headings) < 3 {
				return false, "Article may lack structure"
			}
			return true, ""
		},
	},
	{
		id: "3.3", category: CategoryStructure,
		description: "Headings are descriptive, not clever",
		suggestion:  "Use clear, descriptive headings that state what the section covers",
		eval: func(s *subject) (bool, string) {
			for _, h := range s.f.Headings {
				if length(h) > 50 || strings.ContainsAny(h, "?!") {
					return false, ""
				}
			}
			return true, ""
		},
	},
	{
		id: "3.4", category: CategoryStructure,
		description: "Ending reinforces the core idea without adding new ones",
		suggestion:  "End with a clear takeaway that reinforces the main concept",
		eval: func(s *subject) (bool, string) {
			return s.f.Mentions("takeaway", "summary", "remember", "key point"), ""
		},
	},

	// Concept Connections
	{
		id: "4.1", category: CategoryConnections,
		description: "Key terms are linked to other entries",
		suggestion:  "Link key terms to related entries using markdown links",
		eval: func(s *subject) (bool, string) {
			if len(s.f.Links) == 0 {
				return false, "No internal links found"
			}
			return true, ""
		},
	},
	{
		id: "4.2", category: CategoryConnections,
		description: "Related concepts are acknowledged (even if deferred)",
		suggestion:  "Acknowledge related concepts or use the related field in frontmatter",
		eval: func(s *subject) (bool, string) {
			return len(s.meta.Related) > 0 || s.f.Mentions("related", "see also", "similar"), ""
		},
	},
	{
		id: "4.3", category: CategoryConnections,
		description: `"Related concepts" section exists or is planned`,
		suggestion:  `Add a "Related concepts" section or populate the related field`,
		eval: func(s *subject) (bool, string) {
			return len(s.meta.Related) > 0 || s.f.HeadingMentions("related"), ""
		},
	},
	{
		id: "4.4", category: CategoryConnections,
		description: "No orphan concepts mentioned without context",
		suggestion:  "Ensure all mentioned concepts are either explained or linked",
	},

	// Technical Discipline
	{
		id: "5.1", category: CategoryTechnical,
		description: "Math is introduced only when necessary",
		suggestion:  "Only include math if it's essential to understanding",
		eval: func(s *subject) (bool, string) {
			if !s.f.HasMath {
				return true, ""
			}
			return s.f.Mentions("formula", "calculate", "mathematical"), "Math found - verify it's necessary"
		},
	},
	{
		id: "5.2", category: CategoryTechnical,
		description: "Each technical term is defined on first use",
		suggestion:  "Define technical terms when first introduced",
	},
	{
		id: "5.3", category: CategoryTechnical,
		description: "Formulas are explained conceptually, not just shown",
		suggestion:  "Always explain what formulas mean, not just show them",
		eval: func(s *subject) (bool, string) {
			if !s.f.HasFormulas {
				return true, ""
			}
			return s.f.Mentions("means", "represents", "explain"), "Verify formulas are explained"
		},
	},
	{
		id: "5.4", category: CategoryTechnical,
		description: "Warnings or limitations are stated where relevant",
		suggestion:  "Include warnings or limitations where applicable",
		eval: func(s *subject) (bool, string) {
			return s.f.Mentions("warning", "limitation", "pitfall", "common mistake", "caution"), ""
		},
	},

	// Practical Value
	{
		id: "6.1", category: CategoryPractical,
		description: "Includes real-world symptoms or failure modes",
		suggestion:  "Include real-world problems or failure modes",
		eval: func(s *subject) (bool, string) {
			return s.f.Mentions("mistake", "error", "problem", "issue", "pitfall"), ""
		},
	},
	{
		id: "6.2", category: CategoryPractical,
		description: "Fixes are actionable and concise",
		suggestion:  "Provide actionable, step-by-step guidance where applicable",
		eval: func(s *subject) (bool, string) {
			return s.f.Mentions("step", "how to", "solution") || s.f.HeadingMentions("how"), ""
		},
	},
	{
		// Counts raw hyphens anywhere in the body, so prose and code also match.
		id: "6.3", category: CategoryPractical,
		description: "Checklist or diagnostic guidance included where appropriate",
		suggestion:  "Consider adding checklists or diagnostic steps where helpful",
		eval: func(s *subject) (bool, string) {
			return strings.Count(s.f.lower, "-") >= 3 || s.f.Mentions("checklist"), ""
		},
	},
	{
		id: "6.4", category: CategoryPractical,
		description: "Advice aligns with how practitioners actually work",
		suggestion:  "Ensure advice matches real-world practice",
	},

	// Consistency & Trust Signals
	{
		id: "7.1", category: CategoryConsistency,
		description: "Tone matches other entries",
		suggestion:  "Maintain consistent tone across all entries",
	},
	{
		id: "7.2", category: CategoryConsistency,
		description: "Front matter fields are complete and accurate",
		suggestion:  "Ensure all required frontmatter fields are present",
		eval: func(s *subject) (bool, string) {
			missing := missingFields(s.meta)
			if len(missing) > 0 {
				return false, "Missing " + strings.Join(missing, ", ")
			}
			return true, ""
		},
	},
	{
		id: "7.3", category: CategoryConsistency,
		description: `Dates or "last updated" info present`,
		suggestion:  "Include date or lastUpdated field",
		eval: func(s *subject) (bool, string) {
			if s.meta.Date == "" && s.meta.LastUpdated == "" {
				return false, "No date information"
			}
			return true, ""
		},
	},
	{
		id: "7.4", category: CategoryConsistency,
		description: "No contradictions with existing entries",
		suggestion:  "Verify consistency with other entries",
	},

	// Future-Proofing
	{
		id: "8.1", category: CategoryFuture,
		description: "Entry can stand alone without external context",
		suggestion:  "Ensure entry is self-contained and understandable alone",
		eval: func(s *subject) (bool, string) {
			ok := s.f.WordCount > 200 && length(s.f.FirstParagraph) > 50
			if s.f.WordCount < 200 {
				return ok, "Content may be too brief"
			}
			return ok, ""
		},
	},
	{
		id: "8.2", category: CategoryFuture,
		description: "Easy to update without rewriting everything",
		suggestion:  "Use clear section structure for easy updates",
		eval: func(s *subject) (bool, string) {
			if len(s.f.Headings) < 3 {
				return false, "Structure may be too flat"
			}
			return true, ""
		},
	},
	{
		id: "8.3", category: CategoryFuture,
		description: "Leaves room for deeper follow-up entries",
		suggestion:  "Avoid covering everything - leave room for deeper dives",
	},
	{
		id: "8.4", category: CategoryFuture,
		description: "Does not rely on AI features to be useful",
		suggestion:  "Ensure content is valuable even without AI-powered features",
	},
}

func missingFields(m models.Metadata) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"title", m.Title},
		{"summary", m.Summary},
		{"level", string(m.Level)},
		{"date", m.Date},
		{"status", string(m.Status)},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}
