package router

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/marcinkowskimikolaj/assetly/internal/assistant/taxonomy"
)

// interpretationPrompt builds the system prompt for the primary model call:
// the full taxonomy enumeration, the function whitelist, and the locally
// collected hints.
func interpretationPrompt(hints Hints) string {
	var b strings.Builder

	b.WriteString("You are a query router for a Polish household budget assistant.\n")
	b.WriteString("Interpret the user's question and output STRICT JSON only (no comments, no extra text).\n\n")

	b.WriteString("Output a single JSON object with these fields:\n")
	b.WriteString("- \"intent\": string, one-sentence summary of what the user asks\n")
	b.WriteString("- \"shape\": one of " + joinShapes() + "\n")
	b.WriteString("- \"route\": one of " + joinRoutes() + "\n")
	b.WriteString("- \"canonical_category\": string or null (one of the categories below)\n")
	b.WriteString("- \"canonical_subcategory\": string or null (must belong to the category)\n")
	b.WriteString("- \"period_from\", \"period_to\": \"YYYY-MM\" strings or null for no constraint\n")
	b.WriteString("- \"confidence\": number between 0 and 1\n")
	b.WriteString("- \"operations\": array of {\"function\", \"category\", \"subcategory\", \"period_from\", \"period_to\", \"limit\", \"period_a\", \"period_b\"}\n\n")

	b.WriteString("Use ONLY the following categories and subcategories:\n\n")
	for _, cat := range taxonomy.CategoryNames() {
		b.WriteString(cat + ":\n")
		subs := taxonomy.Subcategories(cat)
		if len(subs) == 0 {
			b.WriteString("  (no subcategories - use null)\n\n")
			continue
		}
		for _, s := range subs {
			b.WriteString("  - " + s + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Allowed operation functions: " + strings.Join(taxonomy.Functions, ", ") + "\n\n")

	b.WriteString("Hints from local analysis (advisory, not ground truth):\n")
	b.WriteString(fmt.Sprintf("- detected shape: %s\n", hints.Shape))
	for _, m := range hints.Synonyms.Subcategories {
		b.WriteString(fmt.Sprintf("- term %q suggests subcategory %q in category %q (confidence %.2f)\n",
			m.Term, m.OfficialName, m.Category, m.Confidence))
	}
	for _, m := range hints.Synonyms.Categories {
		b.WriteString(fmt.Sprintf("- term %q suggests category %q (confidence %.2f)\n",
			m.Term, m.OfficialName, m.Confidence))
	}
	if p := hints.Synonyms.Period; p != nil {
		b.WriteString(fmt.Sprintf("- detected period: %s to %s\n", p.From, p.To))
	}
	if hints.MultipleTopics {
		b.WriteString("- the question seems to touch multiple categories\n")
	}
	if hints.LooksGeneral {
		b.WriteString("- the question looks like a general one, not a numeric query\n")
	}

	b.WriteString("\nReturn ONLY valid raw JSON. Do NOT wrap the response in code fences.\n")
	b.WriteString("Output must begin with \"{\" and end with \"}\".\n")

	return b.String()
}

// repairPrompt builds the system prompt for the single corrective call made
// after a plan fails validation.
func repairPrompt(plan *taxonomy.Plan, validationErrors []string) string {
	var b strings.Builder

	b.WriteString("The routing plan below failed technical validation. Return a corrected plan\n")
	b.WriteString("as STRICT JSON with the same field layout. Fix ONLY the reported problems.\n\n")

	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err == nil {
		b.WriteString("Plan:\n")
		b.Write(planJSON)
		b.WriteString("\n\n")
	}

	b.WriteString("Validation errors:\n")
	for _, e := range validationErrors {
		b.WriteString("- " + e + "\n")
	}
	b.WriteString("\n")

	b.WriteString("Allowed routes: " + joinRoutes() + "\n")
	b.WriteString("Allowed shapes: " + joinShapes() + "\n")
	b.WriteString("Allowed functions: " + strings.Join(taxonomy.Functions, ", ") + "\n")
	b.WriteString("Allowed categories: " + strings.Join(taxonomy.CategoryNames(), ", ") + "\n\n")

	b.WriteString("Return ONLY valid raw JSON, beginning with \"{\" and ending with \"}\".\n")

	return b.String()
}

func joinRoutes() string {
	parts := make([]string, len(taxonomy.Routes))
	for i, r := range taxonomy.Routes {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}

func joinShapes() string {
	parts := make([]string, len(taxonomy.Shapes))
	for i, s := range taxonomy.Shapes {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
