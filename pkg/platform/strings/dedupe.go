// Package strings provides string helpers shared by the registration and
// venue forms.
package strings

import (
	"strings"
)

// ChoiceSeparator separates the options of a multiple-choice question when
// they are submitted as one string.
const ChoiceSeparator = "//"

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
//	DedupeAndTrim([]string{"  Yes ", "No", "Yes", "", "  "})
//	// []string{"Yes", "No"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// SplitChoices splits a raw choices string on ChoiceSeparator and cleans
// the result with DedupeAndTrim.
func SplitChoices(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return DedupeAndTrim(strings.Split(raw, ChoiceSeparator))
}

// JoinNonEmpty joins the non-blank values with sep.
func JoinNonEmpty(values []string, sep string) string {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			kept = append(kept, v)
		}
	}
	return strings.Join(kept, sep)
}
