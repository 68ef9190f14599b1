package student

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NormalizeID returns the canonical form of a student ID: trimmed and upper-cased.
func NormalizeID(raw string) string {
	return cases.Upper(language.Und).String(strings.TrimSpace(raw))
}

// Search returns the students matching the filter, in their original order.
func Search(students []Student, filter QueryFilter) []Student {
	fold := cases.Fold()
	term := fold.String(strings.TrimSpace(filter.Search))

	res := make([]Student, 0, len(students))
	for _, std := range students {
		if filter.Form != nil && std.Form != *filter.Form {
			continue
		}
		if term != "" &&
			!strings.Contains(fold.String(std.ID), term) &&
			!strings.Contains(fold.String(std.Name), term) {
			continue
		}
		res = append(res, std)
	}
	return res
}
