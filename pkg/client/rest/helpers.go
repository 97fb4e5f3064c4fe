package rest

import "strings"

// NameMayNotBe specifies strings that cannot be used as names specified as path segments.
var NameMayNotBe = []string{".", ".."}

// NameMayNotContain specifies substrings that cannot be used in names specified as path segments.
var NameMayNotContain = []string{"/", "%"}

// IsValidPathSegmentName validates the name can be safely encoded as a path segment.
func IsValidPathSegmentName(name string) []string {
	for _, illegalName := range NameMayNotBe {
		if name == illegalName {
			return []string{"may not be '" + illegalName + "'"}
		}
	}

	var errs []string
	for _, illegalContent := range NameMayNotContain {
		if strings.Contains(name, illegalContent) {
			errs = append(errs, "may not contain '"+illegalContent+"'")
		}
	}

	return errs
}
