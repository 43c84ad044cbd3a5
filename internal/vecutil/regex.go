package vecutil

import "regexp"

// MatchesRegex reports whether re matches anywhere in s (unanchored
// search).
func MatchesRegex(re *regexp.Regexp, s string) bool {
	return re.MatchString(s)
}

// VectorizedApplyRegex applies re to every element of col and returns the
// first capture group of the first match (or the whole match if re has no
// groups), with "" where re doesn't match.
func VectorizedApplyRegex(re *regexp.Regexp, col []string) []string {
	out := make([]string, len(col))
	for i, s := range col {
		out[i] = ApplyRegex(re, s)
	}
	return out
}

// ApplyRegex returns the first submatch group of re applied to s, falling
// back to the full match when re has no groups, and "" when there is no
// match.
func ApplyRegex(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if len(m) > 1 {
		return m[1]
	}
	return m[0]
}
