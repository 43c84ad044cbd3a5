package vecutil

import "strings"

// PrettyLabel derives a human label from a snake_case operator name, e.g.
// "not_equal_to" -> "Not Equal To". Used as the default operator.Meta.Label
// when a registration doesn't supply an explicit one.
func PrettyLabel(name string) string {
	parts := strings.Split(name, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
