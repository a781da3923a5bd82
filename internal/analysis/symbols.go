package analysis

import "strings"

// ParseSymbols splits a comma separated list and trims each entry. Empty
// entries are kept, so "" yields one empty symbol.
func ParseSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
