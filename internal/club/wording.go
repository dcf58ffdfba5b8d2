package club

import "strings"

// ActivityVerb is the verb used for working through the winning item: "read"
// for book clubs, "enjoy" for everything else.
func ActivityVerb(clubType string) string {
	if strings.Contains(strings.ToLower(clubType), "book") {
		return "read"
	}
	return "enjoy"
}
