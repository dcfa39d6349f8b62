package sql

import "strings"

// splitCommaSeparated splits a string by commas, but keeps it simple:
// it's fine for "id INT, age TINYINT UNSIGNED".
func splitCommaSeparated(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// stripDisplayWidth removes a display width suffix such as "(11)" from a
// type keyword. The width has no effect on the wire format.
func stripDisplayWidth(tok string) string {
	if i := strings.IndexByte(tok, '('); i > 0 && strings.HasSuffix(tok, ")") {
		return tok[:i]
	}
	return tok
}

// isDisplayWidth reports whether tok is a standalone display width
// such as "(11)".
func isDisplayWidth(tok string) bool {
	if len(tok) < 3 || tok[0] != '(' || tok[len(tok)-1] != ')' {
		return false
	}
	for _, c := range tok[1 : len(tok)-1] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
