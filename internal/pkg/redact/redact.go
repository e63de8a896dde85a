// Package redact masks secrets before they reach logs or terminal output
package redact

import "strings"

const mask = "***"

// Email keeps the first two runes of the local part and the whole domain
func Email(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok || strings.Contains(domain, "@") {
		return mask
	}

	runes := []rune(local)
	if len(runes) > 2 {
		return string(runes[:2]) + mask + "@" + domain
	}
	return mask + "@" + domain
}

// Token keeps a short prefix of a token so two tokens can be told apart
func Token(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 12 {
		return mask
	}
	return s[:8] + mask
}
