// Package phone canonicalizes transport phone numbers so every lookup keys
// on the same digit string.
package phone

import "strings"

// transportSuffix is appended by the WhatsApp gateway to sender JIDs.
const transportSuffix = "@s.whatsapp.net"

// Normalize strips whitespace, a leading "+", interior spaces, and the
// transport suffix from a raw phone string. Idempotent; malformed input
// passes through trimmed, callers tolerate non-matches downstream.
func Normalize(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "+", "")
	cleaned = strings.ReplaceAll(cleaned, transportSuffix, "")
	return cleaned
}
