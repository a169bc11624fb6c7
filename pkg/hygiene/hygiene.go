// Package hygiene guards both directions of the HTTP boundary.
//
// Inbound it validates identifiers, normalizes and sanitizes free text, and
// fingerprints callers that look like detection probes rather than humans.
// Outbound it scrubs headers and randomizes error detail so the service is
// hard to distinguish from an ordinary chat backend.
package hygiene

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const maxMessageRunes = 10000

var sessionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_\-]+$`)

// ValidateSessionID accepts 1-256 chars of [a-zA-Z0-9_-].
func ValidateSessionID(sessionID string) bool {
	if sessionID == "" || len(sessionID) > 256 {
		return false
	}
	return sessionIDPattern.MatchString(sessionID)
}

// ValidateMessage accepts non-empty text up to 10000 characters.
func ValidateMessage(message string) bool {
	if message == "" {
		return false
	}
	n := 0
	for range message {
		n++
		if n > maxMessageRunes {
			return false
		}
	}
	return true
}

// Sanitize prepares untrusted text for the pipeline: trims surrounding
// whitespace, folds Unicode confusables to their NFKC form, drops control
// bytes and injection-prone punctuation, and caps the length.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(text)
	if !norm.NFKC.IsNormalString(text) {
		text = norm.NFKC.String(text)
	}

	var b strings.Builder
	b.Grow(len(text))
	n := 0
	for _, r := range text {
		if r <= 0x08 || r == 0x0b || r == 0x0c || (r >= 0x0e && r <= 0x1f) || (r >= 0x7f && r <= 0x9f) {
			continue
		}
		switch r {
		case '<', '>', '"', '\'', ';', '\\':
			continue
		}
		b.WriteRune(r)
		n++
		if n >= maxMessageRunes {
			break
		}
	}
	return b.String()
}

// === normalization ===

var phoneCleanPattern = regexp.MustCompile(`[\s\-()]`)

// NormalizePhone canonicalizes Indian mobile numbers to +91XXXXXXXXXX form.
// Returns "" when the input is not a recognizable Indian number.
func NormalizePhone(phone string) string {
	cleaned := phoneCleanPattern.ReplaceAllString(phone, "")
	switch {
	case len(cleaned) == 13 && strings.HasPrefix(cleaned, "+91") && allDigits(cleaned[3:]):
		return cleaned
	case len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") && allDigits(cleaned):
		return "+" + cleaned
	case len(cleaned) == 10 && allDigits(cleaned):
		return "+91" + cleaned
	}
	return ""
}

// NormalizeHandle lowercases and trims a payment handle.
func NormalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimSpace(handle))
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
