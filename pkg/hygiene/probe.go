package hygiene

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// probePatterns flag messages that poke at the service's real nature rather
// than carry on a conversation.
var probePatterns = []*regexp.Regexp{
	regexp.MustCompile(`honeypot`),
	regexp.MustCompile(`honey.?pot`),
	regexp.MustCompile(`scam.?detect`),
	regexp.MustCompile(`fraud.?detect`),
	regexp.MustCompile(`test.?api`),
	regexp.MustCompile(`api.?test`),
	regexp.MustCompile(`bot.?detect`),
	regexp.MustCompile(`anti.?fraud`),
	regexp.MustCompile(`trap`),
	regexp.MustCompile(`bait`),
	regexp.MustCompile(`decoy`),
	regexp.MustCompile(`fake.?user`),
	regexp.MustCompile(`simulation`),
	regexp.MustCompile(`are you (a )?(bot|ai|robot)`),
}

var suspiciousHeaders = map[string]struct{}{
	"x-honeypot":      {},
	"x-bot-detection": {},
	"x-test-mode":     {},
	"x-debug":         {},
	"x-simulation":    {},
	"x-trap":          {},
	"honeypot-id":     {},
	"test-request":    {},
}

var botUserAgents = []string{
	"bot", "crawler", "spider", "scraper", "curl", "wget", "python-requests",
	"httpx", "aiohttp", "postman", "insomnia", "test", "automated",
}

// standardHeaders is the inbound allowlist; everything else is dropped
// before the request is inspected further.
var standardHeaders = map[string]struct{}{
	"content-type":    {},
	"content-length":  {},
	"accept":          {},
	"accept-language": {},
	"accept-encoding": {},
	"connection":      {},
	"host":            {},
	"origin":          {},
	"referer":         {},
	"user-agent":      {},
	"x-api-key":       {},
	"authorization":   {},
	"x-request-id":    {},
	"x-forwarded-for": {},
	"x-real-ip":       {},
}

// DetectProbe reports whether a message or its headers look like an attempt
// to identify the honeypot. The second return names the trigger:
// "pattern_match", "suspicious_header", or "bot_user_agent".
func DetectProbe(message string, headers map[string]string) (bool, string) {
	lowered := strings.ToLower(message)
	for _, p := range probePatterns {
		if p.MatchString(lowered) {
			return true, "pattern_match"
		}
	}

	var userAgent string
	for k, v := range headers {
		key := strings.ToLower(k)
		if _, bad := suspiciousHeaders[key]; bad {
			return true, "suspicious_header"
		}
		if key == "user-agent" {
			userAgent = strings.ToLower(v)
		}
	}

	for _, fragment := range botUserAgents {
		if strings.Contains(userAgent, fragment) {
			return true, "bot_user_agent"
		}
	}
	return false, ""
}

// FilterHeaders keeps only allowlisted header names and caps values at 500
// characters so hostile metadata never reaches the pipeline.
func FilterHeaders(headers map[string]string) map[string]string {
	filtered := make(map[string]string, len(headers))
	for k, v := range headers {
		if _, ok := standardHeaders[strings.ToLower(k)]; !ok {
			continue
		}
		if len(v) > 500 {
			v = v[:500]
		}
		filtered[k] = v
	}
	return filtered
}

// ClientHash derives a short stable identifier for rate tracking. Only the
// first 16 hex chars are kept; this is a bucketing key, not a credential.
func ClientHash(ip, userAgent, sessionID string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s", ip, userAgent, sessionID)))
	return hex.EncodeToString(sum[:])[:16]
}
