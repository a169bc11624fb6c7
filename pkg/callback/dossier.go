// Package callback reports finished engagements to the configured
// intake endpoint as a dossier: what was detected, what was harvested,
// and a human-readable note for the analyst on the other side.
package callback

import (
	"fmt"
	"strings"

	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/session"
	"github.com/jaal-labs/jaal/pkg/strategy"
)

// ExtractedIntelligence is the intake's view of a capture. Field names
// are camelCase on the wire, unlike the snake_case session state.
type ExtractedIntelligence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhishingLinks      []string `json:"phishingLinks"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// Dossier is the callback wire payload summarizing one engagement.
type Dossier struct {
	SessionID              string                `json:"sessionId"`
	ScamDetected           bool                  `json:"scamDetected"`
	TotalMessagesExchanged int                   `json:"totalMessagesExchanged"`
	ExtractedIntelligence  ExtractedIntelligence `json:"extractedIntelligence"`
	AgentNotes             string                `json:"agentNotes"`
}

// BuildDossier assembles the payload for a session. Lists are never
// null on the wire; an empty capture serializes as [].
func BuildDossier(sess *session.Session) Dossier {
	intel := sess.ExtractedIntel
	return Dossier{
		SessionID:              sess.SessionID,
		ScamDetected:           sess.ScamDetected,
		TotalMessagesExchanged: sess.TurnCount,
		ExtractedIntelligence: ExtractedIntelligence{
			BankAccounts:       orEmpty(intel.BankAccounts),
			UPIIDs:             orEmpty(intel.UPIIDs),
			PhishingLinks:      orEmpty(intel.PhishingLinks),
			PhoneNumbers:       orEmpty(intel.PhoneNumbers),
			SuspiciousKeywords: orEmpty(intel.SuspiciousKeywords),
		},
		AgentNotes: AgentNotes(sess),
	}
}

// threatNoteKeywords are the captured keywords worth calling out as
// pressure tactics in the notes. Exact matches only.
var threatNoteKeywords = []string{"urgent", "blocked", "suspend", "legal"}

// AgentNotes derives the analyst-facing summary: category, engagement
// length, the intel highlights, the scheme's typical tactics, a risk
// bucket, and observed behavior tags.
func AgentNotes(sess *session.Session) string {
	var parts []string

	if sess.ScamCategory != "" {
		parts = append(parts, fmt.Sprintf("Scam category: %s", sess.ScamCategory))
	}
	parts = append(parts, fmt.Sprintf("Engaged for %d turns", sess.TurnCount))

	intel := sess.ExtractedIntel
	if len(intel.UPIIDs) > 0 {
		parts = append(parts, fmt.Sprintf("Extracted UPI IDs: %s", strings.Join(intel.UPIIDs, ", ")))
	}
	if len(intel.PhishingLinks) > 0 {
		parts = append(parts, fmt.Sprintf("Detected phishing links: %d", len(intel.PhishingLinks)))
	}
	if len(intel.PhoneNumbers) > 0 {
		parts = append(parts, fmt.Sprintf("Captured phone numbers: %s", strings.Join(intel.PhoneNumbers, ", ")))
	}
	if threats := matchedThreatKeywords(intel.SuspiciousKeywords); len(threats) > 0 {
		parts = append(parts, fmt.Sprintf("Threat tactics used: %s", strings.Join(threats, ", ")))
	}

	if category := detect.ParseCategory(sess.ScamCategory); category != detect.CategoryUnknown {
		tactics := detect.ProfileFor(category).TypicalTactics
		parts = append(parts, fmt.Sprintf("Typical tactics: %s", strings.Join(tactics, ", ")))
	}

	parts = append(parts, fmt.Sprintf("Risk assessment: %s", riskBucket(intel)))

	if tags := behaviorTags(sess); len(tags) > 0 {
		parts = append(parts, fmt.Sprintf("Behavior: %s", strings.Join(tags, ", ")))
	}

	return strings.Join(parts, ". ")
}

func matchedThreatKeywords(keywords []string) []string {
	var out []string
	for _, kw := range keywords {
		for _, want := range threatNoteKeywords {
			if kw == want {
				out = append(out, kw)
				break
			}
		}
	}
	return out
}

// riskBucket grades the capture by the strategy's sufficiency score:
// a handle plus a link clears HIGH, a single strong artifact is MEDIUM.
func riskBucket(intel detect.Intelligence) string {
	score := strategy.IntelScore(intel)
	switch {
	case score >= 7:
		return "HIGH"
	case score >= 4:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// behaviorTags labels scammer conduct visible in the session: repeated
// payment pushes, verbatim-repeated scripts, and long persistence.
func behaviorTags(sess *session.Session) []string {
	var tags []string
	if sess.PaymentRequests >= 3 {
		tags = append(tags, "payment-escalation")
	}
	if hasRepeatedScript(sess.Messages) {
		tags = append(tags, "repetitive")
	}
	if sess.TurnCount >= 10 {
		tags = append(tags, "persistent")
	}
	return tags
}

// hasRepeatedScript reports whether any scammer line appears three or
// more times, whitespace and case folded.
func hasRepeatedScript(messages []session.Message) bool {
	counts := make(map[string]int)
	for _, m := range messages {
		if m.Role != session.RoleScammer {
			continue
		}
		key := strings.Join(strings.Fields(strings.ToLower(m.Content)), " ")
		if key == "" {
			continue
		}
		counts[key]++
		if counts[key] >= 3 {
			return true
		}
	}
	return false
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
