// Package session holds per-conversation engagement state and the
// storage backends that persist it between turns.
//
// A Session accumulates the transcript, the extracted intelligence and
// the engagement flags for one scammer conversation. Stores serialize
// sessions as JSON; the in-memory backend round-trips through JSON on
// every write so callers never share live pointers with the store.
package session

import (
	"strings"
	"time"

	"github.com/jaal-labs/jaal/pkg/detect"
)

// Message roles. Ingress messages (the scammer's side) drive the turn
// counter; agent messages never do.
const (
	RoleScammer = "scammer"
	RoleAgent   = "agent"
)

// Message is one transcript entry.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Session is the full engagement state for one conversation.
//
// UrgencyLevel, PaymentRequests and ThreatLevel are cumulative counters
// bumped on every ingress message; the flow analyzer consumes them to
// keep emotional state sticky across quiet stretches of conversation.
type Session struct {
	SessionID        string              `json:"session_id"`
	PersonaStyle     string              `json:"persona_style"`
	PersonaType      string              `json:"persona_type,omitempty"`
	ScamCategory     string              `json:"scam_category,omitempty"`
	ExtractedIntel   detect.Intelligence `json:"extracted_intel"`
	TurnCount        int                 `json:"turn_count"`
	ConfidenceLevel  float64             `json:"confidence_level"`
	ScamDetected     bool                `json:"scam_detected"`
	EngagementActive bool                `json:"engagement_active"`
	Messages         []Message           `json:"messages"`
	UrgencyLevel     int                 `json:"urgency_level"`
	PaymentRequests  int                 `json:"payment_requests"`
	ThreatLevel      int                 `json:"threat_level"`
	CreatedAt        time.Time           `json:"created_at"`
	LastUpdated      time.Time           `json:"last_updated"`
}

// New returns a fresh session with the engagement defaults: confused
// persona style, neutral 0.5 confidence, engagement active.
func New(id string) *Session {
	now := time.Now().UTC()
	return &Session{
		SessionID:        id,
		PersonaStyle:     "confused",
		ExtractedIntel:   detect.Intelligence{},
		ConfidenceLevel:  0.5,
		EngagementActive: true,
		Messages:         []Message{},
		CreatedAt:        now,
		LastUpdated:      now,
	}
}

// Append records one transcript entry. Ingress (scammer) entries
// increment the turn counter; agent entries do not.
func (s *Session) Append(role, content string) {
	now := time.Now().UTC()
	s.Messages = append(s.Messages, Message{Role: role, Content: content, Timestamp: now})
	if role == RoleScammer {
		s.TurnCount++
	}
	s.Touch(now)
}

// Touch advances LastUpdated, never moving it backwards.
func (s *Session) Touch(now time.Time) {
	if now.After(s.LastUpdated) {
		s.LastUpdated = now
	}
}

// Recent returns the last n transcript entries, oldest first.
func (s *Session) Recent(n int) []Message {
	if n <= 0 || len(s.Messages) == 0 {
		return nil
	}
	if len(s.Messages) <= n {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-n:]
}

// AgentLines returns the text of the last n agent messages, oldest
// first. The self-corrector checks candidate replies against these.
func (s *Session) AgentLines(n int) []string {
	var lines []string
	for i := len(s.Messages) - 1; i >= 0 && len(lines) < n; i-- {
		if s.Messages[i].Role == RoleAgent {
			lines = append(lines, s.Messages[i].Content)
		}
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}

// IngressMessages returns the last n scammer messages, oldest first.
func (s *Session) IngressMessages(n int) []Message {
	var msgs []Message
	for i := len(s.Messages) - 1; i >= 0 && len(msgs) < n; i-- {
		if s.Messages[i].Role == RoleScammer {
			msgs = append(msgs, s.Messages[i])
		}
	}
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs
}

// TotalMessages is the transcript length across both roles.
func (s *Session) TotalMessages() int {
	return len(s.Messages)
}

// NormalizeRole maps external sender labels onto the two transcript
// roles. Anything that is not recognizably the agent counts as ingress.
func NormalizeRole(sender string) string {
	switch strings.ToLower(strings.TrimSpace(sender)) {
	case RoleAgent, "assistant", "bot", "honeypot":
		return RoleAgent
	default:
		return RoleScammer
	}
}
