package strategy

import (
	"strings"

	"github.com/jaal-labs/jaal/pkg/persona"
	"github.com/jaal-labs/jaal/pkg/session"
)

// Emotional states the flow analyzer assigns to the agent.
const (
	StateNeutral   = "neutral"
	StateFearful   = "fearful"
	StateAnxious   = "anxious"
	StateCompliant = "compliant"
)

// Topics surfaced from the scammer's recent messages.
const (
	TopicCredentials = "credentials"
	TopicPayment     = "payment"
	TopicThreat      = "threat"
)

// Pending actions the agent has already claimed in its own replies.
const (
	ActionSearching   = "searching"
	ActionGoingToBank = "going_to_bank"
)

var (
	urgencyKeywords    = []string{"immediately", "urgent", "now", "quickly", "fast", "abhi", "jaldi", "turant"}
	threatKeywords     = []string{"arrest", "police", "jail", "court", "case", "block", "freeze", "legal"}
	infoKeywords       = []string{"otp", "pin", "password", "cvv", "account", "upi", "aadhaar", "pan"}
	complianceKeywords = []string{"okay", "theek", "haan", "yes", "alright", "kar raha", "sending"}
	paymentKeywords    = []string{"pay", "send", "transfer", "now", "immediately"}

	credentialCues = []string{"otp", "pin", "password"}
	paymentCues    = []string{"pay", "transfer", "send", "upi"}
	threatCues     = []string{"arrest", "police", "legal"}

	searchingPhrases = []string{"dhundh raha", "check kar", "looking", "finding"}
	bankPhrases      = []string{"bank ja", "atm", "withdraw"}
)

// Snapshot is one reading of the conversation's recent dynamics.
type Snapshot struct {
	Urgency        int
	Threats        int
	InfoRequests   int
	Compliance     int
	EmotionalState string
	Topics         []string
	PendingActions []string
	LanguageTrend  persona.LanguageStyle
}

// HasTopic reports whether the scammer recently pushed the topic.
func (s Snapshot) HasTopic(topic string) bool {
	for _, t := range s.Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// HasAction reports whether the agent has a claimed action pending.
func (s Snapshot) HasAction(action string) bool {
	for _, a := range s.PendingActions {
		if a == action {
			return true
		}
	}
	return false
}

// ObserveIngress folds one scammer message into the session's
// cumulative pressure counters before the flow analysis runs.
func ObserveIngress(sess *session.Session, message string) {
	content := strings.ToLower(message)
	sess.UrgencyLevel += countContained(content, urgencyKeywords)
	sess.ThreatLevel += countContained(content, threatKeywords)
	if containsAny(content, paymentKeywords) {
		sess.PaymentRequests++
	}
}

// AnalyzeFlow reads the last eight transcript entries and the
// session's cumulative counters. The window counts capture what is
// happening right now; the cumulative thresholds keep the emotional
// state sticky, so an agent threatened five turns ago stays fearful
// through a quiet stretch.
func AnalyzeFlow(sess *session.Session) Snapshot {
	snap := Snapshot{
		EmotionalState: StateNeutral,
		LanguageTrend:  persona.HinglishHeavyEnglish,
	}

	for _, msg := range sess.Recent(8) {
		content := strings.ToLower(msg.Content)
		switch msg.Role {
		case session.RoleScammer:
			snap.Urgency += countContained(content, urgencyKeywords)
			snap.Threats += countContained(content, threatKeywords)
			snap.InfoRequests += countContained(content, infoKeywords)

			if containsAny(content, credentialCues) {
				snap.Topics = append(snap.Topics, TopicCredentials)
			}
			if containsAny(content, paymentCues) {
				snap.Topics = append(snap.Topics, TopicPayment)
			}
			if containsAny(content, threatCues) {
				snap.Topics = append(snap.Topics, TopicThreat)
			}
		case session.RoleAgent:
			snap.Compliance += countContained(content, complianceKeywords)

			if containsAny(content, searchingPhrases) {
				snap.PendingActions = append(snap.PendingActions, ActionSearching)
			}
			if containsAny(content, bankPhrases) {
				snap.PendingActions = append(snap.PendingActions, ActionGoingToBank)
			}
		}
	}

	switch {
	case snap.Threats > 2 || sess.ThreatLevel > 4:
		snap.EmotionalState = StateFearful
	case snap.Urgency > 3 || sess.UrgencyLevel > 6:
		snap.EmotionalState = StateAnxious
	case snap.Compliance > 2:
		snap.EmotionalState = StateCompliant
	}

	var ingress []string
	for _, msg := range sess.Recent(4) {
		if msg.Role == session.RoleScammer {
			ingress = append(ingress, msg.Content)
		}
	}
	if len(ingress) > 0 {
		snap.LanguageTrend = persona.DetectLanguage(strings.Join(ingress, " "))
	}

	return snap
}

// ResponseHint turns a snapshot into a directive for the reply
// generator. Hints stack; an empty snapshot yields the neutral
// directive.
func ResponseHint(snap Snapshot, turnCount int) string {
	var hints []string

	switch snap.EmotionalState {
	case StateFearful:
		hints = append(hints, "Show genuine fear, ask for reassurance")
	case StateAnxious:
		hints = append(hints, "Show nervousness, mention family concerns")
	}

	if snap.HasTopic(TopicCredentials) {
		hints = append(hints, "Stall on OTP/credentials - pretend to search")
	}
	if snap.HasTopic(TopicPayment) {
		hints = append(hints, "Ask about amount, mention low balance")
	}
	if snap.HasTopic(TopicThreat) {
		hints = append(hints, "Plead innocence, show fear of consequences")
	}

	if snap.HasAction(ActionSearching) {
		hints = append(hints, "Continue pretending to search/find something")
	}
	if snap.HasAction(ActionGoingToBank) {
		hints = append(hints, "Mention you need to go to bank/ATM")
	}

	if turnCount > 5 && snap.Compliance < 2 {
		hints = append(hints, "Show slightly more willingness to cooperate")
	}

	if len(hints) == 0 {
		return "Respond naturally as the persona"
	}
	return strings.Join(hints, "; ")
}
