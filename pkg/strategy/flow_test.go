package strategy

import (
	"strings"
	"testing"

	"github.com/jaal-labs/jaal/pkg/persona"
	"github.com/jaal-labs/jaal/pkg/session"
)

func TestObserveIngressCounters(t *testing.T) {
	sess := session.New("s")

	ObserveIngress(sess, "Pay immediately or police will arrest you")
	if sess.UrgencyLevel != 1 {
		t.Errorf("UrgencyLevel = %d, want 1 (immediately)", sess.UrgencyLevel)
	}
	if sess.ThreatLevel != 2 {
		t.Errorf("ThreatLevel = %d, want 2 (police, arrest)", sess.ThreatLevel)
	}
	if sess.PaymentRequests != 1 {
		t.Errorf("PaymentRequests = %d, want 1", sess.PaymentRequests)
	}

	ObserveIngress(sess, "hello ji")
	if sess.PaymentRequests != 1 {
		t.Errorf("benign message bumped PaymentRequests to %d", sess.PaymentRequests)
	}
}

func TestAnalyzeFlowWindowCounts(t *testing.T) {
	sess := session.New("s")
	sess.Append(session.RoleScammer, "urgent, share your otp and pin now")
	sess.Append(session.RoleAgent, "okay haan, theek hai")

	snap := AnalyzeFlow(sess)
	if snap.Urgency != 2 {
		t.Errorf("Urgency = %d, want 2 (urgent, now)", snap.Urgency)
	}
	if snap.InfoRequests != 2 {
		t.Errorf("InfoRequests = %d, want 2 (otp, pin)", snap.InfoRequests)
	}
	if snap.Compliance != 3 {
		t.Errorf("Compliance = %d, want 3 (okay, haan, theek)", snap.Compliance)
	}
}

func TestAnalyzeFlowEmotionalStates(t *testing.T) {
	tests := []struct {
		name    string
		build   func(*session.Session)
		want    string
	}{
		{
			"fearful on stacked threats",
			func(s *session.Session) {
				s.Append(session.RoleScammer, "police will arrest you, court case is filed")
			},
			StateFearful,
		},
		{
			"anxious on stacked urgency",
			func(s *session.Session) {
				s.Append(session.RoleScammer, "come immediately, very urgent, do it now, jaldi karo")
			},
			StateAnxious,
		},
		{
			"compliant agent",
			func(s *session.Session) {
				s.Append(session.RoleAgent, "okay haan theek, yes kar raha hun")
			},
			StateCompliant,
		},
		{
			"neutral otherwise",
			func(s *session.Session) {
				s.Append(session.RoleScammer, "hello, how are you")
			},
			StateNeutral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := session.New("s")
			tt.build(sess)
			if got := AnalyzeFlow(sess).EmotionalState; got != tt.want {
				t.Errorf("EmotionalState = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeFlowCumulativeStickiness(t *testing.T) {
	sess := session.New("s")
	sess.Append(session.RoleScammer, "hello, are you there")
	sess.ThreatLevel = 5

	snap := AnalyzeFlow(sess)
	if snap.EmotionalState != StateFearful {
		t.Errorf("EmotionalState = %q, want fearful from cumulative threats", snap.EmotionalState)
	}
}

func TestAnalyzeFlowTopicsAndActions(t *testing.T) {
	sess := session.New("s")
	sess.Append(session.RoleScammer, "share otp and pay via upi")
	sess.Append(session.RoleAgent, "ruko, card dhundh raha hun")
	sess.Append(session.RoleScammer, "police case hoga warna")
	sess.Append(session.RoleAgent, "main bank ja raha hun abhi")

	snap := AnalyzeFlow(sess)
	for _, topic := range []string{TopicCredentials, TopicPayment, TopicThreat} {
		if !snap.HasTopic(topic) {
			t.Errorf("missing topic %q in %v", topic, snap.Topics)
		}
	}
	if !snap.HasAction(ActionSearching) {
		t.Errorf("missing pending action %q in %v", ActionSearching, snap.PendingActions)
	}
	if !snap.HasAction(ActionGoingToBank) {
		t.Errorf("missing pending action %q in %v", ActionGoingToBank, snap.PendingActions)
	}
}

func TestAnalyzeFlowIgnoresOldMessages(t *testing.T) {
	sess := session.New("s")
	sess.Append(session.RoleScammer, "police arrest court case legal block freeze jail")
	for i := 0; i < 8; i++ {
		sess.Append(session.RoleScammer, "hello")
	}

	snap := AnalyzeFlow(sess)
	if snap.Threats != 0 {
		t.Errorf("Threats = %d, want 0 (threat message fell out of the window)", snap.Threats)
	}
}

func TestAnalyzeFlowLanguageTrend(t *testing.T) {
	sess := session.New("s")
	sess.Append(session.RoleScammer, "paisa bhej do abhi jaldi karo")

	snap := AnalyzeFlow(sess)
	if snap.LanguageTrend != persona.HinglishHeavyHindi {
		t.Errorf("LanguageTrend = %q, want %q", snap.LanguageTrend, persona.HinglishHeavyHindi)
	}

	empty := AnalyzeFlow(session.New("s2"))
	if empty.LanguageTrend != persona.HinglishHeavyEnglish {
		t.Errorf("empty trend = %q, want default %q", empty.LanguageTrend, persona.HinglishHeavyEnglish)
	}
}

func TestResponseHint(t *testing.T) {
	snap := Snapshot{
		EmotionalState: StateFearful,
		Topics:         []string{TopicCredentials, TopicThreat},
		PendingActions: []string{ActionSearching},
	}

	hint := ResponseHint(snap, 4)
	for _, want := range []string{
		"Show genuine fear",
		"Stall on OTP/credentials",
		"Plead innocence",
		"Continue pretending to search",
	} {
		if !strings.Contains(hint, want) {
			t.Errorf("hint %q missing %q", hint, want)
		}
	}
	if strings.Contains(hint, "willingness to cooperate") {
		t.Error("cooperation nudge fired before turn 5")
	}
}

func TestResponseHintCooperationNudge(t *testing.T) {
	hint := ResponseHint(Snapshot{EmotionalState: StateNeutral}, 6)
	if !strings.Contains(hint, "Show slightly more willingness to cooperate") {
		t.Errorf("hint %q missing cooperation nudge after turn 5", hint)
	}
}

func TestResponseHintDefault(t *testing.T) {
	hint := ResponseHint(Snapshot{EmotionalState: StateNeutral, Compliance: 2}, 2)
	if hint != "Respond naturally as the persona" {
		t.Errorf("default hint = %q", hint)
	}
}
