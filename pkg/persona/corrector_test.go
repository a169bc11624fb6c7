package persona

import (
	"math/rand"
	"strings"
	"testing"
)

func TestValidateReplyCatchesForbiddenWords(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"scam direct", "I think this is a scam"},
		{"ai disclosure", "as an ai I cannot help with that"},
		{"assistant boilerplate", "I apologize for any inconvenience caused"},
		{"meta accusation", "nice try, you are a scammer"},
		{"hinglish leak", "yeh toh dhoka hai bhai"},
		{"corporate register", "Your verification process is complete"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, issues := ValidateReply(tt.reply, TechNaive)
			if ok {
				t.Fatalf("ValidateReply(%q) passed, want rejection", tt.reply)
			}
			if len(issues) == 0 {
				t.Fatal("rejected reply reported no issues")
			}
		})
	}
}

func TestValidateReplyCatchesBoundaryLeaks(t *testing.T) {
	// "I am a bot" has no forbidden substring but must still be caught.
	ok, issues := ValidateReply("I am a bot, you got me", TechNaive)
	if ok {
		t.Fatal("bot self-disclosure passed validation")
	}
	found := false
	for _, issue := range issues {
		if strings.HasPrefix(issue, "suspicious_pattern:") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a suspicious_pattern issue, got %v", issues)
	}
}

func TestValidateReplyLength(t *testing.T) {
	long := strings.Repeat("bahut lamba jawab hai yeh ", 10)
	ok, issues := ValidateReply(long, TechNaive)
	if ok {
		t.Fatal("over-long reply passed validation")
	}
	if !hasIssue(issues, "too_long") {
		t.Errorf("want too_long issue, got %v", issues)
	}
}

func TestValidateReplySentenceCount(t *testing.T) {
	ok, issues := ValidateReply("Haan. Theek hai. Bolo. Kya karna hai?", TechNaive)
	if ok {
		t.Fatal("four-sentence reply passed validation")
	}
	if !hasIssue(issues, "too_many_sentences") {
		t.Errorf("want too_many_sentences issue, got %v", issues)
	}

	if ok, _ := ValidateReply("Haan. Theek hai. Bolo bhai?", TechNaive); !ok {
		t.Error("three terminators should pass")
	}
}

func TestValidateReplyFormalVocabulary(t *testing.T) {
	reply := "Main abhi authentication karta hun"

	ok, issues := ValidateReply(reply, ElderlyAnxious)
	if ok {
		t.Fatal("formal word passed for very_low literacy persona")
	}
	if !hasIssue(issues, "too_formal_for_persona") {
		t.Errorf("want too_formal_for_persona, got %v", issues)
	}

	// High-literacy personas are allowed the same vocabulary.
	if ok, _ := ValidateReply(reply, BusyProfessional); !ok {
		t.Error("formal word should pass for high literacy persona")
	}
}

func TestCorrectReplyReplacesLeaks(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	got := CorrectReply("I know this is a scam operation", ScaredVictim, 1, rng)
	if strings.Contains(strings.ToLower(got), "scam") {
		t.Fatalf("corrected reply still leaks: %q", got)
	}
	if !contains(ProfileScaredVictim.TypicalResponses, got) {
		t.Errorf("turn-1 replacement %q not from scared_victim typical pool", got)
	}
}

func TestCorrectReplyTruncates(t *testing.T) {
	long := "Yeh pehla sentence hai jo kaafi lamba likha gaya hai samajhne ke liye. " +
		"Doosra sentence bhi utna hi lamba hai aur bahut details deta hai. " +
		"Teesra sentence yahan hai. Chautha bhi hai aur yeh response bahut lamba ho chuka hai!"
	got := CorrectReply(long, TechNaive, 3, nil)
	if got == long {
		t.Fatal("long reply was not corrected")
	}
	if n := len(splitSentences(got)); n > 2 {
		t.Errorf("corrected reply still has %d sentences: %q", n, got)
	}
}

func TestCorrectReplySimplifies(t *testing.T) {
	got := CorrectReply("Bank verification karna hai kya?", TechNaive, 2, nil)
	if strings.Contains(strings.ToLower(got), "verification") {
		t.Errorf("formal word survived simplification: %q", got)
	}
	if !strings.Contains(got, "check") {
		t.Errorf("expected simplified vocabulary, got %q", got)
	}
}

func TestCorrectReplyKeepsCleanLines(t *testing.T) {
	clean := "Haan ji, batao kya karna hai?"
	if got := CorrectReply(clean, ElderlyAnxious, 2, nil); got != clean {
		t.Errorf("clean reply was modified: %q", got)
	}
}

func TestSafeReplacementPools(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	p := ProfileElderlyAnxious

	early := SafeReplacement(ElderlyAnxious, 1, rng)
	if !contains(p.TypicalResponses, early) {
		t.Errorf("turn-1 replacement %q not from typical pool", early)
	}

	mid := SafeReplacement(ElderlyAnxious, 4, rng)
	if !contains(p.TypicalResponses, mid) && !contains(p.DelayPhrases, mid) {
		t.Errorf("turn-4 replacement %q not from typical or delay pools", mid)
	}

	late := SafeReplacement(ElderlyAnxious, 9, rng)
	if !contains(replacementPools[ReplaceStall], late) {
		t.Errorf("turn-9 replacement %q not from the stall pool", late)
	}
}

func TestReplacementLine(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for _, kind := range []ReplacementKind{ReplaceConfused, ReplaceStall, ReplaceCompliant} {
		got := ReplacementLine(kind, rng)
		if !contains(replacementPools[kind], got) {
			t.Errorf("ReplacementLine(%s) = %q, not in pool", kind, got)
		}
	}
	fallback := ReplacementLine(ReplacementKind("bogus"), rng)
	if !contains(replacementPools[ReplaceStall], fallback) {
		t.Errorf("unknown kind should use the stall pool, got %q", fallback)
	}
}

func TestTruncateReplyCharacterCap(t *testing.T) {
	// One run-on sentence with no terminators, over 150 runes.
	long := strings.Repeat("paisa bhejo jaldi ", 12)
	got := truncateReply(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("run-on truncation should end with ellipsis: %q", got)
	}
	if len([]rune(got)) > 110 {
		t.Errorf("truncated reply still %d runes", len([]rune(got)))
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"Ek hi sentence hai", 1},
		{"Pehla. Doosra. Teesra.", 3},
		{"Kya?! Sach mein?! Haan.", 3},
		{"Decimal 3.5 stays intact. Doosra sentence.", 2},
		{"", 0},
	}
	for _, tt := range tests {
		if got := splitSentences(tt.text); len(got) != tt.want {
			t.Errorf("splitSentences(%q) = %d parts (%v), want %d", tt.text, len(got), got, tt.want)
		}
	}
}

func TestCheckConsistencyAvailability(t *testing.T) {
	prev := []string{
		"Abhi busy hun thoda, wait karo.",
		"Haan ji bolo.",
	}
	ok, reason := CheckConsistency("Haan main abhi kar raha hun wait karo", prev)
	if ok {
		t.Fatal("busy-then-available contradiction passed")
	}
	if reason != "availability_contradiction" {
		t.Errorf("reason = %q", reason)
	}
}

func TestCheckConsistencyLanguageShift(t *testing.T) {
	prev := []string{
		"Haan ji, aap batao kya karna hai mujhe.",
		"Theek hai beta, main abhi karta hun ruko.",
	}
	ok, reason := CheckConsistency("Could you please clarify the exact requirements for this process", prev)
	if ok {
		t.Fatal("sudden pure-English shift passed")
	}
	if reason != "language_style_shift" {
		t.Errorf("reason = %q", reason)
	}
}

func TestCheckConsistencyAllowsShortEnglish(t *testing.T) {
	prev := []string{"Haan ji, aap batao kya karna hai mujhe."}
	// Five words or fewer never trip the shift rule.
	if ok, _ := CheckConsistency("Okay sir, one minute", prev); !ok {
		t.Error("short English reply should pass")
	}
}

func TestCheckConsistencyEmptyHistory(t *testing.T) {
	if ok, _ := CheckConsistency("anything at all goes here", nil); !ok {
		t.Error("no history should always pass")
	}
}

func TestCheckConsistencyUsesLastThree(t *testing.T) {
	prev := []string{
		"Abhi busy hun, baad mein karo.", // too old once three newer lines exist
		"Theek hai ji.",
		"Haan bolo.",
		"Accha okay.",
	}
	if ok, _ := CheckConsistency("Main abhi kar raha hun sir", prev); !ok {
		t.Error("availability claim outside the last three lines should not count")
	}
}

func hasIssue(issues []string, want string) bool {
	for _, issue := range issues {
		if issue == want {
			return true
		}
	}
	return false
}
