package hygiene

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestValidateSessionID(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		valid     bool
	}{
		{"simple", "wa-session-42", true},
		{"underscores", "user_123_chat", true},
		{"single char", "a", true},
		{"max length", strings.Repeat("x", 256), true},
		{"empty", "", false},
		{"too long", strings.Repeat("x", 257), false},
		{"spaces", "session 42", false},
		{"path traversal", "../etc/passwd", false},
		{"unicode", "sesión", false},
	}

	for _, tt := range tests {
		if got := ValidateSessionID(tt.sessionID); got != tt.valid {
			t.Errorf("%s: ValidateSessionID(%q) = %v, want %v", tt.name, tt.sessionID, got, tt.valid)
		}
	}
}

func TestValidateMessage(t *testing.T) {
	if ValidateMessage("") {
		t.Error("Empty message should be invalid")
	}
	if !ValidateMessage("hello") {
		t.Error("Short message should be valid")
	}
	if !ValidateMessage(strings.Repeat("a", 10000)) {
		t.Error("Message at the cap should be valid")
	}
	if ValidateMessage(strings.Repeat("a", 10001)) {
		t.Error("Message over the cap should be invalid")
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"strips control bytes", "he\x00ll\x08o", "hello"},
		{"strips angle brackets", "<script>alert(1)</script>", "scriptalert(1)/script"},
		{"strips quotes and semicolons", `pay "now"; or 'else'`, "pay now or else"},
		{"strips backslash", `a\b`, "ab"},
		{"keeps hindi text", "paise bhej do", "paise bhej do"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.input); got != tt.expected {
			t.Errorf("%s: Sanitize(%q) = %q, want %q", tt.name, tt.input, got, tt.expected)
		}
	}
}

func TestSanitizeNormalizesConfusables(t *testing.T) {
	// Fullwidth letters fold to ASCII under NFKC, so look-alike smuggling
	// still hits the keyword tables.
	got := Sanitize("ｈｔｔｐ link")
	if got != "http link" {
		t.Errorf("Expected fullwidth fold to %q, got %q", "http link", got)
	}
}

func TestSanitizeCapsLength(t *testing.T) {
	long := strings.Repeat("a", 20000)
	got := Sanitize(long)
	if len([]rune(got)) != 10000 {
		t.Errorf("Expected 10000 runes after cap, got %d", len([]rune(got)))
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"+919876543210", "+919876543210"},
		{"919876543210", "+919876543210"},
		{"9876543210", "+919876543210"},
		{"98765-43210", "+919876543210"},
		{"+91 98765 43210", "+919876543210"},
		{"(987) 654-3210", "+919876543210"},
		{"12345", ""},
		{"+15551234567", ""},
		{"not a phone", ""},
	}

	for _, tt := range tests {
		if got := NormalizePhone(tt.input); got != tt.expected {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeHandle(t *testing.T) {
	if got := NormalizeHandle("  Fraud@YBL "); got != "fraud@ybl" {
		t.Errorf("NormalizeHandle = %q, want fraud@ybl", got)
	}
}

func TestDetectProbe(t *testing.T) {
	tests := []struct {
		name    string
		message string
		headers map[string]string
		probe   bool
		reason  string
	}{
		{
			name:    "honeypot in message",
			message: "is this a honeypot?",
			probe:   true,
			reason:  "pattern_match",
		},
		{
			name:    "spaced probe",
			message: "some honey pot thing",
			probe:   true,
			reason:  "pattern_match",
		},
		{
			name:    "bot question",
			message: "are you a bot",
			probe:   true,
			reason:  "pattern_match",
		},
		{
			name:    "suspicious header",
			message: "hello",
			headers: map[string]string{"X-Test-Mode": "1"},
			probe:   true,
			reason:  "suspicious_header",
		},
		{
			name:    "bot user agent",
			message: "hello",
			headers: map[string]string{"User-Agent": "curl/8.0"},
			probe:   true,
			reason:  "bot_user_agent",
		},
		{
			name:    "ordinary request",
			message: "your parcel is held at customs",
			headers: map[string]string{"User-Agent": "WhatsApp/2.23 Android"},
			probe:   false,
		},
	}

	for _, tt := range tests {
		got, reason := DetectProbe(tt.message, tt.headers)
		if got != tt.probe {
			t.Errorf("%s: DetectProbe = %v, want %v", tt.name, got, tt.probe)
		}
		if tt.probe && reason != tt.reason {
			t.Errorf("%s: reason = %q, want %q", tt.name, reason, tt.reason)
		}
	}
}

func TestFilterHeaders(t *testing.T) {
	in := map[string]string{
		"Content-Type":  "application/json",
		"X-Internal":    "leak",
		"User-Agent":    strings.Repeat("u", 600),
		"Authorization": "Bearer x",
	}
	out := FilterHeaders(in)

	if _, ok := out["X-Internal"]; ok {
		t.Error("Non-allowlisted header should be dropped")
	}
	if _, ok := out["Content-Type"]; !ok {
		t.Error("Content-Type should survive")
	}
	if len(out["User-Agent"]) != 500 {
		t.Errorf("Expected UA capped at 500 chars, got %d", len(out["User-Agent"]))
	}
}

func TestClientHash(t *testing.T) {
	h1 := ClientHash("1.2.3.4", "WhatsApp", "session-1")
	h2 := ClientHash("1.2.3.4", "WhatsApp", "session-1")
	h3 := ClientHash("1.2.3.4", "WhatsApp", "session-2")

	if len(h1) != 16 {
		t.Errorf("Expected 16 hex chars, got %d", len(h1))
	}
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("Different sessions should hash differently")
	}
}

func TestRateWindowFlood(t *testing.T) {
	// Alternating 1.4s/2.4s gaps keep the mean and variance rules quiet so
	// only the >30-per-minute flood rule can fire.
	w := NewRateWindow()
	base := time.Now()
	elapsed := time.Duration(0)
	step := 0
	w.now = func() time.Time {
		ts := base.Add(elapsed)
		if step%2 == 0 {
			elapsed += 1400 * time.Millisecond
		} else {
			elapsed += 2400 * time.Millisecond
		}
		step++
		return ts
	}

	suspicious := false
	for j := 0; j < 31; j++ {
		suspicious = w.Observe("client-a")
	}
	if !suspicious {
		t.Error("31 requests inside one minute should be suspicious")
	}
}

func TestRateWindowRapidFire(t *testing.T) {
	w := NewRateWindow()
	base := time.Now()
	step := 0
	w.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * 100 * time.Millisecond)
	}

	var suspicious bool
	for j := 0; j < 5; j++ {
		suspicious = w.Observe("client-b")
	}
	if !suspicious {
		t.Error("Five requests 100ms apart should be suspicious")
	}
}

func TestRateWindowMetronome(t *testing.T) {
	// Perfectly even intervals mean a scheduler, not a person.
	w := NewRateWindow()
	base := time.Now()
	step := 0
	w.now = func() time.Time {
		step++
		return base.Add(time.Duration(step) * time.Second)
	}

	var suspicious bool
	for j := 0; j < 6; j++ {
		suspicious = w.Observe("client-c")
	}
	if !suspicious {
		t.Error("Zero-variance intervals should be suspicious")
	}
}

func TestRateWindowHumanPace(t *testing.T) {
	w := NewRateWindow()
	base := time.Now()
	offsets := []time.Duration{0, 800 * time.Millisecond, 2100 * time.Millisecond, 4200 * time.Millisecond, 5100 * time.Millisecond}
	idx := 0
	w.now = func() time.Time {
		ts := base.Add(offsets[idx])
		idx++
		return ts
	}

	var suspicious bool
	for range offsets {
		suspicious = w.Observe("client-d")
	}
	if suspicious {
		t.Error("Jittered human pacing should not be suspicious")
	}
}

func TestRateWindowSweep(t *testing.T) {
	w := NewRateWindow()
	base := time.Now()
	w.now = func() time.Time { return base }
	w.Observe("stale-client")

	w.now = func() time.Time { return base.Add(10 * time.Minute) }
	if removed := w.Sweep(5 * time.Minute); removed != 1 {
		t.Errorf("Expected 1 stale client removed, got %d", removed)
	}
}

func TestLimiter(t *testing.T) {
	l := NewLimiter(3, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }

	for j := 0; j < 3; j++ {
		if !l.Allow("ip-1") {
			t.Fatalf("Request %d should be allowed", j+1)
		}
	}
	if l.Allow("ip-1") {
		t.Error("Fourth request should be denied")
	}
	if !l.Allow("ip-2") {
		t.Error("Other keys should be unaffected")
	}

	// Window rolls over.
	l.now = func() time.Time { return base.Add(2 * time.Minute) }
	if !l.Allow("ip-1") {
		t.Error("Request after window expiry should be allowed")
	}
}

func TestLimiterSweep(t *testing.T) {
	l := NewLimiter(10, time.Minute)
	base := time.Now()
	l.now = func() time.Time { return base }
	l.Allow("old")

	l.now = func() time.Time { return base.Add(5 * time.Minute) }
	if removed := l.Sweep(); removed != 1 {
		t.Errorf("Expected 1 idle key removed, got %d", removed)
	}
}

func TestScrubHeaders(t *testing.T) {
	h := ScrubHeaders()

	if h["Cache-Control"] != "no-store" {
		t.Errorf("Expected no-store, got %q", h["Cache-Control"])
	}
	if h["X-Content-Type-Options"] != "nosniff" {
		t.Errorf("Expected nosniff, got %q", h["X-Content-Type-Options"])
	}
	if _, err := uuid.Parse(h["X-Request-Id"]); err != nil {
		t.Errorf("X-Request-Id should be a UUID: %v", err)
	}
	if len(h) != 4 {
		t.Errorf("Expected exactly 4 outbound headers, got %d", len(h))
	}
}

func TestGenericErrorDetail(t *testing.T) {
	pool := map[string]bool{
		"Something went wrong":            true,
		"Unable to process":               true,
		"Please try again":                true,
		"Request failed":                  true,
		"Service temporarily unavailable": true,
	}
	for i := 0; i < 20; i++ {
		if !pool[GenericErrorDetail()] {
			t.Fatal("Error detail outside the fixed pool")
		}
	}
}

func TestResponseJitter(t *testing.T) {
	for i := 0; i < 50; i++ {
		j := ResponseJitter()
		if j < 50*time.Millisecond || j > 150*time.Millisecond {
			t.Fatalf("Jitter %v outside [50ms, 150ms]", j)
		}
	}
}
