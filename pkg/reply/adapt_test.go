package reply

import (
	"math/rand"
	"testing"
)

func TestAdaptToContextPools(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	tests := []struct {
		name    string
		message string
		pool    []string
	}{
		{"credential push, formal register", "Kindly share your OTP immediately for verification", otpDelaysFormal},
		{"credential push, casual register", "otp batao jaldi", otpDelaysCasual},
		{"payment push, formal register", "Kindly transfer the amount immediately", paymentStallsFormal},
		{"payment push, casual register", "paise bhejo abhi upi se", paymentStallsCasual},
		{"threat ignores register", "police will arrest you today", fearLines},
		{"credential outranks payment", "Send the OTP and pay now", otpDelaysCasual},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdaptToContext("base line", tt.message, rng)
			if !containsLine(tt.pool, got) {
				t.Errorf("AdaptToContext(%q) = %q, not in the expected pool", tt.message, got)
			}
		})
	}
}

func TestAdaptToContextKeepsBase(t *testing.T) {
	got := AdaptToContext("Haan ji, bolo.", "hello how are you doing", rand.New(rand.NewSource(9)))
	if got != "Haan ji, bolo." {
		t.Errorf("AdaptToContext without trigger = %q, want base reply", got)
	}
}

func TestAdaptToContextMatchesCaseInsensitively(t *testing.T) {
	got := AdaptToContext("base", "SHARE YOUR OTP NOW", rand.New(rand.NewSource(9)))
	if got == "base" {
		t.Error("uppercase credential cue not matched")
	}
	if !containsLine(otpDelaysFormal, got) && !containsLine(otpDelaysCasual, got) {
		t.Errorf("AdaptToContext = %q, not a credential stall", got)
	}
}
