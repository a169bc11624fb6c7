package reply

import (
	"math/rand"
	"strings"

	"github.com/jaal-labs/jaal/pkg/persona"
)

// Adaptation pools. Formal variants answer a formal-English scammer in
// the deferential register Indian scam victims reach for; the casual
// variants cover everyone else. Fear lines ignore register, panic has
// only one.
var (
	credentialCues = []string{"otp", "pin", "password", "cvv"}
	paymentCues    = []string{"upi", "transfer", "send", "pay", "amount"}
	threatCues     = []string{"arrest", "police", "legal", "court", "case", "warrant"}

	otpDelaysFormal = []string{
		"Sir, ek minute. OTP dhundh raha hun messages mein...",
		"Which OTP sir? Bahut saare messages aaye hain.",
		"Password yaad nahi aa raha, let me check my diary.",
		"Sir please hold, phone mein bahut apps hain.",
	}
	otpDelaysCasual = []string{
		"Ek minute, dhundh raha hun...",
		"Konsa OTP? Bahut saare messages aaye hain.",
		"Password yaad nahi aa raha, ruko.",
		"Phone mein bahut apps hain, konse wala?",
	}

	paymentStallsFormal = []string{
		"Sir, kitna amount transfer karna hai exactly?",
		"Okay sir, but what is your UPI ID?",
		"Let me check my account balance first sir.",
		"Sir, aaj ka limit cross ho gaya. Tomorrow okay?",
	}
	paymentStallsCasual = []string{
		"Kitna bhejne ka hai exactly?",
		"UPI ID kya hai aapka?",
		"Account mein balance check karna padega.",
		"Limit cross ho gayi hai aaj ki, kal chalega?",
	}

	fearLines = []string{
		"Sir please, mujhe bahut dar lag raha hai. Main kya karun?",
		"Oh god, arrest? Meri family ko pata chalega kya?",
		"Sir main innocent hun, please help me!",
		"Kya jail hogi? Please sir, kuch karo!",
	}
)

// AdaptToContext swaps the base reply for a targeted stall when the
// scammer's message presses on credentials, payment, or threats. These
// are the moments worth scripting: a credential demand gets a search
// delay, a payment push gets a question that extracts the handle, a
// threat gets fear. Anything else keeps the base reply.
func AdaptToContext(base, scammerMessage string, rng *rand.Rand) string {
	lowered := strings.ToLower(scammerMessage)
	formal := persona.DetectLanguage(scammerMessage) == persona.FormalEnglish

	if containsAny(lowered, credentialCues) {
		if formal {
			return pick(rng, otpDelaysFormal)
		}
		return pick(rng, otpDelaysCasual)
	}

	if containsAny(lowered, paymentCues) {
		if formal {
			return pick(rng, paymentStallsFormal)
		}
		return pick(rng, paymentStallsCasual)
	}

	if containsAny(lowered, threatCues) {
		return pick(rng, fearLines)
	}

	return base
}

func containsAny(content string, cues []string) bool {
	for _, cue := range cues {
		if strings.Contains(content, cue) {
			return true
		}
	}
	return false
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[intn(rng, len(pool))]
}

func intn(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	if rng == nil {
		return rand.Intn(n)
	}
	return rng.Intn(n)
}
