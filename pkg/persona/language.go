package persona

import (
	"math/rand"
	"regexp"
	"strings"
)

// LanguageStyle classifies the language mix of a scammer's message so the
// agent can answer in a register the scammer will find plausible.
type LanguageStyle string

const (
	PureHindi            LanguageStyle = "pure_hindi"
	PureEnglish          LanguageStyle = "pure_english"
	HinglishHeavyHindi   LanguageStyle = "hinglish_heavy_hindi"
	HinglishHeavyEnglish LanguageStyle = "hinglish_heavy_english"
	FormalEnglish        LanguageStyle = "formal_english"
	BrokenEnglish        LanguageStyle = "broken_english"
)

// hindiMarkers are romanized Hindi words common in Indian chat traffic.
// Matching is on whole words only.
var hindiMarkers = wordSet(
	"kya", "hai", "haan", "ji", "nahi", "aap", "mein", "mere", "mera", "meri",
	"kaise", "kahan", "kyun", "kab", "kaun", "kitna", "kal", "aaj",
	"paisa", "rupay", "lakh", "crore", "khata", "paise", "bhej", "bhejo",
	"karo", "karna", "karenge", "karunga", "karungi", "batao", "bolo",
	"samajh", "pata", "malum", "theek", "accha", "sahi", "galat",
	"aapka", "aapki", "tumhara", "unka", "iska", "uska", "hamara",
	"ruko", "chalo", "jaldi", "abhi", "baad", "pehle", "phir",
	"gaya", "gayi", "gaye", "raha", "rahi", "rahe", "hoga", "hogi",
	"liye", "wala", "wali", "wale", "bohot", "bahut", "zyada", "kam",
	"bhai", "didi", "uncle", "aunty", "beta", "beti", "sir",
	"block", "ho", "kar", "de", "le", "ja", "aa", "lo", "do", "ke",
)

// formalMarkers are the stiff officialese words scripted scammers lean on.
var formalMarkers = wordSet(
	"kindly", "please", "immediately", "urgent", "regarding",
	"verification", "compliance", "procedure", "suspended", "terminate",
	"department", "authority", "investigation", "confirmation", "suspend",
	"legal", "action", "notice", "violation", "penalty", "deadline",
	"dear", "respected", "hereby", "therefore", "furthermore", "moreover",
	"pursuant", "accordance", "regulations", "mandatory", "failure",
)

var (
	latinWordPattern = regexp.MustCompile(`\b[a-zA-Z]+\b`)
	devanagariRange  = regexp.MustCompile(`[\x{0900}-\x{097F}]`)
)

// DetectLanguage classifies the style of a single scammer message by the
// ratio of Hindi and formal-English marker words. Devanagari script wins
// outright; otherwise the thresholds below decide, defaulting to the
// Hinglish-heavy-English mix that dominates Indian scam traffic.
func DetectLanguage(message string) LanguageStyle {
	if devanagariRange.MatchString(message) {
		return PureHindi
	}

	words := map[string]struct{}{}
	for _, w := range latinWordPattern.FindAllString(strings.ToLower(message), -1) {
		words[w] = struct{}{}
	}
	if len(words) == 0 {
		return HinglishHeavyHindi
	}

	hindiCount, formalCount := 0, 0
	for w := range words {
		if _, ok := hindiMarkers[w]; ok {
			hindiCount++
		}
		if _, ok := formalMarkers[w]; ok {
			formalCount++
		}
	}

	hindiRatio := float64(hindiCount) / float64(len(words))
	formalRatio := float64(formalCount) / float64(len(words))

	switch {
	case hindiRatio > 0.25:
		return HinglishHeavyHindi
	case hindiRatio > 0.1 && formalRatio < 0.1:
		return HinglishHeavyEnglish
	case formalRatio > 0.1 || (formalCount >= 2 && hindiCount == 0):
		return FormalEnglish
	default:
		return HinglishHeavyEnglish
	}
}

// HindiWordCount counts marker-set Hindi words in text, used by the
// consistency check to spot a register shift between replies.
func HindiWordCount(text string) int {
	n := 0
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, ok := hindiMarkers[w]; ok {
			n++
		}
	}
	return n
}

// LanguageInstruction returns the prompt block steering the model's
// register for the detected scammer style and the persona's tech level.
func LanguageInstruction(style LanguageStyle, t Type) string {
	profile := GetProfile(t)

	switch style {
	case FormalEnglish:
		switch profile.TechLiteracy {
		case LiteracyHigh:
			return `LANGUAGE INSTRUCTION: The scammer is using formal English.
Respond in polite Hinglish - mix Hindi words naturally into English sentences.
Example: "Sir, mujhe samajh nahi aa raha, can you explain properly?"
Use respectful tone but show confusion. Don't use pure English.`
		case LiteracyMedium:
			return `LANGUAGE INSTRUCTION: The scammer is using formal English.
Respond in broken/simple English mixed with Hindi. Show you're trying to understand.
Example: "Sorry sir, I am not understanding properly. Kya problem hai exactly?"
Grammar mistakes are natural.`
		default:
			return `LANGUAGE INSTRUCTION: The scammer is using formal English.
Respond primarily in Hindi with very basic English words. Show you don't understand well.
Example: "Sir, English mein samajh nahi aata. Hindi mein bolo please."
Be hesitant and confused with English terms.`
		}
	case PureHindi:
		return `LANGUAGE INSTRUCTION: The scammer is speaking Hindi.
Respond naturally in Hindi/Hinglish matching the persona's regional style.
Use colloquial Hindi expressions and filler words.`
	default:
		return `LANGUAGE INSTRUCTION: The scammer is using Hinglish (mixed Hindi-English).
Match their style - respond in natural Hinglish.
Mix Hindi and English words fluidly as Indians naturally do.
Example: "Acha, but mujhe verify karna padega na bank se?"
Include common Hinglish expressions.`
	}
}

// Context pool names for ContextLine.
const (
	ContextFormalConfusion  = "formal_english_confusion"
	ContextFormalCompliance = "formal_english_compliance"
	ContextFormalFear       = "formal_english_fear"
	ContextCasualStall      = "casual_stall"
)

// contextPools hold ready Hinglish lines for the formal-English mismatch
// cases the template generator handles without a model call.
var contextPools = map[string][]string{
	ContextFormalConfusion: {
		"Sir, aapki English mein samajh nahi aa raha... kya problem hai?",
		"Please thoda simple mein batao, I am not getting clearly.",
		"Acha acha, but main confused hun. Hindi mein explain karo na.",
		"Sir ji, yeh verification wala part samajh nahi aaya mujhe.",
		"Sorry, mera English weak hai. Kya karna hai exactly?",
	},
	ContextFormalCompliance: {
		"Okay sir, aap jo bologe main karunga. Bas clear batao.",
		"Ji haan, I understand. Proceed kaise karna hai?",
		"Theek hai sir, aapke instructions follow karunga.",
		"Alright, mujhe step by step batao please.",
	},
	ContextFormalFear: {
		"Sir please, mujhe bahut tension ho rahi hai. Kya arrest hoga?",
		"Oh god, main kya karun? Please help me sir!",
		"Sir I am very scared, please tell what to do now.",
		"Yeh legal matter hai? Meri family ko pata chalega kya?",
	},
	ContextCasualStall: {
		"Ek minute ruko, phone ka battery low hai.",
		"Abhi busy hun thoda, 5 minute mein call back karta hun.",
		"Net slow chal raha hai, reconnect karna padega.",
		"Hold on, koi door pe hai. Abhi aata hun.",
	},
}

// ContextLine samples the named context pool; unknown names fall back to
// the casual stall pool.
func ContextLine(name string, rng *rand.Rand) string {
	pool, ok := contextPools[name]
	if !ok {
		pool = contextPools[ContextCasualStall]
	}
	return pickLine(rng, pool)
}

// FormalMismatchContext picks the context pool for a formal-English
// scammer given the persona's literacy and triggers: low-tech personas
// read confused, fear-driven ones read scared, the rest comply.
func FormalMismatchContext(p *Profile) string {
	switch {
	case p.TechLiteracy == LiteracyVeryLow || p.TechLiteracy == LiteracyLow:
		return ContextFormalConfusion
	case p.HasTrigger("fear", "fear_of_police", "scared"):
		return ContextFormalFear
	default:
		return ContextFormalCompliance
	}
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
