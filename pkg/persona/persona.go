// Package persona holds the victim persona catalog and the guardrails that
// keep generated replies in character. Every reply the agent sends passes
// through this package twice: once to pick who is speaking, once to verify
// the line could plausibly have come from them.
package persona

import (
	"math/rand"

	"github.com/jaal-labs/jaal/pkg/detect"
)

// Type identifies one simulated victim in the catalog.
type Type string

const (
	ElderlyAnxious     Type = "elderly_anxious"
	TechNaive          Type = "tech_naive"
	DesperateJobseeker Type = "desperate_jobseeker"
	GreedyInvestor     Type = "greedy_investor"
	WorriedParent      Type = "worried_parent"
	RuralFarmer        Type = "rural_farmer"
	YoungStudent       Type = "young_student"
	BusyProfessional   Type = "busy_professional"
	LonelySenior       Type = "lonely_senior"
	FirstTimeSeller    Type = "first_time_seller"
	ScaredVictim       Type = "scared_victim"
	TrustingHousewife  Type = "trusting_housewife"
)

func (t Type) String() string {
	return string(t)
}

// Tech literacy levels used by the catalog. Low literacy loosens grammar
// expectations and tightens the formal-vocabulary check.
const (
	LiteracyVeryLow = "very_low"
	LiteracyLow     = "low"
	LiteracyMedium  = "medium"
	LiteracyHigh    = "high"
)

// Profile describes one victim: who they are, how they write, and the canned
// lines available at each stage of a conversation. Profiles are shared
// read-only values; callers must not mutate the slices.
type Profile struct {
	Type              Type
	AgeRange          [2]int
	Occupation        string
	TechLiteracy      string
	LanguageStyle     string
	EmotionalTriggers []string

	// TypicalResponses open a conversation, DelayPhrases stretch it,
	// ExitPhrases close it without breaking character.
	TypicalResponses []string
	DelayPhrases     []string
	ExitPhrases      []string
}

// RandomTypical returns one of the persona's opening lines.
func (p *Profile) RandomTypical(rng *rand.Rand) string {
	return pickLine(rng, p.TypicalResponses)
}

// RandomStall returns a line from the combined typical and delay pools,
// the mid-conversation mix used once the opening turns are spent.
func (p *Profile) RandomStall(rng *rand.Rand) string {
	pool := make([]string, 0, len(p.TypicalResponses)+len(p.DelayPhrases))
	pool = append(pool, p.TypicalResponses...)
	pool = append(pool, p.DelayPhrases...)
	return pickLine(rng, pool)
}

// RandomExit returns one of the persona's disengagement lines.
func (p *Profile) RandomExit(rng *rand.Rand) string {
	return pickLine(rng, p.ExitPhrases)
}

// HasTrigger reports whether the persona reacts to the given emotional
// trigger tag.
func (p *Profile) HasTrigger(tags ...string) bool {
	for _, want := range tags {
		for _, got := range p.EmotionalTriggers {
			if got == want {
				return true
			}
		}
	}
	return false
}

// GetProfile returns the catalog entry for t. Unknown values fall back to
// the tech-naive persona, the safest default for an unclassified chat.
func GetProfile(t Type) *Profile {
	if p, ok := profiles[t]; ok {
		return p
	}
	return ProfileTechNaive
}

// ParseType maps a stored string back to a persona type, falling back to
// TechNaive the same way GetProfile does.
func ParseType(s string) Type {
	if _, ok := profiles[Type(s)]; ok {
		return Type(s)
	}
	return TechNaive
}

// scamPersonaMapping lists candidate personas per scam category, strongest
// match first.
var scamPersonaMapping = map[detect.ScamCategory][]Type{
	detect.CategoryDigitalArrest: {ElderlyAnxious, ScaredVictim, WorriedParent},
	detect.CategoryKYCPhishing:   {TechNaive, TrustingHousewife, ElderlyAnxious},
	detect.CategoryInvestment:    {GreedyInvestor, DesperateJobseeker, RuralFarmer},
	detect.CategoryJobScam:       {DesperateJobseeker, YoungStudent, RuralFarmer},
	detect.CategoryLotteryPrize:  {ElderlyAnxious, RuralFarmer, TechNaive},
	detect.CategoryRomance:       {LonelySenior, TrustingHousewife},
	detect.CategoryTechSupport:   {ElderlyAnxious, TechNaive, BusyProfessional},
	detect.CategoryCustomsParcel: {WorriedParent, ScaredVictim, BusyProfessional},
	detect.CategoryLoanFraud:     {DesperateJobseeker, RuralFarmer, YoungStudent},
	detect.CategoryCryptoScam:    {GreedyInvestor, YoungStudent},
	detect.CategoryDeepfake:      {BusyProfessional, WorriedParent},
	detect.CategorySimSwap:       {TechNaive, ElderlyAnxious},
	detect.CategoryQRCodeScam:    {FirstTimeSeller, TechNaive},
	detect.CategoryRefundScam:    {TrustingHousewife, TechNaive, ElderlyAnxious},
	detect.CategorySextortion:    {ScaredVictim, YoungStudent},
	detect.CategoryUnknown:       {TechNaive, ElderlyAnxious},
}

// SelectForScam picks a persona for the detected category. The first two
// turns always use the lead candidate so a flapping classifier cannot swap
// the persona mid-greeting; later turns may rotate within the pool.
func SelectForScam(category detect.ScamCategory, turnCount int, rng *rand.Rand) Type {
	candidates, ok := scamPersonaMapping[category]
	if !ok || len(candidates) == 0 {
		candidates = scamPersonaMapping[detect.CategoryUnknown]
	}
	if turnCount <= 2 {
		return candidates[0]
	}
	return candidates[intn(rng, len(candidates))]
}

// ExitLine returns a disengagement line for the persona.
func ExitLine(t Type, rng *rand.Rand) string {
	return GetProfile(t).RandomExit(rng)
}

// ReplyStyle is the coarse reply mood kept on each session record. It
// predates the full persona catalog and survives as the wire-visible
// summary of how the agent is behaving.
type ReplyStyle string

const (
	StyleAnxious     ReplyStyle = "anxious"
	StyleConfused    ReplyStyle = "confused"
	StyleCooperative ReplyStyle = "cooperative"
)

// ParseStyle maps a stored string to a reply style, defaulting to confused.
func ParseStyle(s string) ReplyStyle {
	switch ReplyStyle(s) {
	case StyleAnxious, StyleConfused, StyleCooperative:
		return ReplyStyle(s)
	default:
		return StyleConfused
	}
}

// StyleFor maps a persona to the reply style stored on the session.
func StyleFor(t Type) ReplyStyle {
	switch t {
	case ElderlyAnxious, ScaredVictim, WorriedParent, LonelySenior:
		return StyleAnxious
	case TrustingHousewife, FirstTimeSeller, GreedyInvestor, DesperateJobseeker:
		return StyleCooperative
	default:
		return StyleConfused
	}
}

// styleResponses are the last-resort template pools keyed by reply style,
// used when a session carries a style but no resolvable persona.
var styleResponses = map[ReplyStyle][]string{
	StyleAnxious: {
		"Oh no, what is happening? I got very scared reading this.",
		"Please don't block my account, I need it for my salary.",
		"What should I do? I am very worried now.",
		"Is this really from the bank? I am getting nervous.",
		"My heart is beating fast, please tell me what to do.",
	},
	StyleConfused: {
		"I don't understand all this, can you explain simply?",
		"What is KYC? I never heard of this before.",
		"Why will my account be blocked? I didn't do anything wrong.",
		"I don't use net banking much, what app should I open?",
		"Is this happening today only? I am confused.",
	},
	StyleCooperative: {
		"Okay okay, I will do whatever you say.",
		"Tell me step by step, I will follow.",
		"Should I give you my details? Which ones?",
		"I trust you, please help me fix this.",
		"What information do you need from me?",
	},
}

// styleClarifications stretch the middle turns of a style-only session.
var styleClarifications = []string{
	"But which app should I use? I have many apps.",
	"What is UPI ID? Is it same as phone number?",
	"Should I call my bank also? What is the number?",
	"I am at work, can I do this later?",
	"My son handles all this, should I ask him?",
}

// styleDelays buy time late in a style-only session.
var styleDelays = []string{
	"Wait, let me check my phone.",
	"One minute, I am trying to find the app.",
	"Hold on, I need to remember my password.",
	"Let me ask my family member, they know these things.",
	"I am in a meeting, can you wait 5 minutes?",
}

// styleExits close a style-only session.
var styleExits = []string{
	"I think I need to call my bank directly, thank you.",
	"My son is telling me not to share anything, sorry.",
	"I will visit my bank branch tomorrow, bye.",
	"I don't think I should share this on phone.",
	"Let me talk to my family first, I will call back.",
}

// StyleLine samples the style-keyed pools by conversation depth: openings
// for the first two turns, clarifications through turn five, then delays
// mixed with the style's own lines.
func StyleLine(style ReplyStyle, turnCount int, rng *rand.Rand) string {
	base, ok := styleResponses[style]
	if !ok {
		base = styleResponses[StyleConfused]
	}
	switch {
	case turnCount <= 2:
		return pickLine(rng, base)
	case turnCount <= 5:
		return pickLine(rng, styleClarifications)
	default:
		pool := make([]string, 0, len(styleDelays)+len(base))
		pool = append(pool, styleDelays...)
		pool = append(pool, base...)
		return pickLine(rng, pool)
	}
}

// StyleExitLine returns a generic exit line for style-only sessions.
func StyleExitLine(rng *rand.Rand) string {
	return pickLine(rng, styleExits)
}

// intn draws from rng when provided, else from the shared locked source.
func intn(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if rng != nil {
		return rng.Intn(n)
	}
	return rand.Intn(n)
}

func pickLine(rng *rand.Rand, lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[intn(rng, len(lines))]
}
