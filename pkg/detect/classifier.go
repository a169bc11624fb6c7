package detect

import "strings"

// === scam categories ===

// ScamCategory labels the scheme a conversation appears to follow.
type ScamCategory string

const (
	CategoryDigitalArrest  ScamCategory = "digital_arrest"
	CategoryKYCPhishing    ScamCategory = "kyc_phishing"
	CategoryInvestment     ScamCategory = "investment_fraud"
	CategoryJobScam        ScamCategory = "job_scam"
	CategoryLotteryPrize   ScamCategory = "lottery_prize"
	CategoryRomance        ScamCategory = "romance_scam"
	CategoryTechSupport    ScamCategory = "tech_support"
	CategoryCustomsParcel  ScamCategory = "customs_parcel"
	CategoryLoanFraud      ScamCategory = "loan_fraud"
	CategoryCryptoScam     ScamCategory = "crypto_scam"
	CategoryDeepfake       ScamCategory = "deepfake_impersonation"
	CategorySimSwap        ScamCategory = "sim_swap"
	CategoryQRCodeScam     ScamCategory = "qr_code_scam"
	CategoryRefundScam     ScamCategory = "refund_scam"
	CategorySextortion     ScamCategory = "sextortion"
	CategoryUnknown        ScamCategory = "unknown"
)

// String returns the wire label for the category.
func (c ScamCategory) String() string {
	return string(c)
}

// ParseCategory maps a stored label back to a category, defaulting to
// CategoryUnknown for anything unrecognized.
func ParseCategory(s string) ScamCategory {
	switch c := ScamCategory(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryDigitalArrest, CategoryKYCPhishing, CategoryInvestment,
		CategoryJobScam, CategoryLotteryPrize, CategoryRomance,
		CategoryTechSupport, CategoryCustomsParcel, CategoryLoanFraud,
		CategoryCryptoScam, CategoryDeepfake, CategorySimSwap,
		CategoryQRCodeScam, CategoryRefundScam, CategorySextortion:
		return c
	default:
		return CategoryUnknown
	}
}

// categoryKeywords map each category to its cue phrases. Declaration order
// doubles as the tie-break: when two categories score equally, the earlier
// one wins.
var categoryKeywords = []struct {
	Category ScamCategory
	Keywords []string
}{
	{CategoryDigitalArrest, []string{
		"digital arrest", "cyber police", "cyber cell", "cbi", "ed notice", "enforcement directorate",
		"narcotics", "money laundering", "hawala", "terror funding", "fir registered",
		"arrest warrant", "virtual court", "video verification", "skype verification",
		"under surveillance", "your aadhaar", "your pan linked", "suspicious transaction",
		"national security", "cyber crime branch", "crime branch", "high court order",
	}},
	{CategoryKYCPhishing, []string{
		"kyc", "kyc update", "kyc pending", "kyc expired", "verify account", "verify identity",
		"account blocked", "account suspended", "account freeze", "reactivate account",
		"complete verification", "pan verification", "aadhaar link", "bank verification",
		"update details", "re-kyc", "ekyc", "video kyc",
	}},
	{CategoryInvestment, []string{
		"guaranteed returns", "daily profit", "weekly returns", "100% profit", "double money",
		"forex trading", "stock tips", "ipo allotment", "pre-ipo", "insider tips",
		"trading platform", "investment opportunity", "high returns", "zero risk",
		"compounding interest", "refer and earn", "mlm", "multi level",
	}},
	{CategoryJobScam, []string{
		"work from home", "part time job", "typing job", "data entry", "easy money",
		"registration fee", "training fee", "job guarantee", "amazon job", "flipkart job",
		"online task", "review job", "like and subscribe", "telegram job", "whatsapp job",
	}},
	{CategoryLotteryPrize, []string{
		"lottery winner", "prize money", "you have won", "congratulations winner",
		"lucky draw", "jackpot", "claim prize", "processing fee", "tax payment",
		"international lottery", "whatsapp lottery", "google lottery",
	}},
	{CategoryRomance, []string{
		"gift stuck customs", "send money urgent", "stranded abroad", "military deployment",
		"business partner", "inheritance", "share life together", "marriage proposal",
		"visa fee", "flight ticket", "medical emergency abroad",
	}},
	{CategoryTechSupport, []string{
		"virus detected", "computer hacked", "microsoft support", "apple support",
		"remote access", "anydesk", "teamviewer", "quick support", "system compromised",
		"firewall breach", "subscription expired", "license renewal",
	}},
	{CategoryCustomsParcel, []string{
		"parcel detained", "customs clearance", "import duty", "seized package",
		"dhl courier", "fedex package", "drugs found", "illegal content",
		"pay customs fee", "release shipment", "international courier",
	}},
	{CategoryLoanFraud, []string{
		"instant loan", "pre-approved loan", "loan disbursement", "processing charges",
		"credit score", "loan rejected", "pay to release", "personal loan offer",
		"advance payment", "gst charges", "documentation fee",
	}},
	{CategoryCryptoScam, []string{
		"bitcoin investment", "crypto trading", "nft opportunity", "token presale",
		"airdrop", "wallet connect", "seed phrase", "private key",
		"mining pool", "staking rewards", "defi yield",
	}},
	{CategoryDeepfake, []string{
		"video call verification", "face verification", "live video required",
		"boss calling", "ceo urgent", "family emergency video", "ai generated",
	}},
	{CategorySimSwap, []string{
		"sim upgrade", "4g to 5g", "new sim required", "sim deactivation",
		"port number", "sim blocked", "telecom verification",
	}},
	{CategoryQRCodeScam, []string{
		"scan qr", "scan to receive", "qr payment", "scan for refund",
		"olx payment", "buyer qr", "seller qr",
	}},
	{CategoryRefundScam, []string{
		"refund pending", "excess payment", "refund initiated", "bank refund",
		"cancelled order refund", "insurance refund", "tax refund",
	}},
	{CategorySextortion, []string{
		"private photos", "video leaked", "webcam recorded", "adult website",
		"pay to delete", "reputation damage", "share contacts",
	}},
}

// Classify picks the scam category for a message. Phrases found in the
// message itself count double; phrases only present among the session's
// previously captured keywords count single. The winning category's score is
// matches/4 capped at 1. No matches anywhere returns (unknown, 0).
func Classify(message string, sessionKeywords []string) (ScamCategory, float64) {
	lowered := strings.ToLower(message)

	known := make(map[string]struct{}, len(sessionKeywords))
	for _, kw := range sessionKeywords {
		known[strings.ToLower(kw)] = struct{}{}
	}

	best := CategoryUnknown
	bestScore := 0.0

	for _, entry := range categoryKeywords {
		matches := 0
		for _, kw := range entry.Keywords {
			if strings.Contains(lowered, kw) {
				matches += 2
			} else if _, ok := known[kw]; ok {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := min64(float64(matches)/4.0, 1.0)
		if score > bestScore {
			best = entry.Category
			bestScore = score
		}
	}

	return best, bestScore
}

// === category profiles ===

// CategoryProfile summarizes how a scheme usually unfolds and how the
// honeypot should meet it.
type CategoryProfile struct {
	Category           ScamCategory
	Severity           int
	TypicalTactics     []string
	RecommendedPersona string
	MaxEngagementTurns int
}

var categoryProfiles = map[ScamCategory]CategoryProfile{
	CategoryDigitalArrest: {CategoryDigitalArrest, 10,
		[]string{"authority_impersonation", "fear_inducement", "isolation", "continuous_surveillance"},
		"elderly_anxious", 12},
	CategoryKYCPhishing: {CategoryKYCPhishing, 7,
		[]string{"urgency", "account_threat", "link_sharing"},
		"tech_naive", 8},
	CategoryInvestment: {CategoryInvestment, 8,
		[]string{"greed_exploitation", "social_proof", "urgency"},
		"greedy_investor", 10},
	CategoryJobScam: {CategoryJobScam, 6,
		[]string{"opportunity", "registration_fee", "task_completion"},
		"desperate_jobseeker", 8},
	CategoryLotteryPrize: {CategoryLotteryPrize, 5,
		[]string{"greed", "processing_fee", "tax_payment"},
		"elderly_anxious", 6},
	CategoryRomance: {CategoryRomance, 8,
		[]string{"emotional_manipulation", "emergency", "future_promises"},
		"lonely_senior", 15},
	CategoryTechSupport: {CategoryTechSupport, 7,
		[]string{"fear", "remote_access", "urgency"},
		"tech_naive", 8},
	CategoryCustomsParcel: {CategoryCustomsParcel, 8,
		[]string{"authority", "fear", "legal_threat"},
		"worried_parent", 10},
	CategoryLoanFraud: {CategoryLoanFraud, 6,
		[]string{"desperation_exploitation", "processing_fee", "urgency"},
		"desperate_jobseeker", 8},
	CategoryCryptoScam: {CategoryCryptoScam, 7,
		[]string{"fomo", "technical_jargon", "high_returns"},
		"greedy_investor", 8},
	CategoryDeepfake: {CategoryDeepfake, 9,
		[]string{"trust_exploitation", "urgency", "authority"},
		"busy_professional", 6},
	CategorySimSwap: {CategorySimSwap, 8,
		[]string{"telecom_impersonation", "upgrade_offer", "urgency"},
		"tech_naive", 6},
	CategoryQRCodeScam: {CategoryQRCodeScam, 6,
		[]string{"reversal_trick", "buyer_impersonation", "urgency"},
		"first_time_seller", 6},
	CategoryRefundScam: {CategoryRefundScam, 6,
		[]string{"greed", "bank_impersonation", "excess_payment"},
		"trusting_housewife", 8},
	CategorySextortion: {CategorySextortion, 9,
		[]string{"blackmail", "shame", "urgency"},
		"scared_victim", 5},
	CategoryUnknown: {CategoryUnknown, 5,
		[]string{"generic"},
		"tech_naive", 10},
}

// ProfileFor returns the profile for a category, falling back to unknown.
func ProfileFor(category ScamCategory) CategoryProfile {
	if p, ok := categoryProfiles[category]; ok {
		return p
	}
	return categoryProfiles[CategoryUnknown]
}
