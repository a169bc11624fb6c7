// Package detect holds the conversational scam-detection core: keyword
// tables, the three-axis scorer, the category classifier, and the
// intelligence extractor. Everything here is pure computation over message
// text; no I/O, no session state.
package detect

import "strings"

// === keyword tables ===

// KeywordCategory names one concern-scoped keyword table.
type KeywordCategory string

const (
	KeywordUrgency       KeywordCategory = "urgency"
	KeywordThreat        KeywordCategory = "threat"
	KeywordPayment       KeywordCategory = "payment"
	KeywordCredential    KeywordCategory = "credential"
	KeywordDigitalArrest KeywordCategory = "digital_arrest"
	KeywordInvestment    KeywordCategory = "investment"
	KeywordJobScam       KeywordCategory = "job_scam"
	KeywordCustoms       KeywordCategory = "customs"
	KeywordTechSupport   KeywordCategory = "tech_support"
	KeywordRomance       KeywordCategory = "romance"
	KeywordRefund        KeywordCategory = "refund"
	KeywordQRCode        KeywordCategory = "qr_code"
	KeywordLoan          KeywordCategory = "loan"
	KeywordSextortion    KeywordCategory = "sextortion"
	KeywordIndiaPatterns KeywordCategory = "india_patterns"
)

// KeywordTable couples a keyword set with the severity weight its matches
// contribute to the keyword score.
type KeywordTable struct {
	Category KeywordCategory
	Severity int
	Keywords []string
}

var urgencyKeywords = []string{
	"urgent", "immediately", "right now", "today only", "expire", "last chance",
	"hurry", "quick", "asap", "deadline", "limited time", "act now", "don't delay",
	"time sensitive", "within 24 hours", "within 1 hour", "expires today",
	"final notice", "last warning", "immediate action", "right away",
}

var threatKeywords = []string{
	"account blocked", "account suspended", "account will be blocked", "legal action",
	"police complaint", "case filed", "arrest", "fine", "penalty", "blacklisted",
	"suspended", "terminated", "frozen", "disabled", "deactivated", "court order",
	"warrant issued", "fir", "criminal case", "jail", "imprisonment", "prosecution",
	"investigation", "under observation", "surveillance", "cyber crime",
}

var paymentKeywords = []string{
	"upi", "upi id", "send money", "transfer", "payment", "pay now", "google pay",
	"phonepe", "paytm", "bhim", "bank transfer", "neft", "imps", "rtgs",
	"wire transfer", "western union", "money gram", "bitcoin", "crypto", "usdt",
	"pay immediately", "transfer amount", "deposit money",
}

var credentialKeywords = []string{
	"otp", "password", "pin", "cvv", "card number", "atm pin", "bank details",
	"account number", "ifsc", "login", "verify", "confirm", "kyc", "update kyc",
	"kyc update", "pan card", "aadhaar", "passport", "driving license",
	"security code", "mpin", "upi pin", "net banking password", "debit card",
	"credit card", "expiry date", "date of birth",
}

var digitalArrestKeywords = []string{
	"digital arrest", "cyber police", "cyber cell", "cbi officer", "cbi calling",
	"enforcement directorate", "ed notice", "narcotics bureau", "ncb",
	"money laundering", "hawala", "terror funding", "pmla", "fema violation",
	"arrest warrant", "video court", "virtual hearing", "skype verification",
	"zoom call court", "under digital arrest", "do not disconnect",
	"stay on video", "your aadhaar linked", "suspicious sim", "multiple sims",
}

var investmentKeywords = []string{
	"guaranteed returns", "100% profit", "double money", "risk free investment",
	"forex signals", "crypto signals", "trading bot", "auto trading",
	"minimum investment", "daily income", "passive income", "compounding",
	"referral bonus", "mlm", "ponzi", "high yield", "exclusive opportunity",
	"limited slots", "vip membership", "premium signals",
}

var jobScamKeywords = []string{
	"work from home job", "part time income", "typing job", "data entry work",
	"amazon hiring", "flipkart jobs", "google jobs", "easy tasks",
	"registration fee required", "training charges", "refundable deposit",
	"telegram task", "whatsapp group job", "like subscribe earn",
	"review writing job", "product review", "app rating job",
}

var customsKeywords = []string{
	"parcel detained", "customs clearance fee", "import duty payment",
	"package seized", "drugs found parcel", "illegal items detected",
	"dhl customs", "fedex customs", "international courier seized",
	"pay duty charges", "parcel release fee", "contraband detected",
}

var techSupportKeywords = []string{
	"virus detected", "computer infected", "malware found", "hacker attack",
	"microsoft calling", "apple support", "windows security", "firewall breach",
	"remote access required", "install anydesk", "download teamviewer",
	"system compromised", "data breach detected", "subscription expired",
}

var romanceKeywords = []string{
	"stuck in airport", "gift detained customs", "need money urgent",
	"military contractor", "oil rig worker", "inheritance claim",
	"marry you", "future together", "visa processing fee", "flight ticket money",
	"medical emergency abroad", "business investment together",
}

var refundKeywords = []string{
	"refund initiated", "excess amount credited", "wrong transfer",
	"refund processing", "return money", "accidental transfer",
	"bank refund pending", "tax refund available", "insurance claim ready",
}

var qrCodeKeywords = []string{
	"scan qr to receive", "scan for payment", "qr code payment",
	"olx buyer", "scan to get money", "qr for refund",
}

var loanKeywords = []string{
	"instant loan approved", "pre-approved loan", "loan disbursement",
	"processing fee required", "gst charges loan", "loan release payment",
	"low cibil loan", "no document loan", "5 minute loan",
}

var sextortionKeywords = []string{
	"private video recorded", "webcam hacked", "adult video leak",
	"pay or share", "your contacts list", "reputation destroy",
	"video call recorded", "screenshot taken",
}

var indiaPatternKeywords = []string{
	"verify immediately", "kyc pending", "bank suspend", "click link",
	"call this number", "customer care", "toll free", "refund pending",
	"cashback", "lottery winner", "prize money", "rbi notification",
	"income tax", "it department", "sebi registered", "trai", "dot",
	"central government", "state government", "pm scheme", "govt scheme",
}

// builtinTables is the fixed scan order; matching iterates it so results are
// deterministic across runs.
var builtinTables = []KeywordTable{
	{KeywordUrgency, 4, urgencyKeywords},
	{KeywordThreat, 7, threatKeywords},
	{KeywordPayment, 4, paymentKeywords},
	{KeywordCredential, 8, credentialKeywords},
	{KeywordDigitalArrest, 10, digitalArrestKeywords},
	{KeywordInvestment, 7, investmentKeywords},
	{KeywordJobScam, 5, jobScamKeywords},
	{KeywordCustoms, 8, customsKeywords},
	{KeywordTechSupport, 6, techSupportKeywords},
	{KeywordRomance, 7, romanceKeywords},
	{KeywordRefund, 5, refundKeywords},
	{KeywordQRCode, 5, qrCodeKeywords},
	{KeywordLoan, 6, loanKeywords},
	{KeywordSextortion, 9, sextortionKeywords},
	{KeywordIndiaPatterns, 3, indiaPatternKeywords},
}

// highSeverityCategories mark the tables whose keywords count double in the
// keyword score: the ones scammers use when going for credentials or fear.
var highSeverityCategories = map[KeywordCategory]struct{}{
	KeywordDigitalArrest: {},
	KeywordSextortion:    {},
	KeywordCredential:    {},
}

func buildHighSeveritySet(tables []KeywordTable) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range tables {
		if _, ok := highSeverityCategories[t.Category]; !ok {
			continue
		}
		for _, kw := range t.Keywords {
			set[kw] = struct{}{}
		}
	}
	return set
}

var builtinHighSeverity = buildHighSeveritySet(builtinTables)

// === auxiliary sets for the pattern score and the extractor ===

var builtinPSPSuffixes = map[string]struct{}{
	"ybl": {}, "paytm": {}, "okaxis": {}, "oksbi": {}, "okhdfcbank": {},
	"okicici": {}, "upi": {}, "apl": {}, "axl": {}, "ibl": {},
}

var builtinTrustedDomains = map[string]struct{}{
	"google.com": {}, "facebook.com": {}, "twitter.com": {}, "linkedin.com": {},
}

var builtinShortenerHosts = map[string]struct{}{
	"bit.ly": {}, "tinyurl.com": {}, "goo.gl": {}, "t.co": {},
	"is.gd": {}, "cutt.ly": {}, "rb.gy": {}, "tiny.cc": {},
}

// commonEmailDomains separate real mailboxes from UPI handles; an @-suffix in
// this set is an email, not a payment handle.
var commonEmailDomains = map[string]struct{}{
	"gmail": {}, "yahoo": {}, "hotmail": {}, "outlook": {}, "email": {}, "mail": {},
}

var actionPhrases = []string{
	"click here", "click the link", "tap here", "open this", "scan qr", "download app",
}

var videoCallPhrases = []string{
	"video call", "video verification", "stay on video", "virtual hearing", "skype", "zoom",
}

// bankingContextKeywords gate the 9-18 digit account extractor; without one
// of these in the message a long digit run is probably not an account.
var bankingContextKeywords = []string{
	"account", "bank", "a/c", "acct", "ifsc", "branch", "neft", "imps", "rtgs",
	"deposit", "savings", "current account", "transfer",
}

// === matching helpers ===

// MatchKeywords returns the distinct keywords present in the lowered
// message, scanning tables in declaration order.
func MatchKeywords(lowered string) []string {
	var matched []string
	seen := make(map[string]struct{})
	for _, table := range Tables() {
		for _, kw := range table.Keywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			if strings.Contains(lowered, kw) {
				seen[kw] = struct{}{}
				matched = append(matched, kw)
			}
		}
	}
	return matched
}

// CategoriesOf maps previously matched keywords back to the tables they
// belong to, in table order. Used when summarizing tactics for the dossier.
func CategoriesOf(keywords []string) []KeywordCategory {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		set[strings.ToLower(kw)] = struct{}{}
	}

	var cats []KeywordCategory
	for _, table := range Tables() {
		for _, kw := range table.Keywords {
			if _, ok := set[kw]; ok {
				cats = append(cats, table.Category)
				break
			}
		}
	}
	return cats
}

func hasBankingContext(lowered string) bool {
	for _, kw := range bankingContextKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
