package detect

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/jaal-labs/jaal/pkg/hygiene"
)

// === extraction patterns ===

var (
	handlePattern  = regexp.MustCompile(`[a-zA-Z0-9._\-]+@[a-zA-Z]+`)
	phonePattern   = regexp.MustCompile(`(?:\+91[\s\-]?)?[6-9]\d{9}`)
	linkPattern    = regexp.MustCompile("https?://[^\\s<>\"{}|\\\\^`\\[\\]]+")
	cardPattern    = regexp.MustCompile(`\b\d{4}[\s\-]?\d{4}[\s\-]?\d{4}[\s\-]?\d{4}\b`)
	accountPattern = regexp.MustCompile(`\b\d{9,18}\b`)
	digitsOnly     = regexp.MustCompile(`\D`)
)

// Intelligence is what an engagement harvests from scammer messages. Lists
// behave as insertion-ordered sets: values are normalized, never duplicated,
// and never removed once captured.
type Intelligence struct {
	UPIIDs             []string `json:"upi_ids"`
	PhoneNumbers       []string `json:"phone_numbers"`
	PhishingLinks      []string `json:"phishing_links"`
	BankAccounts       []string `json:"bank_accounts"`
	SuspiciousKeywords []string `json:"suspicious_keywords"`
}

// Merge returns the union of two captures, keeping the receiver's ordering
// and appending the other's new values in their own order.
func (in Intelligence) Merge(other Intelligence) Intelligence {
	return Intelligence{
		UPIIDs:             appendNew(in.UPIIDs, other.UPIIDs),
		PhoneNumbers:       appendNew(in.PhoneNumbers, other.PhoneNumbers),
		PhishingLinks:      appendNew(in.PhishingLinks, other.PhishingLinks),
		BankAccounts:       appendNew(in.BankAccounts, other.BankAccounts),
		SuspiciousKeywords: appendNew(in.SuspiciousKeywords, other.SuspiciousKeywords),
	}
}

// Total counts every captured item across the five lists.
func (in Intelligence) Total() int {
	return len(in.UPIIDs) + len(in.PhoneNumbers) + len(in.PhishingLinks) +
		len(in.BankAccounts) + len(in.SuspiciousKeywords)
}

// Sufficient reports whether the capture alone justifies ending an
// engagement: any payment handle or phishing link, or a phone number
// corroborated by at least three suspicious keywords.
func (in Intelligence) Sufficient() bool {
	if len(in.UPIIDs) >= 1 || len(in.PhishingLinks) >= 1 {
		return true
	}
	return len(in.PhoneNumbers) >= 1 && len(in.SuspiciousKeywords) >= 3
}

// ExtractAll harvests every intelligence type from one message.
// sessionPhones are the numbers already captured this session; they mask
// identical digit runs from the account extractor.
func ExtractAll(message string, sessionPhones []string) Intelligence {
	phones := ExtractPhones(message)

	knownPhones := append(append([]string(nil), sessionPhones...), phones...)

	return Intelligence{
		UPIIDs:             ExtractHandles(message),
		PhoneNumbers:       phones,
		PhishingLinks:      ExtractLinks(message),
		BankAccounts:       ExtractBankRefs(message, knownPhones),
		SuspiciousKeywords: MatchKeywords(strings.ToLower(message)),
	}
}

// ExtractHandles returns UPI-style payment handles. An @-suffix matching a
// common mailbox provider marks an email address, which is dropped.
func ExtractHandles(message string) []string {
	var handles []string
	seen := make(map[string]struct{})

	for _, match := range handlePattern.FindAllString(message, -1) {
		parts := strings.Split(match, "@")
		if len(parts) != 2 {
			continue
		}
		if _, email := commonEmailDomains[strings.ToLower(parts[1])]; email {
			continue
		}
		normalized := hygiene.NormalizeHandle(match)
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		handles = append(handles, normalized)
	}
	return handles
}

// ExtractPhones returns Indian mobile numbers normalized to +91 form.
func ExtractPhones(message string) []string {
	var phones []string
	seen := make(map[string]struct{})

	for _, match := range phonePattern.FindAllString(message, -1) {
		normalized := hygiene.NormalizePhone(match)
		if normalized == "" {
			continue
		}
		if _, dup := seen[normalized]; dup {
			continue
		}
		seen[normalized] = struct{}{}
		phones = append(phones, normalized)
	}
	return phones
}

// ExtractLinks returns http(s) URLs whose host is not a trusted domain.
func ExtractLinks(message string) []string {
	trusted := TrustedDomains()

	var links []string
	seen := make(map[string]struct{})

	for _, link := range linkPattern.FindAllString(message, -1) {
		if _, dup := seen[link]; dup {
			continue
		}
		u, err := url.Parse(link)
		if err != nil {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if _, ok := trusted[host]; ok {
			continue
		}
		seen[link] = struct{}{}
		links = append(links, link)
	}
	return links
}

// ExtractBankRefs returns card numbers and bank account candidates.
//
// 16-digit card shapes are always taken (separators stripped). Bare 9-18
// digit runs are ambiguous, so they must clear four gates: the message talks
// about banking, the digits are not a phone already known this session, they
// are not a plausible year, and they are not themselves phone-shaped.
func ExtractBankRefs(message string, knownPhones []string) []string {
	var refs []string
	seen := make(map[string]struct{})

	add := func(v string) {
		if _, dup := seen[v]; dup {
			return
		}
		seen[v] = struct{}{}
		refs = append(refs, v)
	}

	for _, match := range cardPattern.FindAllString(message, -1) {
		add(digitsOnly.ReplaceAllString(match, ""))
	}

	lowered := strings.ToLower(message)
	if !hasBankingContext(lowered) {
		return refs
	}

	phoneDigits := make(map[string]struct{}, len(knownPhones)*2)
	for _, p := range knownPhones {
		d := digitsOnly.ReplaceAllString(p, "")
		phoneDigits[d] = struct{}{}
		phoneDigits[strings.TrimPrefix(d, "91")] = struct{}{}
	}

	for _, match := range accountPattern.FindAllString(message, -1) {
		if rejectAccountCandidate(match, phoneDigits) {
			continue
		}
		add(match)
	}
	return refs
}

func rejectAccountCandidate(digits string, phoneDigits map[string]struct{}) bool {
	if _, phone := phoneDigits[digits]; phone {
		return true
	}
	if len(digits) == 4 {
		if year, err := strconv.Atoi(digits); err == nil && year >= 1900 && year <= 2100 {
			return true
		}
	}
	if len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9' {
		return true
	}
	return false
}

func appendNew(base, extra []string) []string {
	merged := append([]string(nil), base...)
	if len(extra) == 0 {
		return merged
	}
	seen := make(map[string]struct{}, len(merged))
	for _, v := range merged {
		seen[v] = struct{}{}
	}
	for _, v := range extra {
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		merged = append(merged, v)
	}
	return merged
}
