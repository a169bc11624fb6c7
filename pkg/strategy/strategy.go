// Package strategy decides how long an engagement keeps running and
// what the agent should aim for next.
//
// Each scam category carries its own engagement budget: a digital
// arrest con is worth stringing along for a dozen turns while a
// sextortion attempt is cut short. The flow analyzer in this package
// reads the recent transcript so replies stay coherent across turns.
package strategy

import (
	"strings"

	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/session"
)

// Stop reasons reported by ShouldContinue.
const (
	ReasonMaxTurns        = "max_turns"
	ReasonSufficientIntel = "sufficient_intel"
	ReasonPaymentPressure = "payment_pressure"
	ReasonContinue        = "continue_engagement"
)

// Config tunes engagement for one scam category.
type Config struct {
	MaxTurns        int
	IntelPriority   []string
	DelayFactor     float64
	ComplianceLevel float64
	FearResponse    bool
}

var configDigitalArrest = Config{
	MaxTurns:        12,
	IntelPriority:   []string{"phone_numbers", "bank_accounts", "upi_ids"},
	DelayFactor:     1.5,
	ComplianceLevel: 0.8,
	FearResponse:    true,
}

var configKYCPhishing = Config{
	MaxTurns:        8,
	IntelPriority:   []string{"phishing_links", "upi_ids", "phone_numbers"},
	DelayFactor:     1.0,
	ComplianceLevel: 0.6,
	FearResponse:    false,
}

var configInvestment = Config{
	MaxTurns:        10,
	IntelPriority:   []string{"upi_ids", "bank_accounts", "phishing_links"},
	DelayFactor:     0.8,
	ComplianceLevel: 0.7,
	FearResponse:    false,
}

var configJobScam = Config{
	MaxTurns:        8,
	IntelPriority:   []string{"upi_ids", "phone_numbers", "phishing_links"},
	DelayFactor:     0.9,
	ComplianceLevel: 0.7,
	FearResponse:    false,
}

var configCustomsParcel = Config{
	MaxTurns:        10,
	IntelPriority:   []string{"bank_accounts", "upi_ids", "phone_numbers"},
	DelayFactor:     1.2,
	ComplianceLevel: 0.6,
	FearResponse:    true,
}

var configRomance = Config{
	MaxTurns:        15,
	IntelPriority:   []string{"bank_accounts", "phishing_links", "phone_numbers"},
	DelayFactor:     1.3,
	ComplianceLevel: 0.9,
	FearResponse:    false,
}

var configSextortion = Config{
	MaxTurns:        5,
	IntelPriority:   []string{"bank_accounts", "upi_ids"},
	DelayFactor:     0.5,
	ComplianceLevel: 0.3,
	FearResponse:    true,
}

var configQRCodeScam = Config{
	MaxTurns:        6,
	IntelPriority:   []string{"upi_ids", "phone_numbers"},
	DelayFactor:     0.7,
	ComplianceLevel: 0.5,
	FearResponse:    false,
}

// DefaultConfig covers every category without a dedicated entry.
var DefaultConfig = Config{
	MaxTurns:        10,
	IntelPriority:   []string{"upi_ids", "phone_numbers", "phishing_links"},
	DelayFactor:     1.0,
	ComplianceLevel: 0.5,
	FearResponse:    false,
}

var configs = map[detect.ScamCategory]Config{
	detect.CategoryDigitalArrest: configDigitalArrest,
	detect.CategoryKYCPhishing:   configKYCPhishing,
	detect.CategoryInvestment:    configInvestment,
	detect.CategoryJobScam:       configJobScam,
	detect.CategoryCustomsParcel: configCustomsParcel,
	detect.CategoryRomance:       configRomance,
	detect.CategorySextortion:    configSextortion,
	detect.CategoryQRCodeScam:    configQRCodeScam,
}

// ConfigFor returns the category's engagement config, falling back to
// DefaultConfig. maxTurnsCeiling caps MaxTurns when positive, so the
// operator-wide MAX_ENGAGEMENT_TURNS limit binds every category.
func ConfigFor(category detect.ScamCategory, maxTurnsCeiling int) Config {
	cfg, ok := configs[category]
	if !ok {
		cfg = DefaultConfig
	}
	if maxTurnsCeiling > 0 && cfg.MaxTurns > maxTurnsCeiling {
		cfg.MaxTurns = maxTurnsCeiling
	}
	return cfg
}

// IntelScore weighs captured intelligence: payment handles and bank
// accounts at 3, phishing links at 4, phone numbers at 1.
func IntelScore(in detect.Intelligence) int {
	score := 0
	if len(in.UPIIDs) > 0 {
		score += 3
	}
	if len(in.BankAccounts) > 0 {
		score += 3
	}
	if len(in.PhishingLinks) > 0 {
		score += 4
	}
	if len(in.PhoneNumbers) > 0 {
		score += 1
	}
	return score
}

// ShouldContinue decides whether the engagement keeps going after the
// current ingress has been recorded. Checks run in fixed order: turn
// budget, then captured intel, then payment pressure. The payment scan
// needs a full window of four ingress messages; three or more of them
// carrying a payment verb means the scammer is closing and the agent
// should exit before being pressed into a dead end.
func ShouldContinue(sess *session.Session, category detect.ScamCategory, maxTurnsCeiling int) (bool, string) {
	cfg := ConfigFor(category, maxTurnsCeiling)

	if sess.TurnCount >= cfg.MaxTurns {
		return false, ReasonMaxTurns
	}

	if IntelScore(sess.ExtractedIntel) >= 7 && sess.TurnCount >= 3 {
		return false, ReasonSufficientIntel
	}

	ingress := sess.IngressMessages(4)
	if len(ingress) >= 4 {
		pressure := 0
		for _, msg := range ingress {
			if containsAny(strings.ToLower(msg.Content), paymentKeywords) {
				pressure++
			}
		}
		if pressure >= 3 {
			return false, ReasonPaymentPressure
		}
	}

	return true, ReasonContinue
}

func containsAny(content string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			return true
		}
	}
	return false
}

func countContained(content string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(content, kw) {
			n++
		}
	}
	return n
}
