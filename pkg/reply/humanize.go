package reply

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

const (
	fillerChance     = 0.2
	hindiFillerCoin  = 0.5
	ellipsisChance   = 0.15
	duplicateChance  = 0.1
	artifactRate     = 0.3
	typoCharChance   = 0.02
	typoSubstitute   = 0.7
	delayJitterMs    = 50
	minTypingDelayMs = 50
)

var (
	fillerPhrases = []string{
		"hmm", "uh", "umm", "well", "so", "actually",
		"basically", "you know", "I mean", "like", "okay so",
	}
	hindiFillers = []string{
		"matlab", "haan", "accha", "woh", "arre",
		"dekho", "suno", "bolo", "kya", "thik hai",
	}

	// Adjacent keys on a QWERTY layout, the typos a hurried thumb makes.
	typoMap = map[rune][]rune{
		'a': {'s', 'q', 'z'},
		'e': {'w', 'r', 'd'},
		'i': {'u', 'o', 'k'},
		'o': {'i', 'p', 'l'},
		'n': {'m', 'b', 'h'},
		't': {'r', 'y', 'g'},
		's': {'a', 'd', 'w'},
	}
)

// Humanizer roughs up generated replies so they read like a distracted
// person typing on a phone rather than a model emitting clean prose.
type Humanizer struct {
	rng *rand.Rand
}

func NewHumanizer() *Humanizer {
	return &Humanizer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// WithRand replaces the randomness source. Tests use it to pin seeds.
func (h *Humanizer) WithRand(rng *rand.Rand) *Humanizer {
	h.rng = rng
	return h
}

// Humanize applies three independent mutations: a leading filler word
// (20%), trailing punctuation drift (15%), and a stutter that repeats
// one word mid-sentence (10%, only on longer replies). The filler pool
// follows the persona's language style, with a coin flip toward Hindi
// fillers even for English styles since Hinglish speakers mix freely.
func (h *Humanizer) Humanize(response, languageStyle string, addFillers bool) string {
	if addFillers && h.rng.Float64() < fillerChance {
		var filler string
		if strings.Contains(languageStyle, "hindi") || h.rng.Float64() < hindiFillerCoin {
			filler = hindiFillers[h.rng.Intn(len(hindiFillers))]
		} else {
			filler = fillerPhrases[h.rng.Intn(len(fillerPhrases))]
		}
		response = filler + ", " + response
	}

	if h.rng.Float64() < ellipsisChance {
		tails := []string{"...", "..", "."}
		response = strings.TrimRight(response, ".!?") + tails[h.rng.Intn(len(tails))]
	}

	if h.rng.Float64() < duplicateChance {
		words := strings.Fields(response)
		if len(words) > 3 {
			idx := 1 + h.rng.Intn(len(words)-1)
			stuttered := make([]string, 0, len(words)+1)
			stuttered = append(stuttered, words[:idx]...)
			stuttered = append(stuttered, words[idx])
			stuttered = append(stuttered, words[idx:]...)
			response = strings.Join(stuttered, " ")
		}
	}

	return response
}

// TypingArtifacts injects occasional adjacent-key typos. Seventy
// percent of messages pass through untouched; the rest get a roughly
// 1.4% per-character substitution, case preserved.
func (h *Humanizer) TypingArtifacts(text string) string {
	if h.rng.Float64() > artifactRate {
		return text
	}

	chars := []rune(text)
	for i, ch := range chars {
		if h.rng.Float64() >= typoCharChance {
			continue
		}
		subs, ok := typoMap[unicode.ToLower(ch)]
		if !ok {
			continue
		}
		if h.rng.Float64() >= typoSubstitute {
			continue
		}
		sub := subs[h.rng.Intn(len(subs))]
		if unicode.IsUpper(ch) {
			sub = unicode.ToUpper(sub)
		}
		chars[i] = sub
	}
	return string(chars)
}

// HumanDelay returns how long the persona plausibly takes to type a
// reply. Slow typists (elderly, rural) get the long bucket, phone-glued
// professionals and students the short one. A jitter of plus or minus
// 50ms keeps repeated turns from looking metronomic.
func (h *Humanizer) HumanDelay(personaType string) time.Duration {
	var lo, hi int
	switch {
	case strings.Contains(personaType, "elderly") || strings.Contains(personaType, "senior"):
		lo, hi = 300, 800
	case strings.Contains(personaType, "tech_naive") || strings.Contains(personaType, "rural"):
		lo, hi = 200, 500
	case strings.Contains(personaType, "professional") || strings.Contains(personaType, "student"):
		lo, hi = 50, 150
	default:
		lo, hi = 100, 300
	}

	ms := lo + h.rng.Intn(hi-lo+1)
	ms += h.rng.Intn(2*delayJitterMs+1) - delayJitterMs
	if ms < minTypingDelayMs {
		ms = minTypingDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}
