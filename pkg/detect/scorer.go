package detect

import (
	"net/url"
	"strings"
)

// DefaultScamThreshold is the total-score cutoff used when no override is
// configured.
const DefaultScamThreshold = 0.7

// ScamScore is the verdict for a single message: three sub-scores, their
// weighted total, and the final call.
type ScamScore struct {
	KeywordScore float64 `json:"keyword_score"`
	IntentScore  float64 `json:"intent_score"`
	PatternScore float64 `json:"pattern_score"`
	TotalScore   float64 `json:"total_score"`
	IsScam       bool    `json:"is_scam"`
}

// intentWeights drive the intent sub-score: per-match weight and per-category
// cap, ordered by how directly the category maps to fraud.
var intentWeights = []struct {
	Category KeywordCategory
	Weight   float64
	Cap      float64
}{
	{KeywordDigitalArrest, 0.40, 0.80},
	{KeywordCredential, 0.30, 0.60},
	{KeywordThreat, 0.25, 0.50},
	{KeywordPayment, 0.20, 0.40},
	{KeywordUrgency, 0.15, 0.30},
}

// Score evaluates one message. threshold <= 0 falls back to the default.
//
// Total = 0.25*keyword + 0.55*intent + 0.2*pattern. The message is called a
// scam when the total crosses the threshold, when intent alone reaches 0.5,
// or when a moderate keyword score (>= 0.4) combines with concrete payment
// or link patterns (>= 0.3).
func Score(message string, threshold float64) ScamScore {
	if threshold <= 0 {
		threshold = DefaultScamThreshold
	}
	lowered := strings.ToLower(message)

	k := keywordScore(lowered)
	i := intentScore(lowered)
	p := patternScore(lowered)
	total := 0.25*k + 0.55*i + 0.2*p

	return ScamScore{
		KeywordScore: k,
		IntentScore:  i,
		PatternScore: p,
		TotalScore:   total,
		IsScam:       total >= threshold || i >= 0.5 || (k >= 0.4 && p >= 0.3),
	}
}

func keywordScore(lowered string) float64 {
	highSev := highSeveritySet()

	distinct := make(map[string]struct{})
	highSevMatches := 0
	matchedCategories := 0
	severitySum := 0

	for _, table := range Tables() {
		tableHit := false
		for _, kw := range table.Keywords {
			if !strings.Contains(lowered, kw) {
				continue
			}
			tableHit = true
			if _, dup := distinct[kw]; dup {
				continue
			}
			distinct[kw] = struct{}{}
			if _, high := highSev[kw]; high {
				highSevMatches++
			}
		}
		if tableHit {
			matchedCategories++
			severitySum += table.Severity
		}
	}

	if len(distinct) == 0 {
		return 0
	}

	base := min64(0.15*float64(len(distinct))+0.15*float64(highSevMatches), 0.6)
	bonus := min64(0.1*float64(matchedCategories)+float64(severitySum)/50.0, 0.4)
	return clamp01(base + bonus)
}

func intentScore(lowered string) float64 {
	byCategory := make(map[KeywordCategory]int)
	for _, table := range Tables() {
		for _, kw := range table.Keywords {
			if strings.Contains(lowered, kw) {
				byCategory[table.Category]++
			}
		}
	}

	var score float64
	for _, iw := range intentWeights {
		if n := byCategory[iw.Category]; n > 0 {
			score += min64(iw.Weight*float64(n), iw.Cap)
		}
	}
	return clamp01(score)
}

func patternScore(lowered string) float64 {
	var score float64

	if strings.Contains(lowered, "http://") || strings.Contains(lowered, "https://") {
		score += 0.2
		if hasShortenedLink(lowered) {
			score += 0.15
		}
	}

	if hasPSPHandle(lowered) {
		score += 0.3
	}

	if phonePattern.MatchString(lowered) {
		score += 0.1
	}

	for _, phrase := range actionPhrases {
		if strings.Contains(lowered, phrase) {
			score += 0.2
			break
		}
	}

	for _, phrase := range videoCallPhrases {
		if strings.Contains(lowered, phrase) {
			score += 0.25
			break
		}
	}

	return clamp01(score)
}

func hasShortenedLink(lowered string) bool {
	shorteners := ShortenerHosts()
	for _, raw := range linkPattern.FindAllString(lowered, -1) {
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
		if _, ok := shorteners[host]; ok {
			return true
		}
	}
	return false
}

func hasPSPHandle(lowered string) bool {
	suffixes := PSPSuffixes()
	for _, raw := range handlePattern.FindAllString(lowered, -1) {
		at := strings.LastIndex(raw, "@")
		if at < 0 {
			continue
		}
		if _, ok := suffixes[strings.ToLower(raw[at+1:])]; ok {
			return true
		}
	}
	return false
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func min64(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
