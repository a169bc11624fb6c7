package detect

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Lexicon is the optional YAML overlay for tuning detection in the field
// without a redeploy: extra keywords per table, severity overrides, and
// additions to the domain/handle sets.
type Lexicon struct {
	// Keywords adds entries to a named table ("urgency", "credential", ...).
	Keywords map[string][]string `yaml:"keywords"`

	// Severity overrides a table's severity weight.
	Severity map[string]int `yaml:"severity"`

	TrustedDomains []string `yaml:"trusted_domains"`
	PSPSuffixes    []string `yaml:"psp_suffixes"`
	ShortenerHosts []string `yaml:"shortener_hosts"`
}

// Effective state after applying an overlay. nil slices/maps mean the
// built-ins are in force.
var (
	lexiconMu        sync.RWMutex
	lexiconTables    []KeywordTable
	lexiconHighSev   map[string]struct{}
	lexiconTrusted   map[string]struct{}
	lexiconPSP       map[string]struct{}
	lexiconShortener map[string]struct{}
)

// LoadLexicon reads lexicon.yaml from configDir and merges it over the
// built-in tables. A missing file is not an error; the built-ins stay in
// force so deployments need no config files at all.
func LoadLexicon(configDir string) error {
	path := filepath.Join(configDir, "lexicon.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var lex Lexicon
	if err := yaml.Unmarshal(data, &lex); err != nil {
		return fmt.Errorf("failed to parse lexicon: %w", err)
	}

	tables := mergeTables(builtinTables, &lex)

	lexiconMu.Lock()
	lexiconTables = tables
	lexiconHighSev = buildHighSeveritySet(tables)
	lexiconTrusted = mergeSet(builtinTrustedDomains, lex.TrustedDomains)
	lexiconPSP = mergeSet(builtinPSPSuffixes, lex.PSPSuffixes)
	lexiconShortener = mergeSet(builtinShortenerHosts, lex.ShortenerHosts)
	lexiconMu.Unlock()
	return nil
}

// ResetLexicon restores the built-in tables. Primarily for tests.
func ResetLexicon() {
	lexiconMu.Lock()
	lexiconTables = nil
	lexiconHighSev = nil
	lexiconTrusted = nil
	lexiconPSP = nil
	lexiconShortener = nil
	lexiconMu.Unlock()
}

// FindLexiconDir locates a directory containing lexicon.yaml, checking the
// LEXICON_CONFIG_DIR environment variable first, then conventional paths.
func FindLexiconDir() string {
	candidates := []string{
		os.Getenv("LEXICON_CONFIG_DIR"),
		"./config",
		"../config",
		"/app/config",
		"/etc/jaal",
	}

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(candidate, "lexicon.yaml")); err == nil {
			return candidate
		}
	}
	return ""
}

// Tables returns the active keyword tables: the overlay-merged set when a
// lexicon is loaded, otherwise the built-ins.
func Tables() []KeywordTable {
	lexiconMu.RLock()
	defer lexiconMu.RUnlock()

	if lexiconTables != nil {
		return lexiconTables
	}
	return builtinTables
}

func highSeveritySet() map[string]struct{} {
	lexiconMu.RLock()
	defer lexiconMu.RUnlock()

	if lexiconHighSev != nil {
		return lexiconHighSev
	}
	return builtinHighSeverity
}

// TrustedDomains returns hosts whose links are never treated as phishing.
func TrustedDomains() map[string]struct{} {
	lexiconMu.RLock()
	defer lexiconMu.RUnlock()

	if lexiconTrusted != nil {
		return lexiconTrusted
	}
	return builtinTrustedDomains
}

// PSPSuffixes returns the UPI payment-provider suffixes.
func PSPSuffixes() map[string]struct{} {
	lexiconMu.RLock()
	defer lexiconMu.RUnlock()

	if lexiconPSP != nil {
		return lexiconPSP
	}
	return builtinPSPSuffixes
}

// ShortenerHosts returns URL-shortener hosts that raise the pattern score.
func ShortenerHosts() map[string]struct{} {
	lexiconMu.RLock()
	defer lexiconMu.RUnlock()

	if lexiconShortener != nil {
		return lexiconShortener
	}
	return builtinShortenerHosts
}

func mergeTables(base []KeywordTable, lex *Lexicon) []KeywordTable {
	merged := make([]KeywordTable, len(base))
	for i, table := range base {
		merged[i] = KeywordTable{
			Category: table.Category,
			Severity: table.Severity,
			Keywords: append([]string(nil), table.Keywords...),
		}

		if sev, ok := lex.Severity[string(table.Category)]; ok && sev > 0 {
			merged[i].Severity = sev
		}

		extra, ok := lex.Keywords[string(table.Category)]
		if !ok {
			continue
		}
		seen := make(map[string]struct{}, len(merged[i].Keywords))
		for _, kw := range merged[i].Keywords {
			seen[kw] = struct{}{}
		}
		for _, kw := range extra {
			kw = strings.ToLower(strings.TrimSpace(kw))
			if kw == "" {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			merged[i].Keywords = append(merged[i].Keywords, kw)
		}
	}
	return merged
}

func mergeSet(base map[string]struct{}, extra []string) map[string]struct{} {
	merged := make(map[string]struct{}, len(base)+len(extra))
	for k := range base {
		merged[k] = struct{}{}
	}
	for _, v := range extra {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			merged[v] = struct{}{}
		}
	}
	return merged
}
