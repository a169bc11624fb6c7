package reply

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/persona"
	"github.com/jaal-labs/jaal/pkg/session"
)

// Request carries everything the generator needs for one turn.
type Request struct {
	Persona   persona.Type // empty selects the legacy style pools
	Style     string       // persona style used when Persona is empty
	Category  detect.ScamCategory
	Message   string // current scammer message
	History   []session.Message
	TurnCount int
	FlowHint  string
}

// Generator produces the agent's next line. With a capability it asks
// Gemini first and treats any failure as a signal to fall back to the
// persona's template pools, so the pipeline never stalls on the model.
type Generator struct {
	capability TextCapability
	log        *zap.Logger
	rng        *rand.Rand
}

// NewGenerator builds a generator. capability may be nil for a
// template-only deployment; a nil logger is replaced with a no-op one.
func NewGenerator(capability TextCapability, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{capability: capability, log: log}
}

// WithRand pins the generator's random source, used by tests to make
// pool sampling deterministic.
func (g *Generator) WithRand(rng *rand.Rand) *Generator {
	g.rng = rng
	return g
}

// Generate returns the agent's next in-character line. Every candidate
// passes the self-corrector, then a consistency check against the
// agent's own recent lines; a candidate failing either is replaced
// from the persona's safe pools. The returned line is not humanized;
// callers apply the Humanizer after context adaptation.
func (g *Generator) Generate(ctx context.Context, req Request) string {
	scammerLang := persona.DetectLanguage(req.Message)

	var line string
	if g.capability != nil {
		profile := persona.GetProfile(req.Persona)
		system := buildSystemInstruction(profile, req.Category, scammerLang, req.FlowHint)
		prompt := buildPrompt(req.History, req.Message, req.TurnCount)

		generated, err := g.capability.GenerateLine(ctx, system, prompt)
		if err == nil {
			line = generated
		} else {
			g.log.Debug("model line failed, using template path", zap.Error(err))
		}
	}

	if line == "" {
		line = g.templateLine(req, scammerLang)
	}

	line = persona.CorrectReply(line, req.Persona, req.TurnCount, g.rng)

	if ok, _ := persona.CheckConsistency(line, agentLines(req.History, 3)); !ok {
		line = persona.SafeReplacement(req.Persona, req.TurnCount, g.rng)
	}

	return line
}

// ExitLine returns the persona's disengagement line, or a legacy style
// exit when no persona was ever assigned.
func (g *Generator) ExitLine(t persona.Type) string {
	if t == "" {
		return persona.StyleExitLine(g.rng)
	}
	return persona.ExitLine(t, g.rng)
}

// templateLine samples the canned pools. A formal-English scammer
// facing a low-literacy or fear-driven persona gets the Hinglish
// mismatch pools; otherwise depth in the conversation picks between
// opening lines and the stall mix. Sessions without an assigned
// persona fall back to the legacy style pools.
func (g *Generator) templateLine(req Request, scammerLang persona.LanguageStyle) string {
	if req.Persona == "" {
		return persona.StyleLine(persona.ParseStyle(req.Style), req.TurnCount, g.rng)
	}

	profile := persona.GetProfile(req.Persona)
	if scammerLang == persona.FormalEnglish {
		return persona.ContextLine(persona.FormalMismatchContext(profile), g.rng)
	}

	if req.TurnCount <= 2 {
		return profile.RandomTypical(g.rng)
	}
	return profile.RandomStall(g.rng)
}

func agentLines(history []session.Message, n int) []string {
	var lines []string
	for i := len(history) - 1; i >= 0 && len(lines) < n; i-- {
		if history[i].Role == session.RoleAgent {
			lines = append(lines, history[i].Content)
		}
	}
	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}
	return lines
}
