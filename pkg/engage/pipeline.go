// Package engage runs the per-turn pipeline that turns one ingress
// message into the agent's next line.
//
// A turn scores the message, classifies and extracts on top of the
// session's accumulated state, then walks the engagement state machine:
// unflagged traffic gets a flat acknowledgment, flagged traffic gets an
// in-character generated reply until the strategy calls the engagement
// off, after which the persona exits and the intelligence dossier is
// dispatched. All session mutation happens inside the session lock, so
// the transcript, intel and flags commit together or not at all.
package engage

import (
	"context"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/persona"
	"github.com/jaal-labs/jaal/pkg/reply"
	"github.com/jaal-labs/jaal/pkg/session"
	"github.com/jaal-labs/jaal/pkg/strategy"
)

// benignAck is the reply for traffic the scorer does not flag.
const benignAck = "Thank you for your message."

// Reporter delivers the final dossier for a finished engagement.
// Implemented by callback.Dispatcher.
type Reporter interface {
	Send(ctx context.Context, sess *session.Session) bool
}

// Reply is the outcome of one processed ingress.
type Reply struct {
	Text             string
	SessionID        string
	ScamDetected     bool
	EngagementActive bool
	TurnCount        int

	// TypingDelay is how long a human playing this persona would take
	// to answer. The HTTP layer decides whether to actually wait it out.
	TypingDelay time.Duration

	// CallbackSent reports whether this turn dispatched the dossier.
	CallbackSent bool
}

// TurnMeta carries transport extras for one ingress: a replayed
// transcript used to seed a brand-new session, and opaque intake
// metadata that is logged but never interpreted.
type TurnMeta struct {
	History []session.Message
	Extra   map[string]any
}

// Config wires a Pipeline.
type Config struct {
	Sessions  *session.Manager
	Generator *reply.Generator
	Humanizer *reply.Humanizer
	Reporter  Reporter

	// MaxTurns caps every category's engagement budget; zero or
	// negative leaves the per-category budgets unclamped.
	MaxTurns int

	// Threshold is the scorer cutoff; zero or negative selects the
	// scorer default.
	Threshold float64

	Log *zap.Logger
}

// Pipeline processes turns. Safe for concurrent use; within one session
// the manager serializes turns, across sessions they run in parallel up
// to the manager's concurrency gate.
type Pipeline struct {
	sessions  *session.Manager
	generator *reply.Generator
	humanizer *reply.Humanizer
	reporter  Reporter
	log       *zap.Logger
	rng       *rand.Rand
	maxTurns  int
	threshold float64
}

// NewPipeline builds a pipeline from cfg. A nil generator selects the
// template-only path, a nil humanizer gets a time-seeded one, and a nil
// logger is replaced with a no-op logger.
func NewPipeline(cfg Config) *Pipeline {
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	if cfg.Generator == nil {
		cfg.Generator = reply.NewGenerator(nil, cfg.Log)
	}
	if cfg.Humanizer == nil {
		cfg.Humanizer = reply.NewHumanizer()
	}
	return &Pipeline{
		sessions:  cfg.Sessions,
		generator: cfg.Generator,
		humanizer: cfg.Humanizer,
		reporter:  cfg.Reporter,
		log:       cfg.Log,
		maxTurns:  cfg.MaxTurns,
		threshold: cfg.Threshold,
	}
}

// WithRand pins the pipeline's random source, used by tests to make
// persona selection and pool sampling deterministic.
func (p *Pipeline) WithRand(rng *rand.Rand) *Pipeline {
	p.rng = rng
	return p
}

type turnOutcome struct {
	text string
	fire bool
}

// HandleTurn processes one ingress message for the session. The state
// mutation runs under the session's lock; the dossier dispatch happens
// after the state is committed, on a context that survives a client
// disconnect.
func (p *Pipeline) HandleTurn(ctx context.Context, sessionID, text string, meta *TurnMeta) (Reply, error) {
	if meta != nil && len(meta.Extra) > 0 {
		p.log.Debug("ingress metadata",
			zap.String("session_id", sessionID), zap.Any("metadata", meta.Extra))
	}

	var out turnOutcome
	sess, err := p.sessions.Turn(ctx, sessionID, func(s *session.Session) error {
		if meta != nil && len(s.Messages) == 0 {
			seedHistory(s, meta.History)
		}
		out = p.advance(ctx, s, text)
		return nil
	})
	if err != nil {
		return Reply{}, err
	}

	fired := false
	if out.fire && p.reporter != nil {
		fired = p.reporter.Send(context.WithoutCancel(ctx), sess)
	}

	return Reply{
		Text:             out.text,
		SessionID:        sess.SessionID,
		ScamDetected:     sess.ScamDetected,
		EngagementActive: sess.EngagementActive,
		TurnCount:        sess.TurnCount,
		TypingDelay:      p.humanizer.HumanDelay(sess.PersonaType),
		CallbackSent:     fired,
	}, nil
}

// EndSession finalizes a session on explicit request: the dossier is
// dispatched when the engagement warrants one, then the record is
// removed. Returns the session as it stood at deletion time and whether
// the callback was delivered. A missing session surfaces as
// session.ErrNotFound.
func (p *Pipeline) EndSession(ctx context.Context, sessionID string) (*session.Session, bool, error) {
	sess, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, false, err
	}

	fired := false
	if p.reporter != nil && shouldReport(sess) {
		fired = p.reporter.Send(context.WithoutCancel(ctx), sess)
	}

	if _, err := p.sessions.Delete(ctx, sessionID); err != nil {
		p.log.Warn("session delete failed",
			zap.String("session_id", sessionID), zap.Error(err))
	}

	p.log.Info("session ended",
		zap.String("session_id", sessionID),
		zap.Bool("scam_detected", sess.ScamDetected),
		zap.Bool("callback_sent", fired))
	return sess, fired, nil
}

// advance is the state machine step for one ingress. It mutates s in
// place: detection flags and persona on first detection, then intel and
// pressure counters, then the transcript, and finally the reply for the
// state the session landed in.
func (p *Pipeline) advance(ctx context.Context, s *session.Session, text string) turnOutcome {
	verdict := detect.Score(text, p.threshold)

	category := detect.CategoryUnknown
	if verdict.IsScam || s.ScamDetected {
		category, _ = detect.Classify(text, s.ExtractedIntel.SuspiciousKeywords)
	}

	if verdict.IsScam && !s.ScamDetected {
		s.ScamDetected = true
		s.ScamCategory = category.String()
		s.ConfidenceLevel = verdict.TotalScore
		chosen := persona.SelectForScam(category, s.TurnCount, p.rng)
		s.PersonaType = chosen.String()
		s.PersonaStyle = string(persona.StyleFor(chosen))

		p.log.Info("scam engaged",
			zap.String("session_id", s.SessionID),
			zap.String("category", s.ScamCategory),
			zap.String("persona", s.PersonaType),
			zap.Float64("score", verdict.TotalScore))
	}

	s.ExtractedIntel = s.ExtractedIntel.Merge(detect.ExtractAll(text, s.ExtractedIntel.PhoneNumbers))
	strategy.ObserveIngress(s, text)
	s.Append(session.RoleScammer, text)

	var out turnOutcome
	switch {
	case !s.ScamDetected:
		out.text = benignAck

	case s.EngagementActive:
		keep, reason := strategy.ShouldContinue(s, detect.ParseCategory(s.ScamCategory), p.maxTurns)
		if keep {
			out.text = p.engagedLine(ctx, s, text)
			break
		}
		s.EngagementActive = false
		out.text = p.generator.ExitLine(persona.Type(s.PersonaType))
		out.fire = shouldReport(s)

		p.log.Info("engagement terminated",
			zap.String("session_id", s.SessionID),
			zap.String("reason", reason),
			zap.Int("turns", s.TurnCount),
			zap.Int("intel_items", s.ExtractedIntel.Total()))

	default:
		// Already terminated; keep answering in character without
		// reviving the engagement or re-dispatching the dossier.
		out.text = p.generator.ExitLine(persona.Type(s.PersonaType))
	}

	s.Append(session.RoleAgent, out.text)
	return out
}

// engagedLine produces the in-character reply for an active engagement:
// generate against the flow hint, swap in a contextual stall when the
// scammer is pushing credentials or payment, then humanize.
func (p *Pipeline) engagedLine(ctx context.Context, s *session.Session, text string) string {
	snap := strategy.AnalyzeFlow(s)

	line := p.generator.Generate(ctx, reply.Request{
		Persona:   persona.Type(s.PersonaType),
		Style:     s.PersonaStyle,
		Category:  detect.ParseCategory(s.ScamCategory),
		Message:   text,
		History:   s.Messages,
		TurnCount: s.TurnCount,
		FlowHint:  strategy.ResponseHint(snap, s.TurnCount),
	})

	line = reply.AdaptToContext(line, text, p.rng)

	profile := persona.GetProfile(persona.Type(s.PersonaType))
	line = p.humanizer.Humanize(line, profile.LanguageStyle, s.TurnCount > 1)
	return p.humanizer.TypingArtifacts(line)
}

// shouldReport gates the dossier: confirmed scams always report, and
// sessions that ran long or captured actionable intel report even when
// the flag never flipped.
func shouldReport(s *session.Session) bool {
	return s.ScamDetected || s.ExtractedIntel.Sufficient() || s.TurnCount >= 5
}

// seedHistory replays an externally supplied transcript into a fresh
// session. Roles are normalized; replayed ingress advances the turn
// counter exactly as a live message would, agent lines do not. Supplied
// timestamps are kept so the transcript reflects when the exchange
// actually happened.
func seedHistory(s *session.Session, history []session.Message) {
	for _, msg := range history {
		s.Append(session.NormalizeRole(msg.Role), msg.Content)
		if !msg.Timestamp.IsZero() {
			s.Messages[len(s.Messages)-1].Timestamp = msg.Timestamp
		}
	}
}
