package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"github.com/jaal-labs/jaal/pkg/callback"
	"github.com/jaal-labs/jaal/pkg/engage"
	"github.com/jaal-labs/jaal/pkg/hygiene"
	"github.com/jaal-labs/jaal/pkg/session"
)

// messageRequest is the platform ingestion format.
type messageRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// honeypotMessage is one entry of the intake's conversation format;
// timestamps are epoch milliseconds.
type honeypotMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// honeypotRequest is the intake ingestion format: the current message
// plus an optional replayed history used to seed brand-new sessions.
type honeypotRequest struct {
	SessionID           string            `json:"sessionId"`
	Message             honeypotMessage   `json:"message"`
	ConversationHistory []honeypotMessage `json:"conversationHistory"`
	Metadata            map[string]any    `json:"metadata"`
}

func badRequest(c fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).
		JSON(fiber.Map{"status": "error", "detail": detail})
}

func notFound(c fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).
		JSON(fiber.Map{"status": "error", "detail": "Session not found"})
}

func (s *Server) handleMessage(c fiber.Ctx) error {
	var req messageRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !hygiene.ValidateSessionID(req.SessionID) {
		return badRequest(c, "Invalid session ID format")
	}
	text := hygiene.Sanitize(req.Message)
	if !hygiene.ValidateMessage(text) {
		return badRequest(c, "Invalid message format")
	}

	out, err := s.processTurn(c, req.SessionID, text, nil)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":            "success",
		"reply":             out.Text,
		"session_id":        out.SessionID,
		"scam_detected":     out.ScamDetected,
		"engagement_active": out.EngagementActive,
	})
}

func (s *Server) handleHoneypot(c fiber.Ctx) error {
	var req honeypotRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if !hygiene.ValidateSessionID(req.SessionID) {
		return badRequest(c, "Invalid session ID format")
	}
	text := hygiene.Sanitize(req.Message.Text)
	if !hygiene.ValidateMessage(text) {
		return badRequest(c, "Message text required")
	}

	meta := &engage.TurnMeta{
		History: historyMessages(req.ConversationHistory),
		Extra:   req.Metadata,
	}

	out, err := s.processTurn(c, req.SessionID, text, meta)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"status": "success", "reply": out.Text})
}

// processTurn runs the shared ingress path for already-sanitized text:
// probe-check the body, hand to the pipeline, then pace the reply like
// a human typist.
func (s *Server) processTurn(c fiber.Ctx, sessionID, text string, meta *engage.TurnMeta) (engage.Reply, error) {
	if s.cfg.EnableTamperProtection {
		if probe, trigger := hygiene.DetectProbe(text, nil); probe {
			s.log.Warn("probe message",
				zap.String("session_id", sessionID), zap.String("trigger", trigger))
		}
	}

	out, err := s.pipeline.HandleTurn(c.Context(), sessionID, text, meta)
	if err != nil {
		return engage.Reply{}, err
	}

	s.pace(out)
	return out, nil
}

// pace holds the response for the persona's typing time, clamped into
// the configured delay band. A zero band disables pacing; idle
// (non-engaged) sessions answer immediately either way.
func (s *Server) pace(out engage.Reply) {
	if !out.ScamDetected || s.cfg.ResponseDelayMax <= 0 {
		return
	}
	delay := out.TypingDelay
	min := time.Duration(s.cfg.ResponseDelayMin * float64(time.Second))
	max := time.Duration(s.cfg.ResponseDelayMax * float64(time.Second))
	if delay < min {
		delay = min
	}
	if delay > max {
		delay = max
	}
	time.Sleep(delay)
}

func (s *Server) getSession(c fiber.Ctx) error {
	id := c.Params("id")
	if !hygiene.ValidateSessionID(id) {
		return badRequest(c, "Invalid session ID format")
	}

	sess, err := s.sessions.Get(c.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session_id":             sess.SessionID,
		"scam_detected":          sess.ScamDetected,
		"engagement_active":      sess.EngagementActive,
		"turn_count":             sess.TurnCount,
		"extracted_intelligence": sess.ExtractedIntel,
	})
}

func (s *Server) endSession(c fiber.Ctx) error {
	id := c.Params("id")
	if !hygiene.ValidateSessionID(id) {
		return badRequest(c, "Invalid session ID format")
	}

	sess, sent, err := s.pipeline.EndSession(c.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"status":                 "success",
		"session_id":             sess.SessionID,
		"callback_sent":          sent,
		"total_messages":         sess.TurnCount,
		"extracted_intelligence": sess.ExtractedIntel,
	})
}

func (s *Server) getSummary(c fiber.Ctx) error {
	id := c.Params("id")
	if !hygiene.ValidateSessionID(id) {
		return badRequest(c, "Invalid session ID format")
	}

	sess, err := s.sessions.Get(c.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		return notFound(c)
	}
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"session_id":             sess.SessionID,
		"scam_detected":          sess.ScamDetected,
		"scam_category":          sess.ScamCategory,
		"persona_type":           sess.PersonaType,
		"confidence_level":       sess.ConfidenceLevel,
		"engagement_active":      sess.EngagementActive,
		"turn_count":             sess.TurnCount,
		"total_messages":         sess.TotalMessages(),
		"extracted_intelligence": sess.ExtractedIntel,
		"agent_notes":            callback.AgentNotes(sess),
		"created_at":             sess.CreatedAt,
		"last_updated":           sess.LastUpdated,
	})
}

// historyMessages converts the intake's replayed transcript into
// session messages, keeping supplied timestamps.
func historyMessages(history []honeypotMessage) []session.Message {
	if len(history) == 0 {
		return nil
	}
	msgs := make([]session.Message, 0, len(history))
	for _, h := range history {
		if lowerTrim(h.Text) == "" {
			continue
		}
		msg := session.Message{
			Role:    session.NormalizeRole(h.Sender),
			Content: hygiene.Sanitize(h.Text),
		}
		if h.Timestamp > 0 {
			msg.Timestamp = time.UnixMilli(h.Timestamp).UTC()
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
