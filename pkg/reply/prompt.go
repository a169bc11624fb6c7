package reply

import (
	"fmt"
	"strings"

	"github.com/jaal-labs/jaal/pkg/detect"
	"github.com/jaal-labs/jaal/pkg/persona"
	"github.com/jaal-labs/jaal/pkg/session"
)

// historyWindow is how many transcript lines the prompt carries.
const historyWindow = 6

// buildSystemInstruction frames the roleplay: who the victim is, what
// scam they are caught in, how they should write, and the rules that
// keep the agent from blowing its cover.
func buildSystemInstruction(profile *persona.Profile, category detect.ScamCategory, lang persona.LanguageStyle, flowHint string) string {
	var b strings.Builder

	b.WriteString("You are roleplaying as a potential scam victim in India to engage and waste a scammer's time while gathering intelligence.\n\n")

	fmt.Fprintf(&b, "PERSONA DETAILS:\n")
	fmt.Fprintf(&b, "- Type: %s (%d-%d years old)\n", profile.Occupation, profile.AgeRange[0], profile.AgeRange[1])
	fmt.Fprintf(&b, "- Tech literacy: %s\n", profile.TechLiteracy)
	fmt.Fprintf(&b, "- Base language style: %s\n", profile.LanguageStyle)
	fmt.Fprintf(&b, "- Emotional triggers: %s\n\n", strings.Join(profile.EmotionalTriggers, ", "))

	fmt.Fprintf(&b, "SCAM TYPE DETECTED: %s\n\n", category)

	b.WriteString(persona.LanguageInstruction(lang, profile.Type))
	b.WriteString("\n")
	if flowHint != "" {
		fmt.Fprintf(&b, "\nCONTEXT HINT: %s\n", flowHint)
	}

	b.WriteString(`
CRITICAL RULES:
1. NEVER reveal you know it's a scam - no words like "scam", "fraud", "fake", "cheat", "dhoka"
2. NEVER mention AI, bot, honeypot, system, or that you're testing
3. Adapt your language based on scammer's language style - if they speak formal English, respond in Hinglish showing slight confusion
4. Show GENUINE emotions: fear for arrest scams, greed for lottery, confusion for tech issues
5. Ask naive questions to extract more info (phone number, UPI, bank details, links)
6. Delay giving sensitive information but ALWAYS seem willing eventually
7. Keep responses SHORT (1-2 sentences max, like real SMS/WhatsApp)
8. Include realistic hesitations: "umm", "ek minute", "wait wait"
9. For elderly/low-tech personas: use simpler words, more confusion
10. Make it feel like a REAL conversation - not scripted`)

	return b.String()
}

// buildPrompt assembles the per-turn prompt: the recent transcript,
// the scammer's current message and the turn number.
func buildPrompt(history []session.Message, message string, turnCount int) string {
	var lines []string
	start := 0
	if len(history) > historyWindow {
		start = len(history) - historyWindow
	}
	for _, msg := range history[start:] {
		speaker := "Me"
		if msg.Role == session.RoleScammer {
			speaker = "Scammer"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, msg.Content))
	}

	var b strings.Builder
	b.WriteString("RECENT CONVERSATION:\n")
	b.WriteString(strings.Join(lines, "\n"))
	fmt.Fprintf(&b, "\n\nSCAMMER'S CURRENT MESSAGE: %q\n", message)
	fmt.Fprintf(&b, "\nTURN NUMBER: %d\n", turnCount)
	b.WriteString("\nGenerate ONE short, realistic response as this persona. Just the response text, nothing else:")
	return b.String()
}
