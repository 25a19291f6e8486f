package reply

import (
	"fmt"
	"strings"

	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/voice"
)

// maxExemplars bounds how many sample replies tier 2 injects as few-shot
// examples.
const maxExemplars = 3

const systemPreamble = `You draft short social-media replies on behalf of a specific person. Reply in their voice, not yours. Output only the reply text: no preamble, no quotation marks, no explanation. Keep it under 280 characters.`

// BuildSystemPrompt assembles the persona half of the prompt. The amount of
// personalization detail is gated by the profile's voice confidence:
//
//	tier 0 (always):  display name, bio, tone
//	tier 1 (>= 31):   positioning, per-dimension style guidance, never-use clause
//	tier 2 (>= 71):   up to three literal sample replies as few-shot exemplars
func BuildSystemPrompt(p model.VoiceProfile) string {
	var sb strings.Builder

	sb.WriteString(systemPreamble)
	sb.WriteString("\n\n# Who you are writing as\n\n")

	if p.DisplayName != "" {
		sb.WriteString(fmt.Sprintf("**Name**: %s\n", p.DisplayName))
	}
	if p.Bio != "" {
		sb.WriteString(fmt.Sprintf("**Bio**: %s\n", p.Bio))
	}
	if p.Tone != "" {
		sb.WriteString(fmt.Sprintf("**Tone**: %s\n", p.Tone))
	}

	tier := voice.Tier(p.VoiceConfidence)

	if tier >= 1 {
		if p.Positioning != nil && *p.Positioning != "" {
			sb.WriteString(fmt.Sprintf("**Positioning**: %s\n", *p.Positioning))
		}

		if guidance := styleGuidance(p); len(guidance) > 0 {
			sb.WriteString("\n# Style\n\n")
			for _, g := range guidance {
				sb.WriteString("- " + g + "\n")
			}
		}

		if clause := neverUseClause(p.AvoidPatterns); clause != "" {
			sb.WriteString("\n" + clause + "\n")
		}
	}

	if tier >= 2 {
		if exemplars := fewShotSection(p); exemplars != "" {
			sb.WriteString("\n" + exemplars)
		}
	}

	sb.WriteString("\n# Rules\n\n")
	for _, rule := range voice.Rules(p.AvoidPatterns) {
		sb.WriteString("- " + rule + "\n")
	}

	return sb.String()
}

// BuildUserPrompt formats the post being replied to.
func BuildUserPrompt(post model.Post) string {
	var sb strings.Builder

	sb.WriteString("Draft a reply to this post:\n\n")
	sb.WriteString(fmt.Sprintf("@%s (%s):\n%s\n", post.Author.Handle, post.Author.DisplayName, post.Text))

	return sb.String()
}

// styleGuidance maps each configured dimension to its fixed guidance
// sentence, in the stable dimension order.
func styleGuidance(p model.VoiceProfile) []string {
	var out []string
	for _, dim := range voice.Dimensions() {
		level, ok := p.VoiceAttributes[dim]
		if !ok || level == "" {
			continue
		}
		if g, ok := voice.GuidanceFor(dim, level); ok {
			out = append(out, g)
		}
	}
	return out
}

// neverUseClause builds the "never use" sentence from configured avoid
// patterns. Empty when none are set.
func neverUseClause(patterns []model.AvoidPattern) string {
	var names []string
	for _, p := range patterns {
		if d, ok := voice.AvoidDescription(p); ok {
			names = append(names, d)
		}
	}
	if len(names) == 0 {
		return ""
	}
	return "Never use: " + strings.Join(names, ", ") + "."
}

// fewShotSection renders up to three real sample replies as exemplars,
// falling back to the legacy free-text examples field when no structured
// samples exist.
func fewShotSection(p model.VoiceProfile) string {
	var sb strings.Builder

	if len(p.SampleReplies) > 0 {
		sb.WriteString("# Examples of replies this person actually wrote\n\n")
		sb.WriteString("Match this voice closely.\n\n")

		samples := p.SampleReplies
		if len(samples) > maxExemplars {
			samples = samples[:maxExemplars]
		}
		for i, s := range samples {
			sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
		}
		return sb.String()
	}

	if p.ExampleReplies != "" {
		sb.WriteString("# Example replies\n\n")
		sb.WriteString("Match this voice closely.\n\n")
		sb.WriteString(p.ExampleReplies)
		sb.WriteString("\n")
		return sb.String()
	}

	return ""
}
