package voice

import "replyloop.app/engine/internal/model"

// avoidDescriptions feed the "never use" clause in tier-1 prompts.
var avoidDescriptions = map[model.AvoidPattern]string{
	model.AvoidHypeWords:         "hype words",
	model.AvoidGenericAgreement:  "generic agreement",
	model.AvoidEmojis:            "emojis",
	model.AvoidHashtags:          "hashtags",
	model.AvoidSelfPromotion:     "self-promotion",
	model.AvoidCorporateJargon:   "corporate jargon",
	model.AvoidUnsolicitedAdvice: "unsolicited advice",
}

// DefaultRules are always present in every generation prompt regardless of
// profile state.
var DefaultRules = []string{
	"Never end the reply with a question.",
	"Add one concrete observation of your own.",
	"Match the energy of a normal conversation, never exceed it.",
	"No hype words.",
}

// avoidRules are the extra rule sentences injected when a pattern is selected.
var avoidRules = map[model.AvoidPattern]string{
	model.AvoidHypeWords:         "No hype words.",
	model.AvoidGenericAgreement:  "Never reply with generic agreement; say something only this person could say.",
	model.AvoidEmojis:            "Do not use emojis.",
	model.AvoidHashtags:          "Do not use hashtags.",
	model.AvoidSelfPromotion:     "Do not promote yourself, your product, or your links.",
	model.AvoidCorporateJargon:   "No corporate jargon or buzzwords.",
	model.AvoidUnsolicitedAdvice: "Do not give advice unless the post explicitly asks for it.",
}

// AvoidDescription returns the human-readable name for an avoid pattern.
func AvoidDescription(p model.AvoidPattern) (string, bool) {
	d, ok := avoidDescriptions[p]
	return d, ok
}

// Rules returns the full anti-pattern rule list for a profile: the defaults
// plus one sentence per selected avoid pattern, deduplicated against the
// defaults where they overlap (hype words is both).
func Rules(patterns []model.AvoidPattern) []string {
	rules := make([]string, len(DefaultRules))
	copy(rules, DefaultRules)

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		seen[r] = true
	}

	for _, p := range patterns {
		rule, ok := avoidRules[p]
		if !ok || seen[rule] {
			continue
		}
		rules = append(rules, rule)
		seen[rule] = true
	}

	return rules
}
