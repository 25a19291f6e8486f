package voice

import "replyloop.app/engine/internal/model"

// Levels per style dimension. Four named levels each; anything else is
// rejected at the profile-update boundary.
var dimensionLevels = map[model.StyleDimension][]model.StyleLevel{
	model.DimensionFormality:    {"casual", "relaxed", "polished", "formal"},
	model.DimensionHumor:        {"straight", "dry", "playful", "irreverent"},
	model.DimensionEnergy:       {"calm", "measured", "upbeat", "intense"},
	model.DimensionDirectness:   {"gentle", "diplomatic", "blunt", "provocative"},
	model.DimensionTechnicality: {"plainspoken", "accessible", "technical", "deep"},
	model.DimensionWarmth:       {"reserved", "cordial", "friendly", "effusive"},
	model.DimensionBrevity:      {"terse", "compact", "conversational", "expansive"},
	model.DimensionConviction:   {"exploratory", "balanced", "confident", "contrarian"},
}

// guidance maps every configured dimension level to the fixed style sentence
// injected into tier-1 prompts. One sentence per level, 32 total.
var guidance = map[model.StyleDimension]map[model.StyleLevel]string{
	model.DimensionFormality: {
		"casual":   "Write like a text to a friend: lowercase is fine, contractions always.",
		"relaxed":  "Keep it informal and loose, but use standard capitalization.",
		"polished": "Write cleanly and deliberately, like a well-edited note.",
		"formal":   "Use complete, grammatical sentences with a professional register.",
	},
	model.DimensionHumor: {
		"straight":   "Play it straight; no jokes or winking asides.",
		"dry":        "A touch of dry, deadpan humor is welcome when it fits.",
		"playful":    "Be lightly playful; wordplay and gentle teasing are fine.",
		"irreverent": "Irreverence is on-brand; take playful shots at sacred cows.",
	},
	model.DimensionEnergy: {
		"calm":     "Keep the energy low and unhurried.",
		"measured": "Stay even-keeled; never sound excited.",
		"upbeat":   "Bring visible enthusiasm without tipping into hype.",
		"intense":  "Write with urgency and conviction, like the topic matters a lot.",
	},
	model.DimensionDirectness: {
		"gentle":      "Soften disagreement; lead with what you appreciate.",
		"diplomatic":  "Be candid but tactful; acknowledge the other side first.",
		"blunt":       "Say the thing plainly; skip the cushioning.",
		"provocative": "Take the sharp angle; a little friction is the point.",
	},
	model.DimensionTechnicality: {
		"plainspoken": "Avoid jargon entirely; explain like the reader is smart but non-technical.",
		"accessible":  "Light technical detail is fine, but keep it readable for a general audience.",
		"technical":   "Use precise technical language; the audience is practitioners.",
		"deep":        "Go deep; specifics, numbers, and mechanism over summary.",
	},
	model.DimensionWarmth: {
		"reserved": "Keep emotional distance; respect over familiarity.",
		"cordial":  "Be polite and pleasant without being chummy.",
		"friendly": "Be warm and approachable, like talking to a peer you like.",
		"effusive": "Be generous with warmth and encouragement.",
	},
	model.DimensionBrevity: {
		"terse":          "One or two short sentences, maximum.",
		"compact":        "Keep it tight; every word earns its place.",
		"conversational": "A natural conversational length is fine.",
		"expansive":      "Use the full space when the thought deserves it.",
	},
	model.DimensionConviction: {
		"exploratory": "Frame ideas as open questions rather than conclusions.",
		"balanced":    "Hold positions loosely; note trade-offs.",
		"confident":   "State positions directly; you've earned the opinion.",
		"contrarian":  "Lead with the against-the-grain take when you have one.",
	},
}

// GuidanceFor returns the style sentence for a configured dimension level.
func GuidanceFor(dim model.StyleDimension, level model.StyleLevel) (string, bool) {
	levels, ok := guidance[dim]
	if !ok {
		return "", false
	}
	s, ok := levels[level]
	return s, ok
}

// Levels returns the valid levels for a dimension.
func Levels(dim model.StyleDimension) []model.StyleLevel {
	return dimensionLevels[dim]
}

// Dimensions returns the closed set of style dimensions in a stable order.
func Dimensions() []model.StyleDimension {
	return []model.StyleDimension{
		model.DimensionFormality,
		model.DimensionHumor,
		model.DimensionEnergy,
		model.DimensionDirectness,
		model.DimensionTechnicality,
		model.DimensionWarmth,
		model.DimensionBrevity,
		model.DimensionConviction,
	}
}
