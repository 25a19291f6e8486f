package voice

import (
	"fmt"

	"replyloop.app/engine/internal/model"
)

// ValidateAttributes checks a voice-attribute map against the closed
// dimension and level sets. Validation happens here, at the profile-update
// boundary, so generation never has to defend against unknown values.
func ValidateAttributes(attrs map[model.StyleDimension]model.StyleLevel) error {
	for dim, level := range attrs {
		levels, ok := dimensionLevels[dim]
		if !ok {
			return fmt.Errorf("unknown style dimension %q", dim)
		}

		valid := false
		for _, l := range levels {
			if l == level {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid level %q for dimension %q", level, dim)
		}
	}
	return nil
}

// ValidateAvoidPatterns checks avoid-pattern tags against the closed set and
// rejects duplicates.
func ValidateAvoidPatterns(patterns []model.AvoidPattern) error {
	seen := make(map[model.AvoidPattern]bool, len(patterns))
	for _, p := range patterns {
		if _, ok := avoidDescriptions[p]; !ok {
			return fmt.Errorf("unknown avoid pattern %q", p)
		}
		if seen[p] {
			return fmt.Errorf("duplicate avoid pattern %q", p)
		}
		seen[p] = true
	}
	return nil
}
