// Package digest turns a ranked opportunity set into a deliverable digest and
// owns the delivery boundary.
package digest

import (
	"fmt"
	"time"

	"replyloop.app/engine/internal/model"
)

// Assemble builds the digest for one run. Call only with a non-empty
// opportunity set; an empty run produces no digest at all.
func Assemble(runID, userID int64, opportunities []model.Opportunity, generatedAt time.Time) model.Digest {
	return model.Digest{
		RunID:         runID,
		UserID:        userID,
		Subject:       subject(len(opportunities), generatedAt),
		Opportunities: opportunities,
		GeneratedAt:   generatedAt,
	}
}

func subject(count int, generatedAt time.Time) string {
	noun := "opportunities"
	if count == 1 {
		noun = "opportunity"
	}
	return fmt.Sprintf("%d reply %s for %s", count, noun, generatedAt.Format("Jan 2"))
}
