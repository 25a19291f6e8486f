package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"replyloop.app/engine/common/logger"
	"replyloop.app/engine/internal/model"
)

const (
	userIDKey   = "engine.user_id"
	userPlanKey = "engine.user_plan"

	userIDHeader   = "X-User-ID"
	userPlanHeader = "X-User-Plan"
)

// RequireUser extracts the authenticated user from headers set by the
// upstream session layer. Auth itself lives outside this service; requests
// reaching these routes without the headers are a routing misconfiguration.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(userIDHeader)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid user identity"})
			return
		}

		plan := model.Plan(c.GetHeader(userPlanHeader))
		if plan != model.PlanPaid {
			plan = model.PlanFree
		}

		c.Set(userIDKey, userID)
		c.Set(userPlanKey, plan)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{UserID: &userID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// UserID returns the authenticated user's ID. Safe only behind RequireUser.
func UserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// UserPlan returns the authenticated user's plan. Safe only behind RequireUser.
func UserPlan(c *gin.Context) model.Plan {
	if v, ok := c.Get(userPlanKey); ok {
		if plan, ok := v.(model.Plan); ok {
			return plan
		}
	}
	return model.PlanFree
}
