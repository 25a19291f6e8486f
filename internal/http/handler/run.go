package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"replyloop.app/engine/common/id"
	"replyloop.app/engine/internal/http/dto"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/queue"
)

type RunHandler struct {
	producer queue.Producer
}

func NewRunHandler(producer queue.Producer) *RunHandler {
	return &RunHandler{producer: producer}
}

// Enqueue hands a digest run to the worker. The response only promises the
// run was queued, not that a digest will go out; an empty run is a valid
// outcome on the worker side.
func (h *RunHandler) Enqueue(c *gin.Context) {
	ctx := c.Request.Context()

	task := queue.RunTask{
		RunID:  id.New(),
		UserID: middleware.UserID(c),
	}
	if span := trace.SpanContextFromContext(ctx); span.HasTraceID() {
		traceID := span.TraceID().String()
		task.TraceID = &traceID
	}

	if err := h.producer.Enqueue(ctx, task); err != nil {
		slog.ErrorContext(ctx, "failed to enqueue run", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue run"})
		return
	}

	c.JSON(http.StatusAccepted, dto.RunResponse{RunID: task.RunID})
}
