package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/common/id"
	"replyloop.app/engine/internal/http/handler"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/queue"
)

var _ = Describe("RunHandler", func() {
	var (
		router   *gin.Engine
		producer *mockProducer
	)

	BeforeEach(func() {
		Expect(id.Init(id.NodeServer)).To(Succeed())

		gin.SetMode(gin.TestMode)
		router = gin.New()
		producer = &mockProducer{}
		h := handler.NewRunHandler(producer)

		v1 := router.Group("/v1")
		v1.Use(middleware.RequireUser())
		v1.POST("/runs", h.Enqueue)
	})

	It("enqueues a run for the authenticated user", func() {
		req := httptest.NewRequest(http.MethodPost, "/v1/runs", nil)
		req.Header.Set("X-User-ID", "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusAccepted))
		Expect(producer.enqueued).To(HaveLen(1))
		Expect(producer.enqueued[0].UserID).To(Equal(int64(7)))
		Expect(producer.enqueued[0].RunID).NotTo(BeZero())

		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(HaveKey("run_id"))
	})

	It("returns 500 when the queue is unavailable", func() {
		producer.enqueueFn = func(_ context.Context, _ queue.RunTask) error {
			return errors.New("redis down")
		}

		req := httptest.NewRequest(http.MethodPost, "/v1/runs", nil)
		req.Header.Set("X-User-ID", "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
