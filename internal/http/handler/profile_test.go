package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"replyloop.app/engine/internal/http/handler"
	"replyloop.app/engine/internal/http/middleware"
	"replyloop.app/engine/internal/model"
	"replyloop.app/engine/internal/store"
)

var _ = Describe("ProfileHandler", func() {
	var (
		router *gin.Engine
		svc    *mockProfileStore
	)

	doJSON := func(method, path string, body any) *httptest.ResponseRecorder {
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(method, path, bytes.NewBuffer(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-User-ID", "7")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockProfileStore{}
		h := handler.NewProfileHandler(svc)

		v1 := router.Group("/v1")
		v1.Use(middleware.RequireUser())
		v1.GET("/profile", h.Get)
		v1.PUT("/profile", h.Update)
	})

	Describe("GET /v1/profile", func() {
		It("returns the stored profile", func() {
			svc.getFn = func(_ context.Context, userID int64) (*model.VoiceProfile, error) {
				Expect(userID).To(Equal(int64(7)))
				return &model.VoiceProfile{UserID: 7, Bio: "Writes about infra.", VoiceConfidence: 40}, nil
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
			req.Header.Set("X-User-ID", "7")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			var resp map[string]any
			Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
			Expect(resp["bio"]).To(Equal("Writes about infra."))
			Expect(resp["voice_confidence"]).To(BeEquivalentTo(40))
		})

		It("returns 404 when no profile exists yet", func() {
			svc.getFn = func(_ context.Context, _ int64) (*model.VoiceProfile, error) {
				return nil, store.ErrNotFound
			}

			req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
			req.Header.Set("X-User-ID", "7")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 401 without a user header", func() {
			req := httptest.NewRequest(http.MethodGet, "/v1/profile", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
		})
	})

	Describe("PUT /v1/profile", func() {
		It("recomputes confidence server-side on save", func() {
			var saved *model.VoiceProfile
			svc.upsertFn = func(_ context.Context, p *model.VoiceProfile) error {
				saved = p
				return nil
			}

			w := doJSON(http.MethodPut, "/v1/profile", map[string]any{
				"display_name": "Jordan",
				"bio":          "Staff engineer. Distributed systems.",
			})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(saved).NotTo(BeNil())
			Expect(saved.UserID).To(Equal(int64(7)))
			// display name 8 + bio 10
			Expect(saved.VoiceConfidence).To(Equal(18))
		})

		It("rejects unknown style dimensions", func() {
			w := doJSON(http.MethodPut, "/v1/profile", map[string]any{
				"bio":              "A bio long enough.",
				"voice_attributes": map[string]string{"sarcasm": "high"},
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("rejects unknown avoid patterns", func() {
			w := doJSON(http.MethodPut, "/v1/profile", map[string]any{
				"bio":            "A bio long enough.",
				"avoid_patterns": []string{"passive_voice"},
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})

		It("returns 500 when the store fails", func() {
			svc.upsertFn = func(_ context.Context, _ *model.VoiceProfile) error {
				return errors.New("pg down")
			}

			w := doJSON(http.MethodPut, "/v1/profile", map[string]any{"bio": "A bio."})

			Expect(w.Code).To(Equal(http.StatusInternalServerError))
		})
	})
})
