package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/commitrelay/internal/http/middleware"
)

var _ = Describe("middleware", func() {
	var (
		router *gin.Engine
		buf    *bytes.Buffer
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		buf = &bytes.Buffer{}
		slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))

		router = gin.New()
		router.Use(middleware.Recovery())
		router.Use(middleware.Logger())
		router.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		router.GET("/panic", func(c *gin.Context) { panic("boom") })
	})

	It("logs completed requests", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

		Expect(w.Code).To(Equal(http.StatusNoContent))
		Expect(buf.String()).To(ContainSubstring(`"msg":"http request"`))
		Expect(buf.String()).To(ContainSubstring(`"status":204`))
	})

	It("recovers from panics with a 500", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(buf.String()).To(ContainSubstring("panic recovered"))
		Expect(buf.String()).To(ContainSubstring(`"panic":"boom"`))
	})
})
