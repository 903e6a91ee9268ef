package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/commitrelay/internal/http/handler"
)

var _ = Describe("SchemaHandler", func() {
	It("publishes the commit record schema", func() {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/schema/commit", handler.NewSchemaHandler().CommitRecord)

		req := httptest.NewRequest(http.MethodGet, "/schema/commit", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var schema struct {
			Type       string                    `json:"type"`
			Properties map[string]json.RawMessage `json:"properties"`
			Required   []string                   `json:"required"`
		}
		Expect(json.Unmarshal(w.Body.Bytes(), &schema)).To(Succeed())
		Expect(schema.Type).To(Equal("object"))
		Expect(schema.Properties).To(HaveKey("author"))
		Expect(schema.Properties).To(HaveKey("timestamp"))
		Expect(schema.Properties).To(HaveKey("commit_id"))
		Expect(schema.Properties["timestamp"]).To(MatchJSON(`{"type": "string", "format": "date-time"}`))
		Expect(schema.Required).To(ContainElements("author", "timestamp", "message", "repo", "source", "commit_id"))
	})
})
