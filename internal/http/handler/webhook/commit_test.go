package webhook_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"basegraph.app/commitrelay/common/logger"
	"basegraph.app/commitrelay/internal/http/dto"
	"basegraph.app/commitrelay/internal/http/handler/webhook"
	"basegraph.app/commitrelay/internal/queue"
	"basegraph.app/commitrelay/internal/service"
	"basegraph.app/commitrelay/internal/translator"
)

type fakeProducer struct {
	err      error
	messages []queue.CommitMessage
}

func (f *fakeProducer) Enqueue(ctx context.Context, msg queue.CommitMessage) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msg)
	return nil
}

func (f *fakeProducer) Close() error {
	return nil
}

func fixture(name string) []byte {
	data, err := os.ReadFile(filepath.Join("..", "..", "..", "translator", "testdata", name))
	Expect(err).ToNot(HaveOccurred())
	return data
}

var _ = Describe("CommitWebhookHandler", func() {
	var (
		router   *gin.Engine
		buf      *bytes.Buffer
		producer *fakeProducer
	)

	post := func(body []byte, headers map[string]string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/webhooks/commits", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		buf = &bytes.Buffer{}
		slog.SetDefault(slog.New(logger.NewTraceHandler(slog.NewJSONHandler(buf, nil))))

		producer = &fakeProducer{}
		registry := translator.NewRegistry(translator.NewGitHubTranslator(nil))
		ingest := service.NewCommitIngestService(registry, producer, nil)

		h := webhook.NewCommitWebhookHandler(ingest, 64*1024, "X-Trace-Id")
		router.POST("/webhooks/commits", h.HandleEvent)
	})

	It("translates a push delivery and enqueues its commits", func() {
		w := post(fixture("valid_message_three_commits.json"), map[string]string{
			"X-GitHub-Event":    "push",
			"X-GitHub-Delivery": "72d3162e-cc78-11e3-81ab-4c9367dc0958",
			"X-Trace-Id":        "trace-abc",
		})

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp dto.CommitWebhookResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp).To(Equal(dto.CommitWebhookResponse{
			Status:     "ok",
			DeliveryID: "72d3162e-cc78-11e3-81ab-4c9367dc0958",
			Translator: "github",
			Commits:    3,
			Enqueued:   3,
		}))

		Expect(producer.messages).To(HaveLen(3))
		Expect(*producer.messages[0].TraceID).To(Equal("trace-abc"))

		logStr := buf.String()
		Expect(logStr).To(ContainSubstring("delivery translated"))
		Expect(logStr).To(ContainSubstring(`"delivery_id":"72d3162e-cc78-11e3-81ab-4c9367dc0958"`))
		Expect(logStr).To(ContainSubstring(`"translator":"github"`))
		Expect(logStr).To(ContainSubstring(`"repository":"testing"`))
	})

	It("generates a delivery id when the header is missing", func() {
		w := post(fixture("valid_message.json"), map[string]string{"X-GitHub-Event": "push"})

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp dto.CommitWebhookResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.DeliveryID).ToNot(BeEmpty())
		Expect(resp.Commits).To(Equal(1))
	})

	It("ignores deliveries no translator accepts", func() {
		w := post([]byte(`{"action": "opened"}`), map[string]string{"X-GitHub-Event": "pull_request"})

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"status":"ignored"`))
		Expect(producer.messages).To(BeEmpty())
	})

	It("returns 422 with the failure message for malformed pushes", func() {
		w := post(fixture("invalid_message.json"), map[string]string{"X-GitHub-Event": "push"})

		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))

		var resp dto.ErrorResponse
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.Error).To(Equal(translator.GitHubFailureMessage))
		Expect(producer.messages).To(BeEmpty())
	})

	It("returns 422 for a non-JSON body", func() {
		w := post([]byte("not json"), map[string]string{"X-GitHub-Event": "push"})
		Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
	})

	It("rejects bodies over the configured limit", func() {
		body := []byte(`{"padding": "` + strings.Repeat("x", 64*1024) + `"}`)
		w := post(body, map[string]string{"X-GitHub-Event": "push"})

		Expect(w.Code).To(Equal(http.StatusRequestEntityTooLarge))
		Expect(producer.messages).To(BeEmpty())
	})

	It("returns 500 when commits cannot be enqueued", func() {
		producer.err = errors.New("redis down")

		w := post(fixture("valid_message.json"), map[string]string{"X-GitHub-Event": "push"})

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(buf.String()).To(ContainSubstring("failed to ingest commit webhook"))
	})
})
