package webhook

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"basegraph.app/commitrelay/common/id"
	"basegraph.app/commitrelay/common/logger"
	"basegraph.app/commitrelay/internal/http/dto"
	"basegraph.app/commitrelay/internal/model"
	"basegraph.app/commitrelay/internal/service"
	"basegraph.app/commitrelay/internal/translator"
)

const (
	deliveryHeader = "X-GitHub-Delivery"
	eventHeader    = "X-GitHub-Event"
)

type CommitWebhookHandler struct {
	ingest       service.CommitIngestService
	maxBodyBytes int64
	traceHeader  string
}

func NewCommitWebhookHandler(ingest service.CommitIngestService, maxBodyBytes int64, traceHeader string) *CommitWebhookHandler {
	return &CommitWebhookHandler{
		ingest:       ingest,
		maxBodyBytes: maxBodyBytes,
		traceHeader:  traceHeader,
	}
}

func (h *CommitWebhookHandler) HandleEvent(c *gin.Context) {
	ctx := c.Request.Context()

	deliveryID := c.GetHeader(deliveryHeader)
	if deliveryID == "" {
		deliveryID = id.NewString()
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		DeliveryID: logger.Ptr(deliveryID),
		Component:  "commitrelay.http.webhook",
	})

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			slog.WarnContext(ctx, "webhook body too large", "limit", maxErr.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{Error: "payload too large", DeliveryID: deliveryID})
			return
		}
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "failed to read request body", DeliveryID: deliveryID})
		return
	}

	// Header keys are stored in canonical MIME form, so X-GitHub-Event arrives as X-Github-Event.
	msg := model.NewInboundMessage(string(body), c.Request.Header)

	params := service.IngestParams{
		DeliveryID: deliveryID,
		EventType:  c.GetHeader(eventHeader),
		Message:    msg,
	}
	if traceID := h.traceID(c); traceID != "" {
		params.TraceID = &traceID
	}

	result, err := h.ingest.Ingest(ctx, params)
	if err != nil {
		if errors.Is(err, translator.ErrNoTranslator) {
			slog.InfoContext(ctx, "no translator for webhook, ignoring", "event_type", params.EventType)
			c.JSON(http.StatusOK, dto.CommitWebhookResponse{Status: "ignored", DeliveryID: deliveryID})
			return
		}
		slog.ErrorContext(ctx, "failed to ingest commit webhook", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to process event", DeliveryID: deliveryID})
		return
	}

	if result.Result.IsFailure() {
		c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Error: result.Result.FailureMessage(), DeliveryID: deliveryID})
		return
	}

	c.JSON(http.StatusOK, dto.CommitWebhookResponse{
		Status:     "ok",
		DeliveryID: deliveryID,
		Translator: result.Translator,
		Commits:    len(result.Result.Commits()),
		Enqueued:   result.Enqueued,
	})
}

func (h *CommitWebhookHandler) traceID(c *gin.Context) string {
	if h.traceHeader != "" {
		if traceID := c.GetHeader(h.traceHeader); traceID != "" {
			return traceID
		}
	}
	if spanCtx := trace.SpanContextFromContext(c.Request.Context()); spanCtx.IsValid() {
		return spanCtx.TraceID().String()
	}
	return ""
}
