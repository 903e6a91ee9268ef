package service

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"basegraph.app/commitrelay/common/logger"
	"basegraph.app/commitrelay/internal/model"
	"basegraph.app/commitrelay/internal/queue"
	"basegraph.app/commitrelay/internal/translator"
)

type IngestParams struct {
	DeliveryID string
	EventType  string
	Message    model.InboundMessage
	TraceID    *string
}

type IngestResult struct {
	Translator string
	Result     model.TranslationResult
	Enqueued   int
}

type CommitIngestService interface {
	// Ingest returns translator.ErrNoTranslator (wrapped) when no registered translator
	// accepts the message. A Failure result is returned with a nil error.
	Ingest(ctx context.Context, params IngestParams) (*IngestResult, error)
}

type commitIngestService struct {
	registry *translator.Registry
	queue    queue.Producer
	logger   *slog.Logger
}

func NewCommitIngestService(registry *translator.Registry, queue queue.Producer, logger *slog.Logger) CommitIngestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &commitIngestService{
		registry: registry,
		queue:    queue,
		logger:   logger,
	}
}

func (s *commitIngestService) Ingest(ctx context.Context, params IngestParams) (*IngestResult, error) {
	fields := logger.LogFields{
		DeliveryID: logger.Ptr(params.DeliveryID),
		Component:  "commitrelay.service.commit_ingest",
	}
	if params.EventType != "" {
		fields.EventType = logger.Ptr(params.EventType)
	}
	ctx = logger.WithLogFields(ctx, fields)

	sc := logger.StartSpan(ctx, "commit_ingest.ingest", trace.WithAttributes(
		attribute.String("delivery.id", params.DeliveryID),
	))
	defer sc.End()
	ctx = sc.Context()

	t, err := s.registry.Select(params.Message)
	if err != nil {
		return nil, fmt.Errorf("selecting translator: %w", err)
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{Translator: logger.Ptr(t.Name())})
	sc.Span().SetAttributes(attribute.String("translator", t.Name()))

	result := t.Execute(ctx, params.Message)
	if result.IsFailure() {
		s.logger.WarnContext(ctx, "translation failed", "reason", result.FailureMessage())
		return &IngestResult{Translator: t.Name(), Result: result}, nil
	}

	commits := result.Commits()
	if len(commits) > 0 {
		ctx = logger.WithLogFields(ctx, logger.LogFields{Repository: logger.Ptr(commits[0].Repo.Name)})
	}

	enqueued := 0
	for i, commit := range commits {
		if err := s.queue.Enqueue(ctx, queue.CommitMessage{
			DeliveryID: params.DeliveryID,
			Translator: t.Name(),
			Position:   i,
			Record:     commit,
			TraceID:    params.TraceID,
		}); err != nil {
			sc.RecordError(err)
			return nil, fmt.Errorf("enqueueing commit %d of %d: %w", i+1, len(commits), err)
		}
		enqueued++
	}
	sc.Span().SetAttributes(attribute.Int("commits.enqueued", enqueued))

	s.logger.InfoContext(ctx, "delivery translated", "commits", len(commits), "enqueued", enqueued)

	return &IngestResult{
		Translator: t.Name(),
		Result:     result,
		Enqueued:   enqueued,
	}, nil
}
