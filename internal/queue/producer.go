package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"basegraph.app/commitrelay/internal/model"
)

// CommitMessage is one translated commit bound for the commit stream.
type CommitMessage struct {
	DeliveryID string
	Translator string
	Position   int // index of the commit within its delivery
	Record     model.CommitRecord
	TraceID    *string
}

type Producer interface {
	Enqueue(ctx context.Context, msg CommitMessage) error
	Close() error
}

type redisProducer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisProducer(client *redis.Client, stream string, logger *slog.Logger) Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisProducer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (p *redisProducer) Enqueue(ctx context.Context, msg CommitMessage) error {
	fields, err := commitFields(msg)
	if err != nil {
		return err
	}

	messageID, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: fields,
	}).Result()
	if err != nil {
		return fmt.Errorf("enqueue commit: %w", err)
	}

	p.logger.DebugContext(ctx, "enqueued commit",
		"message_id", messageID,
		"commit_id", msg.Record.CommitID.Name,
		"position", msg.Position,
	)
	return nil
}

func (p *redisProducer) Close() error {
	return p.client.Close()
}

func commitFields(msg CommitMessage) (map[string]any, error) {
	record, err := json.Marshal(msg.Record)
	if err != nil {
		return nil, fmt.Errorf("marshal commit record: %w", err)
	}

	fields := map[string]any{
		"delivery_id": msg.DeliveryID,
		"translator":  msg.Translator,
		"source":      string(msg.Record.Source),
		"commit_id":   msg.Record.CommitID.Name,
		"repository":  msg.Record.Repo.Name,
		"position":    msg.Position,
		"record":      string(record),
	}

	if msg.TraceID != nil && *msg.TraceID != "" {
		fields["trace_id"] = *msg.TraceID
	}

	return fields, nil
}
