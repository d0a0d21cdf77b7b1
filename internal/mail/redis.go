package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

type redisMailer struct {
	client *redis.Client
	stream string
	logger *slog.Logger
}

func NewRedisMailer(client *redis.Client, stream string, logger *slog.Logger) Mailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &redisMailer{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (m *redisMailer) Send(ctx context.Context, msg Message) error {
	payload, err := json.Marshal(msg.Payload)
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	if err := m.client.XAdd(ctx, &redis.XAddArgs{
		Stream: m.stream,
		Values: map[string]any{
			"to":       msg.To,
			"template": msg.Template,
			"payload":  string(payload),
		},
	}).Err(); err != nil {
		return fmt.Errorf("enqueue mail: %w", err)
	}

	m.logger.InfoContext(ctx, "enqueued mail", "to", msg.To, "template", msg.Template)
	return nil
}

func (m *redisMailer) Close() error {
	return m.client.Close()
}
