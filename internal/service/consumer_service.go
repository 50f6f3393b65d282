package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"medical-triage-be/internal/dto"
	"medical-triage-be/internal/pkg/logger"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService is the audit-trail worker: it drains completed-triage
// messages off the in-process bus and writes them through an isolated
// file logger so audit records survive console noise.
type consumerService struct {
	pubSub      *gochannel.GoChannel
	topicName   string
	auditLogger logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	auditLogger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:      pubSub,
		topicName:   topicName,
		auditLogger: auditLogger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.TriageCompletedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.auditLogger.Info("audit", "triage completed", map[string]interface{}{
		"session_id":  payload.SessionID,
		"route":       payload.Route,
		"severity":    payload.Severity,
		"emergency":   payload.Emergency,
		"fallback":    payload.Fallback,
		"occurred_at": payload.OccurredAt,
	})

	msg.Ack()
}
