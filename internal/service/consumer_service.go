package service

import (
	"context"
	"encoding/json"

	"case-governance-be/internal/dto"
	"case-governance-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IConsumerService drains the embed queue in the background, backfilling
// document embeddings that were deferred at index time.
type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topic            string
	retrievalService IRetrievalService
	logger           logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topic string,
	retrievalService IRetrievalService,
	logger logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topic:            topic,
		retrievalService: retrievalService,
		logger:           logger,
	}
}

func (s *consumerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topic)
	if err != nil {
		return err
	}

	for msg := range messages {
		var payload dto.EmbedDocumentMessage
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.logger.Error("CONSUMER", "Malformed embed message", map[string]interface{}{
				"error": err.Error(),
			})
			msg.Ack()
			continue
		}

		if err := s.retrievalService.BackfillEmbedding(ctx, payload.DocId); err != nil {
			s.logger.Error("CONSUMER", "Embedding backfill failed", map[string]interface{}{
				"doc_id": payload.DocId,
				"error":  err.Error(),
			})
			// Nack so the message is redelivered once the backend recovers.
			msg.Nack()
			continue
		}

		msg.Ack()
	}
	return nil
}
