package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IPublisherService pushes work onto the in-process embed queue.
type IPublisherService interface {
	Publish(ctx context.Context, payload []byte) error
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	topic  string
}

func NewPublisherService(pubSub *gochannel.GoChannel, topic string) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		topic:  topic,
	}
}

func (s *publisherService) Publish(ctx context.Context, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return s.pubSub.Publish(s.topic, msg)
}
