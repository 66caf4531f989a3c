package service

import (
	"context"
	"fmt"

	"codal-docs-be/internal/feed"
	"codal-docs-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// NoticeRelay forwards notices to other server instances.
type NoticeRelay interface {
	Publish(ctx context.Context, n feed.Notice) error
}

type IPublisherService interface {
	PublishNotice(ctx context.Context, n feed.Notice) error
}

// nopPublisherService is used by tools that run without a bus.
type nopPublisherService struct{}

func (nopPublisherService) PublishNotice(context.Context, feed.Notice) error { return nil }

type publisherService struct {
	publisher     message.Publisher
	changeTopic   string
	taxonomyTopic string
	relay         NoticeRelay
	logger        logger.ILogger
}

// NewPublisherService publishes change notices on the in-process bus and,
// when relay is not nil, to the other instances.
func NewPublisherService(
	publisher message.Publisher,
	changeTopic string,
	taxonomyTopic string,
	relay NoticeRelay,
	log logger.ILogger,
) IPublisherService {
	return &publisherService{
		publisher:     publisher,
		changeTopic:   changeTopic,
		taxonomyTopic: taxonomyTopic,
		relay:         relay,
		logger:        log,
	}
}

func (p *publisherService) PublishNotice(ctx context.Context, n feed.Notice) error {
	payload, err := n.Marshal()
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	topic := p.changeTopic
	if n.Kind != feed.DocumentChanged {
		topic = p.taxonomyTopic
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish notice to %s: %w", topic, err)
	}

	if p.relay != nil {
		if err := p.relay.Publish(ctx, n); err != nil {
			// local subscribers already have it; remote ones catch up on the next change
			p.logger.Warn("PublisherService", "Failed to relay notice", map[string]interface{}{
				"kind":  n.Kind,
				"error": err.Error(),
			})
		}
	}
	return nil
}
