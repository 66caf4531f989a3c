package feed

import (
	"context"

	"codal-docs-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
)

// Consume feeds notices published on the in-process bus into f. It returns
// once every topic is subscribed; delivery stops when ctx is done.
func Consume(ctx context.Context, sub message.Subscriber, f *Feed, log logger.ILogger, topics ...string) error {
	for _, topic := range topics {
		messages, err := sub.Subscribe(ctx, topic)
		if err != nil {
			return err
		}

		go func(topic string, messages <-chan *message.Message) {
			for msg := range messages {
				n, err := UnmarshalNotice(msg.Payload)
				if err != nil {
					log.Error("Feed", "Failed to decode change notice", map[string]interface{}{
						"topic": topic,
						"error": err.Error(),
					})
					// undecodable, retrying will not help
					msg.Ack()
					continue
				}
				f.Notify(n)
				msg.Ack()
			}
		}(topic, messages)
	}
	return nil
}
