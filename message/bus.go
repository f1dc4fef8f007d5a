package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

// SubscriberConstructor builds the subscriber a single handler consumes from.
type SubscriberConstructor func(handlerName string) (message.Subscriber, error)

// Transport is the pub/sub pair widget events travel over.
type Transport struct {
	Publisher   message.Publisher
	Subscribers SubscriberConstructor
}

// NewTransport uses redis streams when rdb is set and an in-process channel
// otherwise. The publisher carries the correlation id of the publishing
// context.
func NewTransport(rdb *redis.Client, logger watermill.LoggerAdapter) (Transport, error) {
	if rdb == nil {
		pubSub := gochannel.NewGoChannel(gochannel.Config{}, logger)

		return Transport{
			Publisher: log.CorrelationPublisherDecorator{Publisher: pubSub},
			Subscribers: func(string) (message.Subscriber, error) {
				return pubSub, nil
			},
		}, nil
	}

	publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: rdb,
	}, logger)
	if err != nil {
		return Transport{}, fmt.Errorf("creating publisher: %w", err)
	}

	return Transport{
		Publisher: log.CorrelationPublisherDecorator{Publisher: publisher},
		Subscribers: func(handlerName string) (message.Subscriber, error) {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        rdb,
				ConsumerGroup: "registration." + handlerName,
			}, logger)
		},
	}, nil
}

var marshaler = cqrs.JSONMarshaler{
	GenerateName: cqrs.StructName,
}

func NewEventBus(publisher message.Publisher, logger watermill.LoggerAdapter) (*cqrs.EventBus, error) {
	return cqrs.NewEventBusWithConfig(publisher, cqrs.EventBusConfig{
		GeneratePublishTopic: func(params cqrs.GenerateEventPublishTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    logger,
	})
}
