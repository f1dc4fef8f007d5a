package message

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/ThreeDotsLabs/watermill/message"
)

type RouterDeps struct {
	Logger      watermill.LoggerAdapter
	Subscribers SubscriberConstructor

	// Both are optional; a missing one disables its handler.
	CheckoutRepo     CheckoutRepo
	PurchaseListener PurchaseListener
}

type Router struct {
	*message.Router
}

func NewRouter(deps RouterDeps) (*Router, error) {
	router, err := message.NewRouter(message.RouterConfig{}, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	addMiddlewares(router, deps.Logger)

	ep, err := cqrs.NewEventProcessorWithConfig(router, cqrs.EventProcessorConfig{
		SubscriberConstructor: func(params cqrs.EventProcessorSubscriberConstructorParams) (message.Subscriber, error) {
			return deps.Subscribers(params.HandlerName)
		},
		GenerateSubscribeTopic: func(params cqrs.EventProcessorGenerateSubscribeTopicParams) (string, error) {
			return params.EventName, nil
		},
		Marshaler: marshaler,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating event processor: %w", err)
	}

	var handlers []cqrs.EventHandler
	if deps.CheckoutRepo != nil {
		handlers = append(handlers, cqrs.NewEventHandler("record-checkout", handleRecordCheckout(deps.CheckoutRepo)))
	}
	if deps.PurchaseListener != nil {
		handlers = append(handlers, cqrs.NewEventHandler("announce-purchase", handleAnnouncePurchase(deps.PurchaseListener)))
	}

	if err := ep.AddHandlers(handlers...); err != nil {
		return nil, fmt.Errorf("adding handlers: %w", err)
	}

	return &Router{router}, nil
}
