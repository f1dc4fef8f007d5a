package message

import (
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

func addMiddlewares(router *message.Router, logger watermill.LoggerAdapter) {
	router.AddMiddleware(correlationIDMiddleware)
	router.AddMiddleware(loggerMiddleware)
	router.AddMiddleware(handlerLogMiddleware)
	router.AddMiddleware(middleware.Retry{
		MaxRetries:      10,
		InitialInterval: time.Millisecond * 100,
		MaxInterval:     time.Second,
		Multiplier:      2,
		Logger:          logger,
	}.Middleware)
}

func correlationIDMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		correlationID := middleware.MessageCorrelationID(msg)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}

		msg.SetContext(log.ContextWithCorrelationID(msg.Context(), correlationID))

		return next(msg)
	}
}

func loggerMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := logrus.WithFields(logrus.Fields{
			"message_uuid":   msg.UUID,
			"correlation_id": log.CorrelationIDFromContext(msg.Context()),
			"event_name":     marshaler.NameFromMessage(msg),
		})
		msg.SetContext(log.ToContext(msg.Context(), logger))

		return next(msg)
	}
}

func handlerLogMiddleware(next message.HandlerFunc) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		logger := log.FromContext(msg.Context())
		logger.Debug("Handling a message")

		msgs, err := next(msg)
		if err != nil {
			logger.WithError(err).Error("Message handling error")
		}

		return msgs, err
	}
}
