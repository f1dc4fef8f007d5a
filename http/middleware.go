package http

import (
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v3"
	"github.com/sirupsen/logrus"
)

const headerKeyCorrelationID = "Correlation-ID"

func correlationIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		correlationID := c.Request().Header.Get(headerKeyCorrelationID)
		if correlationID == "" {
			correlationID = "gen_" + shortuuid.New()
		}

		ctx := log.ContextWithCorrelationID(c.Request().Context(), correlationID)
		ctx = log.ToContext(ctx, logrus.WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"path":           c.Path(),
		}))
		c.SetRequest(c.Request().WithContext(ctx))
		c.Response().Header().Set(headerKeyCorrelationID, correlationID)

		return next(c)
	}
}
