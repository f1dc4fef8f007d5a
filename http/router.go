package http

import (
	"net/http"
	"sync"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/labstack/echo/v4"
)

var ErrServerClosed = http.ErrServerClosed

func NewRouter(w Widget, state StateReader, identity Identity, providers ProviderLister) *echo.Echo {
	server := commonHTTP.NewEcho()
	server.Use(correlationIDMiddleware)

	server.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	handler := handler{
		widget:    w,
		state:     state,
		identity:  identity,
		providers: providers,
		reserving: &sync.Mutex{},
	}

	server.GET("/providers", handler.ListProviders)
	server.GET("/state", handler.GetState)
	server.DELETE("/state", handler.ClearState)
	server.PUT("/step", handler.PutStep)
	server.POST("/summits/:summitID/catalog", handler.LoadCatalog)
	server.GET("/summits/:summitID/invitation", handler.GetInvitation)
	server.POST("/reservation", handler.CreateReservation)
	server.DELETE("/reservation", handler.DeleteReservation)
	server.POST("/reservation/payment", handler.PayReservation)
	server.POST("/passwordless/code", handler.RequestLoginCode)
	server.POST("/passwordless/login", handler.Login)

	return server
}
