package service

import (
	"context"
	"errors"
	"fmt"
	"registration/clients"
	"registration/http"
	"registration/message"
	"registration/payment"
	"registration/session"
	"registration/widget"
	"time"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Deps struct {
	Logger watermill.LoggerAdapter
	// RedisClient is optional; without it events stay in process.
	RedisClient *redis.Client

	API        widget.OrderingAPI
	Tokens     clients.TokenSource
	Identity   http.Identity
	Providers  *payment.Registry
	// AuthErrors defaults to asking the user to log in again.
	AuthErrors widget.AuthErrorHandler

	CheckoutRepo     message.CheckoutRepo
	PurchaseListener message.PurchaseListener

	Settings widget.InitialSettings
	HTTPAddr string
}

type Service struct {
	msgRouter  *message.Router
	httpRouter *echo.Echo
	httpAddr   string
	widget     *widget.Widget
	settings   widget.InitialSettings
}

func New(deps Deps) (*Service, error) {
	transport, err := message.NewTransport(deps.RedisClient, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}

	eventBus, err := message.NewEventBus(transport.Publisher, deps.Logger)
	if err != nil {
		return nil, fmt.Errorf("creating event bus: %w", err)
	}

	store := session.NewStore()
	dispatcher := message.NewDispatcher(store, eventBus)

	var w *widget.Widget

	authErrors := deps.AuthErrors
	if authErrors == nil {
		authErrors = widget.AuthErrorHandlerFunc(func(ctx context.Context, err error) {
			log.FromContext(ctx).WithError(err).Warn("Access rejected, asking for login")
			w.GoToLogin(ctx)
		})
	}

	w = widget.New(widget.Deps{
		API:        deps.API,
		Publisher:  dispatcher,
		Providers:  deps.Providers,
		Tokens:     deps.Tokens,
		AuthErrors: authErrors,
	})

	msgRouter, err := message.NewRouter(message.RouterDeps{
		Logger:           deps.Logger,
		Subscribers:      transport.Subscribers,
		CheckoutRepo:     deps.CheckoutRepo,
		PurchaseListener: deps.PurchaseListener,
	})
	if err != nil {
		return nil, fmt.Errorf("creating message router: %w", err)
	}

	httpAddr := deps.HTTPAddr
	if httpAddr == "" {
		httpAddr = ":8080"
	}

	return &Service{
		msgRouter:  msgRouter,
		httpRouter: http.NewRouter(w, store, deps.Identity, deps.Providers),
		httpAddr:   httpAddr,
		widget:     w,
		settings:   deps.Settings,
	}, nil
}

func (s Service) Run(ctx context.Context) error {
	g, runCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := s.msgRouter.Run(runCtx); err != nil {
			return fmt.Errorf("running messaging router: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		// Wait for message router
		<-s.msgRouter.Running()

		s.widget.LoadSession(runCtx, s.settings)

		logrus.WithField("addr", s.httpAddr).Info("Starting HTTP server...")
		err := s.httpRouter.Start(s.httpAddr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("starting http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-runCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		logrus.Info("Shutting down HTTP server...")
		if err := s.httpRouter.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down http server: %w", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("waiting for shutdown: %w", err)
	}
	logrus.Info("Shutdown complete.")

	return nil
}
