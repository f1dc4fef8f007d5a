package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"registration/clients"
	"registration/config"
	"registration/entity"
	"registration/message"
	"registration/payment"
	"registration/postgres"
	"registration/service"
	"registration/widget"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log.Init(logrus.InfoLevel)
	logger := watermill.NewStdLogger(false, false)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", err, nil)
		os.Exit(1)
	}
	logrus.SetLevel(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("failed to run", err, nil)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger watermill.LoggerAdapter) error {
	tokens := clients.StaticToken(cfg.AccessToken)

	c, err := clients.New(cfg.APIBaseURL, tokens)
	if err != nil {
		return fmt.Errorf("creating api client: %w", err)
	}

	var identity identityProvider = unconfiguredIdentity{}
	if cfg.IDPBaseURL != "" {
		idp, err := clients.New(cfg.IDPBaseURL, clients.StaticToken(""))
		if err != nil {
			return fmt.Errorf("creating identity client: %w", err)
		}
		identity = clients.NewIdentityClient(idp, cfg.IDPClientID)
	}

	providers := payment.NewRegistry()
	payment.RegisterDefaults(providers, nil)

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		defer func() {
			if err := rdb.Close(); err != nil {
				logger.Error("failed to close redis connection", err, nil)
			}
		}()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var checkouts message.CheckoutRepo
	if cfg.PostgresURL != "" {
		dbConn, err := sqlx.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("connecting to db: %w", err)
		}
		defer func() {
			if err := dbConn.Close(); err != nil {
				logger.Error("failed to close db connection", err, nil)
			}
		}()

		if err := postgres.CreateCheckoutsTable(ctx, dbConn); err != nil {
			return fmt.Errorf("creating checkouts table: %w", err)
		}
		checkouts = postgres.NewCheckoutRepo(dbConn)
	}

	svc, err := service.New(service.Deps{
		Logger:       logger,
		RedisClient:  rdb,
		API:          clients.NewOrderingClient(c),
		Tokens:       tokens,
		Identity:     identity,
		Providers:    providers,
		CheckoutRepo: checkouts,
		PurchaseListener: message.PurchaseListenerFunc(func(ctx context.Context, checkout entity.Checkout) error {
			log.FromContext(ctx).
				WithField("order_number", checkout.OrderNumber).
				WithField("amount", checkout.Amount.String()).
				Info("Purchase completed")
			return nil
		}),
		Settings: widget.InitialSettings{
			APIBaseURL: cfg.APIBaseURL,
			Summit:     entity.SummitData{ID: cfg.SummitID},
		},
		HTTPAddr: cfg.HTTPAddr,
	})
	if err != nil {
		return fmt.Errorf("creating service: %w", err)
	}

	return svc.Run(ctx)
}

type identityProvider interface {
	RequestCode(ctx context.Context, email string) (entity.CodeRequestResponse, error)
	RedeemCode(ctx context.Context, code, email string) (entity.LoginResult, error)
}

var errNoIdentityProvider = errors.New("IDP_BASE_URL is not set")

type unconfiguredIdentity struct{}

func (unconfiguredIdentity) RequestCode(context.Context, string) (entity.CodeRequestResponse, error) {
	return entity.CodeRequestResponse{}, errNoIdentityProvider
}

func (unconfiguredIdentity) RedeemCode(context.Context, string, string) (entity.LoginResult, error) {
	return entity.LoginResult{}, errNoIdentityProvider
}
