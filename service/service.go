package service

import (
	"context"
	"net/http"
	"shop/db"
	"shop/inventory"
	"shop/message"
	"shop/message/outbox"
	"shop/orders"
	"shop/pkg/metrics"

	commonHTTP "github.com/ThreeDotsLabs/go-event-driven/common/http"
	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	watermillMessage "github.com/ThreeDotsLabs/watermill/message"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func init() {
	log.Init(logrus.InfoLevel)
}

type Service struct {
	watermillRouter *watermillMessage.Router
	echoRouter      *echo.Echo
}

func New(
	redisClient *redis.Client,
	conn db.DB,
) Service {
	watermillLogger := log.NewWatermill(log.FromContext(context.Background()))
	topology := message.NewTopology()

	redisPublisher := message.NewRedisPublisher(redisClient, watermillLogger)

	eventBus := message.NewEventBus(redisPublisher, topology)
	eventProcessorConfig := message.NewEventProcessorConfig(redisClient, topology, watermillLogger)

	orderRepo := db.NewOrderRepository(&conn, topology)
	stockRepo := db.NewStockRepository(&conn)
	eventRepo := db.NewEventRepository(&conn)

	watermillRouter, err := watermillMessage.NewRouter(watermillMessage.RouterConfig{}, watermillLogger)
	if err != nil {
		panic(err)
	}

	message.UseMiddlewares(watermillRouter, watermillLogger)

	pgSubscriber := outbox.SubscribeForPGMessages(conn.Conn, watermillLogger)
	_, err = outbox.NewForwarder(pgSubscriber, redisPublisher, watermillLogger, watermillRouter)
	if err != nil {
		panic(err)
	}

	eventProcessor, err := cqrs.NewEventProcessorWithConfig(watermillRouter, eventProcessorConfig)
	if err != nil {
		panic(err)
	}

	sagaMetrics := metrics.NewSagaMetrics()

	echoRouter := commonHTTP.NewEcho()
	echoRouter.Use(otelecho.Middleware("shop"))

	echoRouter.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	echoRouter.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	orders.Initialize(echoRouter, eventProcessor, orderRepo)
	inventory.Initialize(echoRouter, eventBus, eventProcessor, stockRepo, sagaMetrics)

	// the data lake taps every stream with its own consumer group
	for _, topic := range topology.Topics() {
		datalakeSubscriber := message.NewRedisSubscriber(redisClient, "datalake", watermillLogger)
		watermillRouter.AddNoPublisherHandler(
			"datalake."+topic,
			topic,
			datalakeSubscriber,
			eventRepo.StoreMessage,
		)
	}

	return Service{
		watermillRouter,
		echoRouter,
	}
}

func (s Service) Run(
	ctx context.Context,
) error {
	errgrp, ctx := errgroup.WithContext(ctx)

	errgrp.Go(func() error {
		return s.watermillRouter.Run(ctx)
	})

	errgrp.Go(func() error {
		// we don't want to start HTTP server before Watermill router (so service won't be healthy before it's ready)
		<-s.watermillRouter.Running()

		err := s.echoRouter.Start(":8080")
		if err != nil && err != http.ErrServerClosed {
			return err
		}

		return nil
	})

	errgrp.Go(func() error {
		<-ctx.Done()
		return s.echoRouter.Shutdown(context.Background())
	})

	return errgrp.Wait()
}
