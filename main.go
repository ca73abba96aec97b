package main

import (
	"context"
	"os"
	"os/signal"
	"shop/db"
	"shop/observability"
	"shop/service"

	"github.com/redis/go-redis/v9"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	traceProvider := observability.ConfigureTraceProvider()
	defer func() {
		_ = traceProvider.Shutdown(context.Background())
	}()

	conn, err := db.NewDBConn(os.Getenv("POSTGRES_URL"))
	if err != nil {
		panic(err)
	}
	defer conn.Close()

	conn.MigrateSchema()

	redisClient := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
	})
	defer redisClient.Close()

	err = service.New(redisClient, conn).Run(ctx)
	if err != nil {
		panic(err)
	}
}
