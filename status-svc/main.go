package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"food-storefront/config"
	httpapi "food-storefront/status-svc/internal/api/http"
	"food-storefront/status-svc/internal/service"
	"food-storefront/status-svc/internal/storage"
)

const consumerGroup = "status-svc-consumer"

func newHandler(store service.StoreInterface, publisher service.EventPublisher) *httpapi.Handler {
	return httpapi.NewHandler(service.NewStatusService(store, publisher))
}

func main() {
	config.LoadEnv()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	store := storage.NewStore(db, rdb)

	reader := config.NewKafkaReader(config.OrdersTopic, consumerGroup)
	defer reader.Close()

	writer := config.NewKafkaWriter(config.OrdersTopic)
	defer writer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go service.NewConsumer(reader, store).Start(ctx)

	handler := newHandler(store, storage.NewKafkaPublisher(writer))
	httpapi.StartServer(":"+config.GetEnv("PORT", "8082"), httpapi.NewRouter(handler))
}
