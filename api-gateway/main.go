package main

import (
	"log"
	"net/http"
	"time"

	"food-storefront/api-gateway/internal/gateway"
	"food-storefront/config"

	"github.com/rs/cors"
)

func newGatewayHandler(cfg gateway.Config, client gateway.HTTPClient) http.Handler {
	r := gateway.NewGateway(cfg, client).SetupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func main() {
	config.LoadEnv()

	cfg := gateway.Config{
		StorefrontSvcURL: config.GetEnv("STOREFRONT_SVC_URL", "http://localhost:8081"),
		StatusSvcURL:     config.GetEnv("STATUS_SVC_URL", "http://localhost:8082"),
	}
	handler := newGatewayHandler(cfg, &http.Client{Timeout: 10 * time.Second})

	port := config.GetEnv("GATEWAY_PORT", "8080")
	log.Printf("API Gateway starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
