package main

import (
	"log"

	"food-storefront/config"
	"food-storefront/internal/catalog"
	"food-storefront/internal/domain"
	"food-storefront/internal/pricing"
	httpapi "food-storefront/storefront-svc/internal/api/http"
	"food-storefront/storefront-svc/internal/service"
	"food-storefront/storefront-svc/internal/storage"
)

func newHandler(cfg config.Storefront, restaurants []domain.Restaurant, orders service.OrderRepository,
	carts service.CartRepository, publisher service.EventPublisher) *httpapi.Handler {
	calc := pricing.NewCalculator(cfg.DeliveryFee, cfg.TaxRate)
	catalogRepo := storage.NewMemoryCatalog(restaurants)

	catalogSvc := service.NewCatalogService(catalogRepo)
	cartSvc := service.NewCartService(carts, catalogRepo, calc)
	orderSvc := service.NewOrderService(orders, carts, catalogRepo, publisher,
		service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, calc)

	return httpapi.NewHandler(catalogSvc, cartSvc, orderSvc, httpapi.NewRateLimiter(cfg.CheckoutRatePerMin, cfg.TrustedProxies...))
}

func main() {
	config.LoadEnv()
	cfg := config.LoadStorefront()

	restaurants, err := catalog.LoadSeedFile(cfg.CatalogPath)
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	log.Printf("[storefront-svc] loaded %d restaurants from %s", len(restaurants), cfg.CatalogPath)

	db := config.MustInitPostgres()
	defer db.Close()

	orderRepo := storage.NewPostgresRepository(db)
	if err := orderRepo.EnsureSchema(); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	writer := config.NewKafkaWriter(config.OrdersTopic)
	defer writer.Close()

	handler := newHandler(cfg, restaurants, orderRepo,
		storage.NewRedisCartStore(rdb, cfg.CartTTL), storage.NewKafkaPublisher(writer))

	httpapi.StartServer(":"+cfg.Port, httpapi.NewRouter(handler))
}
