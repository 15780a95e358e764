package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"food-storefront/internal/cart"
	"food-storefront/internal/tracker"
	"food-storefront/storefront-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Carts   service.CartServiceInterface
	Orders  service.OrderServiceInterface

	limiter *RateLimiter
	metrics *Metrics
}

// NewHandler wires the services to routes. A nil limiter disables checkout
// rate limiting.
func NewHandler(catalogSvc service.CatalogServiceInterface, cartSvc service.CartServiceInterface,
	orderSvc service.OrderServiceInterface, limiter *RateLimiter) *Handler {
	return &Handler{
		Catalog: catalogSvc,
		Carts:   cartSvc,
		Orders:  orderSvc,
		limiter: limiter,
		metrics: NewMetrics(),
	}
}

type addItemRequest struct {
	RestaurantID string `json:"restaurant_id"`
	ItemID       string `json:"item_id"`
	Quantity     int    `json:"quantity"`
}

type setQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.Use(logRequests, h.metrics.Middleware)

	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.Handle("/metrics", h.metrics.Handler()).Methods("GET")

	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/cuisines", h.getCuisines).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/menu/{itemId}", h.getMenuItem).Methods("GET")

	r.HandleFunc("/api/cart", h.createCart).Methods("POST")
	r.HandleFunc("/api/cart/{session}", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart/{session}", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/{session}/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/{session}/items/{itemId}", h.setCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/{session}/items/{itemId}", h.removeCartItem).Methods("DELETE")
	r.Handle("/api/cart/{session}/checkout", h.limited(h.checkout)).Methods("POST")

	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) limited(next http.HandlerFunc) http.Handler {
	if h.limiter == nil {
		return next
	}
	return h.limiter.Limit(next)
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "storefront-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	restaurants, err := h.Catalog.List(r.Context(), query.Get("search"), query.Get("cuisine"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, restaurants)
}

func (h *Handler) getCuisines(w http.ResponseWriter, r *http.Request) {
	cuisines, err := h.Catalog.Cuisines(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cuisines)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	rest, err := h.Catalog.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rest)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	item, err := h.Catalog.FindItem(r.Context(), vars["id"], vars["itemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) createCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, map[string]string{"session_id": h.Carts.NewSession()})
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.Get(r.Context(), mux.Vars(r)["session"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), mux.Vars(r)["session"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	view, err := h.Carts.Add(r.Context(), mux.Vars(r)["session"], req.RestaurantID, req.ItemID, req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) setCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	var req setQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Quantity == nil {
		http.Error(w, "quantity is required", http.StatusBadRequest)
		return
	}
	view, err := h.Carts.SetQuantity(r.Context(), vars["session"], vars["itemId"], *req.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	view, err := h.Carts.Remove(r.Context(), vars["session"], vars["itemId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req service.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	order, err := h.Orders.Checkout(r.Context(), mux.Vars(r)["session"], req)
	if err != nil {
		writeError(w, err)
		return
	}
	h.metrics.OrderPlaced(order.RestaurantID)
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	detail, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, tracker.ErrUnknownStage) && detail != nil {
		log.Printf("[storefront-svc] order %s has invalid status %q", detail.ID, detail.Status)
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "invalid current step",
			"order": detail.Order,
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qrCode, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[storefront-svc] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, service.ErrInvalidSession),
		errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrForeignItem):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrCheckoutInProgress):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, tracker.ErrUnknownStage):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid current step"})
	default:
		log.Printf("[storefront-svc] internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
