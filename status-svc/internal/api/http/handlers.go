package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"food-storefront/internal/tracker"
	"food-storefront/status-svc/internal/service"

	"github.com/gorilla/mux"
)

type Handler struct {
	Status service.StatusServiceInterface
}

func NewHandler(statusSvc service.StatusServiceInterface) *Handler {
	return &Handler{Status: statusSvc}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.getStatus).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateStatus).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "status-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	view, err := h.Status.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, tracker.ErrUnknownStage) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "invalid current step"})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}
	orderID := mux.Vars(r)["id"]
	if err := h.Status.Update(r.Context(), orderID, req.Status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"order_id": orderID, "status": req.Status})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("[status-svc] encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrUnknownStage):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrOrderNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("[status-svc] internal error: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
