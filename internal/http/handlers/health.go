package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/hvergara/auth-service/internal/http/respond"
	"github.com/hvergara/auth-service/internal/storage"
)

// ServiceName identifies this service in health responses.
const ServiceName = "auth-service"

// HealthHandler reports service status and the registered-user count.
type HealthHandler struct {
	store storage.UserStore
}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler(store storage.UserStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	count, err := h.store.CountUsers(r.Context())
	if err != nil {
		log.Printf("health: count users: %v", err)
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   ServiceName,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"users":     count,
	})
}
