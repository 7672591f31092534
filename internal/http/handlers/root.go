package handlers

import (
	"net/http"

	"github.com/hvergara/auth-service/internal/http/respond"
)

// Version is the API version reported by the root endpoint.
const Version = "1.0.0"

// RootHandler serves the index document listing available endpoints.
type RootHandler struct{}

// NewRootHandler creates the root endpoint handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{}
}

// Register wires the handler into a ServeMux.
func (h *RootHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", h.handle)
}

func (h *RootHandler) handle(w http.ResponseWriter, r *http.Request) {
	// "/" is the mux catch-all; anything unrouted lands here.
	if r.URL.Path != "/" {
		respond.Error(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": ServiceName,
		"version": Version,
		"endpoints": []string{
			"POST /auth/register",
			"POST /auth/login",
			"GET /auth/verify",
			"GET /health",
		},
	})
}
