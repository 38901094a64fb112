package http

import (
	"log/slog"
	"net/http"

	"conguide/internal/delivery/http/controllers"
	"conguide/internal/delivery/http/middleware"
	"conguide/internal/domain"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter wires the grid API. When verifier is nil the grid routes are open.
func NewRouter(grid *controllers.GridController, verifier domain.TokenVerifier, logger *slog.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	mux.HandleFunc("GET /health", grid.Health)

	// Grid
	mux.HandleFunc("GET /formats", auth(grid.ListFormats))
	mux.HandleFunc("GET /grid/{format}", auth(grid.GetDocument))
	mux.HandleFunc("GET /slices/{format}", auth(grid.ListSlices))
	mux.HandleFunc("POST /grid/proof", auth(grid.SendProof))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
