// internal/wire/wire.go
package wire

import (
	"net/http"

	"booking-reconcile/internal/adaptor"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/usecase"
	"booking-reconcile/pkg/middleware"
	"booking-reconcile/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireInvoice(r, handler.Invoice)
	wireReconcile(r, handler.Reconcile, config, logger)
	wireNote(r, handler.Note)
	wireMapping(r, handler.Mapping, config, logger)
	wireFee(r, handler.Fee)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
