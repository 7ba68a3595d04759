package wire

import (
	"booking-reconcile/internal/adaptor"
	"booking-reconcile/pkg/middleware"
	"booking-reconcile/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireMapping(
	r chi.Router,
	mappingHandler *adaptor.MappingHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// GET /api/mappings - List active account mappings
	r.Get("/api/mappings", mappingHandler.GetMappings)

	// GET /api/catalog - List the fuzzy-match catalog (item mappings)
	r.Get("/api/catalog", mappingHandler.GetCatalog)

	// PUT /api/mappings - Replace the active mapping generation (API key)
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.APIKey, log))
		r.Put("/api/mappings", mappingHandler.SaveMappings)
	})
}
