package wire

import (
	"booking-reconcile/internal/adaptor"
	"booking-reconcile/pkg/middleware"
	"booking-reconcile/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReconcile(
	r chi.Router,
	reconcileHandler *adaptor.ReconcileHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// POST /api/reconcile - Run one reconciliation batch
	r.Post("/api/reconcile", reconcileHandler.Reconcile)

	// ==================== ADMIN ROUTES (API key) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKey(config.App.APIKey, log))

		// POST /api/admin/void - Dispatch void requests for cancelled-but-open invoices
		r.Post("/api/admin/void", reconcileHandler.DispatchVoids)
	})
}
