package wire

import (
	"booking-reconcile/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFee(r chi.Router, feeHandler *adaptor.FeeHandler) {
	r.Route("/api/fees", func(r chi.Router) {
		// GET /api/fees - List active fee definitions
		r.Get("/", feeHandler.GetFees)

		// POST /api/fees - Create a fee definition
		r.Post("/", feeHandler.CreateFee)

		// GET /api/fees/{id} - Fetch one fee definition
		r.Get("/{id}", feeHandler.GetFeeByID)

		// PUT /api/fees/{id} - Update a fee definition
		r.Put("/{id}", feeHandler.UpdateFee)

		// DELETE /api/fees/{id} - Remove a fee definition
		r.Delete("/{id}", feeHandler.DeleteFee)
	})
}
