package wire

import (
	"booking-reconcile/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireInvoice(r chi.Router, invoiceHandler *adaptor.InvoiceHandler) {
	// POST /api/invoice/build - Derive the invoice payload for one booking
	r.Post("/api/invoice/build", invoiceHandler.BuildInvoice)
}
