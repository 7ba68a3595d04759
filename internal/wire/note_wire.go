package wire

import (
	"booking-reconcile/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireNote(r chi.Router, noteHandler *adaptor.NoteHandler) {
	r.Route("/api/notes/{category}", func(r chi.Router) {
		// GET /api/notes/{category} - List notes for one discrepancy table
		r.Get("/", noteHandler.GetNotes)

		// PUT /api/notes/{category} - Save a note for one booking
		r.Put("/", noteHandler.UpsertNote)

		// DELETE /api/notes/{category} - Clear the whole category
		r.Delete("/", noteHandler.ClearCategory)

		// GET /api/notes/{category}/{bookingID} - Fetch one note
		r.Get("/{bookingID}", noteHandler.GetNote)

		// DELETE /api/notes/{category}/{bookingID} - Remove one note
		r.Delete("/{bookingID}", noteHandler.DeleteNote)
	})
}
