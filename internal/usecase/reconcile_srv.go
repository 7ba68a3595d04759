package usecase

import (
	"context"
	"fmt"
	"math"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/matcher"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

// amountTolerance is the currency tolerance for ledger comparisons.
const amountTolerance = 0.01

type ReconcileService interface {
	Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.ReconcileReport, error)
}

type reconcileService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReconcileService(repo *repository.Repository, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo: repo,
		log:  log.With(zap.String("service", "reconcile")),
	}
}

// Reconcile classifies the booking export against the ledger export into
// four independent tables. A booking may appear in more than one table. The
// classifications run sequentially over the same two immutable inputs.
func (s *reconcileService) Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.ReconcileReport, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reconcile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Index ledger rows by normalized booking id, extracted from the doc
	// number first, the memo text second. Rows with no id are unmatchable
	// and dropped from classification.
	ledgerIndex := map[string][]request.LedgerRow{}
	unmatchedRows := 0
	for _, row := range req.Ledger {
		id, found := matcher.ExtractBookingID(row.DocNumber)
		if !found {
			id, found = matcher.ExtractBookingID(row.Memo)
		}
		if !found {
			unmatchedRows++
			continue
		}
		key := matcher.NormalizeID(id)
		ledgerIndex[key] = append(ledgerIndex[key], row)
	}

	notes, err := s.loadNotes(ctx)
	if err != nil {
		return nil, err
	}

	report := &response.ReconcileReport{
		Missing:           []response.MissingBookingRow{},
		CancelledOpen:     []response.CancelledOpenRow{},
		AmountMismatches:  []response.AmountMismatchRow{},
		PaymentMismatches: []response.PaymentMismatchRow{},
	}

	for _, b := range req.Bookings {
		key := matcher.NormalizeID(b.BookingID)
		entries := ledgerIndex[key]

		if len(entries) == 0 {
			report.Missing = append(report.Missing, response.MissingBookingRow{
				BookingID: b.BookingID,
				Contact:   b.Contact,
				Item:      b.Item,
				Total:     b.Total,
				CreatedAt: b.CreatedAt,
				Note:      notes[entity.NoteCategoryMissing][key],
			})
			continue
		}

		if b.Cancelled {
			for _, e := range entries {
				if e.OpenBalance <= 0 {
					continue
				}
				report.CancelledOpen = append(report.CancelledOpen, response.CancelledOpenRow{
					BookingID:   b.BookingID,
					Contact:     b.Contact,
					DocNumber:   e.DocNumber,
					OpenBalance: e.OpenBalance,
					Note:        notes[entity.NoteCategoryCancelledOpen][key],
				})
				report.VoidCandidates = append(report.VoidCandidates, response.VoidCandidate{
					DocNumber: e.DocNumber,
					BookingID: b.BookingID,
				})
				break
			}
		}

		var ledgerSum, payments, refunds float64
		for _, e := range entries {
			ledgerSum += e.Amount
			if e.Amount >= 0 {
				payments += e.Amount
			} else {
				refunds += -e.Amount
			}
		}

		// Cancelled bookings compare against what was actually collected,
		// not the nominal total.
		effective := b.Total
		if b.Cancelled {
			if b.TotalPaid > 0 {
				effective = b.TotalPaid
			} else {
				effective = 0
			}
		}

		if diff := effective - ledgerSum; math.Abs(diff) > amountTolerance {
			report.AmountMismatches = append(report.AmountMismatches, response.AmountMismatchRow{
				BookingID:      b.BookingID,
				Contact:        b.Contact,
				BookingTotal:   b.Total,
				EffectiveTotal: effective,
				LedgerAmount:   utils.Round2(ledgerSum),
				Difference:     utils.Round2(diff),
				Cancelled:      b.Cancelled,
				Note:           notes[entity.NoteCategoryAmountDiff][key],
			})
		}

		net := payments - refunds
		if diff := b.TotalPaid - net; math.Abs(diff) > amountTolerance {
			issue := "Extra payment in ledger"
			if diff > 0 {
				issue = "Missing payment in ledger"
			}
			report.PaymentMismatches = append(report.PaymentMismatches, response.PaymentMismatchRow{
				BookingID:      b.BookingID,
				Issue:          issue,
				BookingPaid:    b.TotalPaid,
				LedgerPayments: utils.Round2(payments),
				LedgerRefunds:  utils.Round2(refunds),
				Difference:     utils.Round2(diff),
				Note:           notes[entity.NoteCategoryPaymentRefund][key],
			})
		}
	}

	report.Summary = response.ReconcileSummary{
		BookingCount:         len(req.Bookings),
		LedgerCount:          len(req.Ledger),
		MissingCount:         len(report.Missing),
		CancelledOpenCount:   len(report.CancelledOpen),
		AmountMismatchCount:  len(report.AmountMismatches),
		PaymentMismatchCount: len(report.PaymentMismatches),
	}

	s.log.Info("Reconciliation run complete",
		zap.Int("bookings", len(req.Bookings)),
		zap.Int("ledger_rows", len(req.Ledger)),
		zap.Int("ledger_rows_without_id", unmatchedRows),
		zap.Int("missing", len(report.Missing)),
		zap.Int("cancelled_open", len(report.CancelledOpen)),
		zap.Int("amount_mismatches", len(report.AmountMismatches)),
		zap.Int("payment_mismatches", len(report.PaymentMismatches)),
	)

	return report, nil
}

// loadNotes fetches saved operator notes for all four categories, keyed by
// normalized booking id.
func (s *reconcileService) loadNotes(ctx context.Context) (map[entity.NoteCategory]map[string]string, error) {
	categories := []entity.NoteCategory{
		entity.NoteCategoryMissing,
		entity.NoteCategoryCancelledOpen,
		entity.NoteCategoryAmountDiff,
		entity.NoteCategoryPaymentRefund,
	}

	notes := make(map[entity.NoteCategory]map[string]string, len(categories))
	for _, category := range categories {
		notes[category] = map[string]string{}

		saved, err := s.repo.Note.FindByCategory(ctx, category)
		if err != nil {
			return nil, fmt.Errorf("load notes %s: %w", category, err)
		}
		for _, note := range saved {
			notes[category][matcher.NormalizeID(note.BookingID)] = note.Body
		}
	}

	return notes, nil
}
