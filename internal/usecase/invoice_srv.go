package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/matcher"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

var (
	// ErrMissingBooking aborts a build when no booking payload arrived.
	ErrMissingBooking = errors.New("missing booking payload")
	// ErrUnsafeUpdate aborts the update path when no sync token is present.
	ErrUnsafeUpdate = errors.New("update requires a sync token")
)

// subtotalTolerance is the currency tolerance for all amount comparisons.
const subtotalTolerance = 0.01

// passengerCategories are the fixed count fields read by the subtotal
// fallback, matched against the rate type's fee definitions by name.
var passengerCategories = []string{"Adults", "Youths", "Children", "Seniors"}

type InvoiceService interface {
	BuildInvoice(ctx context.Context, req *request.BuildInvoiceRequest) (*response.InvoiceBuildResult, error)
}

type invoiceService struct {
	repo   *repository.Repository
	config *utils.Config
	log    *zap.Logger
}

func NewInvoiceService(repo *repository.Repository, config *utils.Config, log *zap.Logger) InvoiceService {
	return &invoiceService{
		repo:   repo,
		config: config,
		log:    log.With(zap.String("service", "invoice")),
	}
}

// canonicalCharge accumulates fee instances sharing a canonical name.
// Invariant: unitPrice * qty equals the sum of all contributions.
type canonicalCharge struct {
	displayName string
	unitPrice   float64
	qty         float64
}

// customerAggregate keeps an incremental weighted average per customer type.
// Invariant: unitPrice * qty equals the sum of the individual prices added.
type customerAggregate struct {
	unitPrice float64
	qty       float64
}

func (a *customerAggregate) add(price float64) {
	total := a.unitPrice*a.qty + price
	a.qty++
	a.unitPrice = total / a.qty
}

// BuildInvoice derives the accounting invoice for one booking: canonical fee
// lines, per-customer-type lines with weighted-average pricing, a subtotal
// check with passenger-count fallback, an inferred discount line, and the
// create-or-update decision. A diagnostics record accompanies every result,
// including fatal ones.
func (s *invoiceService) BuildInvoice(ctx context.Context, req *request.BuildInvoiceRequest) (*response.InvoiceBuildResult, error) {
	result := &response.InvoiceBuildResult{
		Diagnostics: response.InvoiceDiagnostics{
			StartedAt: time.Now().Format(time.RFC3339),
		},
	}

	if req == nil || req.Booking == nil {
		s.log.Error("Invoice build aborted: no booking payload")
		return result, ErrMissingBooking
	}

	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Build invoice validation failed", zap.Any("errors", errs))
		return result, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	booking := req.Booking
	result.Diagnostics.BookingID = strconv.FormatInt(booking.PK, 10)

	catalog, err := s.resolveCatalog(ctx, req.Catalog)
	if err != nil {
		return result, err
	}

	// Decide create vs update before assembling lines: an unsafe update
	// aborts the whole build.
	action, existing, matchedRebooking, err := s.decideAction(req)
	if err != nil {
		result.Diagnostics.Action = action
		result.Diagnostics.MatchedRebooking = matchedRebooking
		return result, err
	}
	result.Diagnostics.Action = action
	result.Diagnostics.MatchedRebooking = matchedRebooking

	customerCount := len(booking.Customers)

	// Pass 1: canonical fee charges from custom fields.
	charges := map[string]*canonicalCharge{}
	var chargeOrder []string

	addCharge := func(field request.CustomField, qty float64) {
		if field.Offset <= 0 || qty <= 0 {
			return
		}
		key := matcher.CanonicalFeeName(field.Name)
		charge, ok := charges[key]
		if !ok {
			charge = &canonicalCharge{
				displayName: field.Name,
				unitPrice:   utils.MinorToMajor(field.Offset),
			}
			charges[key] = charge
			chargeOrder = append(chargeOrder, key)
		}
		charge.qty += qty
	}

	for _, inst := range booking.Availability.CustomFieldInstances {
		qty := 1.0
		if inst.CustomField.IsAlwaysPerCustomer {
			qty = float64(customerCount)
		}
		addCharge(inst.CustomField, qty)
	}

	for _, cust := range booking.Customers {
		for _, cfv := range cust.CustomFieldValues {
			if cfv.CustomField.Type == "yes-no" && !isAffirmative(cfv.Value) {
				continue
			}
			addCharge(cfv.CustomField, 1)
		}
	}

	var lines []response.InvoiceLine
	for _, key := range chargeOrder {
		charge := charges[key]
		lines = append(lines, s.salesLine(charge.displayName, charge.qty, charge.unitPrice, catalog, &result.Diagnostics))
	}

	// Pass 2: per-customer-type tour lines with weighted-average pricing.
	itemName := booking.Availability.Item.Name
	aggregates := map[string]*customerAggregate{}
	var aggregateOrder []string

	for _, cust := range booking.Customers {
		typeName := cust.CustomerTypeRate.CustomerPrototype.DisplayName
		if typeName == "" {
			continue
		}
		price := utils.MinorToMajor(cust.CustomerTypeRate.Total)
		if cust.CustomerTypeRate.Total == 0 {
			// Variable-priced products carry the price per customer.
			price = utils.MinorToMajor(cust.TotalCost)
		}
		agg, ok := aggregates[typeName]
		if !ok {
			agg = &customerAggregate{}
			aggregates[typeName] = agg
			aggregateOrder = append(aggregateOrder, typeName)
		}
		agg.add(price)
	}

	for _, typeName := range aggregateOrder {
		agg := aggregates[typeName]
		desc := fmt.Sprintf("%s - %s", itemName, typeName)
		lines = append(lines, s.salesLine(desc, agg.qty, agg.unitPrice, catalog, &result.Diagnostics))
	}

	bookingSubtotal := utils.MinorToMajor(booking.ReceiptSubtotal)
	calculated := sumSalesLines(lines)
	result.Diagnostics.BookingSubtotal = bookingSubtotal
	result.Diagnostics.SubtotalBefore = calculated

	// Fallback: when the computed subtotal disagrees with the authoritative
	// one, re-derive per-passenger fees for variable-priced products. Fires
	// at most once and is best effort.
	if math.Abs(calculated-bookingSubtotal) > subtotalTolerance {
		if s.applyPassengerFallback(booking, catalog, &lines, &result.Diagnostics) {
			calculated = sumSalesLines(lines)
		}
	}
	result.Diagnostics.SubtotalAfter = calculated

	payload := &response.InvoicePayload{
		DocNumber: docNumber(booking.UUID),
		Memo:      fmt.Sprintf("FH-%d %s", booking.PK, booking.UUID),
		BookingID: strconv.FormatInt(booking.PK, 10),
		Subtotal:  utils.Round2(calculated),
		Tax: response.TaxSummary{
			RatePercent: 5,
			TaxTotal:    utils.MinorToMajor(booking.ReceiptTaxes),
			NetSubtotal: bookingSubtotal,
		},
	}

	// Discounts are never read from the booking; they are inferred as the
	// positive residual between computed gross and authoritative net.
	if residual := calculated - bookingSubtotal; residual > subtotalTolerance {
		discount := utils.Round2(residual)
		lines = append(lines, response.InvoiceLine{
			Description: "Booking discount applied",
			Amount:      discount,
			DetailType:  response.DetailDiscount,
			Discount: &response.DiscountDetail{
				Amount:       discount,
				PercentBased: false,
			},
		})
		payload.Discount = discount
	}

	payload.Lines = lines

	if action == response.ActionUpdate {
		payload.InvoiceID = existing.ID
		payload.SyncToken = existing.SyncToken
	}

	result.Action = action
	result.Payload = payload

	s.log.Info("Invoice built",
		zap.Int64("booking_pk", booking.PK),
		zap.String("action", action),
		zap.String("doc_number", payload.DocNumber),
		zap.Int("lines", len(lines)),
		zap.Float64("subtotal", payload.Subtotal),
		zap.Bool("fallback", result.Diagnostics.FallbackTriggered),
	)

	return result, nil
}

// resolveCatalog uses the caller-supplied catalog when present, otherwise the
// active item mappings: tour items first, then fee items, each ordered by
// source name. Payment-type mappings are not line-item targets and stay out.
// List order is the documented fuzzy-match tie-break.
func (s *invoiceService) resolveCatalog(ctx context.Context, supplied []request.CatalogItem) ([]matcher.CatalogItem, error) {
	if len(supplied) > 0 {
		catalog := make([]matcher.CatalogItem, len(supplied))
		for i, item := range supplied {
			catalog[i] = matcher.CatalogItem{ID: item.ID, Name: item.Name}
		}
		return catalog, nil
	}

	var catalog []matcher.CatalogItem
	for _, mappingType := range []entity.MappingType{entity.MappingTypeTourRevenue, entity.MappingTypeFeeRevenue} {
		mappings, err := s.repo.Mapping.FindActiveByType(ctx, mappingType)
		if err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		for _, m := range mappings {
			if m.AccountID == "" {
				continue
			}
			catalog = append(catalog, matcher.CatalogItem{ID: m.AccountID, Name: m.SourceItem})
		}
	}
	return catalog, nil
}

func (s *invoiceService) decideAction(req *request.BuildInvoiceRequest) (string, *request.ExistingInvoice, bool, error) {
	matchedRebooking := req.Booking.RebookedFrom != "" &&
		req.Existing != nil &&
		strings.Contains(req.Existing.Memo, req.Booking.RebookedFrom)

	if !matchedRebooking && !req.UpdateNeeded {
		return response.ActionCreate, nil, false, nil
	}

	if req.Existing == nil || req.Existing.SyncToken == "" {
		s.log.Error("Unsafe update rejected",
			zap.Int64("booking_pk", req.Booking.PK),
			zap.Bool("matched_rebooking", matchedRebooking),
		)
		return response.ActionUpdate, nil, matchedRebooking, ErrUnsafeUpdate
	}

	return response.ActionUpdate, req.Existing, matchedRebooking, nil
}

func (s *invoiceService) salesLine(desc string, qty, unitPrice float64, catalog []matcher.CatalogItem, diag *response.InvoiceDiagnostics) response.InvoiceLine {
	itemRef := s.config.Invoice.FallbackItemID
	itemName := ""
	if item := matcher.MatchCatalogItem(desc, catalog); item != nil {
		itemRef = item.ID
		itemName = item.Name
	} else {
		diag.UnmatchedItems = append(diag.UnmatchedItems, desc)
	}

	return response.InvoiceLine{
		Description: desc,
		Amount:      utils.Round2(unitPrice * qty),
		DetailType:  response.DetailSalesItem,
		SalesItem: &response.SalesItemDetail{
			ItemRef:   itemRef,
			ItemName:  itemName,
			Qty:       qty,
			UnitPrice: unitPrice,
			TaxCode:   s.config.Invoice.TaxCode,
			ClassRef:  s.config.Invoice.ClassRef,
		},
	}
}

// applyPassengerFallback re-derives fees from the four passenger count
// fields for customers on a variable-priced rate. Matched amounts merge into
// existing lines by original field name. Returns whether anything changed.
func (s *invoiceService) applyPassengerFallback(booking *request.Booking, catalog []matcher.CatalogItem, lines *[]response.InvoiceLine, diag *response.InvoiceDiagnostics) bool {
	keyword := strings.ToLower(s.config.Invoice.VariableItemKeyword)
	changed := false

	for _, cust := range booking.Customers {
		rate := cust.CustomerTypeRate
		typeName := strings.ToLower(rate.CustomerPrototype.DisplayName)
		if keyword == "" || !strings.Contains(typeName, keyword) {
			continue
		}

		for _, category := range passengerCategories {
			count := passengerCount(cust.CustomFieldValues, category)
			if count <= 0 {
				continue
			}

			field, ok := findFeeDefinition(rate.CustomFieldInstances, category)
			if !ok || field.Offset <= 0 {
				continue
			}

			diag.FallbackTriggered = true
			changed = true
			unitPrice := utils.MinorToMajor(field.Offset)

			if line := findSalesLine(*lines, field.Name); line != nil {
				line.SalesItem.Qty += float64(count)
				line.Amount = utils.Round2(line.SalesItem.Qty * line.SalesItem.UnitPrice)
				continue
			}

			*lines = append(*lines, s.salesLine(field.Name, float64(count), unitPrice, catalog, diag))
		}
	}

	if changed {
		s.log.Warn("Subtotal mismatch: passenger fallback applied",
			zap.Int64("booking_pk", booking.PK),
			zap.Float64("subtotal_before", diag.SubtotalBefore),
			zap.Float64("booking_subtotal", diag.BookingSubtotal),
		)
	}

	return changed
}

// passengerCount reads a numeric count from the customer's custom field
// values by exact field name.
func passengerCount(values []request.CustomFieldValue, category string) int {
	for _, cfv := range values {
		if strings.EqualFold(cfv.CustomField.Name, category) {
			return utils.ParseInt(strings.TrimSpace(cfv.Value), 0)
		}
	}
	return 0
}

// findFeeDefinition locates the rate-level fee field for a passenger
// category by case-insensitive name containment.
func findFeeDefinition(instances []request.CustomFieldInstance, category string) (request.CustomField, bool) {
	needle := strings.ToLower(category)
	for _, inst := range instances {
		if strings.Contains(strings.ToLower(inst.CustomField.Name), needle) {
			return inst.CustomField, true
		}
	}
	return request.CustomField{}, false
}

func findSalesLine(lines []response.InvoiceLine, desc string) *response.InvoiceLine {
	for i := range lines {
		if lines[i].DetailType == response.DetailSalesItem && lines[i].Description == desc {
			return &lines[i]
		}
	}
	return nil
}

func sumSalesLines(lines []response.InvoiceLine) float64 {
	var sum float64
	for _, line := range lines {
		if line.DetailType == response.DetailSalesItem {
			sum += line.Amount
		}
	}
	return sum
}

// docNumber derives the invoice document number from the last 12 characters
// of the booking UUID.
func docNumber(bookingUUID string) string {
	tail := bookingUUID
	if len(tail) > 12 {
		tail = tail[len(tail)-12:]
	}
	return "FH-" + tail
}

// isAffirmative reports whether a yes-no custom field value counts as set.
func isAffirmative(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	}
	return false
}
