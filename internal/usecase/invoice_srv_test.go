package usecase

import (
	"context"
	"errors"
	"math"
	"testing"

	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

func testInvoiceService() InvoiceService {
	config := &utils.Config{
		Invoice: utils.InvoiceConfig{
			FallbackItemID:      "99",
			VariableItemKeyword: "charter",
			TaxCode:             "TAX",
		},
	}
	return NewInvoiceService(nil, config, zap.NewNop())
}

func testCatalog() []request.CatalogItem {
	return []request.CatalogItem{
		{ID: "10", Name: "Whale Watching Tour"},
		{ID: "20", Name: "Stewardship Fee"},
		{ID: "30", Name: "Fuel Surcharge"},
	}
}

func fixedPriceBooking() *request.Booking {
	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Adult"},
		Total:             15000,
	}
	return &request.Booking{
		PK:   290981542,
		UUID: "1f2e3d4c-5b6a-7988-9102-abcdef123456",
		Availability: request.Availability{
			Item: request.Item{PK: 1, Name: "Whale Watching Tour"},
		},
		Customers: []request.Customer{
			{CustomerTypeRate: rate},
			{CustomerTypeRate: rate},
		},
		ReceiptSubtotal: 30000,
		ReceiptTaxes:    1500,
	}
}

func TestBuildInvoiceMatchingSubtotal(t *testing.T) {
	svc := testInvoiceService()

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: fixedPriceBooking(),
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	if result.Action != response.ActionCreate {
		t.Errorf("action = %q, want %q", result.Action, response.ActionCreate)
	}
	if result.Diagnostics.FallbackTriggered {
		t.Error("fallback triggered on a matching subtotal")
	}
	if result.Payload.Discount != 0 {
		t.Errorf("discount = %v, want 0", result.Payload.Discount)
	}
	for _, line := range result.Payload.Lines {
		if line.DetailType == response.DetailDiscount {
			t.Error("discount line emitted on a matching subtotal")
		}
	}
	if got := result.Payload.Subtotal; math.Abs(got-300.0) > 0.001 {
		t.Errorf("subtotal = %v, want 300.00", got)
	}
	if got := result.Payload.Tax.TaxTotal; math.Abs(got-15.0) > 0.001 {
		t.Errorf("tax total = %v, want 15.00", got)
	}
	if got := result.Payload.Tax.RatePercent; got != 5 {
		t.Errorf("tax rate = %v, want 5", got)
	}
}

func TestBuildInvoiceDocNumber(t *testing.T) {
	svc := testInvoiceService()

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: fixedPriceBooking(),
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	// Last 12 characters of the booking UUID, prefixed.
	if got := result.Payload.DocNumber; got != "FH-abcdef123456" {
		t.Errorf("doc number = %q, want %q", got, "FH-abcdef123456")
	}
	if got := result.Payload.BookingID; got != "290981542" {
		t.Errorf("booking id field = %q, want %q", got, "290981542")
	}
}

func TestBuildInvoiceWeightedAverage(t *testing.T) {
	svc := testInvoiceService()

	// Variable-priced product: prototype total is zero, each customer
	// carries an individual price.
	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Private Charter"},
		Total:             0,
	}
	prices := []int64{120000, 80000, 100000}
	var sum int64
	customers := make([]request.Customer, len(prices))
	for i, p := range prices {
		customers[i] = request.Customer{CustomerTypeRate: rate, TotalCost: p}
		sum += p
	}

	booking := &request.Booking{
		PK:   1,
		UUID: "00000000-0000-0000-0000-000000000001",
		Availability: request.Availability{
			Item: request.Item{Name: "Private Charter"},
		},
		Customers:       customers,
		ReceiptSubtotal: sum,
	}

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	if len(result.Payload.Lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(result.Payload.Lines))
	}
	line := result.Payload.Lines[0]
	if line.SalesItem.Qty != 3 {
		t.Errorf("qty = %v, want 3", line.SalesItem.Qty)
	}
	total := line.SalesItem.UnitPrice * line.SalesItem.Qty
	if math.Abs(total-3000.0) > 1e-6 {
		t.Errorf("unitPrice*qty = %v, want 3000.00 within 1e-6", total)
	}
}

func TestBuildInvoiceChargeAccumulationOrderIndependent(t *testing.T) {
	svc := testInvoiceService()

	fee := request.CustomField{Name: "Stewardship Fee", Offset: 500, Type: "yes-no"}
	values := []request.CustomFieldValue{
		{CustomField: fee, Value: "yes"},
		{CustomField: fee, Value: "yes"},
	}

	build := func(customers []request.Customer) *response.InvoiceBuildResult {
		rate := request.CustomerTypeRate{
			CustomerPrototype: request.CustomerPrototype{DisplayName: "Adult"},
			Total:             10000,
		}
		for i := range customers {
			customers[i].CustomerTypeRate = rate
		}
		booking := &request.Booking{
			PK:              2,
			UUID:            "00000000-0000-0000-0000-000000000002",
			Availability:    request.Availability{Item: request.Item{Name: "Whale Watching Tour"}},
			Customers:       customers,
			ReceiptSubtotal: 21000,
		}
		result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
			Booking: booking,
			Catalog: testCatalog(),
		})
		if err != nil {
			t.Fatalf("BuildInvoice returned error: %v", err)
		}
		return result
	}

	forward := build([]request.Customer{{CustomFieldValues: values}, {CustomFieldValues: values[:1]}})
	reversed := build([]request.Customer{{CustomFieldValues: values[:1]}, {CustomFieldValues: values}})

	feeAmount := func(r *response.InvoiceBuildResult) float64 {
		for _, line := range r.Payload.Lines {
			if line.Description == "Stewardship Fee" {
				return line.Amount
			}
		}
		t.Fatal("stewardship fee line not found")
		return 0
	}

	fwd, rev := feeAmount(forward), feeAmount(reversed)
	if fwd != rev {
		t.Errorf("fee amount order dependent: %v vs %v", fwd, rev)
	}
	// Three affirmative instances at 5.00 each.
	if math.Abs(fwd-15.0) > 0.001 {
		t.Errorf("fee amount = %v, want 15.00", fwd)
	}
}

func TestBuildInvoiceSkipsNonAffirmativeYesNo(t *testing.T) {
	svc := testInvoiceService()

	fee := request.CustomField{Name: "Fuel Surcharge", Offset: 1000, Type: "yes-no"}
	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Adult"},
		Total:             10000,
	}
	booking := &request.Booking{
		PK:           3,
		UUID:         "00000000-0000-0000-0000-000000000003",
		Availability: request.Availability{Item: request.Item{Name: "Whale Watching Tour"}},
		Customers: []request.Customer{
			{CustomerTypeRate: rate, CustomFieldValues: []request.CustomFieldValue{{CustomField: fee, Value: "no"}}},
		},
		ReceiptSubtotal: 10000,
	}

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	for _, line := range result.Payload.Lines {
		if line.Description == "Fuel Surcharge" {
			t.Error("non-affirmative yes-no field produced a charge line")
		}
	}
}

func TestBuildInvoicePassengerFallback(t *testing.T) {
	svc := testInvoiceService()

	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Private Charter"},
		Total:             0,
		CustomFieldInstances: []request.CustomFieldInstance{
			{CustomField: request.CustomField{Name: "Additional Adults", Offset: 2500}},
			{CustomField: request.CustomField{Name: "Additional Children", Offset: 1500}},
		},
	}
	booking := &request.Booking{
		PK:           4,
		UUID:         "00000000-0000-0000-0000-000000000004",
		Availability: request.Availability{Item: request.Item{Name: "Private Charter"}},
		Customers: []request.Customer{
			{
				CustomerTypeRate: rate,
				TotalCost:        100000,
				CustomFieldValues: []request.CustomFieldValue{
					{CustomField: request.CustomField{Name: "Adults", Type: "number"}, Value: "2"},
				},
			},
		},
		// 1000.00 base plus 2 adults at 25.00.
		ReceiptSubtotal: 105000,
	}

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	if !result.Diagnostics.FallbackTriggered {
		t.Fatal("fallback did not trigger on subtotal mismatch")
	}
	if got, want := result.Diagnostics.SubtotalBefore, 1000.0; math.Abs(got-want) > 0.01 {
		t.Errorf("subtotal before = %v, want %v", got, want)
	}
	if got, want := result.Diagnostics.SubtotalAfter, 1050.0; math.Abs(got-want) > 0.01 {
		t.Errorf("fallback did not recover the gap: subtotal after = %v, want %v", got, want)
	}
	for _, line := range result.Payload.Lines {
		if line.DetailType == response.DetailDiscount {
			t.Error("discount line emitted after fallback closed the gap")
		}
	}
}

func TestBuildInvoiceInferredDiscount(t *testing.T) {
	svc := testInvoiceService()

	booking := fixedPriceBooking()
	// Authoritative net below computed gross: residual becomes a discount.
	booking.ReceiptSubtotal = 27500

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	if math.Abs(result.Payload.Discount-25.0) > 0.001 {
		t.Errorf("discount = %v, want 25.00", result.Payload.Discount)
	}

	var discountLines int
	for _, line := range result.Payload.Lines {
		if line.DetailType == response.DetailDiscount {
			discountLines++
			if line.Discount == nil || line.Discount.PercentBased {
				t.Error("discount line must be flat, not percent based")
			}
		}
	}
	if discountLines != 1 {
		t.Errorf("got %d discount lines, want 1", discountLines)
	}
}

func TestBuildInvoiceFallbackItemForUnmatchedCharge(t *testing.T) {
	svc := testInvoiceService()

	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Adult"},
		Total:             10000,
	}
	booking := &request.Booking{
		PK:           5,
		UUID:         "00000000-0000-0000-0000-000000000005",
		Availability: request.Availability{Item: request.Item{Name: "Whale Watching Tour"}},
		Customers: []request.Customer{
			{
				CustomerTypeRate: rate,
				CustomFieldValues: []request.CustomFieldValue{
					{CustomField: request.CustomField{Name: "Souvenir Photo Pack", Offset: 2000}},
				},
			},
		},
		ReceiptSubtotal: 12000,
	}

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	var found bool
	for _, line := range result.Payload.Lines {
		if line.Description == "Souvenir Photo Pack" {
			found = true
			if line.SalesItem.ItemRef != "99" {
				t.Errorf("unmatched charge item ref = %q, want fallback %q", line.SalesItem.ItemRef, "99")
			}
		}
	}
	if !found {
		t.Fatal("unmatched charge line was dropped instead of using the fallback item")
	}
	if len(result.Diagnostics.UnmatchedItems) == 0 {
		t.Error("unmatched item not recorded in diagnostics")
	}
}

func TestBuildInvoiceCatalogFromMappings(t *testing.T) {
	// Catalog omitted: the service loads item mappings. Payment-type rows
	// must not become fuzzy-match targets for line descriptions.
	repo := &repository.Repository{Mapping: &fakeMappingRepo{mappings: mixedMappings()}}
	config := &utils.Config{
		Invoice: utils.InvoiceConfig{
			FallbackItemID:      "99",
			VariableItemKeyword: "charter",
			TaxCode:             "TAX",
		},
	}
	svc := NewInvoiceService(repo, config, zap.NewNop())

	rate := request.CustomerTypeRate{
		CustomerPrototype: request.CustomerPrototype{DisplayName: "Adult"},
		Total:             10000,
	}
	booking := &request.Booking{
		PK:           6,
		UUID:         "00000000-0000-0000-0000-000000000006",
		Availability: request.Availability{Item: request.Item{Name: "Whale Watching Tour"}},
		Customers: []request.Customer{
			{
				CustomerTypeRate: rate,
				CustomFieldValues: []request.CustomFieldValue{
					{CustomField: request.CustomField{Name: "Cash Handling Fee", Offset: 500}},
					{CustomField: request.CustomField{Name: "Stewardship Fee", Offset: 700}},
				},
			},
		},
		ReceiptSubtotal: 11200,
	}

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{Booking: booking})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	refs := map[string]string{}
	for _, line := range result.Payload.Lines {
		if line.SalesItem != nil {
			refs[line.Description] = line.SalesItem.ItemRef
		}
	}

	if got := refs["Cash Handling Fee"]; got != "99" {
		t.Errorf("cash handling fee item ref = %q, want fallback 99 (payment-type account must not match)", got)
	}
	if got := refs["Stewardship Fee"]; got != "20" {
		t.Errorf("stewardship fee item ref = %q, want fee mapping 20", got)
	}
	if got := refs["Whale Watching Tour - Adult"]; got != "10" {
		t.Errorf("tour line item ref = %q, want tour mapping 10", got)
	}
}

func TestBuildInvoiceUpdateDecision(t *testing.T) {
	svc := testInvoiceService()

	booking := fixedPriceBooking()
	booking.RebookedFrom = "9f8e7d6c-0000-0000-0000-000000000009"

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
		Booking: booking,
		Catalog: testCatalog(),
		Existing: &request.ExistingInvoice{
			ID:        "441",
			SyncToken: "3",
			Memo:      "rebooked from 9f8e7d6c-0000-0000-0000-000000000009",
		},
	})
	if err != nil {
		t.Fatalf("BuildInvoice returned error: %v", err)
	}

	if result.Action != response.ActionUpdate {
		t.Errorf("action = %q, want %q", result.Action, response.ActionUpdate)
	}
	if !result.Diagnostics.MatchedRebooking {
		t.Error("rebooking match not recorded in diagnostics")
	}
	if result.Payload.InvoiceID != "441" || result.Payload.SyncToken != "3" {
		t.Errorf("update payload refs = (%q, %q), want (441, 3)", result.Payload.InvoiceID, result.Payload.SyncToken)
	}
}

func TestBuildInvoiceUnsafeUpdateAborts(t *testing.T) {
	svc := testInvoiceService()

	tests := []struct {
		name     string
		existing *request.ExistingInvoice
	}{
		{"no existing invoice", nil},
		{"existing without sync token", &request.ExistingInvoice{ID: "441"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{
				Booking:      fixedPriceBooking(),
				Catalog:      testCatalog(),
				Existing:     tt.existing,
				UpdateNeeded: true,
			})
			if !errors.Is(err, ErrUnsafeUpdate) {
				t.Fatalf("err = %v, want ErrUnsafeUpdate", err)
			}
			if result == nil {
				t.Fatal("aborted build must still return a diagnostics record")
			}
			if result.Payload != nil {
				t.Error("aborted build must not carry a partial payload")
			}
		})
	}
}

func TestBuildInvoiceMissingBooking(t *testing.T) {
	svc := testInvoiceService()

	result, err := svc.BuildInvoice(context.Background(), &request.BuildInvoiceRequest{})
	if !errors.Is(err, ErrMissingBooking) {
		t.Fatalf("err = %v, want ErrMissingBooking", err)
	}
	if result == nil || result.Diagnostics.StartedAt == "" {
		t.Error("missing booking must still return a timestamped diagnostics record")
	}
}
