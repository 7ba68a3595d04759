package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

func voidConfig(url string) *utils.Config {
	return &utils.Config{
		App: utils.AppConfig{APIKey: "secret"},
		Void: utils.VoidConfig{
			Enabled:      true,
			WebhookURL:   url,
			DelaySeconds: 0,
		},
	}
}

func TestDispatchVoidsDisabled(t *testing.T) {
	config := voidConfig("http://localhost:0")
	config.Void.Enabled = false
	svc := NewVoidService(config, zap.NewNop())

	_, err := svc.DispatchVoids(context.Background(), []response.VoidCandidate{
		{DocNumber: "FH-abc", BookingID: "1001"},
	})
	if !errors.Is(err, ErrVoidDisabled) {
		t.Fatalf("err = %v, want ErrVoidDisabled", err)
	}
}

func TestDispatchVoidsPayload(t *testing.T) {
	var received []voidRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("authorization header = %q, want Bearer secret", got)
		}

		var req voidRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		received = append(received, req)

		json.NewEncoder(w).Encode(voidResponse{
			Success:     true,
			Message:     "invoice voided",
			FHBookingID: "1001",
			Timestamp:   "2026-08-28T10:00:00Z",
		})
	}))
	defer server.Close()

	svc := NewVoidService(voidConfig(server.URL), zap.NewNop())

	report, err := svc.DispatchVoids(context.Background(), []response.VoidCandidate{
		{DocNumber: "FH-abc123", BookingID: "1001"},
		{DocNumber: "FH-def456", BookingID: "1002"},
	})
	if err != nil {
		t.Fatalf("DispatchVoids returned error: %v", err)
	}

	if report.Dispatched != 2 || report.Failed != 0 {
		t.Errorf("report = %+v, want 2 dispatched and 0 failed", report)
	}
	if len(received) != 2 {
		t.Fatalf("webhook received %d requests, want 2", len(received))
	}
	for i, req := range received {
		if req.Action != "void" || req.Source != voidSource {
			t.Errorf("request %d = %+v, want action void and source %s", i, req, voidSource)
		}
	}
	if received[0].DocNumber != "FH-abc123" || received[1].DocNumber != "FH-def456" {
		t.Errorf("doc numbers = [%s %s], want dispatch in candidate order", received[0].DocNumber, received[1].DocNumber)
	}
	if got := report.Results[0]; !got.Success || got.Message != "invoice voided" || got.FHBookingID != "1001" {
		t.Errorf("result = %+v, want the webhook's response fields", got)
	}
}

func TestDispatchVoidsRecordsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req voidRequest
		json.NewDecoder(r.Body).Decode(&req)

		if req.DocNumber == "FH-bad" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(voidResponse{Success: true, Message: "invoice voided"})
	}))
	defer server.Close()

	svc := NewVoidService(voidConfig(server.URL), zap.NewNop())

	report, err := svc.DispatchVoids(context.Background(), []response.VoidCandidate{
		{DocNumber: "FH-bad", BookingID: "2001"},
		{DocNumber: "FH-good", BookingID: "2002"},
	})
	if err != nil {
		t.Fatalf("DispatchVoids returned error: %v", err)
	}

	if report.Dispatched != 1 || report.Failed != 1 {
		t.Fatalf("report = %+v, want 1 dispatched and 1 failed", report)
	}
	// A failed candidate is recorded and dispatch continues.
	if report.Results[0].Success || report.Results[1].Success != true {
		t.Errorf("results = %+v, want failure then success", report.Results)
	}
	if report.Results[0].FHBookingID != "2001" {
		t.Errorf("failed result booking = %q, want 2001", report.Results[0].FHBookingID)
	}
}
