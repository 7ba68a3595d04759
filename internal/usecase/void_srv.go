package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/utils"

	"go.uber.org/zap"
)

// ErrVoidDisabled is returned when the void feature flag is off.
var ErrVoidDisabled = errors.New("void feature is disabled")

// voidSource identifies this system to the downstream void workflow.
const voidSource = "fareharbour_reconciliation"

type VoidService interface {
	DispatchVoids(ctx context.Context, candidates []response.VoidCandidate) (*response.VoidDispatchReport, error)
}

type voidService struct {
	config *utils.Config
	client *http.Client
	log    *zap.Logger
}

func NewVoidService(config *utils.Config, log *zap.Logger) VoidService {
	return &voidService{
		config: config,
		client: &http.Client{Timeout: 30 * time.Second},
		log:    log.With(zap.String("service", "void")),
	}
}

type voidRequest struct {
	DocNumber string `json:"doc_number"`
	Action    string `json:"action"`
	Source    string `json:"source"`
}

type voidResponse struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	FHBookingID string `json:"fh_booking_id"`
	Timestamp   string `json:"timestamp"`
}

// DispatchVoids posts one void request per candidate to the configured
// webhook, sequentially with the configured delay between requests. A failed
// candidate is recorded and dispatch continues.
func (s *voidService) DispatchVoids(ctx context.Context, candidates []response.VoidCandidate) (*response.VoidDispatchReport, error) {
	if !s.config.Void.Enabled {
		return nil, ErrVoidDisabled
	}
	if s.config.Void.WebhookURL == "" {
		return nil, fmt.Errorf("void webhook URL is not configured")
	}

	report := &response.VoidDispatchReport{
		Results: make([]response.VoidDispatchResult, 0, len(candidates)),
	}

	delay := time.Duration(s.config.Void.DelaySeconds) * time.Second
	for i, candidate := range candidates {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return report, ctx.Err()
			case <-time.After(delay):
			}
		}

		result := s.dispatchOne(ctx, candidate)
		if result.Success {
			report.Dispatched++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}

	s.log.Info("Void dispatch complete",
		zap.Int("candidates", len(candidates)),
		zap.Int("dispatched", report.Dispatched),
		zap.Int("failed", report.Failed),
	)

	return report, nil
}

func (s *voidService) dispatchOne(ctx context.Context, candidate response.VoidCandidate) response.VoidDispatchResult {
	result := response.VoidDispatchResult{
		DocNumber:   candidate.DocNumber,
		FHBookingID: candidate.BookingID,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(voidRequest{
		DocNumber: candidate.DocNumber,
		Action:    "void",
		Source:    voidSource,
	})
	if err != nil {
		result.Message = fmt.Sprintf("encode request: %v", err)
		return result
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Void.WebhookURL, bytes.NewReader(body))
	if err != nil {
		result.Message = fmt.Sprintf("build request: %v", err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.App.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.App.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("Void request failed",
			zap.Error(err),
			zap.String("doc_number", candidate.DocNumber),
		)
		result.Message = fmt.Sprintf("send request: %v", err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		result.Message = fmt.Sprintf("webhook returned status %d", resp.StatusCode)
		return result
	}

	var vr voidResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		result.Message = fmt.Sprintf("decode response: %v", err)
		return result
	}

	result.Success = vr.Success
	result.Message = vr.Message
	if vr.FHBookingID != "" {
		result.FHBookingID = vr.FHBookingID
	}
	if vr.Timestamp != "" {
		result.Timestamp = vr.Timestamp
	}

	s.log.Info("Void dispatched",
		zap.String("doc_number", candidate.DocNumber),
		zap.String("booking_id", candidate.BookingID),
		zap.Bool("success", result.Success),
	)

	return result
}
