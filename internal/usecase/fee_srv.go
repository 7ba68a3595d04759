package usecase

import (
	"context"
	"fmt"
	"time"

	"booking-reconcile/internal/data/entity"
	"booking-reconcile/internal/data/repository"
	"booking-reconcile/internal/dto/request"
	"booking-reconcile/internal/dto/response"
	"booking-reconcile/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FeeService interface {
	CreateFee(ctx context.Context, req *request.CreateFeeRequest) (*response.Fee, error)
	GetFeeByID(ctx context.Context, feeID string) (*response.Fee, error)
	GetFees(ctx context.Context) ([]response.Fee, error)
	UpdateFee(ctx context.Context, feeID string, req *request.UpdateFeeRequest) (*response.Fee, error)
	DeleteFee(ctx context.Context, feeID string) error
}

type feeService struct {
	repo repository.FeeRepository
	log  *zap.Logger
}

func NewFeeService(repo repository.FeeRepository, log *zap.Logger) FeeService {
	return &feeService{
		repo: repo,
		log:  log.With(zap.String("service", "fee")),
	}
}

func (s *feeService) CreateFee(ctx context.Context, req *request.CreateFeeRequest) (*response.Fee, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create fee validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	now := time.Now()
	fee := &entity.Fee{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     req.Name,
		Amount:   req.Amount,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, fmt.Errorf("create fee: %w", err)
	}

	s.log.Info("Fee created",
		zap.String("fee_id", fee.ID.String()),
		zap.String("name", fee.Name),
		zap.Int64("amount", fee.Amount),
	)

	return feeToResponse(fee), nil
}

func (s *feeService) GetFeeByID(ctx context.Context, feeID string) (*response.Fee, error) {
	id, err := uuid.Parse(feeID)
	if err != nil {
		return nil, fmt.Errorf("invalid fee ID format %s: %w", feeID, err)
	}

	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get fee: %w", err)
	}
	if fee == nil {
		return nil, fmt.Errorf("fee %s not found", feeID)
	}

	return feeToResponse(fee), nil
}

func (s *feeService) GetFees(ctx context.Context) ([]response.Fee, error) {
	fees, err := s.repo.FindAllActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("get fees: %w", err)
	}

	result := make([]response.Fee, len(fees))
	for i, fee := range fees {
		result[i] = *feeToResponse(fee)
	}

	return result, nil
}

func (s *feeService) UpdateFee(ctx context.Context, feeID string, req *request.UpdateFeeRequest) (*response.Fee, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update fee validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(feeID)
	if err != nil {
		return nil, fmt.Errorf("invalid fee ID format %s: %w", feeID, err)
	}

	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get fee: %w", err)
	}
	if fee == nil {
		return nil, fmt.Errorf("fee %s not found", feeID)
	}

	fee.Name = req.Name
	fee.Amount = req.Amount
	fee.IsActive = req.IsActive

	if err := s.repo.Update(ctx, fee); err != nil {
		return nil, fmt.Errorf("update fee: %w", err)
	}

	s.log.Info("Fee updated",
		zap.String("fee_id", feeID),
		zap.String("name", fee.Name),
	)

	return feeToResponse(fee), nil
}

func (s *feeService) DeleteFee(ctx context.Context, feeID string) error {
	id, err := uuid.Parse(feeID)
	if err != nil {
		return fmt.Errorf("invalid fee ID format %s: %w", feeID, err)
	}

	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get fee: %w", err)
	}
	if fee == nil {
		return fmt.Errorf("fee %s not found", feeID)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete fee: %w", err)
	}

	s.log.Info("Fee deleted", zap.String("fee_id", feeID))
	return nil
}

func feeToResponse(fee *entity.Fee) *response.Fee {
	return &response.Fee{
		ID:        fee.ID.String(),
		Name:      fee.Name,
		Amount:    fee.Amount,
		IsActive:  fee.IsActive,
		CreatedAt: fee.CreatedAt,
		UpdatedAt: fee.UpdatedAt,
	}
}
