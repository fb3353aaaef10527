package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/nurpe/aifa-contracts/internal/model"
	"github.com/nurpe/aifa-contracts/internal/repository"
)

type BudgetStore interface {
	List(ctx context.Context) ([]model.BudgetItem, error)
	Create(ctx context.Context, item model.BudgetItem) (*model.BudgetItem, error)
	Update(ctx context.Context, item model.BudgetItem) error
	Delete(ctx context.Context, id int64) error
}

type ExcelGenerator interface {
	Generate(items []model.BudgetItem, summary model.BudgetSummary, generatedAt time.Time) ([]byte, error)
}

type PDFGenerator interface {
	Generate(summary model.BudgetSummary, generatedAt time.Time) ([]byte, error)
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

type BudgetService struct {
	repo  BudgetStore
	excel ExcelGenerator
	pdf   PDFGenerator
	log   zerolog.Logger
	now   func() time.Time
}

func NewBudgetService(repo BudgetStore, excel ExcelGenerator, pdf PDFGenerator, log zerolog.Logger) *BudgetService {
	return &BudgetService{
		repo:  repo,
		excel: excel,
		pdf:   pdf,
		log:   log,
		now:   time.Now,
	}
}

func (s *BudgetService) List(ctx context.Context) ([]model.BudgetItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list budget items: %v", ErrUpstream, err)
	}
	return items, nil
}

// Create inserts the item with its full field set and returns the
// re-fetched ledger.
func (s *BudgetService) Create(ctx context.Context, principal model.Principal, item model.BudgetItem) ([]model.BudgetItem, error) {
	if !principal.CanEditBudget() {
		return nil, ErrPermissionDenied
	}
	item, err := normalizeBudgetItem(item)
	if err != nil {
		return nil, err
	}
	item.ID = 0

	saved, err := s.repo.Create(ctx, item)
	if err != nil {
		return nil, mapStoreError(err)
	}
	s.log.Info().Int64("item_id", saved.ID).Str("user_id", principal.UserID).Msg("budget item created")
	return s.List(ctx)
}

func (s *BudgetService) Update(ctx context.Context, principal model.Principal, item model.BudgetItem) ([]model.BudgetItem, error) {
	if !principal.CanEditBudget() {
		return nil, ErrPermissionDenied
	}
	if item.ID <= 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	item, err := normalizeBudgetItem(item)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, mapStoreError(err)
	}
	s.log.Info().Int64("item_id", item.ID).Str("user_id", principal.UserID).Msg("budget item updated")
	return s.List(ctx)
}

// Delete removes the item only when the caller confirmed the deletion.
func (s *BudgetService) Delete(ctx context.Context, principal model.Principal, id int64, confirmed bool) ([]model.BudgetItem, error) {
	if !principal.CanEditBudget() {
		return nil, ErrPermissionDenied
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}
	if !confirmed {
		return nil, ErrConfirmationRequired
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, mapStoreError(err)
	}
	s.log.Info().Int64("item_id", id).Str("user_id", principal.UserID).Msg("budget item deleted")
	return s.List(ctx)
}

func (s *BudgetService) Summary(ctx context.Context) (*model.BudgetSummary, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	summary := SummarizeBudget(items)
	return &summary, nil
}

func (s *BudgetService) ExportWorkbook(ctx context.Context) (*ExportResult, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()
	content, err := s.excel.Generate(items, SummarizeBudget(items), generatedAt)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    fmt.Sprintf("paas-%s.xlsx", generatedAt.Format("20060102")),
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Content:     content,
	}, nil
}

func (s *BudgetService) ExportPDF(ctx context.Context) (*ExportResult, error) {
	summary, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	generatedAt := s.now()
	content, err := s.pdf.Generate(*summary, generatedAt)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName:    fmt.Sprintf("paas-resumen-%s.pdf", generatedAt.Format("20060102")),
		ContentType: "application/pdf",
		Content:     content,
	}, nil
}

func normalizeBudgetItem(item model.BudgetItem) (model.BudgetItem, error) {
	item.SeqNo = strings.TrimSpace(item.SeqNo)
	item.ProcurementCode = strings.TrimSpace(item.ProcurementCode)
	item.ServiceName = strings.TrimSpace(item.ServiceName)
	item.OrgUnit = strings.TrimSpace(item.OrgUnit)
	item.Justification = strings.TrimSpace(item.Justification)

	if item.ServiceName == "" {
		return item, fmt.Errorf("%w: service_name is required", ErrInvalidInput)
	}
	if err := checkAmount("requested_amount", item.RequestedAmount); err != nil {
		return item, err
	}
	if err := checkAmount("revised_amount", item.RevisedAmount); err != nil {
		return item, err
	}
	return item, nil
}

func checkAmount(field string, amount *float64) error {
	if amount == nil {
		return nil
	}
	if math.IsNaN(*amount) || math.IsInf(*amount, 0) || *amount < 0 {
		return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidInput, field)
	}
	return nil
}

func mapStoreError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrConflict):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	default:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}
}
