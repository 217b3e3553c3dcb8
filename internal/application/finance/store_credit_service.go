package finance

import (
	"context"

	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StoreCreditService handles store credit queries and manual issuance.
// Return credits are issued by the order return flow, not here.
type StoreCreditService struct {
	creditRepo finance.StoreCreditRepository
	logger     *zap.Logger
}

// NewStoreCreditService creates a new StoreCreditService
func NewStoreCreditService(creditRepo finance.StoreCreditRepository, logger *zap.Logger) *StoreCreditService {
	return &StoreCreditService{creditRepo: creditRepo, logger: logger}
}

// IssueGoodwill issues a manual credit, e.g. to settle a dispute
func (s *StoreCreditService) IssueGoodwill(ctx context.Context, req IssueGoodwillCreditRequest) (*StoreCreditResponse, error) {
	credit, err := finance.NewGoodwillCredit(
		req.OrderID,
		valueobject.NewMoneyUSD(req.Amount),
		req.CustomerName,
		req.Description,
	)
	if err != nil {
		return nil, err
	}
	if err := s.creditRepo.Save(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info("Goodwill credit issued",
		zap.String("credit_id", credit.ID.String()),
		zap.String("employee_id", req.EmployeeID.String()),
		zap.String("order_id", credit.OrderID.String()),
		zap.String("amount", credit.CreditAmount.String()))

	response := ToStoreCreditResponse(credit)
	return &response, nil
}

// GetByID retrieves a store credit by ID
func (s *StoreCreditService) GetByID(ctx context.Context, creditID uuid.UUID) (*StoreCreditResponse, error) {
	credit, err := s.creditRepo.FindByID(ctx, creditID)
	if err != nil {
		return nil, err
	}
	response := ToStoreCreditResponse(credit)
	return &response, nil
}

// ListByOrder retrieves credits issued against an order
func (s *StoreCreditService) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]StoreCreditResponse, error) {
	credits, err := s.creditRepo.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return toResponses(credits), nil
}

// ListActive retrieves redeemable credits
func (s *StoreCreditService) ListActive(ctx context.Context, filter shared.Filter) ([]StoreCreditResponse, error) {
	credits, err := s.creditRepo.FindActive(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toResponses(credits), nil
}

// List retrieves credits matching a filter
func (s *StoreCreditService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[StoreCreditResponse], error) {
	credits, err := s.creditRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.creditRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(toResponses(credits), total, filter.Page, filter.PageSize)
	return &result, nil
}

func toResponses(credits []finance.StoreCredit) []StoreCreditResponse {
	responses := make([]StoreCreditResponse, 0, len(credits))
	for idx := range credits {
		responses = append(responses, ToStoreCreditResponse(&credits[idx]))
	}
	return responses
}
