package trade

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReturnService processes product returns against paid orders. Each
// call appends return rows to the order and issues exactly one store
// credit covering every returned line, atomically. A failure on any
// line rolls the whole call back; nothing is written.
type ReturnService struct {
	scope  txn.TransactionScope
	logger *zap.Logger
}

// NewReturnService creates a new ReturnService
func NewReturnService(scope txn.TransactionScope, logger *zap.Logger) *ReturnService {
	return &ReturnService{
		scope:  scope,
		logger: logger,
	}
}

// ProcessReturn records the returned items of one return submission.
// Validation failures are reported before any transaction is opened.
// Repeated submissions are not deduplicated; each call appends its own
// rows and issues its own credit.
func (s *ReturnService) ProcessReturn(ctx context.Context, req ProcessReturnRequest) (*ReturnResponse, error) {
	if req.OrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order ID is required")
	}
	if len(req.ReturnItems) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Return items cannot be empty")
	}
	if req.EmployeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Employee ID is required")
	}

	var response *ReturnResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByID(ctx, req.OrderID)
		if err != nil {
			return err
		}

		totalCredit := valueobject.ZeroUSD()
		appended := make([]trade.OrderItem, 0, len(req.ReturnItems))
		itemResponses := make([]ReturnedItemResponse, 0, len(req.ReturnItems))

		for _, item := range req.ReturnItems {
			row, credit, err := order.RecordReturn(item.ProductID, item.Quantity, item.Note, req.EmployeeID)
			if err != nil {
				return err
			}

			totalCredit, err = totalCredit.Add(credit)
			if err != nil {
				return err
			}

			appended = append(appended, *row)
			itemResponses = append(itemResponses, ReturnedItemResponse{
				ID:                row.ID,
				ProductID:         row.ProductID,
				SKU:               row.SKU,
				Quantity:          row.Quantity,
				UnitPriceDeducted: row.UnitPriceDeducted,
				RefundAmount:      credit.Amount().Round(2),
				Note:              row.Note,
			})
		}

		if err := repos.OrderRepo().AppendItems(ctx, order.ID, appended); err != nil {
			return err
		}

		customerName := req.CustomerName
		if customerName == "" {
			customerName = order.CustomerName
		}

		// One credit row per return call, covering all returned lines
		credit, err := finance.NewReturnCredit(
			order.ID,
			totalCredit,
			customerName,
			fmt.Sprintf("Return against order %s", order.OrderNumber),
		)
		if err != nil {
			return err
		}

		if err := repos.StoreCreditRepo().Save(ctx, credit); err != nil {
			return err
		}

		response = &ReturnResponse{
			OrderID:       order.ID,
			OrderNumber:   order.OrderNumber,
			ReturnedItems: itemResponses,
			CreditID:      credit.ID,
			CreditAmount:  credit.CreditAmount,
			ProcessedAt:   credit.IssuedAt,
		}

		return nil
	})
	if err != nil {
		s.logger.Warn("Return processing failed",
			zap.String("order_id", req.OrderID.String()),
			zap.Int("item_count", len(req.ReturnItems)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Return processed",
		zap.String("order_id", response.OrderID.String()),
		zap.String("credit_id", response.CreditID.String()),
		zap.String("credit_amount", response.CreditAmount.String()),
		zap.Int("item_count", len(response.ReturnedItems)))

	return response, nil
}

// ListReturns retrieves the return rows recorded against an order
func (s *ReturnService) ListReturns(ctx context.Context, orderRepo trade.OrderRepository, orderID uuid.UUID) ([]ReturnedItemResponse, error) {
	order, err := orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	returned := order.ReturnedItems()
	responses := make([]ReturnedItemResponse, 0, len(returned))
	for idx := range returned {
		row := &returned[idx]
		responses = append(responses, ReturnedItemResponse{
			ID:                row.ID,
			ProductID:         row.ProductID,
			SKU:               row.SKU,
			Quantity:          row.Quantity,
			UnitPriceDeducted: row.UnitPriceDeducted,
			RefundAmount:      row.UnitPriceDeducted.Mul(row.Quantity).Round(2),
			Note:              row.Note,
		})
	}

	return responses, nil
}
