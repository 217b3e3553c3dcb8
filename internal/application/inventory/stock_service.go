package inventory

import (
	"context"

	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StockService handles branch stock operations. Every operation that
// changes a quantity writes a movement record in the same transaction,
// so the movement log always explains the on-hand number.
type StockService struct {
	stockRepo    inventory.StockItemRepository
	movementRepo inventory.StockMovementRepository
	scope        txn.TransactionScope
	logger       *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	stockRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
	scope txn.TransactionScope,
	logger *zap.Logger,
) *StockService {
	return &StockService{
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		scope:        scope,
		logger:       logger,
	}
}

// Intake receives stock into a branch, creating the stock record on
// first receipt.
func (s *StockService) Intake(ctx context.Context, req IntakeRequest) (*StockItemResponse, error) {
	var response *StockItemResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		stock, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, req.BranchID, req.ProductID)
		if err != nil {
			if !shared.IsNotFound(err) {
				return err
			}
			stock, err = inventory.NewStockItem(req.BranchID, req.ProductID)
			if err != nil {
				return err
			}
		}

		before := stock.Quantity
		if err := stock.Increase(req.Quantity); err != nil {
			return err
		}
		if err := repos.StockItemRepo().SaveWithLock(ctx, stock); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			stock, inventory.MovementTypeIntake, req.Quantity, before,
			uuid.New().String(), req.Reference, req.EmployeeID, req.Note)
		if err != nil {
			return err
		}
		if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		r := ToStockItemResponse(stock)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock intake",
		zap.String("branch_id", req.BranchID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()))

	return response, nil
}

// Transfer moves stock between branches. Both legs are written under
// one batch ID in one transaction; a shortage on the source branch
// rolls the whole transfer back.
func (s *StockService) Transfer(ctx context.Context, req TransferRequest) (*TransferResponse, error) {
	if req.FromBranchID == req.ToBranchID {
		return nil, shared.NewDomainError("INVALID_TRANSFER", "Source and destination branch must differ")
	}

	var response *TransferResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		from, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, req.FromBranchID, req.ProductID)
		if err != nil {
			return err
		}

		to, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, req.ToBranchID, req.ProductID)
		if err != nil {
			if !shared.IsNotFound(err) {
				return err
			}
			to, err = inventory.NewStockItem(req.ToBranchID, req.ProductID)
			if err != nil {
				return err
			}
		}

		batchID := req.BatchID
		if batchID == "" {
			batchID = uuid.New().String()
		}

		fromBefore := from.Quantity
		if err := from.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := repos.StockItemRepo().SaveWithLock(ctx, from); err != nil {
			return err
		}
		outMove, err := inventory.NewStockMovement(
			from, inventory.MovementTypeTransferOut, req.Quantity, fromBefore,
			batchID, "", req.EmployeeID, req.Note)
		if err != nil {
			return err
		}
		if err := repos.StockMovementRepo().Save(ctx, outMove); err != nil {
			return err
		}

		toBefore := to.Quantity
		if err := to.Increase(req.Quantity); err != nil {
			return err
		}
		if err := repos.StockItemRepo().SaveWithLock(ctx, to); err != nil {
			return err
		}
		inMove, err := inventory.NewStockMovement(
			to, inventory.MovementTypeTransferIn, req.Quantity, toBefore,
			batchID, "", req.EmployeeID, req.Note)
		if err != nil {
			return err
		}
		if err := repos.StockMovementRepo().Save(ctx, inMove); err != nil {
			return err
		}

		response = &TransferResponse{
			BatchID:   batchID,
			FromStock: ToStockItemResponse(from),
			ToStock:   ToStockItemResponse(to),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock transferred",
		zap.String("from_branch", req.FromBranchID.String()),
		zap.String("to_branch", req.ToBranchID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("quantity", req.Quantity.String()),
		zap.String("batch_id", response.BatchID))

	return response, nil
}

// WriteOffDamage removes damaged stock
func (s *StockService) WriteOffDamage(ctx context.Context, req WriteOffRequest) (*StockItemResponse, error) {
	return s.writeOff(ctx, req, inventory.MovementTypeDamage)
}

// WriteOffStockOut removes stock lost for other reasons
func (s *StockService) WriteOffStockOut(ctx context.Context, req WriteOffRequest) (*StockItemResponse, error) {
	return s.writeOff(ctx, req, inventory.MovementTypeStockOut)
}

func (s *StockService) writeOff(ctx context.Context, req WriteOffRequest, movementType inventory.MovementType) (*StockItemResponse, error) {
	var response *StockItemResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		stock, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, req.BranchID, req.ProductID)
		if err != nil {
			return err
		}

		before := stock.Quantity
		if err := stock.Decrease(req.Quantity); err != nil {
			return err
		}
		if err := repos.StockItemRepo().SaveWithLock(ctx, stock); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			stock, movementType, req.Quantity, before,
			uuid.New().String(), "", req.EmployeeID, req.Note)
		if err != nil {
			return err
		}
		if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		r := ToStockItemResponse(stock)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Stock written off",
		zap.String("branch_id", req.BranchID.String()),
		zap.String("product_id", req.ProductID.String()),
		zap.String("movement_type", movementType.String()),
		zap.String("quantity", req.Quantity.String()))

	return response, nil
}

// Adjust corrects on-hand stock to an absolute counted quantity and
// records the signed delta as an adjustment movement.
func (s *StockService) Adjust(ctx context.Context, req AdjustRequest) (*StockItemResponse, error) {
	var response *StockItemResponse

	err := s.scope.Execute(ctx, func(repos txn.TransactionalRepositories) error {
		stock, err := repos.StockItemRepo().FindByBranchAndProduct(ctx, req.BranchID, req.ProductID)
		if err != nil {
			return err
		}

		before := stock.Quantity
		delta, err := stock.AdjustTo(req.CountedQty)
		if err != nil {
			return err
		}
		if delta.IsZero() {
			// Counted quantity matches; nothing to record
			r := ToStockItemResponse(stock)
			response = &r
			return nil
		}

		if err := repos.StockItemRepo().SaveWithLock(ctx, stock); err != nil {
			return err
		}

		movement, err := inventory.NewStockMovement(
			stock, inventory.MovementTypeAdjustment, delta, before,
			uuid.New().String(), "", req.EmployeeID, req.Note)
		if err != nil {
			return err
		}
		if err := repos.StockMovementRepo().Save(ctx, movement); err != nil {
			return err
		}

		r := ToStockItemResponse(stock)
		response = &r
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

// SetReorderLevel updates the low-stock threshold for a branch product
func (s *StockService) SetReorderLevel(ctx context.Context, branchID, productID uuid.UUID, level decimal.Decimal) (*StockItemResponse, error) {
	stock, err := s.stockRepo.FindByBranchAndProduct(ctx, branchID, productID)
	if err != nil {
		return nil, err
	}

	if err := stock.SetReorderLevel(level); err != nil {
		return nil, err
	}
	if err := s.stockRepo.Save(ctx, stock); err != nil {
		return nil, err
	}

	response := ToStockItemResponse(stock)
	return &response, nil
}

// GetBranchStock lists stock records for a branch
func (s *StockService) GetBranchStock(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]StockItemResponse, int64, error) {
	items, err := s.stockRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.stockRepo.Count(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToStockItemResponse(&items[idx]))
	}
	return responses, total, nil
}

// GetProductStock lists a product's stock across branches
func (s *StockService) GetProductStock(ctx context.Context, productID uuid.UUID) ([]StockItemResponse, error) {
	items, err := s.stockRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToStockItemResponse(&items[idx]))
	}
	return responses, nil
}

// GetLowStock lists branch stock at or below its reorder threshold
func (s *StockService) GetLowStock(ctx context.Context, branchID uuid.UUID) ([]StockItemResponse, error) {
	items, err := s.stockRepo.FindBelowReorderLevel(ctx, branchID)
	if err != nil {
		return nil, err
	}

	responses := make([]StockItemResponse, 0, len(items))
	for idx := range items {
		responses = append(responses, ToStockItemResponse(&items[idx]))
	}
	return responses, nil
}

// GetMovements lists movements for a branch
func (s *StockService) GetMovements(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]MovementResponse, int64, error) {
	movements, err := s.movementRepo.FindByBranch(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.movementRepo.Count(ctx, branchID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]MovementResponse, 0, len(movements))
	for idx := range movements {
		responses = append(responses, ToMovementResponse(&movements[idx]))
	}
	return responses, total, nil
}
