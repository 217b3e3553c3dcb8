package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tradeapp "github.com/retailpos/backend/internal/application/trade"
	"github.com/retailpos/backend/internal/application/txn"
	"github.com/retailpos/backend/internal/domain/finance"
	"github.com/retailpos/backend/internal/domain/inventory"
	"github.com/retailpos/backend/internal/domain/purchasing"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/retailpos/backend/internal/domain/shared/valueobject"
	"github.com/retailpos/backend/internal/domain/trade"
	"github.com/retailpos/backend/internal/interfaces/http/middleware"
)

// stubOrderRepo serves a single order and records appended items and
// saved credits through the surrounding stubScope.
type stubOrderRepo struct {
	order    *trade.Order
	appended [][]trade.OrderItem
}

func (r *stubOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	if r.order == nil || r.order.ID != id {
		return nil, shared.ErrNotFound
	}
	return r.order, nil
}

func (r *stubOrderRepo) FindByOrderNumber(ctx context.Context, orderNumber string) (*trade.Order, error) {
	return nil, shared.ErrNotFound
}

func (r *stubOrderRepo) FindAll(ctx context.Context, filter shared.Filter) ([]trade.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) FindByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]trade.Order, error) {
	return nil, nil
}

func (r *stubOrderRepo) Save(ctx context.Context, order *trade.Order) error { return nil }

func (r *stubOrderRepo) AppendItems(ctx context.Context, orderID uuid.UUID, items []trade.OrderItem) error {
	r.appended = append(r.appended, items)
	return nil
}

func (r *stubOrderRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubOrderRepo) CountByStatus(ctx context.Context, status trade.OrderStatus) (int64, error) {
	return 0, nil
}

func (r *stubOrderRepo) GenerateOrderNumber(ctx context.Context) (string, error) {
	return "ORD-2026-00001", nil
}

type stubCreditRepo struct {
	saved []*finance.StoreCredit
}

func (r *stubCreditRepo) FindByID(ctx context.Context, id uuid.UUID) (*finance.StoreCredit, error) {
	return nil, shared.ErrNotFound
}

func (r *stubCreditRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]finance.StoreCredit, error) {
	return nil, nil
}

func (r *stubCreditRepo) FindByCustomerName(ctx context.Context, customerName string, filter shared.Filter) ([]finance.StoreCredit, error) {
	return nil, nil
}

func (r *stubCreditRepo) FindAll(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	return nil, nil
}

func (r *stubCreditRepo) FindActive(ctx context.Context, filter shared.Filter) ([]finance.StoreCredit, error) {
	return nil, nil
}

func (r *stubCreditRepo) Save(ctx context.Context, credit *finance.StoreCredit) error {
	r.saved = append(r.saved, credit)
	return nil
}

func (r *stubCreditRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

type stubRepos struct {
	orderRepo  *stubOrderRepo
	creditRepo *stubCreditRepo
}

func (s *stubRepos) OrderRepo() trade.OrderRepository                     { return s.orderRepo }
func (s *stubRepos) StoreCreditRepo() finance.StoreCreditRepository       { return s.creditRepo }
func (s *stubRepos) StockItemRepo() inventory.StockItemRepository         { return nil }
func (s *stubRepos) StockMovementRepo() inventory.StockMovementRepository { return nil }
func (s *stubRepos) PurchaseRepo() purchasing.PurchaseRepository          { return nil }

type stubScope struct {
	repos *stubRepos
}

func (s *stubScope) Execute(ctx context.Context, fn func(repos txn.TransactionalRepositories) error) error {
	return fn(s.repos)
}

var _ txn.TransactionScope = (*stubScope)(nil)
var _ txn.TransactionalRepositories = (*stubRepos)(nil)

func newReturnTestRouter(t *testing.T, repos *stubRepos) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	returnService := tradeapp.NewReturnService(&stubScope{repos: repos}, zap.NewNop())
	handler := NewOrderHandler(nil, returnService, repos.orderRepo)

	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTEmployeeIDKey, uuid.New().String())
	})
	engine.POST("/api/v1/trade/orders/return", handler.ProcessReturn)
	return engine
}

func paidOrderWithLine(t *testing.T, productID uuid.UUID, qty int64, price float64, discountPct int64) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder("ORD-2026-00042", uuid.New(), uuid.New(), "Walk-in")
	require.NoError(t, err)
	_, err = order.AddItem(
		productID, "SKU-100", "Product SKU-100",
		decimal.NewFromInt(qty),
		valueobject.NewMoneyUSDFromFloat(price),
		decimal.NewFromInt(discountPct),
	)
	require.NoError(t, err)
	require.NoError(t, order.MarkPaid())
	return order
}

func postReturn(t *testing.T, engine *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/trade/orders/return", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestOrderHandler_ProcessReturn(t *testing.T) {
	t.Run("returns the credit for a full discounted line", func(t *testing.T) {
		productID := uuid.New()
		repos := &stubRepos{
			orderRepo:  &stubOrderRepo{order: paidOrderWithLine(t, productID, 2, 100.00, 20)},
			creditRepo: &stubCreditRepo{},
		}
		engine := newReturnTestRouter(t, repos)

		body := fmt.Sprintf(`{"orderId":%q,"returnItems":[{"productId":%q,"quantity":"2"}]}`,
			repos.orderRepo.order.ID, productID)
		w := postReturn(t, engine, body)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Data    struct {
				CreditAmount decimal.Decimal `json:"credit_amount"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "160", resp.Data.CreditAmount.String())

		require.Len(t, repos.creditRepo.saved, 1)
		assert.Equal(t, "160", repos.creditRepo.saved[0].CreditAmount.String())
		require.Len(t, repos.orderRepo.appended, 1)
	})

	t.Run("rejects an empty return item list with 400", func(t *testing.T) {
		repos := &stubRepos{
			orderRepo:  &stubOrderRepo{},
			creditRepo: &stubCreditRepo{},
		}
		engine := newReturnTestRouter(t, repos)

		w := postReturn(t, engine, fmt.Sprintf(`{"orderId":%q,"returnItems":[]}`, uuid.New()))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, repos.creditRepo.saved)
		assert.Empty(t, repos.orderRepo.appended)
	})

	t.Run("writes nothing when one line exceeds the returnable quantity", func(t *testing.T) {
		productID := uuid.New()
		repos := &stubRepos{
			orderRepo:  &stubOrderRepo{order: paidOrderWithLine(t, productID, 2, 100.00, 20)},
			creditRepo: &stubCreditRepo{},
		}
		engine := newReturnTestRouter(t, repos)

		body := fmt.Sprintf(`{"orderId":%q,"returnItems":[{"productId":%q,"quantity":"3"}]}`,
			repos.orderRepo.order.ID, productID)
		w := postReturn(t, engine, body)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

		var resp struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, "RETURN_EXCEEDS_QUANTITY", resp.Error.Code)
		assert.Empty(t, repos.creditRepo.saved)
	})

	t.Run("reports an unknown order with 404", func(t *testing.T) {
		repos := &stubRepos{
			orderRepo:  &stubOrderRepo{},
			creditRepo: &stubCreditRepo{},
		}
		engine := newReturnTestRouter(t, repos)

		body := fmt.Sprintf(`{"orderId":%q,"returnItems":[{"productId":%q,"quantity":"1"}]}`,
			uuid.New(), uuid.New())
		w := postReturn(t, engine, body)

		assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	})
}
