package orders

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/db/models"
	"github.com/novamart/orderhub-backend/pkg/envelope"
	pkgerrors "github.com/novamart/orderhub-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

const defaultActor = "system"

// Service exposes the order operations. Every method returns an envelope;
// failures are encoded, never raised.
type Service interface {
	Create(ctx context.Context, req CreateOrderRequest, actor string) envelope.Envelope
	Get(ctx context.Context, id int64) envelope.Envelope
	Update(ctx context.Context, id int64, req UpdateOrderRequest, actor string) envelope.Envelope
	Delete(ctx context.Context, id int64, actor string) envelope.Envelope

	CreateViaProc(ctx context.Context, req CreateOrderRequest, actor string) envelope.Envelope
	GetViaProc(ctx context.Context, id int64) envelope.Envelope
	UpdateStatusViaProc(ctx context.Context, id int64, req UpdateOrderStatusRequest, actor string) envelope.Envelope
	DeleteViaProc(ctx context.Context, id int64, actor string) envelope.Envelope
}

type service struct {
	repo Repository
	uow  *db.UnitOfWork
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, uow *db.UnitOfWork) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if uow == nil {
		return nil, fmt.Errorf("unit of work required")
	}
	return &service{repo: repo, uow: uow}, nil
}

// validateItems enforces the line-level invariants shared by both create
// paths. Returns a failure envelope or nil.
func validateItems(items []CreateOrderItemRequest) *envelope.Envelope {
	if len(items) == 0 {
		env := envelope.Fail(400, "Order must contain at least one item")
		return &env
	}
	for _, line := range items {
		if line.UnitPrice.Sign() <= 0 {
			env := envelope.Fail(400, "Unit price must be positive")
			return &env
		}
	}
	return nil
}

func (s *service) Create(ctx context.Context, req CreateOrderRequest, actor string) envelope.Envelope {
	if env := validateItems(req.Items); env != nil {
		return *env
	}
	actor = normalizeActor(actor)

	total := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Qty))))
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
			CreatedBy: actor,
			IsActive:  true,
		})
	}

	order := &models.Order{
		CustomerID:  req.CustomerID,
		Status:      "NEW",
		TotalAmount: total,
		RowVersion:  1,
		CreatedBy:   actor,
		IsActive:    true,
		Items:       items,
	}

	scope, err := s.uow.Begin(ctx)
	if err != nil {
		return envelope.Fail(500, fmt.Sprintf("begin transaction: %v", err))
	}
	defer scope.Close()

	if err := s.repo.WithConn(scope.Conn()).Add(ctx, order); err != nil {
		return pkgerrors.EnvelopeFor(db.Classify(err, "create order"))
	}
	if err := scope.Commit(); err != nil {
		return envelope.Fail(500, fmt.Sprintf("commit order: %v", err))
	}

	return envelope.OkMsg(map[string]any{"orderId": order.ID}, "Order created")
}

func (s *service) Get(ctx context.Context, id int64) envelope.Envelope {
	order, err := s.repo.WithConn(s.uow.Conn(ctx)).GetByID(ctx, id)
	if err != nil {
		return envelope.Fail(500, fmt.Sprintf("load order: %v", err))
	}
	if order == nil {
		return envelope.Fail(404, "Order not found")
	}
	return envelope.OkMsg(toOrderDTO(order), "Order retrieved")
}

func (s *service) Update(ctx context.Context, id int64, req UpdateOrderRequest, actor string) envelope.Envelope {
	fields := map[string]any{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.TotalAmount != nil {
		fields["total_amount"] = *req.TotalAmount
	}
	if len(fields) == 0 {
		return envelope.Fail(400, "No fields to update")
	}
	fields["updated_by"] = normalizeActor(actor)

	scope, err := s.uow.Begin(ctx)
	if err != nil {
		return envelope.Fail(500, fmt.Sprintf("begin transaction: %v", err))
	}
	defer scope.Close()

	repo := s.repo.WithConn(scope.Conn())
	affected, err := repo.Update(ctx, id, fields, req.RowVersion)
	if err != nil {
		return pkgerrors.EnvelopeFor(db.Classify(err, "update order"))
	}
	if affected == 0 {
		existing, loadErr := repo.GetByID(ctx, id)
		if loadErr != nil {
			return envelope.Fail(500, fmt.Sprintf("load order: %v", loadErr))
		}
		if existing == nil {
			return envelope.Fail(404, "Order not found")
		}
		return envelope.Fail(409, "Order was modified by another request")
	}
	if err := scope.Commit(); err != nil {
		return envelope.Fail(500, fmt.Sprintf("commit update: %v", err))
	}

	return envelope.OkMsg(map[string]any{"orderId": id}, "Order updated")
}

func (s *service) Delete(ctx context.Context, id int64, actor string) envelope.Envelope {
	scope, err := s.uow.Begin(ctx)
	if err != nil {
		return envelope.Fail(500, fmt.Sprintf("begin transaction: %v", err))
	}
	defer scope.Close()

	repo := s.repo.WithConn(scope.Conn())
	order, err := repo.GetByID(ctx, id)
	if err != nil {
		return envelope.Fail(500, fmt.Sprintf("load order: %v", err))
	}
	if order == nil {
		return envelope.Fail(404, "Order not found")
	}

	if _, err := repo.SoftDelete(ctx, order, normalizeActor(actor)); err != nil {
		return pkgerrors.EnvelopeFor(db.Classify(err, "delete order"))
	}
	if err := scope.Commit(); err != nil {
		return envelope.Fail(500, fmt.Sprintf("commit delete: %v", err))
	}

	return envelope.OkMsg(map[string]any{"orderId": id}, "Order deleted (soft)")
}

func (s *service) CreateViaProc(ctx context.Context, req CreateOrderRequest, actor string) envelope.Envelope {
	if env := validateItems(req.Items); env != nil {
		return *env
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return envelope.Fail(400, fmt.Sprintf("encode order payload: %v", err))
	}

	raw := s.repo.WithConn(s.uow.Conn(ctx)).CreateViaProc(ctx, string(payload), normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) GetViaProc(ctx context.Context, id int64) envelope.Envelope {
	raw := s.repo.WithConn(s.uow.Conn(ctx)).GetViaProc(ctx, id)
	return envelope.Parse(raw)
}

func (s *service) UpdateStatusViaProc(ctx context.Context, id int64, req UpdateOrderStatusRequest, actor string) envelope.Envelope {
	if req.Status == "" {
		return envelope.Fail(400, "Status is required")
	}
	raw := s.repo.WithConn(s.uow.Conn(ctx)).UpdateStatusViaProc(ctx, id, req.Status, normalizeActor(actor))
	return envelope.Parse(raw)
}

// DeleteViaProc soft-deletes through the raw SQL path. A null result means
// the order is absent or already deleted, which callers see as 404.
func (s *service) DeleteViaProc(ctx context.Context, id int64, actor string) envelope.Envelope {
	raw := s.repo.WithConn(s.uow.Conn(ctx)).DeleteViaProc(ctx, id, normalizeActor(actor))
	env := envelope.Parse(raw)
	if env.ErrorCode == 1 {
		return envelope.Fail(404, "Order not found")
	}
	return env
}

func normalizeActor(actor string) string {
	if actor == "" {
		return defaultActor
	}
	return actor
}
