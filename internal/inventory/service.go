package inventory

import (
	"context"
	"fmt"

	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/envelope"
)

const defaultActor = "system"

// Service fronts the stored-procedure inventory surface. Each operation is
// exactly one procedure call whose text is parsed into an envelope; nothing
// here ever raises.
type Service interface {
	ItemCreate(ctx context.Context, req ItemCreateRequest, actor string) envelope.Envelope
	ItemUpdate(ctx context.Context, id int64, req ItemUpdateRequest, actor string) envelope.Envelope
	ItemDelete(ctx context.Context, id int64, actor string) envelope.Envelope
	ItemGet(ctx context.Context, id int64) envelope.Envelope
	ItemGetAll(ctx context.Context) envelope.Envelope

	StockCreate(ctx context.Context, req StockCreateRequest, actor string) envelope.Envelope
	StockUpdate(ctx context.Context, id int64, req StockUpdateRequest, actor string) envelope.Envelope
	StockDelete(ctx context.Context, id int64, actor string) envelope.Envelope
	StockGet(ctx context.Context, id int64) envelope.Envelope
	StockGetAll(ctx context.Context) envelope.Envelope
}

type service struct {
	repo Repository
	uow  *db.UnitOfWork
}

// NewService builds an inventory service with the required dependencies.
func NewService(repo Repository, uow *db.UnitOfWork) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if uow == nil {
		return nil, fmt.Errorf("unit of work required")
	}
	return &service{repo: repo, uow: uow}, nil
}

func (s *service) bound(ctx context.Context) Repository {
	return s.repo.WithConn(s.uow.Conn(ctx))
}

func (s *service) ItemCreate(ctx context.Context, req ItemCreateRequest, actor string) envelope.Envelope {
	raw := s.bound(ctx).ItemCreate(ctx, req.Name, req.Price.String(), normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) ItemUpdate(ctx context.Context, id int64, req ItemUpdateRequest, actor string) envelope.Envelope {
	raw := s.bound(ctx).ItemUpdate(ctx, id, req.Name, req.Price.String(), normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) ItemDelete(ctx context.Context, id int64, actor string) envelope.Envelope {
	raw := s.bound(ctx).ItemDelete(ctx, id, normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) ItemGet(ctx context.Context, id int64) envelope.Envelope {
	return envelope.Parse(s.bound(ctx).ItemGet(ctx, id))
}

func (s *service) ItemGetAll(ctx context.Context) envelope.Envelope {
	return envelope.Parse(s.bound(ctx).ItemGetAll(ctx))
}

func (s *service) StockCreate(ctx context.Context, req StockCreateRequest, actor string) envelope.Envelope {
	raw := s.bound(ctx).StockCreate(ctx, req.ItemID, normalizeLocation(req.Location), req.Qty, normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) StockUpdate(ctx context.Context, id int64, req StockUpdateRequest, actor string) envelope.Envelope {
	raw := s.bound(ctx).StockUpdate(ctx, id, req.Qty, normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) StockDelete(ctx context.Context, id int64, actor string) envelope.Envelope {
	raw := s.bound(ctx).StockDelete(ctx, id, normalizeActor(actor))
	return envelope.Parse(raw)
}

func (s *service) StockGet(ctx context.Context, id int64) envelope.Envelope {
	return envelope.Parse(s.bound(ctx).StockGet(ctx, id))
}

func (s *service) StockGetAll(ctx context.Context) envelope.Envelope {
	return envelope.Parse(s.bound(ctx).StockGetAll(ctx))
}

func normalizeActor(actor string) string {
	if actor == "" {
		return defaultActor
	}
	return actor
}
