package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/novamart/orderhub-backend/pkg/db"
	"github.com/novamart/orderhub-backend/pkg/envelope"
)

// Service answers item substring searches.
type Service interface {
	Search(ctx context.Context, query string) envelope.Envelope
}

type service struct {
	repo Repository
	uow  *db.UnitOfWork
}

// NewService builds a search service with the required dependencies.
func NewService(repo Repository, uow *db.UnitOfWork) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("search repository required")
	}
	if uow == nil {
		return nil, fmt.Errorf("unit of work required")
	}
	return &service{repo: repo, uow: uow}, nil
}

// Search rejects blank queries before touching the database, then wraps the
// trimmed query in wildcards for a substring match.
func (s *service) Search(ctx context.Context, query string) envelope.Envelope {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return envelope.Fail(400, "Query cannot be empty")
	}

	pattern := "%" + trimmed + "%"
	raw := s.repo.WithConn(s.uow.Conn(ctx)).SearchItems(ctx, pattern)
	return envelope.Parse(raw)
}
