package orders

import (
	"time"

	"github.com/novamart/orderhub-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest is the payload for creating an order aggregate.
type CreateOrderRequest struct {
	CustomerID int64                    `json:"customerId" validate:"required,gt=0"`
	Items      []CreateOrderItemRequest `json:"items" validate:"dive"`
}

// CreateOrderItemRequest is one line of a new order.
type CreateOrderItemRequest struct {
	ProductID int64           `json:"productId" validate:"required,gt=0"`
	Qty       int             `json:"qty" validate:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" validate:"required"`
}

// UpdateOrderRequest patches an order. Nil fields are left untouched.
type UpdateOrderRequest struct {
	Status      *string          `json:"status,omitempty" validate:"omitempty,oneof=NEW CONFIRMED SHIPPED DELIVERED CANCELLED"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	RowVersion  int64            `json:"rowVersion" validate:"required,gt=0"`
}

// UpdateOrderStatusRequest drives the stored-procedure status transition.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// OrderDTO is the read model returned to clients.
type OrderDTO struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customerId"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	RowVersion  int64           `json:"rowVersion"`
	CreatedBy   string          `json:"createdBy"`
	CreatedDate time.Time       `json:"createdDate"`
	Items       []OrderItemDTO  `json:"items"`
}

// OrderItemDTO is one line of the read model.
type OrderItemDTO struct {
	ID        int64           `json:"id"`
	ProductID int64           `json:"productId"`
	Qty       int             `json:"qty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

func toOrderDTO(order *models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          order.ID,
		CustomerID:  order.CustomerID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		RowVersion:  order.RowVersion,
		CreatedBy:   order.CreatedBy,
		CreatedDate: order.CreatedDate,
		Items:       make([]OrderItemDTO, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		dto.Items = append(dto.Items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return dto
}
