package queries

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActorOrdersQueryHandler retrieves one actor's orders from the database.
// The role picks the ownership column to filter on.
type GetActorOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActorOrdersQueryHandler creates a handler for actor order queries.
// Requires a GORM database connection for query execution.
func NewGetActorOrdersQueryHandler(db *gorm.DB) GetActorOrdersQueryHandler {
	return GetActorOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve the actor's orders, newest first.
func (h GetActorOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActorOrdersQuery,
) ([]GetActorOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var ownerColumn string
	switch query.ActorRole() {
	case order.RoleClient:
		ownerColumn = "client_id"
	case order.RoleBusiness:
		ownerColumn = "business_id"
	case order.RoleAgent:
		ownerColumn = "assigned_agent_id"
	default:
		return nil, ErrRoleHasNoOrderView
	}

	orders := make([]GetActorOrdersQueryResponse, 0)

	// ownerColumn comes from the switch above, never from input.
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			status,
			payment_status,
			total_amount,
			currency,
			created_at,
			updated_at
		FROM orders
		WHERE `+ownerColumn+` = ?
		ORDER BY created_at DESC
	`, query.ActorID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActorOrdersQueryResponse
		var id uuid.UUID
		var status, paymentStatus, currency string
		var totalAmount decimal.Decimal

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&status,
			&paymentStatus,
			&totalAmount,
			&currency,
			&resp.CreatedAt,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		resp.Status, err = order.StatusFromString(status)
		if err != nil {
			return nil, err
		}
		resp.PaymentStatus, err = order.PaymentStatusFromString(paymentStatus)
		if err != nil {
			return nil, err
		}
		resp.TotalAmount, err = kernel.NewMoney(totalAmount, kernel.Currency(currency))
		if err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
