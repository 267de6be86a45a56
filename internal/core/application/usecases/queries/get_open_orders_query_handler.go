package queries

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOpenOrdersQueryHandler retrieves claimable orders from the database.
//
// Example:
//
//	handler := NewGetOpenOrdersQueryHandler(db)
//	query := NewGetOpenOrdersQuery()
//
//	openOrders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get open orders: %v", err)
//	    return err
//	}
type GetOpenOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetOpenOrdersQueryHandler creates a handler for open order queries.
// Requires a GORM database connection for query execution.
func NewGetOpenOrdersQueryHandler(db *gorm.DB) GetOpenOrdersQueryHandler {
	return GetOpenOrdersQueryHandler{db: db}
}

// Handle executes the query to retrieve all claimable orders.
// Returns orders in ready-for-pickup status with no assigned agent, oldest
// first so long-waiting orders surface at the top.
func (h GetOpenOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetOpenOrdersQuery,
) ([]GetOpenOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetOpenOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_number,
			business_id,
			subtotal,
			delivery_fee,
			currency,
			created_at
		FROM orders
		WHERE status = ? AND assigned_agent_id IS NULL
		ORDER BY created_at
	`, order.StatusReadyForPickup.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOpenOrdersQueryResponse
		var id, businessID uuid.UUID
		var subtotal, deliveryFee decimal.Decimal
		var currency string

		err = rows.Scan(
			&id,
			&resp.OrderNumber,
			&businessID,
			&subtotal,
			&deliveryFee,
			&currency,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = orderID

		ownerID, idErr := kernel.UUIDFromBytes(businessID[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.BusinessID = ownerID

		resp.Subtotal, err = kernel.NewMoney(subtotal, kernel.Currency(currency))
		if err != nil {
			return nil, err
		}
		resp.DeliveryFee, err = kernel.NewMoney(deliveryFee, kernel.Currency(currency))
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
