// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status and agent assignment.
type OrderDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderNumber     string          `gorm:"uniqueIndex"`
	ClientID        uuid.UUID       `gorm:"type:uuid;index"`
	BusinessID      uuid.UUID       `gorm:"type:uuid;index"`
	AssignedAgentID *uuid.UUID      `gorm:"type:uuid;index"`
	Subtotal        decimal.Decimal `gorm:"type:numeric"`
	DeliveryFee     decimal.Decimal `gorm:"type:numeric"`
	TaxAmount       decimal.Decimal `gorm:"type:numeric"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric"`
	Currency        string          `gorm:"type:varchar(3)"`
	Status          string          `gorm:"index"`
	PaymentStatus   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// StatusChangeDTO represents one entry of an order's status history.
// Seq preserves the in-aggregate ordering and makes appends idempotent: an
// update only inserts entries past the persisted count.
type StatusChangeDTO struct {
	OrderID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int       `gorm:"primaryKey;autoIncrement:false"`
	PreviousStatus string
	NewStatus      string
	ActorRole      string
	ActorID        uuid.UUID `gorm:"type:uuid"`
	Notes          string
	Timestamp      time.Time
}

// TableName specifies the database table name for status history entries.
func (StatusChangeDTO) TableName() string {
	return "order_status_history"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional agent assignment.
func fromDomain(aggregate *order.Order) OrderDTO {
	var agentID *uuid.UUID
	if id := aggregate.AssignedAgentID(); id != nil {
		raw := id.Bytes()
		agentID = &raw
	}

	return OrderDTO{
		ID:              aggregate.ID().Bytes(),
		OrderNumber:     aggregate.OrderNumber(),
		ClientID:        aggregate.ClientID().Bytes(),
		BusinessID:      aggregate.BusinessID().Bytes(),
		AssignedAgentID: agentID,
		Subtotal:        aggregate.Subtotal().Amount(),
		DeliveryFee:     aggregate.DeliveryFee().Amount(),
		TaxAmount:       aggregate.TaxAmount().Amount(),
		TotalAmount:     aggregate.TotalAmount().Amount(),
		Currency:        string(aggregate.Currency()),
		Status:          aggregate.Status().String(),
		PaymentStatus:   aggregate.PaymentStatus().String(),
		CreatedAt:       aggregate.CreatedAt(),
		UpdatedAt:       aggregate.UpdatedAt(),
	}
}

// historyFromDomain converts the aggregate's history entries starting at the
// given sequence offset.
func historyFromDomain(aggregate *order.Order, from int) []StatusChangeDTO {
	history := aggregate.History()
	if from >= len(history) {
		return nil
	}

	dtos := make([]StatusChangeDTO, 0, len(history)-from)
	for i := from; i < len(history); i++ {
		change := history[i]
		dtos = append(dtos, StatusChangeDTO{
			OrderID:        change.OrderID.Bytes(),
			Seq:            i,
			PreviousStatus: change.PreviousStatus.String(),
			NewStatus:      change.NewStatus.String(),
			ActorRole:      change.ActorRole.String(),
			ActorID:        change.ActorID.Bytes(),
			Notes:          change.Notes,
			Timestamp:      change.Timestamp,
		})
	}

	return dtos
}

// toDomain converts database DTOs to an order domain aggregate.
// Reconstructs the complete aggregate including history using RestoreOrder.
func toDomain(dto OrderDTO, historyDTOs []StatusChangeDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}

	var agentID *kernel.UUID
	if dto.AssignedAgentID != nil {
		aID, agentErr := kernel.UUIDFromBytes((*dto.AssignedAgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		agentID = &aID
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	money := func(amount decimal.Decimal) (kernel.Money, error) {
		return kernel.NewMoney(amount, currency)
	}

	subtotal, err := money(dto.Subtotal)
	if err != nil {
		return nil, err
	}
	deliveryFee, err := money(dto.DeliveryFee)
	if err != nil {
		return nil, err
	}
	taxAmount, err := money(dto.TaxAmount)
	if err != nil {
		return nil, err
	}
	totalAmount, err := money(dto.TotalAmount)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	paymentStatus, err := order.PaymentStatusFromString(dto.PaymentStatus)
	if err != nil {
		return nil, err
	}

	history, err := historyToDomain(historyDTOs)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.OrderNumber, clientID, businessID, agentID,
		subtotal, deliveryFee, taxAmount, totalAmount,
		status, paymentStatus, history, dto.CreatedAt, dto.UpdatedAt,
	)
}

func historyToDomain(dtos []StatusChangeDTO) ([]order.StatusChange, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	history := make([]order.StatusChange, 0, len(dtos))
	for _, dto := range dtos {
		orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, err
		}
		actorID, err := kernel.UUIDFromBytes(dto.ActorID[:])
		if err != nil {
			return nil, err
		}
		previousStatus, err := order.StatusFromString(dto.PreviousStatus)
		if err != nil {
			return nil, err
		}
		newStatus, err := order.StatusFromString(dto.NewStatus)
		if err != nil {
			return nil, err
		}
		actorRole, err := order.RoleFromString(dto.ActorRole)
		if err != nil {
			return nil, err
		}

		history = append(history, order.StatusChange{
			OrderID:        orderID,
			PreviousStatus: previousStatus,
			NewStatus:      newStatus,
			ActorRole:      actorRole,
			ActorID:        actorID,
			Notes:          dto.Notes,
			Timestamp:      dto.Timestamp,
		})
	}

	return history, nil
}
