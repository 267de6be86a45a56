// Package holdrepo persists the per-order hold ledger. Each row records the
// funds withheld from an agent for one claimed order and how that hold was
// eventually settled.
package holdrepo

import (
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHoldDTO represents the database structure for persisting order holds.
// The partial unique index on OrderID keeps at most one active hold per order
// even under concurrent claims.
type OrderHoldDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;uniqueIndex:ux_order_holds_one_active,where:status = 'active'"`
	AgentID      uuid.UUID       `gorm:"type:uuid;index"`
	HoldAmount   decimal.Decimal `gorm:"type:numeric"`
	ChargeAmount decimal.Decimal `gorm:"type:numeric"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric"`
	Currency     string          `gorm:"type:varchar(3)"`
	Status       string          `gorm:"index"`
	CreatedAt    time.Time
	SettledAt    *time.Time
}

// TableName specifies the database table name for hold entities.
func (OrderHoldDTO) TableName() string {
	return "order_holds"
}

// fromDomain converts a hold domain entity to its database representation.
func fromDomain(entity *hold.OrderHold) OrderHoldDTO {
	return OrderHoldDTO{
		ID:           entity.ID().Bytes(),
		OrderID:      entity.OrderID().Bytes(),
		AgentID:      entity.AgentID().Bytes(),
		HoldAmount:   entity.HoldAmount().Amount(),
		ChargeAmount: entity.ChargeAmount().Amount(),
		TotalAmount:  entity.TotalAmount().Amount(),
		Currency:     string(entity.HoldAmount().Currency()),
		Status:       entity.Status().String(),
		CreatedAt:    entity.CreatedAt(),
		SettledAt:    entity.SettledAt(),
	}
}

// toDomain converts a database DTO to a hold domain entity.
func toDomain(dto OrderHoldDTO) (*hold.OrderHold, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return nil, err
	}

	holdAmount, err := kernel.NewMoney(dto.HoldAmount, currency)
	if err != nil {
		return nil, err
	}
	chargeAmount, err := kernel.NewMoney(dto.ChargeAmount, currency)
	if err != nil {
		return nil, err
	}
	totalAmount, err := kernel.NewMoney(dto.TotalAmount, currency)
	if err != nil {
		return nil, err
	}

	status, err := hold.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return hold.RestoreOrderHold(
		id, orderID, agentID,
		holdAmount, chargeAmount, totalAmount,
		status, dto.CreatedAt, dto.SettledAt,
	)
}
