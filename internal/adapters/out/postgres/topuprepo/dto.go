// Package topuprepo persists top-up attempts, the bridge records between a
// mobile money collection and the claim it is meant to fund.
package topuprepo

import (
	"time"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/topup"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TopupAttemptDTO represents the database structure for top-up attempts.
// The correlation id is the lookup key for provider callbacks and must be
// unique.
type TopupAttemptDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CorrelationID string          `gorm:"uniqueIndex"`
	OrderID       uuid.UUID       `gorm:"type:uuid;index"`
	AgentID       uuid.UUID       `gorm:"type:uuid;index"`
	Phone         string          `gorm:"type:varchar(20)"`
	Amount        decimal.Decimal `gorm:"type:numeric"`
	Currency      string          `gorm:"type:varchar(3)"`
	Status        string          `gorm:"index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for top-up attempts.
func (TopupAttemptDTO) TableName() string {
	return "topup_attempts"
}

// fromDomain converts a top-up attempt domain entity to its database representation.
func fromDomain(attempt *topup.Attempt) TopupAttemptDTO {
	return TopupAttemptDTO{
		ID:            attempt.ID().Bytes(),
		CorrelationID: attempt.CorrelationID(),
		OrderID:       attempt.OrderID().Bytes(),
		AgentID:       attempt.AgentID().Bytes(),
		Phone:         attempt.Phone(),
		Amount:        attempt.Amount().Amount(),
		Currency:      string(attempt.Amount().Currency()),
		Status:        attempt.Status().String(),
		CreatedAt:     attempt.CreatedAt(),
		UpdatedAt:     attempt.UpdatedAt(),
	}
}

// toDomain converts a database DTO to a top-up attempt domain entity.
func toDomain(dto TopupAttemptDTO) (*topup.Attempt, error) {
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

	amount, err := kernel.NewMoney(dto.Amount, currency)
	if err != nil {
		return nil, err
	}

	status, err := topup.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return topup.RestoreAttempt(
		id, dto.CorrelationID, orderID, agentID,
		dto.Phone, amount, status, dto.CreatedAt, dto.UpdatedAt,
	)
}
