// Package accountrepo persists agent account balances and implements the
// balance movements the claim and settlement flows need. Every movement is a
// single conditional update, so balances never go negative even under
// concurrent claims.
package accountrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentAccountDTO represents the database structure for agent accounts.
type AgentAccountDTO struct {
	AgentID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Tier             string          `gorm:"index"`
	AvailableBalance decimal.Decimal `gorm:"type:numeric"`
	WithheldBalance  decimal.Decimal `gorm:"type:numeric"`
	Currency         string          `gorm:"type:varchar(3)"`
	UpdatedAt        time.Time
}

// TableName specifies the database table name for agent accounts.
func (AgentAccountDTO) TableName() string {
	return "agent_accounts"
}
