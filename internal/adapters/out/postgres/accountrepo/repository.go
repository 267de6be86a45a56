package accountrepo

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/services"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormAccountProvider implements AccountProvider using GORM.
type GormAccountProvider struct {
	db *gorm.DB
}

// NewGormAccountProvider creates a new GORM account provider.
func NewGormAccountProvider(db *gorm.DB) *GormAccountProvider {
	return &GormAccountProvider{db: db}
}

// GetAccount retrieves an agent's account snapshot.
func (p *GormAccountProvider) GetAccount(ctx context.Context, agentID kernel.UUID) (ports.AgentAccount, error) {
	if err := agentID.Validate(); err != nil {
		return ports.AgentAccount{}, err
	}

	var dto AgentAccountDTO
	if err := p.db.WithContext(ctx).First(&dto, "agent_id = ?", agentID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.AgentAccount{}, errs.NewObjectNotFoundError("agent account", agentID.String())
		}
		return ports.AgentAccount{}, err
	}

	tier, err := services.TierFromString(dto.Tier)
	if err != nil {
		return ports.AgentAccount{}, err
	}

	currency, err := kernel.NewCurrency(dto.Currency)
	if err != nil {
		return ports.AgentAccount{}, err
	}

	available, err := kernel.NewMoney(dto.AvailableBalance, currency)
	if err != nil {
		return ports.AgentAccount{}, err
	}

	withheld, err := kernel.NewMoney(dto.WithheldBalance, currency)
	if err != nil {
		return ports.AgentAccount{}, err
	}

	return ports.AgentAccount{
		AgentID:          agentID,
		Tier:             tier,
		AvailableBalance: available,
		WithheldBalance:  withheld,
	}, nil
}

// PlaceHold moves the amount from available to withheld. The update only
// applies while the available balance covers the amount; otherwise
// ErrInsufficientFunds.
func (p *GormAccountProvider) PlaceHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	result := p.db.WithContext(ctx).Exec(`
		UPDATE agent_accounts
		SET available_balance = available_balance - ?,
		    withheld_balance = withheld_balance + ?,
		    updated_at = NOW()
		WHERE agent_id = ? AND available_balance >= ?
	`, amount.Amount(), amount.Amount(), agentID.Bytes(), amount.Amount())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := p.accountExists(ctx, agentID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("agent account", agentID.String())
		}
		return ports.ErrInsufficientFunds
	}

	return nil
}

// ReleaseHold moves the amount from withheld back to available.
func (p *GormAccountProvider) ReleaseHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	result := p.db.WithContext(ctx).Exec(`
		UPDATE agent_accounts
		SET withheld_balance = withheld_balance - ?,
		    available_balance = available_balance + ?,
		    updated_at = NOW()
		WHERE agent_id = ? AND withheld_balance >= ?
	`, amount.Amount(), amount.Amount(), agentID.Bytes(), amount.Amount())

	return p.checkWithheldMove(ctx, agentID, result)
}

// CaptureHold removes the amount from the withheld balance for good.
func (p *GormAccountProvider) CaptureHold(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	result := p.db.WithContext(ctx).Exec(`
		UPDATE agent_accounts
		SET withheld_balance = withheld_balance - ?,
		    updated_at = NOW()
		WHERE agent_id = ? AND withheld_balance >= ?
	`, amount.Amount(), agentID.Bytes(), amount.Amount())

	return p.checkWithheldMove(ctx, agentID, result)
}

// Credit adds the amount to the available balance.
func (p *GormAccountProvider) Credit(ctx context.Context, agentID kernel.UUID, amount kernel.Money) error {
	result := p.db.WithContext(ctx).Exec(`
		UPDATE agent_accounts
		SET available_balance = available_balance + ?,
		    updated_at = NOW()
		WHERE agent_id = ?
	`, amount.Amount(), agentID.Bytes())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("agent account", agentID.String())
	}

	return nil
}

func (p *GormAccountProvider) checkWithheldMove(ctx context.Context, agentID kernel.UUID, result *gorm.DB) error {
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		exists, err := p.accountExists(ctx, agentID)
		if err != nil {
			return err
		}
		if !exists {
			return errs.NewObjectNotFoundError("agent account", agentID.String())
		}
		return errs.NewConflictError("agent account", agentID.String())
	}

	return nil
}

func (p *GormAccountProvider) accountExists(ctx context.Context, agentID kernel.UUID) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&AgentAccountDTO{}).
		Where("agent_id = ?", agentID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
