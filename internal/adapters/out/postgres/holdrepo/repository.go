package holdrepo

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/hold"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormHoldLedger implements HoldLedger using GORM.
type GormHoldLedger struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormHoldLedger creates a new GORM hold ledger.
func NewGormHoldLedger(db *gorm.DB, tracker aggregateTracker) *GormHoldLedger {
	return &GormHoldLedger{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new hold to the ledger. At most one active hold may exist per
// order; a second one gets a conflict error. The existence check gives the
// common case a clean error, the partial unique index backstops races.
func (l *GormHoldLedger) Add(ctx context.Context, entity *hold.OrderHold) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	var active int64
	err := l.db.WithContext(ctx).
		Model(&OrderHoldDTO{}).
		Where("order_id = ? AND status = ?", entity.OrderID().Bytes(), hold.StatusActive.String()).
		Count(&active).Error
	if err != nil {
		return err
	}
	if active > 0 {
		return errs.NewConflictError("hold", entity.OrderID().String())
	}

	dto := fromDomain(entity)
	if err = l.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("hold", entity.OrderID().String())
		}
		return err
	}

	l.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// Update saves an existing hold to the ledger.
func (l *GormHoldLedger) Update(ctx context.Context, entity *hold.OrderHold) error {
	if err := entity.Validate(); err != nil {
		return err
	}

	dto := fromDomain(entity)
	result := l.db.WithContext(ctx).
		Model(&OrderHoldDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("hold", entity.ID().String())
	}

	l.tracker.TrackAggregate(entity.ID(), entity)
	return nil
}

// GetActiveByOrder retrieves the active hold for an order.
func (l *GormHoldLedger) GetActiveByOrder(ctx context.Context, orderID kernel.UUID) (*hold.OrderHold, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto OrderHoldDTO
	err := l.db.WithContext(ctx).
		First(&dto, "order_id = ? AND status = ?", orderID.Bytes(), hold.StatusActive.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("hold", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
