package orderrepo

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/order"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its status history to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate, 0); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database and appends the history
// entries recorded since the last persisted one.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	var persisted int64
	err := r.db.WithContext(ctx).
		Model(&StatusChangeDTO{}).
		Where("order_id = ?", dto.ID).
		Count(&persisted).Error
	if err != nil {
		return err
	}

	if err = r.appendHistory(ctx, aggregate, int(persisted)); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its status history by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	var historyDTOs []StatusChangeDTO
	err := r.db.WithContext(ctx).
		Order("seq").
		Find(&historyDTOs, "order_id = ?", id.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// ClaimForAgent assigns the order to the agent with a single conditional
// update: the row changes only while it is still ready for pickup and
// unassigned. Concurrent claimants race on this statement and the database
// picks exactly one winner.
func (r *GormOrderRepository) ClaimForAgent(ctx context.Context, orderID kernel.UUID, agentID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if err := agentID.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ? AND assigned_agent_id IS NULL",
			orderID.Bytes(), order.StatusReadyForPickup.String()).
		Updates(map[string]any{
			"status":            order.StatusAssignedToAgent.String(),
			"assigned_agent_id": agentID.Bytes(),
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		err := r.db.WithContext(ctx).
			Model(&OrderDTO{}).
			Where("id = ?", orderID.Bytes()).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", orderID.String())
		}
		return errs.NewConflictError("order", orderID.String())
	}

	return nil
}

func (r *GormOrderRepository) appendHistory(ctx context.Context, aggregate *order.Order, from int) error {
	dtos := historyFromDomain(aggregate, from)
	if len(dtos) == 0 {
		return nil
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}
