package topuprepo

import (
	"context"
	"errors"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/topup"
	"github.com/B-T-Group/renda-sua-sub003/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTopupAttemptRepository implements TopupAttemptRepository using GORM.
type GormTopupAttemptRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTopupAttemptRepository creates a new GORM top-up attempt repository.
func NewGormTopupAttemptRepository(db *gorm.DB, tracker aggregateTracker) *GormTopupAttemptRepository {
	return &GormTopupAttemptRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new top-up attempt to the database.
func (r *GormTopupAttemptRepository) Add(ctx context.Context, attempt *topup.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(attempt.ID(), attempt)
	return nil
}

// Update saves an existing top-up attempt to the database.
func (r *GormTopupAttemptRepository) Update(ctx context.Context, attempt *topup.Attempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	dto := fromDomain(attempt)
	result := r.db.WithContext(ctx).
		Model(&TopupAttemptDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("topup attempt", attempt.ID().String())
	}

	r.tracker.TrackAggregate(attempt.ID(), attempt)
	return nil
}

// GetByCorrelationID retrieves a top-up attempt by the provider's correlation id.
func (r *GormTopupAttemptRepository) GetByCorrelationID(ctx context.Context, correlationID string) (*topup.Attempt, error) {
	if correlationID == "" {
		return nil, errs.NewValueIsRequiredError("correlationID")
	}

	var dto TopupAttemptDTO
	if err := r.db.WithContext(ctx).First(&dto, "correlation_id = ?", correlationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("topup attempt", correlationID)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllPending retrieves all attempts still waiting for a provider resolution,
// oldest first so the reconciliation job retries them in order.
func (r *GormTopupAttemptRepository) GetAllPending(ctx context.Context) ([]*topup.Attempt, error) {
	var dtos []TopupAttemptDTO
	err := r.db.WithContext(ctx).
		Order("created_at").
		Find(&dtos, "status = ?", topup.StatusPending.String()).Error
	if err != nil {
		return nil, err
	}

	attempts := make([]*topup.Attempt, 0, len(dtos))
	for _, dto := range dtos {
		attempt, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}
