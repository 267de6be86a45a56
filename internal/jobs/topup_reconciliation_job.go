package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/application/usecases/commands"
	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// TopupReconciliationJob polls the payment provider for top-up collections
// stuck in pending. Callbacks are the primary resolution path; this job
// catches the ones that never arrive.
type TopupReconciliationJob struct {
	uowFactory commands.TopupUoWFactory
	payments   ports.PaymentCollaborator
	handler    commands.CompleteTopupCommandHandler
	schedule   string
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewTopupReconciliationJob creates the reconciliation job. schedule is a
// six-field cron expression (with seconds).
func NewTopupReconciliationJob(
	uowFactory commands.TopupUoWFactory,
	payments ports.PaymentCollaborator,
	handler commands.CompleteTopupCommandHandler,
	schedule string,
	logger *slog.Logger,
) *TopupReconciliationJob {
	return &TopupReconciliationJob{
		uowFactory: uowFactory,
		payments:   payments,
		handler:    handler,
		schedule:   schedule,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "topup_reconciliation_job"),
	}
}

// Start schedules the reconciliation run.
func (j *TopupReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		if err := j.reconcile(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Top-up reconciliation run failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Top-up reconciliation job started", "schedule", j.schedule)
	return nil
}

// Stop stops the reconciliation job.
func (j *TopupReconciliationJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Top-up reconciliation job stopped")
}

// reconcile resolves every pending attempt whose collection reached a final
// state at the provider. One failed attempt never blocks the rest.
func (j *TopupReconciliationJob) reconcile(ctx context.Context) error {
	uow := j.uowFactory.Create()

	pending, err := uow.TopupAttemptRepository().GetAllPending(ctx)
	if err != nil {
		return err
	}

	for _, attempt := range pending {
		state, stateErr := j.payments.GetCollectionState(ctx, attempt.CorrelationID())
		if stateErr != nil {
			j.logger.WarnContext(ctx, "Could not fetch collection state",
				"correlation_id", attempt.CorrelationID(), "error", stateErr)
			continue
		}
		if state == ports.CollectionPending {
			continue
		}

		cmd, cmdErr := commands.NewCompleteTopupCommand(
			attempt.CorrelationID(), state == ports.CollectionSuccessful)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Could not build completion command",
				"correlation_id", attempt.CorrelationID(), "error", cmdErr)
			continue
		}

		if handleErr := j.handler.Handle(ctx, cmd); handleErr != nil {
			// Lost races and late callbacks resolve the attempt on their own.
			if errors.Is(handleErr, commands.ErrTopupAttemptNotFound) {
				continue
			}
			j.logger.ErrorContext(ctx, "Top-up completion failed",
				"correlation_id", attempt.CorrelationID(), "error", handleErr)
			continue
		}

		j.logger.InfoContext(ctx, "Reconciled top-up attempt",
			"correlation_id", attempt.CorrelationID(), "state", string(state))
	}

	return nil
}
