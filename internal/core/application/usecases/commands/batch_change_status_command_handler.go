package commands

import (
	"context"
	"sync"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/domain/model/kernel"

	"golang.org/x/sync/errgroup"
)

// BatchItemResult is the outcome of one order in a batch.
type BatchItemResult struct {
	// Err is nil when the transition was applied and committed.
	Err error
}

// BatchResult summarizes a batch run. Results holds an entry for every
// distinct input order id, including ineligible and missing ones.
type BatchResult struct {
	Results   map[kernel.UUID]BatchItemResult
	Succeeded int
	Failed    int
}

// BatchChangeStatusCommandHandler applies one action to many orders with
// per-order isolation: each order runs in its own unit of work, so one
// failure rolls back only its own transition.
//
// Processing is bounded-parallel; workers write into the shared result map
// under a mutex and never abort the group.
type BatchChangeStatusCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewBatchChangeStatusCommandHandler creates a handler for batch transitions.
// Requires an OrderUoWFactory; every order gets its own unit of work.
func NewBatchChangeStatusCommandHandler(uowFactory OrderUoWFactory) BatchChangeStatusCommandHandler {
	return BatchChangeStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch command and returns a result keyed by every
// input order id. The returned error covers command validation only; item
// failures are reported through the result.
func (h BatchChangeStatusCommandHandler) Handle(ctx context.Context, cmd BatchChangeStatusCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	result := BatchResult{
		Results: make(map[kernel.UUID]BatchItemResult, len(cmd.OrderIDs())),
	}

	var mu sync.Mutex
	group, groupCtx := errgroup.WithContext(ctx)

	limit := cmd.Parallelism()
	if limit < 1 {
		limit = 1
	}
	group.SetLimit(limit)

	for _, orderID := range cmd.OrderIDs() {
		group.Go(func() error {
			err := h.processOne(groupCtx, orderID, cmd)

			mu.Lock()
			defer mu.Unlock()
			result.Results[orderID] = BatchItemResult{Err: err}
			return nil
		})
	}

	// Workers never return errors; Wait only synchronizes completion.
	_ = group.Wait()

	// The command holds distinct ids, so Succeeded+Failed equals len(Results).
	for _, item := range result.Results {
		if item.Err != nil {
			result.Failed++
		} else {
			result.Succeeded++
		}
	}

	return result, nil
}

func (h BatchChangeStatusCommandHandler) processOne(ctx context.Context, orderID kernel.UUID, cmd BatchChangeStatusCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := transitionOrder(ctx, uow, orderID, cmd.Actor(), cmd.Action(), cmd.Notes()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
