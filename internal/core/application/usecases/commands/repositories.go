// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"github.com/B-T-Group/renda-sua-sub003/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HoldLedgerFactory provides access to the hold ledger within a transaction.
	HoldLedgerFactory interface {
		HoldLedger() ports.HoldLedger
	}

	// AccountProviderFactory provides access to agent accounts within a transaction.
	AccountProviderFactory interface {
		AccountProvider() ports.AccountProvider
	}

	// TopupRepoFactory provides access to top-up attempts within a transaction.
	TopupRepoFactory interface {
		TopupAttemptRepository() ports.TopupAttemptRepository
	}

	// OrderUoW manages transactions for order transitions and their money
	// side effects: the order itself, the hold ledger, and the agent account.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   orderRepo := uow.OrderRepository()
	//   ledger := uow.HoldLedger()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HoldLedgerFactory
		AccountProviderFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// TopupUoW manages transactions for the top-up claim flow, which touches
	// the top-up attempt on top of everything a claim touches.
	TopupUoW interface {
		OrderUoW
		TopupRepoFactory
	}

	// TopupUoWFactory creates new top-up unit of work instances.
	TopupUoWFactory interface {
		Create() TopupUoW
	}
)
