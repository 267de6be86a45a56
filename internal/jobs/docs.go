// Package jobs provides scheduled background tasks for the order system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations the request path cannot cover.
//
// # Available Jobs
//
// 1. TopupReconciliationJob - Polls the payment provider for top-up
// collections stuck in pending and drives them to completion.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(uowFactory, payments, completeTopupHandler, schedule, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The reconciliation schedule is a six-field cron expression (with seconds),
// taken from configuration. The provider callback remains the primary
// resolution path; the job only mops up missed callbacks.
//
// # Error Handling
//
// A failure on one attempt is logged and never blocks the rest of the run.
// Attempts already resolved by a late callback are skipped silently.
package jobs
