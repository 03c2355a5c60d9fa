// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. BuyerReferenceRelayJob - Delivers buyer order references written by order
// creation to the buyer directory
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	relay := jobs.NewBuyerReferenceRelayJob(relayHandler, "@every 5s", 100, logger)
//	jobManager := jobs.NewJobManager(relay)
//
//	if err := jobManager.StartAll(); err != nil {
//		logger.Fatal("Failed to start jobs", zap.Error(err))
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules accept cron expressions with a seconds field as well as the
// "@every <duration>" descriptor. A run that is still busy when the next tick
// fires causes that tick to be skipped.
//
// # Error Handling
//
// Failed runs are logged and retried on the next tick. Delivery failures of
// single references are handled by the relay command itself.
package jobs
