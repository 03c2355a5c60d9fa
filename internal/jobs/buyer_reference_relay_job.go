package jobs

import (
	"context"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	// DefaultRelaySchedule runs the relay every five seconds.
	DefaultRelaySchedule = "@every 5s"

	relayRunTimeout = 30 * time.Second
)

// RelayHandler delivers one batch of buyer order references.
type RelayHandler interface {
	Handle(ctx context.Context, cmd commands.RelayBuyerReferencesCommand) (commands.RelayResult, error)
}

// BuyerReferenceRelayJob periodically drains the buyer reference outbox.
// Runs never overlap; a tick that finds the previous run still busy is skipped.
type BuyerReferenceRelayJob struct {
	handler   RelayHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *zap.Logger
}

// NewBuyerReferenceRelayJob creates the relay job. An empty schedule uses
// DefaultRelaySchedule and a non-positive batchSize uses
// commands.DefaultRelayBatchSize.
func NewBuyerReferenceRelayJob(handler RelayHandler, schedule string, batchSize int, log *zap.Logger) *BuyerReferenceRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	if batchSize <= 0 {
		batchSize = commands.DefaultRelayBatchSize
	}
	return &BuyerReferenceRelayJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.ForComponent(log, "buyer_reference_relay_job"),
	}
}

// Start schedules the relay and starts the cron scheduler.
func (j *BuyerReferenceRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Buyer reference relay job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running relay to finish.
func (j *BuyerReferenceRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Buyer reference relay job stopped")
}

func (j *BuyerReferenceRelayJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	cmd, err := commands.NewRelayBuyerReferencesCommand(j.batchSize)
	if err != nil {
		j.logger.Error("Buyer reference relay job failed", zap.Error(err))
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.Error("Buyer reference relay job failed", zap.Error(err))
		return
	}

	if result.Delivered > 0 || result.Failed > 0 {
		j.logger.Info("Buyer references relayed",
			zap.Int("delivered", result.Delivered),
			zap.Int("failed", result.Failed))
	}
}
