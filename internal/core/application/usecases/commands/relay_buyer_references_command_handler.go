package commands

import (
	"context"

	"orders/internal/core/ports"

	"go.uber.org/zap"
)

// DefaultRelayMaxAttempts is how often an entry is offered to the buyer
// directory before it is left as failed.
const DefaultRelayMaxAttempts = 10

// RelayResult summarizes one relay run.
type RelayResult struct {
	Delivered int
	Failed    int
}

// RelayBuyerReferencesCommandHandler drains the buyer reference outbox.
// Delivery is best-effort: failures are logged and counted on the entry, and
// the entry is offered again on the next run until maxAttempts is reached.
// Orders are never affected by directory failures.
type RelayBuyerReferencesCommandHandler struct {
	outbox      ports.BuyerReferenceOutbox
	directory   ports.BuyerDirectory
	maxAttempts int
	logger      *zap.Logger
}

// NewRelayBuyerReferencesCommandHandler creates the relay handler.
// A non-positive maxAttempts falls back to DefaultRelayMaxAttempts.
func NewRelayBuyerReferencesCommandHandler(
	outbox ports.BuyerReferenceOutbox,
	directory ports.BuyerDirectory,
	maxAttempts int,
	logger *zap.Logger,
) RelayBuyerReferencesCommandHandler {
	if maxAttempts <= 0 {
		maxAttempts = DefaultRelayMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return RelayBuyerReferencesCommandHandler{
		outbox:      outbox,
		directory:   directory,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Handle delivers one batch of pending references.
func (h *RelayBuyerReferencesCommandHandler) Handle(
	ctx context.Context,
	cmd RelayBuyerReferencesCommand,
) (RelayResult, error) {
	var result RelayResult
	if err := cmd.Validate(); err != nil {
		return result, err
	}

	pending, err := h.outbox.Pending(ctx, cmd.BatchSize(), h.maxAttempts)
	if err != nil {
		return result, err
	}

	for _, entry := range pending {
		log := h.logger.With(
			zap.Int64("outbox_id", entry.ID),
			zap.String("buyer_id", entry.BuyerID.String()),
			zap.String("order_number", entry.Reference.OrderNumber.String()))

		if err = h.directory.AppendOrderReference(ctx, entry.BuyerID, entry.Reference); err != nil {
			result.Failed++
			attempt := entry.Attempts + 1
			if attempt >= h.maxAttempts {
				log.Error("buyer reference delivery abandoned", zap.Int("attempt", attempt), zap.Error(err))
			} else {
				log.Warn("buyer reference delivery failed", zap.Int("attempt", attempt), zap.Error(err))
			}
			if markErr := h.outbox.MarkFailed(ctx, entry.ID, err.Error()); markErr != nil {
				log.Error("failed to record delivery failure", zap.Error(markErr))
			}
			continue
		}

		if err = h.outbox.MarkDelivered(ctx, entry.ID); err != nil {
			// offered again on the next run
			log.Error("failed to mark buyer reference delivered", zap.Error(err))
			continue
		}
		result.Delivered++
	}

	return result, nil
}
