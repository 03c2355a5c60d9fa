package commands

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// DefaultRelayBatchSize is how many outbox entries one relay run handles.
const DefaultRelayBatchSize = 100

var ErrRelayBuyerReferencesCommandIsNotConstructed = errors.New(
	"RelayBuyerReferencesCommand must be created via NewRelayBuyerReferencesCommand constructor",
)

// RelayBuyerReferencesCommand delivers pending buyer order references to the
// buyer directory. It is issued periodically by the relay job.
type RelayBuyerReferencesCommand struct { //nolint:recvcheck //using for validation
	batchSize int

	guard guard.ConstructorGuard
}

// NewRelayBuyerReferencesCommand creates a relay command for at most batchSize entries.
func NewRelayBuyerReferencesCommand(batchSize int) (RelayBuyerReferencesCommand, error) {
	if batchSize <= 0 {
		return RelayBuyerReferencesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}
	return RelayBuyerReferencesCommand{batchSize: batchSize, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the command was created through the constructor.
func (c RelayBuyerReferencesCommand) Validate() error {
	return c.guard.Validate(ErrRelayBuyerReferencesCommandIsNotConstructed)
}

// BatchSize returns the maximum number of entries to deliver.
func (c RelayBuyerReferencesCommand) BatchSize() int { return c.batchSize }
