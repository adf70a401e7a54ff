package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionPosted is emitted after a ledger posting commits.
type TransactionPosted struct {
	ReferenceNumber string          `json:"reference_number"`
	TransactionType string          `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	AccountIDs      []string        `json:"account_ids"`
	EntryIDs        []string        `json:"entry_ids"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// Publisher delivers posting events to downstream consumers.
type Publisher interface {
	TransactionPosted(ctx context.Context, event TransactionPosted) error
}

// LoggerPublisher writes events to the structured logger. It is the fallback
// when no broker is configured.
type LoggerPublisher struct {
	logger *slog.Logger
}

// NewLoggerPublisher constructs a logging publisher.
func NewLoggerPublisher(logger *slog.Logger) *LoggerPublisher {
	return &LoggerPublisher{logger: logger}
}

// TransactionPosted writes the event to the structured logger.
func (p *LoggerPublisher) TransactionPosted(_ context.Context, event TransactionPosted) error {
	if p == nil || p.logger == nil {
		return nil
	}
	p.logger.Info("transaction posted",
		"reference_number", event.ReferenceNumber,
		"transaction_type", event.TransactionType,
		"amount", event.Amount.String(),
		"entries", len(event.EntryIDs),
	)
	return nil
}
