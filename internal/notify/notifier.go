// Package notify is the outbound notification boundary. The reminder jobs
// only see the Notifier interface; the Telegram transport and the console
// fallback live behind it.
package notify

import (
	"context"

	"go.uber.org/zap"
)

// Notifier delivers a text message to a recipient chat. Implementations
// must bound their own timeouts; the engine performs at most one retry and
// never rolls back persisted reminder state on failure.
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// ConsoleNotifier logs messages instead of delivering them, for local
// development and for deployments without a Telegram token.
type ConsoleNotifier struct {
	logger *zap.Logger
}

// NewConsoleNotifier creates a ConsoleNotifier.
func NewConsoleNotifier(logger *zap.Logger) *ConsoleNotifier {
	return &ConsoleNotifier{logger: logger}
}

// Send logs the message at info level.
func (n *ConsoleNotifier) Send(_ context.Context, chatID int64, text string) error {
	n.logger.Info("notification (console)",
		zap.Int64("chat_id", chatID),
		zap.String("text", text),
	)
	return nil
}
