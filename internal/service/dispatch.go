package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/devHanif-git/productivityHelper/internal/notify"
	"github.com/devHanif-git/productivityHelper/internal/repository"
	"github.com/devHanif-git/productivityHelper/pkg/redis"
)

// dispatcher fans one message out to every registered profile. Muted
// profiles are skipped. Each send gets a bounded timeout and one retry;
// failures are logged and recorded in Redis, never propagated, because by
// the time we are here the reminder level is already persisted.
type dispatcher struct {
	repo        *repository.Repository
	notifier    notify.Notifier
	rdb         *redis.Client
	sendTimeout time.Duration
	logger      *zap.Logger
}

func newDispatcher(repo *repository.Repository, notifier notify.Notifier, rdb *redis.Client, sendTimeout time.Duration, logger *zap.Logger) *dispatcher {
	if sendTimeout <= 0 {
		sendTimeout = 10 * time.Second
	}
	return &dispatcher{repo: repo, notifier: notifier, rdb: rdb, sendTimeout: sendTimeout, logger: logger}
}

// sendToAll delivers text to every unmuted profile. Returns the number of
// successful deliveries.
func (d *dispatcher) sendToAll(ctx context.Context, text string) int {
	profiles, err := d.repo.Profile.List(ctx)
	if err != nil {
		d.logger.Error("listing profiles for delivery failed", zap.Error(err))
		return 0
	}

	sent := 0
	for i := range profiles {
		p := &profiles[i]
		if p.IsMuted {
			d.logger.Debug("skipping muted profile", zap.Int64("chat_id", p.TelegramChatID))
			continue
		}
		if d.sendTo(ctx, p.TelegramChatID, text) {
			sent++
		}
	}
	return sent
}

// sendTo delivers to one chat with a bounded timeout and a single retry.
func (d *dispatcher) sendTo(ctx context.Context, chatID int64, text string) bool {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
		lastErr = d.notifier.Send(sendCtx, chatID, text)
		cancel()
		if lastErr == nil {
			return true
		}
	}

	d.logger.Error("notification delivery failed",
		zap.Int64("chat_id", chatID),
		zap.Error(lastErr),
	)
	if d.rdb != nil {
		if err := d.rdb.RecordDeliveryFailure(ctx, chatID, lastErr.Error()); err != nil {
			d.logger.Warn("recording delivery failure failed", zap.Error(err))
		}
	}
	return false
}
