package background

import (
	"context"
	"log/slog"
	"time"
)

// ExpiredBanClearer nulls out ban expiries that have already lapsed
type ExpiredBanClearer interface {
	ClearExpiredBans(ctx context.Context, nowMillis int64) (int64, error)
}

// BanSweeper periodically clears expired bans so that lookups and logins see
// a clean banned_until column instead of re-checking expiry everywhere.
type BanSweeper struct {
	repo     ExpiredBanClearer
	logger   *slog.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewBanSweeper creates a new ban sweeper
func NewBanSweeper(repo ExpiredBanClearer, logger *slog.Logger, interval time.Duration) *BanSweeper {
	return &BanSweeper{
		repo:     repo,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (bs *BanSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(bs.interval)
	defer ticker.Stop()

	// Run immediately on startup
	bs.runSweep(ctx)

	for {
		select {
		case <-ticker.C:
			bs.runSweep(ctx)
		case <-bs.stopCh:
			bs.logger.Info("ban sweeper stopped")
			return
		case <-ctx.Done():
			bs.logger.Info("ban sweeper context cancelled")
			return
		}
	}
}

func (bs *BanSweeper) runSweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cleared, err := bs.repo.ClearExpiredBans(sweepCtx, time.Now().UnixMilli())
	if err != nil {
		bs.logger.Error("failed to clear expired bans", slog.Any("error", err))
		return
	}

	if cleared > 0 {
		bs.logger.Info("expired bans cleared", slog.Int64("rows_cleared", cleared))
	}
}

// Stop signals the sweeper to stop
func (bs *BanSweeper) Stop() {
	close(bs.stopCh)
}
