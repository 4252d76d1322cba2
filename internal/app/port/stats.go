package port

import (
	"context"

	"wallet_tracker/internal/domain/entity"
)

// StatsSource produces statistics for a single wallet, chain and window.
type StatsSource interface {
	WalletStats(ctx context.Context, wallet string, chain entity.Chain, window entity.ReportingWindow) (entity.WalletStats, error)
}

// WalletAnalyzer turns raw wallet requests into statistics records.
type WalletAnalyzer interface {
	// AnalyzeWallets returns one record per processed request, in input order. Per-wallet
	// failures are reported inside the records; the error is non-nil only on cancellation.
	AnalyzeWallets(ctx context.Context, requests []entity.WalletRequest) ([]entity.WalletStats, error)

	// Analyze handles a single request and always returns a record.
	Analyze(ctx context.Context, request entity.WalletRequest) entity.WalletStats

	// DefaultWindow is the window used when a request does not name one.
	DefaultWindow() entity.ReportingWindow
}

// ResultWriter stores a finished batch as an output document.
type ResultWriter interface {
	WriteResults(path string, stats []entity.WalletStats) error
}
