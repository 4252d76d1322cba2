package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/metrics"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const unknownWallet = "unknown"

// WalletAnalyzerImpl implements port.WalletAnalyzer.
type WalletAnalyzerImpl struct {
	source         port.StatsSource
	chainProvider  port.ChainDefinitionProvider
	validator      port.AddressValidator
	recorder       *metrics.Recorder
	logger         port.Logger
	limiter        *rate.Limiter
	defaultWindow  entity.ReportingWindow
	defaultChain   entity.Chain
	maxWallets     int
	maxConcurrency int
}

// NewWalletAnalyzer creates a new instance of WalletAnalyzerImpl.
func NewWalletAnalyzer(
	source port.StatsSource,
	cp port.ChainDefinitionProvider,
	validator port.AddressValidator,
	recorder *metrics.Recorder,
	l port.Logger,
	config *configloader.Config,
) *WalletAnalyzerImpl {
	a := &WalletAnalyzerImpl{
		source:         source,
		chainProvider:  cp,
		validator:      validator,
		recorder:       recorder,
		logger:         l.With("component", "WalletAnalyzer"),
		maxWallets:     config.Analysis.MaxWalletsPerRun,
		maxConcurrency: config.Analysis.MaxConcurrency,
	}
	if a.maxWallets <= 0 {
		a.maxWallets = 500
	}
	if a.maxConcurrency <= 0 {
		a.maxConcurrency = 1
	}

	a.defaultWindow = a.parseDefaultWindow(config.Analysis.DefaultDaysOption)

	enabled := cp.GetAllChainDefinitions()
	if len(enabled) > 0 {
		a.defaultChain = enabled[0].Chain
	} else {
		a.defaultChain = entity.ChainSol
	}

	if rps := config.Analysis.RequestsPerSecond; rps > 0 {
		burst := config.Analysis.Burst
		if burst <= 0 {
			burst = 1
		}
		a.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return a
}

var _ port.WalletAnalyzer = (*WalletAnalyzerImpl)(nil)

func (a *WalletAnalyzerImpl) parseDefaultWindow(raw string) entity.ReportingWindow {
	if raw == "" {
		return entity.Window30D
	}
	w, err := entity.ParseReportingWindow(raw)
	if err != nil {
		a.logger.Warn("Invalid default_days_option in settings, falling back to 30d", "value", raw, "error", err)
		return entity.Window30D
	}
	return w
}

// DefaultWindow implements port.WalletAnalyzer.
func (a *WalletAnalyzerImpl) DefaultWindow() entity.ReportingWindow {
	return a.defaultWindow
}

// AnalyzeWallets implements port.WalletAnalyzer.
func (a *WalletAnalyzerImpl) AnalyzeWallets(ctx context.Context, requests []entity.WalletRequest) ([]entity.WalletStats, error) {
	if len(requests) > a.maxWallets {
		a.logger.Warn("Reached max_wallets_per_run limit. Remaining wallets will be skipped.",
			"limit", a.maxWallets, "skipped", len(requests)-a.maxWallets)
		requests = requests[:a.maxWallets]
	}
	a.recorder.ObserveBatch(len(requests))
	a.logger.Info("Analyzing wallets", "count", len(requests), "concurrency", a.maxConcurrency)

	results := make([]entity.WalletStats, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.maxConcurrency)

	for i, req := range requests {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = a.analyze(gctx, req)
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("wallet analysis interrupted: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("wallet analysis interrupted: %w", err)
	}

	failed := 0
	for _, r := range results {
		if r.Failed() {
			failed++
		}
	}
	a.logger.Info("Wallet analysis finished", "total", len(results), "failed", failed)
	return results, nil
}

// Analyze implements port.WalletAnalyzer.
func (a *WalletAnalyzerImpl) Analyze(ctx context.Context, request entity.WalletRequest) entity.WalletStats {
	return a.analyze(ctx, request)
}

// target is what a request resolves to; fields are filled in as parsing succeeds so that
// an error record carries as much of the request as could be understood.
type target struct {
	wallet string
	chain  entity.Chain
	window entity.ReportingWindow
}

func (a *WalletAnalyzerImpl) analyze(ctx context.Context, req entity.WalletRequest) entity.WalletStats {
	start := time.Now()
	t := target{
		wallet: strings.TrimSpace(req.Wallet),
		chain:  entity.ChainSol,
		window: a.defaultWindow,
	}

	stats, err := a.resolveAndFetch(ctx, req, &t)
	if err != nil {
		a.logger.Error("Error analyzing wallet item", "item", req.Raw, "error", err)
		wallet := t.wallet
		if wallet == "" {
			wallet = unknownWallet
		}
		stats = entity.NewFailedWalletStats(wallet, t.chain, t.window, err)
	}

	a.recorder.ObserveWallet(string(stats.Chain), string(stats.ReportingWindow), stats.Failed(), time.Since(start))
	return stats
}

func (a *WalletAnalyzerImpl) resolveAndFetch(ctx context.Context, req entity.WalletRequest, t *target) (entity.WalletStats, error) {
	if req.ParseErr != nil {
		return entity.WalletStats{}, req.ParseErr
	}
	if t.wallet == "" {
		return entity.WalletStats{}, entity.ErrMissingWallet
	}

	chain := a.defaultChain
	if req.Chain != "" {
		parsed, err := entity.ParseChain(req.Chain)
		if err != nil {
			return entity.WalletStats{}, err
		}
		chain = parsed
	}
	t.chain = chain

	if req.Window != "" {
		window, err := entity.ParseReportingWindow(req.Window)
		if err != nil {
			return entity.WalletStats{}, err
		}
		t.window = window
	}

	if _, ok := a.chainProvider.GetChainDefinition(chain); !ok {
		return entity.WalletStats{}, fmt.Errorf("%w: %s", entity.ErrChainNotEnabled, chain)
	}

	if err := a.validator.Validate(t.wallet, chain); err != nil {
		return entity.WalletStats{}, err
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return entity.WalletStats{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	stats, err := a.source.WalletStats(ctx, t.wallet, chain, t.window)
	if err != nil {
		return entity.WalletStats{}, err
	}
	a.logger.Debug("Wallet analyzed", "wallet", t.wallet, "chain", chain, "window", t.window)
	return stats, nil
}
