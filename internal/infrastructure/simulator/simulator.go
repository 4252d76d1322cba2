package simulator

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/pkg/utils"
)

// pcgStream is the fixed second PCG word; only the first word depends on the input.
const pcgStream = 0x9e3779b97f4a7c15

// Simulator produces deterministic, plausible statistics without any on-chain queries.
// The same wallet, chain and window always yield the same record.
type Simulator struct {
	logger port.Logger
}

// New creates a Simulator.
func New(logger port.Logger) *Simulator {
	return &Simulator{logger: logger}
}

var _ port.StatsSource = (*Simulator)(nil)

// WalletStats implements port.StatsSource.
func (s *Simulator) WalletStats(ctx context.Context, wallet string, chain entity.Chain, window entity.ReportingWindow) (entity.WalletStats, error) {
	if err := ctx.Err(); err != nil {
		return entity.WalletStats{}, err
	}
	s.logger.Debug("Simulating performance", "wallet", wallet, "chain", chain, "window", window)

	rng := deterministicRNG(wallet, chain, window)
	draw := func(lo, hi float64) float64 {
		return utils.Uniform(rng.Float64(), lo, hi)
	}

	totalUsdCost := utils.RoundTo(draw(1_000, 100_000), 2)
	pnlPct := utils.RoundTo(draw(-50, 200), 2)
	totalPnlUsd := utils.RoundTo(totalUsdCost*pnlPct/100, 2)
	// Open positions carry up to 80% of the total PnL.
	unrealized := utils.RoundTo(totalPnlUsd*draw(0, 0.8), 2)
	balance := utils.RoundTo(draw(0, 10_000), 6)
	usdBalance := utils.RoundTo(totalUsdCost+totalPnlUsd, 2)
	tokenAvgUsdCost := utils.RoundTo(draw(0.5, 500), 2)
	tokenAvgRealized := utils.RoundTo(draw(10, 2_000), 2)
	winrate := utils.RoundTo(draw(20, 95), 2)

	return entity.NewWalletStats(wallet, chain, window, entity.Performance{
		TotalPnlUsdAmount:         totalPnlUsd,
		TotalPnlPct:               pnlPct,
		UnrealizedUsdProfit:       unrealized,
		TotalUsdCost:              totalUsdCost,
		TokenAvgUsdCost:           tokenAvgUsdCost,
		TokenAvgRealizedUsdProfit: tokenAvgRealized,
		Balance:                   balance,
		UsdBalance:                usdBalance,
		PnlPct:                    pnlPct,
		Winrate:                   winrate,
	}), nil
}

// deterministicRNG seeds a PCG generator from the first 8 bytes of sha256("wallet|chain|window").
func deterministicRNG(wallet string, chain entity.Chain, window entity.ReportingWindow) *rand.Rand {
	sum := sha256.Sum256([]byte(wallet + "|" + string(chain) + "|" + string(window)))
	seed := binary.BigEndian.Uint64(sum[:8])
	return rand.New(rand.NewPCG(seed, pcgStream))
}
