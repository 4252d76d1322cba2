package restapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/walletloader"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

const maxRequestBodyBytes = 1 << 20

// APIStatsResponse is the envelope for batch analysis.
type APIStatsResponse struct {
	Data struct {
		Stats []entity.WalletStats `json:"stats"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIWalletStatsResponse is the envelope for a single wallet lookup.
type APIWalletStatsResponse struct {
	Data struct {
		Stats entity.WalletStats `json:"stats"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIChainsResponse lists the chains enabled in settings.
type APIChainsResponse struct {
	Data struct {
		Chains []entity.ChainDefinition `json:"chains"`
	} `json:"data"`
	StatusMessage string `json:"status_message"`
}

// APIErrorResponse is returned for requests that could not be accepted at all.
type APIErrorResponse struct {
	Error         string `json:"error"`
	StatusMessage string `json:"status_message"`
}

// StatsHandler serves wallet statistics over HTTP.
type StatsHandler struct {
	analyzer      port.WalletAnalyzer
	chainProvider port.ChainDefinitionProvider
	statsCache    *cache.Cache
	logger        port.Logger
}

// NewStatsHandler creates a new StatsHandler. Single-wallet lookups are memoized for cfg.TTLMinutes.
func NewStatsHandler(analyzer port.WalletAnalyzer, cp port.ChainDefinitionProvider, cfg configloader.CacheConfig, l port.Logger) *StatsHandler {
	return &StatsHandler{
		analyzer:      analyzer,
		chainProvider: cp,
		statsCache: cache.New(
			time.Duration(cfg.TTLMinutes)*time.Minute,
			time.Duration(cfg.CleanupIntervalMinutes)*time.Minute,
		),
		logger: l.With("component", "StatsHandler"),
	}
}

// Preload seeds the lookup cache with previously produced records. Error records and
// records for chains that are not enabled are skipped. It returns the number cached.
func (h *StatsHandler) Preload(stats []entity.WalletStats) int {
	n := 0
	for _, s := range stats {
		if s.Failed() || s.Validate() != nil {
			continue
		}
		if _, ok := h.chainProvider.GetChainDefinition(s.Chain); !ok {
			continue
		}
		h.statsCache.SetDefault(cacheKey(s.Wallet, s.Chain, s.ReportingWindow), s)
		n++
	}
	h.logger.Info("Stats cache preloaded", "records", n, "skipped", len(stats)-n)
	return n
}

// GetChainsHandler returns the enabled chain definitions.
func (h *StatsHandler) GetChainsHandler(c *gin.Context) {
	var resp APIChainsResponse
	resp.Data.Chains = h.chainProvider.GetAllChainDefinitions()
	resp.StatusMessage = fmt.Sprintf("%d chains enabled.", len(resp.Data.Chains))
	c.JSON(http.StatusOK, resp)
}

// GetWalletStatsHandler analyzes one wallet. Unknown chain or window tags are rejected with 400;
// analysis failures are reported inside the record.
func (h *StatsHandler) GetWalletStatsHandler(c *gin.Context) {
	chain, err := entity.ParseChain(c.Param("chain"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err, "Unknown chain.")
		return
	}

	window := h.analyzer.DefaultWindow()
	if raw := c.Query("window"); raw != "" {
		if window, err = entity.ParseReportingWindow(raw); err != nil {
			abortWithError(c, http.StatusBadRequest, err, "Unknown reporting window.")
			return
		}
	}

	wallet := strings.TrimSpace(c.Param("wallet"))
	key := cacheKey(wallet, chain, window)

	var resp APIWalletStatsResponse
	if cached, found := h.statsCache.Get(key); found {
		resp.Data.Stats = cached.(entity.WalletStats)
		resp.StatusMessage = "Wallet statistics retrieved from cache."
		c.JSON(http.StatusOK, resp)
		return
	}

	stats := h.analyzer.Analyze(c.Request.Context(), entity.WalletRequest{
		Raw:    wallet,
		Wallet: wallet,
		Chain:  string(chain),
		Window: string(window),
	})
	resp.Data.Stats = stats
	if stats.Failed() {
		resp.StatusMessage = "Wallet could not be analyzed."
	} else {
		h.statsCache.SetDefault(key, stats)
		resp.StatusMessage = "Wallet statistics retrieved successfully."
	}
	c.JSON(http.StatusOK, resp)
}

// PostStatsHandler analyzes a batch of wallet requests in the same shapes the wallet file accepts.
func (h *StatsHandler) PostStatsHandler(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBodyBytes))
	if err != nil {
		abortWithError(c, http.StatusRequestEntityTooLarge, err, "Request body could not be read.")
		return
	}
	requests, err := walletloader.ParseJSON(body)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err, "Request body must be a JSON array of wallets.")
		return
	}

	stats, err := h.analyzer.AnalyzeWallets(c.Request.Context(), requests)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, c.Request.Context().Err()) {
			status = http.StatusServiceUnavailable
		}
		h.logger.Warn("Batch analysis did not complete", "error", err)
		abortWithError(c, status, err, "Analysis was interrupted.")
		return
	}

	failed := 0
	for _, s := range stats {
		if s.Failed() {
			failed++
		}
	}

	var resp APIStatsResponse
	resp.Data.Stats = stats
	switch {
	case len(stats) == 0:
		resp.StatusMessage = "No wallets to analyze."
	case failed == len(stats):
		resp.StatusMessage = "No wallet could be analyzed."
	case failed > 0:
		resp.StatusMessage = fmt.Sprintf("Wallets analyzed. %d of %d records carry an error.", failed, len(stats))
	default:
		resp.StatusMessage = "Wallets analyzed successfully."
	}
	c.JSON(http.StatusOK, resp)
}

func abortWithError(c *gin.Context, status int, err error, msg string) {
	c.AbortWithStatusJSON(status, APIErrorResponse{Error: err.Error(), StatusMessage: msg})
}

func cacheKey(wallet string, chain entity.Chain, window entity.ReportingWindow) string {
	return string(chain) + "|" + string(window) + "|" + wallet
}
