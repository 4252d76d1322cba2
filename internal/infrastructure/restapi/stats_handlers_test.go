package restapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"wallet_tracker/internal/app/service"
	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/infrastructure/addrvalidator"
	"wallet_tracker/internal/infrastructure/configloader"
	"wallet_tracker/internal/infrastructure/metrics"
	networkdefinition "wallet_tracker/internal/infrastructure/network/definition"
	"wallet_tracker/internal/infrastructure/simulator"
	"wallet_tracker/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ethWallet = "0x742d35Cc6634C0532925a3b844Bc454e4438f44e"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type countingSource struct {
	*simulator.Simulator
	calls atomic.Int32
}

func (s *countingSource) WalletStats(ctx context.Context, wallet string, chain entity.Chain, window entity.ReportingWindow) (entity.WalletStats, error) {
	s.calls.Add(1)
	return s.Simulator.WalletStats(ctx, wallet, chain, window)
}

func newTestRouter(t *testing.T, mutate func(cfg *configloader.Config)) (*gin.Engine, *countingSource) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := configloader.Default()
	cfg.SupportedChains = []string{"sol", "eth", "base"}
	if mutate != nil {
		mutate(cfg)
	}

	log := logger.NewNop()
	reg := prometheus.NewRegistry()
	src := &countingSource{Simulator: simulator.New(log)}
	chains := networkdefinition.NewChainDefinitionProvider(log, cfg.SupportedChains)
	analyzer := service.NewWalletAnalyzer(src, chains, addrvalidator.New(false), metrics.NewRecorder(reg), log, cfg)
	handler := NewStatsHandler(analyzer, chains, cfg.Cache, log)
	return SetupRouter(handler, reg, cfg, log), src
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetChains(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/v1/chains", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp APIChainsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Chains, 3)
	assert.Equal(t, entity.ChainSol, resp.Data.Chains[0].Chain)
	assert.Equal(t, uint64(8453), resp.Data.Chains[2].EVMChainID)
}

func TestGetWalletStats(t *testing.T) {
	r, src := newTestRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/v1/stats/ethereum/"+ethWallet+"?window=7", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp APIWalletStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ethWallet, resp.Data.Stats.Wallet)
	assert.Equal(t, entity.ChainEth, resp.Data.Stats.Chain)
	assert.Equal(t, entity.Window7D, resp.Data.Stats.ReportingWindow)
	assert.Nil(t, resp.Data.Stats.Error)
	assert.NoError(t, resp.Data.Stats.Validate())

	w = serve(r, http.MethodGet, "/api/v1/stats/eth/"+ethWallet+"?window=7d", "")
	require.Equal(t, http.StatusOK, w.Code)
	var again APIWalletStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.Equal(t, resp.Data.Stats, again.Data.Stats)
	assert.Equal(t, int32(1), src.calls.Load(), "second lookup must be served from cache")
}

func TestGetWalletStatsCacheKeyIgnoresSurroundingSpace(t *testing.T) {
	r, src := newTestRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/v1/stats/eth/"+ethWallet, "")
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(r, http.MethodGet, "/api/v1/stats/eth/%20"+ethWallet+"%20", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp APIWalletStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, ethWallet, resp.Data.Stats.Wallet)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestGetWalletStatsDefaultsWindow(t *testing.T) {
	r, _ := newTestRouter(t, func(cfg *configloader.Config) {
		cfg.Analysis.DefaultDaysOption = "7d"
	})

	w := serve(r, http.MethodGet, "/api/v1/stats/base/"+ethWallet, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reportingWindow":"7d"`)
}

func TestGetWalletStatsRejectsUnknownTags(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := serve(r, http.MethodGet, "/api/v1/stats/bsc/"+ethWallet, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported chain")

	w = serve(r, http.MethodGet, "/api/v1/stats/eth/"+ethWallet+"?window=90d", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported reporting window")
}

func TestGetWalletStatsAnalysisFailure(t *testing.T) {
	r, src := newTestRouter(t, nil)

	for range 2 {
		w := serve(r, http.MethodGet, "/api/v1/stats/blast/"+ethWallet, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp APIWalletStatsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.NotNil(t, resp.Data.Stats.Error)
		assert.Contains(t, *resp.Data.Stats.Error, entity.ErrChainNotEnabled.Error())
		assert.Equal(t, entity.ChainBlast, resp.Data.Stats.Chain)
	}
	assert.Equal(t, int32(0), src.calls.Load())
}

func TestPostStats(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	body := `["7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU",
		{"address":"` + ethWallet + `","chain":"eth","days":7},
		{"wallet":"","chain":"sol"},
		42]`
	w := serve(r, http.MethodPost, "/api/v1/stats", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp APIStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Stats, 4)
	assert.False(t, resp.Data.Stats[0].Failed())
	assert.Equal(t, entity.Window30D, resp.Data.Stats[0].ReportingWindow)
	assert.False(t, resp.Data.Stats[1].Failed())
	assert.Equal(t, entity.Window7D, resp.Data.Stats[1].ReportingWindow)
	assert.True(t, resp.Data.Stats[2].Failed())
	assert.Equal(t, "unknown", resp.Data.Stats[2].Wallet)
	assert.True(t, resp.Data.Stats[3].Failed())
	assert.Contains(t, resp.StatusMessage, "2 of 4")
}

func TestPostStatsRejectsNonArray(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := serve(r, http.MethodPost, "/api/v1/stats", `{"wallet":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(r, http.MethodPost, "/api/v1/stats", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	w := serve(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	serve(r, http.MethodGet, "/api/v1/stats/sol/7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU", "")
	w = serve(r, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `wallet_tracker_wallets_analyzed_total{chain="sol",window="30d"} 1`)
}

func TestSwaggerRoutes(t *testing.T) {
	spec := filepath.Join(t.TempDir(), "swagger.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("openapi: 3.0.3\n"), 0o644))

	r, _ := newTestRouter(t, func(cfg *configloader.Config) {
		cfg.Swagger.Enabled = true
		cfg.Swagger.SpecFile = spec
	})

	w := serve(r, http.MethodGet, "/docs/swagger.yaml", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "openapi")

	w = serve(r, http.MethodGet, "/swagger/index.html", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stats", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestPreloadServesFromCache(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := configloader.Default()
	cfg.SupportedChains = []string{"eth"}

	log := logger.NewNop()
	src := &countingSource{Simulator: simulator.New(log)}
	chains := networkdefinition.NewChainDefinitionProvider(log, cfg.SupportedChains)
	analyzer := service.NewWalletAnalyzer(src, chains, addrvalidator.New(false), nil, log, cfg)
	handler := NewStatsHandler(analyzer, chains, cfg.Cache, log)
	r := SetupRouter(handler, prometheus.NewRegistry(), cfg, log)

	stored := entity.NewWalletStats(ethWallet, entity.ChainEth, entity.Window30D, entity.Performance{Winrate: 61.5})
	n := handler.Preload([]entity.WalletStats{
		stored,
		entity.NewWalletStats(ethWallet, entity.ChainSol, entity.Window30D, entity.Performance{}),
		entity.NewFailedWalletStats("x", entity.ChainEth, entity.Window7D, assert.AnError),
	})
	assert.Equal(t, 1, n)

	w := serve(r, http.MethodGet, "/api/v1/stats/eth/"+ethWallet, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp APIWalletStatsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, stored, resp.Data.Stats)
	assert.Equal(t, int32(0), src.calls.Load())
}
