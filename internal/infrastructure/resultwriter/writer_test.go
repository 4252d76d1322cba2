package resultwriter

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"wallet_tracker/internal/domain/entity"
	"wallet_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAndReadResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	stats := []entity.WalletStats{
		entity.NewWalletStats("0xabc", entity.ChainEth, entity.Window30D, entity.Performance{Winrate: 55, PnlPct: 12.3}),
		entity.NewFailedWalletStats("unknown", entity.ChainSol, entity.Window30D, errors.New("missing wallet address")),
	}

	require.NoError(t, New(logger.NewNop()).WriteResults(path, stats))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n    {\n        \"wallet\": \"0xabc\""), string(raw))
	assert.Contains(t, string(raw), `"error": null`)
	assert.Contains(t, string(raw), `"error": "missing wallet address"`)

	back, err := ReadResults(path)
	require.NoError(t, err)
	assert.Equal(t, stats, back)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}

func TestWriteEmptyResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, New(logger.NewNop()).WriteResults(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(raw))
}

func TestWriteRejectsInvalidRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	err := New(logger.NewNop()).WriteResults(path, []entity.WalletStats{{Wallet: "x"}})
	require.Error(t, err)
	assert.NoFileExists(t, path)
}

func TestReadResultsMissingFile(t *testing.T) {
	_, err := ReadResults(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
