package provider

import (
	"os"
	"path/filepath"
	"testing"

	"wallet_tracker/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletProviderLoadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wallets.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"wallet":"0xaaaaaaaaaa","chain":"eth"}]`), 0o644))

	wallets, err := NewWalletProvider(path, logger.NewNop()).GetWallets()
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	assert.Equal(t, "eth", wallets[0].Chain)
}

func TestWalletProviderMissingFile(t *testing.T) {
	_, err := NewWalletProvider(filepath.Join(t.TempDir(), "nope.json"), logger.NewNop()).GetWallets()
	assert.Error(t, err)
}
