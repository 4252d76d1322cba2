package port

import "wallet_tracker/internal/domain/entity"

// WalletProvider defines the interface for fetching the wallet input list.
type WalletProvider interface {
	GetWallets() ([]entity.WalletRequest, error)
}
