package entity

import "errors"

var (
	// ErrMissingWallet is returned when an input item has no wallet address.
	ErrMissingWallet = errors.New("missing wallet address")
	// ErrChainNotEnabled is returned for a supported chain that the settings switched off.
	ErrChainNotEnabled = errors.New("chain is not enabled in settings")
	// ErrInvalidAddress is returned when an address does not match the chain's format.
	ErrInvalidAddress = errors.New("invalid wallet address")
)

// WalletRequest is one item of the wallet input list before normalization.
// Chain and Window hold the raw user text; empty means "use the configured default".
type WalletRequest struct {
	Raw    string `json:"-"`
	Wallet string `json:"wallet"`
	Chain  string `json:"chain,omitempty"`
	Window string `json:"daysOption,omitempty"`
	// ParseErr is set when the item itself could not be understood.
	ParseErr error `json:"-"`
}
