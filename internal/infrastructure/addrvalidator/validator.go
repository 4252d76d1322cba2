package addrvalidator

import (
	"fmt"
	"strings"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
	networkdefinition "wallet_tracker/internal/infrastructure/network/definition"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gagliardetto/solana-go"
)

const (
	minEVMAddressLen    = 10
	minSolanaAddressLen = 20
	minTronAddressLen   = 20
)

type validator struct {
	strict bool
}

// New returns an AddressValidator. In strict mode EVM addresses must be full 20-byte hex
// and Solana addresses must decode to a 32-byte public key; Tron keeps the length check.
func New(strict bool) port.AddressValidator {
	return &validator{strict: strict}
}

// Validate checks wallet against the address format of chain.
func (v *validator) Validate(wallet string, chain entity.Chain) error {
	wallet = strings.TrimSpace(wallet)
	if wallet == "" {
		return fmt.Errorf("%w: address must be a non-empty string", entity.ErrInvalidAddress)
	}

	def, ok := networkdefinition.Lookup(chain)
	if !ok {
		return fmt.Errorf("%w: %q", entity.ErrUnsupportedChain, string(chain))
	}

	switch def.AddressFamily {
	case entity.AddressFamilyEVM:
		return v.validateEVM(wallet, chain)
	case entity.AddressFamilySolana:
		return v.validateSolana(wallet)
	case entity.AddressFamilyTron:
		if !(strings.HasPrefix(wallet, "T") || strings.HasPrefix(wallet, "t")) || len(wallet) < minTronAddressLen {
			return fmt.Errorf("%w: invalid Tron wallet address: %s", entity.ErrInvalidAddress, wallet)
		}
	}
	return nil
}

func (v *validator) validateEVM(wallet string, chain entity.Chain) error {
	if v.strict {
		if !common.IsHexAddress(wallet) || !strings.HasPrefix(wallet, "0x") {
			return fmt.Errorf("%w: invalid EVM wallet address for chain %s: %s", entity.ErrInvalidAddress, chain, wallet)
		}
		return nil
	}
	if !strings.HasPrefix(wallet, "0x") || len(wallet) < minEVMAddressLen {
		return fmt.Errorf("%w: invalid EVM wallet address for chain %s: %s", entity.ErrInvalidAddress, chain, wallet)
	}
	return nil
}

func (v *validator) validateSolana(wallet string) error {
	if v.strict {
		if _, err := solana.PublicKeyFromBase58(wallet); err != nil {
			return fmt.Errorf("%w: invalid Solana wallet address %s: %v", entity.ErrInvalidAddress, wallet, err)
		}
		return nil
	}
	if len(wallet) < minSolanaAddressLen {
		return fmt.Errorf("%w: invalid Solana wallet address (too short): %s", entity.ErrInvalidAddress, wallet)
	}
	return nil
}
