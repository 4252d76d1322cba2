package port

import "wallet_tracker/internal/domain/entity"

// ChainDefinitionProvider exposes metadata for the chains enabled in settings.
type ChainDefinitionProvider interface {
	// GetAllChainDefinitions returns enabled definitions in the configured order.
	GetAllChainDefinitions() []entity.ChainDefinition

	// GetChainDefinition returns the definition for chain and true if the chain is enabled.
	GetChainDefinition(chain entity.Chain) (entity.ChainDefinition, bool)
}

// AddressValidator checks a wallet address against the format of a chain.
type AddressValidator interface {
	Validate(wallet string, chain entity.Chain) error
}
