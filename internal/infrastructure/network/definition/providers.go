package networkdefinition

import (
	"fmt"

	"wallet_tracker/internal/app/port"
	"wallet_tracker/internal/domain/entity"
)

// ChainDefinitionProvider provides definitions for the chains enabled in settings.
type ChainDefinitionProvider struct {
	logger           port.Logger
	allChainDefs     map[entity.Chain]entity.ChainDefinition
	activeChainDefs  []entity.ChainDefinition
	activeChainIndex map[entity.Chain]struct{}
}

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Solana = entity.ChainDefinition{
		Chain:            entity.ChainSol,
		Name:             "Solana Mainnet",
		NativeSymbol:     "SOL",
		Decimals:         9,
		AddressFamily:    entity.AddressFamilySolana,
		BlockExplorerURL: "https://solscan.io",
	}
	Ethereum = entity.ChainDefinition{
		Chain:            entity.ChainEth,
		Name:             "Ethereum Mainnet",
		EVMChainID:       1,
		NativeSymbol:     "ETH",
		Decimals:         18,
		AddressFamily:    entity.AddressFamilyEVM,
		BlockExplorerURL: "https://etherscan.io",
	}
	Base = entity.ChainDefinition{
		Chain:            entity.ChainBase,
		Name:             "Base Mainnet",
		EVMChainID:       8453,
		NativeSymbol:     "ETH",
		Decimals:         18,
		AddressFamily:    entity.AddressFamilyEVM,
		BlockExplorerURL: "https://basescan.org",
	}
	Tron = entity.ChainDefinition{
		Chain:            entity.ChainTron,
		Name:             "TRON Mainnet",
		NativeSymbol:     "TRX",
		Decimals:         6,
		AddressFamily:    entity.AddressFamilyTron,
		BlockExplorerURL: "https://tronscan.org",
	}
	Blast = entity.ChainDefinition{
		Chain:            entity.ChainBlast,
		Name:             "Blast Mainnet",
		EVMChainID:       81457,
		NativeSymbol:     "ETH",
		Decimals:         18,
		AddressFamily:    entity.AddressFamilyEVM,
		BlockExplorerURL: "https://blastscan.io",
	}
)

// allKnownDefinitions is a helper to quickly access all hardcoded definitions.
var allKnownDefinitions = map[entity.Chain]entity.ChainDefinition{
	Solana.Chain:   Solana,
	Ethereum.Chain: Ethereum,
	Base.Chain:     Base,
	Tron.Chain:     Tron,
	Blast.Chain:    Blast,
}

// NewChainDefinitionProvider enables the chains named in supportedChains.
// Unknown names are skipped with a warning. When nothing usable remains every chain is enabled.
func NewChainDefinitionProvider(log port.Logger, supportedChains []string) *ChainDefinitionProvider {
	p := &ChainDefinitionProvider{
		logger:           log,
		allChainDefs:     allKnownDefinitions,
		activeChainDefs:  make([]entity.ChainDefinition, 0, len(allKnownDefinitions)),
		activeChainIndex: make(map[entity.Chain]struct{}),
	}

	for _, raw := range supportedChains {
		chain, err := entity.ParseChain(raw)
		if err != nil {
			p.logger.Warn("Ignoring unsupported chain in settings", "chain", raw, "error", err)
			continue
		}
		if _, dup := p.activeChainIndex[chain]; dup {
			p.logger.Debug("Duplicate chain in settings, skipping", "chain", raw)
			continue
		}
		p.activate(chain)
	}

	if len(p.activeChainDefs) == 0 {
		if len(supportedChains) > 0 {
			p.logger.Warn("No usable chains in settings, enabling all supported chains")
		}
		for _, chain := range entity.AllChains() {
			p.activate(chain)
		}
	}

	p.logger.Info(fmt.Sprintf("ChainDefinitionProvider initialized. Active chains: %d", len(p.activeChainDefs)))
	for _, def := range p.activeChainDefs {
		p.logger.Debug(fmt.Sprintf("  - Active chain: %s (%s, family: %s)", def.Chain, def.Name, def.AddressFamily))
	}
	return p
}

func (p *ChainDefinitionProvider) activate(chain entity.Chain) {
	p.activeChainDefs = append(p.activeChainDefs, p.allChainDefs[chain])
	p.activeChainIndex[chain] = struct{}{}
}

// GetAllChainDefinitions returns the list of enabled chain definitions.
func (p *ChainDefinitionProvider) GetAllChainDefinitions() []entity.ChainDefinition {
	if p == nil {
		return []entity.ChainDefinition{}
	}
	defsCopy := make([]entity.ChainDefinition, len(p.activeChainDefs))
	copy(defsCopy, p.activeChainDefs)
	return defsCopy
}

// GetChainDefinition returns the definition of an enabled chain.
func (p *ChainDefinitionProvider) GetChainDefinition(chain entity.Chain) (entity.ChainDefinition, bool) {
	if p == nil {
		return entity.ChainDefinition{}, false
	}
	if _, ok := p.activeChainIndex[chain]; !ok {
		return entity.ChainDefinition{}, false
	}
	return p.allChainDefs[chain], true
}

// Lookup returns the static definition of any supported chain, enabled or not.
func Lookup(chain entity.Chain) (entity.ChainDefinition, bool) {
	def, ok := allKnownDefinitions[chain]
	return def, ok
}
