package entity

// AddressFamily groups chains sharing an address format.
type AddressFamily string

const (
	AddressFamilyEVM    AddressFamily = "evm"
	AddressFamilySolana AddressFamily = "solana"
	AddressFamilyTron   AddressFamily = "tron"
)

// ChainDefinition holds static metadata for a supported chain.
type ChainDefinition struct {
	Chain            Chain         `json:"chain" yaml:"chain"`
	Name             string        `json:"name" yaml:"name"`
	EVMChainID       uint64        `json:"evmChainId,omitempty" yaml:"evmChainId,omitempty"` // 0 for non-EVM chains
	NativeSymbol     string        `json:"nativeSymbol" yaml:"nativeSymbol"`
	Decimals         int32         `json:"decimals" yaml:"decimals"`
	AddressFamily    AddressFamily `json:"addressFamily" yaml:"addressFamily"`
	BlockExplorerURL string        `json:"blockExplorerUrl,omitempty" yaml:"blockExplorerUrl,omitempty"`
}
