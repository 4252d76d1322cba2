package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Chain identifies one of the supported blockchain networks.
type Chain string

const (
	ChainSol   Chain = "sol"
	ChainEth   Chain = "eth"
	ChainBase  Chain = "base"
	ChainTron  Chain = "tron"
	ChainBlast Chain = "blast"
)

// ErrUnsupportedChain is returned when a chain tag is outside the supported set.
var ErrUnsupportedChain = errors.New("unsupported chain")

var allChains = []Chain{ChainSol, ChainEth, ChainBase, ChainTron, ChainBlast}

// chainAliases maps loosely written chain names onto canonical tags.
var chainAliases = map[string]Chain{
	"sol":      ChainSol,
	"solana":   ChainSol,
	"eth":      ChainEth,
	"ethereum": ChainEth,
	"base":     ChainBase,
	"tron":     ChainTron,
	"trx":      ChainTron,
	"blast":    ChainBlast,
}

// AllChains returns every supported chain in declaration order.
func AllChains() []Chain {
	out := make([]Chain, len(allChains))
	copy(out, allChains)
	return out
}

// ParseChain normalizes user input (case, surrounding spaces, common aliases) into a Chain.
func ParseChain(s string) (Chain, error) {
	if c, ok := chainAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedChain, s)
}

// Valid reports whether c is one of the canonical tags.
func (c Chain) Valid() bool {
	switch c {
	case ChainSol, ChainEth, ChainBase, ChainTron, ChainBlast:
		return true
	}
	return false
}

// IsEVM reports whether addresses on c use the 0x-prefixed hex format.
func (c Chain) IsEVM() bool {
	switch c {
	case ChainEth, ChainBase, ChainBlast:
		return true
	}
	return false
}

func (c Chain) String() string {
	return string(c)
}

// MarshalText rejects values that never passed through ParseChain or UnmarshalText.
func (c Chain) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedChain, string(c))
	}
	return []byte(c), nil
}

// UnmarshalText accepts canonical tags only. Aliases are an input concern handled by ParseChain.
func (c *Chain) UnmarshalText(text []byte) error {
	v := Chain(text)
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedChain, string(text))
	}
	*c = v
	return nil
}
