package domain

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	AggregatorYearn = "yearn"
	ChainEthereum   = "ethereum"

	// YearnEthereumAggregatorID selects Yearn on Ethereum mainnet.
	YearnEthereumAggregatorID = "5000"
	// WETHEthereumAddress is the WETH token contract on Ethereum mainnet.
	WETHEthereumAddress = "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2"
)

var ErrUnsupportedSelection = errors.New("only --aggregator yearn --chain ethereum is supported")

// Selection is what the user asked for on the command line.
type Selection struct {
	Aggregator string
	Chain      string
	Token      string // accepted but not sent; the query always targets WETH
}

// VaultQuery holds the fixed query parameters of a getvaults call.
type VaultQuery struct {
	YieldAggregatorID string
	TokenAddress      string
}

func (s Selection) Query() (VaultQuery, error) {
	aggregator := strings.ToLower(strings.TrimSpace(s.Aggregator))
	chain := strings.ToLower(strings.TrimSpace(s.Chain))
	if aggregator != AggregatorYearn || chain != ChainEthereum {
		return VaultQuery{}, errors.Wrapf(ErrUnsupportedSelection, "got --aggregator %q --chain %q", s.Aggregator, s.Chain)
	}

	return VaultQuery{
		YieldAggregatorID: YearnEthereumAggregatorID,
		TokenAddress:      WETHEthereumAddress,
	}, nil
}
