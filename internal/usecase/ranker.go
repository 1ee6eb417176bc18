package usecase

import (
	"math"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/vitos/vault_scanner/internal/domain"
)

// NetAPR is the outcome of coercing a raw apr.netAPR value.
type NetAPR struct {
	Value float64
	Valid bool
}

// ParseNetAPR coerces a raw netAPR to a float. JSON numbers and numeric
// strings ("0.05", " 1e-2 ") are valid. Missing values, null, booleans,
// objects and unparsable strings are not.
func ParseNetAPR(raw gjson.Result) NetAPR {
	switch raw.Type {
	case gjson.Number:
		return finite(raw.Num)
	case gjson.String:
		d, err := decimal.NewFromString(strings.TrimSpace(raw.Str))
		if err != nil {
			return NetAPR{}
		}
		return finite(d.InexactFloat64())
	default:
		return NetAPR{}
	}
}

func finite(f float64) NetAPR {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return NetAPR{}
	}
	return NetAPR{Value: f, Valid: true}
}

// SortKey is the value a vault ranks by; invalid netAPR ranks as -Inf.
func (n NetAPR) SortKey() float64 {
	if !n.Valid {
		return math.Inf(-1)
	}
	return n.Value
}

// RankByNetAPR sorts vaults in place, highest netAPR first. The sort is
// stable, so ties and vaults without a usable netAPR keep their input order,
// and the latter always end up after every vault with a valid one.
func RankByNetAPR(vaults []domain.Vault) {
	type ranked struct {
		vault domain.Vault
		key   float64
	}

	items := make([]ranked, len(vaults))
	for i, v := range vaults {
		items[i] = ranked{vault: v, key: ParseNetAPR(v.NetAPR()).SortKey()}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		switch {
		case a.key > b.key:
			return -1
		case a.key < b.key:
			return 1
		default:
			return 0
		}
	})

	for i := range items {
		vaults[i] = items[i].vault
	}
}
