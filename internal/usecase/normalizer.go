package usecase

import (
	"github.com/tidwall/gjson"

	"github.com/vitos/vault_scanner/internal/domain"
)

// NormalizeTokenVaults flattens the data.tokenVaults value into a single
// ordered list of vault records. The API returns it in several shapes:
//
//	[v1, v2]                                   list, returned as-is
//	{"weth": [v1], "dai": [v2]}                mapping of lists, concatenated
//	{"weth": {"tokenVaults": [v1]}}            mapping of wrappers, inner list concatenated
//	{"weth": v1}                               mapping of records, each appended
//
// Mappings are walked in document order. Scalars and nulls inside a mapping
// are skipped, and any other top-level shape gives an empty list. It never fails.
func NormalizeTokenVaults(tv gjson.Result) []domain.Vault {
	vaults := []domain.Vault{}

	switch {
	case tv.IsArray():
		tv.ForEach(func(_, v gjson.Result) bool {
			vaults = append(vaults, domain.NewVault(v))
			return true
		})

	case tv.IsObject():
		tv.ForEach(func(_, v gjson.Result) bool {
			switch {
			case v.IsArray():
				vaults = appendAll(vaults, v)
			case v.IsObject():
				if inner := v.Get("tokenVaults"); inner.IsArray() {
					vaults = appendAll(vaults, inner)
				} else {
					vaults = append(vaults, domain.NewVault(v))
				}
			}
			return true
		})
	}

	return vaults
}

func appendAll(vaults []domain.Vault, list gjson.Result) []domain.Vault {
	list.ForEach(func(_, v gjson.Result) bool {
		vaults = append(vaults, domain.NewVault(v))
		return true
	})
	return vaults
}
