package domain

import "github.com/tidwall/gjson"

// Vault is one yield vault record as returned by the aggregator API.
// The record has no fixed schema, so it keeps the raw JSON and exposes
// accessors for the fields the report needs.
type Vault struct {
	raw gjson.Result
}

func NewVault(raw gjson.Result) Vault {
	return Vault{raw: raw}
}

// ParseVault builds a Vault from a JSON document. Used mostly by tests.
func ParseVault(json string) Vault {
	return Vault{raw: gjson.Parse(json)}
}

func (v Vault) Name() gjson.Result    { return v.raw.Get("vaultName") }
func (v Vault) Symbol() gjson.Result  { return v.raw.Get("vaultSymbol") }
func (v Vault) Address() gjson.Result { return v.raw.Get("vaultAddress") }

// NetAPR returns the raw apr.netAPR value, which may be a number, a string,
// null or missing altogether.
func (v Vault) NetAPR() gjson.Result {
	apr := v.raw.Get("apr")
	if !apr.IsObject() {
		return gjson.Result{}
	}
	return apr.Get("netAPR")
}

func (v Vault) Raw() string {
	return v.raw.Raw
}
