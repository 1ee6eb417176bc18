package domain

import (
	"context"

	"github.com/tidwall/gjson"
)

// VaultSource defines the interface for a yield aggregator API.
type VaultSource interface {
	// VaultsURL resolves the request URL without touching the network.
	VaultsURL(q VaultQuery) (string, error)
	GetVaults(ctx context.Context, q VaultQuery) (*VaultsResponse, error)
}

// VaultsResponse is a decoded getvaults response. Body is guaranteed to be valid JSON.
type VaultsResponse struct {
	URL  string
	Body []byte
}

// Status is the envelope status code, 0 when missing or not a number.
func (r *VaultsResponse) Status() int {
	s := gjson.GetBytes(r.Body, "status")
	if s.Type != gjson.Number {
		return 0
	}
	return int(s.Int())
}

// TokenVaults returns data.tokenVaults, or a non-existent result when the
// envelope has no such path.
func (r *VaultsResponse) TokenVaults() gjson.Result {
	data := gjson.GetBytes(r.Body, "data")
	if !data.IsObject() {
		return gjson.Result{}
	}
	return data.Get("tokenVaults")
}
