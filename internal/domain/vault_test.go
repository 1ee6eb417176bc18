package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
	"github.com/vitos/vault_scanner/internal/domain"
)

func TestVaultAccessors(t *testing.T) {
	v := domain.ParseVault(`{"vaultName":"WETH yVault","vaultSymbol":"yvWETH","vaultAddress":"0xa258","apr":{"netAPR":0.031},"extra":[1,2]}`)

	assert.Equal(t, "WETH yVault", v.Name().String())
	assert.Equal(t, "yvWETH", v.Symbol().String())
	assert.Equal(t, "0xa258", v.Address().String())
	assert.Equal(t, "0.031", v.NetAPR().Raw)
	assert.Contains(t, v.Raw(), `"extra":[1,2]`)
}

func TestVaultAccessors_MissingFields(t *testing.T) {
	v := domain.ParseVault(`{"apr":"broken"}`)

	assert.False(t, v.Name().Exists())
	assert.False(t, v.Address().Exists())
	assert.False(t, v.NetAPR().Exists())

	v = domain.ParseVault(`{"apr":{"netAPR":null}}`)
	assert.Equal(t, gjson.Null, v.NetAPR().Type)
}

func TestVaultsResponse(t *testing.T) {
	resp := &domain.VaultsResponse{Body: []byte(`{"status":200,"data":{"tokenVaults":[{"vaultName":"A"}]}}`)}
	assert.Equal(t, 200, resp.Status())
	assert.True(t, resp.TokenVaults().IsArray())

	resp = &domain.VaultsResponse{Body: []byte(`{"status":"200","data":[]}`)}
	assert.Equal(t, 0, resp.Status())
	assert.False(t, resp.TokenVaults().Exists())

	resp = &domain.VaultsResponse{Body: []byte(`[1,2,3]`)}
	assert.Equal(t, 0, resp.Status())
	assert.False(t, resp.TokenVaults().Exists())
}
