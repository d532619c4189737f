//go:build unit
// +build unit

package validators

import (
	"errors"
	"testing"

	"github.com/MGTheTrain/web3-invoicing/internal/domain/apperr"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Currency string `validate:"currency"`
	TxHash   string `validate:"omitempty,txhash"`
	Address  string `validate:"omitempty,eth_addr"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name    string
		input   sample
		wantErr bool
	}{
		{"stablecoin", sample{Currency: "USDC"}, false},
		{"fiat", sample{Currency: "EUR"}, false},
		{"lowercase currency", sample{Currency: "usd"}, true},
		{"too short currency", sample{Currency: "US"}, true},
		{"valid tx hash", sample{Currency: "USD", TxHash: "0x" + "ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12cd34ef56ab12"}, false},
		{"short tx hash", sample{Currency: "USD", TxHash: "0xabc"}, true},
		{"valid address", sample{Currency: "USD", Address: "0x52908400098527886E0F7030069857D2E4169EE7"}, false},
		{"invalid address", sample{Currency: "USD", Address: "0x1234"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.Is(err, apperr.ErrValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("0x52908400098527886e0f7030069857d2e4169ee7", "required,eth_addr"))
	assert.ErrorIs(t, Var("0x123", "required,eth_addr"), apperr.ErrValidation)
	assert.ErrorIs(t, Var("", "required"), apperr.ErrValidation)
	assert.NoError(t, Var("WETH", "currency"))
}
