//go:build unit
// +build unit

package contacts

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContact_Validate(t *testing.T) {
	valid := Contact{
		ID:            uuid.NewString(),
		OwnerID:       uuid.NewString(),
		Name:          "Acme Corp",
		Email:         "billing@acme.example",
		WalletAddress: "0x52908400098527886e0f7030069857d2e4169ee7",
		CreatedAt:     time.Now(),
	}
	assert.NoError(t, valid.Validate())

	noName := valid
	noName.Name = ""
	assert.Error(t, noName.Validate())

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.Error(t, badEmail.Validate())

	badAddress := valid
	badAddress.WalletAddress = "0xnope"
	assert.Error(t, badAddress.Validate())

	noAddress := valid
	noAddress.WalletAddress = ""
	assert.NoError(t, noAddress.Validate())
}

func TestContactQuery_Validate(t *testing.T) {
	q := NewContactQuery(uuid.NewString())
	assert.NoError(t, q.Validate())

	q.SortBy = "email"
	assert.Error(t, q.Validate())

	q = NewContactQuery(uuid.NewString())
	q.Limit = 10000
	assert.Error(t, q.Validate())
}
