package export

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerfeed/ledgerfeed/internal/model"
)

func TestTransactions(t *testing.T) {
	txns := []model.Transaction{
		{
			PostedDate:  time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			Description: "BOOKS, USED",
			Amount:      decimal.RequireFromString("-20"),
			Category:    "Shopping",
			Account:     "PNC Checking",
		},
		{
			PostedDate:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			Description: "COFFEE SHOP",
			Amount:      decimal.RequireFromString("-4.5"),
			Account:     "PNC Checking",
		},
	}

	data, err := Transactions(txns)

	require.NoError(t, err)
	assert.Equal(t,
		"Date,Description,Amount,Category,Account\n"+
			"2024-01-06,\"BOOKS, USED\",-20.00,Shopping,PNC Checking\n"+
			"2024-01-05,COFFEE SHOP,-4.50,,PNC Checking\n",
		string(data))
}

func TestTransactions_Empty(t *testing.T) {
	data, err := Transactions(nil)

	require.NoError(t, err)
	assert.Equal(t, "Date,Description,Amount,Category,Account\n", string(data))
}
