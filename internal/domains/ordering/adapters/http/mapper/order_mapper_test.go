package mapper

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	cases := map[string]string{
		"15":      "15.00",
		"6.7":     "6.70",
		"19.69":   "19.69",
		"14.995":  "14.995",
		"0.005":   "0.005",
		"7.49750": "7.4975",
		"-2.5":    "-2.50",
	}
	for raw, want := range cases {
		t.Run(raw, func(t *testing.T) {
			money := Money(decimal.RequireFromString(raw))
			assert.Equal(t, want, money.String())

			encoded, err := json.Marshal(map[string]Money{"amount": money})
			require.NoError(t, err)
			assert.JSONEq(t, `{"amount":`+want+`}`, string(encoded))
		})
	}
}
