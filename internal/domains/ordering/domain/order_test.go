package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus("  Out_For_Delivery ")
	require.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, status)

	_, err = ParseStatus("shipped")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	for _, s := range Statuses() {
		assert.True(t, s.Valid(), s)
	}
}

func TestOrderRequestValidate(t *testing.T) {
	valid := OrderRequest{
		RestaurantID:    "r1",
		Items:           []OrderLine{{MenuItemID: "m1", Quantity: 1}},
		DeliveryAddress: "1 Main St",
	}
	require.NoError(t, valid.Validate())

	cases := map[string]struct {
		mutate func(r *OrderRequest)
		want   error
	}{
		"missing restaurant": {func(r *OrderRequest) { r.RestaurantID = " " }, ErrMissingRestaurantID},
		"no items":           {func(r *OrderRequest) { r.Items = nil }, ErrEmptyItems},
		"blank menu item":    {func(r *OrderRequest) { r.Items = []OrderLine{{Quantity: 1}} }, ErrMissingMenuItemID},
		"zero quantity":      {func(r *OrderRequest) { r.Items = []OrderLine{{MenuItemID: "m1"}} }, ErrInvalidQuantity},
		"missing address":    {func(r *OrderRequest) { r.DeliveryAddress = "" }, ErrMissingAddress},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			req := valid
			req.Items = append([]OrderLine(nil), valid.Items...)
			tc.mutate(&req)
			assert.ErrorIs(t, req.Validate(), tc.want)
		})
	}
}

func TestOrderRequestNormalize(t *testing.T) {
	req := OrderRequest{
		RestaurantID:        " r1 ",
		Items:               []OrderLine{{MenuItemID: "\tm1 ", Quantity: 2, SpecialInstructions: " no onions "}},
		DeliveryAddress:     " 1 Main St ",
		SpecialInstructions: " ring twice ",
	}
	normalized := req.Normalize()

	assert.Equal(t, "r1", normalized.RestaurantID)
	assert.Equal(t, []OrderLine{{MenuItemID: "m1", Quantity: 2, SpecialInstructions: "no onions"}}, normalized.Items)
	assert.Equal(t, "1 Main St", normalized.DeliveryAddress)
	assert.Equal(t, "ring twice", normalized.SpecialInstructions)
	assert.Equal(t, " r1 ", req.RestaurantID)
	assert.Equal(t, "\tm1 ", req.Items[0].MenuItemID)
	assert.Equal(t, []string{"m1"}, normalized.DistinctMenuItemIDs())
}

func TestDistinctMenuItemIDs(t *testing.T) {
	req := OrderRequest{Items: []OrderLine{
		{MenuItemID: "b"}, {MenuItemID: "a"}, {MenuItemID: "b"},
	}}
	assert.Equal(t, []string{"b", "a"}, req.DistinctMenuItemIDs())
}

func TestOrderTotals(t *testing.T) {
	item := OrderItem{UnitPrice: decimal.RequireFromString("0.10"), Quantity: 3}
	assert.True(t, decimal.RequireFromString("0.30").Equal(item.LineTotal()))

	order := &Order{
		UserID:      "u1",
		TotalAmount: decimal.RequireFromString("20.00"),
		DeliveryFee: decimal.RequireFromString("2.99"),
		Items:       []OrderItem{item},
	}
	assert.Equal(t, "22.99", order.GrandTotal().StringFixed(2))
	assert.True(t, order.OwnedBy("u1"))
	assert.False(t, order.OwnedBy("u2"))

	clone := order.Clone()
	clone.Items[0].Quantity = 9
	assert.Equal(t, 3, order.Items[0].Quantity)

	require.NoError(t, order.UpdateStatus(StatusCancelled))
	assert.ErrorIs(t, order.UpdateStatus("lost"), ErrInvalidStatus)
}
