package controllers

import (
	"testing"

	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/stretchr/testify/assert"
)

func TestPurchaseBounds(t *testing.T) {
	tests := []struct {
		name     string
		location string
		min      float64
		max      float64
		currency string
	}{
		{"India", "IN", utils.MinPurchaseAmountIN, utils.MaxPurchaseAmountIN, "INR"},
		{"IndiaLowercase", "india", utils.MinPurchaseAmountIN, utils.MaxPurchaseAmountIN, "INR"},
		{"UnitedStates", "US", utils.MinPurchaseAmount, utils.MaxPurchaseAmount, "USD"},
		{"Unknown", "", utils.MinPurchaseAmount, utils.MaxPurchaseAmount, "USD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			min, max, currency := purchaseBounds(tt.location)
			assert.Equal(t, tt.min, min)
			assert.Equal(t, tt.max, max)
			assert.Equal(t, tt.currency, currency)
		})
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		minor  int
	}{
		{"WholeCoins", 100, 10000},
		{"NinetyNineCents", 19.99, 1999},
		{"AnotherNinetyNine", 29.99, 2999},
		{"HalfCoin", 10.5, 1050},
		{"SingleCent", 0.01, 1},
		{"LargeAmount", 99999.99, 9999999},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.minor, toMinorUnits(tt.amount))
		})
	}
}

func TestDemoOrders(t *testing.T) {
	t.Run("DemoOrderIDsAreRecognized", func(t *testing.T) {
		id := newDemoOrderID()
		assert.True(t, isDemoOrder(id))
	})

	t.Run("GatewayOrderIDsAreNot", func(t *testing.T) {
		assert.False(t, isDemoOrder("order_NXh2Qa9rfX"))
		assert.False(t, isDemoOrder(""))
	})

	t.Run("DemoOrderIDsAreUnique", func(t *testing.T) {
		assert.NotEqual(t, newDemoOrderID(), newDemoOrderID())
	})
}

func TestCreateGatewayOrderUnconfigured(t *testing.T) {
	t.Setenv("RAZORPAY_KEY", "")
	t.Setenv("RAZORPAY_SECRET", "")

	orderID, demo, err := createGatewayOrder(10000, "INR", "rcpt_1")
	assert.NoError(t, err)
	assert.True(t, demo)
	assert.True(t, isDemoOrder(orderID))
}
