package controllers

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ErthaLabs/ErthaExchange/utils"
	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"
)

// Bound on every gateway round trip. On timeout the order path degrades to
// demo mode instead of hanging the request.
const gatewayTimeout = 10 * time.Second

const demoOrderPrefix = "demo_order_"

func gatewayConfigured() bool {
	return os.Getenv("RAZORPAY_KEY") != "" && os.Getenv("RAZORPAY_SECRET") != ""
}

func newGatewayClient() *razorpay.Client {
	return razorpay.NewClient(os.Getenv("RAZORPAY_KEY"), os.Getenv("RAZORPAY_SECRET"))
}

// toMinorUnits converts a two-decimal coin amount to the gateway's integer
// minor units. Rounded, not truncated: 19.99 is 1998.999... in float64 and
// plain int() would drop a paisa.
func toMinorUnits(amount float64) int {
	return int(math.Round(amount * 100))
}

func isDemoOrder(orderID string) bool {
	return strings.HasPrefix(orderID, demoOrderPrefix)
}

func newDemoOrderID() string {
	return demoOrderPrefix + strings.ReplaceAll(uuid.New().String(), "-", "")
}

type gatewayResult struct {
	order map[string]interface{}
	err   error
}

// createGatewayOrder creates a payment order with the gateway. When the
// gateway is not configured it returns a demo order immediately; when the
// gateway call exceeds the timeout it falls back to a demo order rather
// than hanging.
func createGatewayOrder(amountMinor int, currency, receipt string) (orderID string, demo bool, err error) {
	if !gatewayConfigured() {
		utils.LogInfo("Payment gateway not configured, issuing demo order")
		return newDemoOrderID(), true, nil
	}

	client := newGatewayClient()
	orderData := map[string]interface{}{
		"amount":          amountMinor,
		"currency":        currency,
		"receipt":         receipt,
		"payment_capture": 1,
	}

	ch := make(chan gatewayResult, 1)
	go func() {
		order, err := client.Order.Create(orderData, nil)
		ch <- gatewayResult{order, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", false, utils.UpstreamError("Failed to create payment order", res.err)
		}
		return fmt.Sprintf("%v", res.order["id"]), false, nil
	case <-time.After(gatewayTimeout):
		utils.LogError("Gateway order creation timed out after %v, issuing demo order", gatewayTimeout)
		return newDemoOrderID(), true, nil
	}
}

// fetchGatewayPayment fetches payment details by gateway payment ID.
func fetchGatewayPayment(paymentID string) (map[string]interface{}, error) {
	client := newGatewayClient()

	ch := make(chan gatewayResult, 1)
	go func() {
		payment, err := client.Payment.Fetch(paymentID, nil, nil)
		ch <- gatewayResult{payment, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return nil, utils.UpstreamError("Failed to fetch payment from gateway", res.err)
		}
		return res.order, nil
	case <-time.After(gatewayTimeout):
		return nil, utils.UpstreamError("Gateway payment fetch timed out", nil)
	}
}

// refundGatewayPayment issues a refund for amountMinor against a captured
// payment.
func refundGatewayPayment(paymentID string, amountMinor int) (string, error) {
	client := newGatewayClient()

	ch := make(chan gatewayResult, 1)
	go func() {
		refund, err := client.Payment.Refund(paymentID, amountMinor, nil, nil)
		ch <- gatewayResult{refund, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			return "", utils.UpstreamError("Failed to create refund with gateway", res.err)
		}
		return fmt.Sprintf("%v", res.order["id"]), nil
	case <-time.After(gatewayTimeout):
		return "", utils.UpstreamError("Gateway refund timed out", nil)
	}
}

// purchaseBounds returns the allowed coin purchase range for a user's
// region. Indian users transact in INR with wider bounds.
func purchaseBounds(userLocation string) (min, max float64, currency string) {
	if strings.EqualFold(userLocation, "IN") || strings.EqualFold(userLocation, "india") {
		return utils.MinPurchaseAmountIN, utils.MaxPurchaseAmountIN, "INR"
	}
	return utils.MinPurchaseAmount, utils.MaxPurchaseAmount, "USD"
}
