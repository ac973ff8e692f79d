package api

import "context"

type createPaymentOrderRequest struct {
	Amount  float64 `json:"amount"`
	OrderID string  `json:"orderId"`
}

// PaymentOrder is a gateway order created server-side for the hosted
// checkout page. KeyID is the gateway's publishable API key; Amount is
// in the gateway's smallest currency unit.
type PaymentOrder struct {
	KeyID    string `json:"keyId"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id"`
	GatewayPaymentID string `json:"razorpay_payment_id"`
	GatewaySignature string `json:"razorpay_signature"`
	OrderID          string `json:"orderId"`
}

type verifyPaymentResponse struct {
	OK bool `json:"ok"`
}

// CreatePaymentOrder asks the backend to open a gateway order for the
// given store order and amount.
func (c *Client) CreatePaymentOrder(ctx context.Context, amount float64, orderID string) (*PaymentOrder, error) {
	var po PaymentOrder
	req := createPaymentOrderRequest{Amount: amount, OrderID: orderID}
	if err := c.post(ctx, "/payments/create-order", req, &po, nil); err != nil {
		return nil, err
	}
	return &po, nil
}

// VerifyPayment forwards the gateway's completion triple for
// server-side signature verification. The client never checks the
// signature itself.
func (c *Client) VerifyPayment(ctx context.Context, gatewayOrderID, gatewayPaymentID, signature, orderID string) (bool, error) {
	req := verifyPaymentRequest{
		GatewayOrderID:   gatewayOrderID,
		GatewayPaymentID: gatewayPaymentID,
		GatewaySignature: signature,
		OrderID:          orderID,
	}
	var resp verifyPaymentResponse
	if err := c.post(ctx, "/payments/verify", req, &resp, nil); err != nil {
		return false, err
	}
	return resp.OK, nil
}
