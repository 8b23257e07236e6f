package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HTTPGateway talks to a PayPal-style orders REST API: create an order
// with one purchase unit, then capture it by id. Credentials go over
// basic auth the way the provider's server-side SDKs do.
type HTTPGateway struct {
	baseURL  string
	clientID string
	secret   string
	client   *http.Client
	log      *zap.Logger
}

func NewHTTPGateway(baseURL, clientID, secret string, log *zap.Logger) *HTTPGateway {
	return &HTTPGateway{
		baseURL:  baseURL,
		clientID: clientID,
		secret:   secret,
		client:   &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}
}

type purchaseUnit struct {
	Amount struct {
		CurrencyCode string `json:"currency_code"`
		Value        string `json:"value"`
	} `json:"amount"`
	Description string `json:"description,omitempty"`
}

type createOrderRequest struct {
	Intent        string         `json:"intent"`
	PurchaseUnits []purchaseUnit `json:"purchase_units"`
}

type orderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Payer  struct {
		Name struct {
			GivenName string `json:"given_name"`
		} `json:"name"`
	} `json:"payer"`
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, req OrderRequest) (string, error) {
	var unit purchaseUnit
	unit.Amount.CurrencyCode = req.Currency
	unit.Amount.Value = req.Amount
	unit.Description = req.Description

	body := createOrderRequest{Intent: "CAPTURE", PurchaseUnits: []purchaseUnit{unit}}

	var resp orderResponse
	if err := g.post(ctx, g.baseURL+"/v2/checkout/orders", body, &resp); err != nil {
		return "", fmt.Errorf("failed to create order: %w", err)
	}
	if resp.ID == "" {
		return "", fmt.Errorf("provider returned no order id")
	}

	g.log.Info("payment order created",
		zap.String("order_id", resp.ID), zap.String("amount", req.Amount))
	return resp.ID, nil
}

func (g *HTTPGateway) Capture(ctx context.Context, orderID string) (CaptureResult, error) {
	url := fmt.Sprintf("%s/v2/checkout/orders/%s/capture", g.baseURL, orderID)

	var resp orderResponse
	if err := g.post(ctx, url, struct{}{}, &resp); err != nil {
		return CaptureResult{}, fmt.Errorf("failed to capture order %s: %w", orderID, err)
	}
	if resp.Status != "COMPLETED" {
		return CaptureResult{}, fmt.Errorf("capture of order %s rejected with status %q", orderID, resp.Status)
	}

	return CaptureResult{
		OrderID:        orderID,
		PayerGivenName: resp.Payer.Name.GivenName,
	}, nil
}

func (g *HTTPGateway) post(ctx context.Context, url string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.clientID, g.secret)

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("provider returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
