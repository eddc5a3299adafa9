//go:build pact
// +build pact

package consumer_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/Varun-2538/FoodieExpress/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"
)

type orderPayload struct {
	ID           string  `json:"id"`
	UserID       string  `json:"userId"`
	RestaurantID string  `json:"restaurantId"`
	Status       string  `json:"status"`
	TotalAmount  float64 `json:"totalAmount"`
	GrandTotal   float64 `json:"grandTotal"`
}

type orderEnvelope struct {
	Success bool         `json:"success"`
	Data    orderPayload `json:"data"`
}

type orderListEnvelope struct {
	Success bool           `json:"success"`
	Data    []orderPayload `json:"data"`
}

type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail"`
}

type apiError struct {
	status      int
	problemType string
	detail      string
}

func (e apiError) Error() string {
	return fmt.Sprintf("%s: %s (status %d)", e.problemType, e.detail, e.status)
}

func TestFoodieWebContract(t *testing.T) {
	t.Helper()
	pactlog.SetLogLevel("INFO")

	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)

	jsonContentType := matchers.Regex("application/json; charset=utf-8", "application\\/json(?:;\\s?charset=utf-8)?")
	bearer := matchers.S("Bearer " + pacttest.BearerToken)
	headerMatcher := matchers.Map{
		"id":              matchers.Like("1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"),
		"userId":          matchers.S(pacttest.PactUserID),
		"restaurantId":    matchers.S(pacttest.OpenRestaurantID),
		"status":          matchers.Term("pending", "pending|confirmed|preparing|out_for_delivery|delivered|cancelled"),
		"totalAmount":     matchers.Like(16.70),
		"deliveryFee":     matchers.Like(2.99),
		"grandTotal":      matchers.Like(19.69),
		"deliveryAddress": matchers.Like("221B Baker Street"),
		"createdAt":       matchers.Like("2024-06-12T10:00:00Z"),
		"updatedAt":       matchers.Like("2024-06-12T10:00:00Z"),
	}
	orderMatcher := matchers.Map{
		"items": matchers.EachLike(matchers.Map{
			"id":         matchers.Like("5f2b0a38-2b7d-4c55-9a1e-6f8d0c3b2a11"),
			"menuItemId": matchers.Like(pacttest.PaneerTikkaID),
			"quantity":   matchers.Like(1),
			"price":      matchers.Like(10.00),
			"lineTotal":  matchers.Like(10.00),
		}, 1),
	}
	for key, value := range headerMatcher {
		orderMatcher[key] = value
	}

	pact.AddInteraction().
		Given(pacttest.StateDemoCatalog).
		UponReceiving("a request to place an order").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearer)
			b.JSONBody(pacttest.ExampleOrderRequest())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(map[string]any{
				"success": matchers.Like(true),
				"message": matchers.S("Order created successfully"),
				"data":    orderMatcher,
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateDemoCatalog).
		UponReceiving("a request to order from a closed restaurant").
		WithRequest("POST", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.Header("Authorization", bearer)
			b.JSONBody(map[string]any{
				"restaurantId":    pacttest.ClosedRestaurantID,
				"deliveryAddress": "221B Baker Street",
				"items":           []map[string]any{{"menuItemId": pacttest.SmashBurgerID, "quantity": 1}},
			})
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/restaurant-closed"),
				"status": matchers.Like(http.StatusBadRequest),
				"detail": matchers.S("Restaurant is currently closed"),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateUserHasOrder).
		UponReceiving("a request to list the caller's orders").
		WithRequest("GET", "/api/orders", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusOK, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", jsonContentType)
			b.JSONBody(matchers.Map{
				"success": matchers.Like(true),
				"data":    matchers.EachLike(headerMatcher, 1),
			})
		})

	pact.AddInteraction().
		Given(pacttest.StateOrderMissing).
		UponReceiving("a request for a missing order").
		WithRequest("GET", "/api/orders/"+pacttest.MissingOrderID, func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Authorization", bearer)
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.S("application/problem+json"))
			b.JSONBody(matchers.Map{
				"type":   matchers.S("/problems/not-found"),
				"title":  matchers.S("Resource Not Found"),
				"status": matchers.Like(http.StatusNotFound),
			})
		})

	err = pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		client := newOrderClient(config)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		created, err := client.PlaceOrder(ctx, pacttest.ExampleOrderRequest())
		if err != nil {
			return fmt.Errorf("place order: %w", err)
		}
		if created.ID == "" || created.Status != "pending" {
			return fmt.Errorf("unexpected created order %+v", created)
		}

		_, err = client.PlaceOrder(ctx, map[string]any{
			"restaurantId":    pacttest.ClosedRestaurantID,
			"deliveryAddress": "221B Baker Street",
			"items":           []map[string]any{{"menuItemId": pacttest.SmashBurgerID, "quantity": 1}},
		})
		if apiErr, ok := err.(apiError); !ok || apiErr.problemType != "/problems/restaurant-closed" {
			return fmt.Errorf("expected restaurant-closed problem, got %v", err)
		}

		orders, err := client.ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("list orders: %w", err)
		}
		if len(orders) == 0 {
			return fmt.Errorf("expected at least one order")
		}

		if _, err := client.GetOrder(ctx, pacttest.MissingOrderID); err == nil {
			return fmt.Errorf("expected 404 for order %s", pacttest.MissingOrderID)
		} else if apiErr, ok := err.(apiError); ok && apiErr.status != http.StatusNotFound {
			return fmt.Errorf("expected 404, got %d", apiErr.status)
		}
		return nil
	})
	require.NoError(t, err)
}

type orderClient struct {
	baseURL    string
	httpClient *http.Client
}

func newOrderClient(config pactconsumer.MockServerConfig) *orderClient {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	transport := &http.Transport{TLSClientConfig: config.TLSConfig}
	return &orderClient{
		baseURL:    fmt.Sprintf("http://%s:%d", host, config.Port),
		httpClient: &http.Client{Transport: transport, Timeout: 10 * time.Second},
	}
}

func (c *orderClient) PlaceOrder(ctx context.Context, body map[string]any) (*orderPayload, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/orders", bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	var out orderEnvelope
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *orderClient) ListOrders(ctx context.Context) ([]orderPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders", nil)
	if err != nil {
		return nil, err
	}
	var out orderListEnvelope
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *orderClient) GetOrder(ctx context.Context, id string) (*orderPayload, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/orders/"+id, nil)
	if err != nil {
		return nil, err
	}
	var out orderEnvelope
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *orderClient) do(req *http.Request, out any) error {
	req.Header.Set("Authorization", "Bearer "+pacttest.BearerToken)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= http.StatusBadRequest {
		var problem problemDetail
		_ = json.NewDecoder(res.Body).Decode(&problem)
		status := problem.Status
		if status == 0 {
			status = res.StatusCode
		}
		return apiError{status: status, problemType: problem.Type, detail: problem.Detail}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
