package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/absrenew/storefront/cart/pkg/request"
	"github.com/absrenew/storefront/cart/pkg/response"
	"github.com/absrenew/storefront/internal/log"
)

// Client talks to the cart service. Every cart mutation goes through it and
// returns the fresh server-side cart snapshot, so callers can reconcile
// their local state against what the server actually persisted.
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func New(baseUrl string) *Client {
	return &Client{baseUrl: baseUrl, httpClient: otelhttp.DefaultClient}
}

// envelope mirrors the cart service response body.
type envelope struct {
	Ok         bool            `json:"ok"`
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

type cartData struct {
	Cart   response.Cart `json:"cart"`
	CartId string        `json:"cartId"`
}

func (cl *Client) GetCart(c context.Context, param request.GetCart) (response.Cart, error) {
	return cl.post(c, "/get", param)
}

func (cl *Client) AddItem(c context.Context, param request.AddItem) (response.Cart, error) {
	return cl.post(c, "/add", param)
}

func (cl *Client) UpdateItem(c context.Context, param request.UpdateItem) (response.Cart, error) {
	return cl.post(c, "/update", param)
}

func (cl *Client) RemoveItem(c context.Context, param request.RemoveItem) (response.Cart, error) {
	return cl.post(c, "/remove", param)
}

func (cl *Client) ClearCart(c context.Context, param request.ClearCart) (response.Cart, error) {
	return cl.post(c, "/clear", param)
}

func (cl *Client) MergeCarts(c context.Context, param request.MergeCart) (response.Cart, error) {
	return cl.post(c, "/merge", param)
}

func (cl *Client) post(c context.Context, path string, body interface{}) (response.Cart, error) {
	marshaled, err := json.Marshal(body)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed marshaling request body with error=%w", err)
	}

	req, err := http.NewRequestWithContext(
		c,
		http.MethodPost,
		cl.baseUrl+path,
		bytes.NewReader(marshaled),
	)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed creating request with error=%w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestId := log.RequestIDFromContext(c)
	if requestId != "" {
		req.Header.Set("X-Request-Id", requestId)
	}

	resp, err := cl.httpClient.Do(req)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed requesting %s with error=%w", path, err)
	}
	defer resp.Body.Close()

	env := envelope{}
	err = json.NewDecoder(resp.Body).Decode(&env)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed decoding response of %s with error=%w", path, err)
	}
	if !env.Ok {
		return response.Cart{}, fmt.Errorf("cart service rejected %s: %s", path, env.Message)
	}

	data := cartData{}
	err = json.Unmarshal(env.Data, &data)
	if err != nil {
		return response.Cart{}, fmt.Errorf("failed decoding cart of %s with error=%w", path, err)
	}
	return data.Cart, nil
}
