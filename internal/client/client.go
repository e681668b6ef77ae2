// Package client talks to the clientes HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/unclebandit/clientes-service/internal/model"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// APIError carries the status and the error/mensaje field of a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

func (c *Client) List(ctx context.Context) (model.Collection, error) {
	var out model.Collection
	if err := c.do(ctx, http.MethodGet, "/clientes", nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Create(ctx context.Context, cl model.Customer) (model.Customer, error) {
	var out model.Customer
	if err := c.do(ctx, http.MethodPost, "/clientes", cl, http.StatusCreated, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Delete(ctx context.Context, id int) (model.Customer, error) {
	var out model.Customer
	if err := c.do(ctx, http.MethodDelete, "/clientes/"+strconv.Itoa(id), nil, http.StatusOK, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	dec := json.NewDecoder(res.Body)
	dec.UseNumber()

	if res.StatusCode != want {
		var e struct {
			Error   string `json:"error"`
			Mensaje string `json:"mensaje"`
		}
		_ = dec.Decode(&e)
		msg := e.Error
		if msg == "" {
			msg = e.Mensaje
		}
		return &APIError{StatusCode: res.StatusCode, Message: msg}
	}

	return dec.Decode(out)
}
