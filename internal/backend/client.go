package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/wellywell/orderdesk/internal/types"
)

// Boolean values travel as spreadsheet literals.
const (
	True  = "TRUE"
	False = "FALSE"
)

func BoolValue(v bool) string {
	if v {
		return True
	}
	return False
}

type OrdersPage struct {
	Orders []types.Order `json:"orders"`
	FileID string        `json:"fileId"`
}

type CreateMonthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

type addOrderRequest struct {
	Order  types.Order `json:"order"`
	FileID string      `json:"fileId,omitempty"`
}

type updateOrderRequest struct {
	FileID string `json:"fileId"`
	Field  string `json:"field"`
	Value  string `json:"value"`
}

type updateBatchRequest struct {
	FileID string         `json:"fileId"`
	Fields map[string]any `json:"fields"`
}

type fulfillRequest struct {
	FileID string      `json:"fileId"`
	Order  types.Order `json:"order"`
}

// Client talks to the spreadsheet backed order service.
type Client struct {
	rest *resty.Client
}

func NewClient(address string) *Client {
	rest := resty.New().
		SetBaseURL(address).
		SetHeader("Accept", "application/json").
		SetError(&errorBody{})
	return &Client{rest: rest}
}

func (c *Client) GetOrders(ctx context.Context, month string) (*OrdersPage, error) {
	var page OrdersPage
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("month", month).
		SetResult(&page).
		Get("/orders")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get orders for %s: %w", month, err)
	}
	return &page, nil
}

func (c *Client) GetStores(ctx context.Context) ([]types.Store, error) {
	var stores []types.Store
	resp, err := c.rest.R().SetContext(ctx).SetResult(&stores).Get("/stores")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get stores: %w", err)
	}
	return stores, nil
}

func (c *Client) GetUnits(ctx context.Context) ([]string, error) {
	var units []string
	resp, err := c.rest.R().SetContext(ctx).SetResult(&units).Get("/units")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get units: %w", err)
	}
	return units, nil
}

func (c *Client) GetUsers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	resp, err := c.rest.R().SetContext(ctx).SetResult(&users).Get("/users")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	return users, nil
}

func (c *Client) CreateMonthFile(ctx context.Context, month string) (*CreateMonthResult, error) {
	var result CreateMonthResult
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"month": month}).
		SetResult(&result).
		Post("/months")
	if err := checkResponse(resp, err); err != nil {
		return nil, fmt.Errorf("create month file %s: %w", month, err)
	}
	return &result, nil
}

func (c *Client) AddOrder(ctx context.Context, order types.Order, fileID string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(addOrderRequest{Order: order, FileID: fileID}).
		Post("/orders")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("add order %s: %w", order.ID, err)
	}
	return nil
}

func (c *Client) UpdateOrder(ctx context.Context, fileID, orderID, field, value string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", orderID).
		SetBody(updateOrderRequest{FileID: fileID, Field: field, Value: value}).
		Patch("/orders/{id}")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("update %s of order %s: %w", field, orderID, err)
	}
	return nil
}

func (c *Client) UpdateOrderBatch(ctx context.Context, fileID, orderID string, fields map[string]any) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetPathParam("id", orderID).
		SetBody(updateBatchRequest{FileID: fileID, Fields: fields}).
		Patch("/orders/{id}/batch")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("update order %s: %w", orderID, err)
	}
	return nil
}

func (c *Client) FulfillOrder(ctx context.Context, fileID string, order types.Order) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(fulfillRequest{FileID: fileID, Order: order}).
		Post("/fulfillments")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("fulfill order %s: %w", order.ID, err)
	}
	return nil
}

func (c *Client) AddUnit(ctx context.Context, name string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(map[string]string{"name": name}).
		Post("/units")
	if err := checkResponse(resp, err); err != nil {
		return fmt.Errorf("add unit %s: %w", name, err)
	}
	return nil
}

func checkResponse(resp *resty.Response, err error) error {
	if err != nil {
		return err
	}
	if !resp.IsError() {
		return nil
	}

	message := ""
	if body, ok := resp.Error().(*errorBody); ok && body != nil {
		message = body.Error
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		retry, _ := strconv.Atoi(resp.Header().Get("Retry-After"))
		return &ErrThrottle{RetryAfter: retry}
	case message != "":
		return &Error{StatusCode: code, Message: message}
	case code == http.StatusNotFound:
		return fmt.Errorf("%w", ErrNotFound)
	case code >= http.StatusInternalServerError:
		return fmt.Errorf("%w", ErrUnknown)
	default:
		return fmt.Errorf("unexpected status %d", code)
	}
}
