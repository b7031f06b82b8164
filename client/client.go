// Package client calls the RestEasy query-parameter API on behalf of the
// command-line apps.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yeremiapane/resteasy/models"
)

// APIError is a non-200 answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// StatusOf reports the HTTP status carried by err, or 0 when err did not
// come from the server.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for the API rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// call GETs endpoint with params and decodes the JSON result into out.
func (c *Client) call(ctx context.Context, endpoint string, params url.Values, out any) error {
	u := c.baseURL + "/" + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var payload struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &payload)
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func id(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func (c *Client) Ping(ctx context.Context) error {
	return c.call(ctx, "ping", nil, nil)
}

func (c *Client) UserExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := c.call(ctx, "user-exists", url.Values{"username": {username}}, &exists)
	return exists, err
}

func (c *Client) AddUser(ctx context.Context, username, password, fullname, phone string) error {
	return c.call(ctx, "add-user", url.Values{
		"username": {username},
		"password": {password},
		"fullname": {fullname},
		"phone":    {phone},
	}, nil)
}

// LoginUser returns the user id for valid credentials.
func (c *Client) LoginUser(ctx context.Context, username, password string) (uint, error) {
	var uid uint
	err := c.call(ctx, "login-user", url.Values{"username": {username}, "password": {password}}, &uid)
	return uid, err
}

func (c *Client) UserData(ctx context.Context, uid uint) (models.UserData, error) {
	var data models.UserData
	err := c.call(ctx, "user-data", url.Values{"uid": {id(uid)}}, &data)
	return data, err
}

func (c *Client) LoginAdmin(ctx context.Context, username, password string) (models.AdminLogin, error) {
	var login models.AdminLogin
	err := c.call(ctx, "login-admin", url.Values{"username": {username}, "password": {password}}, &login)
	return login, err
}

func (c *Client) ListVendors(ctx context.Context) ([]models.VendorRow, error) {
	var rows []models.VendorRow
	err := c.call(ctx, "list-vendors", nil, &rows)
	return rows, err
}

func (c *Client) SearchVendors(ctx context.Context, name string) ([]models.VendorRow, error) {
	var rows []models.VendorRow
	err := c.call(ctx, "list-vendors-by-name", url.Values{"name": {name}}, &rows)
	return rows, err
}

func (c *Client) SearchDishes(ctx context.Context, name string) ([]models.DishRow, error) {
	var rows []models.DishRow
	err := c.call(ctx, "list-dishes-by-name", url.Values{"name": {name}}, &rows)
	return rows, err
}

func (c *Client) ListDishesByVendor(ctx context.Context, vid uint) ([]models.DishRow, error) {
	var rows []models.DishRow
	err := c.call(ctx, "list-dishes-by-vendor", url.Values{"vid": {id(vid)}}, &rows)
	return rows, err
}

// Line is one (dish, quantity) pair of an order.
type Line struct {
	DishID   uint
	Quantity int
}

// PlaceOrder submits a whole cart in one request; the server keeps all of
// it or none of it.
func (c *Client) PlaceOrder(ctx context.Context, uid uint, ts int64, lines []Line) (uint, error) {
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, id(l.DishID)+":"+strconv.Itoa(l.Quantity))
	}
	var oid uint
	err := c.call(ctx, "place-order", url.Values{
		"uid":       {id(uid)},
		"timestamp": {strconv.FormatInt(ts, 10)},
		"lines":     {strings.Join(parts, ",")},
	}, &oid)
	return oid, err
}

func (c *Client) ListOrdersByUser(ctx context.Context, uid uint) ([]models.UserOrderRow, error) {
	var rows []models.UserOrderRow
	err := c.call(ctx, "list-order-by-uid", url.Values{"uid": {id(uid)}}, &rows)
	return rows, err
}

func (c *Client) ListOrdersByVendor(ctx context.Context, vid uint) ([]models.VendorOrderRow, error) {
	var rows []models.VendorOrderRow
	err := c.call(ctx, "list-order-by-vid", url.Values{"vid": {id(vid)}}, &rows)
	return rows, err
}
