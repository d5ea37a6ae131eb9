package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// GetBalance fetches the account balance and portfolio value.
func (c *Client) GetBalance(ctx context.Context) (*BalanceResponse, error) {
	var resp BalanceResponse
	if err := c.getSigned(ctx, "/portfolio/balance", nil, &resp); err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &resp, nil
}

// GetPositions fetches held positions.
func (c *Client) GetPositions(ctx context.Context, opts PositionsOptions) ([]APIPosition, error) {
	query := url.Values{}
	if opts.CountFilter != "" {
		query.Set("count_filter", opts.CountFilter)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var resp PositionsResponse
	if err := c.getSigned(ctx, "/portfolio/positions", query, &resp); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return resp.MarketPositions, nil
}

// GetOrders fetches orders, typically with Status "resting".
func (c *Client) GetOrders(ctx context.Context, opts OrdersOptions) ([]APIOrder, error) {
	query := url.Values{}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var resp OrdersResponse
	if err := c.getSigned(ctx, "/portfolio/orders", query, &resp); err != nil {
		return nil, fmt.Errorf("get orders: %w", err)
	}
	return resp.Orders, nil
}

// GetSettlements fetches settlement history.
func (c *Client) GetSettlements(ctx context.Context, limit int) ([]APISettlement, error) {
	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}

	var resp SettlementsResponse
	if err := c.getSigned(ctx, "/portfolio/settlements", query, &resp); err != nil {
		return nil, fmt.Errorf("get settlements: %w", err)
	}
	return resp.Settlements, nil
}
