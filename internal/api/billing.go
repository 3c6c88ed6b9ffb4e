package api

import (
	"context"

	"makernet/internal/models"
)

// GetBillingStatus reads the account's subscription state from the billing
// provider, via the backend.
func (c *Client) GetBillingStatus(ctx context.Context) (models.BillingStatus, error) {
	return getOne[models.BillingStatus](ctx, c, "/billing/status")
}

// CreateCheckoutSession asks the billing provider for a hosted checkout page
// and returns its URL. The client only redirects; it never touches payment
// details.
func (c *Client) CreateCheckoutSession(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/billing/checkout_session", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// CreatePortalSession asks the billing provider for a hosted management
// portal page and returns its URL.
func (c *Client) CreatePortalSession(ctx context.Context) (string, error) {
	var out struct {
		URL string `json:"url"`
	}
	if err := c.post(ctx, "/billing/portal_session", nil, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
