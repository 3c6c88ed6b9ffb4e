package service

import (
	"context"

	"makernet/internal/models"
	"makernet/internal/observability"
)

// BillingAPI is the slice of the API client the billing screen uses.
type BillingAPI interface {
	GetBillingStatus(ctx context.Context) (models.BillingStatus, error)
	CreateCheckoutSession(ctx context.Context) (string, error)
	CreatePortalSession(ctx context.Context) (string, error)
}

// BillingService is a thin pass-through to the billing provider's hosted
// pages; the client only reads status and hands back redirect URLs.
type BillingService struct {
	api BillingAPI
	log *observability.RequestLogger
}

// NewBillingService returns a BillingService.
func NewBillingService(apiClient BillingAPI) *BillingService {
	return &BillingService{
		api: apiClient,
		log: observability.NewRequestLogger("billing"),
	}
}

// Status reads the subscription state.
func (s *BillingService) Status(ctx context.Context) (models.BillingStatus, error) {
	return s.api.GetBillingStatus(ctx)
}

// CheckoutURL returns the hosted checkout page URL for upgrading.
func (s *BillingService) CheckoutURL(ctx context.Context) (string, error) {
	url, err := s.api.CreateCheckoutSession(ctx)
	s.log.LogAction(ctx, "create_checkout_session", err, nil)
	return url, err
}

// PortalURL returns the hosted billing portal URL for managing the
// subscription.
func (s *BillingService) PortalURL(ctx context.Context) (string, error) {
	url, err := s.api.CreatePortalSession(ctx)
	s.log.LogAction(ctx, "create_portal_session", err, nil)
	return url, err
}
